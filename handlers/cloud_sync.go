package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"lightningbowl-sync/app"
	"lightningbowl-sync/models"
	"lightningbowl-sync/services"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const heartbeatInterval = 30 * time.Second

// GetCloudSyncSettings returns the persisted settings and the live status
func GetCloudSyncSettings(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{
			"settings": a.CloudSync.Settings(),
			"status":   a.CloudSync.Status(),
		})
	}
}

// UpdateCloudSyncSettings applies a partial settings update
func UpdateCloudSyncSettings(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch models.SettingsPatch
		if err := c.BodyParser(&patch); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&patch); err != nil {
			return validationError(c, err)
		}

		updated, err := a.CloudSync.UpdateSettings(c.UserContext(), patch)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update settings", err)
		}

		return success(c, fiber.Map{
			"settings": updated,
			"status":   a.CloudSync.Status(),
		})
	}
}

// GetCloudSyncStatus returns the live status only
func GetCloudSyncStatus(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{"status": a.CloudSync.Status()})
	}
}

// ConnectProvider returns the backend URL that starts the OAuth flow
func ConnectProvider(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provider := models.Provider(c.Params("provider"))
		if !provider.Valid() {
			return badRequest(c, "Unsupported provider")
		}

		startURL, err := a.CloudSync.AuthenticateWithProvider(provider)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to start authentication", err)
		}

		return success(c, fiber.Map{"url": startURL})
	}
}

// SyncNow uploads the current history right away
func SyncNow(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := a.CloudSync.SyncNow(c.UserContext())
		switch {
		case err == nil:
			return success(c, fiber.Map{"status": a.CloudSync.Status()})
		case errors.Is(err, services.ErrNotConfigured):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrNotAuthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Sync failed. " + err.Error()})
		}
	}
}

// DisconnectProvider revokes the connection at the backend and clears it locally
func DisconnectProvider(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.CloudSync.Disconnect(c.UserContext()); err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}
		return success(c, fiber.Map{
			"settings": a.CloudSync.Settings(),
			"status":   a.CloudSync.Status(),
		})
	}
}

// CloudSyncEvents streams status snapshots as server-sent events until the client goes away
func CloudSyncEvents(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		updates, unsubscribe := a.CloudSync.SubscribeStatus()
		logger := a.Logger

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer unsubscribe()

			ticker := time.NewTicker(heartbeatInterval)
			defer ticker.Stop()

			for {
				select {
				case st, ok := <-updates:
					if !ok {
						return
					}
					if err := writeStatusEvent(w, st); err != nil {
						logger.Debug("status stream closed", "error", err)
						return
					}
				case <-ticker.C:
					if _, err := w.WriteString(": ping\n\n"); err != nil {
						return
					}
					if err := w.Flush(); err != nil {
						return
					}
				}
			}
		}))
		return nil
	}
}

func writeStatusEvent(w *bufio.Writer, st models.SyncStatus) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: status\ndata: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}

// GetNotifications returns the most recent toasts, newest first
func GetNotifications(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{"notifications": a.Notifications.Recent()})
	}
}
