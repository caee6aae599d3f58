package handlers

import (
	"context"
	"lightningbowl-sync/app"
	"lightningbowl-sync/middleware"
	"lightningbowl-sync/models"
	"lightningbowl-sync/templates/pages"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

const settingsPath = "/settings"

type callbackQuery struct {
	Provider  string `query:"provider" json:"provider" validate:"required,provider"`
	Status    string `query:"status" json:"status" validate:"required"`
	Error     string `query:"error" json:"error"`
	Message   string `query:"message" json:"message"`
	OpenModal string `query:"openModal" json:"openModal"`
}

// AuthCallback is where the OAuth backend sends the browser back to. The
// outcome is recorded within AuthCallbackTimeout and the browser is always
// forwarded to the settings page.
func AuthCallback(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q callbackQuery
		if err := c.QueryParser(&q); err != nil {
			return badRequest(c, "Invalid callback parameters")
		}

		status, errMsg := q.Status, q.Error
		if errMsg == "" {
			errMsg = q.Message
		}
		if err := a.Validator.Validate(&q); err != nil {
			a.Logger.Warn("invalid auth callback",
				"request_id", middleware.GetRequestID(c),
				"error", err,
			)
			if status == "success" || errMsg == "" {
				errMsg = err.Error()
			}
			status = "error"
		}

		if status == "success" {
			forwardSessionCookie(c, a)
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), a.Config.AuthCallbackTimeout)
		defer cancel()

		// Only the wait is bounded; the call keeps running after a timeout.
		done := make(chan error, 1)
		go func() {
			done <- a.CloudSync.HandleAuthCallback(context.Background(), models.Provider(q.Provider), status, errMsg)
		}()

		select {
		case err := <-done:
			if err != nil {
				a.Logger.Warn("auth callback failed",
					"request_id", middleware.GetRequestID(c),
					"provider", q.Provider,
					"error", err,
				)
			}
		case <-ctx.Done():
			a.Logger.Warn("auth callback timed out",
				"request_id", middleware.GetRequestID(c),
				"provider", q.Provider,
				"timeout", a.Config.AuthCallbackTimeout,
			)
		}

		target := settingsPath
		if q.OpenModal == "true" {
			target += "?openCloudSync=true"
		}

		c.Set("HX-Redirect", target)
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return pages.AuthRedirect(target).Render(c.UserContext(), c.Response().BodyWriter())
	}
}

// forwardSessionCookie stores the backend session cookie that came with the
// callback so later backend calls are made on behalf of the same session.
func forwardSessionCookie(c *fiber.Ctx, a *app.App) {
	name := a.Config.AuthSessionCookie
	value := c.Cookies(name)
	if value == "" {
		return
	}

	backend, err := url.Parse(a.Config.AuthBackendURL)
	if err != nil {
		a.Logger.Error("invalid auth backend url", "url", a.Config.AuthBackendURL, "error", err)
		return
	}

	a.Jar.SetCookies(backend, []*http.Cookie{{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   backend.Scheme == "https",
	}})
}
