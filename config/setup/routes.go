package setup

import (
	"lightningbowl-sync/app"
	"lightningbowl-sync/handlers"
	"lightningbowl-sync/middleware"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	// Public routes
	fiberApp.Get("/", handlers.HomePage)
	fiberApp.Get("/health", handlers.Health)
	fiberApp.Get("/settings", handlers.SettingsPage(application))

	// OAuth backend redirects the browser here
	fiberApp.Get("/auth/callback", handlers.AuthCallback(application))

	// Sync actions call out to the backend and the providers, so they get a tighter limit
	syncLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many sync requests",
			})
		},
	})

	api := fiberApp.Group("/api", middleware.TokenRequired(application.Config.APIToken))

	cloudSync := api.Group("/cloud-sync")
	cloudSync.Get("/settings", handlers.GetCloudSyncSettings(application))
	cloudSync.Patch("/settings", handlers.UpdateCloudSyncSettings(application))
	cloudSync.Get("/status", handlers.GetCloudSyncStatus(application))
	cloudSync.Get("/events", handlers.CloudSyncEvents(application))
	cloudSync.Post("/connect/:provider", handlers.ConnectProvider(application))
	cloudSync.Post("/sync", syncLimiter, handlers.SyncNow(application))
	cloudSync.Post("/disconnect", syncLimiter, handlers.DisconnectProvider(application))

	api.Get("/notifications", handlers.GetNotifications(application))

	api.Get("/games", handlers.GetGames(application))
	api.Post("/games", handlers.CreateGame(application))
	api.Delete("/games/:id", handlers.DeleteGame(application))
	api.Get("/leagues", handlers.GetLeagues(application))
	api.Post("/leagues", handlers.CreateLeague(application))

	api.Get("/export", handlers.ExportGames(application))
	api.Post("/import", handlers.ImportGames(application))
}
