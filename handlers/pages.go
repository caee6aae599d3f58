package handlers

import (
	"lightningbowl-sync/app"
	"lightningbowl-sync/templates/pages"

	"github.com/gofiber/fiber/v2"
)

func HomePage(c *fiber.Ctx) error {
	return c.Redirect(settingsPath)
}

// SettingsPage renders the cloud sync settings
func SettingsPage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		open := c.Query("openCloudSync") == "true"
		return pages.Settings(a.CloudSync.Settings(), a.CloudSync.Status(), open).Render(c.UserContext(), c.Response().BodyWriter())
	}
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
