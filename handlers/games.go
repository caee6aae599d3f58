package handlers

import (
	"lightningbowl-sync/app"
	"lightningbowl-sync/models"
	"lightningbowl-sync/storage"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetGames lists the history, newest first
func GetGames(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		games := a.Games.All()
		return success(c, fiber.Map{"games": games, "count": len(games)})
	}
}

// CreateGame saves a game, replacing any game with the same id
func CreateGame(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateGameRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		game, err := a.Games.Add(c.UserContext(), req.Game)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to save game", err)
		}

		return created(c, fiber.Map{"game": game})
	}
}

// DeleteGame removes a game by id
func DeleteGame(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("id")
		if gameID == "" {
			return badRequest(c, "game ID is required")
		}

		if err := a.Games.Delete(c.UserContext(), gameID); err != nil {
			return serverErrorWithDetails(c, "Failed to delete game", err)
		}

		return success(c, fiber.Map{"message": "Game deleted successfully"})
	}
}

func GetLeagues(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		leagues, err := a.Games.Leagues(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch leagues", err)
		}
		return success(c, fiber.Map{"leagues": leagues})
	}
}

func CreateLeague(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateLeagueRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if err := a.Games.AddLeague(c.UserContext(), req.Name); err != nil {
			return serverErrorWithDetails(c, "Failed to create league", err)
		}

		return created(c, fiber.Map{"league": req.Name})
	}
}

// ExportGames downloads the same workbook a sync would upload
func ExportGames(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := a.Excel.Generate(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to generate export", err)
		}

		c.Attachment(storage.FileName(time.Now()))
		c.Set(fiber.HeaderContentType, storage.XLSXMimeType)
		return c.Send(data)
	}
}

// ImportGames replaces the history with the rows of an uploaded workbook
func ImportGames(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "file is required")
		}

		file, err := header.Open()
		if err != nil {
			return badRequest(c, "Failed to read uploaded file")
		}
		defer file.Close()

		count, err := a.Excel.Import(c.UserContext(), file)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}

		return success(c, fiber.Map{"imported": count})
	}
}
