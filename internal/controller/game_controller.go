package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trichess/trichess-backend/internal/board"
	"github.com/trichess/trichess-backend/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var opts service.CreateOptions
	if err := c.BodyParser(&opts); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid create options",
		})
	}

	gameID, err := gc.gameService.CreateGame(opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, service.ErrGameNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game state",
		})
	}

	return c.JSON(state)
}

// GetLegalMoves returns the legal moves of the piece on the queried
// square, for client-side highlighting.
func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	pos := board.Position{
		Level: c.QueryInt("level", -1),
		Rank:  c.QueryInt("rank", -1),
		File:  c.QueryInt("file", -1),
	}
	if !pos.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid square",
		})
	}

	moves, err := gc.gameService.LegalMoves(gameID, pos)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch legal moves",
		})
	}
	if moves == nil {
		moves = []board.Move{}
	}

	return c.JSON(fiber.Map{
		"moves": moves,
	})
}
