// Package service sits between the transport controllers and the game
// core: it owns the session registry and exposes game operations keyed
// by game and player IDs.
package service

import (
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/trichess/trichess-backend/internal/board"
	"github.com/trichess/trichess-backend/internal/search"
	"github.com/trichess/trichess-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{gameManager: gameManager}
}

// CreateGame allocates a new session and returns its ID. Difficulty is
// clamped into the engine's supported range for AI games.
func (gs *GameService) CreateGame(opts CreateOptions) (string, error) {
	if opts.VsAI {
		if opts.Difficulty < search.MinDifficulty {
			opts.Difficulty = search.MinDifficulty
		}
		if opts.Difficulty > search.MaxDifficulty {
			opts.Difficulty = search.MaxDifficulty
		}
	}

	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(gameID, opts); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID, playerID string) (board.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (StatePayload, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoves(gameID string, pos board.Position) ([]board.Move, error) {
	return gs.gameManager.LegalMoves(gameID, pos)
}

func (gs *GameService) HandleMove(gameID, playerID string, payload ws.MovePayload) error {
	return gs.gameManager.MakeMove(gameID, playerID, payload)
}

func (gs *GameService) HandleUndo(gameID, playerID string) error {
	return gs.gameManager.Undo(gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}
