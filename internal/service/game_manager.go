package service

import (
	"errors"
	"sync"

	"github.com/gofiber/websocket/v2"

	"github.com/trichess/trichess-backend/internal/board"
	"github.com/trichess/trichess-backend/internal/ws"
)

// ErrGameNotFound is returned for unknown game IDs.
var ErrGameNotFound = errors.New("game not found")

// GameManager is the registry of live sessions.
type GameManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewGameManager() *GameManager {
	return &GameManager{sessions: make(map[string]*Session)}
}

func (gm *GameManager) CreateGame(gameID string, opts CreateOptions) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.sessions[gameID]; exists {
		return errors.New("game already exists")
	}
	gm.sessions[gameID] = NewSession(gameID, opts)
	return nil
}

func (gm *GameManager) session(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, exists := gm.sessions[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return s, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (board.Color, error) {
	s, err := gm.session(gameID)
	if err != nil {
		return 0, err
	}
	return s.AddPlayer(playerID)
}

func (gm *GameManager) MakeMove(gameID, playerID string, payload ws.MovePayload) error {
	s, err := gm.session(gameID)
	if err != nil {
		return err
	}
	return s.MakeMove(playerID, payload)
}

func (gm *GameManager) Undo(gameID, playerID string) error {
	s, err := gm.session(gameID)
	if err != nil {
		return err
	}
	return s.Undo(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (StatePayload, error) {
	s, err := gm.session(gameID)
	if err != nil {
		return StatePayload{}, err
	}
	return s.State(), nil
}

func (gm *GameManager) LegalMoves(gameID string, pos board.Position) ([]board.Move, error) {
	s, err := gm.session(gameID)
	if err != nil {
		return nil, err
	}
	return s.LegalMoves(pos), nil
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	s, err := gm.session(gameID)
	if err != nil {
		return err
	}
	return s.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	s, err := gm.session(gameID)
	if err != nil {
		return
	}
	s.UnregisterConnection(playerID)
}
