package ws

import (
	"encoding/json"

	"github.com/trichess/trichess-backend/internal/board"
)

// MessageType distinguishes the kinds of messages exchanged over a game
// socket.
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is the envelope for every WebSocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is a client's move request: coordinates plus an optional
// promotion choice.
type MovePayload struct {
	From      board.Position  `json:"from"`
	To        board.Position  `json:"to"`
	Promotion board.PieceType `json:"promotion,omitempty"`
}
