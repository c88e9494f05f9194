package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/trichess/trichess-backend/internal/service"
	"github.com/trichess/trichess-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{gameService: gameService}
}

// HandleConnection runs the read loop for one game socket, dispatching
// move and undo messages until the connection closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("failed to register connection: %v", err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(c, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeUndo:
		return wsc.gameService.HandleUndo(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, _ := json.Marshal(errorMsg)
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	})
}
