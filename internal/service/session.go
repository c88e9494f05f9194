package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"

	"github.com/trichess/trichess-backend/internal/board"
	"github.com/trichess/trichess-backend/internal/game"
	"github.com/trichess/trichess-backend/internal/search"
	"github.com/trichess/trichess-backend/internal/ws"
)

// gameConnections holds the sockets subscribed to one session.
type gameConnections struct {
	mu    sync.RWMutex
	conns map[string]*websocket.Conn // playerID -> connection
}

func newGameConnections() *gameConnections {
	return &gameConnections{conns: make(map[string]*websocket.Conn)}
}

// CreateOptions configure a new game.
type CreateOptions struct {
	VsAI       bool        `json:"vsAi"`
	Difficulty int         `json:"difficulty"`
	AIColor    board.Color `json:"aiColor"`
}

// ClientPlayer is the per-side information sent to clients.
type ClientPlayer struct {
	ID          string      `json:"name"`
	Color       board.Color `json:"color"`
	IsAI        bool        `json:"isAi"`
	ThinkTimeMs int64       `json:"thinkTimeMs"`
}

// Square pairs an occupied position with its piece.
type Square struct {
	Position board.Position `json:"position"`
	Piece    board.Piece    `json:"piece"`
}

// CapturedPieces lists what each side has captured.
type CapturedPieces struct {
	White []board.Piece `json:"white"`
	Black []board.Piece `json:"black"`
}

// StatePayload is the full game view broadcast to clients.
type StatePayload struct {
	Squares        []Square       `json:"squares"`
	ToMove         board.Color    `json:"toMove"`
	Status         game.Status    `json:"status"`
	IsCheck        bool           `json:"isCheck"`
	MoveHistory    []game.Ply     `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *board.Move    `json:"lastMove"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// Session wires one game to its players and connections. The embedded
// game is only touched under the session mutex; broadcasts go out on
// their own goroutine with a snapshot payload.
type Session struct {
	ID string

	mu         sync.Mutex
	game       *game.Game
	players    [2]string // player IDs by color; empty while unclaimed
	vsAI       bool
	aiColor    board.Color
	difficulty int
	clocks     [2]*thinkClock

	connections *gameConnections
}

func NewSession(id string, opts CreateOptions) *Session {
	s := &Session{
		ID:          id,
		game:        game.New(),
		vsAI:        opts.VsAI,
		aiColor:     opts.AIColor,
		difficulty:  opts.Difficulty,
		clocks:      [2]*thinkClock{{}, {}},
		connections: newGameConnections(),
	}
	if s.vsAI {
		s.players[s.aiColor] = "ai"
	}
	return s
}

// AddPlayer claims a color for the player and returns it. In AI games
// the single human seat is the engine's opposite color.
func (s *Session) AddPlayer(playerID string) (board.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vsAI {
		human := s.aiColor.Other()
		if s.players[human] != "" && s.players[human] != playerID {
			return 0, errors.New("game is full")
		}
		s.players[human] = playerID
		s.clocks[board.White].Start()
		if s.aiColor == board.White && s.game.CurrentTurn() == board.White {
			go s.playAIMove()
		}
		return human, nil
	}

	for _, color := range []board.Color{board.White, board.Black} {
		if s.players[color] == "" {
			s.players[color] = playerID
			if color == board.Black {
				s.clocks[board.White].Start()
			}
			return color, nil
		}
	}
	return 0, errors.New("game is full")
}

func (s *Session) colorOf(playerID string) (board.Color, bool) {
	for _, color := range []board.Color{board.White, board.Black} {
		if s.players[color] != "" && s.players[color] == playerID {
			return color, true
		}
	}
	return 0, false
}

// MakeMove applies a player's move and, in AI games, schedules the
// engine's reply.
func (s *Session) MakeMove(playerID string, payload ws.MovePayload) error {
	s.mu.Lock()

	color, ok := s.colorOf(playerID)
	if !ok {
		s.mu.Unlock()
		return errors.New("player not in game")
	}
	if s.game.CurrentTurn() != color {
		s.mu.Unlock()
		return errors.New("not your turn")
	}

	status, err := s.game.MakeMove(payload.From, payload.To, payload.Promotion)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.clocks[color].Stop()
	s.clocks[color.Other()].Start()

	aiTurn := s.vsAI && !status.Terminal() && s.game.CurrentTurn() == s.aiColor
	s.mu.Unlock()

	go s.broadcastState()
	if aiTurn {
		go s.playAIMove()
	}
	return nil
}

// playAIMove asks the search engine for a move on the engine's turn.
// The search runs on a snapshot outside the session lock so clients can
// keep reading state and undoing while the engine thinks; the move is
// re-validated against the live game before it is applied.
func (s *Session) playAIMove() {
	s.mu.Lock()
	if s.game.Status().Terminal() || s.game.CurrentTurn() != s.aiColor {
		s.mu.Unlock()
		return
	}
	snapshot := s.game.Snapshot()
	difficulty := s.difficulty
	s.mu.Unlock()

	res, err := search.Run(snapshot, search.ForDifficulty(difficulty))
	if err != nil {
		log.Printf("session %s: ai move failed: %v", s.ID, err)
		return
	}

	s.mu.Lock()
	if s.game.Status().Terminal() || s.game.CurrentTurn() != s.aiColor {
		// The position changed while the engine was thinking; the
		// stale move is discarded.
		s.mu.Unlock()
		return
	}
	if _, err := s.game.ApplyMove(res.Move); err != nil {
		s.mu.Unlock()
		log.Printf("session %s: applying ai move %s failed: %v", s.ID, res.Move, err)
		return
	}
	s.clocks[s.aiColor].Stop()
	s.clocks[s.aiColor.Other()].Start()
	s.mu.Unlock()

	s.broadcastState()
}

// Undo reverses the last ply. Against the AI it also takes back the
// engine's reply so the human is to move again.
func (s *Session) Undo(playerID string) error {
	s.mu.Lock()

	if _, ok := s.colorOf(playerID); !ok {
		s.mu.Unlock()
		return errors.New("player not in game")
	}
	if err := s.game.Undo(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.vsAI && s.game.CurrentTurn() == s.aiColor {
		if err := s.game.Undo(); err != nil && !errors.Is(err, board.ErrNoMoveToUndo) {
			s.mu.Unlock()
			return err
		}
	}
	s.mu.Unlock()

	go s.broadcastState()
	return nil
}

// LegalMoves returns the highlight set for the piece on pos.
func (s *Session) LegalMoves(pos board.Position) []board.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalMovesFrom(pos)
}

// State builds the client view of the session.
func (s *Session) State() StatePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statePayload()
}

func (s *Session) statePayload() StatePayload {
	snapshot := s.game.Snapshot()
	history := s.game.History()

	payload := StatePayload{
		ToMove:      snapshot.SideToMove(),
		Status:      s.game.Status(),
		IsCheck:     s.game.Status() == game.StatusInCheck || s.game.Status() == game.StatusCheckmate,
		MoveHistory: history,
		CapturedPieces: CapturedPieces{
			White: []board.Piece{},
			Black: []board.Piece{},
		},
	}

	for i := 0; i < board.NumSquares; i++ {
		pos := board.FromIndex(i)
		if p := snapshot.PieceAt(pos); !p.IsEmpty() {
			payload.Squares = append(payload.Squares, Square{Position: pos, Piece: p})
		}
	}

	for _, ply := range history {
		if !ply.Move.IsCapture() {
			continue
		}
		if ply.Color == board.White {
			payload.CapturedPieces.White = append(payload.CapturedPieces.White, ply.Move.Captured)
		} else {
			payload.CapturedPieces.Black = append(payload.CapturedPieces.Black, ply.Move.Captured)
		}
	}
	if len(history) > 0 {
		last := history[len(history)-1].Move
		payload.LastMove = &last
	}

	payload.Players.White = s.clientPlayer(board.White)
	payload.Players.Black = s.clientPlayer(board.Black)
	return payload
}

func (s *Session) clientPlayer(color board.Color) ClientPlayer {
	return ClientPlayer{
		ID:          s.players[color],
		Color:       color,
		IsAI:        s.vsAI && color == s.aiColor,
		ThinkTimeMs: s.clocks[color].Elapsed().Milliseconds(),
	}
}

// RegisterConnection subscribes a socket to state broadcasts. A second
// connection for the same player is rejected in favor of the existing
// one.
func (s *Session) RegisterConnection(playerID string, conn *websocket.Conn) error {
	s.mu.Lock()
	_, isPlayer := s.colorOf(playerID)
	s.mu.Unlock()
	if !isPlayer {
		return errors.New("not authorized to join this game")
	}

	s.connections.mu.Lock()
	if _, exists := s.connections.conns[playerID]; exists {
		s.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
		)
		conn.Close()
		return nil
	}
	s.connections.conns[playerID] = conn
	s.connections.mu.Unlock()

	go s.broadcastState()
	return nil
}

func (s *Session) UnregisterConnection(playerID string) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	delete(s.connections.conns, playerID)
}

func (s *Session) broadcastState() {
	state := s.State()

	s.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(s.connections.conns))
	for playerID, conn := range s.connections.conns {
		active[playerID] = conn
	}
	s.connections.mu.RUnlock()

	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("session %s: marshal state: %v", s.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}
	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("session %s: send state to %s: %v", s.ID, playerID, err)
			s.connections.mu.Lock()
			delete(s.connections.conns, playerID)
			s.connections.mu.Unlock()
		}
	}
}
