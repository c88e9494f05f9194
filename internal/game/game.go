// Package game orchestrates one game: turn sequencing, move
// application, undo, and terminal-state classification. It owns the
// authoritative board; search only ever sees clones.
package game

import (
	"errors"

	"github.com/trichess/trichess-backend/internal/board"
	"github.com/trichess/trichess-backend/internal/engine"
	"github.com/trichess/trichess-backend/internal/search"
)

// Status classifies the game for the side to move.
type Status string

const (
	StatusAwaitingMove Status = "awaitingMove"
	StatusInCheck      Status = "inCheck"
	StatusCheckmate    Status = "checkmate"
	StatusStalemate    Status = "stalemate"
	StatusDrawn        Status = "drawn"
)

// Terminal reports whether no further move can be made.
func (s Status) Terminal() bool {
	return s == StatusCheckmate || s == StatusStalemate || s == StatusDrawn
}

// ErrGameOver is returned when a move is attempted after the game ended.
var ErrGameOver = errors.New("game is over")

// Draw thresholds: the fifty-move rule counts half-moves, repetition
// counts occurrences of a position hash within one game.
const (
	fiftyMoveHalfmoves = 100
	repetitionLimit    = 3
)

// Ply is one applied half-move together with its notation.
type Ply struct {
	Move     board.Move  `json:"move"`
	Color    board.Color `json:"color"`
	Notation string      `json:"notation"`
}

// Game is the turn state machine around a board.
type Game struct {
	board  *board.Board
	status Status
	hashes []uint64 // position hash after every ply; index 0 is the start position
	plies  []Ply
}

// New starts a fresh game with the standard three-level setup.
func New() *Game {
	b := board.New()
	return &Game{
		board:  b,
		status: StatusAwaitingMove,
		hashes: []uint64{b.Hash()},
	}
}

// NewFromBoard starts a game from an arbitrary position, classifying
// it immediately. The board is cloned; the caller keeps ownership of
// its copy.
func NewFromBoard(b *board.Board) *Game {
	g := &Game{
		board:  b.Clone(),
		hashes: []uint64{b.Hash()},
	}
	g.classify()
	return g
}

func (g *Game) CurrentTurn() board.Color {
	return g.board.SideToMove()
}

func (g *Game) Status() Status {
	return g.status
}

// Snapshot returns an independent copy of the position for rendering or
// analysis; mutations to it never reach the live game.
func (g *Game) Snapshot() *board.Board {
	return g.board.Clone()
}

// History returns the applied plies in order.
func (g *Game) History() []Ply {
	out := make([]Ply, len(g.plies))
	copy(out, g.plies)
	return out
}

// LegalMovesFrom returns the legal moves of the side to move from the
// given square, for highlighting. Squares holding the opponent's pieces
// yield nothing.
func (g *Game) LegalMovesFrom(pos board.Position) []board.Move {
	if g.status.Terminal() || !pos.Valid() {
		return nil
	}
	if p := g.board.PieceAt(pos); p.IsEmpty() || p.Color != g.board.SideToMove() {
		return nil
	}
	return engine.LegalMovesFrom(g.board, pos)
}

// MakeMove validates and applies a move requested as coordinates. On
// rejection the state is unchanged and the current status is returned
// alongside the error.
func (g *Game) MakeMove(from, to board.Position, promotion board.PieceType) (Status, error) {
	if g.status.Terminal() {
		return g.status, ErrGameOver
	}
	m, err := engine.ValidateMove(g.board, from, to, promotion)
	if err != nil {
		return g.status, err
	}
	return g.apply(m), nil
}

// ApplyMove applies a move value, re-validating it against the current
// position. Search results are applied through the same path as human
// moves.
func (g *Game) ApplyMove(m board.Move) (Status, error) {
	return g.MakeMove(m.From, m.To, m.Promotion)
}

func (g *Game) apply(m board.Move) Status {
	g.board.ApplyMove(m)
	g.hashes = append(g.hashes, g.board.Hash())
	g.classify()

	notation := m.String()
	switch g.status {
	case StatusCheckmate:
		notation += "#"
	case StatusInCheck:
		notation += "+"
	}
	g.plies = append(g.plies, Ply{Move: m, Color: m.Piece.Color, Notation: notation})
	return g.status
}

// Undo reverses exactly one ply and reclassifies the restored position.
// Only plies played through this game can be taken back; a position
// adopted via NewFromBoard cannot be unwound past its starting point.
func (g *Game) Undo() error {
	if len(g.plies) == 0 {
		return board.ErrNoMoveToUndo
	}
	if err := g.board.UndoLast(); err != nil {
		return err
	}
	g.hashes = g.hashes[:len(g.hashes)-1]
	g.plies = g.plies[:len(g.plies)-1]
	g.classify()
	return nil
}

// RequestAIMove searches the current position at the given difficulty
// and returns the chosen move without applying it.
func (g *Game) RequestAIMove(difficulty int) (board.Move, error) {
	switch g.status {
	case StatusCheckmate, StatusStalemate:
		return board.Move{}, search.ErrNoLegalMoves
	case StatusDrawn:
		return board.Move{}, ErrGameOver
	}
	res, err := search.Run(g.board, search.ForDifficulty(difficulty))
	if err != nil {
		return board.Move{}, err
	}
	return res.Move, nil
}

func (g *Game) classify() {
	side := g.board.SideToMove()
	inCheck := engine.IsInCheck(g.board, side)

	if !engine.HasAnyLegalMove(g.board, side) {
		if inCheck {
			g.status = StatusCheckmate
		} else {
			g.status = StatusStalemate
		}
		return
	}
	if g.board.HalfmoveClock() >= fiftyMoveHalfmoves || g.isRepetition() {
		g.status = StatusDrawn
		return
	}
	if inCheck {
		g.status = StatusInCheck
	} else {
		g.status = StatusAwaitingMove
	}
}

// isRepetition reports whether the current position occurred at least
// three times over the game.
func (g *Game) isRepetition() bool {
	current := g.hashes[len(g.hashes)-1]
	seen := 0
	for _, h := range g.hashes {
		if h == current {
			seen++
			if seen >= repetitionLimit {
				return true
			}
		}
	}
	return false
}
