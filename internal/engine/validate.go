package engine

import (
	"errors"

	"github.com/trichess/trichess-backend/internal/board"
)

// Sentinel errors for move validation, checked with errors.Is. All are
// detected before a move is applied; a rejected move leaves the board
// unchanged.
var (
	ErrOutOfBounds        = errors.New("square out of bounds")
	ErrWrongColor         = errors.New("piece belongs to the other side")
	ErrPathBlocked        = errors.New("move blocked or not reachable by the piece")
	ErrLeavesKingInCheck  = errors.New("move leaves own king in check")
	ErrMalformedPromotion = errors.New("malformed promotion")
)

// ValidateMove resolves a requested from/to/promotion triple against
// the position and returns the fully populated move, or the reason the
// request is invalid.
func ValidateMove(b *board.Board, from, to board.Position, promotion board.PieceType) (board.Move, error) {
	if !from.Valid() || !to.Valid() {
		return board.Move{}, ErrOutOfBounds
	}
	p := b.PieceAt(from)
	if p.IsEmpty() || p.Color != b.SideToMove() {
		return board.Move{}, ErrWrongColor
	}

	switch promotion {
	case board.Empty, board.Queen, board.Rook, board.Bishop, board.Knight:
	default:
		return board.Move{}, ErrMalformedPromotion
	}

	var candidate board.Move
	found := false
	for _, m := range PseudoMovesFrom(b, from) {
		if m.To == to && m.Promotion == promotion {
			candidate = m
			found = true
			break
		}
	}
	if !found {
		// Distinguish a missing/invalid promotion choice from plain
		// unreachability: the same from/to with another promotion.
		for _, m := range PseudoMovesFrom(b, from) {
			if m.To == to {
				return board.Move{}, ErrMalformedPromotion
			}
		}
		return board.Move{}, ErrPathBlocked
	}

	if !isLegal(b, p.Color, candidate) {
		return board.Move{}, ErrLeavesKingInCheck
	}
	return candidate, nil
}
