package engine

import "github.com/trichess/trichess-backend/internal/board"

// LegalMoves returns every legal move for the given side: the
// pseudo-legal set with any move that leaves the mover's own king
// attacked filtered out. Each candidate is simulated with the board's
// exact apply/undo primitives.
func LegalMoves(b *board.Board, side board.Color) []board.Move {
	return filterLegal(b, side, PseudoLegalMoves(b, side))
}

// LegalMovesFrom returns the legal moves of the piece on pos, or nil if
// the square is empty.
func LegalMovesFrom(b *board.Board, pos board.Position) []board.Move {
	p := b.PieceAt(pos)
	if p.IsEmpty() {
		return nil
	}
	return filterLegal(b, p.Color, PseudoMovesFrom(b, pos))
}

func filterLegal(b *board.Board, side board.Color, pseudo []board.Move) []board.Move {
	legal := pseudo[:0]
	for _, m := range pseudo {
		if isLegal(b, side, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

func isLegal(b *board.Board, side board.Color, m board.Move) bool {
	b.ApplyMove(m)
	safe := !IsInCheck(b, side)
	b.UndoLast()
	return safe
}

// HasAnyLegalMove reports whether the side has at least one legal move,
// stopping at the first one found.
func HasAnyLegalMove(b *board.Board, side board.Color) bool {
	for i := 0; i < board.NumSquares; i++ {
		pos := board.FromIndex(i)
		p := b.PieceAt(pos)
		if p.IsEmpty() || p.Color != side {
			continue
		}
		for _, m := range PseudoMovesFrom(b, pos) {
			if isLegal(b, side, m) {
				return true
			}
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no
// legal move.
func IsCheckmate(b *board.Board) bool {
	side := b.SideToMove()
	return IsInCheck(b, side) && !HasAnyLegalMove(b, side)
}

// IsStalemate reports whether the side to move is not in check yet has
// no legal move.
func IsStalemate(b *board.Board) bool {
	side := b.SideToMove()
	return !IsInCheck(b, side) && !HasAnyLegalMove(b, side)
}
