package engine

import "github.com/trichess/trichess-backend/internal/board"

// IsSquareAttacked reports whether any piece of the attacking color
// reaches the given square. It scans outward from the square: slider
// rays stop at the first occupied square, leaper offsets and pawn
// capture squares are probed directly.
func IsSquareAttacked(b *board.Board, pos board.Position, attacker board.Color) bool {
	for _, dir := range rookDirs {
		if p, ok := firstPieceAlong(b, pos, dir); ok && p.Color == attacker &&
			(p.Type == board.Rook || p.Type == board.Queen) {
			return true
		}
	}
	for _, dir := range bishopDirs {
		if p, ok := firstPieceAlong(b, pos, dir); ok && p.Color == attacker &&
			(p.Type == board.Bishop || p.Type == board.Queen) {
			return true
		}
	}
	if leaperReaches(b, pos, attacker, board.Knight, knightOffsets) {
		return true
	}
	if leaperReaches(b, pos, attacker, board.King, kingOffsets) {
		return true
	}

	// A pawn attacks pos if it sits one rank behind (from the
	// attacker's point of view) on an adjacent file of the same level.
	rank := pos.Rank - pawnDir(attacker)
	for _, df := range []int{-1, 1} {
		from := board.Position{Level: pos.Level, Rank: rank, File: pos.File + df}
		if !from.Valid() {
			continue
		}
		if p := b.PieceAt(from); p.Type == board.Pawn && p.Color == attacker {
			return true
		}
	}
	return false
}

func firstPieceAlong(b *board.Board, pos board.Position, dir Delta) (board.Piece, bool) {
	for target := dir.apply(pos); target.Valid(); target = dir.apply(target) {
		if p := b.PieceAt(target); !p.IsEmpty() {
			return p, true
		}
	}
	return board.Piece{}, false
}

func leaperReaches(b *board.Board, pos board.Position, attacker board.Color, t board.PieceType, offsets []Delta) bool {
	for _, off := range offsets {
		from := off.apply(pos)
		if !from.Valid() {
			continue
		}
		if p := b.PieceAt(from); p.Type == t && p.Color == attacker {
			return true
		}
	}
	return false
}

// IsInCheck reports whether the given side's king is attacked.
func IsInCheck(b *board.Board, side board.Color) bool {
	return IsSquareAttacked(b, b.KingSquare(side), side.Other())
}
