// Package eval scores positions for the search engine: signed material
// plus piece-square bonuses, extended to three levels by a per-level
// weight. The score is a pure function of the position.
package eval

import "github.com/trichess/trichess-backend/internal/board"

// endgamePieceLimit is the non-king piece count at or below which the
// king switches to its endgame table.
const endgamePieceLimit = 10

// Evaluate returns the position score in centipawns from the
// perspective of the side to move.
func Evaluate(b *board.Board) int {
	pieces := 0
	for i := 0; i < board.NumSquares; i++ {
		p := b.PieceAt(board.FromIndex(i))
		if !p.IsEmpty() && p.Type != board.King {
			pieces++
		}
	}
	endgame := pieces <= endgamePieceLimit

	score := 0
	for i := 0; i < board.NumSquares; i++ {
		pos := board.FromIndex(i)
		p := b.PieceAt(pos)
		if p.IsEmpty() {
			continue
		}

		value := pieceValues[p.Type]
		rank := pos.Rank
		if p.Color == board.Black {
			rank = board.NumRanks - 1 - rank
		}
		value += tableFor(p.Type, endgame)[rank][pos.File]
		value += levelBonus[pos.Level]

		if p.Color == board.White {
			score += value
		} else {
			score -= value
		}
	}

	if b.SideToMove() == board.Black {
		return -score
	}
	return score
}
