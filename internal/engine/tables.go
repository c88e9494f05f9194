// Package engine implements the movement rules of three-level chess:
// pseudo-legal move generation, attack detection and the legality
// filter. Piece movement is table-driven; each piece type maps to a set
// of slider directions or leaper offsets, so a rule change is a table
// change, not a new type.
package engine

import "github.com/trichess/trichess-backend/internal/board"

// Delta is a movement step across the three axes.
type Delta struct {
	Level, Rank, File int
}

func (d Delta) apply(p board.Position) board.Position {
	return board.Position{
		Level: p.Level + d.Level,
		Rank:  p.Rank + d.Rank,
		File:  p.File + d.File,
	}
}

// Slider directions. The rook travels its rank or file within a level
// and straight along the level axis; the bishop travels the in-level
// diagonals and the true 3-axis diagonals where all three deltas share
// magnitude; the queen is the union.
var (
	rookDirs = []Delta{
		{0, 0, 1}, {0, 0, -1}, {0, 1, 0}, {0, -1, 0},
		{1, 0, 0}, {-1, 0, 0},
	}

	bishopDirs = []Delta{
		{0, 1, 1}, {0, 1, -1}, {0, -1, 1}, {0, -1, -1},
		{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
		{-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}, {-1, -1, -1},
	}

	queenDirs = append(append([]Delta{}, rookDirs...), bishopDirs...)
)

// Leaper offsets. The knight keeps its in-level L-jump and gains a
// cross-level variant: one level up or down plus a (1,2) or (2,1)
// offset in the rank/file plane. The king steps to any square of its
// 26-cell 3D neighborhood.
var (
	knightOffsets = buildKnightOffsets()
	kingOffsets   = buildKingOffsets()
)

func buildKnightOffsets() []Delta {
	var offsets []Delta
	for _, rf := range [][2]int{
		{2, 1}, {1, 2}, {-1, 2}, {-2, 1},
		{-2, -1}, {-1, -2}, {1, -2}, {2, -1},
	} {
		for _, level := range []int{-1, 0, 1} {
			offsets = append(offsets, Delta{level, rf[0], rf[1]})
		}
	}
	return offsets
}

func buildKingOffsets() []Delta {
	var offsets []Delta
	for level := -1; level <= 1; level++ {
		for rank := -1; rank <= 1; rank++ {
			for file := -1; file <= 1; file++ {
				if level == 0 && rank == 0 && file == 0 {
					continue
				}
				offsets = append(offsets, Delta{level, rank, file})
			}
		}
	}
	return offsets
}

// sliderDirs and leaperOffsets are the per-type candidate tables.
var sliderDirs = [board.King + 1][]Delta{
	board.Bishop: bishopDirs,
	board.Rook:   rookDirs,
	board.Queen:  queenDirs,
}

var leaperOffsets = [board.King + 1][]Delta{
	board.Knight: knightOffsets,
	board.King:   kingOffsets,
}

// pawnDir is the rank direction a pawn advances, per color.
func pawnDir(c board.Color) int {
	if c == board.White {
		return 1
	}
	return -1
}

// pawnStartRank is the rank from which a pawn may double-step.
func pawnStartRank(c board.Color) int {
	if c == board.White {
		return 1
	}
	return 6
}

// pawnPromotionRank is the far rank of the pawn's level.
func pawnPromotionRank(c board.Color) int {
	if c == board.White {
		return 7
	}
	return 0
}

var promotionTypes = []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}
