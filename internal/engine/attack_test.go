package engine

import (
	"testing"

	"github.com/trichess/trichess-backend/internal/board"
)

func TestIsSquareAttacked(t *testing.T) {
	target := board.Position{Level: 1, Rank: 3, File: 3}

	tests := []struct {
		name     string
		place    func(b *board.Board)
		attacker board.Color
		want     bool
	}{
		{
			name:     "rook from the level above",
			place:    func(b *board.Board) { b.Place(board.Position{Level: 2, Rank: 3, File: 3}, bPiece(board.Rook)) },
			attacker: board.Black,
			want:     true,
		},
		{
			name:     "rook along the rank",
			place:    func(b *board.Board) { b.Place(board.Position{Level: 1, Rank: 3, File: 7}, bPiece(board.Rook)) },
			attacker: board.Black,
			want:     true,
		},
		{
			name: "rook blocked by interposed piece",
			place: func(b *board.Board) {
				b.Place(board.Position{Level: 1, Rank: 3, File: 7}, bPiece(board.Rook))
				b.Place(board.Position{Level: 1, Rank: 3, File: 5}, wPiece(board.Pawn))
			},
			attacker: board.Black,
			want:     false,
		},
		{
			name:     "bishop on a 3-axis diagonal",
			place:    func(b *board.Board) { b.Place(board.Position{Level: 2, Rank: 4, File: 4}, bPiece(board.Bishop)) },
			attacker: board.Black,
			want:     true,
		},
		{
			name:     "bishop cannot cross levels orthogonally",
			place:    func(b *board.Board) { b.Place(board.Position{Level: 2, Rank: 3, File: 4}, bPiece(board.Bishop)) },
			attacker: board.Black,
			want:     false,
		},
		{
			name:     "queen along the level axis",
			place:    func(b *board.Board) { b.Place(board.Position{Level: 0, Rank: 3, File: 3}, bPiece(board.Queen)) },
			attacker: board.Black,
			want:     true,
		},
		{
			name:     "knight from another level",
			place:    func(b *board.Board) { b.Place(board.Position{Level: 0, Rank: 5, File: 4}, bPiece(board.Knight)) },
			attacker: board.Black,
			want:     true,
		},
		{
			name:     "black pawn one rank above",
			place:    func(b *board.Board) { b.Place(board.Position{Level: 1, Rank: 4, File: 4}, bPiece(board.Pawn)) },
			attacker: board.Black,
			want:     true,
		},
		{
			name:     "white pawn one rank below",
			place:    func(b *board.Board) { b.Place(board.Position{Level: 1, Rank: 2, File: 2}, wPiece(board.Pawn)) },
			attacker: board.White,
			want:     true,
		},
		{
			name:     "pawn never attacks across levels",
			place:    func(b *board.Board) { b.Place(board.Position{Level: 2, Rank: 4, File: 4}, bPiece(board.Pawn)) },
			attacker: board.Black,
			want:     false,
		},
		{
			name:     "enemy king adjacent across levels",
			place:    func(b *board.Board) { b.Place(board.Position{Level: 2, Rank: 4, File: 3}, bPiece(board.King)) },
			attacker: board.Black,
			want:     true,
		},
		{
			name:     "wrong color does not attack",
			place:    func(b *board.Board) { b.Place(board.Position{Level: 2, Rank: 3, File: 3}, wPiece(board.Rook)) },
			attacker: board.Black,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board.NewEmpty()
			tt.place(b)
			if got := IsSquareAttacked(b, target, tt.attacker); got != tt.want {
				t.Errorf("IsSquareAttacked(%s, %s) = %v, want %v", target, tt.attacker, got, tt.want)
			}
		})
	}
}

func TestIsInCheck(t *testing.T) {
	b := board.NewEmpty()
	b.Place(board.Position{Level: 0, Rank: 0, File: 4}, wPiece(board.King))
	b.Place(board.Position{Level: 2, Rank: 7, File: 4}, bPiece(board.King))

	if IsInCheck(b, board.White) {
		t.Error("lone kings reported in check")
	}

	b.Place(board.Position{Level: 2, Rank: 0, File: 4}, bPiece(board.Rook))
	if !IsInCheck(b, board.White) {
		t.Error("vertical rook check not detected")
	}
	if IsInCheck(b, board.Black) {
		t.Error("black reported in check")
	}
}
