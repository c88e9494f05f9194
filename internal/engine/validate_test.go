package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/trichess/trichess-backend/internal/board"
)

func TestValidateMoveErrors(t *testing.T) {
	tests := []struct {
		name      string
		setup     func() *board.Board
		from, to  board.Position
		promotion board.PieceType
		wantErr   error
	}{
		{
			name:    "from square above the top level",
			setup:   board.New,
			from:    board.Position{Level: 3, Rank: 0, File: 0},
			to:      board.Position{Level: 2, Rank: 0, File: 0},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "to square off the board",
			setup:   board.New,
			from:    board.Position{Level: 0, Rank: 0, File: 0},
			to:      board.Position{Level: 0, Rank: 0, File: -1},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "empty from square",
			setup:   board.New,
			from:    board.Position{Level: 1, Rank: 3, File: 3},
			to:      board.Position{Level: 1, Rank: 4, File: 3},
			wantErr: ErrWrongColor,
		},
		{
			name:    "opponent piece while white to move",
			setup:   board.New,
			from:    board.Position{Level: 2, Rank: 6, File: 0},
			to:      board.Position{Level: 2, Rank: 5, File: 0},
			wantErr: ErrWrongColor,
		},
		{
			name:    "rook blocked by own pawn",
			setup:   board.New,
			from:    board.Position{Level: 0, Rank: 0, File: 0},
			to:      board.Position{Level: 0, Rank: 3, File: 0},
			wantErr: ErrPathBlocked,
		},
		{
			name:    "pawn cannot triple step",
			setup:   board.New,
			from:    board.Position{Level: 0, Rank: 1, File: 0},
			to:      board.Position{Level: 0, Rank: 4, File: 0},
			wantErr: ErrPathBlocked,
		},
		{
			name:    "pawn cannot change level",
			setup:   board.New,
			from:    board.Position{Level: 0, Rank: 1, File: 0},
			to:      board.Position{Level: 1, Rank: 2, File: 0},
			wantErr: ErrPathBlocked,
		},
		{
			name:    "pinned rook leaving the pin line",
			setup:   pinnedRookBoard,
			from:    board.Position{Level: 0, Rank: 1, File: 4},
			to:      board.Position{Level: 0, Rank: 1, File: 7},
			wantErr: ErrLeavesKingInCheck,
		},
		{
			name:    "promotion piece missing on the last rank",
			setup:   promotionBoard,
			from:    board.Position{Level: 0, Rank: 6, File: 0},
			to:      board.Position{Level: 0, Rank: 7, File: 0},
			wantErr: ErrMalformedPromotion,
		},
		{
			name:      "promotion to king",
			setup:     promotionBoard,
			from:      board.Position{Level: 0, Rank: 6, File: 0},
			to:        board.Position{Level: 0, Rank: 7, File: 0},
			promotion: board.King,
			wantErr:   ErrMalformedPromotion,
		},
		{
			name:      "promotion on an ordinary pawn move",
			setup:     board.New,
			from:      board.Position{Level: 0, Rank: 1, File: 0},
			to:        board.Position{Level: 0, Rank: 2, File: 0},
			promotion: board.Queen,
			wantErr:   ErrMalformedPromotion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.setup()
			snapshot := b.Clone()

			_, err := ValidateMove(b, tt.from, tt.to, tt.promotion)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMove() error = %v, want %v", err, tt.wantErr)
			}
			if !b.Equal(snapshot) {
				t.Error("rejected move mutated the board")
			}
		})
	}
}

func promotionBoard() *board.Board {
	b := board.NewEmpty()
	b.Place(board.Position{Level: 0, Rank: 0, File: 4}, wPiece(board.King))
	b.Place(board.Position{Level: 2, Rank: 7, File: 4}, bPiece(board.King))
	b.Place(board.Position{Level: 0, Rank: 6, File: 0}, wPiece(board.Pawn))
	return b
}

func TestValidateMoveResolvesMove(t *testing.T) {
	t.Run("promotion", func(t *testing.T) {
		b := promotionBoard()
		got, err := ValidateMove(b, board.Position{Level: 0, Rank: 6, File: 0}, board.Position{Level: 0, Rank: 7, File: 0}, board.Queen)
		if err != nil {
			t.Fatalf("ValidateMove() = %v", err)
		}
		want := board.Move{
			From: board.Position{Level: 0, Rank: 6, File: 0}, To: board.Position{Level: 0, Rank: 7, File: 0},
			Piece: wPiece(board.Pawn), Promotion: board.Queen,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("resolved move (-want +got):\n%s", diff)
		}
	})

	t.Run("double pawn step", func(t *testing.T) {
		b := board.New()
		got, err := ValidateMove(b, board.Position{Level: 0, Rank: 1, File: 4}, board.Position{Level: 0, Rank: 3, File: 4}, board.Empty)
		if err != nil {
			t.Fatalf("ValidateMove() = %v", err)
		}
		if got.Special != board.DoublePawnStep {
			t.Errorf("Special = %v, want DoublePawnStep", got.Special)
		}
	})

	t.Run("capture populates the victim", func(t *testing.T) {
		b := board.NewEmpty()
		b.Place(board.Position{Level: 0, Rank: 0, File: 4}, wPiece(board.King))
		b.Place(board.Position{Level: 2, Rank: 7, File: 4}, bPiece(board.King))
		b.Place(board.Position{Level: 1, Rank: 3, File: 3}, wPiece(board.Rook))
		b.Place(board.Position{Level: 2, Rank: 3, File: 3}, bPiece(board.Knight))

		got, err := ValidateMove(b, board.Position{Level: 1, Rank: 3, File: 3}, board.Position{Level: 2, Rank: 3, File: 3}, board.Empty)
		if err != nil {
			t.Fatalf("ValidateMove() = %v", err)
		}
		if got.Captured != bPiece(board.Knight) {
			t.Errorf("Captured = %s, want black knight", got.Captured)
		}
	})
}
