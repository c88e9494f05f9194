package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var boardCmp = cmp.AllowUnexported(Board{}, undoRecord{})

func wPiece(t PieceType) Piece { return Piece{Type: t, Color: White} }
func bPiece(t PieceType) Piece { return Piece{Type: t, Color: Black} }

func TestNewSetup(t *testing.T) {
	b := New()

	occupied := 0
	for i := 0; i < NumSquares; i++ {
		if !b.PieceAt(FromIndex(i)).IsEmpty() {
			occupied++
		}
	}
	if occupied != 32 {
		t.Errorf("occupied squares = %d, want 32", occupied)
	}

	// The middle level starts empty.
	for rank := 0; rank < NumRanks; rank++ {
		for file := 0; file < NumFiles; file++ {
			pos := Position{1, rank, file}
			if p := b.PieceAt(pos); !p.IsEmpty() {
				t.Errorf("PieceAt(%s) = %s, want empty", pos, p)
			}
		}
	}

	tests := []struct {
		pos  Position
		want Piece
	}{
		{Position{0, 0, 0}, wPiece(Rook)},
		{Position{0, 0, 4}, wPiece(King)},
		{Position{0, 1, 3}, wPiece(Pawn)},
		{Position{2, 7, 3}, bPiece(Queen)},
		{Position{2, 7, 4}, bPiece(King)},
		{Position{2, 6, 7}, bPiece(Pawn)},
	}
	for _, tt := range tests {
		if got := b.PieceAt(tt.pos); got != tt.want {
			t.Errorf("PieceAt(%s) = %s, want %s", tt.pos, got, tt.want)
		}
	}

	if got := b.KingSquare(White); got != (Position{0, 0, 4}) {
		t.Errorf("KingSquare(White) = %s, want Ae1", got)
	}
	if got := b.KingSquare(Black); got != (Position{2, 7, 4}) {
		t.Errorf("KingSquare(Black) = %s, want Ce8", got)
	}
	if b.SideToMove() != White {
		t.Errorf("SideToMove() = %s, want white", b.SideToMove())
	}
	wantRights := uint8(WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside)
	if b.CastleRights() != wantRights {
		t.Errorf("CastleRights() = %04b, want %04b", b.CastleRights(), wantRights)
	}
	if b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 {
		t.Errorf("clocks = %d/%d, want 0/1", b.HalfmoveClock(), b.FullmoveNumber())
	}
}

func TestApplyUndoRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		setup func() *Board
		moves []Move
	}{
		{
			name:  "knight development",
			setup: New,
			moves: []Move{
				{From: Position{0, 0, 1}, To: Position{0, 2, 2}, Piece: wPiece(Knight)},
				{From: Position{2, 7, 1}, To: Position{2, 5, 2}, Piece: bPiece(Knight)},
				{From: Position{0, 2, 2}, To: Position{1, 4, 3}, Piece: wPiece(Knight)},
			},
		},
		{
			name:  "double pawn steps",
			setup: New,
			moves: []Move{
				{From: Position{0, 1, 4}, To: Position{0, 3, 4}, Piece: wPiece(Pawn), Special: DoublePawnStep},
				{From: Position{2, 6, 3}, To: Position{2, 4, 3}, Piece: bPiece(Pawn), Special: DoublePawnStep},
			},
		},
		{
			name: "rook capture",
			setup: func() *Board {
				b := NewEmpty()
				b.Place(Position{0, 0, 4}, wPiece(King))
				b.Place(Position{2, 7, 4}, bPiece(King))
				b.Place(Position{1, 3, 3}, wPiece(Rook))
				b.Place(Position{1, 3, 6}, bPiece(Pawn))
				return b
			},
			moves: []Move{
				{From: Position{1, 3, 3}, To: Position{1, 3, 6}, Piece: wPiece(Rook), Captured: bPiece(Pawn)},
			},
		},
		{
			name: "en passant",
			setup: func() *Board {
				b := NewEmpty()
				b.Place(Position{0, 0, 4}, wPiece(King))
				b.Place(Position{2, 7, 4}, bPiece(King))
				b.Place(Position{0, 4, 4}, wPiece(Pawn))
				b.Place(Position{0, 6, 5}, bPiece(Pawn))
				b.SetSideToMove(Black)
				return b
			},
			moves: []Move{
				{From: Position{0, 6, 5}, To: Position{0, 4, 5}, Piece: bPiece(Pawn), Special: DoublePawnStep},
				{From: Position{0, 4, 4}, To: Position{0, 5, 5}, Piece: wPiece(Pawn), Captured: bPiece(Pawn), Special: EnPassant},
			},
		},
		{
			name: "castling both wings",
			setup: func() *Board {
				b := NewEmpty()
				b.Place(Position{0, 0, 4}, wPiece(King))
				b.Place(Position{0, 0, 0}, wPiece(Rook))
				b.Place(Position{0, 0, 7}, wPiece(Rook))
				b.Place(Position{2, 7, 4}, bPiece(King))
				b.Place(Position{2, 7, 7}, bPiece(Rook))
				b.SetCastleRights(WhiteKingside | WhiteQueenside | BlackKingside)
				return b
			},
			moves: []Move{
				{From: Position{0, 0, 4}, To: Position{0, 0, 6}, Piece: wPiece(King), Special: CastleKingside},
				{From: Position{2, 7, 4}, To: Position{2, 7, 6}, Piece: bPiece(King), Special: CastleKingside},
			},
		},
		{
			name: "promotion with capture",
			setup: func() *Board {
				b := NewEmpty()
				b.Place(Position{0, 0, 4}, wPiece(King))
				b.Place(Position{2, 7, 4}, bPiece(King))
				b.Place(Position{0, 6, 1}, wPiece(Pawn))
				b.Place(Position{0, 7, 0}, bPiece(Rook))
				return b
			},
			moves: []Move{
				{From: Position{0, 6, 1}, To: Position{0, 7, 0}, Piece: wPiece(Pawn), Captured: bPiece(Rook), Promotion: Queen},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.setup()
			want := b.Clone()

			for _, m := range tt.moves {
				b.ApplyMove(m)
			}
			for range tt.moves {
				if err := b.UndoLast(); err != nil {
					t.Fatalf("UndoLast() = %v", err)
				}
			}

			if diff := cmp.Diff(want, b, boardCmp); diff != "" {
				t.Errorf("position mismatch after undo (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyMoveEnPassant(t *testing.T) {
	b := NewEmpty()
	b.Place(Position{0, 0, 4}, wPiece(King))
	b.Place(Position{2, 7, 4}, bPiece(King))
	b.Place(Position{0, 4, 4}, wPiece(Pawn))
	b.Place(Position{0, 6, 5}, bPiece(Pawn))
	b.SetSideToMove(Black)

	b.ApplyMove(Move{From: Position{0, 6, 5}, To: Position{0, 4, 5}, Piece: bPiece(Pawn), Special: DoublePawnStep})

	ep, ok := b.EnPassantTarget()
	if !ok || ep != (Position{0, 5, 5}) {
		t.Fatalf("EnPassantTarget() = %v, %v, want Af6", ep, ok)
	}

	b.ApplyMove(Move{From: Position{0, 4, 4}, To: Position{0, 5, 5}, Piece: wPiece(Pawn), Captured: bPiece(Pawn), Special: EnPassant})

	if p := b.PieceAt(Position{0, 4, 5}); !p.IsEmpty() {
		t.Errorf("captured pawn square Af5 = %s, want empty", p)
	}
	if p := b.PieceAt(Position{0, 5, 5}); p != wPiece(Pawn) {
		t.Errorf("PieceAt(Af6) = %s, want white pawn", p)
	}
	if _, ok := b.EnPassantTarget(); ok {
		t.Error("en-passant target still set after capture")
	}
}

func TestApplyMoveCastling(t *testing.T) {
	b := NewEmpty()
	b.Place(Position{0, 0, 4}, wPiece(King))
	b.Place(Position{0, 0, 0}, wPiece(Rook))
	b.Place(Position{0, 0, 7}, wPiece(Rook))
	b.Place(Position{2, 7, 4}, bPiece(King))
	b.SetCastleRights(WhiteKingside | WhiteQueenside)

	b.ApplyMove(Move{From: Position{0, 0, 4}, To: Position{0, 0, 6}, Piece: wPiece(King), Special: CastleKingside})

	if p := b.PieceAt(Position{0, 0, 6}); p != wPiece(King) {
		t.Errorf("PieceAt(Ag1) = %s, want white king", p)
	}
	if p := b.PieceAt(Position{0, 0, 5}); p != wPiece(Rook) {
		t.Errorf("PieceAt(Af1) = %s, want white rook", p)
	}
	if p := b.PieceAt(Position{0, 0, 7}); !p.IsEmpty() {
		t.Errorf("PieceAt(Ah1) = %s, want empty", p)
	}
	if b.CastleRights()&(WhiteKingside|WhiteQueenside) != 0 {
		t.Errorf("white castle rights not cleared: %04b", b.CastleRights())
	}
	if b.KingSquare(White) != (Position{0, 0, 6}) {
		t.Errorf("KingSquare(White) = %s, want Ag1", b.KingSquare(White))
	}
}

func TestCastleRightsRevocation(t *testing.T) {
	tests := []struct {
		name  string
		setup func() *Board
		move  Move
		lost  uint8
	}{
		{
			name:  "king move drops both white rights",
			setup: New,
			move:  Move{From: Position{0, 0, 4}, To: Position{1, 0, 4}, Piece: wPiece(King)},
			lost:  WhiteKingside | WhiteQueenside,
		},
		{
			name:  "kingside rook move",
			setup: New,
			move:  Move{From: Position{0, 0, 7}, To: Position{1, 0, 7}, Piece: wPiece(Rook)},
			lost:  WhiteKingside,
		},
		{
			name:  "queenside rook move",
			setup: New,
			move:  Move{From: Position{0, 0, 0}, To: Position{1, 0, 0}, Piece: wPiece(Rook)},
			lost:  WhiteQueenside,
		},
		{
			name: "rook captured on its home corner",
			setup: func() *Board {
				b := New()
				b.Place(Position{2, 0, 7}, wPiece(Rook))
				return b
			},
			move: Move{From: Position{2, 0, 7}, To: Position{2, 7, 7}, Piece: wPiece(Rook), Captured: bPiece(Rook)},
			lost: BlackKingside,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.setup()
			before := b.CastleRights()
			b.ApplyMove(tt.move)
			if got := b.CastleRights(); got != before&^tt.lost {
				t.Errorf("CastleRights() = %04b, want %04b", got, before&^tt.lost)
			}
			if err := b.UndoLast(); err != nil {
				t.Fatalf("UndoLast() = %v", err)
			}
			if got := b.CastleRights(); got != before {
				t.Errorf("rights after undo = %04b, want %04b", got, before)
			}
		})
	}
}

func TestMoveCounters(t *testing.T) {
	b := New()

	b.ApplyMove(Move{From: Position{0, 0, 1}, To: Position{0, 2, 2}, Piece: wPiece(Knight)})
	if b.HalfmoveClock() != 1 || b.FullmoveNumber() != 1 {
		t.Errorf("after white knight: clocks = %d/%d, want 1/1", b.HalfmoveClock(), b.FullmoveNumber())
	}

	b.ApplyMove(Move{From: Position{2, 7, 1}, To: Position{2, 5, 2}, Piece: bPiece(Knight)})
	if b.HalfmoveClock() != 2 || b.FullmoveNumber() != 2 {
		t.Errorf("after black knight: clocks = %d/%d, want 2/2", b.HalfmoveClock(), b.FullmoveNumber())
	}

	// A pawn move resets the halfmove clock.
	b.ApplyMove(Move{From: Position{0, 1, 4}, To: Position{0, 2, 4}, Piece: wPiece(Pawn)})
	if b.HalfmoveClock() != 0 {
		t.Errorf("after pawn move: halfmove clock = %d, want 0", b.HalfmoveClock())
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	if err := New().UndoLast(); !errors.Is(err, ErrNoMoveToUndo) {
		t.Errorf("UndoLast() on fresh board = %v, want ErrNoMoveToUndo", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New()
	c := b.Clone()

	c.ApplyMove(Move{From: Position{0, 1, 4}, To: Position{0, 3, 4}, Piece: wPiece(Pawn), Special: DoublePawnStep})

	if p := b.PieceAt(Position{0, 1, 4}); p != wPiece(Pawn) {
		t.Errorf("original mutated: PieceAt(Ae2) = %s, want white pawn", p)
	}
	if b.HistoryLen() != 0 {
		t.Errorf("original HistoryLen() = %d, want 0", b.HistoryLen())
	}
	if c.HistoryLen() != 1 {
		t.Errorf("clone HistoryLen() = %d, want 1", c.HistoryLen())
	}
}

func TestHashStableUnderShuffle(t *testing.T) {
	b := New()
	start := b.Hash()

	shuffle := []Move{
		{From: Position{0, 0, 1}, To: Position{0, 2, 2}, Piece: wPiece(Knight)},
		{From: Position{2, 7, 1}, To: Position{2, 5, 2}, Piece: bPiece(Knight)},
		{From: Position{0, 2, 2}, To: Position{0, 0, 1}, Piece: wPiece(Knight)},
		{From: Position{2, 5, 2}, To: Position{2, 7, 1}, Piece: bPiece(Knight)},
	}
	for _, m := range shuffle {
		b.ApplyMove(m)
	}

	if got := b.Hash(); got != start {
		t.Errorf("Hash() after knight shuffle = %x, want start hash %x", got, start)
	}

	b.ApplyMove(Move{From: Position{0, 1, 4}, To: Position{0, 3, 4}, Piece: wPiece(Pawn), Special: DoublePawnStep})
	if got := b.Hash(); got == start {
		t.Error("Hash() unchanged after pawn advance")
	}
}

func TestHashDistinguishesSideToMove(t *testing.T) {
	a := NewEmpty()
	a.Place(Position{0, 0, 4}, wPiece(King))
	a.Place(Position{2, 7, 4}, bPiece(King))

	b := a.Clone()
	b.SetSideToMove(Black)

	if a.Hash() == b.Hash() {
		t.Error("same placement with different side to move hashes equal")
	}
}
