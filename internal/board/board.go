// Package board holds the mutable 192-square game state and its
// apply/undo/clone primitives. Rules live in the engine package; this
// package only knows how to execute a move and reverse it exactly.
package board

import "errors"

// ErrNoMoveToUndo is returned when undo is requested on an empty history.
var ErrNoMoveToUndo = errors.New("no move to undo")

// Castling rights bitmask.
const (
	WhiteKingside = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
)

// undoRecord captures everything ApplyMove destroys, so UndoLast is an
// exact inverse with no recomputation.
type undoRecord struct {
	move         Move
	castleRights uint8
	epTarget     int
	halfmove     int
}

// Board is the full position: a flat arena of squares indexed by
// level*64 + rank*8 + file, plus side-to-move, castling rights, the
// en-passant target, the move counters and the undo stack.
type Board struct {
	squares      [NumSquares]Piece
	sideToMove   Color
	castleRights uint8
	epTarget     int // flat index of the en-passant capture square, -1 if none
	halfmove     int
	fullmove     int
	kings        [2]int // cached king squares per color
	history      []undoRecord
}

// New sets up the initial position: the white army on the standard two
// ranks of level A, the black army mirrored on level C, level B empty.
func New() *Board {
	b := &Board{
		epTarget: squareNone,
		fullmove: 1,
		castleRights: WhiteKingside | WhiteQueenside |
			BlackKingside | BlackQueenside,
	}
	b.setupArmy(0, White)
	b.setupArmy(NumLevels-1, Black)
	return b
}

// NewEmpty returns a board with no pieces, no castling rights and white
// to move, for constructing arbitrary positions.
func NewEmpty() *Board {
	return &Board{epTarget: squareNone, fullmove: 1}
}

// Place puts a piece on a square, replacing whatever was there. The
// king cache follows king placements.
func (b *Board) Place(pos Position, p Piece) {
	b.squares[pos.Index()] = p
	if p.Type == King {
		b.kings[p.Color] = pos.Index()
	}
}

func (b *Board) SetSideToMove(c Color) {
	b.sideToMove = c
}

func (b *Board) SetCastleRights(mask uint8) {
	b.castleRights = mask
}

func (b *Board) SetHalfmoveClock(n int) {
	b.halfmove = n
}

// Equal reports full structural equality: squares, side to move,
// rights, en-passant target, clocks and the undo history.
func (b *Board) Equal(other *Board) bool {
	if b.squares != other.squares ||
		b.sideToMove != other.sideToMove ||
		b.castleRights != other.castleRights ||
		b.epTarget != other.epTarget ||
		b.halfmove != other.halfmove ||
		b.fullmove != other.fullmove ||
		b.kings != other.kings ||
		len(b.history) != len(other.history) {
		return false
	}
	for i := range b.history {
		if b.history[i] != other.history[i] {
			return false
		}
	}
	return true
}

func (b *Board) setupArmy(level int, color Color) {
	backRank, pawnRank := 0, 1
	if color == Black {
		backRank, pawnRank = 7, 6
	}
	order := [NumFiles]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < NumFiles; file++ {
		back := Position{level, backRank, file}
		b.squares[back.Index()] = Piece{Type: order[file], Color: color}
		if order[file] == King {
			b.kings[color] = back.Index()
		}
		pawn := Position{level, pawnRank, file}
		b.squares[pawn.Index()] = Piece{Type: Pawn, Color: color}
	}
}

func (b *Board) PieceAt(pos Position) Piece {
	return b.squares[pos.Index()]
}

func (b *Board) SideToMove() Color {
	return b.sideToMove
}

func (b *Board) CastleRights() uint8 {
	return b.castleRights
}

// EnPassantTarget reports the square a pawn just passed over, if any.
func (b *Board) EnPassantTarget() (Position, bool) {
	if b.epTarget == squareNone {
		return Position{}, false
	}
	return FromIndex(b.epTarget), true
}

func (b *Board) HalfmoveClock() int {
	return b.halfmove
}

func (b *Board) FullmoveNumber() int {
	return b.fullmove
}

func (b *Board) HistoryLen() int {
	return len(b.history)
}

// KingSquare returns the position of the given side's king.
func (b *Board) KingSquare(color Color) Position {
	return FromIndex(b.kings[color])
}

// LastMove returns the most recently applied move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1].move, true
}

// ApplyMove executes a generator-produced move, updating the grid, the
// side to move, castling rights, the en-passant target, the clocks and
// the undo stack. The move is assumed to be well formed; validation is
// the caller's job.
func (b *Board) ApplyMove(m Move) {
	b.history = append(b.history, undoRecord{
		move:         m,
		castleRights: b.castleRights,
		epTarget:     b.epTarget,
		halfmove:     b.halfmove,
	})

	from, to := m.From.Index(), m.To.Index()
	mover := b.squares[from]
	b.squares[from] = Piece{}

	switch m.Special {
	case EnPassant:
		// Captured pawn sits behind the target square, on the mover's rank.
		b.squares[Position{m.To.Level, m.From.Rank, m.To.File}.Index()] = Piece{}
	case CastleKingside:
		rookFrom := Position{m.From.Level, m.From.Rank, 7}.Index()
		rookTo := Position{m.From.Level, m.From.Rank, 5}.Index()
		b.squares[rookTo] = b.squares[rookFrom]
		b.squares[rookFrom] = Piece{}
	case CastleQueenside:
		rookFrom := Position{m.From.Level, m.From.Rank, 0}.Index()
		rookTo := Position{m.From.Level, m.From.Rank, 3}.Index()
		b.squares[rookTo] = b.squares[rookFrom]
		b.squares[rookFrom] = Piece{}
	}

	if m.Promotion != Empty {
		mover.Type = m.Promotion
	}
	b.squares[to] = mover

	if m.Piece.Type == King {
		b.kings[m.Piece.Color] = to
	}
	b.updateCastleRights(m)

	if m.Special == DoublePawnStep {
		b.epTarget = Position{m.From.Level, (m.From.Rank + m.To.Rank) / 2, m.From.File}.Index()
	} else {
		b.epTarget = squareNone
	}

	if m.Piece.Type == Pawn || m.IsCapture() {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if b.sideToMove == Black {
		b.fullmove++
	}
	b.sideToMove = b.sideToMove.Other()
}

// Rook home corners, for castling-rights revocation.
var rookHomes = [2][2]Position{
	White: {{0, 0, 0}, {0, 0, 7}}, // queenside, kingside
	Black: {{NumLevels - 1, 7, 0}, {NumLevels - 1, 7, 7}},
}

func (b *Board) updateCastleRights(m Move) {
	colorBits := func(c Color) (kingside, queenside uint8) {
		if c == White {
			return WhiteKingside, WhiteQueenside
		}
		return BlackKingside, BlackQueenside
	}

	ks, qs := colorBits(m.Piece.Color)
	switch m.Piece.Type {
	case King:
		b.castleRights &^= ks | qs
	case Rook:
		if m.From == rookHomes[m.Piece.Color][0] {
			b.castleRights &^= qs
		} else if m.From == rookHomes[m.Piece.Color][1] {
			b.castleRights &^= ks
		}
	}

	// A rook captured on its home corner also loses the right.
	if m.Captured.Type == Rook {
		oks, oqs := colorBits(m.Captured.Color)
		if m.To == rookHomes[m.Captured.Color][0] {
			b.castleRights &^= oqs
		} else if m.To == rookHomes[m.Captured.Color][1] {
			b.castleRights &^= oks
		}
	}
}

// UndoLast restores the exact prior state from the top undo record.
func (b *Board) UndoLast() error {
	if len(b.history) == 0 {
		return ErrNoMoveToUndo
	}
	rec := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	m := rec.move

	from, to := m.From.Index(), m.To.Index()
	b.squares[from] = m.Piece // reverses any promotion
	b.squares[to] = Piece{}

	switch m.Special {
	case EnPassant:
		b.squares[Position{m.To.Level, m.From.Rank, m.To.File}.Index()] = m.Captured
	case CastleKingside:
		rookFrom := Position{m.From.Level, m.From.Rank, 7}.Index()
		rookTo := Position{m.From.Level, m.From.Rank, 5}.Index()
		b.squares[rookFrom] = b.squares[rookTo]
		b.squares[rookTo] = Piece{}
	case CastleQueenside:
		rookFrom := Position{m.From.Level, m.From.Rank, 0}.Index()
		rookTo := Position{m.From.Level, m.From.Rank, 3}.Index()
		b.squares[rookFrom] = b.squares[rookTo]
		b.squares[rookTo] = Piece{}
	default:
		if m.IsCapture() {
			b.squares[to] = m.Captured
		}
	}

	if m.Piece.Type == King {
		b.kings[m.Piece.Color] = from
	}

	b.castleRights = rec.castleRights
	b.epTarget = rec.epTarget
	b.halfmove = rec.halfmove
	if m.Piece.Color == Black {
		b.fullmove--
	}
	b.sideToMove = m.Piece.Color
	return nil
}

// Clone returns an independent deep copy. Search operates on clones so
// its mutations never leak into the live game state.
func (b *Board) Clone() *Board {
	c := *b
	c.history = make([]undoRecord, len(b.history))
	copy(c.history, b.history)
	return &c
}
