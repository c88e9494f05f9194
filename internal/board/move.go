package board

import "strings"

// Special marks moves that need extra handling on apply and undo.
type Special uint8

const (
	SpecialNone Special = iota
	CastleKingside
	CastleQueenside
	EnPassant
	DoublePawnStep
)

// Move is an immutable value describing one ply. Captured carries the piece
// removed by the move (for en passant, the pawn behind the target square).
type Move struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Piece     Piece     `json:"piece"`
	Captured  Piece     `json:"captured"`
	Promotion PieceType `json:"promotion"`
	Special   Special   `json:"special"`
}

func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

// String renders the move in level-prefixed coordinate notation,
// e.g. "Ae2-Ae4", "NAb1xBc3", "Aa7-Aa8=Q".
func (m Move) String() string {
	switch m.Special {
	case CastleKingside:
		return "O-O"
	case CastleQueenside:
		return "O-O-O"
	}
	var sb strings.Builder
	sb.WriteString(m.Piece.Type.Notation())
	sb.WriteString(m.From.String())
	if m.IsCapture() {
		sb.WriteByte('x')
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(m.To.String())
	if m.Promotion != Empty {
		sb.WriteString("=")
		sb.WriteString(m.Promotion.Notation())
	}
	return sb.String()
}
