package board

import "fmt"

// PieceType identifies a kind of piece. The zero value marks an empty square.
type PieceType uint8

const (
	Empty PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = [...]string{"", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (t PieceType) String() string {
	if int(t) >= len(pieceTypeNames) {
		return "unknown"
	}
	return pieceTypeNames[t]
}

// Notation returns the algebraic piece letter; pawns have none.
func (t PieceType) Notation() string {
	switch t {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return ""
}

func (t PieceType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *PieceType) UnmarshalJSON(data []byte) error {
	name := string(data)
	if len(name) >= 2 && name[0] == '"' {
		name = name[1 : len(name)-1]
	}
	if name == "" {
		*t = Empty
		return nil
	}
	for i, n := range pieceTypeNames {
		if n == name {
			*t = PieceType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", name)
}

// Color is a side, white or black.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Color) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"white"`:
		*c = White
	case `"black"`:
		*c = Black
	default:
		return fmt.Errorf("unknown color %s", data)
	}
	return nil
}

// Piece is a value type; the zero Piece means no piece.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "-"
	}
	letters := "?PNBRQK"
	return fmt.Sprintf("%c%c", p.Color.String()[0], letters[p.Type])
}
