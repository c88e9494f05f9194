package board

import "fmt"

// Board geometry: three stacked 8x8 levels, 192 squares total.
const (
	NumLevels  = 3
	NumRanks   = 8
	NumFiles   = 8
	NumSquares = NumLevels * NumRanks * NumFiles
	LevelSize  = NumRanks * NumFiles
	squareNone = -1
)

// Position addresses a square by level, rank and file.
// Level 0 is the bottom board, level 2 the top.
type Position struct {
	Level int `json:"level"`
	Rank  int `json:"rank"`
	File  int `json:"file"`
}

func (p Position) Valid() bool {
	return p.Level >= 0 && p.Level < NumLevels &&
		p.Rank >= 0 && p.Rank < NumRanks &&
		p.File >= 0 && p.File < NumFiles
}

// Index maps the position into the flat square arena.
func (p Position) Index() int {
	return p.Level*LevelSize + p.Rank*NumFiles + p.File
}

// FromIndex is the inverse of Index.
func FromIndex(i int) Position {
	return Position{
		Level: i / LevelSize,
		Rank:  (i % LevelSize) / NumFiles,
		File:  i % NumFiles,
	}
}

// String renders the square as level letter, file letter, rank number,
// e.g. "Ae2" for level A (bottom), file e, rank 2.
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("?(%d,%d,%d)", p.Level, p.Rank, p.File)
	}
	return fmt.Sprintf("%c%c%d", 'A'+p.Level, 'a'+p.File, p.Rank+1)
}
