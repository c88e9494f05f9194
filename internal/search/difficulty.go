package search

import "time"

// Difficulty bounds, 1 through 5. The easy levels are fixed shallow
// depths; the hard levels add a wall-clock budget and deepen
// iteratively within it.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

var difficultyOptions = map[int]Options{
	1: {Depth: 1},
	2: {Depth: 2},
	3: {Depth: 3},
	4: {Depth: 3, MoveTime: 5 * time.Second},
	5: {Depth: 4, MoveTime: 10 * time.Second},
}

// ForDifficulty maps a difficulty level to search options, clamping out
// of range values.
func ForDifficulty(level int) Options {
	if level < MinDifficulty {
		level = MinDifficulty
	}
	if level > MaxDifficulty {
		level = MaxDifficulty
	}
	return difficultyOptions[level]
}
