package board

import "math/rand"

// Zobrist keys for position hashing. Seeded deterministically so hashes
// are stable across runs; repetition detection compares hashes within a
// single game only.
var (
	zobristPieces [2][King + 1][NumSquares]uint64
	zobristCastle [16]uint64
	zobristEP     [NumSquares]uint64
	zobristBlack  uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x3DC8E55))
	for c := range zobristPieces {
		for t := Pawn; t <= King; t++ {
			for sq := range zobristPieces[c][t] {
				zobristPieces[c][t][sq] = rng.Uint64()
			}
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rng.Uint64()
	}
	for i := range zobristEP {
		zobristEP[i] = rng.Uint64()
	}
	zobristBlack = rng.Uint64()
}

// Hash returns the Zobrist hash of the position: piece placement,
// side to move, castling rights and the en-passant target. The move
// counters are deliberately excluded so repeated positions collide.
func (b *Board) Hash() uint64 {
	var h uint64
	for sq, p := range b.squares {
		if !p.IsEmpty() {
			h ^= zobristPieces[p.Color][p.Type][sq]
		}
	}
	h ^= zobristCastle[b.castleRights]
	if b.epTarget != squareNone {
		h ^= zobristEP[b.epTarget]
	}
	if b.sideToMove == Black {
		h ^= zobristBlack
	}
	return h
}
