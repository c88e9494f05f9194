package engine

import "github.com/trichess/trichess-backend/internal/board"

// PseudoLegalMoves generates every move for the given side that
// respects board bounds, blocking and piece movement rules, but has not
// yet been checked for king safety.
func PseudoLegalMoves(b *board.Board, side board.Color) []board.Move {
	moves := make([]board.Move, 0, 64)
	for i := 0; i < board.NumSquares; i++ {
		pos := board.FromIndex(i)
		p := b.PieceAt(pos)
		if p.IsEmpty() || p.Color != side {
			continue
		}
		moves = appendPseudoMoves(moves, b, pos, p)
	}
	return moves
}

// PseudoMovesFrom generates the pseudo-legal moves of the single piece
// on the given square.
func PseudoMovesFrom(b *board.Board, pos board.Position) []board.Move {
	p := b.PieceAt(pos)
	if p.IsEmpty() {
		return nil
	}
	return appendPseudoMoves(nil, b, pos, p)
}

func appendPseudoMoves(moves []board.Move, b *board.Board, pos board.Position, p board.Piece) []board.Move {
	switch p.Type {
	case board.Pawn:
		moves = appendPawnMoves(moves, b, pos, p)
	case board.King:
		moves = appendLeaperMoves(moves, b, pos, p, leaperOffsets[board.King])
		moves = appendCastleMoves(moves, b, pos, p)
	case board.Knight:
		moves = appendLeaperMoves(moves, b, pos, p, leaperOffsets[board.Knight])
	default:
		moves = appendSliderMoves(moves, b, pos, p, sliderDirs[p.Type])
	}
	return moves
}

func appendSliderMoves(moves []board.Move, b *board.Board, pos board.Position, p board.Piece, dirs []Delta) []board.Move {
	for _, dir := range dirs {
		for target := dir.apply(pos); target.Valid(); target = dir.apply(target) {
			occupant := b.PieceAt(target)
			if occupant.IsEmpty() {
				moves = append(moves, board.Move{From: pos, To: target, Piece: p})
				continue
			}
			if occupant.Color != p.Color {
				moves = append(moves, board.Move{From: pos, To: target, Piece: p, Captured: occupant})
			}
			break
		}
	}
	return moves
}

func appendLeaperMoves(moves []board.Move, b *board.Board, pos board.Position, p board.Piece, offsets []Delta) []board.Move {
	for _, off := range offsets {
		target := off.apply(pos)
		if !target.Valid() {
			continue
		}
		occupant := b.PieceAt(target)
		if occupant.IsEmpty() {
			moves = append(moves, board.Move{From: pos, To: target, Piece: p})
		} else if occupant.Color != p.Color {
			moves = append(moves, board.Move{From: pos, To: target, Piece: p, Captured: occupant})
		}
	}
	return moves
}

// Pawns never change level: one step forward, a double step from the
// start rank, diagonal captures including en passant, and promotion on
// the far rank of their level.
func appendPawnMoves(moves []board.Move, b *board.Board, pos board.Position, p board.Piece) []board.Move {
	dir := pawnDir(p.Color)

	forward := board.Position{Level: pos.Level, Rank: pos.Rank + dir, File: pos.File}
	if forward.Valid() && b.PieceAt(forward).IsEmpty() {
		moves = appendPawnStep(moves, pos, forward, p, board.Piece{})
		if pos.Rank == pawnStartRank(p.Color) {
			double := board.Position{Level: pos.Level, Rank: pos.Rank + 2*dir, File: pos.File}
			if double.Valid() && b.PieceAt(double).IsEmpty() {
				moves = append(moves, board.Move{
					From: pos, To: double, Piece: p, Special: board.DoublePawnStep,
				})
			}
		}
	}

	epTarget, hasEP := b.EnPassantTarget()
	for _, df := range []int{-1, 1} {
		target := board.Position{Level: pos.Level, Rank: pos.Rank + dir, File: pos.File + df}
		if !target.Valid() {
			continue
		}
		occupant := b.PieceAt(target)
		if !occupant.IsEmpty() && occupant.Color != p.Color {
			moves = appendPawnStep(moves, pos, target, p, occupant)
		} else if hasEP && target == epTarget {
			victim := b.PieceAt(board.Position{Level: pos.Level, Rank: pos.Rank, File: target.File})
			moves = append(moves, board.Move{
				From: pos, To: target, Piece: p, Captured: victim, Special: board.EnPassant,
			})
		}
	}
	return moves
}

// appendPawnStep expands a pawn move reaching the promotion rank into
// one move per promotion choice.
func appendPawnStep(moves []board.Move, from, to board.Position, p, captured board.Piece) []board.Move {
	if to.Rank == pawnPromotionRank(p.Color) {
		for _, promo := range promotionTypes {
			moves = append(moves, board.Move{
				From: from, To: to, Piece: p, Captured: captured, Promotion: promo,
			})
		}
		return moves
	}
	return append(moves, board.Move{From: from, To: to, Piece: p, Captured: captured})
}

// appendCastleMoves emits castling when neither king nor rook has
// moved, the squares between are empty, and the king neither stands on,
// passes through nor lands on an attacked square. Castling never
// changes level.
func appendCastleMoves(moves []board.Move, b *board.Board, pos board.Position, p board.Piece) []board.Move {
	kingsideRight, queensideRight := uint8(board.WhiteKingside), uint8(board.WhiteQueenside)
	if p.Color == board.Black {
		kingsideRight, queensideRight = board.BlackKingside, board.BlackQueenside
	}
	rights := b.CastleRights()
	if rights&(kingsideRight|queensideRight) == 0 {
		return moves
	}

	enemy := p.Color.Other()
	if IsSquareAttacked(b, pos, enemy) {
		return moves
	}

	level, rank := pos.Level, pos.Rank
	empty := func(files ...int) bool {
		for _, f := range files {
			if !b.PieceAt(board.Position{Level: level, Rank: rank, File: f}).IsEmpty() {
				return false
			}
		}
		return true
	}
	safe := func(files ...int) bool {
		for _, f := range files {
			if IsSquareAttacked(b, board.Position{Level: level, Rank: rank, File: f}, enemy) {
				return false
			}
		}
		return true
	}

	if rights&kingsideRight != 0 && empty(5, 6) && safe(5, 6) {
		moves = append(moves, board.Move{
			From: pos, To: board.Position{Level: level, Rank: rank, File: 6}, Piece: p,
			Special: board.CastleKingside,
		})
	}
	if rights&queensideRight != 0 && empty(1, 2, 3) && safe(2, 3) {
		moves = append(moves, board.Move{
			From: pos, To: board.Position{Level: level, Rank: rank, File: 2}, Piece: p,
			Special: board.CastleQueenside,
		})
	}
	return moves
}
