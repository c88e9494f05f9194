// Package search picks moves for the AI opponent: negamax with
// alpha-beta pruning over the legality filter and the evaluator,
// bounded by depth and optionally by a wall-clock budget. The root is
// searched in parallel, one clone per worker.
package search

import (
	"errors"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trichess/trichess-backend/internal/board"
	"github.com/trichess/trichess-backend/internal/engine"
	"github.com/trichess/trichess-backend/internal/eval"
)

// ErrNoLegalMoves is returned when a move is requested on a terminal
// position. Callers must check game status first.
var ErrNoLegalMoves = errors.New("no legal moves in position")

// errTimeout aborts an in-flight iteration when the budget expires.
var errTimeout = errors.New("search timeout")

// Mate scores shrink with distance from the root so shorter mates are
// preferred over longer ones.
const (
	mateValue = 100000
	infinity  = mateValue + 1
)

func winIn(height int) int  { return mateValue - height }
func lossIn(height int) int { return -mateValue + height }

// Options bound a search by depth and, optionally, wall-clock time.
type Options struct {
	Depth    int
	MoveTime time.Duration // zero means depth-only search
	Workers  int           // root parallelism; zero means NumCPU
}

// Result is the outcome of a search: the chosen move, its score from
// the mover's perspective, the depth that produced it and the node
// count.
type Result struct {
	Move  board.Move
	Score int
	Depth int
	Nodes int64
}

// Run searches the position and returns the best move found. The board
// is cloned up front; the caller's state is never mutated. When a time
// budget is set the search deepens iteratively and a mid-iteration
// timeout falls back to the last fully completed depth.
func Run(b *board.Board, opts Options) (Result, error) {
	root := b.Clone()
	moves := engine.LegalMoves(root, root.SideToMove())
	if len(moves) == 0 {
		return Result{}, ErrNoLegalMoves
	}
	orderMoves(moves)

	depth := opts.Depth
	if depth < 1 {
		depth = 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var nodes atomic.Int64

	if opts.MoveTime <= 0 {
		res, err := searchRoot(root, moves, depth, time.Time{}, workers, &nodes)
		if err != nil {
			return Result{}, err
		}
		res.Nodes = nodes.Load()
		return res, nil
	}

	deadline := time.Now().Add(opts.MoveTime)
	result := Result{Move: moves[0]}
	for d := 1; d <= depth; d++ {
		res, err := searchRoot(root, moves, d, deadline, workers, &nodes)
		if err != nil {
			break // budget exceeded mid-iteration; keep the last completed depth
		}
		result = res
		if result.Score >= winIn(d) || result.Score <= lossIn(d) {
			break
		}
		moveToFront(moves, result.Move)
	}
	result.Nodes = nodes.Load()
	return result, nil
}

// searchRoot runs one full-depth iteration. The first move is searched
// on the calling goroutine to establish a real alpha bound; the rest is
// distributed over workers pulling indices from a shared counter, each
// on its own clone.
func searchRoot(root *board.Board, moves []board.Move, depth int, deadline time.Time, workers int, nodes *atomic.Int64) (Result, error) {
	if workers > len(moves) {
		workers = len(moves)
	}

	first := &searcher{deadline: deadline, nodes: nodes}
	child := root.Clone()
	child.ApplyMove(moves[0])
	score, ok := first.alphaBeta(child, depth-1, 1, -infinity, infinity)
	child.UndoLast()
	if !ok {
		return Result{}, errTimeout
	}

	var gate sync.Mutex
	alpha := -score
	best := moves[0]
	index := 1

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		worker := root.Clone()
		g.Go(func() error {
			s := &searcher{deadline: deadline, nodes: nodes}
			for {
				gate.Lock()
				if index >= len(moves) {
					gate.Unlock()
					return nil
				}
				i := index
				index++
				localAlpha := alpha
				gate.Unlock()

				worker.ApplyMove(moves[i])
				value, ok := s.alphaBeta(worker, depth-1, 1, -infinity, -localAlpha)
				worker.UndoLast()
				if !ok {
					return errTimeout
				}

				gate.Lock()
				if -value > alpha {
					alpha = -value
					best = moves[i]
				}
				gate.Unlock()
			}
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return Result{Move: best, Score: alpha, Depth: depth}, nil
}

type searcher struct {
	deadline time.Time
	nodes    *atomic.Int64
}

func (s *searcher) expired() bool {
	return !s.deadline.IsZero() && time.Now().After(s.deadline)
}

// alphaBeta is fail-hard negamax. The boolean result is false when the
// time budget expired; the score is then meaningless and the whole
// iteration is discarded.
func (s *searcher) alphaBeta(b *board.Board, depth, height, alpha, beta int) (int, bool) {
	s.nodes.Add(1)
	if s.expired() {
		return 0, false
	}

	side := b.SideToMove()
	moves := engine.LegalMoves(b, side)
	if len(moves) == 0 {
		if engine.IsInCheck(b, side) {
			return lossIn(height), true
		}
		return 0, true // stalemate is a draw
	}
	if depth <= 0 {
		return eval.Evaluate(b), true
	}

	orderMoves(moves)
	for _, m := range moves {
		b.ApplyMove(m)
		value, ok := s.alphaBeta(b, depth-1, height+1, -beta, -alpha)
		b.UndoLast()
		if !ok {
			return 0, false
		}
		if -value > alpha {
			alpha = -value
			if alpha >= beta {
				return beta, true
			}
		}
	}
	return alpha, true
}

// orderMoves puts captures before quiet moves, most valuable victim
// first, to tighten pruning. The sort is stable so generation order
// breaks ties deterministically.
func orderMoves(moves []board.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return captureValue(moves[i]) > captureValue(moves[j])
	})
}

var victimValues = [board.King + 1]int{
	board.Pawn:   1,
	board.Knight: 3,
	board.Bishop: 3,
	board.Rook:   5,
	board.Queen:  9,
	board.King:   100,
}

func captureValue(m board.Move) int {
	if !m.IsCapture() {
		return 0
	}
	return victimValues[m.Captured.Type]
}

func moveToFront(moves []board.Move, m board.Move) {
	for i, cur := range moves {
		if cur == m {
			copy(moves[1:i+1], moves[:i])
			moves[0] = m
			return
		}
	}
}
