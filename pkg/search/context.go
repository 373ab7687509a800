package search

import (
	"context"
	"errors"
	"github.com/corvidchess/morlock/pkg/board"
	"github.com/corvidchess/morlock/pkg/eval"
)

// ErrHalted is an error indicating that the search was halted.
var ErrHalted = errors.New("search halted")

// Context carries the dynamic state threaded through a single search invocation:
// the active alpha-beta window, the transposition table, leaf-evaluation noise and
// a ponder line to follow, if any.
type Context struct {
	// Alpha and Beta bound the search window. InvalidScore means "unbounded".
	Alpha, Beta eval.Score
	// TT is the transposition table to consult and populate. May be NoTranspositionTable{}.
	TT TranspositionTable
	// Noise adds a small amount of randomness to leaf evaluations.
	Noise eval.Random
	// Ponder, if non-empty, restricts the first plies of the search to this move sequence:
	// at each of those plies only the given move is explored. Only AlphaBeta reads it.
	Ponder []board.Move
}

// Search implements search of the game tree to a given depth. Thread-safe.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}

// QuietSearch implements a leaf-node quiescence search, typically alpha-beta over
// tactical moves only.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score)
}

// Evaluator is a static position evaluator that is aware of the surrounding search
// context, notably the current alpha-beta window. Most implementations ignore it.
type Evaluator interface {
	Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Pawns
}

// ZeroPly adapts an eval.Evaluator into an Evaluator that ignores search context.
type ZeroPly struct {
	Eval eval.Evaluator
}

func (z ZeroPly) Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Pawns {
	return z.Eval.Evaluate(ctx, b)
}

// Leaf adapts an eval.Evaluator into a QuietSearch that never looks beyond the current
// position, i.e., a no-op quiescence search.
type Leaf struct {
	Eval eval.Evaluator
}

func (l Leaf) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	return 1, eval.HeuristicScore(l.Eval.Evaluate(ctx, b))
}

// IsClosed reports whether the channel has been closed (or a value sent), without blocking.
func IsClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
