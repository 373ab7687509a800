package sargon

import (
	"context"
	"github.com/corvidchess/morlock/pkg/board"
	"github.com/corvidchess/morlock/pkg/eval"
	"github.com/corvidchess/morlock/pkg/search"
)

// Hook is a Search wrapper that resets Points.
type Hook struct {
	Eval search.Search
	Hook *Points
}

func (h Hook) Search(ctx context.Context, sctx *search.Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	h.Hook.Reset(ctx, b)
	return h.Eval.Search(ctx, sctx, b, depth)
}

// OnePlyIfChecked implements the SARGON search extension if searching 1 ply deeper if in check.
type OnePlyIfChecked struct {
	Leaf search.Evaluator
}

func (q OnePlyIfChecked) QuietSearch(ctx context.Context, sctx *search.Context, b *board.Board) (uint64, eval.Score) {
	if !b.Position().IsChecked(b.Turn()) {
		return 1, eval.HeuristicScore(q.Leaf.Evaluate(ctx, sctx, b))
	}

	s := search.AlphaBeta{
		Eval: leafQuietSearch{q.Leaf},
	}

	nodes, score, _, _ := s.Search(ctx, sctx, b, 1)
	return nodes, score
}

// leafQuietSearch adapts an Evaluator into a QuietSearch that never looks further than the
// current position.
type leafQuietSearch struct {
	eval search.Evaluator
}

func (l leafQuietSearch) QuietSearch(ctx context.Context, sctx *search.Context, b *board.Board) (uint64, eval.Score) {
	return 1, eval.HeuristicScore(l.eval.Evaluate(ctx, sctx, b))
}
