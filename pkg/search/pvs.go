package search

import (
	"context"
	"github.com/corvidchess/morlock/pkg/board"
	"github.com/corvidchess/morlock/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"sort"
)

// PVS implements principal variation search: a negamax walk with MVV-LVA move
// ordering and a quiescence leaf search. Pseudo-code:
//
// function pvs(node, depth, α, β, color) is
//    if depth = 0 or node is a terminal node then
//        return color × the heuristic value of node
//    for each child of node do
//        score := −pvs(child, depth − 1, −β, −α, −color)
//        α := max(α, score)
//        if α ≥ β then
//            break (* beta cut-off *)
//    return α
//
// See: https://en.wikipedia.org/wiki/Principal_variation_search.
type PVS struct {
	Eval QuietSearch
}

func (p PVS) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runPVS{eval: p.Eval, tt: sctx.TT, b: b}

	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score, moves := run.search(ctx, depth, low, high)
	if contextx.IsCancelled(ctx) {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runPVS struct {
	eval  QuietSearch
	tt    TranspositionTable
	b     *board.Board
	nodes uint64
}

// search returns the positive score for the color.
func (m *runPVS) search(ctx context.Context, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return eval.InvalidScore, nil
	}
	if m.b.Result().Outcome == board.Draw {
		return eval.ZeroScore, nil
	}
	if depth == 0 {
		leaf := &Context{Alpha: alpha, Beta: beta, TT: m.tt}
		nodes, score := m.eval.QuietSearch(ctx, leaf, m.b)
		m.nodes += nodes
		return score, nil
	}

	m.nodes++

	hasLegalMove := false
	var pv []board.Move

	moves := m.b.Position().PseudoLegalMoves(m.b.Turn())
	sort.Sort(board.ByMVVLVA(moves))

	for _, move := range moves {
		if !m.b.PushMove(move) {
			continue // skip: not legal
		}

		score, rem := m.search(ctx, depth-1, beta.Negate(), alpha.Negate())
		score = eval.IncrementMateDistance(score).Negate()

		m.b.PopMove()
		hasLegalMove = true

		if alpha.Less(score) {
			alpha = score
			pv = append([]board.Move{move}, rem...)
		}
		if alpha == beta || beta.Less(alpha) {
			break // cutoff
		}
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.NegInfScore, nil
		}
		return eval.ZeroScore, nil
	}

	return alpha, pv
}
