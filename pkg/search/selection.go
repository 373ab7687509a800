package search

import (
	"context"
	"github.com/corvidchess/morlock/pkg/board"
	"github.com/corvidchess/morlock/pkg/eval"
)

// ExceptUnderPromotions explores every move but underpromotions.
func ExceptUnderPromotions(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return MVVLVA, func(m board.Move) bool {
		return !m.IsPromotion() || m.Promotion == board.Queen
	}
}

// QuickGains explores only immediate material gains: promotions and favorable captures.
// Used by quiescence search to limit branching to tactical moves.
func QuickGains(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	turn := b.Turn()
	return MVVLVA, func(m board.Move) bool {
		if m.IsPromotion() {
			return true
		}
		if !m.IsCapture() {
			return false
		}
		if eval.NominalValue(m.Piece) < eval.NominalValue(m.Capture) {
			return true
		}
		return !b.Position().IsAttacked(turn, m.To)
	}
}
