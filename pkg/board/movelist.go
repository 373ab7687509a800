package board

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
	"strings"
)

// MovePriority represents the move order priority.
type MovePriority int16

// MovePriorityFn assigns a priority to moves
type MovePriorityFn func(move Move) MovePriority

// MovePredicateFn reports whether a move should be explored.
type MovePredicateFn func(move Move) bool

// PrintMoves formats a sequence of moves in pure algebraic coordinate notation, space-separated.
func PrintMoves(moves []Move) string {
	return FormatMoves(moves, Move.String)
}

// FormatMoves formats a sequence of moves using the given per-move formatter, space-separated.
func FormatMoves(moves []Move, fn func(Move) string) string {
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = fn(m)
	}
	return strings.Join(strs, " ")
}

// First puts the given move first. Otherwise uses the given function.
func First(first Move, fn MovePriorityFn) MovePriorityFn {
	return func(m Move) MovePriority {
		if first.Equals(m) {
			return math.MaxInt16
		}
		return fn(m)
	}
}

// FindMoves returns the subset of moves satisfying the predicate, preserving order.
func FindMoves(moves []Move, pred MovePredicateFn) []Move {
	var ret []Move
	for _, m := range moves {
		if pred(m) {
			ret = append(ret, m)
		}
	}
	return ret
}

// SortByPriority sorts the moves by priority, preserving order for same priority.
func SortByPriority(moves []Move, fn MovePriorityFn) {
	sort.SliceStable(moves, func(i, j int) bool {
		return fn(moves[i]) > fn(moves[j])
	})
}

// ByMVVLVA sorts moves by "most valuable victim, least valuable attacker": captures of
// higher-value pieces come first, and among equal victims the cheaper attacker comes first.
type ByMVVLVA []Move

func (a ByMVVLVA) Len() int      { return len(a) }
func (a ByMVVLVA) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a ByMVVLVA) Less(i, j int) bool {
	vi, vj := a[i].Capture, a[j].Capture
	if vi != vj {
		return vi > vj
	}
	return a[i].Piece < a[j].Piece
}

// ByScore sorts moves by their Score field, highest first.
type ByScore []Move

func (a ByScore) Len() int           { return len(a) }
func (a ByScore) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByScore) Less(i, j int) bool { return a[i].Score > a[j].Score }

// MoveList is move priority queue for move ordering.
type MoveList struct {
	h moveHeap
}

// NewMoveList returns a new move list with the given priorities.
func NewMoveList(moves []Move, fn MovePriorityFn) *MoveList {
	h := moveHeap(make([]elm, len(moves)))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next returns the next move. It is the highest priority move in the list.
func (ml *MoveList) Next() (Move, bool) {
	if ml.Size() == 0 {
		return Move{}, false
	}
	ret := heap.Pop(&ml.h).(elm)
	return ret.m, true
}

func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.Size() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.h[0].m, ml.Size())
}

type elm struct {
	m   Move
	val MovePriority
}

type moveHeap []elm

func (h moveHeap) Len() int {
	return len(h)
}

func (h moveHeap) Less(i, j int) bool {
	return h[i].val > h[j].val
}

func (h moveHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *moveHeap) Push(x interface{}) {
	panic("fixed size heap")
}

func (h *moveHeap) Pop() interface{} {
	n := len(*h)
	ret := (*h)[n-1]
	*h = (*h)[0 : n-1]
	return ret
}
