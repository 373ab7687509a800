package search

import (
	"context"
	"fmt"
	"runtime"

	"github.com/corvidchess/morlock/pkg/board"
	"github.com/corvidchess/morlock/pkg/eval"
	"github.com/corvidchess/morlock/pkg/search/tt"
)

// TODO(herohde) 4/17/2021: consider shared linked list for principal variation.

// Bound represents the bound of a -- possibly inexact -- search score.
type Bound = tt.Bound

const (
	NoBound    = tt.NoBound
	UpperBound = tt.UpperBound
	LowerBound = tt.LowerBound
	ExactBound = tt.ExactBound
)

// TranspositionTable represents a transposition table to speed up search performance.
// Caveat: evaluation heuristics that depend on the game history (notably, hasCastled or
// last move) may be unsuitable for position-keyed caching. If the recent history is short,
// then the table may only be used for depth greater than some limit. Must be thread-safe.
type TranspositionTable interface {
	// Read returns the bound, depth, score and best move for the given position hash, if present.
	// ply is the number of half-moves from the root to the position being probed, needed to
	// translate a root-relative stored mate score back into one relative to this node.
	Read(hash board.ZobristHash, ply int) (Bound, int, eval.Score, board.Move, bool)
	// Write stores the entry into the table, depending on table semantics and replacement policy.
	Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool

	// Size returns the size of the table in bytes.
	Size() uint64
	// Used returns the utilization as a fraction [0;1].
	Used() float64

	// NewSearch advances the table's generation, signalling that a new root search has
	// begun. Entries from prior generations age out of the replacement policy over time.
	NewSearch()
	// Clear wipes every entry and resets the generation counter. It must not run
	// concurrently with Read/Write.
	Clear(ctx context.Context)
	// Resize replaces the table with a freshly allocated one of the given size in
	// megabytes. It must not run concurrently with Read/Write.
	Resize(ctx context.Context, mb uint64) error
	// Hashfull reports approximate per-mille occupancy, for UCI's "info hashfull".
	Hashfull() uint16
}

type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// mateBias is a value comfortably above any heuristic evaluation morlock produces, used to
// carve out a band of the 16-bit stored value for mate-distance-from-root scores. Storing
// mate distance relative to the root (rather than to the node the score was computed at)
// is what lets a mate score read back correctly at a different ply than where it was written.
const mateBias = 30000

// mateThreshold marks the boundary above which a stored value is a mate score rather than a
// heuristic one; it leaves ample heuristic headroom (+-299 pawns) while keeping every plies-
// to-mate value (worst case a few hundred plies) inside the 16-bit range.
const mateThreshold = mateBias - 1000

func encodeScore(s eval.Score, ply int) int16 {
	switch {
	case s.IsInvalid():
		return 0
	case s.IsHeuristic():
		return int16(s.Pawns * 100)
	default:
		distance := mateDistanceOf(s)
		if distance >= 0 {
			return int16(mateBias - (ply + distance))
		}
		return int16(-(mateBias - (ply - distance)))
	}
}

// mateDistanceOf returns the signed plies-to-mate: positive if the side to move is mating,
// negative if it is being mated.
func mateDistanceOf(s eval.Score) int {
	return int(s.Mate)
}

func decodeScore(v int16, ply int) eval.Score {
	switch {
	case v == 0:
		return eval.ZeroScore
	case int(v) >= mateThreshold:
		distance := mateBias - int(v)
		return eval.MateInXScore(distance - ply)
	case int(v) <= -mateThreshold:
		distance := mateBias + int(v)
		return eval.MateInXScore(-(distance - ply))
	default:
		return eval.HeuristicScore(eval.Pawns(float32(v) / 100))
	}
}

// encodeMove packs a move into the TT's 16-bit move code: 6 bits from, 6 bits to, 3 bits
// promotion piece. The zero move (From == To == H1, never a legal move) doubles as "none".
func encodeMove(m board.Move) tt.Move {
	if m.From == m.To {
		return 0
	}
	return tt.Move(uint16(m.From) | uint16(m.To)<<6 | uint16(m.Promotion)<<12)
}

func decodeMove(m tt.Move) board.Move {
	if m == 0 {
		return board.Move{}
	}
	return board.Move{
		From:      board.Square(m & 0x3F),
		To:        board.Square((m >> 6) & 0x3F),
		Promotion: board.Piece((m >> 12) & 0x7),
	}
}

// table adapts the chess-agnostic tt.Table onto the chess-facing TranspositionTable
// interface, translating Zobrist hashes to tt.Key and board moves to the TT's compact
// move code.
type table struct {
	tt *tt.Table
}

// NewTranspositionTable allocates a transposition table of roughly size bytes.
func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	mb := size >> 20
	if mb == 0 {
		mb = 1
	}
	t, err := tt.NewTable(ctx, mb, runtime.NumCPU())
	if err != nil {
		// Resize only returns a non-fatal error for a misconfigured size; allocation
		// failure itself is fatal inside tt.Table.Resize.
		t, _ = tt.NewTable(ctx, 1, 1)
	}
	return &table{tt: t}
}

func (t *table) Size() uint64 {
	return t.tt.Size()
}

func (t *table) Used() float64 {
	return float64(t.tt.Hashfull(255)) / 1000
}

func (t *table) NewSearch() {
	t.tt.NewSearch()
}

func (t *table) Clear(ctx context.Context) {
	_ = t.tt.Clear(ctx, runtime.NumCPU())
}

func (t *table) Resize(ctx context.Context, mb uint64) error {
	return t.tt.Resize(ctx, mb, runtime.NumCPU())
}

func (t *table) Hashfull() uint16 {
	return t.tt.Hashfull(255)
}

func (t *table) Read(hash board.ZobristHash, ply int) (Bound, int, eval.Score, board.Move, bool) {
	hit, data, _ := t.tt.Probe(tt.Key(hash))
	if !hit {
		return NoBound, 0, eval.InvalidScore, board.Move{}, false
	}
	return data.Bound, data.Depth, decodeScore(int16(data.Value), ply), decodeMove(data.Move), true
}

func (t *table) Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool {
	_, _, w := t.tt.Probe(tt.Key(hash))
	value := encodeScore(score, ply)
	w.Write(tt.Key(hash), value, false, bound, depth, encodeMove(move), 0, false, t.tt.Generation())
	return true
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// WriteFilter is a predicate on the Write operation.
type WriteFilter func(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool

// WriteLimited is a TranspositionTable wrapper that ignores certain writes, such as
// less than a given minimum depth. Useful if evaluation uses recent move history.
type WriteLimited struct {
	Filter WriteFilter
	TT     TranspositionTable
}

func (w WriteLimited) Read(hash board.ZobristHash, ply int) (Bound, int, eval.Score, board.Move, bool) {
	return w.TT.Read(hash, ply)
}

func (w WriteLimited) Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool {
	if w.Filter(hash, bound, ply, depth, score, move) {
		return false
	}
	return w.TT.Write(hash, bound, ply, depth, score, move)
}

func (w WriteLimited) Size() uint64          { return w.TT.Size() }
func (w WriteLimited) Used() float64         { return w.TT.Used() }
func (w WriteLimited) NewSearch()            { w.TT.NewSearch() }
func (w WriteLimited) Clear(ctx context.Context) { w.TT.Clear(ctx) }
func (w WriteLimited) Resize(ctx context.Context, mb uint64) error { return w.TT.Resize(ctx, mb) }
func (w WriteLimited) Hashfull() uint16      { return w.TT.Hashfull() }

// NewMinDepthTranspositionTable creates depth-limited TranspositionTables.
func NewMinDepthTranspositionTable(min int) TranspositionTableFactory {
	return func(ctx context.Context, size uint64) TranspositionTable {
		return WriteLimited{
			Filter: func(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool {
				return depth < min
			},
			TT: NewTranspositionTable(ctx, size),
		}
	}
}

// NoTranspositionTable is a Nop implementation.
type NoTranspositionTable struct{}

func (n NoTranspositionTable) Read(hash board.ZobristHash, ply int) (Bound, int, eval.Score, board.Move, bool) {
	return NoBound, 0, eval.InvalidScore, board.Move{}, false
}

func (n NoTranspositionTable) Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool {
	return false
}

func (n NoTranspositionTable) Size() uint64                          { return 0 }
func (n NoTranspositionTable) Used() float64                         { return 0 }
func (n NoTranspositionTable) NewSearch()                             {}
func (n NoTranspositionTable) Clear(ctx context.Context)             {}
func (n NoTranspositionTable) Resize(ctx context.Context, mb uint64) error { return nil }
func (n NoTranspositionTable) Hashfull() uint16                      { return 0 }
