package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/corvidchess/morlock/pkg/board"
	"github.com/corvidchess/morlock/pkg/eval"
	"github.com/corvidchess/morlock/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionTable(t *testing.T) {
	ctx := context.Background()

	tt := search.NewTranspositionTable(ctx, 1<<20)
	require.Equal(t, uint64(1<<20), tt.Size())

	a := board.ZobristHash(rand.Uint64())

	_, _, _, _, notok := tt.Read(a, 0)
	assert.False(t, notok)

	m := board.Move{From: board.G4, To: board.G8, Promotion: board.Queen}
	s := eval.HeuristicScore(2)
	tt.Write(a, search.ExactBound, 5, 2, s, m)

	bound, depth, score, move, ok := tt.Read(a, 5)
	require.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 2, depth)
	assert.Equal(t, s, score)
	assert.Equal(t, m, move)

	_, _, _, _, otherHit := tt.Read(a^0xff0000, 5)
	assert.False(t, otherHit, "a different hash should not hit by coincidence for a random key")
}

func TestTranspositionTableShallowerExactOverwrites(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 1<<20)

	a := board.ZobristHash(rand.Uint64())
	m := board.Move{From: board.G4, To: board.G8}

	tt.Write(a, search.UpperBound, 0, 100, eval.HeuristicScore(1), m)
	tt.Write(a, search.ExactBound, 0, 10, eval.HeuristicScore(5), m)

	bound, depth, score, _, ok := tt.Read(a, 0)
	require.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 10, depth)
	assert.Equal(t, eval.HeuristicScore(5), score)
}

func TestTranspositionTableMateScoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 1<<20)

	a := board.ZobristHash(rand.Uint64())
	m := board.Move{From: board.A1, To: board.A8}

	tt.Write(a, search.ExactBound, 0, 4, eval.MateInXScore(3), m)

	_, _, score, _, ok := tt.Read(a, 0)
	require.True(t, ok)
	assert.Equal(t, eval.MateInXScore(3), score)
}

func TestTranspositionTableMateScoreAdjustsAcrossPly(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 1<<20)

	a := board.ZobristHash(rand.Uint64())
	m := board.Move{From: board.A1, To: board.A8}

	// Mate in 3 found 2 plies below the root is mate in 5 from the root.
	tt.Write(a, search.ExactBound, 2, 4, eval.MateInXScore(3), m)

	_, _, score, _, ok := tt.Read(a, 2)
	require.True(t, ok)
	assert.Equal(t, eval.MateInXScore(3), score)
}

func TestTranspositionTableLifecycle(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 1<<20)

	a := board.ZobristHash(rand.Uint64())
	tt.Write(a, search.ExactBound, 0, 10, eval.ZeroScore, board.Move{})
	assert.Greater(t, tt.Hashfull(), uint16(0))

	tt.NewSearch()
	tt.Clear(ctx)
	assert.Equal(t, uint16(0), tt.Hashfull())

	_, _, _, _, hit := tt.Read(a, 0)
	assert.False(t, hit)

	require.NoError(t, tt.Resize(ctx, 2))
	assert.Equal(t, uint64(2<<20), tt.Size())
}

func TestNoTranspositionTable(t *testing.T) {
	ctx := context.Background()
	var n search.TranspositionTable = search.NoTranspositionTable{}

	_, _, _, _, ok := n.Read(board.ZobristHash(1), 0)
	assert.False(t, ok)
	assert.False(t, n.Write(board.ZobristHash(1), search.ExactBound, 0, 1, eval.ZeroScore, board.Move{}))
	assert.Zero(t, n.Size())
	assert.Zero(t, n.Used())
	assert.Zero(t, n.Hashfull())

	n.NewSearch()
	n.Clear(ctx)
	assert.NoError(t, n.Resize(ctx, 1))
}
