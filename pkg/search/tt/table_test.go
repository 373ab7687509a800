package tt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Keys below 2^49 all map to cluster 0 in a 1MB (32768-cluster) table: the
// high 64 bits of key*clusterCount are zero whenever key*clusterCount <
// 2^64, i.e. key < 2^64/32768 = 2^49. That lets tests target specific
// clusters deterministically without reaching into Table internals.
const smallKeyBound = 1 << 49

func newTestTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable(context.Background(), 1, 1)
	require.NoError(t, err)
	return tbl
}

func TestProbeMissThenHit(t *testing.T) {
	ctx := context.Background()
	tbl := newTestTable(t)
	tbl.NewSearch() // generation = 8

	key := Key(0xDEADBEEFCAFEBABE) % smallKeyBound

	hit, data, w := tbl.Probe(key)
	assert.False(t, hit)
	assert.Equal(t, NoBound, data.Bound)

	w.Write(key, 100, false, ExactBound, DepthEntryOffset+10, Move(0x1234), 80, false, tbl.Generation())

	hit, data, _ = tbl.Probe(key)
	assert.True(t, hit)
	assert.Equal(t, int16(100), data.Value)
	assert.Equal(t, DepthEntryOffset+10, data.Depth)
	assert.Equal(t, Move(0x1234), data.Move)
	assert.Equal(t, ExactBound, data.Bound)
	assert.False(t, data.Cut)

	_ = ctx
}

func TestProbeStubCollision(t *testing.T) {
	tbl := newTestTable(t)
	tbl.NewSearch()

	k1 := Key(0x0000ABCD)
	k2 := Key(0x00010000 | 0xABCD) // same low 16 bits as k1, different key overall

	_, _, w := tbl.Probe(k1)
	w.Write(k1, 55, false, LowerBound, DepthEntryOffset+20, Move(0x42), 0, false, tbl.Generation())

	hit, data, _ := tbl.Probe(k2)
	require.True(t, hit, "stub collision should surface as a hit")
	assert.Equal(t, int16(55), data.Value, "collision returns the other key's data")
}

func TestReplacementPrefersDeepestOnTie(t *testing.T) {
	tbl := newTestTable(t)
	tbl.NewSearch() // generation = 8

	depths := []int{20, 30, 40}
	for i, d := range depths {
		key := Key(i + 1)
		_, _, w := tbl.Probe(key)
		w.Write(key, 0, false, ExactBound, DepthEntryOffset+d, 0, 0, false, tbl.Generation())
	}

	for i := 0; i < 5; i++ {
		tbl.NewSearch()
	}
	require.Equal(t, uint8(48), tbl.Generation())

	newKey := Key(999) // distinct stub, same cluster, forces a victim pick
	_, _, w := tbl.Probe(newKey)
	w.Write(newKey, 0, false, ExactBound, DepthEntryOffset+1, 0, 0, false, tbl.Generation())

	// The entry that had depth 20 (the smallest depth - k*relative_age score)
	// should have been evicted; the depth-30 and depth-40 entries survive.
	survived30 := false
	survived40 := false
	for i, d := range depths {
		key := Key(i + 1)
		hit, data, _ := tbl.Probe(key)
		if hit && data.Depth == DepthEntryOffset+d && d == 30 {
			survived30 = true
		}
		if hit && data.Depth == DepthEntryOffset+d && d == 40 {
			survived40 = true
		}
	}
	assert.True(t, survived30)
	assert.True(t, survived40)
}

func TestSaveExactBoundForcesOverwrite(t *testing.T) {
	tbl := newTestTable(t)
	key := Key(7)

	_, _, w := tbl.Probe(key)
	w.Write(key, 1, false, UpperBound, DepthEntryOffset+100, 0, 0, false, tbl.Generation())

	_, _, w = tbl.Probe(key)
	w.Write(key, 2, false, ExactBound, DepthEntryOffset+10, 0, 0, false, tbl.Generation())

	hit, data, _ := tbl.Probe(key)
	require.True(t, hit)
	assert.Equal(t, DepthEntryOffset+10, data.Depth)
	assert.Equal(t, ExactBound, data.Bound)
}

func TestSavePreservesMoveWhenIncomingHasNone(t *testing.T) {
	tbl := newTestTable(t)
	key := Key(11)

	_, _, w := tbl.Probe(key)
	w.Write(key, 1, false, ExactBound, DepthEntryOffset+10, Move(0xABCD), 0, false, tbl.Generation())

	// Same stub, move=0, depth+2 triggers an overwrite per the policy.
	_, _, w = tbl.Probe(key)
	w.Write(key, 2, false, ExactBound, DepthEntryOffset+12, 0, 0, false, tbl.Generation())

	hit, data, _ := tbl.Probe(key)
	require.True(t, hit)
	assert.Equal(t, Move(0xABCD), data.Move, "move must be preserved when the incoming write carries none")
	assert.Equal(t, int16(2), data.Value)
}

func TestClearZeroesAndResetsGeneration(t *testing.T) {
	ctx := context.Background()
	tbl, err := NewTable(ctx, 64, 4)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		key := Key(i)
		_, _, w := tbl.Probe(key)
		w.Write(key, int16(i), false, ExactBound, DepthEntryOffset+5, 0, 0, false, tbl.Generation())
	}

	require.NoError(t, tbl.Clear(ctx, 4))

	assert.Equal(t, uint8(0), tbl.Generation())
	assert.Equal(t, uint16(0), tbl.Hashfull(255))
	for i := 0; i < 1000; i++ {
		for _, b := range tbl.clusters[i] {
			require.Zero(t, b)
		}
	}
}

func TestNewSearchWrapsModulo256(t *testing.T) {
	tbl := newTestTable(t)
	for i := 0; i < 32; i++ {
		tbl.NewSearch()
	}
	assert.Equal(t, uint8(0), tbl.Generation())
}

func TestResizeSetsExactClusterCount(t *testing.T) {
	ctx := context.Background()
	tbl, err := NewTable(ctx, 8, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(8*bytesPerMB/clusterSize), tbl.ClusterCount())
}

func TestClusterAndEntrySizes(t *testing.T) {
	assert.Equal(t, 10, entrySize)
	assert.Equal(t, 32, clusterSize)
	assert.Equal(t, 32, len(Cluster{}))
}

func TestHashfullApproximatesOccupancy(t *testing.T) {
	tbl := newTestTable(t)
	assert.Equal(t, uint16(0), tbl.Hashfull(255))

	for i := 0; i < 3; i++ {
		key := Key(i + 1) // distinct stubs, same (cluster 0) cluster
		_, _, w := tbl.Probe(key)
		w.Write(key, 0, false, ExactBound, DepthEntryOffset+5, 0, 0, false, tbl.Generation())
	}
	assert.Equal(t, uint16(1), tbl.Hashfull(255), "3 occupied entries in one cluster / N == 1 per-mille")
}
