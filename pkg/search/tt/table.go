package tt

import (
	"context"
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/seekerror/logw"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// bytesPerMB is used to turn a UCI-style "Hash" size into a byte count.
const bytesPerMB = 1 << 20

// Table is a fixed-size, process-wide transposition table. All exported
// methods except Resize and Clear are safe to call concurrently from many
// goroutines with no locking; Resize and Clear must not run concurrently
// with Probe/Writer.Write or with each other (the caller orchestrates this,
// typically while search threads are idle).
type Table struct {
	clusters   []Cluster
	mem        []byte
	generation atomic.Uint32
}

// NewTable allocates a table sized to hold roughly mb megabytes, using
// threads goroutines to zero it.
func NewTable(ctx context.Context, mb uint64, threads int) (*Table, error) {
	t := &Table{}
	if err := t.Resize(ctx, mb, threads); err != nil {
		return nil, err
	}
	return t, nil
}

// Resize discards the table's current contents (if any) and replaces them
// with a freshly allocated, zeroed table sized to hold roughly mb
// megabytes. Allocation failure is fatal: there is no useful way to keep
// searching without a table, so Resize logs and terminates the process
// rather than returning a recoverable error for that case.
func (t *Table) Resize(ctx context.Context, mb uint64, threads int) error {
	if mb == 0 {
		return fmt.Errorf("tt: size must be positive, got %v MB", mb)
	}

	clusterCount := mb * bytesPerMB / clusterSize
	if clusterCount == 0 {
		return fmt.Errorf("tt: %v MB too small for a single cluster", mb)
	}

	if t.mem != nil {
		if err := release(t.mem); err != nil {
			logw.Errorf(ctx, "tt: failed to release previous table: %v", err)
		}
		t.mem, t.clusters = nil, nil
	}

	buf, err := allocate(int(clusterCount) * clusterSize)
	if err != nil {
		logw.Fatalf(ctx, "tt: failed to allocate %v MB transposition table: %v", mb, err)
	}

	t.mem = buf
	t.clusters = unsafe.Slice((*Cluster)(unsafe.Pointer(&buf[0])), clusterCount)
	t.generation.Store(0)

	logw.Infof(ctx, "tt: resized to %v MB (%v clusters)", mb, clusterCount)
	return nil
}

// Clear zeroes every cluster and resets the generation counter to 0, using
// threads goroutines over disjoint strides of the cluster array.
func (t *Table) Clear(ctx context.Context, threads int) error {
	if threads < 1 {
		threads = 1
	}
	n := len(t.clusters)
	if n == 0 {
		return nil
	}
	if threads > n {
		threads = n
	}

	stride := n / threads
	var g errgroup.Group
	for i := 0; i < threads; i++ {
		lo := i * stride
		hi := lo + stride
		if i == threads-1 {
			hi = n // last goroutine absorbs the remainder
		}
		g.Go(func() error {
			for j := lo; j < hi; j++ {
				t.clusters[j].clear()
			}
			return nil
		})
	}

	err := g.Wait()
	t.generation.Store(0)
	logw.Debugf(ctx, "tt: cleared %v clusters with %v goroutines", n, threads)
	return err
}

// NewSearch advances the generation counter by GenerationDelta, wrapping
// modulo 256. It never touches table memory.
func (t *Table) NewSearch() {
	g := uint8(t.generation.Load())
	t.generation.Store(uint32(g + GenerationDelta))
}

// Generation returns the current 8-bit generation counter.
func (t *Table) Generation() uint8 {
	return uint8(t.generation.Load())
}

// ClusterCount returns the number of clusters the table was sized for.
func (t *Table) ClusterCount() uint64 {
	return uint64(len(t.clusters))
}

// Size returns the table's footprint in bytes.
func (t *Table) Size() uint64 {
	return t.ClusterCount() * clusterSize
}

// clusterIndex maps a key onto [0, clusterCount) using the high 64 bits of
// the 128-bit product key*clusterCount: a uniform, division-free mapping
// that works for any clusterCount, not just powers of two.
func clusterIndex(key Key, clusterCount uint64) uint64 {
	hi, _ := bits.Mul64(uint64(key), clusterCount)
	return hi
}

// Probe looks up key's cluster and scans it for a stub match. hit is true
// only if a matching, occupied entry was found; on a miss, data is the
// default miss snapshot. Either way the returned Writer addresses the slot
// a subsequent write with this key should land in: the matching entry on a
// hit, or the chosen replacement victim on a miss.
func (t *Table) Probe(key Key) (hit bool, data Data, w *Writer) {
	cidx := clusterIndex(key, uint64(len(t.clusters)))
	cluster := &t.clusters[cidx]
	stub := keyStub(key)

	for i := 0; i < entriesPerCluster; i++ {
		e := cluster.entry(i)
		if keyStubOf(e) == stub {
			d := readEntry(e)
			d.Cut = cluster.cutFlag(i)
			return isOccupied(e), d, &Writer{table: t, cluster: cidx, index: i}
		}
	}

	currentGen := t.Generation()
	victim := 0
	victimScore := entryScore(cluster.entry(0), currentGen)
	for i := 1; i < entriesPerCluster; i++ {
		if s := entryScore(cluster.entry(i), currentGen); s < victimScore {
			victimScore = s
			victim = i
		}
	}
	return false, defaultMiss, &Writer{table: t, cluster: cidx, index: victim}
}

// Hashfull approximates per-mille table occupancy by sampling the first
// 1000 clusters (or all of them, if the table is smaller) and counting
// entries that are occupied and no older than maxAge generations. This is
// a UCI status value, not a precise count.
func (t *Table) Hashfull(maxAge uint8) uint16 {
	limit := len(t.clusters)
	if limit > 1000 {
		limit = 1000
	}
	currentGen := t.Generation()
	maxRelAge := int(maxAge) * GenerationDelta // widened: max_age*GenerationDelta can exceed a uint8

	var count int
	for i := 0; i < limit; i++ {
		cluster := &t.clusters[i]
		for j := 0; j < entriesPerCluster; j++ {
			e := cluster.entry(j)
			if isOccupied(e) && int(relativeAge(entryGeneration(e), currentGen)) <= maxRelAge {
				count++
			}
		}
	}
	return uint16(count / entriesPerCluster)
}

// Writer is a thin handle onto the slot Probe resolved a key to. It lets a
// caller write without re-deriving the cluster/index from the key (or, as
// the language would otherwise require, from the entry's address). Writers
// are not safe to retain past the next Resize/Clear of the owning table.
type Writer struct {
	table   *Table
	cluster uint64
	index   int
}

// Write saves an incoming record into the writer's slot. generation is
// normally the table's own current Generation(); callers may stamp a
// different value when backfilling entries created by another search
// epoch (e.g. persistent analysis tools), which is why it is a parameter
// rather than implicit.
func (w *Writer) Write(key Key, value int16, isPV bool, bound Bound, depth int, move Move, eval int16, cut bool, generation uint8) {
	cluster := &w.table.clusters[w.cluster]
	e := cluster.entry(w.index)
	save(e, keyStub(key), Data{Move: move, Value: value, Eval: eval, Depth: depth, Bound: bound, PV: isPV}, generation)
	cluster.setCutFlag(w.index, cut)
}
