package tt

import "encoding/binary"

// entriesPerCluster is N in the packing scheme: 3 entries of 10 bytes each
// fit in a 30-byte span, leaving 2 bytes of cluster-wide "extra" bits. The
// cut-flag accessor below uses bit i of the 16-bit extra bank for entry i.
const entriesPerCluster = 3

// clusterSize is the size of a Cluster, in bytes: entriesPerCluster*entrySize
// (30) plus a 16-bit extra bank (2), for 32 total. Cluster addresses are
// expected to be 32-byte aligned so an entry's address alone recovers its
// cluster and index; this implementation instead has Probe hand back the
// cluster/index explicitly (see Writer), so alignment is a performance
// concern, not a correctness one.
const clusterSize = entriesPerCluster*entrySize + 2

const extraOffset = entriesPerCluster * entrySize

// Cluster is the unit of allocation and addressing in the table: a fixed
// run of entries sharing one small bank of extra bits (currently just a
// per-entry cut flag; the 16 bits give each entry (8*2)/entriesPerCluster
// of them, so room for 4 more per entry).
type Cluster [clusterSize]byte

func (c *Cluster) entry(i int) []byte {
	off := i * entrySize
	return c[off : off+entrySize]
}

// cutFlag reads entry i's cut bit out of the cluster's shared extra bank.
func (c *Cluster) cutFlag(i int) bool {
	extra := binary.LittleEndian.Uint16(c[extraOffset:])
	return extra&(1<<uint(i)) != 0
}

// setCutFlag writes entry i's cut bit into the cluster's shared extra bank.
// Concurrent writers touching different entries of the same cluster may
// race on this read-modify-write and lose one update; per the table's
// contract that is an accepted, not a corrected, outcome.
func (c *Cluster) setCutFlag(i int, v bool) {
	extra := binary.LittleEndian.Uint16(c[extraOffset:])
	if v {
		extra |= 1 << uint(i)
	} else {
		extra &^= 1 << uint(i)
	}
	binary.LittleEndian.PutUint16(c[extraOffset:], extra)
}

func (c *Cluster) clear() {
	for i := range c {
		c[i] = 0
	}
}
