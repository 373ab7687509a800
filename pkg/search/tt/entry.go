package tt

import "encoding/binary"

// Key identifies a position. Callers are responsible for hashing their own
// position representation into a uniformly-distributed 64-bit value.
type Key uint64

// Move is an opaque 16-bit move code. 0 means "no move".
type Move uint16

// Bound records which side of the search window a stored value is known to
// satisfy.
type Bound uint8

const (
	NoBound    Bound = 0 // no usable bound, e.g. the default miss snapshot
	UpperBound Bound = 1 // value is an upper bound (search failed low)
	LowerBound Bound = 2 // value is a lower bound (search failed high / cutoff)
	ExactBound Bound = 3 // value is exact
)

// DepthEntryOffset is subtracted from a search depth before it is stored in
// an entry's single depth byte, and added back on read. It lets a shallow
// negative "depth" (used by quiescence callers) still occupy a nonzero byte,
// keeping depth != 0 a reliable occupancy test.
const DepthEntryOffset = -7

// entrySize is the on-wire size of a single entry, in bytes. Cluster relies
// on this being <= 10 and a divisor-friendly offset within a 32-byte cluster.
const entrySize = 10

const (
	offKeyStub  = 0
	offDepth    = 2
	offGenBound = 3
	offMove     = 4
	offValue    = 6
	offEval     = 8
)

const (
	genBoundMask = 0xF8 // top 5 bits: generation
	pvBit        = 0x04 // bit 2: PV flag
	boundMask    = 0x03 // low 2 bits: Bound
)

// Data is a caller-facing, unpacked view of everything an entry stores,
// including the cut flag that physically lives in the cluster's shared
// extra bank rather than inside the entry itself.
type Data struct {
	Move  Move
	Value int16
	Eval  int16
	Depth int // true search depth; Depth == invalidDepth means "unoccupied"
	Bound Bound
	PV    bool
	Cut   bool
}

// invalidDepth is the Depth value read back from an unoccupied entry.
const invalidDepth = DepthEntryOffset

// defaultMiss is the snapshot probe returns on a miss, per the probe/write
// protocol's contract for the "no entry found" case.
var defaultMiss = Data{Depth: invalidDepth, Bound: NoBound}

func isOccupied(e []byte) bool {
	return e[offDepth] != 0
}

func keyStub(k Key) uint16 {
	return uint16(k)
}

func keyStubOf(e []byte) uint16 {
	return binary.LittleEndian.Uint16(e[offKeyStub:])
}

// readEntry decodes everything stored directly in the entry's 10 bytes. The
// Cut field is left false; callers with access to the cluster fill it in.
func readEntry(e []byte) Data {
	genBound := e[offGenBound]
	return Data{
		Move:  Move(binary.LittleEndian.Uint16(e[offMove:])),
		Value: int16(binary.LittleEndian.Uint16(e[offValue:])),
		Eval:  int16(binary.LittleEndian.Uint16(e[offEval:])),
		Depth: int(e[offDepth]) + DepthEntryOffset,
		Bound: Bound(genBound & boundMask),
		PV:    genBound&pvBit != 0,
	}
}

func entryGeneration(e []byte) uint8 {
	return e[offGenBound] & genBoundMask
}

// entryScore is the replacement-policy score used to pick a victim on a miss:
// the stored depth byte minus replacementK times the relative age, so a deeper,
// fresher entry scores higher and is kept; the PV flag plays no part. Smaller
// wins eviction.
func entryScore(e []byte, currentGen uint8) int {
	return int(e[offDepth]) - replacementK*int(relativeAge(entryGeneration(e), currentGen))
}

// save commits an incoming record into the entry's 10 bytes, applying the
// move-preservation rule and the overwrite/gentle-aging policy. It never
// fails: a save that the policy rejects is simply a no-op (aside from the
// gentle-aging depth decrement).
func save(e []byte, stub uint16, d Data, generation uint8) {
	storedStub := binary.LittleEndian.Uint16(e[offKeyStub:])
	wasOccupied := isOccupied(e)

	if d.Move == 0 && wasOccupied && storedStub == stub {
		d.Move = Move(binary.LittleEndian.Uint16(e[offMove:]))
	}

	if !wasOccupied || storedStub != stub || shouldOverwrite(e, d, generation) {
		binary.LittleEndian.PutUint16(e[offKeyStub:], stub)
		e[offDepth] = byte(d.Depth - DepthEntryOffset)
		genBound := (generation & genBoundMask) | byte(d.Bound)&boundMask
		if d.PV {
			genBound |= pvBit
		}
		e[offGenBound] = genBound
		binary.LittleEndian.PutUint16(e[offMove:], uint16(d.Move))
		binary.LittleEndian.PutUint16(e[offValue:], uint16(d.Value))
		binary.LittleEndian.PutUint16(e[offEval:], uint16(d.Eval))
		return
	}

	// Gentle aging: the incoming write lost to the entry already there, but
	// the stored entry still ages by one ply of depth unless it is exact or
	// already shallow.
	storedDepth := int(e[offDepth]) + DepthEntryOffset
	if storedDepth >= 5 && Bound(e[offGenBound]&boundMask) != ExactBound {
		e[offDepth]--
	}
}

// shouldOverwrite implements the save-time overwrite test of the
// replacement policy, given that the incoming record targets the same
// cluster slot as e (same stub, already occupied).
func shouldOverwrite(e []byte, d Data, generation uint8) bool {
	if d.Bound == ExactBound {
		return true
	}
	storedDepth := int(e[offDepth]) + DepthEntryOffset
	if d.Depth+2*boolInt(d.PV) > storedDepth-4 {
		return true
	}
	return relativeAge(entryGeneration(e), generation) > 0
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
