package tt

// GenerationDelta is added to the global generation counter by NewSearch.
// Its low 3 bits are always zero, which is what lets a single byte pack a
// generation, a PV flag and a 2-bit bound together (see entry.go).
const GenerationDelta = 8

// GenerationCycle is the bias relative_age below adds before subtracting:
// 255 plus GenerationDelta, large enough that the subtraction never goes
// negative before masking. Its low 3 bits (7) are removed by the mask.
const GenerationCycle = 255 + GenerationDelta

// genBoundMask (defined in entry.go) also serves as the mask relative_age
// is reduced through, so a just-written entry's age reads back as exactly
// zero regardless of the low, per-entry bits sharing the byte.

// replacementK is the age multiplier in the replacement score
// depth - k*relative_age. The spec allows 1 (a hashfull-counting variant)
// or 2 (a save-time variant); this table uses 2 everywhere so the victim
// scan and the save-time overwrite check agree.
const replacementK = 2

// relativeAge returns how many generations old entryGen is relative to
// currentGen, saturating the wraparound arithmetic into [0, 256) and then
// masking down to a multiple of GenerationDelta.
func relativeAge(entryGen, currentGen uint8) uint8 {
	return uint8((GenerationCycle + int(currentGen) - int(entryGen)) & genBoundMask)
}
