// Package tt implements a shared, lock-free transposition table for a parallel
// game-tree search. It knows nothing about chess: callers identify positions by
// an opaque 64-bit Key and store a 16-bit move code, a 16-bit value and a 16-bit
// static evaluation alongside depth, bound and generation metadata.
//
// The table favors throughput over consistency. Probes and writes never block,
// never take a lock and never retry; concurrent access to the same slot can tear
// a read across two writes. Callers are expected to treat a hit as a hint, not a
// guarantee, and to validate anything they act on (e.g. move legality).
package tt
