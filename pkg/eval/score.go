package eval

import (
	"fmt"
)

// Pawns is a heuristic position or move value expressed in units of a pawn. Positive
// favors the side to move. If all pawns become queens and the opponent has only the
// king left, the standard material advantage is: 9*8 (p) + 9 (q) + 2*5 (r) + 2*3 (k) +
// 2*3 (b) = 103, so a Pawns value comfortably fits in a float32.
type Pawns float32

// Limit clamps a heuristic value to +/- bound.
func Limit(v, bound Pawns) Pawns {
	switch {
	case v > bound:
		return bound
	case v < -bound:
		return -bound
	default:
		return v
	}
}

// maxMateDistance bounds the plies-to-mate distance. It is larger than any realistic
// search depth, so it never collides with a legitimate mate score.
const maxMateDistance = 1000

// Score is either a heuristic Pawns evaluation or a forced mate in some number of
// plies for the side to move. The zero value is InvalidScore.
type Score struct {
	Pawns Pawns // heuristic value, meaningful only when Mate == 0
	Mate  int16 // plies to mate for the side to move; 0 if this is not a mate score
	ok    bool
}

var (
	// ZeroScore is a valid, neutral heuristic score.
	ZeroScore = Score{ok: true}
	// NegInfScore is smaller than any other valid score: being mated immediately.
	NegInfScore = Score{Mate: -maxMateDistance, ok: true}
	// InfScore is larger than any other valid score: mating immediately.
	InfScore = Score{Mate: maxMateDistance, ok: true}
	// InvalidScore is the zero value, used as a sentinel for "no score".
	InvalidScore = Score{}
)

// HeuristicScore wraps a static evaluation as a Score.
func HeuristicScore(p Pawns) Score {
	return Score{Pawns: p, ok: true}
}

// MateInXScore returns the score for a forced mate in n plies for the side to move.
func MateInXScore(n int) Score {
	return Score{Mate: int16(n), ok: true}
}

func (s Score) String() string {
	if !s.ok {
		return "invalid"
	}
	if s.Mate != 0 {
		return fmt.Sprintf("mate(%v)", s.Mate)
	}
	return fmt.Sprintf("%.2f", s.Pawns)
}

// IsInvalid returns true if the score carries no information, i.e., it is the zero value.
func (s Score) IsInvalid() bool {
	return !s.ok
}

// IsHeuristic returns true if the score is a static evaluation rather than a forced mate.
func (s Score) IsHeuristic() bool {
	return s.ok && s.Mate == 0
}

// MateDistance returns the number of plies to a forced mate for the side to move, if any.
func (s Score) MateDistance() (uint, bool) {
	if !s.ok || s.Mate <= 0 {
		return 0, false
	}
	return uint(s.Mate), true
}

// Negate flips the score to the opponent's point of view.
func (s Score) Negate() Score {
	return Score{Pawns: -s.Pawns, Mate: -s.Mate, ok: s.ok}
}

// Less reports whether s is strictly worse than o for the side to move.
func (s Score) Less(o Score) bool {
	return s.rank() < o.rank()
}

// rank maps a Score onto a single total order: mate scores dominate heuristic scores,
// and a closer mate (for either side) dominates a more distant one.
func (s Score) rank() float64 {
	switch {
	case s.Mate >= maxMateDistance:
		return float64(2 * maxMateDistance)
	case s.Mate <= -maxMateDistance:
		return -float64(2 * maxMateDistance)
	case s.Mate > 0:
		return float64(2*maxMateDistance) - float64(s.Mate)
	case s.Mate < 0:
		return -float64(2*maxMateDistance) - float64(s.Mate)
	default:
		return float64(s.Pawns)
	}
}

// IncrementMateDistance adds one ply to a mate score as it is propagated up the tree.
// Heuristic scores are returned unchanged.
func IncrementMateDistance(s Score) Score {
	if !s.ok || s.Mate == 0 {
		return s
	}
	if s.Mate >= maxMateDistance {
		return MateInXScore(1) // InfScore: mating immediately
	}
	if s.Mate <= -maxMateDistance {
		return MateInXScore(-1) // NegInfScore: mated immediately
	}
	if s.Mate > 0 {
		return Score{Mate: s.Mate + 1, ok: true}
	}
	return Score{Mate: s.Mate - 1, ok: true}
}

// Max returns the largest of the given scores.
func Max(a, b Score) Score {
	if a.Less(b) {
		return b
	}
	return a
}

// Min returns the smallest of the given scores.
func Min(a, b Score) Score {
	if a.Less(b) {
		return a
	}
	return b
}
