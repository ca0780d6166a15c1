// Package recurser enumerates the successor twists a search node considers
// at each depth, for either move metric. It replaces the original virtual
// Recurser/RecurserQTM/RecurserFTM hierarchy with a single value type
// parameterized by metric, since Go has no use for a two-member class
// hierarchy where a field does the same job.
package recurser

import "github.com/gdionne/janus/internal/janus/movetable"

// nQuarterTwists is how many of the 18 twists are quarter turns (CW or CCW);
// the remaining 6 (indices 12..17) are half turns.
const nQuarterTwists = 12
const nFaceTwists = 18

// Recurser enumerates candidate twists for one move metric.
type Recurser struct {
	metric movetable.MoveMetric
}

// New returns a Recurser for the given move metric.
func New(metric movetable.MoveMetric) Recurser {
	return Recurser{metric: metric}
}

// Visit is called once per candidate twist; its return value is OR'd into
// the caller's found-a-solution accumulator.
type Visit func(twist uint8) bool

// bound is the last quarter/face twist index (exclusive) this recurser's
// metric considers in its single-cost pass: all 18 for face-turn, only the
// 12 quarter turns for quarter-turn (whose half turns cost 2 and are
// enumerated separately, gated on remaining depth).
func (r Recurser) bound() uint8 {
	if r.metric == movetable.QuarterTurn {
		return nQuarterTwists
	}
	return nFaceTwists
}

// redundant reports whether twist is never worth trying right after
// lastTwist: either it retwists the same face, or it's the opposite face's
// twist immediately following a twist of this face in the canonical F-R-U
// before B-L-D ordering, which produces the same cube state two
// different ways.
func redundant(lastTwist, twist uint8) bool {
	return lastTwist%6 == twist%6 || lastTwist%3 == twist%6
}

// Root enumerates every twist at the search root, where there is no
// previous twist to filter against. visitOne is called for each single-cost
// twist; visitTwo (only reached in the quarter-turn metric, and only once
// depth leaves room for a 2-cost move) is called for each half turn.
func (r Recurser) Root(depth uint8, visitOne, visitTwo Visit) bool {
	found := false
	for twist := uint8(0); twist < r.bound(); twist++ {
		found = visitOne(twist) || found
	}
	if r.metric == movetable.QuarterTurn && depth > 1 {
		for twist := uint8(nQuarterTwists); twist < nFaceTwists; twist++ {
			found = visitTwo(twist) || found
		}
	}
	return found
}

// Leaf enumerates every twist not redundant with lastTwist.
func (r Recurser) Leaf(lastTwist, depth uint8, visitOne, visitTwo Visit) bool {
	found := false
	for twist := uint8(0); twist < r.bound(); twist++ {
		if redundant(lastTwist, twist) {
			continue
		}
		found = visitOne(twist) || found
	}
	if r.metric == movetable.QuarterTurn && depth > 1 {
		for twist := uint8(nQuarterTwists); twist < nFaceTwists; twist++ {
			if redundant(lastTwist, twist) {
				continue
			}
			found = visitTwo(twist) || found
		}
	}
	return found
}
