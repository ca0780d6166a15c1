package solver

import "github.com/gdionne/janus/internal/janus/movetable"

// threadDepth is the remaining-depth threshold below which the root
// expansion stops spawning work-list items and instead recurses directly.
const threadDepth = 16

// usefulDepth is the remaining-depth threshold below which the depth table
// is consulted for pruning; above it the search proceeds as a raw DFS.
func usefulDepth(naso movetable.Naso, metric movetable.MoveMetric) uint8 {
	switch {
	case metric == movetable.QuarterTurn && naso == movetable.Disparilis:
		return 14
	case metric == movetable.QuarterTurn && naso == movetable.Aequivalens:
		return 13
	case metric == movetable.FaceTurn && naso == movetable.Disparilis:
		return 13
	default: // FaceTurn, Aequivalens
		return 12
	}
}

// godsNumber bounds how deep the iterative-deepening loop will ever search.
func godsNumber(metric movetable.MoveMetric) uint8 {
	if metric == movetable.QuarterTurn {
		return 26
	}
	return 20
}

// depthIncrement is how much the outer iterative-deepening loop advances
// its target depth each time it fails to find a solution: a quarter-turn
// solution's length always shares parity with the scramble's, so searching
// odd depths when starting from an even-parity state would be wasted work.
func depthIncrement(metric movetable.MoveMetric) uint8 {
	if metric == movetable.QuarterTurn {
		return 2
	}
	return 1
}
