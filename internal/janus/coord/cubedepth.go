package coord

// CubeDepth tracks, for each of the three Janus projections, the lower
// bound on remaining twists reported by the depth table — the IDA* search's
// admissible heuristic.
type CubeDepth struct {
	X uint8 // front-back
	Y uint8 // right-left
	Z uint8 // up-down
}

// HomeDepth is the depth of a solved cube: zero on every axis.
func HomeDepth() CubeDepth {
	return CubeDepth{}
}

// Redepth folds in the mod-3 depth-table lookups (X, Y, Z) taken at the new
// coordinate, advancing each axis's running depth estimate by the formula
// x' = x + 1 - ((x + 1 - X) mod 3). The depth table only stores depth modulo
// 3 per cell; since one twist changes depth by at most one, the new value
// is whichever of x-1, x and x+1 matches the mod-3 sample, so the estimate
// can rise, stay or fall along a search path.
func (d CubeDepth) Redepth(x, y, z uint8) CubeDepth {
	return CubeDepth{
		X: d.X + 1 - mod3(d.X+1-x),
		Y: d.Y + 1 - mod3(d.Y+1-y),
		Z: d.Z + 1 - mod3(d.Z+1-z),
	}
}

func mod3(v uint8) uint8 {
	return v % 3
}

// TooFar reports whether the cube cannot be solved within the given search
// depth, pruning the branch.
//
// It fails fast if any single projection already exceeds depth, and applies
// Michael de Bondt's optimization: if all three projections report the same
// nonzero depth, the true remaining depth is at least one greater (since a
// single twist can bring at most two of the three Janus projections closer
// to solved at once).
func (d CubeDepth) TooFar(depth uint8) bool {
	if d.X > depth || d.Y > depth || d.Z > depth {
		return true
	}
	if d.X == d.Y && d.Y == d.Z && d.X != 0 && d.X+1 > depth {
		return true
	}
	return false
}
