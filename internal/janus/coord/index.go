// Package coord implements the symmetrized coordinate types the depth
// table and solver operate on: a single Janus projection's Index, the
// three-projection CubeIndex, and the CubeDepth pruning bound derived from
// consulting the depth table at each projection.
package coord

// HomeCornerPosition is the corner coordinate (position, spin) when every
// corner is in its home slot with zero spin: position index 20 out of
// C(8,4)=70 choices, spin 0 out of 3^7=2187 choices, flattened as
// spin*70+position. Naso-independent: both variants share the same
// 8-corner geometry, so this is the one home coordinate coord can name
// itself rather than take as a parameter.
const HomeCornerPosition = 20

// Index locates one Janus projection's corner and edge coordinates together
// with the whole-cube symmetry needed to interpret them against the depth
// table's canonical (lowest-numbered) orientation.
type Index struct {
	Corners uint32
	Edges   uint32

	// Symmetry encodes one of the 48 cube symmetries as a Lehmer code of
	// the axis ordering (0-5) shifted up by a 3-bit reflection mask:
	//
	//	lehmer  xyz
	//	0       012
	//	1       021
	//	2       102
	//	3       120
	//	4       201
	//	5       210
	//
	// Symmetry = lehmer<<3 + reflectionMask, where each reflection bit
	// (X, Y, Z) marks whether the corresponding axis is mirrored.
	Symmetry uint8
}

// IsSolved reports whether this projection is at its home coordinate with
// its z-reflection bit clear. An unset z bit is required in addition to
// home corners/edges: with it set, the two faces of the Janus would be
// swapped with the wrong nose (center piece) even though the bare
// coordinates read solved. homeEdge is the caller's variant-specific home
// edge coordinate (movetable.Table.HomeEdgeIndex) - disparilis and
// aequivalens assign it different values, so coord cannot hardcode one.
func (ix Index) IsSolved(homeEdge uint32) bool {
	return ix.Corners == HomeCornerPosition && ix.Edges == homeEdge && ix.Symmetry&1 == 0
}

// HomeIndex returns the solved coordinate under the given symmetry and
// home edge coordinate.
func HomeIndex(symmetry uint8, homeEdge uint32) Index {
	return Index{Corners: HomeCornerPosition, Edges: homeEdge, Symmetry: symmetry}
}

// CubeIndex bundles the three Janus projections (front-back, right-left,
// up-down) that together fully determine a cube's symmetrized state.
type CubeIndex struct {
	X Index
	Y Index
	Z Index
}

// IsSolved reports whether all three projections read solved against the
// given variant's home edge coordinate.
func (ci CubeIndex) IsSolved(homeEdge uint32) bool {
	return ci.X.IsSolved(homeEdge) && ci.Y.IsSolved(homeEdge) && ci.Z.IsSolved(homeEdge)
}

// HomeCubeIndex returns the solved CubeIndex for the given variant's home
// edge coordinate. The three fixed symmetry values (32, 24, 0) are the
// canonical "home" orientation of each axis pairing as selected by the
// original Janus movetable builder.
func HomeCubeIndex(homeEdge uint32) CubeIndex {
	return CubeIndex{X: HomeIndex(32, homeEdge), Y: HomeIndex(24, homeEdge), Z: HomeIndex(0, homeEdge)}
}
