package coord

import "testing"

// aequivalensHomeEdge is the aequivalens variant's home edge coordinate
// (symmetric position 2224, no flips, shifted up 8 bits) - grounded in
// original_source's constants.hpp. Used here only to exercise coord's
// generic, naso-blind IsSolved/HomeIndex logic; movetable.Table.HomeEdgeIndex
// is the real source of this value for either variant.
const aequivalensHomeEdge = 2224 << 8

func TestHomeCubeIndexIsSolved(t *testing.T) {
	if !HomeCubeIndex(aequivalensHomeEdge).IsSolved(aequivalensHomeEdge) {
		t.Fatal("HomeCubeIndex() is not solved")
	}
}

func TestIndexSolvedRequiresEvenSymmetry(t *testing.T) {
	ix := HomeIndex(1, aequivalensHomeEdge) // odd symmetry: z-reflection bit set
	if ix.IsSolved(aequivalensHomeEdge) {
		t.Error("index with odd symmetry reported solved")
	}
}

func TestRedepthMatchesItselfAtHome(t *testing.T) {
	d := HomeDepth()
	got := d.Redepth(0, 0, 0)
	if got != (CubeDepth{}) {
		t.Errorf("Redepth(0,0,0) from home = %+v, want zero", got)
	}
}

func TestTooFarPruning(t *testing.T) {
	cases := []struct {
		d      CubeDepth
		depth  uint8
		tooFar bool
	}{
		{CubeDepth{0, 0, 0}, 0, false},
		{CubeDepth{1, 0, 0}, 0, true},
		{CubeDepth{3, 3, 3}, 3, true},  // de Bondt: all-equal nonzero bumps effective depth by one
		{CubeDepth{3, 3, 3}, 4, false}, // now within the bumped bound
		{CubeDepth{0, 0, 0}, 0, false}, // all-zero is genuinely solved, no bump
		{CubeDepth{2, 3, 1}, 3, false},
	}
	for _, c := range cases {
		if got := c.d.TooFar(c.depth); got != c.tooFar {
			t.Errorf("%+v.TooFar(%d) = %v, want %v", c.d, c.depth, got, c.tooFar)
		}
	}
}
