package recurser

import (
	"testing"

	"github.com/gdionne/janus/internal/janus/movetable"
)

func TestFaceTurnRootVisitsAllEighteenTwists(t *testing.T) {
	r := New(movetable.FaceTurn)
	seen := make(map[uint8]bool)
	r.Root(20, func(twist uint8) bool {
		seen[twist] = true
		return false
	}, func(twist uint8) bool {
		t.Fatalf("face-turn metric should never call visitTwo, got twist %d", twist)
		return false
	})
	if len(seen) != 18 {
		t.Errorf("expected 18 distinct twists visited, got %d", len(seen))
	}
}

func TestQuarterTurnRootSplitsOnesAndTwos(t *testing.T) {
	r := New(movetable.QuarterTurn)
	var ones, twos int
	r.Root(20, func(twist uint8) bool {
		ones++
		return false
	}, func(twist uint8) bool {
		twos++
		return false
	})
	if ones != 12 {
		t.Errorf("expected 12 quarter twists, got %d", ones)
	}
	if twos != 6 {
		t.Errorf("expected 6 half twists, got %d", twos)
	}
}

func TestQuarterTurnRootSkipsHalfTwistsAtDepthOne(t *testing.T) {
	r := New(movetable.QuarterTurn)
	var twos int
	r.Root(1, func(twist uint8) bool {
		return false
	}, func(twist uint8) bool {
		twos++
		return false
	})
	if twos != 0 {
		t.Errorf("expected no half twists with depth budget 1, got %d", twos)
	}
}

func TestLeafSkipsSameFaceRetwist(t *testing.T) {
	r := New(movetable.FaceTurn)
	const rCW = 1 // twist%6==1 names the R face in this layout
	seen := make(map[uint8]bool)
	r.Leaf(rCW, 20, func(twist uint8) bool {
		seen[twist] = true
		return false
	}, func(twist uint8) bool { return false })

	for twist := range seen {
		if twist%6 == rCW%6 {
			t.Errorf("twist %d retwists the same face as lastTwist %d", twist, rCW)
		}
	}
}

func TestLeafSkipsOppositeFaceAfterItsPartner(t *testing.T) {
	r := New(movetable.FaceTurn)
	const bCW = 3 // B face; its partner F (twist%6 == 0) must not follow it
	seen := make(map[uint8]bool)
	r.Leaf(bCW, 20, func(twist uint8) bool {
		seen[twist] = true
		return false
	}, func(twist uint8) bool { return false })

	for twist := range seen {
		if bCW%3 == twist%6 {
			t.Errorf("twist %d should be filtered as redundant with lastTwist %d", twist, bCW)
		}
	}
}

func TestLeafFiltersFewerThanRoot(t *testing.T) {
	r := New(movetable.FaceTurn)
	var rootCount, leafCount int
	r.Root(20, func(twist uint8) bool { rootCount++; return false }, func(twist uint8) bool { return false })
	r.Leaf(3, 20, func(twist uint8) bool { leafCount++; return false }, func(twist uint8) bool { return false })
	if leafCount >= rootCount {
		t.Errorf("expected leaf to filter out at least one twist: root=%d leaf=%d", rootCount, leafCount)
	}
}
