package solver

import (
	"testing"

	"github.com/gdionne/janus/internal/janus/movetable"
)

func TestUsefulDepthTable(t *testing.T) {
	cases := []struct {
		naso   movetable.Naso
		metric movetable.MoveMetric
		want   uint8
	}{
		{movetable.Disparilis, movetable.QuarterTurn, 14},
		{movetable.Aequivalens, movetable.QuarterTurn, 13},
		{movetable.Disparilis, movetable.FaceTurn, 13},
		{movetable.Aequivalens, movetable.FaceTurn, 12},
	}
	for _, c := range cases {
		if got := usefulDepth(c.naso, c.metric); got != c.want {
			t.Errorf("usefulDepth(%v, %v) = %d, want %d", c.naso, c.metric, got, c.want)
		}
	}
}

func TestGodsNumber(t *testing.T) {
	if godsNumber(movetable.FaceTurn) != 20 {
		t.Error("face-turn God's Number should be 20")
	}
	if godsNumber(movetable.QuarterTurn) != 26 {
		t.Error("quarter-turn God's Number should be 26")
	}
}

func TestDepthIncrement(t *testing.T) {
	if depthIncrement(movetable.FaceTurn) != 1 {
		t.Error("face-turn depth increment should be 1")
	}
	if depthIncrement(movetable.QuarterTurn) != 2 {
		t.Error("quarter-turn depth increment should be 2")
	}
}

func TestWorkListFIFO(t *testing.T) {
	var wl workList
	wl.push(workItem{remaining: 1})
	wl.push(workItem{remaining: 2})
	wl.push(workItem{remaining: 3})

	for _, want := range []uint8{1, 2, 3} {
		item, ok := wl.pop()
		if !ok {
			t.Fatalf("expected an item, got none")
		}
		if item.remaining != want {
			t.Errorf("expected remaining %d, got %d", want, item.remaining)
		}
	}

	if _, ok := wl.pop(); ok {
		t.Error("expected empty work list after draining all pushed items")
	}
}

func TestWorkListClear(t *testing.T) {
	var wl workList
	wl.push(workItem{remaining: 1})
	wl.clear()
	if _, ok := wl.pop(); ok {
		t.Error("expected empty work list after clear")
	}
}
