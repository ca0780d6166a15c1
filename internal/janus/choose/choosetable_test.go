package choose

import "testing"

func choose(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}

func TestTableSizeMatchesBinomial(t *testing.T) {
	cases := []struct{ n, k uint8 }{{8, 4}, {12, 4}, {12, 8}}
	for _, c := range cases {
		tbl := New(c.n, c.k)
		want := choose(int(c.n), int(c.k))
		if tbl.Len() != want {
			t.Errorf("C(%d,%d): table has %d entries, want %d", c.n, c.k, tbl.Len(), want)
		}
	}
}

func TestRankUnrankRoundTrip(t *testing.T) {
	tbl := New(8, 4)
	for pos := 0; pos < tbl.Len(); pos++ {
		mask := tbl.Unrank(uint16(pos))
		if PopCount(mask) != 4 {
			t.Fatalf("position %d: mask %04b has %d bits set, want 4", pos, mask, PopCount(mask))
		}
		if got := tbl.Rank(mask); int(got) != pos {
			t.Errorf("mask %04b: Rank = %d, want %d", mask, got, pos)
		}
	}
}

func TestMasksAreStrictlyIncreasing(t *testing.T) {
	tbl := New(12, 4)
	for i := 1; i < tbl.Len(); i++ {
		if tbl.Unrank(uint16(i)) <= tbl.Unrank(uint16(i-1)) {
			t.Fatalf("masks not strictly increasing at position %d", i)
		}
	}
}
