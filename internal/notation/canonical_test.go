package notation

import "testing"

func TestFormatTwistQuarterTurns(t *testing.T) {
	cases := map[uint8]string{
		0: "F", 1: "R", 2: "U", 3: "B", 4: "L", 5: "D",
	}
	for twist, want := range cases {
		if got := FormatTwist(twist); got != want {
			t.Errorf("FormatTwist(%d) = %q, want %q", twist, got, want)
		}
	}
}

func TestFormatTwistCounterclockwiseAndHalf(t *testing.T) {
	if got := FormatTwist(6); got != "F'" {
		t.Errorf("FormatTwist(6) = %q, want F'", got)
	}
	if got := FormatTwist(14); got != "U2" {
		t.Errorf("FormatTwist(14) = %q, want U2", got)
	}
}

func TestParseTwistRoundTrip(t *testing.T) {
	for twist := uint8(0); twist < 18; twist++ {
		s := FormatTwist(twist)
		got, ok := ParseTwist(s)
		if !ok {
			t.Fatalf("ParseTwist(%q) failed", s)
		}
		if got != twist {
			t.Errorf("ParseTwist(%q) = %d, want %d", s, got, twist)
		}
	}
}

func TestParseTwistRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "X", "R3", "Ru"} {
		if _, ok := ParseTwist(s); ok {
			t.Errorf("ParseTwist(%q) unexpectedly succeeded", s)
		}
	}
}

func TestParseSequence(t *testing.T) {
	twists, err := ParseSequence("R U R' U'")
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}
	want := []uint8{1, 2, 1 + 6, 2 + 6}
	if len(twists) != len(want) {
		t.Fatalf("len(twists) = %d, want %d", len(twists), len(want))
	}
	for i := range want {
		if twists[i] != want[i] {
			t.Errorf("twists[%d] = %d, want %d", i, twists[i], want[i])
		}
	}
}

func TestParseSequenceRejectsInvalidToken(t *testing.T) {
	if _, err := ParseSequence("R U X"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestFormatSequenceRoundTrip(t *testing.T) {
	twists := []uint8{0, 7, 14}
	s := FormatSequence(twists)
	back, err := ParseSequence(s)
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}
	for i := range twists {
		if back[i] != twists[i] {
			t.Errorf("round trip mismatch at %d: %d != %d", i, back[i], twists[i])
		}
	}
}
