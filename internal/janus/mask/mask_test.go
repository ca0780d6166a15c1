package mask

import "testing"

func home() Mask {
	return Mask{
		Corner: CornerMask{Face: 0xF0, Spin: 0},
		Edge:   EdgeMask{Valid: 0xFFF, Face: 0xF0F, Flip: 0},
	}
}

// Four quarter twists of the same face return the mask to its starting
// state (spec.md Testable Property: move/inverse identities).
func TestQuarterTwistHasOrderFour(t *testing.T) {
	for twist := uint8(0); twist < 6; twist++ {
		m := home()
		for i := 0; i < 4; i++ {
			m = m.Move(twist)
		}
		if m != home() {
			t.Errorf("twist %d: four quarter twists did not return to home, got %+v", twist, m)
		}
	}
}

// A half twist is equivalent to two quarter twists of the same face.
func TestHalfTwistMatchesTwoQuarterTwists(t *testing.T) {
	for face := uint8(0); face < 6; face++ {
		m := home()
		viaHalf := m.Move(face + 12)
		viaTwoQuarters := m.Move(face).Move(face)
		if viaHalf != viaTwoQuarters {
			t.Errorf("face %d: half twist %+v != two quarter twists %+v", face, viaHalf, viaTwoQuarters)
		}
	}
}

// Twisting a face and then its inverse (three more quarter twists) restores
// the mask.
func TestQuarterTwistInverse(t *testing.T) {
	for twist := uint8(0); twist < 12; twist++ {
		inverse := (twist + 6) % 12
		m := home().Move(twist).Move(inverse)
		if m != home() {
			t.Errorf("twist %d then inverse %d did not return home: %+v", twist, inverse, m)
		}
	}
}

// The identity permutation (0) leaves the mask unchanged.
func TestIdentityPermutation(t *testing.T) {
	m := home().Move(0)
	if got := m.Permute(0); got != m {
		t.Errorf("identity permutation changed mask: %+v != %+v", got, m)
	}
}

// A 90-degree z rotation applied four times is the identity.
func TestZRotationHasOrderFour(t *testing.T) {
	m := home().Move(0) // scramble it a bit first
	p := m
	for i := 0; i < 4; i++ {
		p = p.Permute(0x01)
	}
	if p != m {
		t.Errorf("four 90-degree permutations did not return to start: %+v != %+v", p, m)
	}
}

// Reflecting twice (with colorswap) is the identity.
func TestReflectionIsInvolution(t *testing.T) {
	m := home().Move(1)
	p := m.Permute(0x08).Permute(0x08)
	if p != m {
		t.Errorf("double reflection did not return to start: %+v != %+v", p, m)
	}
}
