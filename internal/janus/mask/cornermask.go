// Package mask implements the bit-packed corner and edge representations of
// a single Janus projection: the eight corners (or twelve edges) of one
// symmetrized axis pairing, tracked only by occupancy and orientation.
package mask

import "github.com/gdionne/janus/internal/bits"

const nCorners = 8

// pow3 gives the base-3 place value for each of the eight corner slots; the
// eighth slot's spin is always the redundant one recovered by subtraction
// modulo 3 from the other seven, but it is carried explicitly here for
// simplicity the way the coordinate layer expects.
var pow3 = [nCorners]uint32{1, 3, 9, 27, 81, 243, 729, 2187}

// CornerMask packs the occupancy ("Face": which of the eight corner slots
// holds an upper-layer corner) and the base-3 packed spin of every corner of
// one Janus projection.
//
// Corner positions are numbered by bit pattern XYZ, 0 meaning
// front/right/up and 1 meaning back/left/down; opposing corners sum to 7.
type CornerMask struct {
	Face uint16
	Spin uint32
}

type cornerReturn struct {
	position uint8
	spin     uint8
}

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// quarterTwistCorner returns the destination position and spin delta (0, 1
// or 2) for a single corner at position undergoing the given quarter twist.
func quarterTwistCorner(position, twist uint8) cornerReturn {
	ret := cornerReturn{position: position}

	twistAxis := (17 - twist) % 3 // 0 = z, 1 = y, 2 = x
	twistPole := boolToU8((twist % 6) > 2)
	twistDir := twist / 6

	if ((position >> twistAxis) & 1) != twistPole {
		return ret
	}

	del := bits.DeleteBit(uint32(position), uint32(twistAxis))
	xchg := bits.ExchangeLowerBits(del)
	flipBit := (twistDir ^ (twistAxis & 1) ^ twistPole) + 1
	eor := xchg ^ uint32(flipBit)
	dest := uint8(bits.InsertBit(eor, uint32(twistAxis), uint32(twistPole)))

	ret.position = dest

	isccw := (position ^ dest ^ twistDir) & 1
	offset := (1 + isccw) % 3
	hasSpin := boolToU8(twistAxis > 0)
	ret.spin = hasSpin * offset

	return ret
}

// moveQuarterTwist applies a single quarter twist to every corner.
func (c CornerMask) moveQuarterTwist(twist uint8) CornerMask {
	out := CornerMask{}

	tmpFace := c.Face
	tmpSpin := c.Spin

	for corner := uint8(0); corner < nCorners; corner++ {
		thisFace := tmpFace & 1
		thisSpin := tmpSpin % 3

		r := quarterTwistCorner(corner, twist)
		out.Face |= thisFace << r.position
		out.Spin += ((uint32(thisSpin) + uint32(r.spin)) % 3) * pow3[r.position]

		tmpFace >>= 1
		tmpSpin /= 3
	}

	return out
}

// Move applies the given twist (0-11 quarter twists, 12-17 half twists) to
// the mask.
func (c CornerMask) Move(twist uint8) CornerMask {
	if twist < 12 {
		return c.moveQuarterTwist(twist)
	}
	return c.moveQuarterTwist(twist % 6).moveQuarterTwist(twist % 6)
}

// permuteCorner applies one of the 48 cube symmetries (described by
// permutation's five bits) to a single corner's position and spin.
//
// Bit 4 duplicates bit 3's effect and is never set by either variant's
// group (see mask.Mask.Permute).
//
//	bit 4: reflect along z axis (without colorswap) - unreachable, see above
//	bit 3: reflect along z axis (with colorswap)
//	bit 2: reflect along y axis
//	bit 1: rotate a half-turn around z axis
//	bit 0: rotate a quarter-turn around z axis
func permuteCorner(position, spin, permutation uint8) cornerReturn {
	if permutation&0x10 != 0 {
		position ^= 0x01
		spin = (3 - spin) % 3
	}
	if permutation&0x08 != 0 {
		position ^= 0x01
		spin = (3 - spin) % 3
	}
	if permutation&0x04 != 0 {
		position ^= 0x02
		spin = (3 - spin) % 3
	}
	if permutation&0x02 != 0 {
		position ^= 0x06
	}
	if permutation&0x01 != 0 {
		position = uint8(2^bits.ExchangeLowerBits(uint32(position>>1)))<<1 | (position & 1)
	}

	return cornerReturn{position: position, spin: spin}
}

// Permute applies one of the 48 whole-cube symmetries to the mask.
func (c CornerMask) Permute(permutation uint8) CornerMask {
	out := CornerMask{}

	tmpFace := c.Face
	tmpSpin := c.Spin

	for corner := uint8(0); corner < nCorners; corner++ {
		thisFace := tmpFace & 1
		thisSpin := uint8(tmpSpin % 3)

		r := permuteCorner(corner, thisSpin, permutation)
		out.Face |= thisFace << r.position
		out.Spin += uint32(r.spin) * pow3[r.position]

		tmpFace >>= 1
		tmpSpin /= 3
	}

	return out
}
