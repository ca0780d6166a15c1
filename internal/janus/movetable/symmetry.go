package movetable

// symElem is a signed permutation of the three cube axes (x=0, y=1, z=2): a
// member of the order-48 octahedral symmetry group. perm[i] names which
// input axis feeds output axis i; sign[i] is +1 or -1 depending on whether
// that output axis is mirrored.
type symElem struct {
	perm [3]uint8
	sign [3]int8
}

var identitySym = symElem{perm: [3]uint8{0, 1, 2}, sign: [3]int8{1, 1, 1}}

// The four elementary Janus-local symmetries named in mask.CornerMask's
// Permute doc comment, expressed as axis transforms rather than bit-packed
// face/spin operations. Bit 4 (aequivalens-only "reflect without colorswap")
// is geometrically identical to bit 3 ("reflect with colorswap") - they
// differ only in whether CornerMask/EdgeMask's face bit flips, not in which
// axis symmetry class the projection's Symmetry field records.
var (
	rot90ZSym    = symElem{perm: [3]uint8{1, 0, 2}, sign: [3]int8{1, -1, 1}}
	rot180ZSym   = symElem{perm: [3]uint8{0, 1, 2}, sign: [3]int8{-1, -1, 1}}
	reflectYSym  = symElem{perm: [3]uint8{0, 1, 2}, sign: [3]int8{1, -1, 1}}
	reflectZSym  = symElem{perm: [3]uint8{0, 1, 2}, sign: [3]int8{1, 1, -1}}
)

// composeSym returns g after h: composeSym(g, h)(v) == g(h(v)).
func composeSym(g, h symElem) symElem {
	var out symElem
	for i := 0; i < 3; i++ {
		src := g.perm[i]
		out.perm[i] = h.perm[src]
		out.sign[i] = g.sign[i] * h.sign[src]
	}
	return out
}

func invertSym(e symElem) symElem {
	var out symElem
	for i := 0; i < 3; i++ {
		out.perm[e.perm[i]] = uint8(i)
		out.sign[e.perm[i]] = e.sign[i]
	}
	return out
}

// janusPermSymElem converts one of the 16 Janus-local permutation values
// (CornerMask/EdgeMask.Permute's bits 0-3, plus the aequivalens-only bit 4
// which duplicates bit 3's axis effect) into its axis transform, applying
// the bits in the order the mask package documents: 4 then 3 then 2 then 1
// then 0, each newly-applied elementary symmetry composed on the outside of
// what came before.
func janusPermSymElem(perm uint8) symElem {
	e := identitySym
	if perm&0x10 != 0 {
		e = composeSym(reflectZSym, e)
	}
	if perm&0x08 != 0 {
		e = composeSym(reflectZSym, e)
	}
	if perm&0x04 != 0 {
		e = composeSym(reflectYSym, e)
	}
	if perm&0x02 != 0 {
		e = composeSym(rot180ZSym, e)
	}
	if perm&0x01 != 0 {
		e = composeSym(rot90ZSym, e)
	}
	return e
}

// lehmerAxisOrder lists, for each of the 6 Lehmer codes an Index.Symmetry
// value can carry in its upper bits, the axis permutation it names.
var lehmerAxisOrder = [6][3]uint8{
	{0, 1, 2}, // 012
	{0, 2, 1}, // 021
	{1, 0, 2}, // 102
	{1, 2, 0}, // 120
	{2, 0, 1}, // 201
	{2, 1, 0}, // 210
}

// decodeSymmetry expands an Index.Symmetry byte (Lehmer axis order shifted
// up 3, plus a 3-bit per-axis reflection mask) into its axis transform.
func decodeSymmetry(symmetry uint8) symElem {
	lehmer := symmetry >> 3
	reflMask := symmetry & 0x07

	var e symElem
	e.perm = lehmerAxisOrder[lehmer]
	for i := 0; i < 3; i++ {
		if reflMask&(1<<uint(i)) != 0 {
			e.sign[i] = -1
		} else {
			e.sign[i] = 1
		}
	}
	return e
}

// encodeSymmetry is the inverse of decodeSymmetry.
func encodeSymmetry(e symElem) uint8 {
	var lehmer uint8
	for code, order := range lehmerAxisOrder {
		if order == e.perm {
			lehmer = uint8(code)
			break
		}
	}
	var reflMask uint8
	for i := 0; i < 3; i++ {
		if e.sign[i] < 0 {
			reflMask |= 1 << uint(i)
		}
	}
	return lehmer<<3 | reflMask
}

// determinant reports whether e is a proper rotation (+1) or an
// orientation-reversing reflection (-1).
func (e symElem) determinant() int8 {
	// parity of the permutation: count inversions.
	parity := int8(1)
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if e.perm[i] > e.perm[j] {
				parity = -parity
			}
		}
	}
	for _, s := range e.sign {
		parity *= s
	}
	return parity
}

// faceAxisPole decomposes twist into its axis (0=x/U-D, 1=y/R-L, 2=z/F-B),
// pole (false=F/R/U, true=B/L/D) and direction (0=CW, 1=CCW, 2=HALF).
func faceAxisPole(twist uint8) (axis uint8, pole bool, direction uint8) {
	face := twist % 6
	axis = (17 - twist) % 3
	pole = face > 2
	direction = twist / 6
	return
}

// faceFromAxisPole is the inverse of faceAxisPole's (axis, pole) pair.
func faceFromAxisPole(axis uint8, pole bool) uint8 {
	faceAtPole0 := [3]uint8{2, 1, 0} // U, R, F
	faceAtPole1 := [3]uint8{5, 4, 3} // D, L, B
	if pole {
		return faceAtPole1[axis]
	}
	return faceAtPole0[axis]
}

// conjugateTwist returns the twist that, executed in the frame related to
// the cube frame by sym, has the same effect as executing twist directly in
// the cube frame: the twist-symmetry-table entry for sym.
func conjugateTwist(sym symElem, twist uint8) uint8 {
	inv := invertSym(sym)

	axis, pole, direction := faceAxisPole(twist)

	// inv maps local axis i to global axis inv.perm[i] with sign inv.sign[i];
	// find the local axis that lands on the global axis this twist names.
	var localAxis uint8
	var invSignAtAxis int8
	for i := 0; i < 3; i++ {
		if inv.perm[i] == axis {
			invSignAtAxis = inv.sign[i]
			localAxis = uint8(i)
			break
		}
	}

	localPole := pole
	if invSignAtAxis < 0 {
		localPole = !localPole
	}

	localDirection := direction
	if direction != 2 && sym.determinant() < 0 {
		localDirection = 1 - direction
	}

	return localDirection*6 + faceFromAxisPole(localAxis, localPole)
}
