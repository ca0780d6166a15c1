package movetable

import (
	"sync"

	"github.com/gdionne/janus/internal/bits"
	"github.com/gdionne/janus/internal/janus/choose"
	"github.com/gdionne/janus/internal/janus/mask"
)

// builder holds the intermediate state needed to construct a Table: the
// combinatorial choose tables, and the regular<->symmetric edge position
// translation built by finding, for every raw edge placement, the
// lowest-numbered placement reachable by naso's Janus permutation group
// (groupSize(naso) elements: 16 for aequivalens, 8 for disparilis).
type builder struct {
	naso   Naso
	metric MoveMetric

	c12_4 *choose.Table
	c8_4  *choose.Table

	// rec2sec[regPosition] packs the symmetric position in the lower 12
	// bits and the permutation needed to reach it in the upper 4 bits.
	rec2sec []uint16
	// sec2rec[symPosition] is the regular position representing that
	// symmetry class.
	sec2rec []uint16

	// nSymEdgePositions is the number of distinct orbits buildEdgePositionTables
	// discovered under naso's group - a smaller group (disparilis) collapses
	// fewer raw positions together, leaving more orbits than aequivalens's.
	nSymEdgePositions uint16
}

func newBuilder(naso Naso, metric MoveMetric) *builder {
	b := &builder{
		naso:   naso,
		metric: metric,
		c12_4:  choose.New(12, 4),
		c8_4:   choose.New(8, 4),
	}
	b.buildEdgePositionTables()
	return b
}

// pos2jem builds the (no-flip) edge mask for a raw position coordinate:
// regPosition/C(8,4) selects which 4 of 12 slots are "missing" (unoccupied),
// regPosition%C(8,4) selects which of the remaining 8 occupied slots holds
// an upper-layer edge.
func (b *builder) pos2jem(regPosition uint16) mask.EdgeMask {
	mask0 := b.c12_4.Unrank(regPosition / uint16(b.c8_4.Len()))
	mask1 := b.c8_4.Unrank(regPosition % uint16(b.c8_4.Len()))

	valid := ^mask0 & 0xFFF
	face := restoreMask(mask0, mask1)

	return mask.EdgeMask{Valid: valid, Face: face}
}

// jem2pos is the inverse of pos2jem, ignoring any flip bits.
func (b *builder) jem2pos(pem mask.EdgeMask) uint16 {
	pmask0 := uint16(0xFFF) & ^pem.Valid
	pmask1 := removeMask(pmask0, pem.Face)

	return b.c12_4.Rank(pmask0)*uint16(b.c8_4.Len()) + b.c8_4.Rank(pmask1)
}

func restoreMask(m, target uint16) uint16 { return bits.RestoreMask(m, target) }
func removeMask(m, target uint16) uint16  { return bits.RemoveMask(m, target) }

// buildEdgePositionTables finds, for every one of the C(12,4)*C(8,4) raw
// edge placements, the lowest-numbered placement reachable under naso's
// Janus permutation group, assigning symmetric position numbers to each
// distinct orbit in discovery order. A smaller group (disparilis) collapses
// fewer raw positions per orbit, so it discovers more orbits overall.
func (b *builder) buildEdgePositionTables() {
	b.rec2sec = make([]uint16, nRegEdgePositions)
	group := groupSize(b.naso)

	var symPosition uint16
	for regPosition := uint16(0); regPosition < nRegEdgePositions; regPosition++ {
		bestPerm := uint8(0)
		bestRegPosition := regPosition

		jem := b.pos2jem(regPosition)

		for perm := uint8(1); perm < group; perm++ {
			pem := jem.Permute(perm)
			permuted := b.jem2pos(pem)
			if permuted < bestRegPosition {
				bestPerm = perm
				bestRegPosition = permuted
			}
		}

		if bestPerm == 0 {
			b.sec2rec = append(b.sec2rec, regPosition)
			b.rec2sec[regPosition] = symPosition
			symPosition++
		} else {
			b.rec2sec[regPosition] = b.rec2sec[bestRegPosition] | (uint16(bestPerm) << 12)
		}
	}
	b.nSymEdgePositions = symPosition
}

// equivalentEdgePermutations returns, for symPosition, every nonzero
// permutation in naso's group that fixes its representative raw position —
// the stabilizer subgroup the depth table builder uses to expand one
// symmetric coordinate into all of its raw siblings.
func (b *builder) equivalentEdgePermutations(symPosition uint16) []uint8 {
	regPosition := b.sec2rec[symPosition]
	jem := b.pos2jem(regPosition)
	group := groupSize(b.naso)

	var perms []uint8
	for perm := uint8(1); perm < group; perm++ {
		pem := jem.Permute(perm)
		if b.jem2pos(pem) == regPosition {
			perms = append(perms, perm)
		}
	}
	return perms
}

var pow3 = [8]uint16{1, 3, 9, 27, 81, 243, 729, 2187}

// restoreSpinParity expands the 7-corner spin coordinate into the full
// 8-corner spin mask: the eighth corner's spin is whatever makes the total
// sum to zero modulo 3.
func restoreSpinParity(spin uint16) uint16 {
	var out, sum uint16
	for i := 0; i < 7; i++ {
		in := spin % 3
		sum += in
		out += in * pow3[i]
		spin /= 3
	}
	last := (3 - sum%3) % 3
	out += last * pow3[7]
	return out
}

// removeSpinParity discards the redundant eighth corner spin.
func removeSpinParity(spin uint16) uint16 { return spin % pow3[7] }

// jcc2jcm converts a Janus corner coordinate to its bit-packed mask.
func (b *builder) jcc2jcm(jcc CornerCoordinate) mask.CornerMask {
	face := b.c8_4.Unrank(uint16(jcc.Position))
	spin := restoreSpinParity(jcc.Spin)
	return mask.CornerMask{Face: face, Spin: uint32(spin)}
}

// jcm2jcc converts a Janus corner mask to its flattened coordinate.
func (b *builder) jcm2jcc(jcm mask.CornerMask) CornerCoordinate {
	position := uint8(b.c8_4.Rank(jcm.Face))
	spin := removeSpinParity(uint16(jcm.Spin))
	return CornerCoordinate{Position: position, Spin: spin}
}

// jec2jem converts a Janus edge coordinate to its bit-packed mask.
func (b *builder) jec2jem(jec EdgeCoordinate) mask.EdgeMask {
	regPosition := b.sec2rec[jec.Position]
	mask0 := b.c12_4.Unrank(regPosition / uint16(b.c8_4.Len()))
	mask1 := b.c8_4.Unrank(regPosition % uint16(b.c8_4.Len()))

	valid := ^mask0 & 0xFFF
	face := restoreMask(mask0, mask1)
	flip := restoreMask(mask0, jec.Flip)

	return mask.EdgeMask{Valid: valid, Face: face, Flip: flip}
}

// jem2jec converts a Janus edge mask to its symmetrized coordinate,
// reporting which permutation (if any) was needed to reach the canonical
// representative — the caller must apply that same permutation to the
// corners of its projection to stay consistent.
func (b *builder) jem2jec(jem mask.EdgeMask) (EdgeCoordinate, uint8) {
	mask0 := uint16(0xFFF) & ^jem.Valid
	mask1 := removeMask(mask0, jem.Face)
	position := b.c12_4.Rank(mask0)*uint16(b.c8_4.Len()) + b.c8_4.Rank(mask1)
	entry := b.rec2sec[position]
	permNeeded := uint8(entry >> 12)

	pjem := jem.Permute(permNeeded)
	pMask0 := uint16(0xFFF) & ^pjem.Valid
	pFlip := removeMask(pMask0, pjem.Flip)
	pMask1 := removeMask(pMask0, pjem.Face)
	pPosition := b.c12_4.Rank(pMask0)*uint16(b.c8_4.Len()) + b.c8_4.Rank(pMask1)
	pEntry := b.rec2sec[pPosition]
	pSymPosition := pEntry & 0xFFF

	return EdgeCoordinate{Position: pSymPosition, Flip: pFlip}, permNeeded
}

// homeRegEdgePositionOnce memoizes homeRegEdgePosition's result: the
// orbit-collapse it runs to find it is naso-independent, so it only ever
// needs to run once no matter how many Tables of either variant get built.
var homeRegEdgePositionOnce = struct {
	sync.Once
	value uint16
}{}

// homeRegEdgePosition returns the single regular (unsymmetrized) edge
// position describing every edge in its home slot. It is found by running
// the orbit-collapse under aequivalens's 16-element group - whose resulting
// symmetric index for home, 2224, is grounded in original_source's
// constants.hpp - and inverting through that group's sec2rec table. The raw
// position itself is pure geometry and does not depend on naso; only the
// symmetric index a given variant's (possibly smaller) group assigns to it
// does, so every variant derives its own home edge index by looking this
// same raw position up in its own rec2sec table.
func homeRegEdgePosition() uint16 {
	homeRegEdgePositionOnce.Do(func() {
		aeq := &builder{naso: Aequivalens, c12_4: choose.New(12, 4), c8_4: choose.New(8, 4)}
		aeq.buildEdgePositionTables()
		homeRegEdgePositionOnce.value = aeq.sec2rec[2224]
	})
	return homeRegEdgePositionOnce.value
}

// homeEdgeSymPosition returns the symmetric edge position this builder's
// naso assigns to the home (solved) raw edge placement.
func (b *builder) homeEdgeSymPosition() uint16 {
	return b.rec2sec[homeRegEdgePosition()] & 0xFFF
}
