package movetable

import (
	"github.com/gdionne/janus/internal/janus/coord"
)

// Table holds the read-only transition arrays a solver consults at every
// search node: one step per twist or whole-cube symmetry, for each of the
// three Janus projections' coordinate spaces. Several of these arrays are
// sized by naso-dependent geometry (the orbit-collapse group is smaller for
// disparilis than aequivalens - see naso.go's groupSize/edgePermBits), so
// that geometry is captured per-Table rather than as package constants.
type Table struct {
	Naso   Naso
	Metric MoveMetric

	// groupSize is the number of Janus-local permutations this variant's
	// orbit collapse considers (groupSize(Naso)).
	groupSize uint8
	// nEdgePermBits is the width of the permutation field packed into each
	// edgeTwistTable entry (edgePermBits(Naso)).
	nEdgePermBits uint8
	// edgePermMask extracts that field: 1<<nEdgePermBits - 1.
	edgePermMask uint32
	// nSymEdgePositions is the number of distinct edge position orbits this
	// variant's group discovered (builder.nSymEdgePositions).
	nSymEdgePositions uint16
	// nSymEdgeCoords is nSymEdgePositions*nEdgeFlips, the full symmetrized
	// edge coordinate space size.
	nSymEdgeCoords uint32

	// homeCornerIndex and homeEdgeIndex are this variant's solved-cube
	// coordinates, handed to coord's IsSolved/HomeIndex helpers since coord
	// cannot import movetable (movetable already imports coord) to derive
	// them itself.
	homeCornerIndex uint32
	homeEdgeIndex   uint32

	// cornerTwistTable[twist][cornerIdx] -> cornerIdx'
	cornerTwistTable [][]uint32
	// edgeTwistTable[twist][edgeIdx] -> (edgeIdx'<<nEdgePermBits)|permNeeded
	edgeTwistTable [][]uint32

	// cornerPermuteTable[perm][cornerIdx] -> cornerIdx'
	cornerPermuteTable [][]uint32
	// edgePermuteTable[perm][edgeIdx] -> edgeIdx'
	edgePermuteTable [][]uint32
	// symmetryPermuteTable[perm][symmetry] -> symmetry'
	symmetryPermuteTable [][]uint8

	// twistSymmetryTable[symmetry][twist] -> twist' in that symmetry's local
	// frame.
	twistSymmetryTable [][]uint8

	// equivalentEdgePermutationTable[symEdgePosition] lists every nonzero
	// Janus-local permutation that fixes that position's canonical
	// representative - the stabilizer the depth table's flood-seed phase
	// uses to propagate a freshly-discovered depth to symmetry siblings.
	equivalentEdgePermutationTable [][]uint8
}

// NSymCornerCoords and NSymEdgeCoords expose the coordinate space sizes the
// depth table needs to size its backing array. Corner coordinate space is
// naso-independent (both variants share the same 8-corner geometry); edge
// coordinate space is not.
func (t *Table) NSymCornerCoords() uint32 { return nSymCornerCoords }
func (t *Table) NSymEdgeCoords() uint32   { return t.nSymEdgeCoords }

// HomeCornerIndex and HomeEdgeIndex expose this variant's solved-cube
// coordinates, for callers (depthtable's flood-fill seed, engine's and
// solver's IsSolved checks) that need coord's home values but cannot import
// movetable's naso-dependent derivation directly.
func (t *Table) HomeCornerIndex() uint32 { return t.homeCornerIndex }
func (t *Table) HomeEdgeIndex() uint32   { return t.homeEdgeIndex }

// Build constructs the full set of transition tables for the given variant
// and move metric. The metric does not change table geometry (both metrics
// share the same 18-twist tables); it only changes which twists the
// recurser ever generates.
func Build(naso Naso, metric MoveMetric) *Table {
	b := newBuilder(naso, metric)
	t := &Table{
		Naso:              naso,
		Metric:            metric,
		groupSize:         groupSize(naso),
		nEdgePermBits:     edgePermBits(naso),
		nSymEdgePositions: b.nSymEdgePositions,
		nSymEdgeCoords:    uint32(b.nSymEdgePositions) * nEdgeFlips,
		homeCornerIndex:   coord.HomeCornerPosition,
		homeEdgeIndex:     uint32(b.homeEdgeSymPosition()) << 8,
	}
	t.edgePermMask = 1<<t.nEdgePermBits - 1

	t.buildCornerTwistTable(b)
	t.buildEdgeTwistTable(b)
	t.buildCornerPermuteTable(b)
	t.buildEdgePermuteTable(b)
	t.buildSymmetryPermuteTable()
	t.buildTwistSymmetryTable()
	t.buildEquivalentEdgePermutationTable(b)

	return t
}

func (t *Table) buildCornerTwistTable(b *builder) {
	t.cornerTwistTable = make([][]uint32, nTwistsPerMove)
	for twist := uint8(0); twist < nTwistsPerMove; twist++ {
		row := make([]uint32, nSymCornerCoords)
		for idx := uint32(0); idx < nSymCornerCoords; idx++ {
			jcc := CornerCoordinate{Position: uint8(idx % nSymCornerPositions), Spin: uint16(idx / nSymCornerPositions)}
			jcm := b.jcc2jcm(jcc)
			moved := jcm.Move(twist)
			row[idx] = b.jcm2jcc(moved).TableIndex()
		}
		t.cornerTwistTable[twist] = row
	}
}

func (t *Table) buildEdgeTwistTable(b *builder) {
	t.edgeTwistTable = make([][]uint32, nTwistsPerMove)
	for twist := uint8(0); twist < nTwistsPerMove; twist++ {
		row := make([]uint32, t.nSymEdgeCoords)
		for idx := uint32(0); idx < t.nSymEdgeCoords; idx++ {
			jec := EdgeCoordinate{Position: uint16(idx >> 8), Flip: uint16(idx & 0xFF)}
			jem := b.jec2jem(jec)
			moved := jem.Move(twist)
			newJec, permNeeded := b.jem2jec(moved)
			row[idx] = newJec.TableIndex()<<t.nEdgePermBits | uint32(permNeeded)
		}
		t.edgeTwistTable[twist] = row
	}
}

func (t *Table) buildCornerPermuteTable(b *builder) {
	t.cornerPermuteTable = make([][]uint32, t.groupSize)
	for perm := uint8(0); perm < t.groupSize; perm++ {
		row := make([]uint32, nSymCornerCoords)
		for idx := uint32(0); idx < nSymCornerCoords; idx++ {
			jcc := CornerCoordinate{Position: uint8(idx % nSymCornerPositions), Spin: uint16(idx / nSymCornerPositions)}
			jcm := b.jcc2jcm(jcc)
			permuted := jcm.Permute(perm)
			row[idx] = b.jcm2jcc(permuted).TableIndex()
		}
		t.cornerPermuteTable[perm] = row
	}
}

func (t *Table) buildEdgePermuteTable(b *builder) {
	t.edgePermuteTable = make([][]uint32, t.groupSize)
	for perm := uint8(0); perm < t.groupSize; perm++ {
		row := make([]uint32, t.nSymEdgeCoords)
		for idx := uint32(0); idx < t.nSymEdgeCoords; idx++ {
			jec := EdgeCoordinate{Position: uint16(idx >> 8), Flip: uint16(idx & 0xFF)}
			jem := b.jec2jem(jec)
			permuted := jem.Permute(perm)
			newJec, _ := b.jem2jec(permuted)
			row[idx] = newJec.TableIndex()
		}
		t.edgePermuteTable[perm] = row
	}
}

func (t *Table) buildSymmetryPermuteTable() {
	t.symmetryPermuteTable = make([][]uint8, t.groupSize)
	for perm := uint8(0); perm < t.groupSize; perm++ {
		permElem := janusPermSymElem(perm)
		row := make([]uint8, nCubeSyms)
		for symmetry := uint8(0); symmetry < nCubeSyms; symmetry++ {
			cur := decodeSymmetry(symmetry)
			row[symmetry] = encodeSymmetry(composeSym(cur, permElem))
		}
		t.symmetryPermuteTable[perm] = row
	}
}

func (t *Table) buildTwistSymmetryTable() {
	t.twistSymmetryTable = make([][]uint8, nCubeSyms)
	for symmetry := uint8(0); symmetry < nCubeSyms; symmetry++ {
		sym := decodeSymmetry(symmetry)
		row := make([]uint8, nTwistsPerMove)
		for twist := uint8(0); twist < nTwistsPerMove; twist++ {
			row[twist] = conjugateTwist(sym, twist)
		}
		t.twistSymmetryTable[symmetry] = row
	}
}

func (t *Table) buildEquivalentEdgePermutationTable(b *builder) {
	t.equivalentEdgePermutationTable = make([][]uint8, t.nSymEdgePositions)
	for pos := uint16(0); pos < t.nSymEdgePositions; pos++ {
		t.equivalentEdgePermutationTable[pos] = b.equivalentEdgePermutations(pos)
	}
}

// EquivalentEdgePermutations returns the stabilizer permutations for the
// given symmetric edge position.
func (t *Table) EquivalentEdgePermutations(symEdgePosition uint16) []uint8 {
	return t.equivalentEdgePermutationTable[symEdgePosition]
}

// NTwists returns how many distinct twist table columns exist (always 18;
// the quarter-turn metric is enforced at the recurser, not the table).
func (t *Table) NTwists() uint8 { return nTwistsPerMove }

// CornerTwist applies twist to a raw corner coordinate with no symmetry or
// permutation bookkeeping - used by the depth table builder, which operates
// directly on (cornerIdx, edgeIdx) pairs rather than Index/CubeIndex values.
func (t *Table) CornerTwist(twist uint8, cornerIdx uint32) uint32 {
	return t.cornerTwistTable[twist][cornerIdx]
}

// EdgeTwist applies twist to a raw edge coordinate, returning the resulting
// edge coordinate and the permutation that must also be applied to the
// corresponding corner coordinate via CornerPermute.
func (t *Table) EdgeTwist(twist uint8, edgeIdx uint32) (newEdgeIdx uint32, permNeeded uint8) {
	v := t.edgeTwistTable[twist][edgeIdx]
	return v >> t.nEdgePermBits, uint8(v & t.edgePermMask)
}

// CornerPermute applies a single Janus-local permutation to a raw corner
// coordinate.
func (t *Table) CornerPermute(perm uint8, cornerIdx uint32) uint32 {
	return t.cornerPermuteTable[perm][cornerIdx]
}

// EdgePermute applies a single Janus-local permutation to a raw edge
// coordinate.
func (t *Table) EdgePermute(perm uint8, edgeIdx uint32) uint32 {
	return t.edgePermuteTable[perm][edgeIdx]
}

// EdgePosition extracts the symmetric position component (dropping flip)
// from a raw edge coordinate, for indexing equivalentEdgePermutationTable.
func (t *Table) EdgePosition(edgeIdx uint32) uint16 {
	return uint16(edgeIdx >> 8)
}

// move performs twist on a single Janus projection.
func (t *Table) move(janus coord.Index, twist uint8) coord.Index {
	localTwist := t.twistSymmetryTable[janus.Symmetry][twist]

	cvalue := t.cornerTwistTable[localTwist][janus.Corners]
	evalue := t.edgeTwistTable[localTwist][janus.Edges]

	eidx := evalue >> t.nEdgePermBits
	permNeeded := uint8(evalue & t.edgePermMask)

	cidx := t.cornerPermuteTable[permNeeded][cvalue]
	symmetry := t.symmetryPermuteTable[permNeeded][janus.Symmetry]

	return coord.Index{Corners: cidx, Edges: eidx, Symmetry: symmetry}
}

// Move performs twist on all three Janus projections of a CubeIndex.
func (t *Table) Move(cube coord.CubeIndex, twist uint8) coord.CubeIndex {
	return coord.CubeIndex{
		X: t.move(cube.X, twist),
		Y: t.move(cube.Y, twist),
		Z: t.move(cube.Z, twist),
	}
}
