// Package depthtable implements the Janus pattern database: a packed
// 2-bits-per-cell array recording, for every reachable (corner, edge)
// coordinate pair, the minimal solved-distance modulo 3. It is built in
// three phases (single-threaded flood seed, parallel forward BFS, backward
// cleanup) as described by the solver's heuristic design, and is read-only
// once built.
package depthtable

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gdionne/janus/internal/bits"
	"github.com/gdionne/janus/internal/janus/movetable"
)

// uninitialized is the cell value meaning "not reached within finalDepth
// twists of home" - the table is filled with this before building.
const uninitialized = 3

// seedDepth is how far phase A's single-threaded recursive flood reaches
// before handing off to the parallel forward BFS.
const seedDepth = 7

// buildDepth and finalDepth bound the parallel forward and backward-cleanup
// phases; they differ by move metric (see spec's build/final depth table).
func buildDepth(metric movetable.MoveMetric) uint8 {
	if metric == movetable.QuarterTurn {
		return 13
	}
	return 11
}

func finalDepth(metric movetable.MoveMetric) uint8 {
	if metric == movetable.QuarterTurn {
		return 16
	}
	return 14
}

// JanusMagicNumber is the reciprocal-accumulation target certify() reports
// against.
const JanusMagicNumber = 0xECAFFACE

type magicKey struct {
	metric movetable.MoveMetric
	naso   movetable.Naso
}

type magicConstants struct {
	checkSum     uint32
	checkProduct uint32
}

// knownMagic holds the validated checksum/checkproduct pairs grounded in the
// original implementation's constants.hpp - those constants correspond to
// its GodsNumber=20/usefulDepth=12 pairing, i.e. face-turn metric with the
// aequivalens (enares) variant. No grounded constants exist for the other
// three (metric, naso) combinations (see DESIGN.md); Certify reports their
// observed values instead of asserting against a known-good pair.
var knownMagic = map[magicKey]magicConstants{
	{movetable.FaceTurn, movetable.Aequivalens}: {checkSum: 0x45634A7A, checkProduct: 0xD0C5A1BE},
}

// Stats is the result of a full-table Validate pass.
type Stats struct {
	Count        [4]uint64
	CheckSum     uint32
	CheckProduct uint32
}

// Table is the packed depth-mod-3 pattern database for one (metric, naso)
// pairing's coordinate space.
type Table struct {
	mt     *movetable.Table
	metric movetable.MoveMetric

	nCornerCoords uint64
	nEdgeCoords   uint64
	nCells        uint64

	// words packs 16 two-bit cells per 32-bit word.
	words []atomic.Uint32
}

func fullIndex(nCornerCoords uint64, cornerIdx, edgeIdx uint32) uint64 {
	return uint64(edgeIdx)*nCornerCoords + uint64(cornerIdx)
}

// New allocates a fresh, fully-uninitialized depth table sized for mt. This
// is the large (~22GB aequivalens / ~44GB disparilis) allocation; callers
// should treat failure to allocate as fatal (spec.md §7's AllocationFailure
// class has no meaningful degraded mode for a solver with no pattern
// database).
func New(mt *movetable.Table) *Table {
	nCorner := uint64(mt.NSymCornerCoords())
	nEdge := uint64(mt.NSymEdgeCoords())
	nCells := nCorner * nEdge

	t := &Table{
		mt:            mt,
		metric:        mt.Metric,
		nCornerCoords: nCorner,
		nEdgeCoords:   nEdge,
		nCells:        nCells,
		words:         make([]atomic.Uint32, (nCells+15)/16),
	}
	t.clear()
	return t
}

func (t *Table) clear() {
	for i := range t.words {
		t.words[i].Store(0xFFFFFFFF)
	}
}

// GetDepth returns the mod-3 depth class (0, 1 or 2) at idx, or 3
// (uninitialized) if the cell was never reached within finalDepth twists of
// home.
func (t *Table) GetDepth(idx uint64) uint8 {
	word := t.words[idx>>4].Load()
	shift := uint((idx & 15) * 2)
	return uint8((word >> shift) & 3)
}

// GetDepthCE is GetDepth addressed by (cornerIdx, edgeIdx) pair rather than
// flat index.
func (t *Table) GetDepthCE(cornerIdx, edgeIdx uint32) uint8 {
	return t.GetDepth(fullIndex(t.nCornerCoords, cornerIdx, edgeIdx))
}

// trySet ANDs value into idx's cell. Safe under concurrent racing writers:
// every cell starts at 0b11 (uninitialized) and AND(0b11, value) == value,
// so two threads computing the same value for the same cell never corrupt
// each other or a sibling cell packed into the same word.
func (t *Table) trySet(idx uint64, value uint8) {
	w := &t.words[idx>>4]
	shift := uint((idx & 15) * 2)
	mask := (uint32(0xFFFFFFFF) &^ (uint32(3) << shift)) | (uint32(value) << shift)
	for {
		old := w.Load()
		next := old & mask
		if next == old || w.CompareAndSwap(old, next) {
			return
		}
	}
}

// storeDirect is trySet's non-atomic twin, used only in phases where the
// calling goroutine owns a disjoint edge-coordinate slab and no other
// goroutine can race it.
func (t *Table) storeDirect(idx uint64, value uint8) {
	w := &t.words[idx>>4]
	shift := uint((idx & 15) * 2)
	mask := (uint32(0xFFFFFFFF) &^ (uint32(3) << shift)) | (uint32(value) << shift)
	w.Store(w.Load() & mask)
}

// Build fills the table in three phases: a single-threaded recursive flood
// seed, a parallel forward breadth-first sweep, and a backward cleanup pass.
// logf, if non-nil, receives one line per pass.
func (t *Table) Build(logf func(string)) {
	log := func(format string, args ...any) {
		if logf != nil {
			logf(fmt.Sprintf(format, args...))
		}
	}

	log("clearing depth table (%d cells)...", t.nCells)
	t.clear()

	homeCorner := t.mt.HomeCornerIndex()
	homeEdge := t.mt.HomeEdgeIndex()
	t.trySet(fullIndex(t.nCornerCoords, homeCorner, homeEdge), 0)

	log("seeding to depth %d...", seedDepth)
	for depth := uint8(1); depth <= seedDepth; depth++ {
		count := t.rbuild(homeCorner, homeEdge, depth, depth)
		log("seed pass %d: %d positions generated", depth, count)
	}

	bd := buildDepth(t.metric)
	log("forward build to depth %d...", bd)
	for pass := uint8(seedDepth) + 1; pass <= bd; pass++ {
		count := t.forwardPass(uint8(pass))
		log("forward pass %d: %d positions generated", pass, count)
	}

	fd := finalDepth(t.metric)
	log("backward cleanup to depth %d...", fd)
	for pass := bd + 1; pass <= fd; pass++ {
		count := t.backwardPass(pass)
		log("cleanup pass %d: %d positions generated", pass, count)
	}
}

// rbuild is phase A's single-threaded recursive flood: it only recurses
// when the current cell already carries the depth expected at this point in
// the recursion, and marks any still-uninitialized cell it bottoms out at
// with depth%3. Every reached cell is also expanded via its stabilizer
// permutations so symmetry-equivalent coordinates get populated too.
func (t *Table) rbuild(cornerIdx, edgeIdx uint32, depth, remaining uint8) uint64 {
	idx := fullIndex(t.nCornerCoords, cornerIdx, edgeIdx)

	if remaining == 0 {
		if t.GetDepth(idx) == uninitialized {
			t.trySet(idx, depth%3)
			return 1
		}
		return 0
	}

	if t.GetDepth(idx) != (depth-remaining)%3 {
		return 0
	}

	var count uint64
	for twist := uint8(0); twist < t.mt.NTwists(); twist++ {
		tcidx := t.mt.CornerTwist(twist, cornerIdx)
		teidx, permNeeded := t.mt.EdgeTwist(twist, edgeIdx)
		pcidx := t.mt.CornerPermute(permNeeded, tcidx)

		count += t.rbuild(pcidx, teidx, depth, remaining-1)

		position := t.mt.EdgePosition(teidx)
		for _, p := range t.mt.EquivalentEdgePermutations(position) {
			epeidx := t.mt.EdgePermute(p, teidx)
			epcidx := t.mt.CornerPermute(p, pcidx)
			count += t.rbuild(epcidx, epeidx, depth, remaining-1)
		}
	}
	return count
}

func (t *Table) partitionEdges() (nWorkers int, chunk uint64) {
	nWorkers = runtime.GOMAXPROCS(0)
	if nWorkers < 1 {
		nWorkers = 1
	}
	chunk = (t.nEdgeCoords + uint64(nWorkers) - 1) / uint64(nWorkers)
	return
}

// forwardPass expands every cell at (pass-1)%3 to its unreached twist
// neighbours, marking them pass%3. Threads partition the table by disjoint
// edge-coordinate slabs but both read and atomically write across the whole
// corner range, so the same cell may be discovered (and harmlessly
// re-written the same value) by more than one worker.
func (t *Table) forwardPass(pass uint8) uint64 {
	nWorkers, chunk := t.partitionEdges()

	var wg sync.WaitGroup
	counts := make([]uint64, nWorkers)
	for w := 0; w < nWorkers; w++ {
		start := uint64(w) * chunk
		stop := start + chunk
		if stop > t.nEdgeCoords {
			stop = t.nEdgeCoords
		}
		if start >= stop {
			continue
		}
		wg.Add(1)
		go func(w int, start, stop uint64) {
			defer wg.Done()
			counts[w] = t.forwardWorker(pass, start, stop)
		}(w, start, stop)
	}
	wg.Wait()

	var total uint64
	for _, c := range counts {
		total += c
	}
	return total
}

func (t *Table) forwardWorker(pass uint8, startEdge, stopEdge uint64) uint64 {
	var count uint64
	target := (pass - 1) % 3

	for eidx := startEdge; eidx < stopEdge; eidx++ {
		for cidx := uint64(0); cidx < t.nCornerCoords; cidx++ {
			if t.GetDepthCE(uint32(cidx), uint32(eidx)) != target {
				continue
			}

			for twist := uint8(0); twist < t.mt.NTwists(); twist++ {
				tcidx := t.mt.CornerTwist(twist, uint32(cidx))
				teidx, permNeeded := t.mt.EdgeTwist(twist, uint32(eidx))
				pcidx := t.mt.CornerPermute(permNeeded, tcidx)

				count += t.markForward(pcidx, teidx, pass)

				position := t.mt.EdgePosition(teidx)
				for _, p := range t.mt.EquivalentEdgePermutations(position) {
					epeidx := t.mt.EdgePermute(p, teidx)
					epcidx := t.mt.CornerPermute(p, pcidx)
					count += t.markForward(epcidx, epeidx, pass)
				}
			}
		}
	}
	return count
}

func (t *Table) markForward(cornerIdx, edgeIdx uint32, pass uint8) uint64 {
	idx := fullIndex(t.nCornerCoords, cornerIdx, edgeIdx)
	if t.GetDepth(idx) != uninitialized {
		return 0
	}
	t.trySet(idx, pass%3)
	return 1
}

// backwardPass is the cleanup phase: each thread sweeps its disjoint
// edge-coordinate slab looking for cells still uninitialized after the
// forward phase and checks whether any single twist from that cell reaches
// a cell at (pass-1)%3; non-atomic stores are safe here because no two
// threads share an edge-coordinate slab.
func (t *Table) backwardPass(pass uint8) uint64 {
	nWorkers, chunk := t.partitionEdges()

	var wg sync.WaitGroup
	counts := make([]uint64, nWorkers)
	for w := 0; w < nWorkers; w++ {
		start := uint64(w) * chunk
		stop := start + chunk
		if stop > t.nEdgeCoords {
			stop = t.nEdgeCoords
		}
		if start >= stop {
			continue
		}
		wg.Add(1)
		go func(w int, start, stop uint64) {
			defer wg.Done()
			counts[w] = t.backwardWorker(pass, start, stop)
		}(w, start, stop)
	}
	wg.Wait()

	var total uint64
	for _, c := range counts {
		total += c
	}
	return total
}

func (t *Table) backwardWorker(pass uint8, startEdge, stopEdge uint64) uint64 {
	var count uint64
	target := (pass - 1) % 3

	for eidx := startEdge; eidx < stopEdge; eidx++ {
		for cidx := uint64(0); cidx < t.nCornerCoords; cidx++ {
			idx := fullIndex(t.nCornerCoords, uint32(cidx), uint32(eidx))
			if t.GetDepth(idx) != uninitialized {
				continue
			}

			found := false
			for twist := uint8(0); twist < t.mt.NTwists() && !found; twist++ {
				tcidx := t.mt.CornerTwist(twist, uint32(cidx))
				teidx, permNeeded := t.mt.EdgeTwist(twist, uint32(eidx))
				pcidx := t.mt.CornerPermute(permNeeded, tcidx)
				if t.GetDepthCE(pcidx, teidx) == target {
					found = true
				}
			}
			if found {
				t.storeDirect(idx, pass%3)
				count++
			}
		}
	}
	return count
}

// computeStats performs the single full-table sweep Validate and Certify
// both need: per-class counts and the order-sensitive checksum/checkproduct
// accumulation described by spec.md §4.5.
func (t *Table) computeStats() Stats {
	var s Stats
	var checkProduct uint32 = 1
	var checkSum uint32

	for idx := uint64(0); idx < t.nCells; idx++ {
		d := t.GetDepth(idx)
		s.Count[d]++
		checkProduct *= 2*uint32(d) + 1
		checkSum += checkProduct
	}

	s.CheckSum = checkSum
	s.CheckProduct = checkProduct
	return s
}

// Validate sweeps the whole table, checking that every cell was accounted
// for and, where a known-good checksum/checkproduct pair is grounded for
// this (metric, naso), that the table matches it.
func (t *Table) Validate() (Stats, error) {
	s := t.computeStats()

	total := s.Count[0] + s.Count[1] + s.Count[2] + s.Count[3]
	if total != t.nCells {
		return s, fmt.Errorf("depth table cell count mismatch: got %d want %d", total, t.nCells)
	}

	if known, ok := knownMagic[magicKey{t.metric, t.mt.Naso}]; ok {
		if s.CheckSum != known.checkSum || s.CheckProduct != known.checkProduct {
			return s, fmt.Errorf("depth table integrity check failed: checksum %#08x checkproduct %#08x (want %#08x / %#08x)",
				s.CheckSum, s.CheckProduct, known.checkSum, known.checkProduct)
		}
	}
	return s, nil
}

// Certify reports the table's observed checksum/checkproduct and the
// multiplier that would be needed to reach JanusMagicNumber from the
// checkproduct, for diagnosing a validation failure - useful chiefly for
// (metric, naso) pairs with no grounded expected constants.
func (t *Table) Certify() string {
	s := t.computeStats()
	multiplier := bits.OddInverse(JanusMagicNumber, s.CheckProduct|1)
	return fmt.Sprintf("metric=%s naso=%s counts=%v checksum=%#08x checkproduct=%#08x reciprocal-multiplier=%#08x",
		t.metric, t.mt.Naso, s.Count, s.CheckSum, s.CheckProduct, multiplier)
}

// NumBytes returns the exact flat-file size: CornerCoords*SymEdgeCoords/4.
func (t *Table) NumBytes() int { return len(t.words) * 4 }

// LoadFunc and SaveFunc are the two byte-blob host callbacks the core
// depends on for persistence (spec.md §6): load fills buf and reports
// success; save is given the table's current bytes to persist.
type LoadFunc func(buf []byte) bool
type SaveFunc func(buf []byte) bool

// Load asks the host to fill the table's backing bytes. It returns false
// (and leaves the table unmodified) if the callback fails.
func (t *Table) Load(load LoadFunc) bool {
	buf := make([]byte, t.NumBytes())
	if !load(buf) {
		return false
	}
	for i := range t.words {
		t.words[i].Store(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return true
}

// Save hands the host the table's current bytes to persist.
func (t *Table) Save(save SaveFunc) bool {
	buf := make([]byte, t.NumBytes())
	for i := range t.words {
		binary.LittleEndian.PutUint32(buf[i*4:], t.words[i].Load())
	}
	return save(buf)
}
