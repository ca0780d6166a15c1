// Package solver implements the iterative-deepening A* search that drives
// the Janus pattern database to an optimal solution: a single-threaded
// table-pruned kernel near the leaves, a raw depth-first kernel in the
// middle band, and a work-list-dispatched parallel kernel near the root.
package solver

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gdionne/janus/internal/janus/coord"
	"github.com/gdionne/janus/internal/janus/depthtable"
	"github.com/gdionne/janus/internal/janus/fullcube"
	"github.com/gdionne/janus/internal/janus/movetable"
	"github.com/gdionne/janus/internal/janus/recurser"
)

// DepthCallback is invoked once per iterative-deepening depth tried.
type DepthCallback func(depth uint8)

// SolutionCallback is invoked once per solution found, under the
// solutions lock, so callbacks from different workers never interleave.
type SolutionCallback func(solution Solution)

// TerminationCallback is invoked once when the search loop exits; success
// is false only if the search was cancelled before exhausting God's Number.
type TerminationCallback func(success bool)

// Solver drives one iterative-deepening search over a move table and its
// companion depth table. A Solver is reusable across searches: Solve
// cancels any search still running on it before starting a new one.
type Solver struct {
	table      *movetable.Table
	depthTable *depthtable.Table
	recurser   recurser.Recurser
	naso       movetable.Naso
	metric     movetable.MoveMetric
	usefulDep  uint8

	canceling atomic.Bool
	// running is held for the whole of a search, so a new Solve waits for
	// the search it has just cancelled to return.
	running sync.Mutex

	mu         sync.Mutex
	solutions  []Solution
	onSolution SolutionCallback

	workList workList
}

// New builds a Solver over the given move and depth tables. table.Naso and
// table.Metric must match the depth table's build configuration.
func New(table *movetable.Table, depthTable *depthtable.Table) *Solver {
	return &Solver{
		table:      table,
		depthTable: depthTable,
		recurser:   recurser.New(table.Metric),
		naso:       table.Naso,
		metric:     table.Metric,
		usefulDep:  usefulDepth(table.Naso, table.Metric),
	}
}

// Cancel requests that the currently running search stop as soon as any
// recursive frame next observes the flag. It does not block for the search
// to actually stop; callers that need that should stop calling Solve and
// let the last launched goroutines drain on their own.
func (s *Solver) Cancel() {
	s.canceling.Store(true)
}

// Solutions returns a copy of every solution committed by the most recent
// search.
func (s *Solver) Solutions() []Solution {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Solution, len(s.solutions))
	copy(out, s.solutions)
	return out
}

// Solve runs iterative-deepening A* from the given starting state. parity
// is 0 or 1, the number of quarter twists (mod 2) separating the start from
// home; under the quarter-turn metric any solution's length shares that
// parity. Solve blocks until
// the search terminates (by finding a solution, being cancelled, or
// exhausting God's Number); callers wanting asynchronous search should run
// it in their own goroutine.
func (s *Solver) Solve(
	index coord.CubeIndex,
	depth coord.CubeDepth,
	full fullcube.FullCube,
	parity uint8,
	onDepth DepthCallback,
	onSolution SolutionCallback,
	onTermination TerminationCallback,
) {
	s.canceling.Store(true)
	s.running.Lock()
	defer s.running.Unlock()
	s.canceling.Store(false)
	s.mu.Lock()
	s.solutions = nil
	s.onSolution = onSolution
	s.mu.Unlock()

	gods := godsNumber(s.metric)
	inc := depthIncrement(s.metric)

	target := parity
	for {
		if onDepth != nil {
			onDepth(target)
		}
		found := s.solve(index, depth, full, target)
		if found || s.canceling.Load() || target > gods {
			break
		}
		target += inc
	}

	if onTermination != nil {
		onTermination(!s.canceling.Load())
	}
}

// solve dispatches the root call to whichever recursion kernel matches the
// requested total depth.
func (s *Solver) solve(index coord.CubeIndex, depth coord.CubeDepth, full fullcube.FullCube, remaining uint8) bool {
	switch {
	case remaining <= s.usefulDep:
		return s.tableSolve(index, depth, full, remaining, nil)
	case remaining < threadDepth:
		return s.trialSolve(index, depth, full, remaining, nil)
	default:
		return s.threadSolve(index, depth, full, remaining)
	}
}

// step applies twist, returning the resulting coordinate, full cube, and
// updated depth estimate (folding the depth table's fresh mod-3 reading at
// the new coordinate into the running per-axis bound).
func (s *Solver) step(index coord.CubeIndex, depth coord.CubeDepth, full fullcube.FullCube, twist uint8) (coord.CubeIndex, coord.CubeDepth, fullcube.FullCube) {
	newIndex := s.table.Move(index, twist)
	newDepth := depth.Redepth(
		s.depthTable.GetDepthCE(newIndex.X.Corners, newIndex.X.Edges),
		s.depthTable.GetDepthCE(newIndex.Y.Corners, newIndex.Y.Edges),
		s.depthTable.GetDepthCE(newIndex.Z.Corners, newIndex.Z.Edges),
	)
	newFull := full.Move(twist)
	return newIndex, newDepth, newFull
}

// checkWork is the search leaf: a candidate solution is only committed if
// both the symmetrized coordinate AND the explicit full-cube replay read
// solved. The second check exists because the aequivalens (noseless)
// coordinate space cannot by itself distinguish a solved cube from its
// four-spot image.
func (s *Solver) checkWork(index coord.CubeIndex, full fullcube.FullCube, work Solution) bool {
	if !index.IsSolved(s.table.HomeEdgeIndex()) {
		return false
	}

	replay := full
	for _, twist := range work {
		replay = replay.Move(twist)
	}
	if !replay.IsSolved() {
		return false
	}

	solution := make(Solution, len(work))
	copy(solution, work)

	s.mu.Lock()
	s.solutions = append(s.solutions, solution)
	cb := s.onSolution
	s.mu.Unlock()

	if cb != nil {
		cb(solution)
	}
	return true
}

// tableSolve is the table-pruned recursion kernel used at and below
// usefulDepth: every call consults cubeDepth.TooFar before expanding.
func (s *Solver) tableSolve(index coord.CubeIndex, depth coord.CubeDepth, full fullcube.FullCube, remaining uint8, work Solution) bool {
	if depth.TooFar(remaining) {
		return false
	}
	if remaining == 0 {
		return s.checkWork(index, full, work)
	}

	visitOne := func(twist uint8) bool {
		newIndex, newDepth, newFull := s.step(index, depth, full, twist)
		return s.tableSolve(newIndex, newDepth, newFull, remaining-1, append(work, twist))
	}
	visitTwo := func(twist uint8) bool {
		newIndex, newDepth, newFull := s.step(index, depth, full, twist)
		return s.tableSolve(newIndex, newDepth, newFull, remaining-2, append(work, twist))
	}

	if len(work) == 0 {
		return s.recurser.Root(remaining, visitOne, visitTwo)
	}
	return s.recurser.Leaf(work[len(work)-1], remaining, visitOne, visitTwo)
}

// trialSolve is the raw depth-first kernel used between usefulDepth and
// threadDepth: no table pruning, just cancellation checks, until remaining
// depth falls low enough to hand off to tableSolve.
func (s *Solver) trialSolve(index coord.CubeIndex, depth coord.CubeDepth, full fullcube.FullCube, remaining uint8, work Solution) bool {
	if remaining <= s.usefulDep {
		return s.tableSolve(index, depth, full, remaining, work)
	}
	if s.canceling.Load() {
		return false
	}

	visitOne := func(twist uint8) bool {
		newIndex, newDepth, newFull := s.step(index, depth, full, twist)
		return s.trialSolve(newIndex, newDepth, newFull, remaining-1, append(work, twist))
	}
	visitTwo := func(twist uint8) bool {
		newIndex, newDepth, newFull := s.step(index, depth, full, twist)
		return s.trialSolve(newIndex, newDepth, newFull, remaining-2, append(work, twist))
	}

	if len(work) == 0 {
		return s.recurser.Root(remaining, visitOne, visitTwo)
	}
	return s.recurser.Leaf(work[len(work)-1], remaining, visitOne, visitTwo)
}

// threadSolve expands the root single-threaded down to threadDepth,
// pushing every frontier node onto the work-list, then drains that list
// with one goroutine per available core.
func (s *Solver) threadSolve(index coord.CubeIndex, depth coord.CubeDepth, full fullcube.FullCube, remaining uint8) bool {
	s.workList.clear()
	s.makeWorkList(index, depth, full, remaining, nil)

	nWorkers := runtime.GOMAXPROCS(0)
	if nWorkers < 1 {
		nWorkers = 1
	}

	results := make([]bool, nWorkers)
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for {
				item, ok := s.workList.pop()
				if !ok {
					return
				}
				if s.trialSolve(item.index, item.depth, item.fullCube, item.remaining, item.work) {
					results[w] = true
				}
			}
		}(w)
	}
	wg.Wait()

	for _, found := range results {
		if found {
			return true
		}
	}
	return false
}

// makeWorkList recurses, without any pruning, until remaining depth reaches
// threadDepth (or drops below it, which a quarter-turn metric's 2-cost half
// twist can cause in one step), enqueueing each frontier node with its own
// independent copy of the move list so workers never share backing arrays.
func (s *Solver) makeWorkList(index coord.CubeIndex, depth coord.CubeDepth, full fullcube.FullCube, remaining uint8, work Solution) {
	if remaining <= threadDepth {
		s.workList.push(workItem{
			index:     index,
			depth:     depth,
			fullCube:  full,
			remaining: remaining,
			work:      append(Solution(nil), work...),
		})
		return
	}

	visitOne := func(twist uint8) bool {
		newIndex, newDepth, newFull := s.step(index, depth, full, twist)
		s.makeWorkList(newIndex, newDepth, newFull, remaining-1, append(work, twist))
		return false
	}
	visitTwo := func(twist uint8) bool {
		newIndex, newDepth, newFull := s.step(index, depth, full, twist)
		s.makeWorkList(newIndex, newDepth, newFull, remaining-2, append(work, twist))
		return false
	}

	if len(work) == 0 {
		s.recurser.Root(remaining, visitOne, visitTwo)
	} else {
		s.recurser.Leaf(work[len(work)-1], remaining, visitOne, visitTwo)
	}
}
