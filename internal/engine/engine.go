// Package engine provides the top-level Cube facade: the solver's external
// interface, wiring the move table, depth table, and search driver behind
// Reset/Move/Solve.
package engine

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/gdionne/janus/internal/janus/coord"
	"github.com/gdionne/janus/internal/janus/depthtable"
	"github.com/gdionne/janus/internal/janus/fullcube"
	"github.com/gdionne/janus/internal/janus/movetable"
	"github.com/gdionne/janus/internal/janus/solver"
)

// Cube is the top-level search engine: it owns the read-only move and
// depth tables and tracks one live cube's symmetrized coordinate,
// explicit piece state, running depth estimate, and twist parity.
type Cube struct {
	cfg *config
	log *logrus.Logger

	table      *movetable.Table
	depthTable *depthtable.Table
	solver     *solver.Solver

	mu     sync.Mutex
	index  coord.CubeIndex
	depth  coord.CubeDepth
	full   fullcube.FullCube
	parity uint8
}

// New builds the move table, then either loads the depth table through the
// configured persistence callbacks or builds it from scratch, validates it,
// and returns a ready-to-use Cube at the home position.
//
// Depth table allocation is tens of GB; failure to acquire it has no
// meaningful degraded mode (spec.md §7's AllocationFailure is fatal), so
// New panics rather than returning a half-usable engine.
func New(opts ...Option) *Cube {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	log := logrus.New()
	logf := func(format string, args ...any) {
		line := fmt.Sprintf(format, args...)
		log.Info(line)
		if cfg.logger != nil {
			cfg.logger(line)
		}
	}

	logf("building move table (naso=%s metric=%s)", cfg.naso, cfg.metric)
	table := movetable.Build(cfg.naso, cfg.metric)

	depthTable := depthtable.New(table)

	loaded := false
	if cfg.load != nil {
		logf("loading depth table from host storage")
		loaded = depthTable.Load(cfg.load)
		if !loaded {
			logf("depth table load failed, falling back to rebuild")
		}
	}

	if !loaded {
		depthTable.Build(func(line string) { logf("%s", line) })
		if cfg.save != nil {
			if !depthTable.Save(cfg.save) {
				logf("depth table save failed; continuing with the in-memory table")
			}
		}
	}

	if stats, err := depthTable.Validate(); err != nil {
		logf("depth table validation failed: %v", err)
		logf("%s", depthTable.Certify())
	} else {
		logf("depth table validated: counts=%v checksum=%#08x checkproduct=%#08x",
			stats.Count, stats.CheckSum, stats.CheckProduct)
	}

	c := &Cube{
		cfg:        cfg,
		log:        log,
		table:      table,
		depthTable: depthTable,
		solver:     solver.New(table, depthTable),
	}
	c.Reset()
	return c
}

// Reset cancels any running search and returns the live cube to home.
func (c *Cube) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.solver.Cancel()
	c.index = coord.HomeCubeIndex(c.table.HomeEdgeIndex())
	c.depth = coord.HomeDepth()
	c.full = fullcube.Home()
	c.parity = 0
}

// Move applies one twist (0..17) to the live cube, updating its
// coordinate, depth estimate, full-piece state, and parity. Twist values
// outside 0..17 are the caller's responsibility to validate; Move performs
// no bounds checking (spec.md §7: move() surfaces no error).
func (c *Cube) Move(twist uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()

	newIndex := c.table.Move(c.index, twist)
	newDepth := c.depth.Redepth(
		c.depthTable.GetDepthCE(newIndex.X.Corners, newIndex.X.Edges),
		c.depthTable.GetDepthCE(newIndex.Y.Corners, newIndex.Y.Edges),
		c.depthTable.GetDepthCE(newIndex.Z.Corners, newIndex.Z.Edges),
	)

	c.index = newIndex
	c.depth = newDepth
	c.full = c.full.Move(twist)
	if twist < 12 {
		c.parity ^= 1
	}
}

// IsSolved reports whether the live cube currently reads solved.
func (c *Cube) IsSolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.IsSolved(c.table.HomeEdgeIndex()) && c.full.IsSolved()
}

// Solve launches an optimal search from the live cube's current state.
// onDepth fires once per iterative-deepening depth attempted, onSolution
// once per solution committed, and onTermination once when the search
// ends. If async is true, Solve returns immediately and the search runs in
// its own goroutine; otherwise Solve blocks until the search terminates.
// A new call to Solve always cancels whatever search is still running.
func (c *Cube) Solve(onDepth solver.DepthCallback, onSolution solver.SolutionCallback, onTermination solver.TerminationCallback, async bool) {
	c.mu.Lock()
	index, depth, full, parity := c.index, c.depth, c.full, c.parity
	c.mu.Unlock()

	run := func() {
		c.solver.Solve(index, depth, full, parity, onDepth, onSolution, onTermination)
	}

	if async {
		go run()
		return
	}
	run()
}

// CancelSolve requests that any search currently running on this Cube stop
// as soon as it next observes the cancellation flag.
func (c *Cube) CancelSolve() {
	c.solver.Cancel()
}

// DepthTableStats re-runs the depth table's validation sweep and returns its
// residue counts and checksums, letting a caller (the build CLI command)
// record the outcome after New has already logged it once.
func (c *Cube) DepthTableStats() (depthtable.Stats, error) {
	return c.depthTable.Validate()
}

// Certify reports the depth table's observed checksum/checkproduct and the
// reciprocal multiplier diagnostic, for a caller that wants it regardless of
// whether validation actually failed.
func (c *Cube) Certify() string {
	return c.depthTable.Certify()
}
