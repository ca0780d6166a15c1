package engine

import (
	"github.com/gdionne/janus/internal/janus/depthtable"
	"github.com/gdionne/janus/internal/janus/movetable"
)

// LineLogger receives one line of diagnostic text at a time: the depth
// table builder's per-pass progress, validation results, and certify()
// diagnostics all flow through it.
type LineLogger func(line string)

// LoadFunc and SaveFunc are the two byte-blob host callbacks the depth
// table depends on for persistence (spec.md §6's external interface).
type LoadFunc = depthtable.LoadFunc
type SaveFunc = depthtable.SaveFunc

// Option configures a Cube at construction.
type Option func(*config)

type config struct {
	naso   movetable.Naso
	metric movetable.MoveMetric
	logger LineLogger
	load   LoadFunc
	save   SaveFunc
}

func defaultConfig() *config {
	return &config{
		naso:   movetable.Disparilis,
		metric: movetable.FaceTurn,
	}
}

// WithNaso selects the aequivalens (noseless, smaller) or disparilis (full,
// larger) symmetry variant. Default: Disparilis.
func WithNaso(naso movetable.Naso) Option {
	return func(c *config) { c.naso = naso }
}

// WithMetric selects the face-turn or quarter-turn move-counting metric.
// Default: FaceTurn.
func WithMetric(metric movetable.MoveMetric) Option {
	return func(c *config) { c.metric = metric }
}

// WithLineLogger registers a callback that receives build/validation
// progress as plain text lines, in addition to the structured log record
// always emitted internally.
func WithLineLogger(logger LineLogger) Option {
	return func(c *config) { c.logger = logger }
}

// WithPersistence registers the host's depth-table load/save callbacks.
// Without this option the depth table is always rebuilt from scratch.
func WithPersistence(load LoadFunc, save SaveFunc) Option {
	return func(c *config) {
		c.load = load
		c.save = save
	}
}
