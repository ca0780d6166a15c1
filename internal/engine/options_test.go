package engine

import (
	"testing"

	"github.com/gdionne/janus/internal/janus/movetable"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.naso != movetable.Disparilis {
		t.Errorf("default naso = %v, want Disparilis", cfg.naso)
	}
	if cfg.metric != movetable.FaceTurn {
		t.Errorf("default metric = %v, want FaceTurn", cfg.metric)
	}
	if cfg.logger != nil || cfg.load != nil || cfg.save != nil {
		t.Error("default config should have no callbacks registered")
	}
}

func TestOptionsOverrideDefaults(t *testing.T) {
	cfg := defaultConfig()
	for _, opt := range []Option{
		WithNaso(movetable.Aequivalens),
		WithMetric(movetable.QuarterTurn),
		WithLineLogger(func(string) {}),
		WithPersistence(func([]byte) bool { return true }, func([]byte) bool { return true }),
	} {
		opt(cfg)
	}

	if cfg.naso != movetable.Aequivalens {
		t.Error("WithNaso should override default naso")
	}
	if cfg.metric != movetable.QuarterTurn {
		t.Error("WithMetric should override default metric")
	}
	if cfg.logger == nil {
		t.Error("WithLineLogger should register a logger")
	}
	if cfg.load == nil || cfg.save == nil {
		t.Error("WithPersistence should register both callbacks")
	}
}
