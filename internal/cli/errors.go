package cli

import "errors"

// ErrDepthTableMissing is returned by commands that need a built depth
// table (solve, bench) when none is found at the configured path.
var ErrDepthTableMissing = errors.New("no depth table found; run 'janus build' first")
