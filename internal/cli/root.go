// Package cli implements the command-line interface for the janus solver.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath         string
	depthTablePath string
	naso           string
	metric         string
	verbose        bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "janus",
	Short: "Janus optimal Rubik's Cube solver",
	Long: `janus finds shortest solutions to the 3x3x3 Rubik's Cube using a
symmetry-reduced pattern database and iterative-deepening search.

Build the pattern database once with "janus build", then find optimal
solutions to scrambles with "janus solve".`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Run ledger database path (default: ~/.janus/janus.db)")
	rootCmd.PersistentFlags().StringVar(&depthTablePath, "depth-table", "", "Depth table file path (default: ~/.janus/depthtable.bin)")
	rootCmd.PersistentFlags().StringVar(&naso, "naso", "disparilis", "Cube variant: disparilis (with center colors) or aequivalens (noseless)")
	rootCmd.PersistentFlags().StringVar(&metric, "metric", "face-turn", "Move metric: face-turn or quarter-turn")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// getDBPath returns the --db flag value; an empty result means openDB uses
// storage's default path.
func getDBPath() string {
	return dbPath
}

// getDepthTablePath returns the depth table path from flag or default.
func getDepthTablePath() (string, error) {
	if depthTablePath != "" {
		return depthTablePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".janus")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return filepath.Join(dir, "depthtable.bin"), nil
}
