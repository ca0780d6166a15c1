package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/gdionne/janus/internal/engine"
	"github.com/gdionne/janus/internal/janus/solver"
	"github.com/gdionne/janus/internal/notation"
	"github.com/gdionne/janus/internal/storage"
)

var solveMaxSolutions int

var solveCmd = &cobra.Command{
	Use:   "solve <scramble>",
	Short: "Find an optimal solution to a scramble",
	Long: `Apply a scramble (given in standard notation, e.g. "R U R' U' F2") to
a solved cube and run the iterative-deepening search for an optimal
solution, printing each solution as it is found.

Requires a depth table already built with "janus build".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().IntVar(&solveMaxSolutions, "max-solutions", 1, "Stop after this many solutions at the optimal depth (0 = unlimited)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	scrambleText := joinArgs(args)

	scramble, err := notation.ParseSequence(scrambleText)
	if err != nil {
		return err
	}

	nasoVal, err := parseNaso(naso)
	if err != nil {
		return err
	}
	metricVal, err := parseMetric(metric)
	if err != nil {
		return err
	}

	tablePath, err := getDepthTablePath()
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(tablePath); statErr != nil {
		return fmt.Errorf("%w (looked at %s)", ErrDepthTableMissing, tablePath)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	c := engine.New(
		engine.WithNaso(nasoVal),
		engine.WithMetric(metricVal),
		engine.WithPersistence(fileLoad(tablePath), nil),
	)

	for _, twist := range scramble {
		c.Move(twist)
	}

	searchRepo := storage.NewSearchRunRepository(db)
	buildRepo := storage.NewBuildRunRepository(db)

	buildRunID := ""
	if latest, err := buildRepo.Latest(naso, metric); err == nil && latest != nil {
		buildRunID = latest.RunID
	}

	runID, err := searchRepo.Start(buildRunID, scrambleText, naso, metric)
	if err != nil {
		return fmt.Errorf("failed to record search run: %w", err)
	}

	var mu sync.Mutex
	solutionCount := 0
	onDepth := func(depth uint8) {
		fmt.Printf("searching depth %d...\n", depth)
		_ = searchRepo.RecordDepth(runID, depth)
	}
	onSolution := func(sol solver.Solution) {
		mu.Lock()
		solutionCount++
		count := solutionCount
		mu.Unlock()

		fmt.Printf("solution (%d moves): %s\n", len(sol), notation.FormatSequence(sol))
		_ = searchRepo.AddSolution(runID, notation.FormatSequence(sol), len(sol))
		if solveMaxSolutions > 0 && count >= solveMaxSolutions {
			c.CancelSolve()
		}
	}

	c.Solve(onDepth, onSolution, func(success bool) {
		_ = searchRepo.Complete(runID, !success)
	}, false)

	mu.Lock()
	finalCount := solutionCount
	mu.Unlock()
	if finalCount == 0 {
		fmt.Println("no solution found within God's Number")
	}

	return nil
}

func joinArgs(args []string) string {
	s := args[0]
	for _, a := range args[1:] {
		s += " " + a
	}
	return s
}
