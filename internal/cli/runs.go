package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdionne/janus/internal/storage"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded search runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent search runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one search run's recorded solutions",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to display")
	runsCmd.AddCommand(runsShowCmd)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSearchRunRepository(db)
	runs, err := repo.List(runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list search runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No search runs recorded yet")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-30s  %-6s  %-6s  %s\n", "ID", "Started", "Scramble", "Depth", "Sols", "Best")
	for _, r := range runs {
		scramble := r.Scramble
		if len(scramble) > 30 {
			scramble = scramble[:27] + "..."
		}
		depth := "-"
		if r.DepthReached != nil {
			depth = fmt.Sprintf("%d", *r.DepthReached)
		}
		best := "-"
		if r.BestLength != nil {
			best = fmt.Sprintf("%d", *r.BestLength)
		}
		fmt.Printf("%-36s  %-20s  %-30s  %-6s  %-6d  %s\n",
			r.RunID, r.StartedAt.Format("2006-01-02 15:04:05"), scramble, depth, r.SolutionCount, best)
	}

	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSearchRunRepository(db)
	runID := args[0]

	run, err := repo.Get(runID)
	if err != nil {
		return fmt.Errorf("failed to get search run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("search run not found: %s", runID)
	}

	fmt.Printf("Run:      %s\n", run.RunID)
	fmt.Printf("Scramble: %s\n", run.Scramble)
	fmt.Printf("Variant:  %s (%s)\n", run.Naso, run.Metric)
	fmt.Printf("Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if run.Cancelled {
		fmt.Println("Status:   cancelled")
	} else if run.CompletedAt != nil {
		fmt.Println("Status:   completed")
	} else {
		fmt.Println("Status:   in progress")
	}
	fmt.Println()

	solutions, err := repo.Solutions(runID)
	if err != nil {
		return fmt.Errorf("failed to list solutions: %w", err)
	}
	if len(solutions) == 0 {
		fmt.Println("No solutions recorded")
		return nil
	}

	fmt.Printf("Solutions (%d):\n", len(solutions))
	for _, s := range solutions {
		fmt.Printf("  (%d) %s\n", s.Length, s.Twists)
	}

	return nil
}
