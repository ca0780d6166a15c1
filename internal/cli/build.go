package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdionne/janus/internal/engine"
	"github.com/gdionne/janus/internal/progress"
	"github.com/gdionne/janus/internal/storage"
)

var buildForce bool
var buildCertify bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build (or load) the pattern database",
	Long: `Build the symmetry-reduced depth table for the selected naso/metric
pair, or load it from the depth table file if one already exists there.

The build runs as a live TUI showing each BFS pass as it completes.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "Rebuild even if a depth table file already exists")
	buildCmd.Flags().BoolVar(&buildCertify, "certify", false, "Print the depth table's checksum diagnostic regardless of validation outcome")
}

func runBuild(cmd *cobra.Command, args []string) error {
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

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	buildRepo := storage.NewBuildRunRepository(db)
	source := "built"
	if !buildForce {
		source = "loaded-or-built"
	}
	runID, err := buildRepo.Start(naso, metric, source)
	if err != nil {
		return fmt.Errorf("failed to record build run: %w", err)
	}

	var c *engine.Cube
	runErr := progress.Run(fmt.Sprintf("building janus depth table (%s, %s)", naso, metric), func(logf func(string)) {
		opts := []engine.Option{
			engine.WithNaso(nasoVal),
			engine.WithMetric(metricVal),
			engine.WithLineLogger(logf),
		}
		if !buildForce {
			opts = append(opts, engine.WithPersistence(fileLoad(tablePath), fileSave(tablePath)))
		} else {
			opts = append(opts, engine.WithPersistence(func([]byte) bool { return false }, fileSave(tablePath)))
		}
		c = engine.New(opts...)
	})
	if runErr != nil {
		return fmt.Errorf("build TUI failed: %w", runErr)
	}

	stats, validateErr := c.DepthTableStats()
	validated := validateErr == nil
	var count [4]uint64
	if validated {
		count = stats.Count
	}
	if err := buildRepo.Complete(runID, count, stats.CheckSum, stats.CheckProduct, validated); err != nil {
		return fmt.Errorf("failed to record build completion: %w", err)
	}

	fmt.Printf("depth table ready at %s\n", tablePath)
	if !validated {
		fmt.Printf("warning: validation failed: %v\n", validateErr)
	}
	if buildCertify || !validated {
		fmt.Println(c.Certify())
	}

	return nil
}
