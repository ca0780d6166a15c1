package cli

import (
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/gdionne/janus/internal/engine"
	"github.com/gdionne/janus/internal/janus/solver"
	"github.com/gdionne/janus/internal/notation"
)

var benchCount int
var benchMoves int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the solver over random scrambles",
	Long: `Generate a batch of random scrambles, solve each to optimality, and
report the depth reached and wall time per scramble plus the batch average.

Requires a depth table already built with "janus build".`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVar(&benchCount, "count", 10, "Number of random scrambles to solve")
	benchCmd.Flags().IntVar(&benchMoves, "moves", 25, "Number of random twists per scramble")
}

func runBench(cmd *cobra.Command, args []string) error {
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

	c := engine.New(
		engine.WithNaso(nasoVal),
		engine.WithMetric(metricVal),
		engine.WithPersistence(fileLoad(tablePath), nil),
	)

	rng := rand.New(rand.NewSource(1))
	var totalDepth int
	var totalElapsed time.Duration

	for i := 0; i < benchCount; i++ {
		c.Reset()
		scramble := randomScramble(rng, benchMoves)
		for _, twist := range scramble {
			c.Move(twist)
		}

		var mu sync.Mutex
		var best solver.Solution
		var depthReached uint8
		start := time.Now()
		c.Solve(
			func(depth uint8) {
				mu.Lock()
				depthReached = depth
				mu.Unlock()
			},
			func(sol solver.Solution) {
				mu.Lock()
				defer mu.Unlock()
				if best == nil {
					best = sol
					c.CancelSolve()
				}
			},
			func(success bool) {},
			false,
		)
		elapsed := time.Since(start)

		totalDepth += int(depthReached)
		totalElapsed += elapsed

		fmt.Printf("scramble %2d: %-40s depth=%2d solution=%-30s time=%s\n",
			i+1, notation.FormatSequence(scramble), depthReached, notation.FormatSequence(best), elapsed)
	}

	fmt.Println()
	fmt.Printf("average depth: %.2f\n", float64(totalDepth)/float64(benchCount))
	fmt.Printf("average time:  %s\n", totalElapsed/time.Duration(benchCount))

	return nil
}

// randomScramble generates moves twists, skipping an immediate retwist of
// the same face so the scramble doesn't trivially cancel itself out.
func randomScramble(rng *rand.Rand, moves int) []uint8 {
	twists := make([]uint8, 0, moves)
	var lastFace uint8 = 255
	for len(twists) < moves {
		twist := uint8(rng.Intn(18))
		face := twist % 6
		if face == lastFace {
			continue
		}
		lastFace = face
		twists = append(twists, twist)
	}
	return twists
}
