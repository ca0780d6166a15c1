package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BuildRun records one depth-table build or load, including its validation
// checksum once known.
type BuildRun struct {
	RunID        string
	Naso         string
	Metric       string
	StartedAt    time.Time
	CompletedAt  *time.Time
	Count        [4]*int64
	CheckSum     *int64
	CheckProduct *int64
	Validated    bool
	Source       string
	Notes        *string
}

// BuildRunRepository provides CRUD operations for build_runs.
type BuildRunRepository struct {
	db *DB
}

// NewBuildRunRepository creates a new build run repository.
func NewBuildRunRepository(db *DB) *BuildRunRepository {
	return &BuildRunRepository{db: db}
}

// Start records the beginning of a depth-table build or load and returns its
// run ID.
func (r *BuildRunRepository) Start(naso, metric, source string) (string, error) {
	id := uuid.New().String()
	_, err := r.db.Exec(`
		INSERT INTO build_runs (run_id, naso, metric, started_at, source)
		VALUES (?, ?, ?, ?, ?)
	`, id, naso, metric, time.Now().UTC().Format(time.RFC3339), source)
	if err != nil {
		return "", fmt.Errorf("failed to start build run: %w", err)
	}
	return id, nil
}

// Complete records the outcome of a finished build run: the per-depth
// residue counts and checksum/checkproduct from Validate, and whether
// validation passed.
func (r *BuildRunRepository) Complete(runID string, count [4]uint64, checkSum, checkProduct uint32, validated bool) error {
	_, err := r.db.Exec(`
		UPDATE build_runs
		SET completed_at = ?, count0 = ?, count1 = ?, count2 = ?, count3 = ?,
		    checksum = ?, checkproduct = ?, validated = ?
		WHERE run_id = ?
	`, time.Now().UTC().Format(time.RFC3339),
		count[0], count[1], count[2], count[3],
		checkSum, checkProduct, boolToInt(validated), runID)
	if err != nil {
		return fmt.Errorf("failed to complete build run: %w", err)
	}
	return nil
}

// Get retrieves a build run by ID.
func (r *BuildRunRepository) Get(runID string) (*BuildRun, error) {
	var b BuildRun
	var startedAtStr string
	var completedAtStr sql.NullString
	var validated int

	err := r.db.QueryRow(`
		SELECT run_id, naso, metric, started_at, completed_at,
		       count0, count1, count2, count3, checksum, checkproduct, validated, source, notes
		FROM build_runs
		WHERE run_id = ?
	`, runID).Scan(
		&b.RunID, &b.Naso, &b.Metric, &startedAtStr, &completedAtStr,
		&b.Count[0], &b.Count[1], &b.Count[2], &b.Count[3],
		&b.CheckSum, &b.CheckProduct, &validated, &b.Source, &b.Notes,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get build run: %w", err)
	}

	b.StartedAt, _ = time.Parse(time.RFC3339, startedAtStr)
	if completedAtStr.Valid {
		t, _ := time.Parse(time.RFC3339, completedAtStr.String)
		b.CompletedAt = &t
	}
	b.Validated = validated != 0

	return &b, nil
}

// Latest retrieves the most recently started build run for a given
// naso/metric pair, if any.
func (r *BuildRunRepository) Latest(naso, metric string) (*BuildRun, error) {
	var runID string
	err := r.db.QueryRow(`
		SELECT run_id FROM build_runs
		WHERE naso = ? AND metric = ?
		ORDER BY started_at DESC
		LIMIT 1
	`, naso, metric).Scan(&runID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest build run: %w", err)
	}
	return r.Get(runID)
}

// SearchRun records one solve search from a scrambled state to a committed
// solution set.
type SearchRun struct {
	RunID         string
	BuildRunID    *string
	Scramble      string
	Naso          string
	Metric        string
	StartedAt     time.Time
	CompletedAt   *time.Time
	DepthReached  *int
	SolutionCount int
	BestLength    *int
	Cancelled     bool
}

// SearchRunRepository provides CRUD operations for search_runs and the
// solutions found during each run.
type SearchRunRepository struct {
	db *DB
}

// NewSearchRunRepository creates a new search run repository.
func NewSearchRunRepository(db *DB) *SearchRunRepository {
	return &SearchRunRepository{db: db}
}

// Start records the beginning of a solve search and returns its run ID.
func (r *SearchRunRepository) Start(buildRunID, scramble, naso, metric string) (string, error) {
	id := uuid.New().String()

	var buildRunIDPtr *string
	if buildRunID != "" {
		buildRunIDPtr = &buildRunID
	}

	_, err := r.db.Exec(`
		INSERT INTO search_runs (run_id, build_run_id, scramble, naso, metric, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, buildRunIDPtr, scramble, naso, metric, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to start search run: %w", err)
	}
	return id, nil
}

// RecordDepth updates the deepest iterative-deepening threshold a search run
// has attempted so far.
func (r *SearchRunRepository) RecordDepth(runID string, depth uint8) error {
	_, err := r.db.Exec(`
		UPDATE search_runs SET depth_reached = ? WHERE run_id = ?
	`, depth, runID)
	if err != nil {
		return fmt.Errorf("failed to record search depth: %w", err)
	}
	return nil
}

// AddSolution records one solution found during a search run, keyed by its
// twist sequence rendered in move notation.
func (r *SearchRunRepository) AddSolution(runID, twists string, length int) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO solutions (search_run_id, twists, length) VALUES (?, ?, ?)
		`, runID, twists, length); err != nil {
			return fmt.Errorf("failed to insert solution: %w", err)
		}

		if _, err := tx.Exec(`
			UPDATE search_runs
			SET solution_count = solution_count + 1,
			    best_length = CASE WHEN best_length IS NULL OR ? < best_length THEN ? ELSE best_length END
			WHERE run_id = ?
		`, length, length, runID); err != nil {
			return fmt.Errorf("failed to update search run solution count: %w", err)
		}

		return nil
	})
}

// Solution is one committed solve solution, in move notation.
type Solution struct {
	Twists string
	Length int
}

// Solutions retrieves every solution recorded for a search run, in the
// order they were found.
func (r *SearchRunRepository) Solutions(runID string) ([]Solution, error) {
	rows, err := r.db.Query(`
		SELECT twists, length FROM solutions WHERE search_run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list solutions: %w", err)
	}
	defer rows.Close()

	var solutions []Solution
	for rows.Next() {
		var s Solution
		if err := rows.Scan(&s.Twists, &s.Length); err != nil {
			return nil, fmt.Errorf("failed to scan solution: %w", err)
		}
		solutions = append(solutions, s)
	}
	return solutions, nil
}

// Complete marks a search run finished, recording whether it was cancelled
// before exhausting its depth budget.
func (r *SearchRunRepository) Complete(runID string, cancelled bool) error {
	_, err := r.db.Exec(`
		UPDATE search_runs SET completed_at = ?, cancelled = ? WHERE run_id = ?
	`, time.Now().UTC().Format(time.RFC3339), boolToInt(cancelled), runID)
	if err != nil {
		return fmt.Errorf("failed to complete search run: %w", err)
	}
	return nil
}

// Get retrieves a search run by ID.
func (r *SearchRunRepository) Get(runID string) (*SearchRun, error) {
	var s SearchRun
	var startedAtStr string
	var completedAtStr sql.NullString
	var cancelled int

	err := r.db.QueryRow(`
		SELECT run_id, build_run_id, scramble, naso, metric, started_at, completed_at,
		       depth_reached, solution_count, best_length, cancelled
		FROM search_runs
		WHERE run_id = ?
	`, runID).Scan(
		&s.RunID, &s.BuildRunID, &s.Scramble, &s.Naso, &s.Metric, &startedAtStr, &completedAtStr,
		&s.DepthReached, &s.SolutionCount, &s.BestLength, &cancelled,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get search run: %w", err)
	}

	s.StartedAt, _ = time.Parse(time.RFC3339, startedAtStr)
	if completedAtStr.Valid {
		t, _ := time.Parse(time.RFC3339, completedAtStr.String)
		s.CompletedAt = &t
	}
	s.Cancelled = cancelled != 0

	return &s, nil
}

// List retrieves the most recent search runs.
func (r *SearchRunRepository) List(limit int) ([]SearchRun, error) {
	rows, err := r.db.Query(`
		SELECT run_id, build_run_id, scramble, naso, metric, started_at, completed_at,
		       depth_reached, solution_count, best_length, cancelled
		FROM search_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list search runs: %w", err)
	}
	defer rows.Close()

	var runs []SearchRun
	for rows.Next() {
		var s SearchRun
		var startedAtStr string
		var completedAtStr sql.NullString
		var cancelled int

		if err := rows.Scan(
			&s.RunID, &s.BuildRunID, &s.Scramble, &s.Naso, &s.Metric, &startedAtStr, &completedAtStr,
			&s.DepthReached, &s.SolutionCount, &s.BestLength, &cancelled,
		); err != nil {
			return nil, fmt.Errorf("failed to scan search run: %w", err)
		}

		s.StartedAt, _ = time.Parse(time.RFC3339, startedAtStr)
		if completedAtStr.Valid {
			t, _ := time.Parse(time.RFC3339, completedAtStr.String)
			s.CompletedAt = &t
		}
		s.Cancelled = cancelled != 0

		runs = append(runs, s)
	}

	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
