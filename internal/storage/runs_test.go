package storage

import "testing"

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	return db
}

func TestMigrateUpSetsCurrentVersion(t *testing.T) {
	db := openTestDB(t)
	version, err := db.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if version != 1 {
		t.Errorf("CurrentVersion = %d, want 1", version)
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}
}

func TestBuildRunLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewBuildRunRepository(db)

	id, err := repo.Start("Disparilis", "FaceTurn", "built")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := repo.Complete(id, [4]uint64{10, 20, 30, 0}, 0x1234, 0x5678, true); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	run, err := repo.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if run == nil {
		t.Fatal("Get returned nil for existing run")
	}
	if run.Naso != "Disparilis" || run.Metric != "FaceTurn" {
		t.Errorf("unexpected naso/metric: %s/%s", run.Naso, run.Metric)
	}
	if !run.Validated {
		t.Error("expected Validated true")
	}
	if run.CompletedAt == nil {
		t.Error("expected CompletedAt set after Complete")
	}
	if *run.Count[1] != 20 {
		t.Errorf("count1 = %d, want 20", *run.Count[1])
	}
}

func TestBuildRunLatest(t *testing.T) {
	db := openTestDB(t)
	repo := NewBuildRunRepository(db)

	first, err := repo.Start("Disparilis", "FaceTurn", "built")
	if err != nil {
		t.Fatalf("Start first: %v", err)
	}
	second, err := repo.Start("Disparilis", "FaceTurn", "built")
	if err != nil {
		t.Fatalf("Start second: %v", err)
	}

	latest, err := repo.Latest("Disparilis", "FaceTurn")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil {
		t.Fatal("Latest returned nil")
	}
	if latest.RunID != first && latest.RunID != second {
		t.Errorf("Latest returned unexpected run %s", latest.RunID)
	}
}

func TestSearchRunLifecycleAndSolutions(t *testing.T) {
	db := openTestDB(t)
	buildRepo := NewBuildRunRepository(db)
	searchRepo := NewSearchRunRepository(db)

	buildID, err := buildRepo.Start("Disparilis", "FaceTurn", "built")
	if err != nil {
		t.Fatalf("Start build run: %v", err)
	}

	runID, err := searchRepo.Start(buildID, "R U R' U'", "Disparilis", "FaceTurn")
	if err != nil {
		t.Fatalf("Start search run: %v", err)
	}

	if err := searchRepo.RecordDepth(runID, 8); err != nil {
		t.Fatalf("RecordDepth: %v", err)
	}

	if err := searchRepo.AddSolution(runID, "U R U' R'", 4); err != nil {
		t.Fatalf("AddSolution: %v", err)
	}
	if err := searchRepo.AddSolution(runID, "U R U' R' U R U' R'", 8); err != nil {
		t.Fatalf("AddSolution (longer): %v", err)
	}

	if err := searchRepo.Complete(runID, false); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	run, err := searchRepo.Get(runID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if run == nil {
		t.Fatal("Get returned nil for existing run")
	}
	if run.SolutionCount != 2 {
		t.Errorf("SolutionCount = %d, want 2", run.SolutionCount)
	}
	if run.BestLength == nil || *run.BestLength != 4 {
		t.Errorf("BestLength = %v, want 4", run.BestLength)
	}
	if run.DepthReached == nil || *run.DepthReached != 8 {
		t.Errorf("DepthReached = %v, want 8", run.DepthReached)
	}
	if run.Cancelled {
		t.Error("expected Cancelled false")
	}
	if run.BuildRunID == nil || *run.BuildRunID != buildID {
		t.Errorf("BuildRunID = %v, want %s", run.BuildRunID, buildID)
	}
}

func TestSearchRunList(t *testing.T) {
	db := openTestDB(t)
	repo := NewSearchRunRepository(db)

	for i := 0; i < 3; i++ {
		if _, err := repo.Start("", "scramble", "Disparilis", "FaceTurn"); err != nil {
			t.Fatalf("Start: %v", err)
		}
	}

	runs, err := repo.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("List returned %d runs, want 2", len(runs))
	}
}
