package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r Run) {
	t.Helper()
	if _, err := store.SaveRun(r); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{GameID: "tetris", Player: "ann", Outcome: "game_over", Score: 1200, Lines: 10, Level: 2, Ticks: 3600})
	mustSave(t, store, Run{GameID: "tetris", Outcome: "game_over", Score: 400, Lines: 3, Level: 1, Ticks: 900})
	mustSave(t, store, Run{GameID: "tetris", Outcome: "game_over", Score: 2600, Lines: 21, Level: 3, Ticks: 7200})
	mustSave(t, store, Run{GameID: "tetris_sprint", Outcome: "completed", Score: 2000, Lines: 20, Level: 3, Ticks: 5400})

	runs, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Score != 2600 || runs[1].Score != 1200 || runs[2].Score != 400 {
		t.Errorf("Runs not sorted by score: %+v", runs)
	}

	best := runs[1]
	if best.Player != "ann" || best.Lines != 10 || best.Level != 2 || best.Ticks != 3600 || best.TickRate != 60 {
		t.Errorf("Run fields not round-tripped: %+v", best)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		mustSave(t, store, Run{GameID: "tetris", Outcome: "game_over", Score: (i + 1) * 100})
	}

	runs, err := store.TopScores("tetris", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}
}

func TestStoreFastestRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{GameID: "tetris_sprint", Outcome: "completed", Lines: 20, Ticks: 6000})
	mustSave(t, store, Run{GameID: "tetris_sprint", Outcome: "game_over", Lines: 12, Ticks: 1000})
	mustSave(t, store, Run{GameID: "tetris_sprint", Outcome: "completed", Lines: 20, Ticks: 4800})
	// 3300 ticks at 30 Hz is slower than 6000 at 60 Hz.
	mustSave(t, store, Run{GameID: "tetris_sprint", Outcome: "completed", Lines: 20, Ticks: 3300, TickRate: 30})

	runs, err := store.FastestRuns("tetris_sprint", 10)
	if err != nil {
		t.Fatalf("FastestRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Game-over runs must not rank, got %d runs", len(runs))
	}
	if runs[0].Ticks != 4800 || runs[1].Ticks != 6000 || runs[2].Ticks != 3300 {
		t.Errorf("Runs not ordered by duration: %+v", runs)
	}
	if runs[0].Duration() != 80*time.Second {
		t.Errorf("Duration() = %v, expected 80s", runs[0].Duration())
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, Run{GameID: "tetris", Outcome: "game_over", Score: 100})
	mustSave(t, store, Run{GameID: "tetris", Outcome: "game_over", Score: 300})
	mustSave(t, store, Run{GameID: "tetris", Outcome: "game_over", Score: 200})

	high, err = store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{GameID: "tetris", Outcome: "game_over", Score: 100})
	mustSave(t, store, Run{GameID: "tetris", Outcome: "game_over", Score: 200})
	mustSave(t, store, Run{GameID: "tetris_sprint", Outcome: "completed", Score: 300})

	if err := store.ClearRuns("tetris"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.AllRuns("tetris")
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	sprint, _ := store.AllRuns("tetris_sprint")
	if len(sprint) != 1 {
		t.Errorf("Sprint runs should not be affected by clearing marathon")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		mustSave(t, store, Run{GameID: "tetris", Outcome: "game_over", Score: i})
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Score != 4 || runs[1].Score != 3 {
		t.Errorf("Expected newest first, got %+v", runs)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("tetris_sprint")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.BestTicks != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Empty stats expected, got %+v", empty)
	}

	mustSave(t, store, Run{GameID: "tetris_sprint", Outcome: "completed", Score: 1000, Lines: 20, Ticks: 5000})
	mustSave(t, store, Run{GameID: "tetris_sprint", Outcome: "game_over", Score: 300, Lines: 6, Ticks: 900})

	stats, err := store.GetGameStats("tetris_sprint")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Completed != 1 {
		t.Errorf("counts = %d/%d, expected 2/1", stats.GamesCount, stats.Completed)
	}
	if stats.HighScore != 1000 || stats.TotalLines != 26 || stats.BestTicks != 5000 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 650 {
		t.Errorf("AvgScore = %v, expected 650", stats.AvgScore)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
