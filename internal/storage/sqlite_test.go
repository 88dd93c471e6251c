package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{Score: 10, Level: 1}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run after reopening, got %d", len(runs))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	in := Run{
		Player:         "alice",
		Seed:           42,
		Preset:         "hard",
		Score:          230,
		Level:          3,
		Duration:       95*time.Second + 250*time.Millisecond,
		Frames:         5715,
		Passed:         23,
		Collisions:     2,
		Obstacles:      31,
		SpawnsSingle:   12,
		SpawnsCluster:  6,
		SpawnsDiagonal: 1,
		FinalHash:      "00ff",
		CreatedAt:      baseTime,
	}

	id, err := store.SaveRun(in)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() returned non-UUID id %q: %v", id, err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}

	in.ID = id
	created := got.CreatedAt
	got.CreatedAt = in.CreatedAt
	if *got != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, in)
	}
	if !created.Equal(baseTime) {
		t.Errorf("CreatedAt = %v, expected %v", created, baseTime)
	}
	if got.SpawnEvents() != 19 {
		t.Errorf("SpawnEvents() = %d, expected 19", got.SpawnEvents())
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID("does-not-exist")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for a missing run, got %+v", got)
	}
}

func TestStoreSaveRunDefaults(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{ID: "fixed-id", Score: 10})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveRun() should keep a caller ID, got %q", id)
	}

	got, _ := store.RunByID(id)
	if got.Preset != "normal" {
		t.Errorf("Preset = %q, expected normal", got.Preset)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should default to now")
	}

	if _, err := store.SaveRun(Run{ID: "fixed-id"}); err == nil {
		t.Error("Expected duplicate ID to fail")
	}
}

func TestStoreRecentRunsOrder(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.SaveRun(Run{
			Score:     (i + 1) * 10,
			Level:     1,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Newest first, not best first
	if runs[0].Score != 50 || runs[1].Score != 40 || runs[2].Score != 30 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreRecentRunsSameSecond(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 3; i++ {
		store.SaveRun(Run{Score: i, CreatedAt: baseTime})
	}

	runs, _ := store.RecentRuns(0)
	if len(runs) != 3 || runs[0].Score != 3 || runs[2].Score != 1 {
		t.Errorf("Expected insertion order to break ties, got %v", runs)
	}
}

func TestStorePlayerRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Player: "alice", Score: 10, CreatedAt: baseTime})
	store.SaveRun(Run{Player: "bob", Score: 20, CreatedAt: baseTime})
	store.SaveRun(Run{Player: "alice", Score: 30, CreatedAt: baseTime.Add(time.Second)})

	runs, err := store.PlayerRuns("alice", 10)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs for alice, got %d", len(runs))
	}
	for _, r := range runs {
		if r.Player != "alice" {
			t.Errorf("PlayerRuns returned a run of %q", r.Player)
		}
	}
}

func TestStoreLevelMix(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Score: 40, Level: 1, SpawnsSingle: 8})
	store.SaveRun(Run{Score: 80, Level: 1, SpawnsSingle: 10, SpawnsCluster: 1})
	store.SaveRun(Run{Score: 700, Level: 5, SpawnsSingle: 30, SpawnsCluster: 9, SpawnsDiagonal: 4, SpawnsWall: 3})

	mix, err := store.LevelMix()
	if err != nil {
		t.Fatalf("LevelMix() failed: %v", err)
	}
	if len(mix) != 2 {
		t.Fatalf("Expected 2 level groups, got %d", len(mix))
	}

	l1 := mix[0]
	if l1.Level != 1 || l1.Runs != 2 || l1.AvgScore != 60 || l1.SpawnsSingle != 18 || l1.SpawnsCluster != 1 {
		t.Errorf("unexpected level 1 mix %+v", l1)
	}
	l5 := mix[1]
	if l5.Level != 5 || l5.Runs != 1 || l5.SpawnsDiagonal != 4 || l5.SpawnsWall != 3 {
		t.Errorf("unexpected level 5 mix %+v", l5)
	}
}

func TestStoreSummary(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Summary()
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty summary, got %+v", empty)
	}

	store.SaveRun(Run{Score: 100, Level: 2, Duration: 30 * time.Second, CreatedAt: baseTime})
	store.SaveRun(Run{Score: 300, Level: 4, Duration: 90 * time.Second, CreatedAt: baseTime.Add(time.Hour)})

	sum, err := store.Summary()
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if sum.Runs != 2 || sum.AvgScore != 200 || sum.AvgLevel != 3 {
		t.Errorf("unexpected summary %+v", sum)
	}
	if sum.TotalDuration != 2*time.Minute {
		t.Errorf("TotalDuration = %v, expected 2m", sum.TotalDuration)
	}
	if !sum.LastPlayed.Equal(baseTime.Add(time.Hour)) {
		t.Errorf("LastPlayed = %v, expected %v", sum.LastPlayed, baseTime.Add(time.Hour))
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Score: 100})
	store.SaveRun(Run{Score: 200})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.RecentRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time value", baseTime, baseTime},
		{"string", "2024-03-01 12:00:00", baseTime},
		{"bytes", []byte("2024-03-01 12:00:00"), baseTime},
		{"garbage", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseTime(tc.in); !got.Equal(tc.want) {
				t.Errorf("parseTime(%v) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}
