package tui

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/road-rush/internal/config"
	"github.com/vovakirdan/road-rush/internal/core"
	"github.com/vovakirdan/road-rush/internal/game"
	"github.com/vovakirdan/road-rush/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// tick advances the clock by one 60 Hz frame and delivers a tick.
func (c *fakeClock) tick(t *testing.T, m Model) Model {
	t.Helper()
	c.now = c.now.Add(16 * time.Millisecond)
	return update(t, m, TickMsg(c.now))
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func newTestModel(t *testing.T, cfg config.Config, store *storage.Store) (Model, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	m := NewModel(cfg, store, rt, RunInfo{Player: "tester"}, nil)
	m.now = clk.Now
	return m, clk
}

func TestModelStartAndSteer(t *testing.T) {
	m, clk := newTestModel(t, config.Default(), nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = clk.tick(t, m)
	if m.Game().Phase() != game.PhaseRunning {
		t.Fatalf("Phase() = %v after enter, expected running", m.Game().Phase())
	}

	x0 := m.Game().World().Vehicle.X
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	for range 5 {
		m = clk.tick(t, m)
	}
	x1 := m.Game().World().Vehicle.X
	if x1 >= x0 {
		t.Errorf("vehicle x %g -> %g, expected it to move left", x0, x1)
	}

	// Without repeats the key is released and the car stops.
	for range 60 {
		m = clk.tick(t, m)
	}
	x2 := m.Game().World().Vehicle.X
	m = clk.tick(t, m)
	if x3 := m.Game().World().Vehicle.X; x3 != x2 {
		t.Errorf("vehicle kept moving after the key expired: %g -> %g", x2, x3)
	}
}

func TestModelPause(t *testing.T) {
	m, clk := newTestModel(t, config.Default(), nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = clk.tick(t, m)

	m = update(t, m, runeKey('p'))
	m = clk.tick(t, m)
	if !m.Game().State().Paused {
		t.Fatal("expected the game to pause")
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("status line should show paused")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, config.Default(), nil)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, config.Default(), nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	out := stripANSI(m.View())
	for _, want := range []string{"SCORE 0", "LEVEL 1", "Road Rush", "press enter"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t, config.Default(), nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 40})
	if m.screen.Width() != 40 || m.screen.Height() != 38 {
		t.Errorf("screen = %dx%d, expected 40x38", m.screen.Width(), m.screen.Height())
	}
	want := 800.0 * 40 / (38 * 2)
	if got := m.Game().Config().Field.Width; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("field width = %g, expected %g", got, want)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 20})
	if got := m.Game().Config().Field.Width; got != 900 {
		t.Errorf("field width = %g, expected the 1.5x cap of 900", got)
	}

	m = update(t, m, runeKey('?'))
	if m.screen.Height() != 16 {
		t.Errorf("screen height = %d with full help, expected 16", m.screen.Height())
	}
}

func TestModelHelpToggleKeepsVehicle(t *testing.T) {
	m, clk := newTestModel(t, config.Default(), nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = clk.tick(t, m)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	for range 10 {
		m = clk.tick(t, m)
	}
	before := m.Game().World().Vehicle
	fieldW := m.Game().Config().Field.Width

	m = update(t, m, runeKey('?'))
	after := m.Game().World().Vehicle
	if after.X != before.X || after.Y != before.Y {
		t.Errorf("vehicle moved from (%g, %g) to (%g, %g) on help toggle", before.X, before.Y, after.X, after.Y)
	}
	if got := m.Game().Config().Field.Width; got != fieldW {
		t.Errorf("field width = %g after help toggle, expected %g", got, fieldW)
	}
	if after.X >= fieldW/2 {
		t.Errorf("vehicle x = %g, expected it left of centre %g", after.X, fieldW/2)
	}
}

func TestFieldWidthFor(t *testing.T) {
	field := config.FieldConfig{Width: 600, Height: 800}
	tests := []struct {
		cols, rows int
		want       float64
	}{
		{0, 0, 600},
		{30, 20, 600},  // 800*30/40
		{10, 40, 300},  // clamped up
		{300, 20, 900}, // clamped down
	}
	for _, tc := range tests {
		if got := fieldWidthFor(tc.cols, tc.rows, field); got != tc.want {
			t.Errorf("fieldWidthFor(%d, %d) = %g, expected %g", tc.cols, tc.rows, got, tc.want)
		}
	}
}

// crashConfig spawns obstacles right on top of the car so a run ends
// within a few frames.
func crashConfig() config.Config {
	cfg := config.Default()
	cfg.Gameplay.Lives = 1
	cfg.Road.Coverage = 0.05
	cfg.Spawner.SpawnY = cfg.Field.Height - cfg.Vehicle.BottomOffset
	cfg.Difficulty.InitialIntervalMs = 50
	return cfg
}

func TestModelRecordsRunOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m, clk := newTestModel(t, crashConfig(), store)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 100 && !m.Game().State().GameOver; i++ {
		m = clk.tick(t, m)
	}
	if !m.Game().State().GameOver {
		t.Fatal("expected the run to end")
	}
	if m.lastRunID == "" {
		t.Fatal("expected the run to be saved")
	}
	if !strings.Contains(m.View(), "run saved") {
		t.Error("status line should confirm the save")
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.ID != m.lastRunID || r.Player != "tester" || r.Seed != 7 || r.Preset != "normal" {
		t.Errorf("unexpected run identity %+v", r)
	}
	if r.Collisions != 1 || r.Level != 1 || r.SpawnsSingle < 1 || len(r.FinalHash) != 16 {
		t.Errorf("unexpected run stats %+v", r)
	}

	// More game-over frames must not save again.
	for range 10 {
		m = clk.tick(t, m)
	}
	if runs, _ := store.RecentRuns(10); len(runs) != 1 {
		t.Errorf("expected a single save per run, got %d", len(runs))
	}

	// After the restart delay the game is back on the title screen with
	// the same fixed seed.
	for range 200 {
		m = clk.tick(t, m)
	}
	if m.Game().Phase() != game.PhaseNotStarted {
		t.Fatalf("Phase() = %v, expected not-started", m.Game().Phase())
	}
	if m.runtime.Seed != 7 {
		t.Errorf("fixed seed changed to %d", m.runtime.Seed)
	}
}

func TestRunFromGame(t *testing.T) {
	g := game.New(config.Default())
	g.Reset(core.RuntimeConfig{Seed: 3})
	run := RunFromGame(g, RunInfo{Player: "p", Preset: "hard"}, 3)
	if run.Player != "p" || run.Preset != "hard" || run.Seed != 3 || run.Level != 1 {
		t.Errorf("unexpected run %+v", run)
	}
	if run.FinalHash == "" {
		t.Error("FinalHash should be set")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		0:                                     "0:00",
		59 * time.Second:                      "0:59",
		95*time.Second + 600*time.Millisecond: "1:36",
		time.Hour:                             "60:00",
	}
	for d, want := range tests {
		if got := FormatDuration(d); got != want {
			t.Errorf("FormatDuration(%v) = %q, expected %q", d, got, want)
		}
	}
}

func TestJournalModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(storage.Run{Player: "alice", Score: 230, Level: 3, SpawnsWall: 2})
	store.SaveRun(storage.Run{Player: "bob", Score: 40, Level: 1})

	m := NewJournalModel(store, "", 120, 30)
	out := stripANSI(m.View())
	for _, want := range []string{"RUN JOURNAL", "230", "alice", "bob"} {
		if !strings.Contains(out, want) {
			t.Errorf("journal view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(JournalModel)
	if m.view != ViewLevels {
		t.Fatal("tab should switch to the level view")
	}
	if !strings.Contains(stripANSI(m.View()), "Diagonal") {
		t.Error("level view should show pattern columns")
	}

	filtered := NewJournalModel(store, "bob", 120, 30)
	if len(filtered.runs) != 1 {
		t.Errorf("player filter returned %d runs", len(filtered.runs))
	}
}

func TestJournalModelWithoutStore(t *testing.T) {
	m := NewJournalModel(nil, "", 80, 24)
	if !strings.Contains(stripANSI(m.View()), "No journal database") {
		t.Error("expected a message when no store is available")
	}
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
