package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/road-rush/internal/config"
	"github.com/vovakirdan/road-rush/internal/core"
	"github.com/vovakirdan/road-rush/internal/game"
	"github.com/vovakirdan/road-rush/internal/storage"
)

// cellAspect is the height of a terminal cell measured in cell widths.
const cellAspect = 2.0

// RunInfo describes the player and settings recorded with each run.
type RunInfo struct {
	Player string
	Preset string
}

// Model is the Bubble Tea model for playing Road Rush.
type Model struct {
	game   *game.Game
	hud    *HUD
	held   *HeldKeys
	keys   KeyMap
	help   help.Model
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	now    func() time.Time

	runtime   core.RuntimeConfig
	field     config.FieldConfig // Configured field; the width adapts to the terminal
	fixedSeed bool
	info      RunInfo

	inputFrame core.InputFrame
	gameState  core.GameState
	width      int
	height     int
	lastRunID  string
	quitting   bool
}

// NewModel creates a new Bubble Tea model. A zero seed picks a new
// time-based seed for every run; a fixed seed replays the same obstacles.
func NewModel(cfg config.Config, store *storage.Store, rt core.RuntimeConfig, info RunInfo, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fixedSeed := rt.Seed != 0
	if !fixedSeed {
		rt.Seed = time.Now().UnixNano()
	}
	if info.Preset == "" {
		info.Preset = string(config.DifficultyNormal)
	}

	hud := &HUD{}
	g := game.New(cfg,
		game.WithLogger(logger),
		game.WithNotifier(game.MultiNotifier{hud, game.LogNotifier{Logger: logger}}),
	)
	g.Reset(rt)

	st := g.State()
	hud.Score, hud.Lives, hud.Level = st.Score, st.Lives, st.Level

	m := Model{
		game:       g,
		hud:        hud,
		held:       NewHeldKeys(0, 0),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		screen:     core.NewScreen(rt.ScreenW, rt.ScreenH),
		store:      store,
		logger:     logger,
		now:        time.Now,
		runtime:    rt,
		field:      cfg.Field,
		fixedSeed:  fixedSeed,
		info:       info,
		inputFrame: core.NewInputFrame(time.Time{}),
		gameState:  st,
	}
	m.layout(rt.ScreenW, rt.ScreenH)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout(m.width, m.height)
		return m, nil
	}

	if id, ok := MapSteerKey(msg); ok {
		m.held.Press(id, m.now())
		return m, nil
	}

	if a := m.keys.MapAction(msg); a != core.ActionNone {
		m.inputFrame.Set(a)
	}
	return m, nil
}

// layout sizes the play area between the header and the help footer and
// adapts the field width to the terminal aspect ratio.
func (m *Model) layout(width, height int) {
	m.width, m.height = width, height
	m.runtime.ScreenW, m.runtime.ScreenH = width, height
	m.help.Width = width

	footer := 1
	if m.help.ShowAll {
		footer = 3
	}
	m.screen.Resize(width, max(height-1-footer, 1))
	// The field follows the terminal, not the help footer, so toggling help
	// leaves the game alone.
	m.game.Resize(fieldWidthFor(width, max(height-2, 1), m.field), m.field.Height)
}

// fieldWidthFor returns the logical field width that keeps world units
// roughly square on a cols x rows cell grid, within half to one and a half
// times the configured width.
func fieldWidthFor(cols, rows int, field config.FieldConfig) float64 {
	if cols <= 0 || rows <= 0 {
		return field.Width
	}
	w := field.Height * float64(cols) / (float64(rows) * cellAspect)
	return core.ClampF(w, field.Width*0.5, field.Width*1.5)
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.inputFrame.Now = now
	m.inputFrame.Keys = m.held.Snapshot(now)

	before := m.game.Phase()
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch after := m.game.Phase(); {
	case before == game.PhaseRunning && after == game.PhaseGameOver:
		m.lastRunID = m.recordRun()
	case before == game.PhaseGameOver && after == game.PhaseNotStarted:
		m.newRound()
	case before == game.PhaseNotStarted && after == game.PhaseRunning:
		m.lastRunID = ""
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.runtime.TickRate)
}

// recordRun writes the finished run to the journal. Returns the run ID, or
// an empty string when nothing was saved.
func (m *Model) recordRun() string {
	run := RunFromGame(m.game, m.info, m.runtime.Seed)
	if m.store == nil {
		return ""
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return ""
	}
	m.logger.Info("run saved", "id", id, "score", run.Score, "level", run.Level)
	return id
}

// newRound reseeds the game for the next run unless the seed is fixed.
func (m *Model) newRound() {
	if !m.fixedSeed {
		m.runtime.Seed = m.now().UnixNano()
	}
	m.game.Reset(m.runtime)
	m.held.Reset()
}

// RunFromGame builds a journal entry from a finished game.
func RunFromGame(g *game.Game, info RunInfo, seed int64) storage.Run {
	st := g.State()
	stats := g.Stats()
	return storage.Run{
		Player:         info.Player,
		Seed:           seed,
		Preset:         info.Preset,
		Score:          st.Score,
		Level:          st.Level,
		Duration:       stats.Elapsed,
		Frames:         stats.Frames,
		Passed:         stats.Passed,
		Collisions:     stats.Collisions,
		Obstacles:      stats.Obstacles,
		SpawnsSingle:   stats.SpawnCount(game.PatternSingle),
		SpawnsCluster:  stats.SpawnCount(game.PatternCluster),
		SpawnsDiagonal: stats.SpawnCount(game.PatternDiagonal),
		SpawnsWall:     stats.SpawnCount(game.PatternWall),
		FinalHash:      fmt.Sprintf("%016x", g.World().Hash()),
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", game.ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// status returns the hint shown next to the HUD values.
func (m Model) status() string {
	switch {
	case m.gameState.Paused:
		return "paused"
	case m.gameState.GameOver && m.lastRunID != "":
		return "run saved"
	case m.gameState.GameOver:
		return "game over"
	case m.game.Phase() == game.PhaseNotStarted:
		return "press enter"
	}
	return ""
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(m.hud.View(m.width, m.status()))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Game returns the underlying game.
func (m Model) Game() *game.Game {
	return m.game
}

// Run starts the Bubble Tea program with a new model.
func Run(cfg config.Config, store *storage.Store, rt core.RuntimeConfig, info RunInfo, logger *log.Logger) error {
	model := NewModel(cfg, store, rt, info, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
