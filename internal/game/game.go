// Package game implements Road Rush: a single-road dodging game where the
// player steers a car between descending obstacles.
//
// The package is pure simulation. The platform feeds one core.InputFrame per
// display frame into Step, then asks Render to draw the world; HUD values are
// pushed to an optional Notifier.
package game

import (
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/road-rush/internal/config"
	"github.com/vovakirdan/road-rush/internal/core"
)

// ID is the identifier used for storage and screenshots.
const ID = "roadrush"

// Title is the display name.
const Title = "Road Rush"

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota // Title screen, waiting for start
	PhaseRunning                 // Simulation advancing every frame
	PhaseGameOver                // Frozen; returns to PhaseNotStarted after the restart delay
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Stats counts what happened during the current session.
type Stats struct {
	Frames     int
	Elapsed    time.Duration // Running time, pauses excluded
	Passed     int
	Collisions int
	LevelUps   int
	Spawns     [patternCount]int // Indexed by Pattern
	Obstacles  int               // Total obstacles spawned
}

// SpawnCount returns how many times the pattern was emitted.
func (s Stats) SpawnCount(p Pattern) int {
	if p < 0 || p >= patternCount {
		return 0
	}
	return s.Spawns[p]
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithNotifier sets the HUD collaborator.
func WithNotifier(n Notifier) Option {
	return func(g *Game) {
		g.notifier = n
	}
}

// WithRand replaces the seeded RNG. Reset keeps using it.
func WithRand(r Rand) Option {
	return func(g *Game) {
		g.fixedRand = r
	}
}

// Game is the loop controller: it owns the world, the session bookkeeping
// and the phase state machine. It is not safe for concurrent use; the
// platform drives it from a single goroutine.
type Game struct {
	cfg      config.Config
	runtime  core.RuntimeConfig
	logger   *log.Logger
	notifier Notifier

	rnd       Rand
	fixedRand Rand

	road       *Road
	vehicle    *Vehicle
	obstacles  []*Obstacle
	difficulty *Difficulty
	spawner    *Spawner

	phase       Phase
	paused      bool
	score       int
	lives       int
	spawnTimer  time.Duration
	restartWait time.Duration
	lastFrame   time.Time
	stats       Stats
}

// New creates a game with the given configuration. Call Reset before the
// first Step.
func New(cfg config.Config, opts ...Option) *Game {
	g := &Game{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// Reset rebuilds the world and returns to the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.fixedRand != nil {
		g.rnd = g.fixedRand
	} else {
		g.rnd = rand.New(rand.NewSource(runtime.Seed)) //nolint:gosec // gameplay randomness
	}

	field := g.cfg.Field
	g.road = NewRoad(g.cfg.Road, field.Width, field.Height)
	g.vehicle = NewVehicle(g.cfg.Vehicle, field)
	g.difficulty = NewDifficulty(g.cfg.Difficulty)
	g.spawner = NewSpawner(g.cfg.Spawner, g.cfg.Obstacles.BaseSpeed, g.rnd)

	g.obstacles = nil
	g.phase = PhaseNotStarted
	g.paused = false
	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.spawnTimer = 0
	g.restartWait = 0
	g.lastFrame = time.Time{}
	g.stats = Stats{}
}

// Start begins a new session. It is a no-op unless the game is on the
// title screen, so a second start while running (or before the game-over
// delay has passed) never resets score or lives.
func (g *Game) Start() bool {
	if g.phase != PhaseNotStarted {
		return false
	}

	g.obstacles = g.obstacles[:0]
	g.difficulty.Reset()
	g.vehicle.Recenter(g.cfg.Field, g.cfg.Vehicle.BottomOffset)
	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.spawnTimer = 0
	g.restartWait = 0
	g.paused = false
	g.stats = Stats{}
	g.phase = PhaseRunning

	g.notifyScore()
	g.notifyLives()
	g.notifyLevel()

	g.logger.Info("session started", "lives", g.lives, "seed", g.runtime.Seed)
	return true
}

// Resize updates the field size. Road geometry is recomputed and the
// vehicle is re-centered; session state is kept. Resizing to the current
// size changes nothing.
func (g *Game) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == g.cfg.Field.Width && height == g.cfg.Field.Height {
		return
	}
	g.cfg.Field.Width = width
	g.cfg.Field.Height = height
	g.road.Resize(width, height)
	g.vehicle.Recenter(g.cfg.Field, g.cfg.Vehicle.BottomOffset)
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	elapsed := g.elapsedSince(in.Now)
	var res core.StepResult

	switch g.phase {
	case PhaseNotStarted:
		if in.Has(core.ActionStart) {
			g.Start()
		}

	case PhaseGameOver:
		g.restartWait += elapsed
		if g.restartWait >= time.Duration(g.cfg.Gameplay.RestartDelayMs)*time.Millisecond {
			g.phase = PhaseNotStarted
			g.logger.Debug("ready for restart")
		}

	case PhaseRunning:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
		if !g.paused {
			g.update(in.Keys, elapsed, &res)
		}
	}

	res.State = g.State()
	return res
}

// elapsedSince returns the time since the previous frame and records now.
// The first frame, and any frame whose clock runs backwards, counts as zero.
func (g *Game) elapsedSince(now time.Time) time.Duration {
	var elapsed time.Duration
	if !g.lastFrame.IsZero() && now.After(g.lastFrame) {
		elapsed = now.Sub(g.lastFrame)
	}
	if !now.IsZero() {
		g.lastFrame = now
	}
	return elapsed
}

// update runs one simulation frame in the fixed order: road, vehicle,
// difficulty, spawning, obstacles.
func (g *Game) update(keys core.KeySet, elapsed time.Duration, res *core.StepResult) {
	g.stats.Frames++
	g.stats.Elapsed += elapsed

	g.road.Advance(g.difficulty.Speed)
	g.vehicle.Advance(keys)
	g.vehicle.ClampTo(g.road)

	if g.difficulty.Check(g.score) {
		g.stats.LevelUps++
		res.LeveledUp = true
		g.notifyLevel()
		g.logger.Info("level up",
			"level", g.difficulty.Level,
			"next", g.difficulty.NextScore,
			"speed", g.difficulty.Speed,
			"interval", g.difficulty.Interval,
		)
	}

	g.spawnTimer += elapsed
	if g.spawnTimer > g.difficulty.Interval {
		pattern, spawned := g.spawner.Spawn(g.difficulty, g.road)
		g.obstacles = append(g.obstacles, spawned...)
		g.stats.Spawns[pattern]++
		g.stats.Obstacles += len(spawned)
		g.spawnTimer = 0
	}

	// Back-to-front so removals never shift an element we have yet to visit.
	for i := len(g.obstacles) - 1; i >= 0; i-- {
		o := g.obstacles[i]
		o.Advance(g.difficulty.Speed)

		if Collides(g.vehicle, o) {
			g.obstacles = slices.Delete(g.obstacles, i, i+1)
			g.lives--
			g.stats.Collisions++
			res.Collisions++
			g.notifyLives()
			g.logger.Debug("collision", "kind", o.Kind, "lives", g.lives)

			if g.lives <= 0 {
				g.endSession()
				return
			}
			continue
		}

		if o.Y > g.cfg.Field.Height {
			g.obstacles = slices.Delete(g.obstacles, i, i+1)
			g.score += g.cfg.Gameplay.PointsPerPass
			g.stats.Passed++
			res.Passed++
			g.notifyScore()
		}
	}
}

// endSession freezes the world and starts the restart delay.
func (g *Game) endSession() {
	g.phase = PhaseGameOver
	g.restartWait = 0
	g.logger.Info("game over",
		"score", g.score,
		"level", g.difficulty.Level,
		"frames", g.stats.Frames,
	)
}

func (g *Game) notifyScore() {
	if g.notifier != nil {
		g.notifier.ScoreChanged(g.score)
	}
}

func (g *Game) notifyLives() {
	if g.notifier != nil {
		g.notifier.LivesChanged(g.lives)
	}
}

func (g *Game) notifyLevel() {
	if g.notifier != nil {
		g.notifier.LevelChanged(g.difficulty.Level)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		Level:    g.difficulty.Level,
		Running:  g.phase == PhaseRunning && !g.paused,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
	}
}

// Phase returns the lifecycle phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Stats returns the counters of the current (or last finished) session.
func (g *Game) Stats() Stats {
	return g.stats
}

// Config returns the active configuration, including any resize.
func (g *Game) Config() config.Config {
	return g.cfg
}
