package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/road-rush/internal/config"
	"github.com/vovakirdan/road-rush/internal/core"
)

// scriptedRand returns a fixed sequence of draws and fails the test when
// the code under test asks for more than were scripted.
type scriptedRand struct {
	t    *testing.T
	vals []float64
	i    int
}

func script(t *testing.T, vals ...float64) *scriptedRand {
	return &scriptedRand{t: t, vals: vals}
}

func (s *scriptedRand) Float64() float64 {
	if s.i >= len(s.vals) {
		s.t.Fatalf("unexpected random draw #%d (only %d scripted)", s.i+1, len(s.vals))
		return 0
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func (s *scriptedRand) assertConsumed() {
	s.t.Helper()
	if s.i != len(s.vals) {
		s.t.Errorf("consumed %d of %d scripted draws", s.i, len(s.vals))
	}
}

// clock hands out frame timestamps at a fixed interval.
type clock struct {
	now  time.Time
	step time.Duration
}

func newClock(step time.Duration) *clock {
	return &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: step}
}

func (c *clock) frame(keys ...string) core.InputFrame {
	c.now = c.now.Add(c.step)
	f := core.NewInputFrame(c.now)
	for _, k := range keys {
		f.Keys.Press(k)
	}
	return f
}

func (c *clock) action(a core.Action) core.InputFrame {
	f := c.frame()
	f.Set(a)
	return f
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

func newTestGame(t *testing.T, cfg config.Config, opts ...Option) *Game {
	t.Helper()
	g := New(cfg, opts...)
	g.Reset(testRuntime())
	return g
}

// startedGame returns a running game and the clock that started it.
func startedGame(t *testing.T, cfg config.Config, opts ...Option) (*Game, *clock) {
	t.Helper()
	g := newTestGame(t, cfg, opts...)
	c := newClock(16 * time.Millisecond)
	g.Step(c.action(core.ActionStart))
	if g.Phase() != PhaseRunning {
		t.Fatalf("Phase() = %v after start, expected running", g.Phase())
	}
	return g, c
}

// placeCar puts a generic car obstacle at (x, y).
func placeCar(g *Game, x, y float64) *Obstacle {
	a := KindCar.Archetype()
	o := &Obstacle{X: x, Y: y, Kind: KindCar, Width: a.Width, Height: a.Height, Speed: 3, PulseDir: 1}
	g.obstacles = append(g.obstacles, o)
	return o
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
