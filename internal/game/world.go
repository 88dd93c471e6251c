package game

import (
	"math"

	"github.com/vovakirdan/road-rush/internal/config"
)

// World is a read-only copy of everything a renderer needs. Mutating it has
// no effect on the game.
type World struct {
	Field     config.FieldConfig
	Road      Road
	Vehicle   Vehicle
	Obstacles []Obstacle

	Phase  Phase
	Paused bool
	Score  int
	Lives  int
	Level  int
	Frame  int
}

// World returns a snapshot of the current world.
func (g *Game) World() World {
	w := World{
		Field:     g.cfg.Field,
		Road:      *g.road,
		Vehicle:   *g.vehicle,
		Obstacles: make([]Obstacle, len(g.obstacles)),
		Phase:     g.phase,
		Paused:    g.paused,
		Score:     g.score,
		Lives:     g.lives,
		Level:     g.difficulty.Level,
		Frame:     g.stats.Frames,
	}
	w.Road.Markings = append([]float64(nil), g.road.Markings...)
	for i, o := range g.obstacles {
		w.Obstacles[i] = *o
	}
	return w
}

// Hash returns a simple hash of the world for determinism testing.
// Positions are quantized to 1/1000 of a world unit.
func (w World) Hash() uint64 {
	h := uint64(w.Frame)                    //#nosec G115 -- hash computation
	h = h*31 + uint64(w.Phase)              //#nosec G115 -- hash computation
	h = h*31 + uint64(w.Score)              //#nosec G115 -- hash computation
	h = h*31 + uint64(w.Lives)              //#nosec G115 -- hash computation
	h = h*31 + uint64(w.Level)              //#nosec G115 -- hash computation
	h = h*31 + quantize(w.Vehicle.X)        //#nosec G115 -- hash computation
	h = h*31 + quantize(w.Vehicle.Y)        //#nosec G115 -- hash computation
	h = h*31 + uint64(len(w.Obstacles))     //#nosec G115 -- hash computation
	h = h*31 + uint64(len(w.Road.Markings)) //#nosec G115 -- hash computation

	for _, o := range w.Obstacles {
		h = h*31 + uint64(o.Kind) //#nosec G115 -- hash computation
		h = h*31 + quantize(o.X)
		h = h*31 + quantize(o.Y)
		h = h*31 + quantize(o.Rotation)
		h = h*31 + quantize(o.Pulse)
	}
	for _, m := range w.Road.Markings {
		h = h*31 + quantize(m)
	}
	return h
}

func quantize(v float64) uint64 {
	return uint64(int64(math.Round(v * 1000))) //#nosec G115 -- hash computation
}
