package game

import (
	"math"

	"github.com/vovakirdan/road-rush/internal/config"
)

// Pattern is the spatial arrangement chosen for one spawn event.
type Pattern int

const (
	PatternSingle Pattern = iota
	PatternCluster
	PatternDiagonal
	PatternWall
	patternCount
)

// String returns the pattern name.
func (p Pattern) String() string {
	switch p {
	case PatternSingle:
		return "single"
	case PatternCluster:
		return "cluster"
	case PatternDiagonal:
		return "diagonal"
	case PatternWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Spawner decides which pattern to emit and places its obstacles.
type Spawner struct {
	cfg       config.SpawnerConfig
	baseSpeed float64
	rnd       Rand
}

// NewSpawner creates a spawner drawing from rnd.
func NewSpawner(cfg config.SpawnerConfig, baseSpeed float64, rnd Rand) *Spawner {
	return &Spawner{cfg: cfg, baseSpeed: baseSpeed, rnd: rnd}
}

// Spawn emits one pattern for the given difficulty state.
//
// Richer patterns are gated by level and then by chance: a multi-spawn draw
// first, then the wall check (level 4+), then the diagonal check (level 3+),
// falling back to a random cluster. Without a multi-spawn (or below level 2)
// a single obstacle is placed. A gate that fails on level does not consume
// a random draw.
func (s *Spawner) Spawn(d *Difficulty, road *Road) (Pattern, []*Obstacle) {
	multi := s.rnd.Float64() < d.MultiSpawnChance

	if multi && d.Level >= s.cfg.MultiMinLevel {
		switch {
		case d.Level >= s.cfg.WallMinLevel && s.rnd.Float64() < s.cfg.WallChance:
			return PatternWall, s.wall(road)
		case d.Level >= s.cfg.DiagonalMinLevel && s.rnd.Float64() < s.cfg.DiagonalChance:
			return PatternDiagonal, s.diagonal(d.Level, road)
		default:
			return PatternCluster, s.cluster(d.Level, road)
		}
	}

	x := road.Left + s.rnd.Float64()*road.RoadWidth()
	return PatternSingle, []*Obstacle{s.obstacle(x, s.cfg.SpawnY)}
}

// wall blocks every lane but one random gap lane.
func (s *Spawner) wall(road *Road) []*Obstacle {
	gap := int(math.Floor(s.rnd.Float64() * float64(road.LaneCount)))

	out := make([]*Obstacle, 0, road.LaneCount-1)
	for i := 0; i < road.LaneCount; i++ {
		if i == gap {
			continue
		}
		out = append(out, s.obstacle(road.LaneCenter(i), s.cfg.SpawnY))
	}
	return out
}

// diagonal places a staircase starting near one edge. Steps that leave the
// road are dropped rather than clamped.
func (s *Spawner) diagonal(level int, road *Road) []*Obstacle {
	dir := -1.0
	if s.rnd.Float64() < 0.5 {
		dir = 1
	}
	count := min(level, s.cfg.DiagonalMaxCount)

	startX := road.Right - s.cfg.DiagonalInset
	if dir > 0 {
		startX = road.Left + s.cfg.DiagonalInset
	}

	out := make([]*Obstacle, 0, count)
	for i := 0; i < count; i++ {
		x := startX + dir*float64(i)*s.cfg.DiagonalStepX
		y := s.cfg.SpawnY - float64(i)*s.cfg.DiagonalStepY
		if !road.Contains(x) {
			continue
		}
		out = append(out, s.obstacle(x, y))
	}
	return out
}

// cluster scatters up to ClusterMaxCount obstacles at random x, staggered
// upward.
func (s *Spawner) cluster(level int, road *Road) []*Obstacle {
	count := min(int(math.Floor(s.rnd.Float64()*float64(level)))+1, s.cfg.ClusterMaxCount)

	out := make([]*Obstacle, 0, count)
	for i := 0; i < count; i++ {
		x := road.Left + s.rnd.Float64()*road.RoadWidth()
		out = append(out, s.obstacle(x, s.cfg.SpawnY-float64(i)*s.cfg.ClusterStepY))
	}
	return out
}

func (s *Spawner) obstacle(x, y float64) *Obstacle {
	return NewObstacle(x, y, s.baseSpeed, s.rnd)
}
