package game

import (
	"time"

	"github.com/vovakirdan/road-rush/internal/config"
)

// Difficulty tracks the level progression. Every field changes only when
// the score crosses NextScore.
type Difficulty struct {
	Level            int
	NextScore        int
	Speed            float64
	Interval         time.Duration
	MultiSpawnChance float64

	cfg config.DifficultyConfig
}

// NewDifficulty creates a controller at level 1.
func NewDifficulty(cfg config.DifficultyConfig) *Difficulty {
	d := &Difficulty{cfg: cfg}
	d.Reset()
	return d
}

// Reset restores the initial values.
func (d *Difficulty) Reset() {
	d.Level = 1
	d.NextScore = d.cfg.FirstThreshold
	d.Speed = d.cfg.InitialSpeed
	d.Interval = time.Duration(d.cfg.InitialIntervalMs) * time.Millisecond
	d.MultiSpawnChance = d.cfg.InitialMultiSpawn
}

// Check levels up once if score has reached the threshold and reports
// whether it did. A score far past several thresholds still advances a
// single level per call; the rest follow on later frames.
func (d *Difficulty) Check(score int) bool {
	if !d.cfg.Enabled || score < d.NextScore {
		return false
	}

	d.Level++
	d.NextScore += d.Level * d.cfg.ThresholdStep
	d.Speed += d.cfg.SpeedStep

	minInterval := time.Duration(d.cfg.MinIntervalMs) * time.Millisecond
	step := time.Duration(d.cfg.IntervalStepMs) * time.Millisecond
	d.Interval = max(minInterval, d.Interval-step)

	d.MultiSpawnChance = min(d.cfg.MaxMultiSpawn, d.MultiSpawnChance+d.cfg.MultiSpawnStep)
	return true
}
