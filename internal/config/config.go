// Package config provides YAML-based game configuration loading and
// difficulty presets for Road Rush.
package config

// Config contains all tunable parameters of a Road Rush session.
// Distances are in world units on the logical play field; durations are in
// milliseconds.
type Config struct {
	Field      FieldConfig      `yaml:"field"`
	Road       RoadConfig       `yaml:"road"`
	Vehicle    VehicleConfig    `yaml:"vehicle"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
}

// FieldConfig is the logical play-field size.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RoadConfig defines road geometry and lane markings.
type RoadConfig struct {
	LaneCount     int     `yaml:"lane_count"`
	Coverage      float64 `yaml:"coverage"` // Fraction of field width taken by the road
	MarkingHeight float64 `yaml:"marking_height"`
	MarkingGap    float64 `yaml:"marking_gap"`
	ScrollFactor  float64 `yaml:"scroll_factor"` // Marking speed = game speed * factor
}

// VehicleConfig defines the player vehicle.
type VehicleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	BottomOffset float64 `yaml:"bottom_offset"` // Start y = field height - offset
}

// ObstacleConfig defines obstacle movement.
type ObstacleConfig struct {
	BaseSpeed float64 `yaml:"base_speed"`
}

// SpawnerConfig defines spawn-pattern geometry and gating.
type SpawnerConfig struct {
	SpawnY float64 `yaml:"spawn_y"` // Y of the first row of a spawn, above the top edge

	MultiMinLevel    int     `yaml:"multi_min_level"`
	WallMinLevel     int     `yaml:"wall_min_level"`
	WallChance       float64 `yaml:"wall_chance"`
	DiagonalMinLevel int     `yaml:"diagonal_min_level"`
	DiagonalChance   float64 `yaml:"diagonal_chance"`

	DiagonalMaxCount int     `yaml:"diagonal_max_count"`
	DiagonalInset    float64 `yaml:"diagonal_inset"`
	DiagonalStepX    float64 `yaml:"diagonal_step_x"`
	DiagonalStepY    float64 `yaml:"diagonal_step_y"`

	ClusterMaxCount int     `yaml:"cluster_max_count"`
	ClusterStepY    float64 `yaml:"cluster_step_y"`
}

// DifficultyConfig defines the level progression.
type DifficultyConfig struct {
	Enabled bool `yaml:"enabled"` // false keeps level 1 for the whole session

	FirstThreshold int `yaml:"first_threshold"`
	ThresholdStep  int `yaml:"threshold_step"` // next += level * step after each level-up

	InitialSpeed float64 `yaml:"initial_speed"`
	SpeedStep    float64 `yaml:"speed_step"`

	InitialIntervalMs int `yaml:"initial_interval_ms"`
	IntervalStepMs    int `yaml:"interval_step_ms"`
	MinIntervalMs     int `yaml:"min_interval_ms"`

	InitialMultiSpawn float64 `yaml:"initial_multi_spawn"`
	MultiSpawnStep    float64 `yaml:"multi_spawn_step"`
	MaxMultiSpawn     float64 `yaml:"max_multi_spawn"`
}

// GameplayConfig defines session bookkeeping.
type GameplayConfig struct {
	Lives          int `yaml:"lives"`
	PointsPerPass  int `yaml:"points_per_pass"`
	RestartDelayMs int `yaml:"restart_delay_ms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown or empty values map
// to "" which leaves the loaded config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
