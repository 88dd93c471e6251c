package config

import (
	_ "embed"
)

//go:embed defaults/roadrush.yaml
var defaultYAML []byte

// Default returns the hard-coded Road Rush configuration. It mirrors the
// embedded defaults/roadrush.yaml and is used when the embed cannot be parsed.
func Default() Config {
	return Config{
		Field: FieldConfig{
			Width:  600,
			Height: 800,
		},
		Road: RoadConfig{
			LaneCount:     3,
			Coverage:      0.8,
			MarkingHeight: 50,
			MarkingGap:    30,
			ScrollFactor:  5,
		},
		Vehicle: VehicleConfig{
			Width:        50,
			Height:       80,
			Speed:        5,
			BottomOffset: 100,
		},
		Obstacles: ObstacleConfig{
			BaseSpeed: 3,
		},
		Spawner: SpawnerConfig{
			SpawnY:           -100,
			MultiMinLevel:    2,
			WallMinLevel:     4,
			WallChance:       0.3,
			DiagonalMinLevel: 3,
			DiagonalChance:   0.4,
			DiagonalMaxCount: 5,
			DiagonalInset:    50,
			DiagonalStepX:    80,
			DiagonalStepY:    100,
			ClusterMaxCount:  3,
			ClusterStepY:     80,
		},
		Difficulty: DifficultyConfig{
			Enabled:           true,
			FirstThreshold:    100,
			ThresholdStep:     100,
			InitialSpeed:      1.2,
			SpeedStep:         0.2,
			InitialIntervalMs: 1500,
			IntervalStepMs:    200,
			MinIntervalMs:     300,
			InitialMultiSpawn: 0.3,
			MultiSpawnStep:    0.1,
			MaxMultiSpawn:     0.8,
		},
		Gameplay: GameplayConfig{
			Lives:          3,
			PointsPerPass:  10,
			RestartDelayMs: 3000,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
