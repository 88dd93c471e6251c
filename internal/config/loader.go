package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "roadrush.yaml"

// Load loads the Road Rush configuration.
// Search order: customPath -> ~/.arcade/configs/roadrush.yaml -> ./configs/roadrush.yaml -> embedded default
//
// Only a broken custom path is an error; unreadable or invalid files further
// down the search order are skipped.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Default(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := Parse(defaultYAML); err == nil {
		return cfg, nil
	}
	return Default(), nil // Fallback to hardcoded if embed fails
}

// Parse decodes YAML on top of the defaults, so a file only needs the keys
// it overrides, and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %gx%g", c.Field.Width, c.Field.Height))
	}
	if c.Road.LaneCount < 1 {
		errs = append(errs, fmt.Errorf("road.lane_count must be at least 1, got %d", c.Road.LaneCount))
	}
	if c.Road.Coverage <= 0 || c.Road.Coverage > 1 {
		errs = append(errs, fmt.Errorf("road.coverage must be in (0, 1], got %g", c.Road.Coverage))
	}
	if c.Road.MarkingHeight+c.Road.MarkingGap <= 0 {
		errs = append(errs, errors.New("road marking height + gap must be positive"))
	}
	if c.Vehicle.Width <= 0 || c.Vehicle.Height <= 0 {
		errs = append(errs, errors.New("vehicle size must be positive"))
	}
	if c.Difficulty.MinIntervalMs <= 0 || c.Difficulty.InitialIntervalMs < c.Difficulty.MinIntervalMs {
		errs = append(errs, fmt.Errorf("difficulty intervals must satisfy 0 < min (%d) <= initial (%d)",
			c.Difficulty.MinIntervalMs, c.Difficulty.InitialIntervalMs))
	}
	if c.Difficulty.InitialMultiSpawn > c.Difficulty.MaxMultiSpawn {
		errs = append(errs, errors.New("difficulty.initial_multi_spawn exceeds max_multi_spawn"))
	}
	if c.Gameplay.Lives < 1 {
		errs = append(errs, fmt.Errorf("gameplay.lives must be at least 1, got %d", c.Gameplay.Lives))
	}
	if c.Gameplay.RestartDelayMs < 0 {
		errs = append(errs, errors.New("gameplay.restart_delay_ms must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	if preset != "" {
		cfg.Difficulty.Enabled = true
	}

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Difficulty.InitialSpeed += 0.4
		cfg.Difficulty.InitialIntervalMs = max(cfg.Difficulty.MinIntervalMs, cfg.Difficulty.InitialIntervalMs-400)
	}
}
