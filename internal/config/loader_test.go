package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML differs from Default():\n got %+v\nwant %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("road:\n  lane_count: 4\ngameplay:\n  lives: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Road.LaneCount != 4 {
		t.Errorf("LaneCount = %d, expected 4", cfg.Road.LaneCount)
	}
	if cfg.Gameplay.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Gameplay.Lives)
	}
	// Keys absent from the file keep their defaults
	if cfg.Vehicle.Width != 50 {
		t.Errorf("Vehicle.Width = %g, expected default 50", cfg.Vehicle.Width)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		create  bool
		wantErr string
	}{
		{"missing file", "", false, "failed to read"},
		{"bad yaml", "road: [unclosed", true, "failed to parse"},
		{"invalid values", "road:\n  lane_count: 0\n", true, "lane_count"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".yaml")
			if tc.create {
				if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			cfg, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q should mention %q", err, tc.wantErr)
			}
			if cfg != Default() {
				t.Error("failed Load should still return usable defaults")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero field", func(c *Config) { c.Field.Width = 0 }, false},
		{"no lanes", func(c *Config) { c.Road.LaneCount = 0 }, false},
		{"coverage above one", func(c *Config) { c.Road.Coverage = 1.5 }, false},
		{"interval below floor", func(c *Config) { c.Difficulty.InitialIntervalMs = 100 }, false},
		{"multi spawn above cap", func(c *Config) { c.Difficulty.InitialMultiSpawn = 0.9 }, false},
		{"no lives", func(c *Config) { c.Gameplay.Lives = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		lives      int
		enabled    bool
		speed      float64
		intervalMs int
	}{
		{"", 3, true, 1.2, 1500},
		{DifficultyEasy, 5, true, 1.2, 1500},
		{DifficultyNormal, 3, true, 1.2, 1500},
		{DifficultyHard, 2, true, 1.6, 1100},
		{DifficultyFixed, 3, false, 1.2, 1500},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := Default()
			ApplyPreset(&cfg, tc.preset)

			if cfg.Gameplay.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Gameplay.Lives, tc.lives)
			}
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if diff := cfg.Difficulty.InitialSpeed - tc.speed; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("InitialSpeed = %g, expected %g", cfg.Difficulty.InitialSpeed, tc.speed)
			}
			if cfg.Difficulty.InitialIntervalMs != tc.intervalMs {
				t.Errorf("InitialIntervalMs = %d, expected %d", cfg.Difficulty.InitialIntervalMs, tc.intervalMs)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown preset should map to empty")
	}
}

func TestMarshalRoundTripKeepsValues(t *testing.T) {
	cfg := Default()
	cfg.Road.LaneCount = 5

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "lane_count: 5") {
		t.Errorf("marshaled YAML should use snake_case keys:\n%s", data)
	}
}
