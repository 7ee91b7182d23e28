package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultPlatformerYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults differ from DefaultConfig():\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.Fudge(); got != 0.15 {
		t.Errorf("Fudge() = %g, expected 0.15", got)
	}
	if cfg.WindowW() != 300 || cfg.WindowH() != 300 {
		t.Errorf("window = %gx%g, expected 300x300", cfg.WindowW(), cfg.WindowH())
	}
}

func TestLoadCustomPathOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "simulation:\n  substeps: 16\nplayer:\n  gravity: 3.0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Simulation.Substeps != 16 || cfg.Player.Gravity != 3 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Screen.TileSize != 15 {
		t.Errorf("missing keys should keep defaults, tile_size = %g", cfg.Screen.TileSize)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("simulation:\n  partitions: 65\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "partitions") {
		t.Errorf("Load(bad) = %v, expected a partitions error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero tile", func(c *Config) { c.Screen.TileSize = 0 }, "tile_size"},
		{"no substeps", func(c *Config) { c.Simulation.Substeps = 0 }, "substeps"},
		{"fudge too large", func(c *Config) { c.Simulation.FudgeRatio = 1 }, "fudge_ratio"},
		{"too many bands", func(c *Config) { c.Simulation.Partitions = 65 }, "partitions"},
		{"full drag", func(c *Config) { c.Environment.DragY = 1 }, "drag_y"},
		{"negative friction", func(c *Config) { c.Environment.FrictionX = -1 }, "friction"},
		{"flat player", func(c *Config) { c.Player.Height = 0 }, "player size"},
		{"negative margin", func(c *Config) { c.Simulation.PartitionMargin = -1 }, "partition_margin"},
		{"margin below default reach", func(c *Config) { c.Simulation.PartitionMargin = 1.5 }, "partition_margin"},
		{"water grows past margin", func(c *Config) { c.Tiles.Shrinkage.Water = -4 }, "touch reach 5"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Validate() = %v, expected mention of %q", err, tc.field)
			}
		})
	}
}

func TestDerivedParams(t *testing.T) {
	cfg := DefaultConfig()

	tp := cfg.TileParams()
	if want := 0.02 * 15 / 32; math.Abs(tp.ConveyorStrength-want) > 1e-15 {
		t.Errorf("ConveyorStrength = %g, expected %g", tp.ConveyorStrength, want)
	}
	if tp.Shrink.Advance != 1.25 {
		t.Errorf("advance shrinkage = %g", tp.Shrink.Advance)
	}

	grid, err := cfg.PartitionGrid()
	if err != nil {
		t.Fatalf("PartitionGrid failed: %v", err)
	}
	if grid.Bands != 8 || grid.Margin != 0.3 {
		t.Errorf("grid = %+v", grid)
	}

	env := cfg.PlayerEnvironment()
	if env.DragX != 0.2 || env.FrictionY != 0.1 {
		t.Errorf("environment = %+v", env)
	}
}

func TestApplyPreset(t *testing.T) {
	easy := DefaultConfig()
	ApplyPreset(&easy, PresetEasy)
	hard := DefaultConfig()
	ApplyPreset(&hard, PresetHard)
	normal := DefaultConfig()
	ApplyPreset(&normal, PresetNormal)

	if normal != DefaultConfig() {
		t.Error("normal preset should not change the config")
	}
	if easy.Player.Gravity >= normal.Player.Gravity || hard.Player.Gravity <= normal.Player.Gravity {
		t.Errorf("gravity not ordered: easy %g, normal %g, hard %g",
			easy.Player.Gravity, normal.Player.Gravity, hard.Player.Gravity)
	}
	for _, c := range []Config{easy, hard} {
		if err := c.Validate(); err != nil {
			t.Errorf("preset produced invalid config: %v", err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	for _, p := range Presets() {
		got, err := ParsePreset(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePreset(%q) = %q, %v", p, got, err)
		}
	}
	if got, _ := ParsePreset(""); got != PresetNormal {
		t.Errorf("empty preset should be normal, got %q", got)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}
