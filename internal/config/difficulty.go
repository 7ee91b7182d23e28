package config

import "fmt"

// Preset represents a named physics tuning.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// Presets lists the known presets.
func Presets() []Preset {
	return []Preset{PresetEasy, PresetNormal, PresetHard}
}

// ParsePreset maps a preset name to its value. The empty string reads as normal.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetNormal:
		return PresetNormal, nil
	case PresetEasy, PresetHard:
		return Preset(s), nil
	}
	return "", fmt.Errorf("config: unknown preset %q (want easy, normal or hard)", s)
}

// ApplyPreset modifies the config based on a physics preset.
// Easy is floatier and more forgiving, hard is faster and heavier.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Environment.DragX = 0.3
		cfg.Environment.DragY = 0.3
		cfg.Player.Gravity = 1.5
		cfg.Tiles.Shrinkage.Kill = 2
	case PresetHard:
		cfg.Environment.DragX = 0.1
		cfg.Environment.DragY = 0.1
		cfg.Player.Gravity = 2.5
		cfg.Player.ThrustH = 1.25
		cfg.Tiles.WaterMultiplier = 0.7
	}
}
