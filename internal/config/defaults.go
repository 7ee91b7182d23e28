package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-platformer/internal/tile"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultConfig returns the default simulation configuration.
func DefaultConfig() Config {
	return Config{
		Screen: ScreenConfig{
			Columns:    20,
			Rows:       20,
			TileSize:   15,
			TileOffset: -1,
		},
		Simulation: SimulationConfig{
			Substeps:        32,
			FudgeRatio:      0.01,
			Partitions:      8,
			PartitionMargin: 2,
			MinFrameMs:      0,
		},
		Player: PlayerConfig{
			Width:   0.98,
			Height:  0.98,
			ThrustH: 1,
			ThrustV: 1,
			Gravity: 2,
		},
		Environment: EnvironmentConfig{
			DragX:     0.2,
			DragY:     0.2,
			FrictionX: 0.1,
			FrictionY: 0.1,
		},
		Tiles: TilesConfig{
			ConveyorStrength: 0.02,
			WaterMultiplier:  0.5,
			FlipKick:         1.5,
			FlipCooldown:     32,
			Shrinkage:        tile.DefaultShrinkage(),
		},
	}
}
