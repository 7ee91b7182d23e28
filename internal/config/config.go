// Package config provides YAML-based simulation configuration loading and
// physics presets for the platformer.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/control"
	"github.com/vovakirdan/tui-platformer/internal/partition"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/tile"
)

// Config contains all tunables of the simulation.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	Player      PlayerConfig      `yaml:"player"`
	Environment EnvironmentConfig `yaml:"environment"`
	Tiles       TilesConfig       `yaml:"tiles"`
	Death       DeathConfig       `yaml:"death"`
}

// ScreenConfig defines the playfield of one sub-screen.
type ScreenConfig struct {
	Columns    int     `yaml:"columns"`     // tiles across the visible window
	Rows       int     `yaml:"rows"`        // tiles down the visible window
	TileSize   float64 `yaml:"tile_size"`   // world units per tile
	TileOffset float64 `yaml:"tile_offset"` // grid origin in tiles; -1 hides the border ring
}

// SimulationConfig defines the fixed-step loop.
type SimulationConfig struct {
	Substeps        int     `yaml:"substeps"`         // collision passes per frame
	FudgeRatio      float64 `yaml:"fudge_ratio"`      // tolerance as a fraction of a tile
	Partitions      int     `yaml:"partitions"`       // bands per axis, at most 64
	PartitionMargin float64 `yaml:"partition_margin"` // band overlap in tolerance units
	MinFrameMs      int     `yaml:"min_frame_ms"`     // 0 runs unthrottled
}

// PlayerConfig defines the player body and its forces.
type PlayerConfig struct {
	Width   float64 `yaml:"width"` // in tiles
	Height  float64 `yaml:"height"`
	ThrustH float64 `yaml:"thrust_h"`
	ThrustV float64 `yaml:"thrust_v"`
	Gravity float64 `yaml:"gravity"`
}

// EnvironmentConfig defines the player's ambient environment.
type EnvironmentConfig struct {
	AccelX    float64 `yaml:"accel_x"`
	AccelY    float64 `yaml:"accel_y"`
	DragX     float64 `yaml:"drag_x"`
	DragY     float64 `yaml:"drag_y"`
	FrictionX float64 `yaml:"friction_x"`
	FrictionY float64 `yaml:"friction_y"`
}

// TilesConfig defines tile behavior constants.
type TilesConfig struct {
	ConveyorStrength float64        `yaml:"conveyor_strength"` // tiles per frame
	WaterMultiplier  float64        `yaml:"water_multiplier"`
	FlipKick         float64        `yaml:"flip_kick"`
	FlipCooldown     int            `yaml:"flip_cooldown"` // substeps
	Shrinkage        tile.Shrinkage `yaml:"shrinkage"`     // tolerance units
}

// DeathConfig defines what happens after the death scene.
type DeathConfig struct {
	RestartPack bool `yaml:"restart_pack"` // go back to the first level instead of the one lost
}

// Fudge returns the tolerance margin in world units.
func (c *Config) Fudge() float64 {
	return c.Simulation.FudgeRatio * c.Screen.TileSize
}

// WindowW returns the width of the visible window in world units.
func (c *Config) WindowW() float64 {
	return float64(c.Screen.Columns) * c.Screen.TileSize
}

// WindowH returns the height of the visible window in world units.
func (c *Config) WindowH() float64 {
	return float64(c.Screen.Rows) * c.Screen.TileSize
}

// PlayerEnvironment returns the environment the player moves in.
func (c *Config) PlayerEnvironment() physics.Environment {
	e := c.Environment
	return physics.Environment{
		AccelX: e.AccelX, AccelY: e.AccelY,
		DragX: e.DragX, DragY: e.DragY,
		FrictionX: e.FrictionX, FrictionY: e.FrictionY,
	}
}

// ControlParams returns the forces the controls apply.
func (c *Config) ControlParams() control.Params {
	return control.Params{
		ThrustH:  c.Player.ThrustH,
		ThrustV:  c.Player.ThrustV,
		Gravity:  c.Player.Gravity,
		Substeps: c.Simulation.Substeps,
	}
}

// TileParams returns the constants tile behaviors read.
func (c *Config) TileParams() tile.Params {
	return tile.Params{
		Fudge:            c.Fudge(),
		ConveyorStrength: c.Tiles.ConveyorStrength * c.Screen.TileSize / float64(c.Simulation.Substeps),
		WaterMultiplier:  c.Tiles.WaterMultiplier,
		FlipKick:         c.Tiles.FlipKick,
		FlipCooldown:     c.Tiles.FlipCooldown,
		Shrink:           c.Tiles.Shrinkage,
	}
}

// PartitionGrid returns the band layout over the window.
func (c *Config) PartitionGrid() (partition.Grid, error) {
	return partition.NewGrid(c.WindowW(), c.WindowH(), c.Simulation.Partitions,
		c.Simulation.PartitionMargin*c.Fudge())
}

// Validate checks that the configuration can drive a simulation.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Columns <= 0 || c.Screen.Rows <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Columns, c.Screen.Rows))
	}
	if c.Screen.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile_size must be positive, got %g", c.Screen.TileSize))
	}
	if c.Simulation.Substeps <= 0 {
		errs = append(errs, fmt.Errorf("substeps must be positive, got %d", c.Simulation.Substeps))
	}
	if c.Simulation.FudgeRatio <= 0 || c.Simulation.FudgeRatio >= 1 {
		errs = append(errs, fmt.Errorf("fudge_ratio must be in (0, 1), got %g", c.Simulation.FudgeRatio))
	}
	if c.Simulation.Partitions < 1 || c.Simulation.Partitions > partition.MaxBands {
		errs = append(errs, fmt.Errorf("partitions must be in [1, %d], got %d", partition.MaxBands, c.Simulation.Partitions))
	}
	// A touch reaches one tolerance past a tile plus however far its
	// behavior grows it; the band overlap must cover that or the index
	// misses touched tiles.
	if reach := 1 + c.Tiles.Shrinkage.MaxGrowth(); c.Simulation.PartitionMargin < reach {
		errs = append(errs, fmt.Errorf("partition_margin must be at least the touch reach %g, got %g", reach, c.Simulation.PartitionMargin))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %gx%g", c.Player.Width, c.Player.Height))
	}
	if d := c.Environment.DragX; d < 0 || d >= 1 {
		errs = append(errs, fmt.Errorf("drag_x must be in [0, 1), got %g", d))
	}
	if d := c.Environment.DragY; d < 0 || d >= 1 {
		errs = append(errs, fmt.Errorf("drag_y must be in [0, 1), got %g", d))
	}
	if c.Environment.FrictionX < 0 || c.Environment.FrictionY < 0 {
		errs = append(errs, errors.New("friction must not be negative"))
	}
	if c.Tiles.FlipCooldown < 0 {
		errs = append(errs, fmt.Errorf("flip_cooldown must not be negative, got %d", c.Tiles.FlipCooldown))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
