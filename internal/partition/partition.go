// Package partition implements the bitmask spatial index that keeps the
// per-substep collision scan proportional to the tiles near the player.
//
// The play-field is cut into a fixed number of bands along each axis. An
// entity's Partition has bit i set on an axis when its box, widened by the
// grid margin, reaches band i. Two partitions are collision candidates when
// they share a band on both axes.
package partition

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// MaxBands is the largest band count a uint64 mask can hold.
const MaxBands = 64

// Partition is the pair of band masks for one entity.
type Partition struct {
	X uint64
	Y uint64
}

// Collides reports whether p and o share a band on both axes.
func (p Partition) Collides(o Partition) bool {
	return p.X&o.X != 0 && p.Y&o.Y != 0
}

// Empty reports whether either mask has no band set.
func (p Partition) Empty() bool {
	return p.X == 0 || p.Y == 0
}

// String returns the masks in binary, lowest band last.
func (p Partition) String() string {
	return fmt.Sprintf("x=%b y=%b", p.X, p.Y)
}

// Grid describes how the play-field is cut into bands.
type Grid struct {
	Width  float64 // play-field width in world units
	Height float64
	Bands  int     // bands per axis, 1..MaxBands
	Margin float64 // boxes are widened by this much before banding
}

// NewGrid validates and returns a grid.
func NewGrid(width, height float64, bands int, margin float64) (Grid, error) {
	if bands < 1 || bands > MaxBands {
		return Grid{}, fmt.Errorf("partition: band count %d outside 1..%d", bands, MaxBands)
	}
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("partition: play-field %gx%g must be positive", width, height)
	}
	if margin < 0 {
		return Grid{}, fmt.Errorf("partition: negative margin %g", margin)
	}
	return Grid{Width: width, Height: height, Bands: bands, Margin: margin}, nil
}

// For computes the partition of a box. Boxes past the play-field edge fall
// into the edge band, so off-screen border tiles still index.
func (g Grid) For(b physics.Bounds) Partition {
	return Partition{
		X: g.mask(b.MinX, b.MaxX, g.Width),
		Y: g.mask(b.MinY, b.MaxY, g.Height),
	}
}

func (g Grid) mask(lo, hi, extent float64) uint64 {
	band := extent / float64(g.Bands)
	first := g.band(lo-g.Margin, band)
	last := g.band(hi+g.Margin, band)
	var m uint64
	for i := first; i <= last; i++ {
		m |= 1 << uint(i)
	}
	return m
}

func (g Grid) band(v, size float64) int {
	return core.Clamp(int(math.Floor(v/size)), 0, g.Bands-1)
}
