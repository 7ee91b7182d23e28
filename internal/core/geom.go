// Package core provides the terminal-cell primitives shared by the renderer
// and the front ends. It has no Bubble Tea dependency so the rasterizer can
// be tested without a terminal.
package core

import "math"

// Rect is an integer cell rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left cell
	W, H int // Size in cells
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Snap converts a world-space box to the cells it covers, given the world
// size of one cell. Edges round to the nearest cell boundary, and a box that
// is non-empty in world space always covers at least one cell.
func Snap(x, y, w, h, cellW, cellH float64) Rect {
	x0 := int(math.Round(x / cellW))
	y0 := int(math.Round(y / cellH))
	x1 := int(math.Round((x + w) / cellW))
	y1 := int(math.Round((y + h) / cellH))
	if w > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if h > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
