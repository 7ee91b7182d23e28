// Package render provides the render-job registry shared by the simulation
// and the terminal front end.
//
// The simulation never draws. It registers jobs, mutates their bounds and
// indicator toggles through stable identifiers, and releases them when the
// owning tile or player is torn down. A front end walks Ordered() to draw.
package render

import "github.com/vovakirdan/tui-platformer/internal/core"

// Layer orders jobs for drawing. Lower layers are drawn first.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerContent
	LayerUI
	LayerFront
)

// String returns a human-readable name for the layer.
func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerContent:
		return "content"
	case LayerUI:
		return "ui"
	case LayerFront:
		return "front"
	default:
		return "unknown"
	}
}

// ParseLayer maps a layer name back to its value.
func ParseLayer(s string) (Layer, bool) {
	switch s {
	case "background", "back":
		return LayerBackground, true
	case "content", "":
		return LayerContent, true
	case "ui":
		return LayerUI, true
	case "front":
		return LayerFront, true
	}
	return LayerContent, false
}

// Kind selects how a job is drawn.
type Kind uint8

const (
	KindRect Kind = iota
	KindText
)

// Indicators is a bitmask of directional toggles drawn on top of a job.
type Indicators uint8

const (
	IndicatorUp Indicators = 1 << iota
	IndicatorDown
	IndicatorLeft
	IndicatorRight

	IndicatorAll = IndicatorUp | IndicatorDown | IndicatorLeft | IndicatorRight
)

// Has reports whether every bit in mask is set.
func (i Indicators) Has(mask Indicators) bool {
	return i&mask == mask
}

// Job describes something to draw. Bounds are x, y, width, height in world units.
type Job struct {
	Kind       Kind
	Bounds     [4]float64
	Color      core.Color
	Glyph      rune
	Text       string
	Hidden     bool
	Indicators Indicators
}

// RectJob returns a filled rectangle job.
func RectJob(x, y, w, h float64, glyph rune, color core.Color) Job {
	return Job{Kind: KindRect, Bounds: [4]float64{x, y, w, h}, Glyph: glyph, Color: color}
}

// TextJob returns a text job anchored at (x, y).
func TextJob(x, y float64, text string, color core.Color) Job {
	return Job{Kind: KindText, Bounds: [4]float64{x, y, 0, 0}, Text: text, Color: color}
}
