package render

import "github.com/vovakirdan/tui-platformer/internal/core"

// View maps world units onto terminal cells.
type View struct {
	CellW, CellH     float64 // world size of one cell
	OffsetX, OffsetY int     // screen cell of the world origin
}

// NewView returns a view that draws one tile as two cells side by side,
// which keeps tiles roughly square in a terminal.
func NewView(tileSize float64) View {
	return View{CellW: tileSize / 2, CellH: tileSize}
}

// Cells returns the screen rectangle a world box covers.
func (v View) Cells(x, y, w, h float64) core.Rect {
	r := core.Snap(x, y, w, h, v.CellW, v.CellH)
	r.X += v.OffsetX
	r.Y += v.OffsetY
	return r
}

// Rasterize draws every visible job in reg onto dst in draw order.
// Jobs outside the screen are clipped.
func Rasterize(dst *core.Screen, reg *Registry, v View) {
	for _, id := range reg.Ordered() {
		job, _ := reg.Get(id)
		if job.Hidden {
			continue
		}
		b := job.Bounds
		switch job.Kind {
		case KindText:
			r := v.Cells(b[0], b[1], 0, 0)
			dst.DrawTextColored(r.X, r.Y, job.Text, job.Color)
		default:
			r := v.Cells(b[0], b[1], b[2], b[3])
			dst.FillRect(r, job.Glyph, job.Color)
			drawIndicators(dst, r, job.Indicators)
		}
	}
}

// drawIndicators marks the edges of r whose toggles are set.
func drawIndicators(dst *core.Screen, r core.Rect, ind Indicators) {
	if ind == 0 || r.Empty() {
		return
	}
	midX := r.X + (r.W-1)/2
	midY := r.Y + (r.H-1)/2
	if ind.Has(IndicatorUp) {
		dst.SetColored(midX, r.Y, '▴', core.ColorBrightYellow)
	}
	if ind.Has(IndicatorDown) {
		dst.SetColored(r.Right()-1-(r.W-1)/2, r.Bottom()-1, '▾', core.ColorBrightYellow)
	}
	if ind.Has(IndicatorLeft) {
		dst.SetColored(r.X, midY, '◂', core.ColorBrightYellow)
	}
	if ind.Has(IndicatorRight) {
		dst.SetColored(r.Right()-1, midY, '▸', core.ColorBrightYellow)
	}
}
