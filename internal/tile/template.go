package tile

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/render"
)

// Template is the immutable default for a tile kind. Sizes are in tiles.
type Template struct {
	Kind     levels.Kind
	W, H     float64
	Glyph    rune
	Text     string
	Color    core.Color
	Layer    render.Layer
	Behavior Behavior
}

func block(k levels.Kind, glyph rune, c core.Color, b Behavior) Template {
	return Template{Kind: k, W: 1, H: 1, Glyph: glyph, Color: c, Layer: render.LayerContent, Behavior: b}
}

func liquid(k levels.Kind, glyph rune, c core.Color, b Behavior) Template {
	t := block(k, glyph, c, b)
	t.Layer = render.LayerBackground
	return t
}

var templates = map[levels.Kind]Template{
	levels.KindBlock:         block(levels.KindBlock, '█', core.ColorWhite, Stop{}),
	levels.KindSpike:         block(levels.KindSpike, '^', core.ColorBrightRed, Kill{}),
	levels.KindGoal:          block(levels.KindGoal, '*', core.ColorBrightGreen, Advance{}),
	levels.KindTransition:    block(levels.KindTransition, '#', core.ColorMagenta, Portal{}),
	levels.KindWrap:          block(levels.KindWrap, '░', core.ColorCyan, Wrap{}),
	levels.KindSticky:        block(levels.KindSticky, '▒', core.ColorOrange, Stick{}),
	levels.KindConveyorLeft:  block(levels.KindConveyorLeft, '<', core.ColorYellow, Move{Dir: physics.Left}),
	levels.KindConveyorRight: block(levels.KindConveyorRight, '>', core.ColorYellow, Move{Dir: physics.Right}),
	levels.KindSlime:         liquid(levels.KindSlime, '~', core.ColorGreen, Slime{}),
	levels.KindWater:         liquid(levels.KindWater, '≈', core.ColorBlue, Water{}),
	levels.KindFlipper:       block(levels.KindFlipper, '=', core.ColorBrightYellow, Flip{}),
}

// TemplateFor returns the template a grid cell of kind k instantiates.
// Empty cells, the start marker and unplayable kinds have none.
func TemplateFor(k levels.Kind) (Template, bool) {
	t, ok := templates[k]
	return t, ok
}

// FromOther builds a template for a freeform tile. A behavior kind starts
// from that kind's template; otherwise the tile is decoration. Explicit
// size, glyph, text, color and layer override the defaults.
func FromOther(o levels.Other) (Template, error) {
	t := Template{W: 1, H: 1, Color: core.ColorDefault, Layer: render.LayerContent, Behavior: Decor{}}
	if o.Behavior != levels.KindNone {
		base, ok := TemplateFor(o.Behavior)
		if !ok {
			return Template{}, fmt.Errorf("tile: %w: %s", levels.ErrUnimplementedKind, o.Behavior)
		}
		t = base
	}

	if o.W > 0 {
		t.W = o.W
	}
	if o.H > 0 {
		t.H = o.H
	}
	if o.Glyph != 0 {
		t.Glyph = o.Glyph
	}
	t.Text = o.Text
	if o.Color != "" {
		c, ok := core.ParseColor(o.Color)
		if !ok {
			return Template{}, fmt.Errorf("tile: unknown color %q", o.Color)
		}
		t.Color = c
	}
	if o.Layer != "" {
		l, ok := render.ParseLayer(o.Layer)
		if !ok {
			return Template{}, fmt.Errorf("tile: unknown layer %q", o.Layer)
		}
		t.Layer = l
	}
	return t, nil
}

// Job returns the render job for the template placed at (x, y) in world
// units, scaled by the tile size.
func (t Template) Job(x, y, size float64) render.Job {
	if t.Text != "" {
		return render.TextJob(x, y, t.Text, t.Color)
	}
	return render.RectJob(x, y, t.W*size, t.H*size, t.Glyph, t.Color)
}
