package levels

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/render"
)

// Coord is a row/column pair, used both for cells in a grid and for
// screens in a level.
type Coord struct {
	Row int
	Col int
}

// Other is a freeform tile that does not fit a grid cell, such as a text
// label or an oversized block. Position and size are in tiles.
type Other struct {
	X, Y     float64
	W, H     float64
	Behavior Kind
	Glyph    rune
	Text     string
	Color    string
	Layer    string
}

// Grid is one screen of a level.
type Grid struct {
	Cells  [][]Kind
	Others []Other
}

// ParseGrid reads a grid from text, one row per line. Blank leading and
// trailing lines are ignored; every other line must have the same width.
func ParseGrid(text string) (Grid, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return Grid{}, fmt.Errorf("levels: empty grid")
	}

	g := Grid{Cells: make([][]Kind, len(lines))}
	width := -1
	for row, line := range lines {
		runes := []rune(line)
		if width < 0 {
			width = len(runes)
		} else if len(runes) != width {
			return Grid{}, fmt.Errorf("levels: row %d has width %d, expected %d", row, len(runes), width)
		}
		g.Cells[row] = make([]Kind, width)
		for col, r := range runes {
			k, err := ParseKind(r)
			if err != nil {
				return Grid{}, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			g.Cells[row][col] = k
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return len(g.Cells)
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

// At returns the kind at a cell, or KindNone outside the grid.
func (g *Grid) At(c Coord) Kind {
	if c.Row < 0 || c.Row >= g.Rows() || c.Col < 0 || c.Col >= len(g.Cells[c.Row]) {
		return KindNone
	}
	return g.Cells[c.Row][c.Col]
}

// Find returns every cell holding kind, in row-major order.
func (g *Grid) Find(kind Kind) []Coord {
	var out []Coord
	for r, row := range g.Cells {
		for c, k := range row {
			if k == kind {
				out = append(out, Coord{Row: r, Col: c})
			}
		}
	}
	return out
}

// StartCell returns the first StartingLocation cell.
func (g *Grid) StartCell() (Coord, bool) {
	if found := g.Find(KindStart); len(found) > 0 {
		return found[0], true
	}
	return Coord{}, false
}

// Text renders the grid back to its text form.
func (g *Grid) Text() string {
	var sb strings.Builder
	for r, row := range g.Cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, k := range row {
			sb.WriteRune(k.Rune())
		}
	}
	return sb.String()
}

func (g *Grid) validate() error {
	if g.Rows() == 0 || g.Cols() == 0 {
		return fmt.Errorf("levels: empty grid")
	}
	for r, row := range g.Cells {
		if len(row) != g.Cols() {
			return fmt.Errorf("levels: row %d has width %d, expected %d", r, len(row), g.Cols())
		}
		for c, k := range row {
			if !k.Implemented() {
				return fmt.Errorf("%w %s at row %d col %d", ErrUnimplementedKind, k, r, c)
			}
		}
	}
	for i, o := range g.Others {
		if err := o.validate(); err != nil {
			return fmt.Errorf("freeform tile %d: %w", i, err)
		}
	}
	return nil
}

func (o Other) validate() error {
	if !o.Behavior.Implemented() {
		return fmt.Errorf("%w %s", ErrUnimplementedKind, o.Behavior)
	}
	if o.Behavior == KindStart {
		return fmt.Errorf("%w: starting location must be a grid cell", ErrInvalidOther)
	}
	if o.Text == "" && (o.W <= 0 || o.H <= 0) {
		return fmt.Errorf("%w: no size", ErrInvalidOther)
	}
	if o.Color != "" {
		if _, ok := core.ParseColor(o.Color); !ok {
			return fmt.Errorf("%w: unknown color %q", ErrInvalidOther, o.Color)
		}
	}
	if _, ok := render.ParseLayer(o.Layer); !ok {
		return fmt.Errorf("%w: unknown layer %q", ErrInvalidOther, o.Layer)
	}
	return nil
}

// Level is a 2D arrangement of screens.
type Level struct {
	ID      string
	Name    string
	Screens [][]Grid
	Start   Coord // screen holding the StartingLocation cell
}

// ScreenRows returns the number of screen rows.
func (l *Level) ScreenRows() int {
	return len(l.Screens)
}

// ScreenCols returns the number of screen columns.
func (l *Level) ScreenCols() int {
	if len(l.Screens) == 0 {
		return 0
	}
	return len(l.Screens[0])
}

// Screen returns the grid at a screen coordinate.
func (l *Level) Screen(c Coord) (*Grid, bool) {
	if c.Row < 0 || c.Row >= l.ScreenRows() || c.Col < 0 || c.Col >= len(l.Screens[c.Row]) {
		return nil, false
	}
	return &l.Screens[c.Row][c.Col], true
}

// Neighbor returns the screen next to c in direction d, wrapping around
// the level's edges.
func (l *Level) Neighbor(c Coord, d physics.Direction) Coord {
	rows, cols := l.ScreenRows(), l.ScreenCols()
	switch d {
	case physics.Up:
		c.Row = (c.Row - 1 + rows) % rows
	case physics.Down:
		c.Row = (c.Row + 1) % rows
	case physics.Left:
		c.Col = (c.Col - 1 + cols) % cols
	case physics.Right:
		c.Col = (c.Col + 1) % cols
	}
	return c
}

// Validate checks the level's shape and content.
func (l *Level) Validate() error {
	if l.ScreenRows() == 0 || l.ScreenCols() == 0 {
		return fmt.Errorf("levels: level %q has no screens", l.ID)
	}
	for r, row := range l.Screens {
		if len(row) != l.ScreenCols() {
			return fmt.Errorf("levels: level %q screen row %d has %d screens, expected %d", l.ID, r, len(row), l.ScreenCols())
		}
		for c := range row {
			if err := row[c].validate(); err != nil {
				return fmt.Errorf("level %q screen (%d,%d): %w", l.ID, r, c, err)
			}
		}
	}
	starts := 0
	for _, row := range l.Screens {
		for c := range row {
			starts += len(row[c].Find(KindStart))
		}
	}
	if starts > 1 {
		return fmt.Errorf("%w: level %q has %d", ErrExtraStart, l.ID, starts)
	}
	start, ok := l.Screen(l.Start)
	if !ok {
		return fmt.Errorf("levels: level %q start screen (%d,%d) out of range", l.ID, l.Start.Row, l.Start.Col)
	}
	if _, ok := start.StartCell(); !ok {
		return fmt.Errorf("%w: level %q", ErrNoStart, l.ID)
	}
	return nil
}
