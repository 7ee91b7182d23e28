// Package physics provides the kinetic body integration and directional
// collision geometry used by the platformer simulation.
//
// Coordinates are screen-like: x grows to the right and y grows downward,
// so a body "above" a tile has a smaller y than the tile.
package physics

// Direction names one of the four axis-aligned sides or travel directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in evaluation order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Vertical reports whether the direction lies on the y axis.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// Sign returns the unit step along the direction's axis (-1 or 1).
func (d Direction) Sign() float64 {
	if d == Up || d == Left {
		return -1
	}
	return 1
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Bounds is an axis-aligned box given by its min and max corners.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Rect builds bounds from a top-left corner and a size.
func Rect(x, y, w, h float64) Bounds {
	return Bounds{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Overlaps reports strict AABB overlap. Boxes that only share an edge do not overlap.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.MinX < o.MaxX && b.MaxX > o.MinX && b.MinY < o.MaxY && b.MaxY > o.MinY
}

// Inset shrinks the box by d on every side. Negative d grows it.
func (b Bounds) Inset(d float64) Bounds {
	return Bounds{MinX: b.MinX + d, MinY: b.MinY + d, MaxX: b.MaxX - d, MaxY: b.MaxY - d}
}

// Touch records which sides of a box another box is touching, indexed by Direction.
type Touch [4]bool

// Any reports whether at least one side is touched.
func (t Touch) Any() bool {
	return t[Up] || t[Down] || t[Left] || t[Right]
}

// Strips returns the four detection strips around b. Each strip straddles
// one edge, reaching fudge outward and fudge inward along the edge normal,
// and is inset by fudge along the edge so corners do not register on two sides.
func Strips(b Bounds, fudge float64) [4]Bounds {
	return [4]Bounds{
		Up:    {MinX: b.MinX + fudge, MinY: b.MinY - fudge, MaxX: b.MaxX - fudge, MaxY: b.MinY + fudge},
		Down:  {MinX: b.MinX + fudge, MinY: b.MaxY - fudge, MaxX: b.MaxX - fudge, MaxY: b.MaxY + fudge},
		Left:  {MinX: b.MinX - fudge, MinY: b.MinY + fudge, MaxX: b.MinX + fudge, MaxY: b.MaxY - fudge},
		Right: {MinX: b.MaxX - fudge, MinY: b.MinY + fudge, MaxX: b.MaxX + fudge, MaxY: b.MaxY - fudge},
	}
}

// Collides reports, per side of b, whether a touches that side.
// Touch[Up] means a rests on (or presses into) b's top edge.
func Collides(a, b Bounds, fudge float64) Touch {
	var t Touch
	for side, strip := range Strips(b, fudge) {
		t[side] = a.Overlaps(strip)
	}
	return t
}

// CollidesShrunk applies a per-tile shrinkage to b before testing.
func CollidesShrunk(a, b Bounds, shrink, fudge float64) Touch {
	return Collides(a, b.Inset(shrink), fudge)
}
