package tile

import (
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/partition"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/render"
)

// JobAdder is the part of the render registry that tile creation needs.
type JobAdder interface {
	Add(job render.Job, layer render.Layer) render.JobID
}

// Tile is an instantiated template: a behavior plus the static body it
// occupies. Partition is the tile's entry in the session's index.
type Tile struct {
	Kind      levels.Kind
	Behavior  Behavior
	Body      *physics.Body
	Partition partition.ID
}

// Instantiate places t with its top-left corner at (x, y) in world units
// and registers its visual with jobs.
func (t Template) Instantiate(x, y, size float64, jobs JobAdder) *Tile {
	id := jobs.Add(t.Job(x, y, size), t.Layer)
	return &Tile{
		Kind:     t.Kind,
		Behavior: t.Behavior,
		Body:     physics.NewBody(x, y, t.W*size, t.H*size, id),
	}
}

// Collides reports which sides of the tile the player box touches, after
// applying the behavior's shrinkage.
func (t *Tile) Collides(player physics.Bounds, p *Params) physics.Touch {
	return physics.CollidesShrunk(player, t.Body.Bounds(), t.Behavior.Shrinkage(p), p.Fudge)
}

// Touch runs the behavior once for every touched side, in Direction order,
// and returns the actions that were not None.
func (t *Tile) Touch(touch physics.Touch, c *Contact, out []Action) []Action {
	for _, side := range physics.Directions {
		if !touch[side] {
			continue
		}
		c.Side = side
		if a := t.Behavior.OnTouch(c); a.Kind != ActionNone {
			out = append(out, a)
		}
	}
	return out
}
