package tile

import (
	"github.com/vovakirdan/tui-platformer/internal/control"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Shrinkage holds per-behavior insets in tolerance units. Positive values
// shrink a tile so the player must press in further to trigger it;
// negative values grow it.
type Shrinkage struct {
	Stop    float64 `yaml:"stop"`
	Kill    float64 `yaml:"kill"`
	Advance float64 `yaml:"advance"`
	Wrap    float64 `yaml:"wrap"`
	Portal  float64 `yaml:"portal"`
	Stick   float64 `yaml:"stick"`
	Move    float64 `yaml:"move"`
	Water   float64 `yaml:"water"`
	Slime   float64 `yaml:"slime"`
	Flip    float64 `yaml:"flip"`
}

// DefaultShrinkage returns the stock insets.
func DefaultShrinkage() Shrinkage {
	return Shrinkage{
		Kill:    1,
		Advance: 1.25,
		Wrap:    1,
		Portal:  1,
		Water:   -1,
		Slime:   -1,
		Flip:    -1,
	}
}

// MaxGrowth returns how far, in tolerance units, the most grown behavior
// extends past its tile. Zero when nothing grows.
func (s Shrinkage) MaxGrowth() float64 {
	grow := 0.0
	for _, v := range []float64{s.Stop, s.Kill, s.Advance, s.Wrap, s.Portal, s.Stick, s.Move, s.Water, s.Slime, s.Flip} {
		grow = max(grow, -v)
	}
	return grow
}

// Params are the tuning constants behaviors read.
type Params struct {
	Fudge            float64 // tolerance margin in world units
	ConveyorStrength float64 // position nudge per substep
	WaterMultiplier  float64 // vertical speed multiplier while in water
	FlipKick         float64 // speed given away from a flipper
	FlipCooldown     int     // substeps before another flip
	Shrink           Shrinkage
}

// Contact is everything a behavior may touch during one side contact.
// One Contact is shared by every touch of a substep.
type Contact struct {
	Player   *physics.Body
	Side     physics.Direction // side of the tile being touched
	Controls *control.Controls
	Params   *Params

	belts [4]bool // belt directions carrying the player this substep
}

// Settle applies the effects gathered over a substep's touches. Each belt
// direction carries the player once, however many belt tiles it spans.
func (c *Contact) Settle() {
	for _, d := range [...]physics.Direction{physics.Left, physics.Right} {
		if c.belts[d] {
			c.Player.X += d.Sign() * c.Params.ConveyorStrength
		}
	}
	c.belts = [4]bool{}
}

// Behavior is a tile's reaction to being touched.
type Behavior interface {
	// OnTouch reacts to one touched side and returns the requested effect.
	OnTouch(c *Contact) Action
	// Priority orders evaluation within a substep; lower runs first.
	Priority() int
	// Shrinkage is the inset applied to the tile box before testing, in world units.
	Shrinkage(p *Params) float64
	String() string
}

// Priorities, lower first.
const (
	PriorityKill    = 0
	PriorityDecor   = 0
	PriorityAdvance = 1
	PriorityWater   = 20
	PrioritySlime   = 21
	PriorityFlip    = 40
	PriorityStop    = 60
	PriorityStick   = 61
	PriorityMove    = 62
	PriorityWrap    = 80
	PriorityPortal  = 81
)

// stopInbound zeroes the velocity component carrying the player into the
// touched side and arms the vertical latch on floors and ceilings.
func stopInbound(c *Contact) {
	p := c.Player
	switch c.Side {
	case physics.Up:
		if p.VY > 0 {
			p.VY = 0
		}
		c.Controls.ArmVertical()
	case physics.Down:
		if p.VY < 0 {
			p.VY = 0
		}
		c.Controls.ArmVertical()
	case physics.Left:
		if p.VX > 0 {
			p.VX = 0
		}
	case physics.Right:
		if p.VX < 0 {
			p.VX = 0
		}
	}
}

// Stop is a solid wall or floor.
type Stop struct{}

func (Stop) OnTouch(c *Contact) Action {
	stopInbound(c)
	return None
}

func (Stop) Priority() int { return PriorityStop }

func (Stop) Shrinkage(p *Params) float64 { return p.Shrink.Stop * p.Fudge }

func (Stop) String() string { return "stop" }

// Stick is a solid surface that also cancels sliding along it.
type Stick struct{}

func (Stick) OnTouch(c *Contact) Action {
	stopInbound(c)
	if c.Side.Vertical() {
		c.Player.VX = 0
	} else {
		c.Player.VY = 0
	}
	return None
}

func (Stick) Priority() int { return PriorityStick }

func (Stick) Shrinkage(p *Params) float64 { return p.Shrink.Stick * p.Fudge }

func (Stick) String() string { return "stick" }

// Move is a conveyor belt. It is solid, and a player standing on or
// hanging from it is carried along Dir when the Contact settles.
type Move struct {
	Dir physics.Direction
}

func (m Move) OnTouch(c *Contact) Action {
	stopInbound(c)
	if c.Side.Vertical() {
		c.belts[m.Dir] = true
	}
	return None
}

func (Move) Priority() int { return PriorityMove }

func (Move) Shrinkage(p *Params) float64 { return p.Shrink.Move * p.Fudge }

func (m Move) String() string { return "move_" + m.Dir.String() }

// Kill restarts the player.
type Kill struct{}

func (Kill) OnTouch(*Contact) Action { return KillAction() }

func (Kill) Priority() int { return PriorityKill }

func (Kill) Shrinkage(p *Params) float64 { return p.Shrink.Kill * p.Fudge }

func (Kill) String() string { return "kill" }

// Advance completes the level.
type Advance struct{}

func (Advance) OnTouch(*Contact) Action { return AdvanceAction() }

func (Advance) Priority() int { return PriorityAdvance }

func (Advance) Shrinkage(p *Params) float64 { return p.Shrink.Advance * p.Fudge }

func (Advance) String() string { return "advance" }

// Wrap sends the player to the opposite edge of the same screen.
type Wrap struct{}

func (Wrap) OnTouch(c *Contact) Action { return WrapAction(c.Side) }

func (Wrap) Priority() int { return PriorityWrap }

func (Wrap) Shrinkage(p *Params) float64 { return p.Shrink.Wrap * p.Fudge }

func (Wrap) String() string { return "wrap" }

// Portal moves the player to the neighboring screen. The player travels
// away from the touched side, through the tile.
type Portal struct{}

func (Portal) OnTouch(c *Contact) Action { return MoveScreenAction(c.Side.Opposite()) }

func (Portal) Priority() int { return PriorityPortal }

func (Portal) Shrinkage(p *Params) float64 { return p.Shrink.Portal * p.Fudge }

func (Portal) String() string { return "portal" }

// Water slows vertical movement for every substep the player is in it.
type Water struct{}

func (Water) OnTouch(c *Contact) Action {
	c.Player.MulY = c.Params.WaterMultiplier
	return None
}

func (Water) Priority() int { return PriorityWater }

func (Water) Shrinkage(p *Params) float64 { return p.Shrink.Water * p.Fudge }

func (Water) String() string { return "water" }

// Slime takes away horizontal steering.
type Slime struct{}

func (Slime) OnTouch(c *Contact) Action {
	c.Controls.DisarmHorizontal()
	return None
}

func (Slime) Priority() int { return PrioritySlime }

func (Slime) Shrinkage(p *Params) float64 { return p.Shrink.Slime * p.Fudge }

func (Slime) String() string { return "slime" }

// Flip inverts gravity when the player is pulled into it, kicking the
// player away and starting a cooldown. Touches during the cooldown,
// including a second flipper in the same substep, do nothing.
type Flip struct{}

func (Flip) OnTouch(c *Contact) Action {
	ctl := c.Controls
	pulledIn := (c.Side == physics.Up && ctl.Gravity > 0) ||
		(c.Side == physics.Down && ctl.Gravity < 0)
	if !pulledIn || !ctl.StartFlip(c.Params.FlipCooldown) {
		return None
	}
	c.Player.VY = ctl.Gravity * c.Params.FlipKick
	c.Player.Y += ctl.Gravity * 2 * c.Params.Fudge
	return None
}

func (Flip) Priority() int { return PriorityFlip }

func (Flip) Shrinkage(p *Params) float64 { return p.Shrink.Flip * p.Fudge }

func (Flip) String() string { return "flip" }

// Decor is scenery with no effect.
type Decor struct{}

func (Decor) OnTouch(*Contact) Action { return None }

func (Decor) Priority() int { return PriorityDecor }

func (Decor) Shrinkage(*Params) float64 { return 0 }

func (Decor) String() string { return "decor" }
