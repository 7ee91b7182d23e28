// Package control turns edge-triggered input into player thrust and tracks
// the gravity direction together with its "can flip" latches.
//
// Gravity may only change while the vertical latch is armed, which happens
// when a Stop or Stick tile is touched on a vertical side during a substep.
// The horizontal latch is armed by default and gates horizontal steering;
// slime disarms it for the substep it is touched.
package control

import (
	"github.com/vovakirdan/tui-platformer/internal/input"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/render"
)

// Params are the constant forces controls apply. All values are per frame
// and are divided across Substeps.
type Params struct {
	ThrustH  float64
	ThrustV  float64
	Gravity  float64
	Substeps int
}

// Controls is the per-session control state.
type Controls struct {
	Horizontal    float64 // desired direction: -1 left, 0, 1 right
	Vertical      float64 // desired direction: -1 up, 0, 1 down
	Gravity       float64 // -1 up or 1 down
	CanFlipX      bool
	CanFlipY      bool
	FlipCountdown int // substeps until another flip is allowed
}

// New returns controls with gravity pointing down, the horizontal latch
// armed and the vertical latch disarmed until first ground contact.
func New() *Controls {
	return &Controls{Gravity: 1, CanFlipX: true}
}

// Update reads this frame's key presses. Direction keys set the desired
// direction on their axis and move the matching indicator on job. Space
// clears both directions and every indicator. job may be nil.
func (c *Controls) Update(in input.Reader, job *render.Job) {
	ind := render.Indicators(0)
	if job != nil {
		ind = job.Indicators
	}

	if in.KeyPressed(input.KeyLeft) {
		c.Horizontal = -1
		ind = ind&^render.IndicatorRight | render.IndicatorLeft
	}
	if in.KeyPressed(input.KeyRight) {
		c.Horizontal = 1
		ind = ind&^render.IndicatorLeft | render.IndicatorRight
	}
	if in.KeyPressed(input.KeyUp) {
		c.Vertical = -1
		ind = ind&^render.IndicatorDown | render.IndicatorUp
	}
	if in.KeyPressed(input.KeyDown) {
		c.Vertical = 1
		ind = ind&^render.IndicatorUp | render.IndicatorDown
	}
	if in.KeyPressed(input.KeySpace) {
		c.Horizontal, c.Vertical = 0, 0
		ind = 0
	}

	if job != nil {
		job.Indicators = ind
	}
}

// Apply adds one substep of thrust and gravity to b, then resets the
// latches for the next collision pass.
func (c *Controls) Apply(b *physics.Body, p Params) {
	n := float64(p.Substeps)
	if c.CanFlipX {
		b.VX += c.Horizontal * p.ThrustH / n
	}
	b.VY += c.Vertical * p.ThrustV / n
	if c.CanFlipY && c.Vertical != 0 && c.FlipCountdown == 0 {
		c.Gravity = c.Vertical
	}
	b.VY += c.Gravity * p.Gravity / n

	c.CanFlipX = true
	c.CanFlipY = false
	if c.FlipCountdown > 0 {
		c.FlipCountdown--
	}
}

// ArmVertical marks the player as grounded for this substep.
func (c *Controls) ArmVertical() {
	c.CanFlipY = true
}

// DisarmHorizontal removes horizontal traction for this substep.
func (c *Controls) DisarmHorizontal() {
	c.CanFlipX = false
}

// Flipping reports whether a flip cooldown is running.
func (c *Controls) Flipping() bool {
	return c.FlipCountdown > 0
}

// StartFlip inverts gravity and starts the cooldown. It reports false,
// changing nothing, if a cooldown is already running.
func (c *Controls) StartFlip(cooldown int) bool {
	if c.Flipping() {
		return false
	}
	c.Gravity = -c.Gravity
	c.FlipCountdown = cooldown
	return true
}

// Reset restores the initial state, keeping nothing from a previous life.
func (c *Controls) Reset() {
	*c = *New()
}
