package physics

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/render"
)

// Environment holds the constant forces a body is subject to.
// Velocities are in world units per frame; every term is spread evenly
// over the substeps of a frame.
type Environment struct {
	AccelX, AccelY       float64 // added every frame
	DragX, DragY         float64 // fraction of speed removed per frame, in [0, 1)
	FrictionX, FrictionY float64 // speed removed per frame toward zero
}

// JobStore is the part of the render registry a body writes to.
type JobStore interface {
	Get(id render.JobID) (*render.Job, bool)
}

// Body is an axis-aligned kinetic box. (X, Y) is its top-left corner.
type Body struct {
	X, Y   float64
	VX, VY float64
	MulX   float64 // one-substep velocity multiplier, reset after Integrate
	MulY   float64
	W, H   float64
	Job    render.JobID // zero for bodies with no visual
}

// NewBody creates a body at rest with neutral multipliers.
// It panics on a non-positive size.
func NewBody(x, y, w, h float64, job render.JobID) *Body {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("physics: body size must be positive, got %gx%g", w, h))
	}
	return &Body{X: x, Y: y, W: w, H: h, MulX: 1, MulY: 1, Job: job}
}

// Bounds returns the body's current box.
func (b *Body) Bounds() Bounds {
	return Rect(b.X, b.Y, b.W, b.H)
}

// Integrate advances the body by one substep of a frame split into substeps:
// position first, then per environment friction, drag and acceleration.
// The multipliers are consumed and reset to 1.
func (b *Body) Integrate(envs []Environment, substeps int) {
	n := float64(substeps)
	b.X += b.VX * b.MulX / n
	b.Y += b.VY * b.MulY / n
	for _, env := range envs {
		b.VX = applyFriction(b.VX, env.FrictionX/n)
		b.VY = applyFriction(b.VY, env.FrictionY/n)
		b.VX *= math.Pow(1-env.DragX, 1/n)
		b.VY *= math.Pow(1-env.DragY, 1/n)
		b.VX += env.AccelX / n
		b.VY += env.AccelY / n
	}
	b.MulX, b.MulY = 1, 1
}

// applyFriction moves v toward zero by f without crossing it.
func applyFriction(v, f float64) float64 {
	switch {
	case v > 0:
		return math.Max(v-f, 0)
	case v < 0:
		return math.Min(v+f, 0)
	default:
		return 0
	}
}

// Sync writes the body's bounds into its render job.
// It panics if the job is no longer registered.
func (b *Body) Sync(jobs JobStore) {
	if b.Job == 0 {
		return
	}
	job, ok := jobs.Get(b.Job)
	if !ok {
		panic(fmt.Sprintf("physics: render job %s is not registered", b.Job))
	}
	job.Bounds = [4]float64{b.X, b.Y, b.W, b.H}
}
