package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/vovakirdan/tui-platformer/internal/render"
)

const substeps = 32

func TestIntegratePositionUsesMultiplier(t *testing.T) {
	b := NewBody(0, 0, 1, 1, 0)
	b.VX, b.VY = 32, 64
	b.MulY = 0.5

	b.Integrate(nil, substeps)

	assert.Equal(t, 1.0, b.X)
	assert.Equal(t, 1.0, b.Y)
	assert.Equal(t, 1.0, b.MulX, "multipliers reset after a substep")
	assert.Equal(t, 1.0, b.MulY)
}

func TestDragIsSubstepIndependent(t *testing.T) {
	env := []Environment{{DragX: 0.2, DragY: 0.35}}

	for _, n := range []int{1, 7, 32, 33, 100} {
		b := NewBody(0, 0, 1, 1, 0)
		b.VX, b.VY = 10, -4
		for i := 0; i < n; i++ {
			b.Integrate(env, substeps)
		}
		wantX := 10 * math.Pow(0.8, float64(n)/substeps)
		wantY := -4 * math.Pow(0.65, float64(n)/substeps)
		assert.Truef(t, scalar.EqualWithinAbsOrRel(b.VX, wantX, 1e-9, 1e-9), "n=%d vx=%v want %v", n, b.VX, wantX)
		assert.Truef(t, scalar.EqualWithinAbsOrRel(b.VY, wantY, 1e-9, 1e-9), "n=%d vy=%v want %v", n, b.VY, wantY)
	}
}

func TestDragSplitAcrossFrames(t *testing.T) {
	env := []Environment{{DragX: 0.5}}

	one := NewBody(0, 0, 1, 1, 0)
	one.VX = 3
	for i := 0; i < 2*substeps; i++ {
		one.Integrate(env, substeps)
	}

	two := NewBody(0, 0, 1, 1, 0)
	two.VX = 3
	for frame := 0; frame < 4; frame++ {
		for i := 0; i < substeps/2; i++ {
			two.Integrate(env, substeps)
		}
	}

	assert.True(t, scalar.EqualWithinAbs(one.VX, two.VX, 1e-12))
	assert.True(t, scalar.EqualWithinAbs(one.VX, 0.75, 1e-9))
}

func TestFrictionNeverFlipsSign(t *testing.T) {
	speeds := []float64{-50, -1, -0.01, -1e-9, 0, 1e-9, 0.01, 1, 50}
	frictions := []float64{0.001, 0.1, 1, 10, 1000}

	for _, v := range speeds {
		for _, f := range frictions {
			b := NewBody(0, 0, 1, 1, 0)
			b.VX, b.VY = v, -v
			b.Integrate([]Environment{{FrictionX: f, FrictionY: f}}, substeps)

			if v > 0 {
				assert.GreaterOrEqual(t, b.VX, 0.0, "v=%v f=%v", v, f)
				assert.LessOrEqual(t, b.VY, 0.0, "v=%v f=%v", v, f)
			} else {
				assert.LessOrEqual(t, b.VX, 0.0, "v=%v f=%v", v, f)
				assert.GreaterOrEqual(t, b.VY, 0.0, "v=%v f=%v", v, f)
			}
			assert.LessOrEqual(t, math.Abs(b.VX), math.Abs(v))
		}
	}
}

func TestIntegrateOrder(t *testing.T) {
	// Position uses the old speed; friction is applied before drag and
	// acceleration comes last.
	b := NewBody(0, 0, 1, 1, 0)
	b.VX = 2
	b.Integrate([]Environment{{FrictionX: 32, DragX: 0.5, AccelX: 32}}, 1)

	assert.Equal(t, 2.0, b.X)
	// (2 - 32 clamped to 0) * 0.5 + 32
	assert.Equal(t, 32.0, b.VX)
}

func TestEnvironmentsStack(t *testing.T) {
	b := NewBody(0, 0, 1, 1, 0)
	b.Integrate([]Environment{{AccelY: 2}, {AccelY: 2}}, 2)
	assert.Equal(t, 2.0, b.VY)

	b = NewBody(0, 0, 1, 1, 0)
	b.VX = 5
	b.Integrate(nil, 2)
	assert.Equal(t, 5.0, b.VX, "no environment leaves velocity untouched")
}

func TestNewBodyRejectsEmptySize(t *testing.T) {
	assert.Panics(t, func() { NewBody(0, 0, 0, 1, 0) })
	assert.Panics(t, func() { NewBody(0, 0, 1, -1, 0) })
}

func TestSyncWritesBounds(t *testing.T) {
	reg := render.NewRegistry()
	id := reg.Add(render.RectJob(0, 0, 1, 1, '#', 0), render.LayerContent)

	b := NewBody(3, 4, 5, 6, id)
	b.Sync(reg)

	job, ok := reg.Get(id)
	require.True(t, ok)
	assert.Equal(t, [4]float64{3, 4, 5, 6}, job.Bounds)
}

func TestSyncPanicsWithoutJob(t *testing.T) {
	reg := render.NewRegistry()
	id := reg.Add(render.RectJob(0, 0, 1, 1, '#', 0), render.LayerContent)
	reg.Remove(id)

	b := NewBody(0, 0, 1, 1, id)
	assert.Panics(t, func() { b.Sync(reg) })

	detached := NewBody(0, 0, 1, 1, 0)
	assert.NotPanics(t, func() { detached.Sync(reg) })
}
