package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/input"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/render"
	"github.com/vovakirdan/tui-platformer/internal/telemetry"
	"github.com/vovakirdan/tui-platformer/internal/tile"
)

const (
	tileSize = 15.0
	fudge    = 0.15
)

// Screens are 8x6 tiles; grids carry a one-tile border ring around them.
func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Screen.Columns = 8
	cfg.Screen.Rows = 6
	return cfg
}

const restingGrid = `
BBBBBBBBBB
B........B
B........B
B........B
B........B
B........B
B..P.....B
BBBBBBBBBB
`

const spikeGrid = `
BBBBBBBBBB
B........B
B........B
B........B
B........B
B..P.....B
B..S.....B
BBBBBBBBBB
`

const goalGrid = `
BBBBBBBBBB
B........B
B........B
B........B
B........B
B..P.....B
B..G.....B
BBBBBBBBBB
`

func mustGrid(t *testing.T, text string) levels.Grid {
	t.Helper()
	g, err := levels.ParseGrid(text)
	require.NoError(t, err)
	return g
}

func level(t *testing.T, id string, screens ...string) levels.Level {
	t.Helper()
	row := make([]levels.Grid, len(screens))
	for i, s := range screens {
		row[i] = mustGrid(t, s)
	}
	return levels.Level{ID: id, Screens: [][]levels.Grid{row}}
}

func newSession(t *testing.T, cfg config.Config, pack *levels.Pack, opts ...Option) (*Session, *render.Registry) {
	t.Helper()
	reg := render.NewRegistry()
	s, err := New(cfg, pack, reg, opts...)
	require.NoError(t, err)
	return s, reg
}

func idle(t *testing.T, s *Session, frames int) {
	t.Helper()
	in := input.NewSnapshot()
	for range frames {
		_, err := s.Frame(in)
		require.NoError(t, err)
		in.EndFrame()
	}
}

// substepUntil runs substeps until one performs an action of kind k.
func substepUntil(t *testing.T, s *Session, k tile.ActionKind, limit int) tile.Action {
	t.Helper()
	for range limit {
		a, err := s.Substep()
		require.NoError(t, err)
		if a.Kind == k {
			return a
		}
	}
	t.Fatalf("no %s action within %d substeps", k, limit)
	return tile.None
}

func TestNewLoadsStartLevel(t *testing.T) {
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "rest", restingGrid)}}
	s, reg := newSession(t, testConfig(), pack)

	p := s.Player()
	assert.Equal(t, 30.0, p.X)
	assert.Equal(t, 75.0, p.Y)
	assert.InDelta(t, 0.98*tileSize, p.W, 1e-9)
	assert.Equal(t, 32, s.Tiles())
	assert.Equal(t, s.Tiles()+1, reg.Len(), "one job per tile plus the player")
	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, 0, s.Level())
}

func TestNewRejectsBadInput(t *testing.T) {
	reg := render.NewRegistry()
	_, err := New(testConfig(), nil, reg)
	assert.Error(t, err)

	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "rest", restingGrid)}}
	_, err = New(testConfig(), pack, reg, WithStartLevel(3))
	assert.Error(t, err)

	enemy := &levels.Pack{ID: "e", Levels: []levels.Level{level(t, "e", "BBB\nPEB\nBBB")}}
	_, err = New(testConfig(), enemy, reg)
	assert.True(t, errors.Is(err, levels.ErrUnimplementedKind))

	cfg := testConfig()
	cfg.Simulation.Substeps = 0
	_, err = New(cfg, pack, reg)
	assert.Error(t, err)
}

func TestRestingPlayerStaysPut(t *testing.T) {
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "rest", restingGrid)}}
	s, _ := newSession(t, testConfig(), pack)

	idle(t, s, 30)
	p := s.Player()
	y := p.Y
	assert.InDelta(t, 90-fudge, p.Y+p.H, 0.05, "player rests on the floor")

	idle(t, s, 60)
	assert.Equal(t, y, p.Y, "resting contact does not sink")
	assert.Equal(t, 30.0, p.X)
	assert.Zero(t, p.VY)
	assert.True(t, s.Controls().CanFlipY, "floor contact arms the vertical latch")
}

func TestSpikeKills(t *testing.T) {
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "spike", spikeGrid)}}
	s, reg := newSession(t, testConfig(), pack)
	before := reg.Len()

	substepUntil(t, s, tile.ActionKill, 200)

	assert.Equal(t, 1, s.Stats().Deaths)
	assert.Equal(t, StateDying, s.State())
	assert.Equal(t, 60.0, s.Player().Y, "player respawned at the start cell")
	assert.Zero(t, s.Player().VY)
	assert.Equal(t, before, reg.Len(), "reload released the old jobs")
}

func TestConveyorCarriesPlayer(t *testing.T) {
	grid := `
BBBBBBBBBB
B........B
B........B
B........B
B........B
B..P.....B
B>>>>>>>>B
BBBBBBBBBB
`
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "belt", grid)}}
	s, _ := newSession(t, testConfig(), pack)

	idle(t, s, 30)
	p := s.Player()
	assert.Greater(t, p.X, 35.0)
	assert.InDelta(t, 75-fudge, p.Y+p.H, 0.05, "player rides on top of the belt")

	// Standing across a belt seam still moves the player by exactly one
	// push per substep beyond what its velocity carries it.
	strength := s.Config().TileParams().ConveyorStrength
	n := float64(s.Config().Simulation.Substeps)
	for i := range 64 {
		x0, vx, mul := p.X, p.VX, p.MulX
		_, err := s.Substep()
		require.NoError(t, err)
		assert.InDelta(t, strength, p.X-(x0+vx*mul/n), 1e-9, "substep %d", i)
	}
}

func TestWrapFromLeftEdge(t *testing.T) {
	grid := `
BBBBBBBBBB
W........B
W........B
W........B
W........B
W........B
W..P.....B
BBBBBBBBBB
`
	cfg := testConfig()
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "wrap", grid)}}
	s, _ := newSession(t, cfg, pack)

	p := s.Player()
	p.X = -0.05
	p.VX = -1

	want := *p
	want.Integrate([]physics.Environment{cfg.PlayerEnvironment()}, cfg.Simulation.Substeps)

	a, err := s.Substep()
	require.NoError(t, err)
	assert.Equal(t, tile.WrapAction(physics.Right), a)
	assert.Equal(t, StateWrapping, s.State())
	assert.InDelta(t, cfg.WindowW()-tileSize-fudge, p.X, 1e-9)
	assert.Equal(t, 75.0, p.Y)
	assert.Equal(t, want.VX, p.VX, "wrapping keeps velocity")
	assert.Equal(t, 1, s.Stats().Wraps)

	// The new position is clear of the right wall, so nothing fires next.
	a, err = s.Substep()
	require.NoError(t, err)
	assert.Equal(t, tile.None, a)
}

func TestPortalMovesToNeighborScreen(t *testing.T) {
	left := `
BBBBBBBBBB
B........T
B........T
B........T
B........T
B........T
B..P.....T
BBBBBBBBBB
`
	right := `
BBBBBBBBBB
T........B
T........B
T........B
T........B
T........B
T........B
BBBBBBBBBB
`
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "portal", left, right)}}
	s, reg := newSession(t, testConfig(), pack)

	p := s.Player()
	p.X = 120 - p.W + 0.1
	p.VX = 1
	vx := p.VX

	a, err := s.Substep()
	require.NoError(t, err)
	assert.Equal(t, tile.MoveScreenAction(physics.Right), a)
	assert.Equal(t, levels.Coord{Row: 0, Col: 1}, s.ScreenCoord())
	assert.InDelta(t, fudge, p.X, 1e-9, "player enters at the left edge")
	assert.Equal(t, 75.0, p.Y)
	assert.Greater(t, p.VX, 0.9*vx, "velocity is carried across")
	assert.Equal(t, 32, s.Tiles())
	assert.Equal(t, s.Tiles()+1, reg.Len(), "the old screen's jobs were released")
	assert.Equal(t, 1, s.Stats().ScreenMoves)
}

func TestGoalAdvancesAndWrapsPack(t *testing.T) {
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{
		level(t, "one", goalGrid),
		level(t, "two", goalGrid),
	}}
	s, _ := newSession(t, testConfig(), pack, WithStartLevel(1))

	substepUntil(t, s, tile.ActionAdvance, 200)
	assert.Equal(t, 0, s.Level(), "finishing the last level starts over")
	assert.Equal(t, 1, s.Stats().Advances)
	assert.Equal(t, 1, s.Stats().Runs)

	substepUntil(t, s, tile.ActionAdvance, 200)
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 1, s.Stats().Runs)
}

func deathPack(t *testing.T) *levels.Pack {
	death := level(t, "death", goalGrid)
	death.Screens[0][0].Others = []levels.Other{{X: 2, Y: 1, Text: "You died!", Color: "red", Layer: "ui"}}
	return &levels.Pack{
		ID:         "p",
		DeathScene: &death,
		Levels: []levels.Level{
			level(t, "safe", restingGrid),
			level(t, "spike", spikeGrid),
		},
	}
}

func TestDeathSceneReturnsToLevel(t *testing.T) {
	s, reg := newSession(t, testConfig(), deathPack(t), WithStartLevel(1))

	substepUntil(t, s, tile.ActionKill, 200)
	assert.True(t, s.InDeathScene())
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, "death", s.LevelName())

	var text int
	for _, id := range reg.Ordered() {
		if job, _ := reg.Get(id); job.Text == "You died!" {
			text++
		}
	}
	assert.Equal(t, 1, text, "death scene shows its text")

	substepUntil(t, s, tile.ActionAdvance, 200)
	assert.False(t, s.InDeathScene())
	assert.Equal(t, 1, s.Level(), "back to the level the player died in")
	assert.Zero(t, s.Stats().Advances, "leaving the death scene is not a completed level")
	assert.Equal(t, 1, s.Stats().Deaths)
}

func TestDeathSceneRestartPack(t *testing.T) {
	cfg := testConfig()
	cfg.Death.RestartPack = true
	s, _ := newSession(t, cfg, deathPack(t), WithStartLevel(1))

	substepUntil(t, s, tile.ActionKill, 200)
	substepUntil(t, s, tile.ActionAdvance, 200)
	assert.False(t, s.InDeathScene())
	assert.Equal(t, 0, s.Level())
}

func TestFlipperInvertsGravity(t *testing.T) {
	grid := `
BBBBBBBBBB
B........B
B........B
B........B
B........B
B..P.....B
B..F.....B
BBBBBBBBBB
`
	cfg := testConfig()
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "flip", grid)}}
	s, _ := newSession(t, cfg, pack)

	for range 64 {
		_, err := s.Substep()
		require.NoError(t, err)
		if s.Controls().Gravity < 0 {
			break
		}
	}
	require.Equal(t, -1.0, s.Controls().Gravity)
	assert.Equal(t, cfg.Tiles.FlipCooldown, s.Controls().FlipCountdown)
	assert.Less(t, s.Player().VY, 0.0, "player is kicked away from the flipper")

	idle(t, s, 60)
	assert.Less(t, s.Player().Y, 1.0, "player ends up against the ceiling")
	assert.Equal(t, -1.0, s.Controls().Gravity)
}

func TestGravityChangesOnlyWhenGrounded(t *testing.T) {
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "rest", restingGrid)}}
	s, _ := newSession(t, testConfig(), pack)

	in := input.NewSnapshot()
	tap := func(k input.Key) {
		in.Tap(k)
		_, err := s.Frame(in)
		require.NoError(t, err)
		in.EndFrame()
	}

	assert.False(t, s.Controls().CanFlipY, "a fresh player is not grounded")

	idle(t, s, 30)
	tap(input.KeyUp)
	assert.Equal(t, -1.0, s.Controls().Gravity)
	tap(input.KeySpace)

	idle(t, s, 60)
	assert.Less(t, s.Player().Y, 1.0, "player rests against the ceiling")

	tap(input.KeyDown)
	assert.Equal(t, 1.0, s.Controls().Gravity, "ceiling contact allows flipping back")
}

func TestSnapshotDeterminism(t *testing.T) {
	pack := func() *levels.Pack {
		return &levels.Pack{ID: "p", Levels: []levels.Level{
			level(t, "belt", `
BBBBBBBBBB
W........B
W........B
W..~~~...B
W........B
W..P..ZZ.B
W>>>>>>>>B
BBBBBBBBBB
`),
		}}
	}
	script := map[int]input.Key{5: input.KeyLeft, 20: input.KeyUp, 40: input.KeyDown, 60: input.KeyRight, 80: input.KeySpace}

	run := func() Snapshot {
		s, _ := newSession(t, testConfig(), pack())
		in := input.NewSnapshot()
		for f := range 120 {
			if k, ok := script[f]; ok {
				in.Tap(k)
			}
			_, err := s.Frame(in)
			require.NoError(t, err)
			in.EndFrame()
		}
		return s.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	assert.Equal(t, snap1, snap2)
	assert.Equal(t, 120, snap1.Stats.Frames)
	assert.Equal(t, 120*32, snap1.Stats.Substeps)
}

func TestCandidateCacheStaysSmall(t *testing.T) {
	m := telemetry.NewMetrics()
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "rest", restingGrid)}}
	s, _ := newSession(t, testConfig(), pack, WithMetrics(m))

	idle(t, s, 30)
	assert.Less(t, s.Candidates(), s.Tiles(), "the partition filters distant tiles")
	assert.Positive(t, s.Rebuilds())

	rebuilds := s.Rebuilds()
	idle(t, s, 30)
	assert.Equal(t, rebuilds, s.Rebuilds(), "a resting player never rebuilds the cache")
}

func TestMoveScreenLeavesStateOnBadTile(t *testing.T) {
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "two", restingGrid, "BBB\nB.B\nBBB")}}
	s, reg := newSession(t, testConfig(), pack)

	// Bypasses pack validation, which already ran in New.
	pack.Levels[0].Screens[0][1].Others = []levels.Other{{X: 1, Y: 1, Text: "x", Color: "purple"}}
	before := s.Snapshot()
	jobs := reg.Len()

	require.Error(t, s.MoveScreen(physics.Right))
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, jobs, reg.Len(), "no tiles were instantiated")

	pack.Levels[0].Screens[0][0].Others = pack.Levels[0].Screens[0][1].Others
	require.Error(t, s.Restart())
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, jobs, reg.Len(), "the level was not torn down")
}

func TestFramePanicsWithoutPlayerJob(t *testing.T) {
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "rest", restingGrid)}}
	s, reg := newSession(t, testConfig(), pack)

	job := s.Player().Job
	reg.Remove(job)
	assert.PanicsWithValue(t, fmt.Sprintf("physics: render job %s is not registered", job), func() {
		_, _ = s.Frame(input.NewSnapshot())
	})
	assert.Zero(t, s.Stats().Frames)
}

func TestRestartReloadsLevel(t *testing.T) {
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{level(t, "rest", restingGrid)}}
	s, reg := newSession(t, testConfig(), pack)
	idle(t, s, 10)

	require.NoError(t, s.Restart())
	assert.Equal(t, 75.0, s.Player().Y)
	assert.Equal(t, s.Tiles()+1, reg.Len())
	assert.Zero(t, s.Stats().Deaths)
}
