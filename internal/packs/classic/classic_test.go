package classic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/input"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/render"
	"github.com/vovakirdan/tui-platformer/internal/session"
)

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))

	var info registry.PackInfo
	for _, i := range registry.List() {
		if i.ID == ID {
			info = i
		}
	}
	assert.Equal(t, "Classic", info.Title)
	assert.Equal(t, 3, info.Levels)
}

func TestNewReturnsFreshCopies(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	b, err := New()
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	a.Levels[0].Screens[0][0].Cells[1][1] = levels.KindNone
	assert.Equal(t, levels.KindWrap, b.Levels[0].Screens[0][0].Cells[1][1])
}

func TestUsesEveryPlayableKind(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	seen := make(map[levels.Kind]bool)
	for _, lvl := range append(p.Levels, *p.DeathScene) {
		for _, row := range lvl.Screens {
			for _, g := range row {
				for _, cells := range g.Cells {
					for _, k := range cells {
						seen[k] = true
					}
				}
			}
		}
	}
	for _, k := range levels.Kinds() {
		if k.Implemented() {
			assert.Truef(t, seen[k], "pack never uses %s", k)
		}
	}
	assert.False(t, seen[levels.KindEnemy])
}

func TestDeathSceneText(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	require.NotNil(t, p.DeathScene)

	others := p.DeathScene.Screens[0][0].Others
	require.NotEmpty(t, others)
	assert.Equal(t, "You died!", others[0].Text)
	assert.Equal(t, "ui", others[0].Layer)
}

func TestEveryLevelLoadsAndRuns(t *testing.T) {
	cfg := config.DefaultConfig()
	p, err := New()
	require.NoError(t, err)

	for i := range p.Levels {
		reg := render.NewRegistry()
		s, err := session.New(cfg, p, reg, session.WithStartLevel(i))
		require.NoError(t, err, "level %d", i)

		in := input.NewSnapshot()
		for range 60 {
			_, err := s.Frame(in)
			require.NoError(t, err)
			in.EndFrame()
		}
		assert.Equal(t, s.Tiles()+1, reg.Len(), "level %d leaked jobs", i)
	}
}
