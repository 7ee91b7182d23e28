package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/input"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/render"
	"github.com/vovakirdan/tui-platformer/internal/session"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T) *Model {
	t.Helper()
	g, err := levels.ParseGrid(`
BBBBBBBBBB
B........B
B........B
B..P.....B
BBBBBBBBBB
`)
	require.NoError(t, err)
	pack := &levels.Pack{ID: "p", Levels: []levels.Level{{ID: "room", Name: "Room", Screens: [][]levels.Grid{{g}}}}}

	cfg := config.DefaultConfig()
	cfg.Screen.Columns = 8
	cfg.Screen.Rows = 3
	reg := render.NewRegistry()
	s, err := session.New(cfg, pack, reg)
	require.NoError(t, err)
	return NewModel(s, reg, Options{})
}

func TestSimKey(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want input.Key
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, input.KeyLeft},
		{runes("d"), input.KeyRight},
		{tea.KeyMsg{Type: tea.KeyUp}, input.KeyUp},
		{runes("s"), input.KeyDown},
		{tea.KeyMsg{Type: tea.KeySpace}, input.KeySpace},
	}
	for _, tc := range tests {
		got, ok := km.SimKey(tc.msg)
		assert.True(t, ok, tc.msg.String())
		assert.Equal(t, tc.want, got, tc.msg.String())
	}

	_, ok := km.SimKey(runes("p"))
	assert.False(t, ok)
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, time.Second/DefaultTickRate, tickInterval(0, 0))
	assert.Equal(t, 100*time.Millisecond, tickInterval(10, 0))
	assert.Equal(t, 50*time.Millisecond, tickInterval(60, 50*time.Millisecond))
}

func TestModelTickRunsFrames(t *testing.T) {
	m := newModel(t)

	_, cmd := m.Update(TickMsg(time.Now()))
	assert.NotNil(t, cmd, "tick schedules the next tick")
	m.Update(TickMsg(time.Now()))
	assert.Equal(t, 2, m.session.Stats().Frames)
}

func TestModelKeyTapsReachSession(t *testing.T) {
	m := newModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(TickMsg(time.Now()))
	assert.Equal(t, 1.0, m.session.Controls().Horizontal)

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(TickMsg(time.Now()))
	assert.Zero(t, m.session.Controls().Horizontal)
}

func TestModelPause(t *testing.T) {
	m := newModel(t)

	m.Update(runes("p"))
	assert.True(t, m.Paused())
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(TickMsg(time.Now()))
	assert.Zero(t, m.session.Stats().Frames, "paused model does not step")
	assert.Contains(t, m.View(), "PAUSED")

	m.Update(runes("p"))
	m.Update(TickMsg(time.Now()))
	assert.Equal(t, 1, m.session.Stats().Frames)
	assert.Zero(t, m.session.Controls().Horizontal, "keys pressed while paused are dropped")
}

func TestModelRestart(t *testing.T) {
	m := newModel(t)
	for range 5 {
		m.Update(TickMsg(time.Now()))
	}
	y := m.session.Player().Y
	require.NotEqual(t, 30.0, y)

	m.Update(runes("r"))
	assert.Equal(t, 30.0, m.session.Player().Y)
	assert.NoError(t, m.Err())
}

func TestModelViewAndQuit(t *testing.T) {
	m := newModel(t)
	m.Update(TickMsg(time.Now()))

	view := m.View()
	assert.Contains(t, view, "Level 1: Room")
	assert.Contains(t, view, "gravity ↓")
	assert.Contains(t, view, "quit")

	_, cmd := m.Update(runes("q"))
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestRenderScreen(t *testing.T) {
	reg := render.NewRegistry()
	reg.Add(render.RectJob(0, 0, 15, 15, '#', core.ColorRed), render.LayerContent)

	scr := core.NewScreen(4, 2)
	render.Rasterize(scr, reg, render.NewView(15))
	out := RenderScreen(scr)

	assert.Contains(t, out, "##")
	assert.Equal(t, 2, strings.Count(out, "\n")+1)
	assert.Contains(t, RenderPlayfield(scr), "╭")
}

func TestMenuSelect(t *testing.T) {
	items := []MenuItem{
		{Source: SourceBuiltin, Ref: "classic", Title: "Classic", Levels: 3},
		{Source: SourceLibrary, Ref: "abc", Title: "Mine", Levels: 1},
	}
	var model tea.Model = NewMenuModel(items, 80, 24)
	assert.Contains(t, model.View(), "Classic")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)

	m := model.(MenuModel)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "abc", m.Selected().Ref)
	assert.False(t, m.IsQuitting())
}

func TestMenuQuitAndEmpty(t *testing.T) {
	var model tea.Model = NewMenuModel(nil, 80, 24)
	assert.Contains(t, model.View(), "No packs available")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, model.(MenuModel).Selected())

	model, _ = model.Update(runes("q"))
	assert.True(t, model.(MenuModel).IsQuitting())
}
