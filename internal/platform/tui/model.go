package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/input"
	"github.com/vovakirdan/tui-platformer/internal/render"
	"github.com/vovakirdan/tui-platformer/internal/session"
	"github.com/vovakirdan/tui-platformer/internal/tile"
)

// Options configures the play screen.
type Options struct {
	TickRate int           // frames per second, DefaultTickRate if zero
	MinFrame time.Duration // lower bound on the frame interval
	Logger   *log.Logger
}

// Model is the Bubble Tea model for playing a session.
type Model struct {
	session  *session.Session
	jobs     *render.Registry
	screen   *core.Screen
	view     render.View
	in       *input.Snapshot
	keys     KeyMap
	help     help.Model
	log      *log.Logger
	interval time.Duration
	paused   bool
	quitting bool
	err      error
	status   string
}

// NewModel creates a play model over s, which must draw into jobs.
func NewModel(s *session.Session, jobs *render.Registry, opts Options) *Model {
	cfg := s.Config()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Model{
		session:  s,
		jobs:     jobs,
		screen:   core.NewScreen(cfg.Screen.Columns*2, cfg.Screen.Rows),
		view:     render.NewView(cfg.Screen.TileSize),
		in:       input.NewSnapshot(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		log:      logger,
		interval: tickInterval(opts.TickRate, opts.MinFrame),
	}
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages and advances the simulation on ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Movement keys are buffered as taps
// for the next frame; the rest act immediately.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if err := m.session.Restart(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.in = input.NewSnapshot()
		return m, nil
	}

	if k, ok := m.keys.SimKey(msg); ok && !m.paused {
		m.in.Tap(k)
	}
	return m, nil
}

// handleTick runs one simulation frame unless paused.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused {
		return m, tickCmd(m.interval)
	}

	res, err := m.session.Frame(m.in)
	m.in.EndFrame()
	if err != nil {
		m.err = err
		m.log.Error("frame failed", "err", err)
		return m, tea.Quit
	}
	if res.Action.Kind != tile.ActionNone {
		m.status = res.Action.String()
	}

	return m, tickCmd(m.interval)
}

// saveScreenshot saves the current playfield as plain text.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed"
		return
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "screenshot failed"
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.session.Pack().ID, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed"
		return
	}
	m.status = "saved " + path
	m.log.Info("screenshot saved", "path", path)
}

// draw rasterizes the registry onto the screen buffer.
func (m *Model) draw() {
	m.screen.Clear()
	render.Rasterize(m.screen, m.jobs, m.view)
}

// View renders the playfield, HUD and help footer.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()

	var b strings.Builder
	b.WriteString(RenderPlayfield(m.screen))
	b.WriteString("\n")
	b.WriteString(RenderHUD(m.session.Snapshot(), m.session.LevelName(), m.paused))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(hudDimStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

// Err returns the error that stopped the model, if any.
func (m *Model) Err() error {
	return m.err
}

// Paused reports whether the simulation is paused.
func (m *Model) Paused() bool {
	return m.paused
}

// Run starts the Bubble Tea program for the given session.
func Run(s *session.Session, jobs *render.Registry, opts Options) error {
	model := NewModel(s, jobs, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return err
	}
	return model.Err()
}
