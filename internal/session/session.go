// Package session is the level orchestrator. A Session owns the player,
// the tiles of the current sub-screen and the partition index over them,
// and drives the fixed-substep loop together with every level transition:
// death, level completion, sub-screen scrolling and wrap-around.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/control"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/partition"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/render"
	"github.com/vovakirdan/tui-platformer/internal/telemetry"
	"github.com/vovakirdan/tui-platformer/internal/tile"
)

// Jobs is the render-job registry a session draws through.
type Jobs interface {
	Add(job render.Job, layer render.Layer) render.JobID
	Remove(id render.JobID) (render.Job, bool)
	Get(id render.JobID) (*render.Job, bool)
}

// State is the transition the most recent substep performed.
type State uint8

const (
	StatePlaying State = iota
	StateDying
	StateAdvancing
	StateScrolling
	StateWrapping
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateDying:
		return "dying"
	case StateAdvancing:
		return "advancing"
	case StateScrolling:
		return "scrolling"
	case StateWrapping:
		return "wrapping"
	default:
		return "unknown"
	}
}

// Stats are running totals for the session.
type Stats struct {
	Frames      int
	Substeps    int
	Deaths      int
	Advances    int
	ScreenMoves int
	Wraps       int
	Runs        int // times the last level was completed
}

// Session is one play-through of a level pack.
type Session struct {
	cfg     config.Config
	pack    *levels.Pack
	jobs    Jobs
	log     *log.Logger
	metrics *telemetry.Metrics

	grid       partition.Grid
	index      *partition.Index
	env        []physics.Environment
	ctlParams  control.Params
	tileParams tile.Params
	controls   *control.Controls

	player *physics.Body
	tiles  map[partition.ID]*tile.Tile

	// candidates in evaluation order, refreshed when the index rebuilds
	ordered   []partition.ID
	orderedAt int

	actions []tile.Action

	levelIndex int
	level      *levels.Level
	dead       bool // playing the death scene
	returnTo   int
	screen     levels.Coord
	state      State
	stats      Stats
	startLevel int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Sessions log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithMetrics records counters into m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithStartLevel starts the session on the level at index i.
func WithStartLevel(i int) Option {
	return func(s *Session) {
		s.startLevel = i
	}
}

// New creates a session over pack and loads its start level.
func New(cfg config.Config, pack *levels.Pack, jobs Jobs, opts ...Option) (*Session, error) {
	if pack == nil {
		return nil, errors.New("session: nil pack")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if err := pack.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	grid, err := cfg.PartitionGrid()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		cfg:        cfg,
		pack:       pack,
		jobs:       jobs,
		log:        log.New(io.Discard),
		grid:       grid,
		index:      partition.NewIndex(),
		env:        []physics.Environment{cfg.PlayerEnvironment()},
		ctlParams:  cfg.ControlParams(),
		tileParams: cfg.TileParams(),
		controls:   control.New(),
		tiles:      make(map[partition.ID]*tile.Tile),
		orderedAt:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.startLevel < 0 || s.startLevel >= len(pack.Levels) {
		return nil, fmt.Errorf("session: start level %d out of range [0, %d)", s.startLevel, len(pack.Levels))
	}
	if err := s.LoadLevel(s.startLevel); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the configuration the session runs with.
func (s *Session) Config() *config.Config {
	return &s.cfg
}

// Pack returns the pack being played.
func (s *Session) Pack() *levels.Pack {
	return s.pack
}

// Player returns the player body.
func (s *Session) Player() *physics.Body {
	return s.player
}

// Controls returns the control state.
func (s *Session) Controls() *control.Controls {
	return s.controls
}

// Tiles returns the number of instantiated tiles on the current sub-screen.
func (s *Session) Tiles() int {
	return len(s.tiles)
}

// Candidates returns the number of tiles in the current collision candidate set.
func (s *Session) Candidates() int {
	return len(s.index.Candidates())
}

// Rebuilds returns how many times the candidate cache has been rebuilt.
func (s *Session) Rebuilds() int {
	return s.index.Rebuilds()
}

// Level returns the index of the level being played. While the death scene
// is showing it is the level the player will return to.
func (s *Session) Level() int {
	return s.levelIndex
}

// LevelName returns the display name of the level or scene being played.
func (s *Session) LevelName() string {
	if s.level.Name != "" {
		return s.level.Name
	}
	return s.level.ID
}

// InDeathScene reports whether the death scene is showing.
func (s *Session) InDeathScene() bool {
	return s.dead
}

// ScreenCoord returns the current sub-screen.
func (s *Session) ScreenCoord() levels.Coord {
	return s.screen
}

// State returns the transition performed by the most recent substep.
func (s *Session) State() State {
	return s.state
}

// Stats returns the running totals.
func (s *Session) Stats() Stats {
	return s.stats
}
