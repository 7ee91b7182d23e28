package session

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/render"
	"github.com/vovakirdan/tui-platformer/internal/tile"
)

const playerGlyph = '█'

// LoadLevel tears down everything and starts level i from its start screen.
func (s *Session) LoadLevel(i int) error {
	if i < 0 || i >= len(s.pack.Levels) {
		return fmt.Errorf("session: level %d out of range [0, %d)", i, len(s.pack.Levels))
	}
	if err := s.start(&s.pack.Levels[i]); err != nil {
		return err
	}
	s.levelIndex = i
	s.dead = false
	s.metrics.Level(i)
	s.log.Info("level loaded", "pack", s.pack.ID, "level", i, "name", s.LevelName())
	return nil
}

// Restart reloads the level being played, or the death scene if it is showing.
func (s *Session) Restart() error {
	if s.dead {
		return s.start(s.pack.DeathScene)
	}
	return s.LoadLevel(s.levelIndex)
}

// start tears down the current level and loads lvl fresh: its start
// screen, a new player at the start cell and reset controls. On error the
// current level is left untouched.
func (s *Session) start(lvl *levels.Level) error {
	tiles, err := s.screenTiles(lvl, lvl.Start)
	if err != nil {
		return err
	}
	s.teardownLevel()
	s.level = lvl
	s.screen = lvl.Start
	s.loadScreen(tiles)

	g, _ := lvl.Screen(lvl.Start)
	cell, _ := g.StartCell()
	size := s.cfg.Screen.TileSize
	x, y := s.cellPos(float64(cell.Col), float64(cell.Row))
	w, h := s.cfg.Player.Width*size, s.cfg.Player.Height*size
	job := s.jobs.Add(render.RectJob(x, y, w, h, playerGlyph, core.ColorBrightGreen), render.LayerFront)
	s.player = physics.NewBody(x, y, w, h, job)
	s.controls.Reset()
	s.resyncPlayer()
	return nil
}

// Die sends the player to the death scene, remembering the level to come
// back to. Without a death scene, or when dying inside it, the scene or
// level is simply restarted.
func (s *Session) Die() error {
	s.state = StateDying
	s.stats.Deaths++
	s.metrics.Death()
	s.log.Info("player died", "level", s.levelIndex, "screen", s.screen)

	back := s.levelIndex
	if s.dead {
		back = s.returnTo
	} else if s.cfg.Death.RestartPack {
		back = 0
	}
	if s.pack.DeathScene == nil {
		return s.LoadLevel(back)
	}
	if err := s.start(s.pack.DeathScene); err != nil {
		return err
	}
	s.returnTo = back
	s.dead = true
	return nil
}

// Advance completes the current level. Leaving the death scene returns to
// the level the player died in; finishing the last level starts the pack
// over from the first.
func (s *Session) Advance() error {
	s.state = StateAdvancing
	if s.dead {
		s.log.Info("respawning", "level", s.returnTo)
		return s.LoadLevel(s.returnTo)
	}

	s.stats.Advances++
	s.metrics.Advance()
	next := s.levelIndex + 1
	if next >= len(s.pack.Levels) {
		next = 0
		s.stats.Runs++
		s.log.Info("pack completed", "pack", s.pack.ID, "runs", s.stats.Runs)
	}
	return s.LoadLevel(next)
}

// MoveScreen swaps in the neighboring sub-screen in direction dir and
// places the player just inside the edge it enters through. Velocity is kept.
func (s *Session) MoveScreen(dir physics.Direction) error {
	next := s.level.Neighbor(s.screen, dir)
	tiles, err := s.screenTiles(s.level, next)
	if err != nil {
		return err
	}
	s.state = StateScrolling
	s.stats.ScreenMoves++
	s.metrics.ScreenMove()

	s.teardownScreen()
	s.screen = next
	s.loadScreen(tiles)
	s.placeAtEdge(dir.Opposite())
	s.log.Info("screen moved", "dir", dir, "screen", s.screen)
	return nil
}

// Wrap teleports the player to the far edge of the same sub-screen. side
// is the side of the wrap tile that was touched, so touching a tile's
// right side sends the player to the right edge.
func (s *Session) Wrap(side physics.Direction) {
	s.state = StateWrapping
	s.stats.Wraps++
	s.metrics.Wrap()
	s.placeAtEdge(side)
	s.log.Debug("wrapped", "side", side, "x", s.player.X, "y", s.player.Y)
}

// placeAtEdge moves the player just inside the window edge on side edge,
// inset by one tile plus the tolerance margin on the far edges.
func (s *Session) placeAtEdge(edge physics.Direction) {
	size, f := s.cfg.Screen.TileSize, s.tileParams.Fudge
	p := s.player
	switch edge {
	case physics.Left:
		p.X = f
	case physics.Right:
		p.X = s.cfg.WindowW() - size - f
	case physics.Up:
		p.Y = f
	case physics.Down:
		p.Y = s.cfg.WindowH() - size - f
	}
	s.resyncPlayer()
}

// resyncPlayer writes the player's bounds to its job and refreshes its partition.
func (s *Session) resyncPlayer() {
	s.player.Sync(s.jobs)
	if s.index.SetPlayer(s.grid.For(s.player.Bounds())) {
		s.metrics.Rebuild()
		s.log.Debug("candidate cache rebuilt", "partition", s.index.Player(), "candidates", len(s.index.Candidates()))
	}
}

// cellPos converts a grid position in tiles to world units.
func (s *Session) cellPos(col, row float64) (float64, float64) {
	size, off := s.cfg.Screen.TileSize, s.cfg.Screen.TileOffset
	return (col + off) * size, (row + off) * size
}

type placement struct {
	tmpl tile.Template
	x, y float64
}

// screenTiles resolves the template and position of every tile on screen
// at of lvl without touching the session.
func (s *Session) screenTiles(lvl *levels.Level, at levels.Coord) ([]placement, error) {
	g, ok := lvl.Screen(at)
	if !ok {
		return nil, fmt.Errorf("session: level %q has no screen (%d,%d)", lvl.ID, at.Row, at.Col)
	}
	var out []placement
	for r, row := range g.Cells {
		for c, kind := range row {
			tmpl, ok := tile.TemplateFor(kind)
			if !ok {
				continue
			}
			x, y := s.cellPos(float64(c), float64(r))
			out = append(out, placement{tmpl, x, y})
		}
	}
	for i, o := range g.Others {
		tmpl, err := tile.FromOther(o)
		if err != nil {
			return nil, fmt.Errorf("session: level %q other %d: %w", lvl.ID, i, err)
		}
		x, y := s.cellPos(o.X, o.Y)
		out = append(out, placement{tmpl, x, y})
	}
	return out, nil
}

// loadScreen instantiates tiles and registers them with the partition index.
func (s *Session) loadScreen(tiles []placement) {
	size := s.cfg.Screen.TileSize
	for _, pl := range tiles {
		s.addTile(pl.tmpl.Instantiate(pl.x, pl.y, size, s.jobs))
	}
}

func (s *Session) addTile(t *tile.Tile) {
	t.Partition = s.index.Add(s.grid.For(t.Body.Bounds()))
	s.tiles[t.Partition] = t
}

// teardownScreen releases every tile of the current sub-screen.
func (s *Session) teardownScreen() {
	for _, t := range s.tiles {
		s.jobs.Remove(t.Body.Job)
	}
	clear(s.tiles)
	s.index.Clear()
	s.ordered = s.ordered[:0]
	s.orderedAt = -1
}

// teardownLevel releases the tiles and the player.
func (s *Session) teardownLevel() {
	s.teardownScreen()
	if s.player != nil {
		s.jobs.Remove(s.player.Job)
		s.player = nil
	}
}
