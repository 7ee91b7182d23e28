package session

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-platformer/internal/input"
	"github.com/vovakirdan/tui-platformer/internal/partition"
	"github.com/vovakirdan/tui-platformer/internal/tile"
)

// FrameResult summarizes one rendered frame.
type FrameResult struct {
	Frame  int
	Action tile.Action // last level-flow effect performed, if any
	State  State       // state after the last substep
}

// Frame reads this frame's input once, then runs the configured number of
// substeps. Level changes may happen mid-frame; the remaining substeps run
// on the new level.
func (s *Session) Frame(in input.Reader) (FrameResult, error) {
	job, ok := s.jobs.Get(s.player.Job)
	if !ok {
		panic(fmt.Sprintf("physics: render job %s is not registered", s.player.Job))
	}
	s.stats.Frames++
	s.metrics.Frame()
	s.controls.Update(in, job)

	res := FrameResult{Frame: s.stats.Frames}
	for range s.cfg.Simulation.Substeps {
		a, err := s.Substep()
		if err != nil {
			return res, err
		}
		if a.Kind != tile.ActionNone {
			res.Action = a
		}
	}
	res.State = s.state
	return res, nil
}

// Substep advances the simulation by one substep: integrate the player,
// apply controls, resync its partition, resolve every touched tile in
// priority order and perform at most one level-flow effect.
func (s *Session) Substep() (tile.Action, error) {
	s.state = StatePlaying
	s.stats.Substeps++

	p := s.player
	p.Integrate(s.env, s.cfg.Simulation.Substeps)
	s.controls.Apply(p, s.ctlParams)
	s.resyncPlayer()

	candidates := s.candidates()
	s.metrics.Substep(len(candidates))

	contact := tile.Contact{Player: p, Controls: s.controls, Params: &s.tileParams}
	s.actions = s.actions[:0]
	for _, id := range candidates {
		t := s.tiles[id]
		if touch := t.Collides(p.Bounds(), &s.tileParams); touch.Any() {
			s.actions = t.Touch(touch, &contact, s.actions)
		}
	}
	contact.Settle()
	// Behaviors may have nudged the player.
	p.Sync(s.jobs)

	a := tile.Reduce(s.actions)
	var err error
	switch a.Kind {
	case tile.ActionKill:
		err = s.Die()
	case tile.ActionAdvance:
		err = s.Advance()
	case tile.ActionMoveScreen:
		err = s.MoveScreen(a.Dir)
	case tile.ActionWrap:
		s.Wrap(a.Dir)
	}
	return a, err
}

// candidates returns the cached candidates ordered by behavior priority,
// then id. The order is recomputed only after the index rebuilds its cache.
func (s *Session) candidates() []partition.ID {
	if s.orderedAt == s.index.Rebuilds() {
		return s.ordered
	}
	s.ordered = append(s.ordered[:0], s.index.Candidates()...)
	sort.SliceStable(s.ordered, func(i, j int) bool {
		pi := s.tiles[s.ordered[i]].Behavior.Priority()
		pj := s.tiles[s.ordered[j]].Behavior.Priority()
		if pi != pj {
			return pi < pj
		}
		return s.ordered[i] < s.ordered[j]
	})
	s.orderedAt = s.index.Rebuilds()
	return s.ordered
}
