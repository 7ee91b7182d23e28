package headless

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/input"
	"github.com/vovakirdan/tui-platformer/internal/session"
	"github.com/vovakirdan/tui-platformer/internal/telemetry"
	"github.com/vovakirdan/tui-platformer/internal/tile"
)

// Runner drives a session frame by frame.
type Runner struct {
	Session  *session.Session
	Script   Script
	Trace    *telemetry.TraceWriter // nil disables tracing
	MinFrame time.Duration          // each frame takes at least this long
	Log      *log.Logger
}

// Summary is the outcome of a run.
type Summary struct {
	Frames  int
	Elapsed time.Duration
	Stats   session.Stats
	Final   session.Snapshot
}

// Run plays up to frames frames. It stops early, returning ctx.Err(), when
// the context is cancelled.
func (r *Runner) Run(ctx context.Context, frames int) (Summary, error) {
	logger := r.Log
	if logger == nil {
		logger = log.New(io.Discard)
	}

	in := input.NewSnapshot()
	start := time.Now()
	sum := Summary{}
	done := func() Summary {
		sum.Elapsed = time.Since(start)
		sum.Stats = r.Session.Stats()
		sum.Final = r.Session.Snapshot()
		return sum
	}

	for f := range frames {
		if err := ctx.Err(); err != nil {
			return done(), err
		}
		frameStart := time.Now()

		for _, k := range r.Script[f] {
			in.Tap(k)
		}
		res, err := r.Session.Frame(in)
		in.EndFrame()
		if err != nil {
			return done(), fmt.Errorf("headless: frame %d: %w", f, err)
		}
		sum.Frames++

		if res.Action.Kind != tile.ActionNone {
			logger.Debug("frame action", "frame", f, "action", res.Action, "level", r.Session.Level())
		}
		if err := r.Trace.Write(r.record(res)); err != nil {
			return done(), err
		}

		if err := r.wait(ctx, frameStart); err != nil {
			return done(), err
		}
	}

	logger.Info("run finished", "frames", sum.Frames, "level", r.Session.Level())
	return done(), nil
}

func (r *Runner) record(res session.FrameResult) telemetry.FrameRecord {
	s := r.Session
	p := s.Player()
	coord := s.ScreenCoord()
	rec := telemetry.FrameRecord{
		Frame:      res.Frame,
		Level:      s.Level(),
		ScreenRow:  coord.Row,
		ScreenCol:  coord.Col,
		X:          p.X,
		Y:          p.Y,
		VX:         p.VX,
		VY:         p.VY,
		Gravity:    s.Controls().Gravity,
		Candidates: s.Candidates(),
	}
	if res.Action.Kind != tile.ActionNone {
		rec.Action = res.Action.String()
	}
	return rec
}

// wait sleeps out the rest of the minimum frame duration.
func (r *Runner) wait(ctx context.Context, frameStart time.Time) error {
	if r.MinFrame <= 0 {
		return nil
	}
	left := r.MinFrame - time.Since(frameStart)
	if left <= 0 {
		return nil
	}
	t := time.NewTimer(left)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
