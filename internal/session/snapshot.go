package session

import "math"

// Snapshot contains the observable simulation state.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Level         int
	DeathScene    bool
	ScreenRow     int
	ScreenCol     int
	X, Y          float64
	VX, VY        float64
	Gravity       float64
	Horizontal    float64
	Vertical      float64
	CanFlipX      bool
	CanFlipY      bool
	FlipCountdown int
	Tiles         int
	State         string
	Stats         Stats
}

// Snapshot returns the current state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	p, c := s.player, s.controls
	return Snapshot{
		Level:         s.levelIndex,
		DeathScene:    s.dead,
		ScreenRow:     s.screen.Row,
		ScreenCol:     s.screen.Col,
		X:             p.X,
		Y:             p.Y,
		VX:            p.VX,
		VY:            p.VY,
		Gravity:       c.Gravity,
		Horizontal:    c.Horizontal,
		Vertical:      c.Vertical,
		CanFlipX:      c.CanFlipX,
		CanFlipY:      c.CanFlipY,
		FlipCountdown: c.FlipCountdown,
		Tiles:         len(s.tiles),
		State:         s.state.String(),
		Stats:         s.stats,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Level)                   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ScreenRow)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ScreenCol)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FlipCountdown)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Tiles)             //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Stats.Substeps)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Stats.Deaths)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Stats.Advances)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Stats.Wraps)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Stats.ScreenMoves) //#nosec G115 -- hash computation

	for _, v := range []float64{snap.X, snap.Y, snap.VX, snap.VY, snap.Gravity, snap.Horizontal, snap.Vertical} {
		h = h*31 + math.Float64bits(v)
	}
	for _, b := range []bool{snap.DeathScene, snap.CanFlipX, snap.CanFlipY} {
		h *= 31
		if b {
			h++
		}
	}
	return h
}
