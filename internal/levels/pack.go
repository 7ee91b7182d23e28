package levels

import (
	"errors"
	"fmt"
)

// ErrNoStart is returned when a level's start screen has no StartingLocation.
var ErrNoStart = errors.New("levels: start screen has no starting location")

// ErrExtraStart is returned when a level has more than one StartingLocation.
var ErrExtraStart = errors.New("levels: more than one starting location")

// ErrInvalidOther is returned for a freeform tile the game cannot build.
var ErrInvalidOther = errors.New("levels: invalid freeform tile")

// Pack is an ordered set of levels plus an optional death scene the player
// is sent to after dying.
type Pack struct {
	ID         string
	Name       string
	DeathScene *Level
	Levels     []Level
}

// Validate checks every level in the pack. A pack that fails must not be played.
func (p *Pack) Validate() error {
	if len(p.Levels) == 0 {
		return fmt.Errorf("levels: pack %q has no levels", p.ID)
	}
	seen := make(map[string]bool, len(p.Levels))
	for i := range p.Levels {
		lvl := &p.Levels[i]
		if lvl.ID != "" {
			if seen[lvl.ID] {
				return fmt.Errorf("levels: pack %q has duplicate level id %q", p.ID, lvl.ID)
			}
			seen[lvl.ID] = true
		}
		if err := lvl.Validate(); err != nil {
			return fmt.Errorf("pack %q level %d: %w", p.ID, i, err)
		}
	}
	if p.DeathScene != nil {
		if err := p.DeathScene.Validate(); err != nil {
			return fmt.Errorf("pack %q death scene: %w", p.ID, err)
		}
	}
	return nil
}

// Provider yields a level pack. Implementations may read files, a
// database or built-in data.
type Provider interface {
	Pack() (*Pack, error)
}

// Static is a Provider over an in-memory pack.
type Static struct {
	P *Pack
}

// Pack validates and returns the wrapped pack.
func (s Static) Pack() (*Pack, error) {
	if s.P == nil {
		return nil, fmt.Errorf("levels: no pack")
	}
	if err := s.P.Validate(); err != nil {
		return nil, err
	}
	return s.P, nil
}

// File is a Provider reading a single YAML pack file.
type File struct {
	Path string
}

// Pack loads and validates the file.
func (f File) Pack() (*Pack, error) {
	p, err := NewLoader("").LoadFile(f.Path)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
