// Package levels is the level-data provider: tile-kind grids, multi-screen
// levels and level packs, plus loading them from YAML files.
package levels

import (
	"errors"
	"fmt"
)

// ErrUnimplementedKind is returned when a level uses a tile kind the
// simulation cannot play. Such levels must not load.
var ErrUnimplementedKind = errors.New("levels: unimplemented tile kind")

// Kind is the closed set of tile kinds a grid cell can hold.
type Kind uint8

const (
	KindNone Kind = iota
	KindBlock
	KindSpike
	KindEnemy
	KindGoal
	KindStart
	KindTransition
	KindWrap
	KindSticky
	KindConveyorLeft
	KindConveyorRight
	KindSlime
	KindWater
	KindFlipper
	kindCount
)

var kindRunes = [kindCount]rune{
	KindNone:          '.',
	KindBlock:         'B',
	KindSpike:         'S',
	KindEnemy:         'E',
	KindGoal:          'G',
	KindStart:         'P',
	KindTransition:    'T',
	KindWrap:          'W',
	KindSticky:        'K',
	KindConveyorLeft:  '<',
	KindConveyorRight: '>',
	KindSlime:         'Z',
	KindWater:         '~',
	KindFlipper:       'F',
}

var kindNames = [kindCount]string{
	KindNone:          "none",
	KindBlock:         "block",
	KindSpike:         "spike",
	KindEnemy:         "enemy",
	KindGoal:          "goal",
	KindStart:         "start",
	KindTransition:    "transition",
	KindWrap:          "wrap",
	KindSticky:        "sticky",
	KindConveyorLeft:  "conveyor_left",
	KindConveyorRight: "conveyor_right",
	KindSlime:         "slime",
	KindWater:         "water",
	KindFlipper:       "flipper",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, kindCount)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// ParseKind maps a grid character to its kind. '_' and ' ' also read as empty.
func ParseKind(r rune) (Kind, error) {
	switch r {
	case '_', ' ':
		return KindNone, nil
	}
	for k, kr := range kindRunes {
		if kr == r {
			return Kind(k), nil
		}
	}
	return KindNone, fmt.Errorf("levels: unknown tile character %q", r)
}

// ParseKindName maps a kind's name back to the kind.
func ParseKindName(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return KindNone, fmt.Errorf("levels: unknown tile kind %q", s)
}

// Rune returns the grid character for the kind.
func (k Kind) Rune() rune {
	if k >= kindCount {
		return '?'
	}
	return kindRunes[k]
}

// String returns the kind's name.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Implemented reports whether the simulation can play the kind.
func (k Kind) Implemented() bool {
	return k < kindCount && k != KindEnemy
}
