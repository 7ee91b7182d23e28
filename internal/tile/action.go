// Package tile resolves what happens when the player touches a tile.
//
// Each tile carries a Behavior. Touching it on a side runs OnTouch, which
// may change the player's velocity, position or control latches directly
// and returns an Action for the session to act on once every touch of the
// substep has been evaluated.
package tile

import "github.com/vovakirdan/tui-platformer/internal/physics"

// ActionKind is the kind of level-flow effect a touch asks for.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionKill
	ActionAdvance
	ActionWrap
	ActionMoveScreen
)

// String returns a human-readable name for the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionKill:
		return "kill"
	case ActionAdvance:
		return "advance"
	case ActionWrap:
		return "wrap"
	case ActionMoveScreen:
		return "move_screen"
	default:
		return "unknown"
	}
}

// rank orders terminal actions; lower wins.
func (k ActionKind) rank() int {
	switch k {
	case ActionKill:
		return 0
	case ActionAdvance:
		return 1
	case ActionWrap:
		return 2
	case ActionMoveScreen:
		return 3
	default:
		return 4
	}
}

// Action is a touch result. For ActionWrap, Dir is the side of the wrap
// tile that was touched; for ActionMoveScreen it is the travel direction.
type Action struct {
	Kind ActionKind
	Dir  physics.Direction
}

// None is the empty action.
var None = Action{}

// KillAction returns the action that restarts the player.
func KillAction() Action { return Action{Kind: ActionKill} }

// AdvanceAction returns the action that completes the level.
func AdvanceAction() Action { return Action{Kind: ActionAdvance} }

// WrapAction returns a wrap action for the touched side.
func WrapAction(side physics.Direction) Action { return Action{Kind: ActionWrap, Dir: side} }

// MoveScreenAction returns a screen change toward dir.
func MoveScreenAction(dir physics.Direction) Action { return Action{Kind: ActionMoveScreen, Dir: dir} }

// String returns a debug representation of the action.
func (a Action) String() string {
	switch a.Kind {
	case ActionWrap, ActionMoveScreen:
		return a.Kind.String() + "(" + a.Dir.String() + ")"
	default:
		return a.Kind.String()
	}
}

// Reduce picks the single effect to perform from a substep's actions:
// kill beats advance, advance beats wrap, wrap beats a screen move.
// Among equal kinds the earliest action wins.
func Reduce(actions []Action) Action {
	best := None
	for _, a := range actions {
		if a.Kind.rank() < best.Kind.rank() {
			best = a
		}
	}
	return best
}
