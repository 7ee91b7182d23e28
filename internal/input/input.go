// Package input provides the per-frame keyboard and mouse snapshot the
// simulation reads. Front ends feed raw events in; the simulation only asks
// edge-triggered questions about the current frame.
package input

// Key is a logical key code.
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyPause
	KeyRestart
	KeyQuit
	keyCount
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeySpace:
		return "space"
	case KeyPause:
		return "pause"
	case KeyRestart:
		return "restart"
	case KeyQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseKey maps a key name back to its code.
func ParseKey(s string) (Key, bool) {
	for k := Key(0); k < keyCount; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// MouseButton is a bitmask of mouse buttons.
type MouseButton uint8

const (
	MouseLeft MouseButton = 1 << iota
	MouseRight
	MouseMiddle
)

// Reader is the read side of a snapshot, as seen by the simulation.
type Reader interface {
	KeyDown(k Key) bool
	KeyPressed(k Key) bool
	KeyReleased(k Key) bool
	MousePos() (x, y float64)
	MouseDown(mask MouseButton) bool
	MousePressed(mask MouseButton) bool
}

// Snapshot holds the input state for one frame.
type Snapshot struct {
	down     [keyCount]bool
	changed  [keyCount]bool
	taps     [keyCount]bool
	mouse    MouseButton
	mouseChg MouseButton
	mouseX   float64
	mouseY   float64
}

// NewSnapshot creates a snapshot with nothing held.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// UpdateKey records a key transition. Repeated events with the same state
// do not count as an edge.
func (s *Snapshot) UpdateKey(k Key, down bool) {
	if k >= keyCount {
		return
	}
	s.taps[k] = false
	if s.down[k] != down {
		s.down[k] = down
		s.changed[k] = true
	}
}

// Tap records a press and release within one frame, the only thing a
// terminal can report. The key reads as pressed this frame and up afterward.
func (s *Snapshot) Tap(k Key) {
	if k >= keyCount {
		return
	}
	if !s.down[k] {
		s.changed[k] = true
	}
	s.down[k] = true
	s.taps[k] = true
}

// UpdateMouse records the held state of the buttons in mask.
func (s *Snapshot) UpdateMouse(mask MouseButton, down bool) {
	prev := s.mouse & mask
	if down {
		s.mouse |= mask
	} else {
		s.mouse &^= mask
	}
	s.mouseChg |= prev ^ (s.mouse & mask)
}

// SetMousePos records the pointer position in world units.
func (s *Snapshot) SetMousePos(x, y float64) {
	s.mouseX, s.mouseY = x, y
}

// KeyDown reports whether k is held.
func (s *Snapshot) KeyDown(k Key) bool {
	return k < keyCount && s.down[k]
}

// KeyPressed reports whether k went down this frame.
func (s *Snapshot) KeyPressed(k Key) bool {
	return k < keyCount && s.down[k] && s.changed[k]
}

// KeyReleased reports whether k went up this frame.
func (s *Snapshot) KeyReleased(k Key) bool {
	return k < keyCount && !s.down[k] && s.changed[k]
}

// MousePos returns the last pointer position.
func (s *Snapshot) MousePos() (float64, float64) {
	return s.mouseX, s.mouseY
}

// MouseDown reports whether every button in mask is held.
func (s *Snapshot) MouseDown(mask MouseButton) bool {
	return s.mouse&mask == mask
}

// MousePressed reports whether every button in mask went down this frame.
func (s *Snapshot) MousePressed(mask MouseButton) bool {
	return s.mouse&mask == mask && s.mouseChg&mask == mask
}

// MouseReleased reports whether every button in mask went up this frame.
func (s *Snapshot) MouseReleased(mask MouseButton) bool {
	return s.mouse&mask == 0 && s.mouseChg&mask == mask
}

// EndFrame clears the edge flags and releases tapped keys. The release of
// a tap produces no edge.
func (s *Snapshot) EndFrame() {
	for k := range s.changed {
		s.changed[k] = false
		if s.taps[k] {
			s.down[k] = false
			s.taps[k] = false
		}
	}
	s.mouseChg = 0
}
