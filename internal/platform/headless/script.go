// Package headless runs a session without a terminal, feeding it scripted
// key taps. It backs the sim command and long-running tests.
package headless

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/input"
)

// Script maps a frame number to the keys tapped on that frame.
type Script map[int][]input.Key

// ParseScript reads a comma-separated list of frame:key taps, for example
// "0:right,40:up,90:space". Several keys may share a frame.
func ParseScript(s string) (Script, error) {
	script := make(Script)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		frameStr, keyStr, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("headless: script entry %q: expected frame:key", item)
		}
		frame, err := strconv.Atoi(strings.TrimSpace(frameStr))
		if err != nil || frame < 0 {
			return nil, fmt.Errorf("headless: script entry %q: bad frame", item)
		}
		key, ok := input.ParseKey(strings.ToLower(strings.TrimSpace(keyStr)))
		if !ok {
			return nil, fmt.Errorf("headless: script entry %q: unknown key %q", item, keyStr)
		}
		script[frame] = append(script[frame], key)
	}
	return script, nil
}

// String renders the script back in its text form, frames ascending.
func (s Script) String() string {
	frames := make([]int, 0, len(s))
	for f := range s {
		frames = append(frames, f)
	}
	sort.Ints(frames)

	var parts []string
	for _, f := range frames {
		for _, k := range s[f] {
			parts = append(parts, strconv.Itoa(f)+":"+k.String())
		}
	}
	return strings.Join(parts, ",")
}

// Last returns the highest frame with a tap, or -1 for an empty script.
func (s Script) Last() int {
	last := -1
	for f := range s {
		last = max(last, f)
	}
	return last
}
