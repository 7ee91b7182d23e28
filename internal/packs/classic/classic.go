// Package classic is the built-in level pack. It registers itself with
// the pack registry on import.
package classic

import (
	_ "embed"

	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// ID is the registry id of the pack.
const ID = "classic"

//go:embed classic.yaml
var packYAML []byte

func init() {
	registry.Register(ID, New)
}

// New parses a fresh copy of the pack.
func New() (*levels.Pack, error) {
	p, err := levels.Parse(packYAML)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
