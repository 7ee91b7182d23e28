// Package registry provides a global registry of built-in level packs.
// Packs register themselves in init() functions, allowing the CLI to
// discover and play them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-platformer/internal/levels"
)

// ErrUnknownPack is returned by Create for an unregistered id.
var ErrUnknownPack = errors.New("registry: unknown pack")

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID     string
	Title  string
	Levels int
}

// Factory builds a fresh copy of a pack. Sessions own the pack they play,
// so every call must return a new value.
type Factory func() (*levels.Pack, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]PackInfo)
	mu        sync.RWMutex
)

// Register adds a pack factory to the registry.
// Typically called from a pack's init() function.
// Panics if the id is taken or the pack does not build and validate.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	p, err := f()
	if err == nil {
		err = p.Validate()
	}
	if err != nil {
		panic(fmt.Sprintf("registry: pack %q is invalid: %v", id, err))
	}

	factories[id] = f
	infos[id] = PackInfo{ID: id, Title: p.Name, Levels: len(p.Levels)}
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a registered pack by its ID.
func Create(id string) (*levels.Pack, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPack, id)
	}
	return f()
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Provider returns a levels.Provider building the registered pack id.
func Provider(id string) levels.Provider {
	return provider(id)
}

type provider string

func (p provider) Pack() (*levels.Pack, error) {
	return Create(string(p))
}
