package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// runtimeConfig reads the terminal size, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// loadConfig loads the physics config and applies --preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// openLogger returns a logger writing to --log, or a silent one. Every
// logger carries a run id so several runs can share a file.
func openLogger() (*log.Logger, func(), error) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          "platformer",
	}).With("run", uuid.NewString()[:8])
	return logger, func() { f.Close() }, nil
}

// packSource selects where resolvePack looks besides the registry.
type packSource struct {
	File string // a single pack file, ignoring ref
	Dir  string // a directory of pack files searched by pack id
}

// resolvePack finds a pack: --file first, then --dir, then the built-in
// registry, then the library. store may be nil.
func resolvePack(ref string, src packSource, store *storage.Store) (*levels.Pack, error) {
	switch {
	case src.File != "":
		return levels.File{Path: src.File}.Pack()
	case src.Dir != "":
		p, err := levels.NewLoader(src.Dir).LoadByID(ref)
		if err != nil {
			return nil, err
		}
		return &p, nil
	case registry.Exists(ref):
		return registry.Provider(ref).Pack()
	case store != nil:
		p, err := store.Provider(ref).Pack()
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("unknown pack %q (run 'platformer list')", ref)
		}
		return p, err
	}
	return nil, fmt.Errorf("unknown pack %q (run 'platformer list')", ref)
}

// openStoreQuiet opens the library, warning instead of failing so
// built-in packs stay playable without it.
func openStoreQuiet(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath, storage.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open pack library: %v\n", err)
		return nil
	}
	return store
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
