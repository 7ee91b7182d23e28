package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start interactive pack picker",
	Long: `Opens an interactive menu listing built-in and imported packs.
Use arrow keys to navigate and Enter to play.`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) {
	logger, closeLog, err := openLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openStoreQuiet(logger)
	if store != nil {
		defer store.Close()
	}

	// Main loop: menu -> play -> menu
	for {
		items, err := menuItems(store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		rc := runtimeConfig()
		result, err := tui.RunMenu(items, rc.ScreenW, rc.ScreenH)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
			break
		}
		if result.Quit || result.Item == nil {
			break
		}

		var src *storage.Store
		if result.Item.Source == tui.SourceLibrary {
			src = store
		}
		pack, err := resolvePack(result.Item.Ref, packSource{}, src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading pack: %v\n", err)
			continue
		}
		if err := playPack(pack, 0, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running pack: %v\n", err)
		}

		// Loop back to menu
	}
}

// menuItems lists built-in packs followed by library packs.
func menuItems(store *storage.Store) ([]tui.MenuItem, error) {
	var items []tui.MenuItem
	for _, p := range registry.List() {
		items = append(items, tui.MenuItem{
			Source: tui.SourceBuiltin,
			Ref:    p.ID,
			Title:  p.Title,
			Levels: p.Levels,
		})
	}
	if store == nil {
		return items, nil
	}

	entries, err := store.ListPacks()
	if err != nil {
		return items, err
	}
	for _, e := range entries {
		items = append(items, tui.MenuItem{
			Source: tui.SourceLibrary,
			Ref:    e.ID,
			Title:  e.Name,
			Levels: e.Levels,
		})
	}
	return items, nil
}
