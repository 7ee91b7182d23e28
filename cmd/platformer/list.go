package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available packs",
	Long:  `Shows built-in packs and packs imported into the library.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	builtin := registry.List()

	var stored []storage.PackEntry
	if store := openStoreQuiet(log.New(io.Discard)); store != nil {
		entries, err := store.ListPacks()
		store.Close()
		if err != nil {
			fail("%v", err)
		}
		stored = entries
	}

	if len(builtin) == 0 && len(stored) == 0 {
		fmt.Println("No packs available.")
		return
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range builtin {
		maxIDLen = max(maxIDLen, len(p.ID))
	}
	for _, e := range stored {
		maxIDLen = max(maxIDLen, len(e.PackID))
	}

	fmt.Println("Built-in packs:")
	fmt.Println()
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Levels", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "-----")
	for _, p := range builtin {
		fmt.Printf("  %-*s  %-6d  %s\n", maxIDLen, p.ID, p.Levels, p.Title)
	}

	if len(stored) > 0 {
		fmt.Println()
		fmt.Println("Library:")
		fmt.Println()
		fmt.Printf("  %-*s  %-6s  %-24s  %s\n", maxIDLen, "ID", "Levels", "Title", "Imported")
		fmt.Printf("  %-*s  %-6s  %-24s  %s\n", maxIDLen, "--", "------", "-----", "--------")
		for _, e := range stored {
			fmt.Printf("  %-*s  %-6d  %-24s  %s\n", maxIDLen, e.PackID, e.Levels, e.Name, e.CreatedAt.Format("2006-01-02"))
		}
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <id>' to play a pack.")
}
