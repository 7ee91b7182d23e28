package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <path>...",
	Short: "Import pack files into the library",
	Long: `Validates YAML pack files and stores them in the library.
A directory imports every pack file under it; one invalid file rejects
the whole directory. Importing a pack whose id is already stored
replaces it.

Examples:
  platformer import ./my-pack.yaml
  platformer import ./packs`,
	Args: cobra.MinimumNArgs(1),
	Run:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <pack> [file]",
	Short: "Write a pack as YAML",
	Long: `Writes a built-in or library pack as YAML, to a file or stdout.
Handy as a starting point for a new pack.

Examples:
  platformer export classic > classic.yaml
  platformer export my-pack ./backup.yaml`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runExport,
}

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "Manage the pack library",
}

var packsRemoveCmd = &cobra.Command{
	Use:   "remove <ref>",
	Short: "Remove a pack from the library",
	Long:  `Removes a stored pack by its pack id or library id.`,
	Args:  cobra.ExactArgs(1),
	Run:   runPacksRemove,
}

func init() {
	packsCmd.AddCommand(packsRemoveCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImport(cmd *cobra.Command, args []string) {
	logger, closeLog, err := openLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openStoreQuiet(logger)
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	failed := 0
	for _, path := range args {
		ids, err := importPath(store, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			failed++
			continue
		}
		for _, id := range ids {
			fmt.Printf("Imported %s as %s\n", path, id)
		}
	}
	if failed > 0 {
		store.Close()
		os.Exit(1)
	}
}

// importPath stores the pack file at path, or every pack under it when it
// is a directory. Returns the library ids.
func importPath(store *storage.Store, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		id, err := store.SavePack(path, data)
		if err != nil {
			return nil, err
		}
		return []string{id}, nil
	}

	packs, err := levels.NewLoader(path).LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(packs))
	for i := range packs {
		data, err := levels.Marshal(&packs[i])
		if err != nil {
			return ids, err
		}
		id, err := store.SavePack(filepath.Join(path, packs[i].ID), data)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runExport(cmd *cobra.Command, args []string) {
	store := openStoreQuiet(log.New(io.Discard))
	if store != nil {
		defer store.Close()
	}

	data, err := exportPack(args[0], store)
	if err != nil {
		fail("%v", err)
	}
	if len(args) == 1 {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		fail("%v", err)
	}
}

// exportPack encodes the pack ref resolves to.
func exportPack(ref string, store *storage.Store) ([]byte, error) {
	p, err := resolvePack(ref, packSource{}, store)
	if err != nil {
		return nil, err
	}
	return levels.Marshal(p)
}

func runPacksRemove(cmd *cobra.Command, args []string) {
	logger, closeLog, err := openLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openStoreQuiet(logger)
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if err := store.DeletePack(args[0]); err != nil {
		store.Close()
		fail("%v", err)
	}
	fmt.Printf("Removed %s\n", args[0])
}
