// platformer is a terminal platformer played on tile-based level packs.
//
// Usage:
//
//	platformer list                 - List built-in and imported packs
//	platformer play [pack]          - Play a pack (default: classic)
//	platformer menu                 - Pick a pack interactively
//	platformer sim <pack>           - Run a pack headless from a key script
//	platformer import <path>...     - Add YAML packs to the library
//	platformer export <pack> [file] - Write a pack as YAML
//	platformer packs remove <ref>   - Remove a pack from the library
//
// Global flags:
//
//	--config <path>  - Physics config YAML (default: search order)
//	--db <path>      - Pack library (default: ~/.platformer/packs.db)
//	--log <path>     - Write a debug log to this file
//	--fps <rate>     - Rendered frames per second (default: 30)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import packs to register them
	_ "github.com/vovakirdan/tui-platformer/internal/packs/classic"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagLogPath string
	flagFPS     int
	flagPreset  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "TUI Platformer - Gravity-flipping platformer in your terminal",
	Long: `TUI Platformer runs tile-based level packs in the terminal.

Available commands:
  list     - Show built-in and imported packs
  play     - Play a pack directly
  menu     - Interactive pack picker
  sim      - Headless run for replays and benchmarks
  import   - Add pack files to the library
  export   - Write a pack as YAML
  packs    - Manage the pack library

Examples:
  platformer play
  platformer play classic --level 2
  platformer play --file ./my-pack.yaml
  platformer import ./my-pack.yaml
  platformer sim classic --frames 600 --script 0:right,40:up --trace run.csv`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to physics config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/packs.db", "Path to pack library database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write a debug log to this file")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Physics preset: easy, normal, hard")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(packsCmd)
}
