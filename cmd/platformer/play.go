package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/packs/classic"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/render"
	"github.com/vovakirdan/tui-platformer/internal/session"
)

var (
	flagPackFile string
	flagPackDir  string
	flagLevel    int
)

var playCmd = &cobra.Command{
	Use:   "play [pack]",
	Short: "Play a level pack",
	Long: `Start playing the specified pack (default: classic).

Controls:
  Left/Right, A/D  - Steer
  Up/Down, W/S     - Thrust; flips gravity while standing
  Space            - Stop vertical thrust
  P/Esc            - Pause
  R                - Restart level
  Ctrl+S           - Save screenshot
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Examples:
  platformer play
  platformer play classic --level 2
  platformer play my-pack --preset easy
  platformer play --file ./my-pack.yaml
  platformer play my-pack --dir ./packs`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPackFile, "file", "", "Play a pack YAML file directly")
	playCmd.Flags().StringVar(&flagPackDir, "dir", "", "Look the pack up in a directory of YAML files")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start on (1-based)")
}

func runPlay(cmd *cobra.Command, args []string) {
	ref := classic.ID
	if len(args) == 1 {
		ref = args[0]
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openStoreQuiet(logger)
	if store != nil {
		defer store.Close()
	}

	pack, err := resolvePack(ref, packSource{File: flagPackFile, Dir: flagPackDir}, store)
	if err != nil {
		fail("%v", err)
	}
	if err := playPack(pack, flagLevel-1, logger); err != nil {
		fail("%v", err)
	}
}

// playPack runs one interactive session over pack, starting at level index.
func playPack(pack *levels.Pack, level int, logger *log.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jobs := render.NewRegistry()
	s, err := session.New(cfg, pack, jobs,
		session.WithLogger(logger),
		session.WithStartLevel(level),
	)
	if err != nil {
		return err
	}

	logger.Info("playing", "pack", pack.ID, "level", level)
	return tui.Run(s, jobs, tui.Options{
		TickRate: runtimeConfig().TickRate,
		MinFrame: time.Duration(cfg.Simulation.MinFrameMs) * time.Millisecond,
		Logger:   logger,
	})
}
