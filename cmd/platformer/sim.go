package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/headless"
	"github.com/vovakirdan/tui-platformer/internal/render"
	"github.com/vovakirdan/tui-platformer/internal/session"
	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

var (
	flagFrames   int
	flagScript   string
	flagTrace    string
	flagMetrics  string
	flagRealtime bool
)

var simCmd = &cobra.Command{
	Use:   "sim <pack>",
	Short: "Run a pack without a terminal",
	Long: `Runs a pack headless for a fixed number of frames, tapping keys from
a script. Useful for replays, regression checks and benchmarks.

The script is a comma-separated list of frame:key entries. Keys are
left, right, up, down and space; several keys may share a frame.

Examples:
  platformer sim classic --frames 300
  platformer sim classic --script 0:right,45:up,90:space --trace run.csv
  platformer sim classic --frames 3000 --metrics platformer.prom`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 600, "Frames to run")
	simCmd.Flags().StringVar(&flagScript, "script", "", "Key script (frame:key,...)")
	simCmd.Flags().StringVar(&flagTrace, "trace", "", "Write a per-frame CSV trace to this file")
	simCmd.Flags().StringVar(&flagMetrics, "metrics", "", "Write Prometheus metrics to this file when done")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Run at --fps instead of as fast as possible")
	simCmd.Flags().StringVar(&flagPackFile, "file", "", "Run a pack YAML file directly")
	simCmd.Flags().StringVar(&flagPackDir, "dir", "", "Look the pack up in a directory of YAML files")
	simCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start on (1-based)")
}

func runSim(cmd *cobra.Command, args []string) {
	logger, closeLog, err := openLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openStoreQuiet(logger)
	if store != nil {
		defer store.Close()
	}

	pack, err := resolvePack(args[0], packSource{File: flagPackFile, Dir: flagPackDir}, store)
	if err != nil {
		fail("%v", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	script, err := headless.ParseScript(flagScript)
	if err != nil {
		fail("%v", err)
	}

	var metrics *telemetry.Metrics
	if flagMetrics != "" {
		metrics = telemetry.NewMetrics()
	}

	s, err := session.New(cfg, pack, render.NewRegistry(),
		session.WithLogger(logger),
		session.WithMetrics(metrics),
		session.WithStartLevel(flagLevel-1),
	)
	if err != nil {
		fail("%v", err)
	}

	trace, err := telemetry.CreateTrace(flagTrace)
	if err != nil {
		fail("%v", err)
	}

	runner := &headless.Runner{
		Session: s,
		Script:  script,
		Trace:   trace,
		Log:     logger,
	}
	if flagRealtime {
		runner.MinFrame = time.Second / time.Duration(runtimeConfig().TickRate)
	}
	if ms := cfg.Simulation.MinFrameMs; ms > 0 {
		runner.MinFrame = max(runner.MinFrame, time.Duration(ms)*time.Millisecond)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("sim starting", "pack", pack.ID, "frames", flagFrames, "script", script.String())
	sum, runErr := runner.Run(ctx, flagFrames)

	if err := trace.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	if err := metrics.WriteTextfile(flagMetrics); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	printSummary(os.Stdout, sum)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fail("%v", runErr)
	}
}

func printSummary(w io.Writer, sum headless.Summary) {
	fin := sum.Final
	fmt.Fprintf(w, "Frames:       %d (%s)\n", sum.Frames, sum.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Level:        %d, screen %d,%d\n", fin.Level+1, fin.ScreenRow, fin.ScreenCol)
	fmt.Fprintf(w, "Player:       x=%.2f y=%.2f vx=%.3f vy=%.3f\n", fin.X, fin.Y, fin.VX, fin.VY)
	fmt.Fprintf(w, "Gravity:      %+.0f\n", fin.Gravity)
	fmt.Fprintf(w, "Deaths:       %d\n", sum.Stats.Deaths)
	fmt.Fprintf(w, "Advances:     %d (runs %d)\n", sum.Stats.Advances, sum.Stats.Runs)
	fmt.Fprintf(w, "Screen moves: %d, wraps %d\n", sum.Stats.ScreenMoves, sum.Stats.Wraps)
	fmt.Fprintf(w, "State hash:   %016x\n", fin.Hash())
}
