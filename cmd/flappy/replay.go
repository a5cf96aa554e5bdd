package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagReplayVerify bool
	flagReplaySpeed  float64
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch or verify a recorded run",
	Long: `Replay a recorded run with the configuration and seed it was played
with. The run is re-simulated from its recorded frame times and jumps,
so the replay ends with the same score as the original run.

With --verify, the run is re-simulated without a display and the final
frame is printed together with the result.

Examples:
  flappy replay 12
  flappy replay 12 --speed 2
  flappy replay 12 --verify`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayVerify, "verify", false, "Re-simulate without a display and report the result")
	replayCmd.Flags().Float64Var(&flagReplaySpeed, "speed", 1, "Playback speed multiplier")
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid run id %q\n", args[0])
		os.Exit(1)
	}

	if flagReplayVerify {
		verifyRun(id)
		return
	}
	watchRun(id)
}

// loadRun reads a run and the game configuration it was played with.
func loadRun(id int64) (*storage.RunEntry, config.FlappyConfig) {
	store := openStore()
	run, err := store.Run(id)
	store.Close()
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no run #%d\n", id)
		} else {
			fmt.Fprintf(os.Stderr, "Error loading run: %v\n", err)
		}
		os.Exit(1)
	}

	cfg := config.DefaultFlappyConfig()
	if run.ConfigYAML != "" {
		parsed, parseErr := config.Parse([]byte(run.ConfigYAML))
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "Error: run #%d has an unusable config: %v\n", id, parseErr)
			os.Exit(1)
		}
		cfg = parsed
	}
	return run, cfg
}

// watchRun plays a run back in the terminal.
func watchRun(id int64) {
	run, cfg := loadRun(id)
	width, height := terminalSize()

	title := fmt.Sprintf("Run #%d", run.ID)
	if err := tui.RunReplay(flappy.New(cfg), run.Recording, title, width, height, flagReplaySpeed); err != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
		os.Exit(1)
	}
}

// verifyRun re-simulates a run and prints its last frame.
func verifyRun(id int64) {
	run, cfg := loadRun(id)
	width, height := terminalSize()

	screen := core.NewScreen(width, max(height-3, 1))
	canvas := core.NewCanvas(screen, cfg.Viewport.Width, cfg.Viewport.Height)

	state, err := loop.Replay(flappy.New(cfg), run.Recording, canvas)

	fmt.Println(screen.String())
	fmt.Printf("Run #%d: score %d after %d frames (%s)\n", run.ID, state.Score, state.Frames, state.EndReason)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Replay matches the recorded run.")
}
