// flappy-canvas plays the game in a desktop window.
//
// Usage:
//
//	flappy-canvas [--config path] [--seed n] [--fps n] [--db path]
//
// Controls: Space or left click to flap, R/Enter or the Restart button
// after game over, window close to quit.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/platform/canvas"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy-canvas",
	Short: "Flappy Bird in a desktop window",
	Args:  cobra.NoArgs,
	Run:   run,
}

func init() {
	rootCmd.Flags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagDBPath, "db", "~/.flappy/runs.db", "Path to run database (empty disables saving)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func run(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy-canvas",
	})

	game, err := config.LoadFlappy(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := canvas.Options{
		Game: game,
		Runtime: core.RuntimeConfig{
			ScreenW:  int(game.Viewport.Width),
			ScreenH:  int(game.Viewport.Height),
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
	}

	if flagDBPath != "" {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			logger.Warn("could not open run database", "error", openErr)
		} else {
			defer store.Close()
			configYAML, marshalErr := config.Marshal(game)
			if marshalErr != nil {
				logger.Warn("could not encode game config, runs will not be replayable", "error", marshalErr)
			}
			opts.OnGameOver = func(rec loop.Recording) {
				id, saveErr := store.SaveRun("canvas", configYAML, rec)
				if saveErr != nil {
					logger.Warn("could not save run", "error", saveErr)
					return
				}
				logger.Info("run saved", "run", id, "score", rec.Final.Score)
			}
		}
	}

	if err := canvas.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
