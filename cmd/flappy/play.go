package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagNoJournal bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Space/Up/W   - Flap (or left click)
  R/Enter      - Restart (after game over)
  Ctrl+S       - Save a screenshot
  Q/Esc        - Quit

Every finished run is saved to the run database and can be replayed
with 'flappy replay <id>'.

Examples:
  flappy play
  flappy play --seed 42
  flappy play --config ./my-flappy.yaml
  flappy play --no-journal`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not save finished runs")
}

func runPlay(_ *cobra.Command, _ []string) {
	game := loadConfig()
	width, height := terminalSize()

	// Open run storage
	var store *storage.Store
	if !flagNoJournal {
		var err error
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
			// Continue without storage - game still works
			store = nil
		}
	}

	runErr := tui.Run(tui.Options{
		Game: game,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store: store,
		Host:  "tui",
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
