package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsBrowse bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `Display the most recent runs, newest first, with journal totals.

With --browse, opens an interactive table; pressing Enter on a run
replays it.

Examples:
  flappy runs
  flappy runs --limit 25
  flappy runs --browse
  flappy runs delete 12`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	Run:   runRunsDelete,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBrowse, "browse", false, "Browse runs interactively")
	runsCmd.AddCommand(runsDeleteCmd)
}

// openStore opens the run database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runRuns(_ *cobra.Command, _ []string) {
	store := openStore()

	if flagRunsBrowse {
		width, height := terminalSize()
		id, err := tui.BrowseRuns(store, width, height)
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if id > 0 {
			watchRun(id)
		}
		return
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-6s  %-6s  %-8s  %-6s  %-8s  %s\n", "Run", "Score", "End", "Host", "Length", "Date")
	fmt.Printf("  %-6s  %-6s  %-8s  %-6s  %-8s  %s\n", "---", "-----", "---", "----", "------", "----")

	for _, run := range runs {
		fmt.Printf("  %-6d  %-6d  %-8s  %-6s  %-8s  %s\n",
			run.ID, run.Score, run.EndReason, run.Host,
			tui.FormatDuration(run.Duration), run.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Frames: %d  Played: %s\n",
		stats.Runs, stats.TotalFrames, tui.FormatDuration(stats.TotalTime))
}

func runRunsDelete(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid run id %q\n", args[0])
		os.Exit(1)
	}

	store := openStore()
	defer store.Close()

	if err := store.DeleteRun(id); err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no run #%d\n", id)
		} else {
			fmt.Fprintf(os.Stderr, "Error deleting run: %v\n", err)
		}
		store.Close()
		os.Exit(1)
	}
	fmt.Printf("Deleted run #%d\n", id)
}
