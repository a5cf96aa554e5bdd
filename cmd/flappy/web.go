package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/web"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the game to browsers",
	Long: `Start an HTTP server with a canvas page. The game runs on the server
and the page draws each frame it receives over a websocket.

Endpoints:
  /        - Game page
  /ws      - Frame stream
  /health  - JSON health check

Examples:
  flappy web
  flappy web --addr :9000
  flappy web --seed 42`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP server address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger := newLogger("flappy-web")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		// Continue without storage
		store = nil
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.Game = loadConfig()
	cfg.Seed = flagSeed
	cfg.Store = store
	cfg.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Open http://localhost%s in a browser\n", displayAddr(flagWebAddr))
	fmt.Println("Press Ctrl+C to stop")

	serveErr := web.NewServer(cfg).ListenAndServe(ctx)

	if store != nil {
		store.Close()
	}

	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", serveErr)
		os.Exit(1)
	}
}

// displayAddr trims a host from addr so it can follow "localhost".
func displayAddr(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i:]
		}
	}
	return ":" + addr
}
