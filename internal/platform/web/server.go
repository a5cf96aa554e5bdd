// Package web serves the game to browsers. The page draws on an HTML canvas
// and drives the loop over a websocket, one frame request per display
// refresh; the game itself runs on the server.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

//go:embed static
var staticFiles embed.FS

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Game is the configuration every session plays with.
	Game config.FlappyConfig

	// Seed fixes the obstacle seed of every session; 0 picks a new one.
	Seed int64

	// Store journals finished runs. Nil disables it.
	Store *storage.Store

	// Clock defaults to core.SystemClock.
	Clock core.Clock

	// Logger receives server events. Defaults to a stderr logger.
	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		Game:    config.DefaultFlappyConfig(),
	}
}

// Server hosts the browser page and its websocket sessions.
type Server struct {
	cfg        Config
	clock      core.Clock
	store      *storage.Store
	configYAML []byte
	logger     *log.Logger
	upgrader   websocket.Upgrader
	sessions   atomic.Int64
	nextID     atomic.Int64
}

// NewServer creates a web server.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "flappy-web",
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}

	srv := &Server{
		cfg:    cfg,
		clock:  clock,
		store:  cfg.Store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	if data, err := config.Marshal(cfg.Game); err == nil {
		srv.configYAML = data
	} else {
		logger.Warn("could not encode game config, runs will not be replayable", "error", err)
	}
	return srv
}

// Handler returns the HTTP handler serving the page, the websocket and
// the health check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded at build time
	}
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/ws", s.handleWebsocket)
	mux.HandleFunc("/health", s.handleHealth)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Nothing useful to do if the client went away
	json.NewEncoder(w).Encode(struct {
		Status   string `json:"status"`
		Sessions int64  `json:"sessions"`
	}{
		Status:   "ok",
		Sessions: s.sessions.Load(),
	})
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	id := s.nextID.Add(1)
	logger := s.logger.With("session", id, "remote", r.RemoteAddr)

	s.sessions.Add(1)
	defer s.sessions.Add(-1)

	start := time.Now()
	logger.Info("session started")
	if err := newSession(s, conn, logger).serve(); err != nil {
		logger.Warn("session ended with error", "error", err)
	}
	logger.Info("session ended", "duration", time.Since(start).Round(time.Second))
}

// Sessions returns the number of connected players.
func (s *Server) Sessions() int64 {
	return s.sessions.Load()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
