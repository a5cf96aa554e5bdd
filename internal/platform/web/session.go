package web

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/loop"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
	readLimit    = 1 << 12
)

// session runs one game for one websocket connection. All game access
// happens on the connection's read loop.
type session struct {
	srv    *Server
	conn   *websocket.Conn
	game   *flappy.Game
	list   *core.DrawList
	driver *loop.Driver
	logger *log.Logger
	runID  int64
}

func newSession(srv *Server, conn *websocket.Conn, logger *log.Logger) *session {
	cfg := srv.cfg.Game
	s := &session{
		srv:    srv,
		conn:   conn,
		game:   flappy.New(cfg),
		list:   core.NewDrawList(cfg.Viewport.Width, cfg.Viewport.Height),
		logger: logger,
	}
	rt := core.RuntimeConfig{Seed: srv.cfg.Seed, TickRate: core.DefaultConfig().TickRate}
	s.driver = loop.New(s.game, s.list, srv.clock, rt, loop.WithGameOverHandler(s.finished))
	return s
}

// finished logs and journals a session that just ended.
func (s *session) finished(rec loop.Recording) {
	s.runID = 0
	if s.srv.store != nil {
		id, err := s.srv.store.SaveRun("web", s.srv.configYAML, rec)
		if err != nil {
			s.logger.Warn("could not save run", "error", err)
		} else {
			s.runID = id
		}
	}
	s.logger.Info("run finished",
		"score", rec.Final.Score,
		"reason", rec.Final.EndReason,
		"frames", rec.Final.Frames,
		"run", s.runID,
	)
}

// serve runs the read loop until the connection closes.
func (s *session) serve() error {
	s.conn.SetReadLimit(readLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(readTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(done)

	w, h := s.list.Size()
	if err := s.write(helloMessage{Type: "hello", Width: w, Height: h, Seed: s.game.Seed()}); err != nil {
		return err
	}

	for {
		var msg clientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("web: read: %w", err)
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(readTimeout))

		if err := s.handle(msg); err != nil {
			return err
		}
	}
}

// handle applies one client message. Only frame requests are answered.
func (s *session) handle(msg clientMessage) error {
	switch msg.Type {
	case msgJump:
		s.driver.Press(core.ActionJump)
	case msgRestart:
		if s.driver.Press(core.ActionRestart) {
			s.runID = 0
		}
	case msgFrame:
		s.driver.Frame()
		return s.write(s.frame())
	default:
		s.logger.Debug("ignoring message", "type", msg.Type)
	}
	return nil
}

// frame builds the reply for the current drawing.
func (s *session) frame() frameMessage {
	state := s.driver.State()
	return frameMessage{
		Type:    msgFrame,
		Ops:     encodeOps(s.list.Ops()),
		Running: s.driver.Running(),
		Score:   state.Score,
		Reason:  flappy.EndReason(state.EndReason).Describe(),
		RunID:   s.runID,
	}
}

func (s *session) write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("web: encode: %w", err)
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("web: write: %w", err)
	}
	return nil
}

// pingLoop keeps idle connections alive. WriteControl may run concurrently
// with the read loop's writes.
func (s *session) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
