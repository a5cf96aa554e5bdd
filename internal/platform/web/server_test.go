package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 11
	cfg.Store = store
	cfg.Logger = log.New(io.Discard)

	srv := httptest.NewServer(NewServer(cfg).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string) {
	t.Helper()
	if err := conn.WriteJSON(clientMessage{Type: typ}); err != nil {
		t.Fatalf("failed to send %q: %v", typ, err)
	}
}

func readHello(t *testing.T, conn *websocket.Conn) helloMessage {
	t.Helper()
	var hello helloMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("failed to read hello: %v", err)
	}
	return hello
}

func requestFrame(t *testing.T, conn *websocket.Conn) frameMessage {
	t.Helper()
	send(t, conn, msgFrame)
	var frame frameMessage
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	return frame
}

func playUntilOver(t *testing.T, conn *websocket.Conn) frameMessage {
	t.Helper()
	for i := 0; i < 1000; i++ {
		frame := requestFrame(t, conn)
		if !frame.Running {
			return frame
		}
	}
	t.Fatal("game never ended")
	return frameMessage{}
}

func TestHelloDescribesViewport(t *testing.T) {
	conn := dial(t, newTestServer(t, nil))
	hello := readHello(t, conn)

	if hello.Type != "hello" || hello.Width != 480 || hello.Height != 400 {
		t.Errorf("hello = %+v", hello)
	}
	if hello.Seed != 11 {
		t.Errorf("hello seed = %d, expected 11", hello.Seed)
	}
}

func TestFrameCarriesDrawOps(t *testing.T) {
	conn := dial(t, newTestServer(t, nil))
	readHello(t, conn)

	frame := requestFrame(t, conn)
	if !frame.Running || frame.Score != 0 {
		t.Fatalf("first frame = running %v score %d", frame.Running, frame.Score)
	}
	if len(frame.Ops) < 3 {
		t.Fatalf("expected clear, bird and score ops, got %+v", frame.Ops)
	}
	if frame.Ops[0].Kind != "clear" {
		t.Errorf("first op = %q, expected clear", frame.Ops[0].Kind)
	}
	bird := frame.Ops[1]
	if bird.Kind != "circle" || bird.X != 50 || bird.Y != 200 || bird.R != 15 || bird.Color != "#ffff00" {
		t.Errorf("bird op = %+v", bird)
	}
	last := frame.Ops[len(frame.Ops)-1]
	if last.Kind != "text" || last.Text != "Score: 0" {
		t.Errorf("score op = %+v", last)
	}
}

func TestGameOverStopsAndRestartResumes(t *testing.T) {
	conn := dial(t, newTestServer(t, nil))
	readHello(t, conn)

	send(t, conn, msgJump)
	over := playUntilOver(t, conn)
	if over.Reason != "Hit the ground" {
		t.Errorf("Reason = %q", over.Reason)
	}

	var texts []string
	for _, op := range over.Ops {
		if op.Kind == "text" {
			texts = append(texts, op.Text)
		}
	}
	if len(texts) < 2 || texts[1] != "Game Over" {
		t.Errorf("game over frame texts = %q", texts)
	}

	// Frames stay frozen and jumps are ignored until restart
	send(t, conn, msgJump)
	again := requestFrame(t, conn)
	if again.Running || len(again.Ops) != len(over.Ops) {
		t.Error("frame requests after game over should return the final frame")
	}

	send(t, conn, msgRestart)
	fresh := requestFrame(t, conn)
	if !fresh.Running || fresh.Score != 0 {
		t.Errorf("after restart: running %v score %d", fresh.Running, fresh.Score)
	}
	if fresh.Ops[1].Y != 200 {
		t.Errorf("bird should be back at the center, got y=%v", fresh.Ops[1].Y)
	}
}

func TestGameOverSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	conn := dial(t, newTestServer(t, store))
	readHello(t, conn)
	over := playUntilOver(t, conn)

	if over.RunID == 0 {
		t.Fatal("game over frame should carry the saved run ID")
	}
	run, err := store.Run(over.RunID)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run.Host != "web" || run.Seed != 11 || run.EndReason != "floor" {
		t.Errorf("saved run = %+v", run)
	}
	if _, err := config.Parse([]byte(run.ConfigYAML)); err != nil {
		t.Errorf("saved config should parse: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status   string `json:"status"`
		Sessions int64  `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q", body.Status)
	}
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read page: %v", err)
	}
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `id="restart"`) {
		t.Errorf("index page missing restart control (status %d)", resp.StatusCode)
	}
}
