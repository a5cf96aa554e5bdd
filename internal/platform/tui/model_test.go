package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

type modelFixture struct {
	model Model
	clock *core.ManualClock
}

func newModelFixture(t *testing.T, store *storage.Store) *modelFixture {
	t.Helper()
	clock := core.NewManualClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	m := NewModel(Options{
		Game:    config.DefaultFlappyConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 48, ScreenH: 41, TickRate: 60, Seed: 3},
		Store:   store,
		Host:    "tui",
		Clock:   clock,
	})
	return &modelFixture{model: m, clock: clock}
}

func (f *modelFixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	return cmd
}

func (f *modelFixture) tick() tea.Cmd {
	f.clock.Advance(16 * time.Millisecond)
	return f.send(TickMsg(f.clock.Now()))
}

func (f *modelFixture) tickUntilOver(t *testing.T) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if f.tick() == nil {
			return
		}
	}
	t.Fatal("game never ended")
}

func TestModelTickRearmsOnlyWhileRunning(t *testing.T) {
	f := newModelFixture(t, nil)

	if f.model.Init() == nil {
		t.Fatal("Init should start the frame loop")
	}
	if f.tick() == nil {
		t.Fatal("tick should re-arm while running")
	}

	f.tickUntilOver(t)
	if f.model.Running() {
		t.Fatal("model should be over once ticks stop")
	}
	if f.tick() != nil {
		t.Error("ticks after game over should not re-arm")
	}
	if !strings.Contains(f.model.View(), "Game Over") {
		t.Error("view should show the game over message")
	}
	if !strings.Contains(f.model.View(), restartLabel) {
		t.Error("view should show the restart control once over")
	}
}

func TestModelKeyboardJump(t *testing.T) {
	f := newModelFixture(t, nil)
	f.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	f.tick()

	if got := f.model.game.Bird(); got.Velocity != -9.5 || got.Y != 190.5 {
		t.Errorf("after jump and one frame: velocity=%v y=%v", got.Velocity, got.Y)
	}
	if strings.Contains(f.model.View(), restartLabel) {
		t.Error("restart control should be hidden while running")
	}
}

func TestModelMouseJumpAndRestart(t *testing.T) {
	f := newModelFixture(t, nil)
	click := func(x, y int) tea.Cmd {
		return f.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	}

	click(10, 10)
	if f.model.game.Bird().Velocity != -10 {
		t.Errorf("click on the playfield should flap, velocity=%v", f.model.game.Bird().Velocity)
	}

	f.tickUntilOver(t)

	if cmd := click(10, 10); cmd != nil || f.model.Running() {
		t.Error("click on the playfield should not restart")
	}
	if cmd := click(0, f.model.screen.Height()); cmd == nil {
		t.Fatal("click on the restart control should re-arm the loop")
	}
	if !f.model.Running() || f.model.State().Score != 0 || f.model.State().Frames != 0 {
		t.Errorf("restart should begin a fresh session, got %+v", f.model.State())
	}
}

func TestModelRestartKey(t *testing.T) {
	f := newModelFixture(t, nil)

	if cmd := f.send(runeKey('r')); cmd != nil {
		t.Error("restart while running should do nothing")
	}

	f.tickUntilOver(t)
	if cmd := f.send(runeKey('r')); cmd == nil {
		t.Fatal("restart when over should re-arm the loop")
	}
	if !f.model.Running() {
		t.Error("model should be running after restart")
	}
	if f.tick() == nil {
		t.Error("loop should keep ticking after restart")
	}
}

func TestModelSavesRunOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	f := newModelFixture(t, store)
	f.tickUntilOver(t)

	id := f.model.LastRunID()
	if id == 0 {
		t.Fatal("run should be saved on game over")
	}
	run, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run.Host != "tui" || run.Seed != 3 || run.EndReason != "floor" {
		t.Errorf("saved run = %+v", run)
	}
	if run.FrameCount != f.model.State().Frames {
		t.Errorf("saved %d frames, played %d", run.FrameCount, f.model.State().Frames)
	}
	if _, err := config.Parse([]byte(run.ConfigYAML)); err != nil {
		t.Errorf("saved config should parse: %v", err)
	}
	if !strings.Contains(f.model.View(), "saved as run") {
		t.Error("view should mention the saved run")
	}
}

func TestModelQuit(t *testing.T) {
	f := newModelFixture(t, nil)
	if cmd := f.send(runeKey('q')); cmd == nil {
		t.Fatal("q should return tea.Quit")
	}
	if f.model.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResizeKeepsGameOverFrame(t *testing.T) {
	f := newModelFixture(t, nil)
	f.tickUntilOver(t)

	f.send(tea.WindowSizeMsg{Width: 96, Height: 41})
	if f.model.screen.Width() != 96 {
		t.Fatalf("screen width = %d", f.model.screen.Width())
	}
	if !strings.Contains(f.model.View(), "Game Over") {
		t.Error("game over message should survive a resize")
	}
}
