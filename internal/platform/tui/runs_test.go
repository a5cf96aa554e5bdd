package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func seedRuns(t *testing.T, scores ...int) (*storage.Store, []int64) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var ids []int64
	for _, score := range scores {
		rec := loop.Recording{
			Seed:      1,
			StartedAt: time.Now(),
			Frames:    []loop.FrameRecord{{Offset: 16 * time.Millisecond}},
			Final:     core.GameState{Score: score, GameOver: true, EndReason: "pipe", Frames: 1},
		}
		id, err := store.SaveRun("tui", nil, rec)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		ids = append(ids, id)
	}
	return store, ids
}

func TestRunsModelSelectNewest(t *testing.T) {
	store, ids := seedRuns(t, 5, 9)
	m := NewRunsModel(store, 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(RunsModel)
	if cmd == nil {
		t.Fatal("selecting a run should quit the browser")
	}
	if m.Selected() != ids[1] {
		t.Errorf("Selected() = %d, expected newest run %d", m.Selected(), ids[1])
	}
}

func TestRunsModelDelete(t *testing.T) {
	store, ids := seedRuns(t, 5, 9)
	m := NewRunsModel(store, 80, 24)

	next, _ := m.Update(runeKey('d'))
	m = next.(RunsModel)

	if len(m.runs) != 1 || m.runs[0].ID != ids[0] {
		t.Fatalf("expected only run %d left, got %+v", ids[0], m.runs)
	}
	if _, err := store.Run(ids[1]); err == nil {
		t.Error("deleted run should be gone from the store")
	}
}

func TestRunsModelEmpty(t *testing.T) {
	m := NewRunsModel(nil, 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(RunsModel)
	if cmd != nil || m.Selected() != 0 {
		t.Error("enter on an empty journal should do nothing")
	}
	if m.View() == "" {
		t.Error("empty browser should still render")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00.0"},
		{1530 * time.Millisecond, "0:01.5"},
		{65*time.Second + 340*time.Millisecond, "1:05.3"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, expected %q", tc.d, got, tc.want)
		}
	}
}
