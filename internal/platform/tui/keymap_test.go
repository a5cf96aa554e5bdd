package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	tests := []struct {
		name  string
		phase core.Phase
		msg   tea.KeyMsg
		want  core.Action
	}{
		{"space jumps", core.PhaseRunning, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{"up jumps", core.PhaseRunning, tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w jumps", core.PhaseRunning, runeKey('w'), core.ActionJump},
		{"r ignored while running", core.PhaseRunning, runeKey('r'), core.ActionNone},
		{"space ignored when over", core.PhaseOver, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionNone},
		{"r restarts when over", core.PhaseOver, runeKey('r'), core.ActionRestart},
		{"enter restarts when over", core.PhaseOver, tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRestart},
		{"q quits while running", core.PhaseRunning, runeKey('q'), core.ActionQuit},
		{"ctrl+c quits when over", core.PhaseOver, tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound key", core.PhaseRunning, runeKey('x'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k := DefaultKeyMap()
			k.SetPhase(tc.phase)
			if got := k.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestKeyMapHelpFollowsPhase(t *testing.T) {
	k := DefaultKeyMap()
	if !k.Jump.Enabled() || k.Restart.Enabled() {
		t.Error("running phase should enable jump only")
	}
	k.SetPhase(core.PhaseOver)
	if k.Jump.Enabled() || !k.Restart.Enabled() {
		t.Error("over phase should enable restart only")
	}
}
