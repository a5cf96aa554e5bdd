package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/loop"
)

// ReplayKeyMap defines the key bindings while watching a replay.
type ReplayKeyMap struct {
	Rewatch key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rewatch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ReplayModel plays a recorded run back at its original pace.
type ReplayModel struct {
	game     *flappy.Game
	rec      loop.Recording
	player   *loop.Player
	screen   *core.Screen
	canvas   *core.Canvas
	speed    float64
	title    string
	keys     ReplayKeyMap
	help     help.Model
	done     bool
	err      error
	quitting bool
}

// NewReplayModel creates a replay viewer. speed scales playback; values
// other than positive numbers play at recorded speed.
func NewReplayModel(game *flappy.Game, rec loop.Recording, title string, width, height int, speed float64) ReplayModel {
	if speed <= 0 {
		speed = 1
	}
	cfg := game.Config()
	screen := core.NewScreen(width, max(height-statusRows, 1))

	h := help.New()
	h.Width = width

	m := ReplayModel{
		game:   game,
		rec:    rec,
		screen: screen,
		canvas: core.NewCanvas(screen, cfg.Viewport.Width, cfg.Viewport.Height),
		speed:  speed,
		title:  title,
		keys: ReplayKeyMap{
			Rewatch: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "rewatch"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "esc", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
		help: h,
	}
	m.player = loop.NewPlayer(game, rec, m.canvas)
	return m
}

func (m ReplayModel) nextTick() tea.Cmd {
	return tickCmd(time.Duration(float64(m.player.Delay()) / m.speed))
}

// Init schedules the first recorded frame.
func (m ReplayModel) Init() tea.Cmd {
	return m.nextTick()
}

// Update handles messages for the replay viewer.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Rewatch):
			if !m.done {
				return m, nil
			}
			m.player = loop.NewPlayer(m.game, m.rec, m.canvas)
			m.done = false
			m.err = nil
			return m, m.nextTick()
		}

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-statusRows, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.player.Step() {
			return m, m.nextTick()
		}
		m.done = true
		_, m.err = m.player.Finish()
		return m, nil
	}

	return m, nil
}

// View renders the replayed frame and playback status.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	played, total := m.player.Progress()
	status := fmt.Sprintf("%s  frame %d/%d", m.title, played, total)
	switch {
	case m.done && m.err != nil:
		status += "  " + m.err.Error()
	case m.done:
		status += "  replay verified"
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(status + "  " + m.help.View(m.keys)))
	return b.String()
}

// Err returns the verification result once playback has finished.
func (m ReplayModel) Err() error {
	return m.err
}

// RunReplay plays rec in the terminal until the user quits.
func RunReplay(game *flappy.Game, rec loop.Recording, title string, width, height int, speed float64) error {
	model := NewReplayModel(game, rec, title, width, height, speed)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
