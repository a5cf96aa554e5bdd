package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// statusRows is the number of terminal rows below the playfield.
const statusRows = 1

// Options configures a play Model.
type Options struct {
	Game    config.FlappyConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil disables the run journal
	Host    string         // recorded with each run, e.g. "tui" or "ssh"
	Clock   core.Clock     // defaults to core.SystemClock
}

// journal saves finished runs. It lives behind a pointer so the driver's
// game over handler and the value-receiver Model share it.
type journal struct {
	store      *storage.Store
	host       string
	configYAML []byte
	lastID     int64
	lastErr    error
}

func (j *journal) save(rec loop.Recording) {
	if j.store == nil {
		return
	}
	j.lastID, j.lastErr = j.store.SaveRun(j.host, j.configYAML, rec)
}

// Model is the Bubble Tea model for a play session.
type Model struct {
	game     *flappy.Game
	driver   *loop.Driver
	screen   *core.Screen
	canvas   *core.Canvas
	journal  *journal
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// NewModel creates a play model and starts the first session.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	clock := opts.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}

	j := &journal{store: opts.Store, host: opts.Host}
	if opts.Store != nil {
		if data, err := config.Marshal(opts.Game); err == nil {
			j.configYAML = data
		}
	}

	screen := core.NewScreen(rt.ScreenW, max(rt.ScreenH-statusRows, 1))
	canvas := core.NewCanvas(screen, opts.Game.Viewport.Width, opts.Game.Viewport.Height)
	game := flappy.New(opts.Game)

	h := help.New()
	h.ShowAll = false
	h.Width = rt.ScreenW

	return Model{
		game:    game,
		driver:  loop.New(game, canvas, clock, rt, loop.WithGameOverHandler(j.save)),
		screen:  screen,
		canvas:  canvas,
		journal: j,
		keys:    DefaultKeyMap(),
		help:    h,
		width:   rt.ScreenW,
		height:  rt.ScreenH,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.driver.Interval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionJump:
		m.driver.Press(core.ActionJump)
	case core.ActionRestart:
		return m.restart()
	}

	return m, nil
}

// handleMouse maps a left click on the playfield to a jump and a click on
// the restart control to a restart.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.driver.Running() {
		if msg.Y < m.screen.Height() {
			m.driver.Press(core.ActionJump)
		}
		return m, nil
	}

	if _, w := renderRestartButton(); msg.Y == m.screen.Height() && msg.X < w {
		return m.restart()
	}
	return m, nil
}

// restart begins a new session and re-arms the frame loop.
func (m Model) restart() (tea.Model, tea.Cmd) {
	if !m.driver.Press(core.ActionRestart) {
		return m, nil
	}
	m.keys.SetPhase(core.PhaseRunning)
	return m, tickCmd(m.driver.Interval())
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, max(msg.Height-statusRows, 1))

	// A running game redraws on its next frame; a finished one must be
	// redrawn now to survive the resize.
	if !m.driver.Running() {
		m.canvas.Clear()
		m.game.Render(m.canvas)
		m.game.RenderGameOver(m.canvas)
	}

	return m, nil
}

// handleTick runs one frame and re-arms the tick while the game is running.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.driver.Frame() {
		return m, tickCmd(m.driver.Interval())
	}
	m.keys.SetPhase(core.PhaseOver)
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the playfield and the status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

// statusLine shows the restart control after game over and key help.
func (m Model) statusLine() string {
	helpView := statusStyle.Render(m.help.View(m.keys))
	if m.driver.Running() {
		return helpView
	}

	button, _ := renderRestartButton()
	line := lipgloss.JoinHorizontal(lipgloss.Top, button, "  ", helpView)
	switch {
	case m.journal.lastErr != nil:
		line += statusStyle.Render("  run not saved")
	case m.journal.lastID > 0:
		line += statusStyle.Render(fmt.Sprintf("  saved as run #%d", m.journal.lastID))
	}
	return line
}

// State returns the current game state.
func (m Model) State() core.GameState {
	return m.driver.State()
}

// Running reports whether the current session is still in progress.
func (m Model) Running() bool {
	return m.driver.Running()
}

// LastRunID returns the journal ID of the most recently saved run, or 0.
func (m Model) LastRunID() int64 {
	return m.journal.lastID
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
