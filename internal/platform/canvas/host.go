// Package canvas hosts the game in a native window through ebiten.
package canvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/loop"
)

// Restart button geometry, relative to the viewport center.
const (
	buttonW       = 120
	buttonH       = 36
	buttonOffsetY = 60
)

var buttonColor = color.RGBA{0x33, 0x66, 0xcc, 0xff}

// Options configures a Host.
type Options struct {
	Game    config.FlappyConfig
	Runtime core.RuntimeConfig

	// OnGameOver is called with the recording of every finished session.
	OnGameOver func(loop.Recording)
}

// Host implements ebiten.Game around a loop.Driver. Update runs one frame
// per tick and records it; Draw replays the recording onto the screen.
type Host struct {
	cfg    config.FlappyConfig
	list   *core.DrawList
	driver *loop.Driver
	face   *text.GoTextFaceSource
}

// New creates a host and starts the first session.
func New(opts Options) (*Host, error) {
	face, err := loadFace()
	if err != nil {
		return nil, fmt.Errorf("canvas: load font: %w", err)
	}

	h := &Host{
		cfg:  opts.Game,
		list: core.NewDrawList(opts.Game.Viewport.Width, opts.Game.Viewport.Height),
		face: face,
	}

	var loopOpts []loop.Option
	if opts.OnGameOver != nil {
		loopOpts = append(loopOpts, loop.WithGameOverHandler(opts.OnGameOver))
	}
	h.driver = loop.New(flappy.New(opts.Game), h.list, core.SystemClock{}, opts.Runtime, loopOpts...)
	return h, nil
}

// button returns the restart control's rectangle in screen pixels.
func (h *Host) button() image.Rectangle {
	cx := int(h.cfg.Viewport.Width / 2)
	cy := int(h.cfg.Viewport.Height/2) + buttonOffsetY
	return image.Rect(cx-buttonW/2, cy, cx+buttonW/2, cy+buttonH)
}

// Update handles input and runs one frame while the game is running.
func (h *Host) Update() error {
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	if h.driver.Running() {
		if clicked || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			h.driver.Press(core.ActionJump)
		}
		h.driver.Frame()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		h.driver.Press(core.ActionRestart)
		return nil
	}
	if clicked {
		if image.Pt(ebiten.CursorPosition()).In(h.button()) {
			h.driver.Press(core.ActionRestart)
		}
	}
	return nil
}

// Draw replays the last frame and, once over, the restart control.
func (h *Host) Draw(screen *ebiten.Image) {
	dst := imageSurface{img: screen, face: h.face}
	h.list.Replay(dst)

	if h.driver.Running() {
		return
	}
	b := h.button()
	vector.DrawFilledRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), buttonColor, false)
	dst.Text(float64(b.Min.X+12), float64(b.Min.Y+26), 20, "Restart", core.ColorWhite)
}

// Layout keeps the logical screen at the viewport size; ebiten scales it
// to the window.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(h.cfg.Viewport.Width), int(h.cfg.Viewport.Height)
}

// Run opens a window and blocks until it is closed.
func Run(opts Options) error {
	h, err := New(opts)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(int(opts.Game.Viewport.Width), int(opts.Game.Viewport.Height))
	ebiten.SetWindowTitle("Flappy Bird")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.Runtime.TickRate > 0 {
		ebiten.SetTPS(opts.Runtime.TickRate)
	}
	return ebiten.RunGame(h)
}
