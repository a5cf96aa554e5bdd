// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
package flappy

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Colors used when drawing.
const (
	BirdColor  = core.ColorYellow
	PipeColor  = core.ColorGreen
	TextColor  = core.ColorDefault
	AlertColor = core.ColorRed
)

// HUD layout in world units.
const (
	scoreX        = 10
	scoreY        = 30
	scoreSize     = 24
	gameOverSize  = 36
	gameOverShift = 100 // "Game Over" starts this far left of center
	reasonSize    = 18
)

// EndReason records what ended a session.
type EndReason string

const (
	EndNone    EndReason = ""
	EndFloor   EndReason = "floor"
	EndCeiling EndReason = "ceiling"
	EndPipe    EndReason = "pipe"
)

// Describe returns a short sentence for the game over overlay.
func (r EndReason) Describe() string {
	switch r {
	case EndFloor:
		return "Hit the ground"
	case EndCeiling:
		return "Flew into the ceiling"
	case EndPipe:
		return "Crashed into a pipe"
	default:
		return ""
	}
}

// Game implements the Flappy Bird game logic.
type Game struct {
	cfg       config.FlappyConfig
	bird      Bird
	pipes     *PipeStream
	score     int
	gameOver  bool
	endReason EndReason
	frames    int
	seed      int64
}

// New creates a game using cfg. Call Reset before the first Step.
func New(cfg config.FlappyConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset starts a new session: bird back at the center with no velocity,
// no pipes, zero score. The spawn timer counts from lastSpawn; the zero time
// spawns the first pipe on the first step.
func (g *Game) Reset(rt core.RuntimeConfig, lastSpawn time.Time) {
	g.seed = rt.Seed
	g.bird = NewBird(g.cfg)
	g.score = 0
	g.gameOver = false
	g.endReason = EndNone
	g.frames = 0

	if g.pipes == nil {
		g.pipes = NewPipeStream(g.cfg, rt.Seed, lastSpawn)
	} else {
		g.pipes.Reset(rt.Seed, lastSpawn)
	}
}

// Jump flaps the bird. Ignored once the game is over.
func (g *Game) Jump() {
	if g.gameOver {
		return
	}
	g.bird.Flap()
}

// Step advances the game by one frame at wall-clock time now.
// A jump in the input frame is applied before physics.
func (g *Game) Step(in core.InputFrame, now time.Time) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.frames++

	if in.Has(core.ActionJump) {
		g.Jump()
	}

	// Physics
	g.bird.Update()
	if g.bird.Bottom() > g.cfg.Viewport.Height {
		g.end(EndFloor)
	} else if g.bird.Top() < 0 {
		g.end(EndCeiling)
	}

	// Obstacles keep moving on the frame the game ends
	g.pipes.Spawn(now)
	passed, hit := g.pipes.Advance(g.bird)
	g.score += passed
	if hit {
		g.end(EndPipe)
	}

	return core.StepResult{State: g.State(), Passed: passed}
}

// end moves the game to the over state. Only the first call has an effect.
func (g *Game) end(reason EndReason) {
	if g.gameOver {
		return
	}
	g.gameOver = true
	g.endReason = reason
}

// Render draws the bird, the pipes and the score.
func (g *Game) Render(dst core.Surface) {
	dst.FillCircle(g.bird.X, g.bird.Y, g.bird.Radius, BirdColor)

	width := g.cfg.Obstacles.PipeWidth
	for _, p := range g.pipes.Pipes() {
		top := p.TopRect(width)
		dst.FillRect(top.X, top.Y, top.W, top.H, PipeColor)
		bottom := p.BottomRect(width, g.cfg.Obstacles.GapSize, g.cfg.Viewport.Height)
		dst.FillRect(bottom.X, bottom.Y, bottom.W, bottom.H, PipeColor)
	}

	dst.Text(scoreX, scoreY, scoreSize, fmt.Sprintf("Score: %d", g.score), TextColor)
}

// RenderGameOver draws the game over message on top of the last frame.
func (g *Game) RenderGameOver(dst core.Surface) {
	w, h := dst.Size()
	dst.Text(w/2-gameOverShift, h/2, gameOverSize, "Game Over", AlertColor)
	if msg := g.endReason.Describe(); msg != "" {
		dst.Text(w/2-gameOverShift, h/2+reasonSize+8, reasonSize, msg, TextColor)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		GameOver:  g.gameOver,
		EndReason: string(g.endReason),
		Frames:    g.frames,
	}
}

// Bird returns a copy of the bird.
func (g *Game) Bird() Bird {
	return g.bird
}

// Pipes returns the pipes currently on screen.
func (g *Game) Pipes() []Pipe {
	return g.pipes.Pipes()
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Seed returns the RNG seed of the current session.
func (g *Game) Seed() int64 {
	return g.seed
}
