// Package loop drives a game one display refresh at a time.
// Hosts call Frame on every refresh and keep re-arming while it returns true;
// input arrives through Press between frames.
package loop

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game is the simulation a Driver runs.
type Game interface {
	// Reset starts a new session whose spawn timer counts from lastSpawn.
	Reset(rt core.RuntimeConfig, lastSpawn time.Time)
	// Jump applies the impulse action immediately.
	Jump()
	// Step advances one frame at wall-clock time now.
	Step(in core.InputFrame, now time.Time) core.StepResult
	// Render draws the running frame.
	Render(dst core.Surface)
	// RenderGameOver draws the terminal message over the last frame.
	RenderGameOver(dst core.Surface)
	State() core.GameState
}

// Option configures a Driver.
type Option func(*Driver)

// WithGameOverHandler registers fn to be called once per session, on the
// frame the game ends.
func WithGameOverHandler(fn func(Recording)) Option {
	return func(d *Driver) {
		d.onGameOver = fn
	}
}

// Driver is the RUNNING/OVER state machine around a Game.
type Driver struct {
	game    Game
	surface core.Surface
	clock   core.Clock
	rt      core.RuntimeConfig

	phase   core.Phase
	pending bool // jump pressed since the last frame
	rec     Recording

	onGameOver func(Recording)
}

// New creates a driver and starts the first session. A zero rt.Seed picks a
// fresh time-based seed for every session.
func New(game Game, surface core.Surface, clock core.Clock, rt core.RuntimeConfig, opts ...Option) *Driver {
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	d := &Driver{
		game:    game,
		surface: surface,
		clock:   clock,
		rt:      rt,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.start(false)
	return d
}

// start begins a session. The first session spawns a pipe on its first
// frame; a restarted one waits a full spawn interval.
func (d *Driver) start(restarted bool) {
	rt := d.rt.ResolveSeed()
	d.rec = Recording{
		Seed:      rt.Seed,
		StartedAt: d.clock.Now(),
		Restarted: restarted,
		Frames:    make([]FrameRecord, 0, 256),
	}

	d.game.Reset(rt, d.rec.lastSpawn())
	d.phase = core.PhaseRunning
	d.pending = false
}

// Frame runs one refresh: clear, draw, step. It returns true while the loop
// should be re-armed for the next refresh and false once the game is over.
func (d *Driver) Frame() bool {
	if d.phase == core.PhaseOver {
		return false
	}

	now := d.clock.Now()
	d.rec.Frames = append(d.rec.Frames, FrameRecord{
		Offset: now.Sub(d.rec.StartedAt),
		Jump:   d.pending,
	})
	d.pending = false

	d.surface.Clear()
	d.game.Render(d.surface)

	result := d.game.Step(core.NewInputFrame(), now)
	if !result.State.GameOver {
		return true
	}

	d.phase = core.PhaseOver
	d.rec.Final = result.State
	d.game.RenderGameOver(d.surface)
	if d.onGameOver != nil {
		d.onGameOver(d.Recording())
	}
	return false
}

// Press handles an action from the host. Jump only counts while running and
// Restart only while over. Reports whether the action had an effect.
func (d *Driver) Press(a core.Action) bool {
	switch a {
	case core.ActionJump:
		if d.phase != core.PhaseRunning {
			return false
		}
		d.game.Jump()
		d.pending = true
		return true
	case core.ActionRestart:
		if d.phase != core.PhaseOver {
			return false
		}
		d.Restart()
		return true
	}
	return false
}

// Restart begins a new session regardless of the current phase.
func (d *Driver) Restart() {
	d.start(true)
}

// Running reports whether the session is still in progress.
func (d *Driver) Running() bool {
	return d.phase == core.PhaseRunning
}

// Phase returns the current phase.
func (d *Driver) Phase() core.Phase {
	return d.phase
}

// State returns the game state.
func (d *Driver) State() core.GameState {
	return d.game.State()
}

// Interval is the refresh period for hosts that schedule their own ticks.
func (d *Driver) Interval() time.Duration {
	return time.Second / time.Duration(d.rt.TickRate)
}

// Recording returns a copy of the current session's recording.
func (d *Driver) Recording() Recording {
	rec := d.rec
	rec.Frames = append([]FrameRecord(nil), d.rec.Frames...)
	return rec
}
