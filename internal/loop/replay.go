package loop

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrReplayDiverged is returned when a replayed run ends differently from
// the recording.
var ErrReplayDiverged = errors.New("loop: replay diverged from recording")

// FrameRecord is one refresh of a recorded session.
type FrameRecord struct {
	Offset time.Duration `json:"t"`           // Time since session start
	Jump   bool          `json:"j,omitempty"` // Jump pressed since the previous frame
}

// Recording holds everything needed to re-simulate a session.
type Recording struct {
	Seed      int64          `json:"seed"`
	StartedAt time.Time      `json:"started_at"`
	Restarted bool           `json:"restarted,omitempty"` // Session began with a restart
	Frames    []FrameRecord  `json:"frames"`
	Final     core.GameState `json:"final"`
}

// lastSpawn returns the spawn timestamp the session started with.
func (r Recording) lastSpawn() time.Time {
	if r.Restarted {
		return r.StartedAt
	}
	return time.Time{}
}

// Duration returns the time between session start and the last frame.
func (r Recording) Duration() time.Duration {
	if len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1].Offset
}

// Player steps a game through a recording one frame at a time, so hosts can
// show a replay at its original pace.
type Player struct {
	game  Game
	rec   Recording
	dst   core.Surface
	next  int
	state core.GameState
}

// NewPlayer resets game to the recorded session start. dst may be nil when
// nothing needs to be drawn.
func NewPlayer(game Game, rec Recording, dst core.Surface) *Player {
	game.Reset(core.RuntimeConfig{Seed: rec.Seed}, rec.lastSpawn())
	return &Player{
		game:  game,
		rec:   rec,
		dst:   dst,
		state: game.State(),
	}
}

// Step plays the next recorded frame. It returns false once the recording is
// exhausted or the game is over.
func (p *Player) Step() bool {
	if p.next >= len(p.rec.Frames) || p.state.GameOver {
		return false
	}

	f := p.rec.Frames[p.next]
	p.next++

	if f.Jump {
		p.game.Jump()
	}
	if p.dst != nil {
		p.dst.Clear()
		p.game.Render(p.dst)
	}
	p.state = p.game.Step(core.NewInputFrame(), p.rec.StartedAt.Add(f.Offset)).State

	if p.state.GameOver {
		if p.dst != nil {
			p.game.RenderGameOver(p.dst)
		}
		return false
	}
	return p.next < len(p.rec.Frames)
}

// Delay returns how long the live session waited before the next frame.
func (p *Player) Delay() time.Duration {
	if p.next >= len(p.rec.Frames) {
		return 0
	}
	if p.next == 0 {
		return p.rec.Frames[0].Offset
	}
	return p.rec.Frames[p.next].Offset - p.rec.Frames[p.next-1].Offset
}

// Progress returns the number of frames played and the total.
func (p *Player) Progress() (played, total int) {
	return p.next, len(p.rec.Frames)
}

// State returns the game state after the last played frame.
func (p *Player) State() core.GameState {
	return p.state
}

// Finish checks the replay against the recording. Call it after Step has
// returned false.
func (p *Player) Finish() (core.GameState, error) {
	if p.next < len(p.rec.Frames) {
		return p.state, fmt.Errorf("%w: game ended at frame %d of %d", ErrReplayDiverged, p.next, len(p.rec.Frames))
	}
	if p.state != p.rec.Final {
		return p.state, fmt.Errorf("%w: recorded score %d (%s) after %d frames, got score %d (%s) after %d frames",
			ErrReplayDiverged,
			p.rec.Final.Score, p.rec.Final.EndReason, p.rec.Final.Frames,
			p.state.Score, p.state.EndReason, p.state.Frames)
	}
	return p.state, nil
}

// Replay re-simulates rec on a freshly constructed game and returns the final
// state. When dst is not nil every frame is drawn to it, so after Replay it
// holds the last frame including the game over message.
func Replay(game Game, rec Recording, dst core.Surface) (core.GameState, error) {
	p := NewPlayer(game, rec, dst)
	for p.Step() {
	}
	return p.Finish()
}
