package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pipe represents a vertical obstacle with a gap for the bird to pass through.
type Pipe struct {
	X      float64 // Horizontal position (left edge)
	GapTop float64 // Y position where the gap starts
	Passed bool    // Whether the bird has passed this pipe (for scoring)
}

// TopRect returns the pipe section above the gap.
func (p Pipe) TopRect(pipeWidth float64) core.Box {
	return core.Box{X: p.X, Y: 0, W: pipeWidth, H: p.GapTop}
}

// BottomRect returns the pipe section below the gap.
func (p Pipe) BottomRect(pipeWidth, gapSize, viewportH float64) core.Box {
	bottomY := p.GapTop + gapSize
	return core.Box{X: p.X, Y: bottomY, W: pipeWidth, H: viewportH - bottomY}
}

// PipeStream handles spawning, movement, scoring and removal of pipes.
type PipeStream struct {
	pipes     []Pipe
	rng       *rand.Rand
	cfg       config.FlappyConfig
	lastSpawn time.Time
}

// NewPipeStream creates an empty stream with the given RNG seed whose spawn
// timer counts from lastSpawn.
func NewPipeStream(cfg config.FlappyConfig, seed int64, lastSpawn time.Time) *PipeStream {
	ps := &PipeStream{
		pipes: make([]Pipe, 0, 8),
		cfg:   cfg,
	}
	ps.Reset(seed, lastSpawn)
	return ps
}

// Reset clears all pipes, reseeds the RNG and sets the spawn timestamp.
func (ps *PipeStream) Reset(seed int64, lastSpawn time.Time) {
	ps.pipes = ps.pipes[:0]
	ps.rng = rand.New(rand.NewSource(seed))
	ps.lastSpawn = lastSpawn
}

// Spawn appends a pipe at the right edge if more than the spawn interval has
// elapsed since the previous spawn. Reports whether a pipe was added.
func (ps *PipeStream) Spawn(now time.Time) bool {
	if now.Sub(ps.lastSpawn) <= ps.cfg.Obstacles.Frequency() {
		return false
	}

	lo, hi := ps.cfg.GapTopRange()
	gapTop := lo + ps.rng.Intn(hi-lo)

	ps.pipes = append(ps.pipes, Pipe{
		X:      ps.cfg.Viewport.Width,
		GapTop: float64(gapTop),
	})
	ps.lastSpawn = now
	return true
}

// Advance scrolls every pipe left by the configured speed, checks it against
// the bird and drops pipes that are fully off-screen.
// Returns the number of pipes newly passed and whether the bird hit any pipe.
func (ps *PipeStream) Advance(bird Bird) (passed int, hit bool) {
	width := ps.cfg.Obstacles.PipeWidth

	for i := range ps.pipes {
		p := &ps.pipes[i]
		p.X -= ps.cfg.Obstacles.Speed

		if ps.Collides(bird, *p) {
			hit = true
		}

		if !p.Passed && bird.X > p.X+width {
			p.Passed = true
			passed++
		}
	}

	// Remove pipes that have moved off the left side
	visible := ps.pipes[:0]
	for _, p := range ps.pipes {
		if p.X+width >= 0 {
			visible = append(visible, p)
		}
	}
	ps.pipes = visible

	return passed, hit
}

// Collides reports whether the bird overlaps the pipe horizontally while
// sticking out above or below its gap.
func (ps *PipeStream) Collides(bird Bird, p Pipe) bool {
	column := core.Box{X: p.X, W: ps.cfg.Obstacles.PipeWidth}
	if !bird.Bounds().OverlapsX(column) {
		return false
	}
	return bird.Top() < p.GapTop || bird.Bottom() > p.GapTop+ps.cfg.Obstacles.GapSize
}

// Pipes returns the current pipes, oldest (leftmost) first.
func (ps *PipeStream) Pipes() []Pipe {
	return ps.pipes
}
