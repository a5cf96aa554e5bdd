package core

import "time"

// RuntimeConfig contains configuration passed to the game by its host.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters (terminal hosts only)
	ScreenH  int   // Terminal height in characters (terminal hosts only)
	TickRate int   // Frames per second for hosts without a display refresh
	Seed     int64 // RNG seed for obstacle offsets
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// ResolveSeed returns cfg with a time-based seed when none was given.
func (cfg RuntimeConfig) ResolveSeed() RuntimeConfig {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// Phase is the state of a play session.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseOver
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseOver {
		return "over"
	}
	return "running"
}

// GameState represents the current state of a game.
type GameState struct {
	Score     int    // Pipes passed this session
	GameOver  bool   // Whether the session has ended
	EndReason string // What ended the session; empty while running
	Frames    int    // Frames stepped this session
}

// Phase returns the session phase implied by the state.
func (s GameState) Phase() Phase {
	if s.GameOver {
		return PhaseOver
	}
	return PhaseRunning
}

// StepResult is returned by a game after each frame.
type StepResult struct {
	State GameState
	// Passed is the number of obstacles passed during this frame.
	Passed int
}
