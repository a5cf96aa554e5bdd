package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player-controlled body. X, Radius, Gravity and Impulse never
// change during a session; Y and Velocity are integrated once per frame.
type Bird struct {
	X        float64 // Horizontal center
	Y        float64 // Vertical center, grows downward
	Radius   float64
	Velocity float64 // Vertical velocity, positive = falling
	Gravity  float64 // Added to Velocity every frame
	Impulse  float64 // Velocity after a flap (negative = up)
}

// NewBird creates a bird resting at the vertical center of the viewport.
func NewBird(cfg config.FlappyConfig) Bird {
	return Bird{
		X:        cfg.Player.X,
		Y:        cfg.Viewport.Height / 2,
		Radius:   cfg.Player.Radius,
		Velocity: 0,
		Gravity:  cfg.Physics.Gravity,
		Impulse:  cfg.Physics.JumpImpulse,
	}
}

// Flap replaces the current velocity with the upward impulse.
func (b *Bird) Flap() {
	b.Velocity = b.Impulse
}

// Update integrates gravity into velocity, then velocity into position.
func (b *Bird) Update() {
	b.Velocity += b.Gravity
	b.Y += b.Velocity
}

// Top returns the y-coordinate of the bird's upper edge.
func (b Bird) Top() float64 {
	return b.Y - b.Radius
}

// Bottom returns the y-coordinate of the bird's lower edge.
func (b Bird) Bottom() float64 {
	return b.Y + b.Radius
}

// Bounds returns the bird's bounding box; collisions treat the bird as this box.
func (b Bird) Bounds() core.Box {
	return core.Box{
		X: b.X - b.Radius,
		Y: b.Y - b.Radius,
		W: 2 * b.Radius,
		H: 2 * b.Radius,
	}
}
