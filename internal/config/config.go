// Package config provides YAML-based game configuration loading and
// validation for the game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned (wrapped) when a configuration cannot produce a
// playable game.
var ErrInvalid = errors.New("config: invalid configuration")

// FlappyConfig contains all configuration for the Flappy Bird game.
type FlappyConfig struct {
	Viewport  Viewport        `yaml:"viewport" json:"viewport" jsonschema:"required"`
	Player    FlappyPlayer    `yaml:"player" json:"player" jsonschema:"required"`
	Physics   FlappyPhysics   `yaml:"physics" json:"physics" jsonschema:"required"`
	Obstacles FlappyObstacles `yaml:"obstacles" json:"obstacles" jsonschema:"required"`
}

// Viewport is the size of the playfield in world units.
type Viewport struct {
	Width  float64 `yaml:"width" json:"width" jsonschema:"required,minimum=1"`
	Height float64 `yaml:"height" json:"height" jsonschema:"required,minimum=1"`
}

// FlappyPlayer defines the bird.
type FlappyPlayer struct {
	X      float64 `yaml:"x" json:"x" jsonschema:"description=Horizontal position of the bird center"`
	Radius float64 `yaml:"radius" json:"radius" jsonschema:"minimum=1"`
}

// FlappyPhysics defines physics parameters.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity" json:"gravity" jsonschema:"description=Added to vertical velocity every frame"`
	JumpImpulse float64 `yaml:"jump_impulse" json:"jump_impulse" jsonschema:"description=Velocity set by a flap; negative is up"`
}

// FlappyObstacles defines pipe parameters.
type FlappyObstacles struct {
	PipeWidth    float64 `yaml:"pipe_width" json:"pipe_width" jsonschema:"minimum=1"`
	GapSize      float64 `yaml:"gap_size" json:"gap_size" jsonschema:"minimum=1"`
	FrequencyMS  int     `yaml:"frequency_ms" json:"frequency_ms" jsonschema:"minimum=1,description=Wall-clock milliseconds between pipe spawns"`
	Speed        float64 `yaml:"speed" json:"speed" jsonschema:"description=Leftward scroll per frame"`
	TopMargin    int     `yaml:"top_margin" json:"top_margin" jsonschema:"minimum=0"`
	BottomMargin int     `yaml:"bottom_margin" json:"bottom_margin" jsonschema:"minimum=0"`
}

// Frequency returns the spawn interval as a duration.
func (o FlappyObstacles) Frequency() time.Duration {
	return time.Duration(o.FrequencyMS) * time.Millisecond
}

// GapTopRange returns the half-open range [lo, hi) of gap top offsets that
// keep the gap inside the viewport margins.
func (c FlappyConfig) GapTopRange() (lo, hi int) {
	lo = c.Obstacles.TopMargin
	hi = int(c.Viewport.Height-c.Obstacles.GapSize) - c.Obstacles.BottomMargin
	return lo, hi
}

// Validate checks that the configuration describes a playable game.
func (c FlappyConfig) Validate() error {
	switch {
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport must be positive, got %vx%v", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	case c.Player.Radius <= 0:
		return fmt.Errorf("%w: player radius must be positive", ErrInvalid)
	case c.Player.X-c.Player.Radius < 0 || c.Player.X+c.Player.Radius > c.Viewport.Width:
		return fmt.Errorf("%w: player x=%v does not fit the viewport", ErrInvalid, c.Player.X)
	case 2*c.Player.Radius >= c.Viewport.Height:
		return fmt.Errorf("%w: player does not fit between floor and ceiling", ErrInvalid)
	case c.Physics.Gravity < 0:
		return fmt.Errorf("%w: gravity must not be negative", ErrInvalid)
	case c.Physics.JumpImpulse >= 0:
		return fmt.Errorf("%w: jump_impulse must be negative (upward), got %v", ErrInvalid, c.Physics.JumpImpulse)
	case c.Obstacles.PipeWidth <= 0:
		return fmt.Errorf("%w: pipe_width must be positive", ErrInvalid)
	case c.Obstacles.GapSize <= 0:
		return fmt.Errorf("%w: gap_size must be positive", ErrInvalid)
	case c.Obstacles.FrequencyMS <= 0:
		return fmt.Errorf("%w: frequency_ms must be positive", ErrInvalid)
	case c.Obstacles.Speed <= 0:
		return fmt.Errorf("%w: speed must be positive", ErrInvalid)
	case c.Obstacles.TopMargin < 0 || c.Obstacles.BottomMargin < 0:
		return fmt.Errorf("%w: margins must not be negative", ErrInvalid)
	}

	if lo, hi := c.GapTopRange(); hi <= lo {
		return fmt.Errorf("%w: gap_size %v with margins %d/%d leaves no room in height %v",
			ErrInvalid, c.Obstacles.GapSize, c.Obstacles.TopMargin, c.Obstacles.BottomMargin, c.Viewport.Height)
	}
	return nil
}
