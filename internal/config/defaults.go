package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
// It mirrors defaults/flappy.yaml and is the fallback when the embedded file
// cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Viewport: Viewport{
			Width:  480,
			Height: 400,
		},
		Player: FlappyPlayer{
			X:      50,
			Radius: 15,
		},
		Physics: FlappyPhysics{
			Gravity:     0.5,
			JumpImpulse: -10,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:    60,
			GapSize:      150,
			FrequencyMS:  1500,
			Speed:        2,
			TopMargin:    50,
			BottomMargin: 50,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
