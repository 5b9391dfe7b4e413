package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			CellWidth:  8,
			CellHeight: 24,
			Gravity:    -1200,
		},
		Player: FlappyPlayer{
			X:             100,
			Radius:        12,
			Mass:          1,
			FlapImpulse:   450,
			HoverHeight:   15,
			HoverDuration: 0.8,
			FlapFrameTime: 0.2,
			FlapFrames:    3,
		},
		Obstacles: FlappyObstacles{
			Speed:            100,
			Width:            48,
			Gap:              160,
			PositionVariance: 100,
			InitialDelay:     3,
			SpawnInterval:    1.5,
		},
		Scroll: FlappyScroll{
			GroundTileWidth:     96,
			GroundHeight:        48,
			BackgroundTileWidth: 160,
			BackgroundParallax:  3,
		},
		Effects: FlappyEffects{
			ShakeDuration:      1,
			ShakeAmplitudeX:    3,
			ShakeAmplitudeY:    3,
			ScoreBurstDuration: 1,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
