// Package config provides YAML-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("config: invalid value")

// FlappyConfig contains all tunable constants of the game.
// Distances are in world units, durations in seconds.
type FlappyConfig struct {
	World     FlappyWorld     `yaml:"world"`
	Player    FlappyPlayer    `yaml:"player"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Scroll    FlappyScroll    `yaml:"scroll"`
	Effects   FlappyEffects   `yaml:"effects"`
}

// FlappyWorld defines the playfield scale and gravity.
type FlappyWorld struct {
	CellWidth  float64 `yaml:"cell_width"`  // World units per terminal column
	CellHeight float64 `yaml:"cell_height"` // World units per terminal row
	Gravity    float64 `yaml:"gravity"`     // Vertical acceleration, negative is down
}

// FlappyPlayer defines the bird.
type FlappyPlayer struct {
	X             float64 `yaml:"x"`      // Fixed distance from the left edge
	Radius        float64 `yaml:"radius"` // Collision circle radius
	Mass          float64 `yaml:"mass"`
	FlapImpulse   float64 `yaml:"flap_impulse"`    // Upward impulse per tap
	HoverHeight   float64 `yaml:"hover_height"`    // Idle hover amplitude
	HoverDuration float64 `yaml:"hover_duration"`  // Time for one hover half-cycle
	FlapFrameTime float64 `yaml:"flap_frame_time"` // Time per wing frame
	FlapFrames    int     `yaml:"flap_frames"`
}

// FlappyObstacles defines obstacle spawning and movement.
type FlappyObstacles struct {
	Speed            float64 `yaml:"speed"`             // Horizontal speed
	Width            float64 `yaml:"width"`             // Barrier width
	Gap              float64 `yaml:"gap"`               // Vertical gap between barriers
	PositionVariance float64 `yaml:"position_variance"` // Max shift of the gap centre
	InitialDelay     float64 `yaml:"initial_delay"`     // Wait before the first spawn
	SpawnInterval    float64 `yaml:"spawn_interval"`    // Wait between spawns
}

// FlappyScroll defines the looping ground and background layers.
type FlappyScroll struct {
	GroundTileWidth     float64 `yaml:"ground_tile_width"`
	GroundHeight        float64 `yaml:"ground_height"`
	BackgroundTileWidth float64 `yaml:"background_tile_width"`
	BackgroundParallax  float64 `yaml:"background_parallax"` // Obstacle speed divisor
}

// FlappyEffects defines transient visual effects.
type FlappyEffects struct {
	ShakeDuration      float64 `yaml:"shake_duration"`
	ShakeAmplitudeX    int     `yaml:"shake_amplitude_x"`
	ShakeAmplitudeY    int     `yaml:"shake_amplitude_y"`
	ScoreBurstDuration float64 `yaml:"score_burst_duration"`
}

// Validate checks that every value the simulation divides by or sizes
// geometry with is usable.
func (c FlappyConfig) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"world.cell_width", c.World.CellWidth},
		{"world.cell_height", c.World.CellHeight},
		{"player.radius", c.Player.Radius},
		{"player.mass", c.Player.Mass},
		{"player.hover_duration", c.Player.HoverDuration},
		{"player.flap_frame_time", c.Player.FlapFrameTime},
		{"obstacles.speed", c.Obstacles.Speed},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.gap", c.Obstacles.Gap},
		{"obstacles.spawn_interval", c.Obstacles.SpawnInterval},
		{"scroll.ground_tile_width", c.Scroll.GroundTileWidth},
		{"scroll.ground_height", c.Scroll.GroundHeight},
		{"scroll.background_tile_width", c.Scroll.BackgroundTileWidth},
		{"scroll.background_parallax", c.Scroll.BackgroundParallax},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}
	if c.Player.FlapFrames <= 0 {
		return fmt.Errorf("%w: player.flap_frames must be positive, got %d", ErrInvalidConfig, c.Player.FlapFrames)
	}
	if c.Obstacles.PositionVariance < 0 {
		return fmt.Errorf("%w: obstacles.position_variance must not be negative", ErrInvalidConfig)
	}
	if c.Obstacles.InitialDelay < 0 {
		return fmt.Errorf("%w: obstacles.initial_delay must not be negative", ErrInvalidConfig)
	}
	if c.Effects.ShakeDuration < 0 || c.Effects.ScoreBurstDuration < 0 {
		return fmt.Errorf("%w: effect durations must not be negative", ErrInvalidConfig)
	}
	if c.Effects.ShakeAmplitudeX < 0 || c.Effects.ShakeAmplitudeY < 0 {
		return fmt.Errorf("%w: shake amplitudes must not be negative", ErrInvalidConfig)
	}
	return nil
}
