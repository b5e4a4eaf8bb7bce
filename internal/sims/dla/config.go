package dla

import (
	"fmt"
	"strconv"

	"lattice-growth/internal/core"
)

// Config holds parameters for a lattice DLA run.
type Config struct {
	Width  int
	Height int
	Seed   core.Point

	Attractor Attractor

	// Walkers spawn on SpawnRadius around the seed, take long jumps beyond
	// JumpRadius and are respawned beyond KillRadius. The radii must satisfy
	// 0 < SpawnRadius < JumpRadius < KillRadius.
	SpawnRadius float64
	JumpRadius  float64
	KillRadius  float64

	Particles   int
	Checkpoints int

	// MarkSpawns leaves a marker on every spawn and jump landing cell.
	MarkSpawns bool

	RNGSeed int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:       200,
		Height:      200,
		Seed:        core.Point{X: 100, Y: 100},
		Attractor:   AttractorNone,
		SpawnRadius: 40,
		JumpRadius:  55,
		KillRadius:  70,
		Particles:   600,
		Checkpoints: 30,
		RNGSeed:     42,
	}
}

// Validate checks grid size, seed placement and radius ordering.
func (c Config) Validate() error {
	if c.Width < core.MinGridSize || c.Height < core.MinGridSize {
		return fmt.Errorf("dla: grid %dx%d: %w", c.Width, c.Height, core.ErrInvalidSize)
	}
	if c.Seed.X < 1 || c.Seed.X > c.Width-2 || c.Seed.Y < 1 || c.Seed.Y > c.Height-2 {
		return fmt.Errorf("dla: seed %v outside grid interior: %w", c.Seed, core.ErrOutOfBounds)
	}
	if !(c.SpawnRadius > 0 && c.SpawnRadius < c.JumpRadius && c.JumpRadius < c.KillRadius) {
		return fmt.Errorf("dla: radii spawn=%g jump=%g kill=%g must satisfy 0 < spawn < jump < kill: %w",
			c.SpawnRadius, c.JumpRadius, c.KillRadius, core.ErrInvalidConfiguration)
	}
	if c.Particles < 0 || c.Checkpoints < 0 {
		return fmt.Errorf("dla: negative particles or checkpoints: %w", core.ErrInvalidConfiguration)
	}
	if c.Attractor < AttractorNone || c.Attractor > AttractorLine {
		return fmt.Errorf("dla: %v: %w", c.Attractor, core.ErrInvalidConfiguration)
	}
	return nil
}

// FromMap populates a Config from a string map. Unparsable values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	c.Seed = core.Point{X: c.Width / 2, Y: c.Height / 2}
	if v, ok := cfg["seed_x"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Seed.X = parsed
		}
	}
	if v, ok := cfg["seed_y"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Seed.Y = parsed
		}
	}
	if v, ok := cfg["attractor"]; ok {
		if parsed, err := ParseAttractor(v); err == nil {
			c.Attractor = parsed
		}
	}
	if v, ok := cfg["r_spawn"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.SpawnRadius = parsed
		}
	}
	if v, ok := cfg["r_jump"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.JumpRadius = parsed
		}
	}
	if v, ok := cfg["r_kill"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.KillRadius = parsed
		}
	}
	if v, ok := cfg["particles"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Particles = parsed
		}
	}
	if v, ok := cfg["checkpoints"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Checkpoints = parsed
		}
	}
	if v, ok := cfg["mark_spawns"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.MarkSpawns = parsed
		}
	}
	if v, ok := cfg["rng_seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.RNGSeed = parsed
		}
	}
	return c
}
