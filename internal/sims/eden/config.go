package eden

import (
	"fmt"
	"strconv"
	"strings"

	"lattice-growth/internal/core"
)

// Config holds parameters for an Eden growth run.
type Config struct {
	Width  int
	Height int

	// Seeds are occupied before growth starts. The first one is the canonical
	// seed cell of the run.
	Seeds []core.Point

	Iterations  int
	Checkpoints int
	Rule        Rule

	RNGSeed int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:       200,
		Height:      200,
		Seeds:       []core.Point{{X: 100, Y: 100}},
		Iterations:  3000,
		Checkpoints: 30,
		Rule:        RuleEden,
		RNGSeed:     42,
	}
}

// Validate checks the configuration against the grid margin rules.
func (c Config) Validate() error {
	if c.Width < core.MinGridSize || c.Height < core.MinGridSize {
		return fmt.Errorf("eden: grid %dx%d: %w", c.Width, c.Height, core.ErrInvalidSize)
	}
	if len(c.Seeds) == 0 {
		return fmt.Errorf("eden: no seed cell: %w", core.ErrInvalidConfiguration)
	}
	for _, s := range c.Seeds {
		if s.X < 1 || s.X > c.Width-2 || s.Y < 1 || s.Y > c.Height-2 {
			return fmt.Errorf("eden: seed %v outside grid interior: %w", s, core.ErrOutOfBounds)
		}
	}
	if c.Iterations < 0 || c.Checkpoints < 0 {
		return fmt.Errorf("eden: negative iterations or checkpoints: %w", core.ErrInvalidConfiguration)
	}
	if c.Rule != RuleEden && c.Rule != RuleTree {
		return fmt.Errorf("eden: %v: %w", c.Rule, core.ErrInvalidConfiguration)
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
	seed := core.Point{X: c.Width / 2, Y: c.Height / 2}
	if v, ok := cfg["seed_x"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			seed.X = parsed
		}
	}
	if v, ok := cfg["seed_y"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			seed.Y = parsed
		}
	}
	c.Seeds = []core.Point{seed}
	if v, ok := cfg["seeds"]; ok {
		if parsed, err := ParsePoints(v); err == nil && len(parsed) > 0 {
			c.Seeds = parsed
		}
	}
	if v, ok := cfg["iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Iterations = parsed
		}
	}
	if v, ok := cfg["checkpoints"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Checkpoints = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := ParseRule(v); err == nil {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["rng_seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.RNGSeed = parsed
		}
	}
	return c
}

// ParsePoints parses a list such as "10,10;20,25" into points.
func ParsePoints(s string) ([]core.Point, error) {
	var out []core.Point
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		xs, ys, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("point %q: want x,y", part)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", part, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", part, err)
		}
		out = append(out, core.Point{X: x, Y: y})
	}
	return out, nil
}

func formatPoints(ps []core.Point) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
	}
	return strings.Join(parts, ";")
}
