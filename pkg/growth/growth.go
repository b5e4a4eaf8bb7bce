// Package growth is the public entry point for running the lattice growth
// models headlessly. Each Run function builds an engine, grows it to
// completion and returns the checkpoint snapshots in iteration order.
package growth

import (
	"context"
	"fmt"

	"lattice-growth/internal/core"
	"lattice-growth/internal/sims/dla"
	"lattice-growth/internal/sims/eden"
	"lattice-growth/internal/snapshot"
)

type (
	// Point is a lattice coordinate (x, y).
	Point = core.Point
	// Snapshot is a copy of a plate taken at a checkpoint.
	Snapshot = snapshot.Snapshot
	// Attractor selects the shape pre-occupied around the DLA seed.
	Attractor = dla.Attractor
	// Rule selects which frontier cells Eden may grow into.
	Rule = eden.Rule
)

// Attractor shapes.
const (
	// AttractorNone occupies only the seed.
	AttractorNone = dla.AttractorNone
	// AttractorCircle scatters occupied points on a circle around the seed.
	AttractorCircle = dla.AttractorCircle
	// AttractorLine occupies a vertical line through the seed.
	AttractorLine = dla.AttractorLine
)

// Eden growth rules.
const (
	// RuleEden grows into any frontier cell.
	RuleEden = eden.RuleEden
	// RuleTree grows only into frontier cells with exactly one occupied
	// neighbour, so the cluster stays a tree.
	RuleTree = eden.RuleTree
)

// Errors returned by the Run functions. Test with errors.Is.
var (
	ErrInvalidSize          = core.ErrInvalidSize
	ErrInvalidConfiguration = core.ErrInvalidConfiguration
	ErrOutOfBounds          = core.ErrOutOfBounds
	ErrFrontierExhausted    = core.ErrFrontierExhausted
	ErrSizeMismatch         = core.ErrSizeMismatch
	ErrSpawnBlocked         = core.ErrSpawnBlocked
)

// EdenOptions configures RunEden.
type EdenOptions struct {
	Width, Height int
	Iterations    int
	Seed          Point
	// ExtraSeeds are occupied alongside Seed before growth starts.
	ExtraSeeds  []Point
	Checkpoints int
	Rule        Rule
	RNGSeed     int64
}

func (o EdenOptions) config() eden.Config {
	return eden.Config{
		Width:       o.Width,
		Height:      o.Height,
		Seeds:       append([]core.Point{o.Seed}, o.ExtraSeeds...),
		Iterations:  o.Iterations,
		Checkpoints: o.Checkpoints,
		Rule:        o.Rule,
		RNGSeed:     o.RNGSeed,
	}
}

// DLAOptions configures RunDLA. Particles is the number of walkers aggregated.
type DLAOptions struct {
	Width, Height int
	Particles     int
	Seed          Point
	Attractor     Attractor
	SpawnRadius   float64
	KillRadius    float64
	JumpRadius    float64
	Checkpoints   int
	MarkSpawns    bool
	RNGSeed       int64
}

func (o DLAOptions) config() dla.Config {
	return dla.Config{
		Width:       o.Width,
		Height:      o.Height,
		Seed:        o.Seed,
		Attractor:   o.Attractor,
		SpawnRadius: o.SpawnRadius,
		JumpRadius:  o.JumpRadius,
		KillRadius:  o.KillRadius,
		Particles:   o.Particles,
		Checkpoints: o.Checkpoints,
		MarkSpawns:  o.MarkSpawns,
		RNGSeed:     o.RNGSeed,
	}
}

// RunEden grows an Eden cluster and returns its checkpoint snapshots. Running
// out of frontier before the requested iterations fails with
// ErrFrontierExhausted.
func RunEden(ctx context.Context, o EdenOptions) ([]Snapshot, error) {
	e, err := eden.New(o.config(), nil)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx)
}

// RunDLA aggregates o.Particles walkers and returns the checkpoint snapshots.
// A plate with no free interior cell left next to the aggregate fails with
// ErrFrontierExhausted.
func RunDLA(ctx context.Context, o DLAOptions) ([]Snapshot, error) {
	e, err := dla.New(o.config(), nil)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx)
}

// RunCombined runs Eden and then DLA on separate plates of the same size and
// returns their snapshots summed pairwise. Eden cells read 1, DLA cells 2 and
// cells grown by both 3. The shorter series is padded with its final plate.
// Spawn markers would also read 3, so d.MarkSpawns is ignored.
func RunCombined(ctx context.Context, e EdenOptions, d DLAOptions) ([]Snapshot, error) {
	d.MarkSpawns = false
	if e.Width != d.Width || e.Height != d.Height {
		return nil, fmt.Errorf("eden %dx%d, dla %dx%d: %w", e.Width, e.Height, d.Width, d.Height, ErrSizeMismatch)
	}
	edenShots, err := RunEden(ctx, e)
	if err != nil {
		return nil, err
	}
	dlaShots, err := RunDLA(ctx, d)
	if err != nil {
		return nil, err
	}
	return snapshot.CompositeSeries(edenShots, dlaShots)
}
