// Package eden implements lattice Eden growth: starting from seed cells, each
// iteration occupies one empty boundary cell chosen uniformly at random.
package eden

import (
	"context"
	"fmt"

	"lattice-growth/internal/core"
	"lattice-growth/internal/snapshot"
)

// Phase describes where a run is in its lifecycle.
type Phase int

const (
	// PhaseSeeded means only the seed cells are occupied.
	PhaseSeeded Phase = iota
	// PhaseGrowing means at least one iteration has completed.
	PhaseGrowing
	// PhaseExhausted means no frontier cell is left to occupy.
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseSeeded:
		return "seeded"
	case PhaseGrowing:
		return "growing"
	case PhaseExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Engine runs Eden growth on its own grid.
type Engine struct {
	cfg      Config
	grid     *core.Grid
	frontier *FrontierSet
	rng      core.Rand
	rec      *snapshot.Recorder
	iter     int
}

// New validates cfg and seeds a fresh grid. A nil rng is replaced by one seeded
// from cfg.RNGSeed.
func New(cfg Config, rng core.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, rng: core.OrSeeded(rng, cfg.RNGSeed)}
	if err := e.seed(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) seed() error {
	g, err := core.NewGrid(e.cfg.Width, e.cfg.Height, core.EdenEncoding)
	if err != nil {
		return fmt.Errorf("eden: %w", err)
	}
	for _, s := range e.cfg.Seeds {
		if err := g.Occupy(s.X, s.Y); err != nil {
			return fmt.Errorf("eden: seed: %w", err)
		}
	}
	e.grid = g
	e.frontier = NewFrontierSet(g, e.cfg.Rule)
	e.rec = snapshot.NewRecorder(e.cfg.Iterations, e.cfg.Checkpoints)
	e.iter = 0
	return nil
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "eden" }

// Size returns the grid dimensions.
func (e *Engine) Size() core.Size { return e.grid.Size() }

// Cells exposes the encoded grid (0 empty, 1 occupied).
func (e *Engine) Cells() []uint8 { return e.grid.Cells() }

// Grid exposes the engine's grid for inspection.
func (e *Engine) Grid() *core.Grid { return e.grid }

// Frontier exposes the frontier set for inspection.
func (e *Engine) Frontier() *FrontierSet { return e.frontier }

// FrontierCells lists the current frontier.
func (e *Engine) FrontierCells() []core.Point { return e.frontier.Cells() }

// Status describes the growth phase and frontier size.
func (e *Engine) Status() []string {
	return []string{
		fmt.Sprintf("phase %s", e.Phase()),
		fmt.Sprintf("frontier %d", e.frontier.Len()),
		fmt.Sprintf("occupied %d", e.grid.CountOccupied()),
	}
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Iteration reports how many cells have been grown so far.
func (e *Engine) Iteration() int { return e.iter }

// Done reports whether the configured number of iterations has completed.
func (e *Engine) Done() bool { return e.iter >= e.cfg.Iterations }

// Phase reports the lifecycle phase.
func (e *Engine) Phase() Phase {
	switch {
	case e.frontier.Len() == 0:
		return PhaseExhausted
	case e.iter == 0:
		return PhaseSeeded
	default:
		return PhaseGrowing
	}
}

// Reset reseeds the random source and restarts growth from the seed cells. A
// zero seed reuses the configured RNGSeed.
func (e *Engine) Reset(seed int64) error {
	if seed == 0 {
		seed = e.cfg.RNGSeed
	}
	e.rng = core.NewRNG(seed)
	return e.seed()
}

// Step occupies one frontier cell chosen uniformly at random.
func (e *Engine) Step() error {
	next, err := e.frontier.Pick(e.rng)
	if err != nil {
		return fmt.Errorf("eden: iteration %d: %w", e.iter, err)
	}
	if err := e.grid.Occupy(next.X, next.Y); err != nil {
		return fmt.Errorf("eden: iteration %d: %w", e.iter, err)
	}
	e.frontier.Grow(next)
	if e.iter < e.cfg.Iterations {
		e.rec.Observe(e.grid, e.iter)
	}
	e.iter++
	return nil
}

// Run grows until the configured iteration count and returns the recorded
// snapshots. The context is checked once per iteration.
func (e *Engine) Run(ctx context.Context) ([]snapshot.Snapshot, error) {
	for !e.Done() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("eden: iteration %d: %w", e.iter, err)
		}
		if err := e.Step(); err != nil {
			return nil, err
		}
	}
	return e.rec.All(), nil
}

// Parameters describes the running configuration.
func (e *Engine) Parameters() core.ParameterSnapshot {
	c := e.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Plate",
			Params: []core.Parameter{
				core.IntParam("w", "Width", c.Width),
				core.IntParam("h", "Height", c.Height),
				core.StringParam("seeds", "Seed cells", formatPoints(c.Seeds)),
			},
		},
		{
			Name: "Growth",
			Params: []core.Parameter{
				core.IntParam("iterations", "Iterations", c.Iterations),
				core.IntParam("checkpoints", "Checkpoints", c.Checkpoints),
				core.StringParam("rule", "Rule", c.Rule.String()),
				core.Int64Param("rng_seed", "RNG seed", c.RNGSeed),
			},
		},
	}}
}

func init() {
	core.Register("eden", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg), nil)
	})
}
