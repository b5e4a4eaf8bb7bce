// Package dla implements lattice diffusion-limited aggregation. Walkers spawn
// on a circle around the seed, random-walk on the 4-neighbourhood and stick
// next to the first occupied cell they touch. Walkers that stray beyond the
// jump radius take long jumps around their own position; beyond the kill
// radius they are respawned on the spawn circle.
package dla

import (
	"context"
	"fmt"

	"lattice-growth/internal/core"
	"lattice-growth/internal/snapshot"
)

// cancelEvery is the number of walk steps between context checks.
const cancelEvery = 4096

// Phase is the state of the current walker.
type Phase int

const (
	// PhaseSpawned walkers were just placed on the spawn circle.
	PhaseSpawned Phase = iota
	// PhaseWalking walkers are taking unit steps.
	PhaseWalking
	// PhaseTeleported walkers were moved by a jump or a kill respawn.
	PhaseTeleported
	// PhaseCaptured walkers have stuck to the aggregate.
	PhaseCaptured
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawned:
		return "spawned"
	case PhaseWalking:
		return "walking"
	case PhaseTeleported:
		return "teleported"
	case PhaseCaptured:
		return "captured"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Particle is an in-flight random walker.
type Particle struct {
	Pos   core.Point
	Phase Phase
}

// Stats counts walker events over a run.
type Stats struct {
	Spawns int
	Steps  int
	Jumps  int
	Kills  int
}

// Engine runs DLA on its own grid, one walker at a time.
type Engine struct {
	cfg  Config
	grid *core.Grid
	rng  core.Rand
	rec  *snapshot.Recorder

	jump2, kill2 float64

	// sites counts the free interior cells with an occupied 4-neighbour,
	// the only cells a walker can stick to.
	sites int

	walker Particle
	stats  Stats
	iter   int
}

// New validates cfg, occupies the seed and draws the attractor. A nil rng is
// replaced by one seeded from cfg.RNGSeed.
func New(cfg Config, rng core.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:   cfg,
		rng:   core.OrSeeded(rng, cfg.RNGSeed),
		jump2: cfg.JumpRadius * cfg.JumpRadius,
		kill2: cfg.KillRadius * cfg.KillRadius,
	}
	if err := e.seed(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) seed() error {
	g, err := core.NewGrid(e.cfg.Width, e.cfg.Height, core.DLAEncoding)
	if err != nil {
		return fmt.Errorf("dla: %w", err)
	}
	e.grid = g
	e.sites = 0
	if err := e.occupy(e.cfg.Seed); err != nil {
		return fmt.Errorf("dla: seed: %w", err)
	}
	for _, p := range e.cfg.Attractor.Points(e.cfg.Seed, e.rng) {
		if g.Interior(p.X, p.Y) {
			_ = e.occupy(p)
		}
	}
	e.rec = snapshot.NewRecorder(e.cfg.Particles, e.cfg.Checkpoints)
	e.walker = Particle{}
	e.stats = Stats{}
	e.iter = 0
	return nil
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "dla" }

// Size returns the grid dimensions.
func (e *Engine) Size() core.Size { return e.grid.Size() }

// Cells exposes the encoded grid (0 empty, 2 occupied, 3 marker).
func (e *Engine) Cells() []uint8 { return e.grid.Cells() }

// Grid exposes the engine's grid for inspection.
func (e *Engine) Grid() *core.Grid { return e.grid }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Iteration reports how many particles have been captured.
func (e *Engine) Iteration() int { return e.iter }

// Done reports whether the configured number of particles has been captured.
func (e *Engine) Done() bool { return e.iter >= e.cfg.Particles }

// Walker returns the most recent walker state.
func (e *Engine) Walker() Particle { return e.walker }

// Stats returns walker event counts accumulated since the last reset.
func (e *Engine) Stats() Stats { return e.stats }

// WalkerPos returns the position of the most recent walker.
func (e *Engine) WalkerPos() core.Point { return e.walker.Pos }

// Radii returns the seed with the spawn, jump and kill radii.
func (e *Engine) Radii() (core.Point, []float64) {
	return e.cfg.Seed, []float64{e.cfg.SpawnRadius, e.cfg.JumpRadius, e.cfg.KillRadius}
}

// Status describes the walker and its event counts.
func (e *Engine) Status() []string {
	return []string{
		fmt.Sprintf("walker %v %s", e.walker.Pos, e.walker.Phase),
		fmt.Sprintf("spawns %d jumps %d kills %d", e.stats.Spawns, e.stats.Jumps, e.stats.Kills),
		fmt.Sprintf("steps %d", e.stats.Steps),
	}
}

// Reset reseeds the random source and restarts from the initial plate. A zero
// seed reuses the configured RNGSeed.
func (e *Engine) Reset(seed int64) error {
	if seed == 0 {
		seed = e.cfg.RNGSeed
	}
	e.rng = core.NewRNG(seed)
	return e.seed()
}

// Step releases one walker and occupies the cell where it is captured.
func (e *Engine) Step() error {
	return e.step(context.Background())
}

func (e *Engine) step(ctx context.Context) error {
	if e.sites == 0 {
		return fmt.Errorf("dla: particle %d: no free cell touches the aggregate: %w", e.iter, core.ErrFrontierExhausted)
	}
	p, err := e.release(ctx)
	if err != nil {
		return fmt.Errorf("dla: particle %d: %w", e.iter, err)
	}
	if err := e.occupy(p); err != nil {
		return fmt.Errorf("dla: particle %d: %w", e.iter, err)
	}
	if e.iter < e.cfg.Particles {
		e.rec.Observe(e.grid, e.iter)
	}
	e.iter++
	return nil
}

// occupy adds p to the aggregate and keeps the capture site count current.
func (e *Engine) occupy(p core.Point) error {
	g := e.grid
	if g.IsOccupied(p.X, p.Y) {
		return nil
	}
	wasSite := g.Interior(p.X, p.Y) && g.HasOccupiedNeighbor(p.X, p.Y)
	if err := g.Occupy(p.X, p.Y); err != nil {
		return err
	}
	if wasSite {
		e.sites--
	}
	for _, d := range core.Neighbors4 {
		n := p.Add(d)
		if g.Interior(n.X, n.Y) && !g.IsOccupied(n.X, n.Y) && g.OccupiedNeighbors(n.X, n.Y) == 1 {
			e.sites++
		}
	}
	return nil
}

// Run aggregates the configured number of particles and returns the recorded
// snapshots. The context is checked before every particle and periodically
// during long walks.
func (e *Engine) Run(ctx context.Context) ([]snapshot.Snapshot, error) {
	for !e.Done() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("dla: particle %d: %w", e.iter, err)
		}
		if err := e.step(ctx); err != nil {
			return nil, err
		}
	}
	return e.rec.All(), nil
}

// release spawns a walker and moves it until it is captured. Capture is
// checked on every cell the walker reaches, including spawn and jump landings.
// Unit steps never enter an occupied cell.
func (e *Engine) release(ctx context.Context) (core.Point, error) {
	p, err := e.spawn()
	if err != nil {
		return core.Point{}, err
	}
	e.walker = Particle{Pos: p, Phase: PhaseSpawned}
	for n := 1; ; n++ {
		if e.captures(e.walker.Pos) {
			e.walker.Phase = PhaseCaptured
			return e.walker.Pos, nil
		}
		if n%cancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return core.Point{}, err
			}
		}
		next := e.walker.Pos.Add(core.Neighbors4[e.rng.IntN(len(core.Neighbors4))])
		if e.grid.IsOccupied(next.X, next.Y) {
			continue
		}
		e.walker.Pos = next
		e.walker.Phase = PhaseWalking
		e.stats.Steps++
		if e.walker.Pos, err = e.constrain(e.walker.Pos); err != nil {
			return core.Point{}, err
		}
	}
}

// captures reports whether a walker at p sticks: p must be a free interior
// cell with an occupied 4-neighbour.
func (e *Engine) captures(p core.Point) bool {
	g := e.grid
	return g.Interior(p.X, p.Y) && !g.IsOccupied(p.X, p.Y) && g.HasOccupiedNeighbor(p.X, p.Y)
}

// constrain applies the radius rules until the walker is back inside the
// jump radius. Beyond the kill radius the walker respawns around the seed;
// between jump and kill radius it jumps to a random point on a circle of
// JumpRadius around its own position.
func (e *Engine) constrain(p core.Point) (core.Point, error) {
	var err error
	for {
		d2 := float64(p.Dist2(e.cfg.Seed))
		switch {
		case d2 > e.kill2:
			e.stats.Kills++
			p, err = e.spawn()
		case d2 > e.jump2:
			e.stats.Jumps++
			p, err = e.land(p, e.cfg.JumpRadius)
		default:
			return p, nil
		}
		if err != nil {
			return core.Point{}, err
		}
		e.walker.Phase = PhaseTeleported
	}
}

func (e *Engine) spawn() (core.Point, error) {
	e.stats.Spawns++
	return e.land(e.cfg.Seed, e.cfg.SpawnRadius)
}

// land picks a uniformly random point on the circle of radius r around center.
// When that cell is occupied it moves along the circle to the next free cell,
// so walkers never start inside the aggregate. A marker is left on the landing
// cell when spawn tracing is enabled.
func (e *Engine) land(center core.Point, r float64) (core.Point, error) {
	u := e.rng.Float64()
	samples := int(8*r) + 8
	for i := 0; i < samples; i++ {
		p := onCircle(center, r, u+float64(i)/float64(samples))
		if e.grid.IsOccupied(p.X, p.Y) {
			continue
		}
		if e.cfg.MarkSpawns && e.grid.InBounds(p.X, p.Y) {
			_ = e.grid.Set(p.X, p.Y, core.Marker)
		}
		return p, nil
	}
	return core.Point{}, fmt.Errorf("circle of radius %g around %v: %w", r, center, core.ErrSpawnBlocked)
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
				core.IntParam("seed_x", "Seed x", c.Seed.X),
				core.IntParam("seed_y", "Seed y", c.Seed.Y),
				core.StringParam("attractor", "Attractor", c.Attractor.String()),
			},
		},
		{
			Name: "Walkers",
			Params: []core.Parameter{
				core.FloatParam("r_spawn", "Spawn radius", c.SpawnRadius),
				core.FloatParam("r_jump", "Jump radius", c.JumpRadius),
				core.FloatParam("r_kill", "Kill radius", c.KillRadius),
				core.IntParam("particles", "Particles", c.Particles),
				core.IntParam("checkpoints", "Checkpoints", c.Checkpoints),
				core.BoolParam("mark_spawns", "Mark spawns", c.MarkSpawns),
				core.Int64Param("rng_seed", "RNG seed", c.RNGSeed),
			},
		},
	}}
}

func init() {
	core.Register("dla", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg), nil)
	})
}
