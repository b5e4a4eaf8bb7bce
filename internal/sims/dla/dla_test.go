package dla

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"lattice-growth/internal/analysis"
	"lattice-growth/internal/core"
)

// fixedRand replays a fixed list of uniform samples and always walks in the
// first direction.
type fixedRand struct {
	u []float64
	i int
}

func (f *fixedRand) Float64() float64 {
	v := f.u[f.i%len(f.u)]
	f.i++
	return v
}

func (f *fixedRand) IntN(int) int { return 0 }

func testConfig(w, h int, seed core.Point, spawn, jump, kill float64, particles int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Seed = seed
	cfg.SpawnRadius = spawn
	cfg.JumpRadius = jump
	cfg.KillRadius = kill
	cfg.Particles = particles
	cfg.Checkpoints = particles
	return cfg
}

func TestSingleParticleSticksToSeed(t *testing.T) {
	seed := core.Point{X: 10, Y: 10}
	for s := int64(1); s <= 20; s++ {
		e, err := New(testConfig(21, 21, seed, 5, 8, 12, 1), core.NewRNG(s))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		shots, err := e.Run(context.Background())
		if err != nil {
			t.Fatalf("seed %d: Run: %v", s, err)
		}
		if len(shots) != 1 {
			t.Fatalf("snapshots = %d, want 1", len(shots))
		}
		g := e.Grid()
		if got := g.CountOccupied(); got != 2 {
			t.Fatalf("seed %d: occupied = %d, want 2", s, got)
		}
		landed := e.Walker().Pos
		if landed.Dist2(seed) != 1 {
			t.Fatalf("seed %d: walker landed at %v, not a 4-neighbour of the seed", s, landed)
		}
		if !g.IsOccupied(landed.X, landed.Y) || e.Walker().Phase != PhaseCaptured {
			t.Fatalf("seed %d: landing cell must be occupied", s)
		}
	}
}

func TestOccupiedCountGrowsByOne(t *testing.T) {
	e, err := New(testConfig(61, 61, core.Point{X: 30, Y: 30}, 10, 15, 20, 60), core.NewRNG(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 1; i <= 60; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if got := e.Grid().CountOccupied(); got != i+1 {
			t.Fatalf("after %d particles occupied = %d, want %d", i, got, i+1)
		}
	}
	st := e.Stats()
	if st.Spawns < 60 || st.Steps < 60 {
		t.Fatalf("implausible walker stats %+v", st)
	}
}

func TestAggregateStaysConnected(t *testing.T) {
	seed := core.Point{X: 50, Y: 50}
	e, err := New(testConfig(101, 101, seed, 25, 32, 40, 120), core.NewRNG(7))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	comps := analysis.GridComponents(e.Grid())
	if len(comps) != 1 {
		t.Fatalf("components = %d, want 1", len(comps))
	}
	if !slices.Contains(comps[0], e.Grid().Index(seed.X, seed.Y)) {
		t.Fatal("the aggregate must contain the seed")
	}
}

func TestSnapshotsAndDeterminism(t *testing.T) {
	run := func(seed int64) [][]uint8 {
		cfg := testConfig(61, 61, core.Point{X: 30, Y: 30}, 10, 15, 20, 50)
		cfg.Checkpoints = 5
		e, err := New(cfg, core.NewRNG(seed))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		shots, err := e.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if len(shots) != 5 {
			t.Fatalf("snapshots = %d, want 5", len(shots))
		}
		out := make([][]uint8, len(shots))
		for i, s := range shots {
			if i > 0 && s.Occupied <= shots[i-1].Occupied {
				t.Fatal("snapshot occupied counts must increase")
			}
			out[i] = s.Cells
		}
		return out
	}
	a, b := run(21), run(21)
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			t.Fatalf("snapshot %d differs between identical runs", i)
		}
	}
}

func TestJumpRecentersOnWalker(t *testing.T) {
	seed := core.Point{X: 50, Y: 50}
	e, err := New(testConfig(101, 101, seed, 5, 8, 12, 1), &fixedRand{u: []float64{0.5}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// At distance 9 the walker is between jump and kill radius; an angle of π
	// moves it 8 cells in -x from its own position, not from the seed.
	got, err := e.constrain(core.Point{X: 59, Y: 50})
	if err != nil {
		t.Fatalf("constrain: %v", err)
	}
	if want := (core.Point{X: 51, Y: 50}); got != want {
		t.Fatalf("jump landed at %v, want %v", got, want)
	}
	if st := e.Stats(); st.Jumps != 1 || st.Kills != 0 {
		t.Fatalf("stats = %+v, want one jump", st)
	}
	if e.Walker().Phase != PhaseTeleported {
		t.Fatalf("phase = %v, want teleported", e.Walker().Phase)
	}
}

func TestKillRespawnsOnSpawnCircle(t *testing.T) {
	seed := core.Point{X: 50, Y: 50}
	e, err := New(testConfig(101, 101, seed, 5, 8, 12, 1), &fixedRand{u: []float64{0.5}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := e.constrain(core.Point{X: 70, Y: 50})
	if err != nil {
		t.Fatalf("constrain: %v", err)
	}
	if want := (core.Point{X: 45, Y: 50}); got != want {
		t.Fatalf("respawn at %v, want %v", got, want)
	}
	if st := e.Stats(); st.Kills != 1 || st.Jumps != 0 || st.Spawns != 1 {
		t.Fatalf("stats = %+v, want one kill", st)
	}
	if p, _ := e.constrain(core.Point{X: 52, Y: 51}); p != (core.Point{X: 52, Y: 51}) {
		t.Fatal("walkers inside the jump radius must not move")
	}
}

func TestJumpCascadeEndsInsideJumpRadius(t *testing.T) {
	seed := core.Point{X: 60, Y: 60}
	e, err := New(testConfig(121, 121, seed, 20, 30, 45, 1), core.NewRNG(12))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 500; i++ {
		start := core.Point{X: seed.X + 31 + i%14, Y: seed.Y}
		p, err := e.constrain(start)
		if err != nil {
			t.Fatalf("constrain(%v): %v", start, err)
		}
		if float64(p.Dist2(seed)) > 30*30 {
			t.Fatalf("constrain(%v) = %v still beyond the jump radius", start, p)
		}
	}
	if e.Stats().Jumps == 0 {
		t.Fatal("expected jumps")
	}
}

// westRand always walks in -x and always draws angle 0.
type westRand struct{}

func (westRand) Float64() float64 { return 0 }
func (westRand) IntN(int) int     { return 1 }

func TestSpawnTouchingAggregateSticks(t *testing.T) {
	seed := core.Point{X: 10, Y: 10}
	e, err := New(testConfig(21, 21, seed, 1, 2, 3, 3), westRand{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got, want := e.Walker().Pos, (core.Point{X: 11, Y: 10}); got != want {
		t.Fatalf("walker stuck at %v, want %v where it spawned", got, want)
	}
	if e.Stats().Steps != 0 {
		t.Fatalf("steps = %d, want 0", e.Stats().Steps)
	}

	// The next spawn cell is occupied: the walker must land on a free circle
	// cell and never pass through the aggregate to the far side.
	for i := 0; i < 2; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if p := e.Walker().Pos; p.X < seed.X {
			t.Fatalf("walker crossed the aggregate and stuck at %v", p)
		}
	}
	if got := e.Grid().CountOccupied(); got != 4 {
		t.Fatalf("occupied = %d, want 4", got)
	}
}

func TestJumpLandingTouchingAggregateSticks(t *testing.T) {
	seed := core.Point{X: 10, Y: 10}
	// Spawn at angle 0 (15,10), walk east to (19,10), then jump by π back to
	// (11,10), which touches the seed.
	e, err := New(testConfig(41, 41, seed, 5, 8, 12, 1), &fixedRand{u: []float64{0, 0.5}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got, want := e.Walker().Pos, (core.Point{X: 11, Y: 10}); got != want {
		t.Fatalf("walker stuck at %v, want jump landing %v", got, want)
	}
	if st := e.Stats(); st.Steps != 4 || st.Jumps != 1 {
		t.Fatalf("stats = %+v, want 4 steps and 1 jump", st)
	}
}

func TestNoCaptureSiteEndsRun(t *testing.T) {
	e, err := New(testConfig(3, 3, core.Point{X: 1, Y: 1}, 1, 2, 3, 1), core.NewRNG(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Step(); !errors.Is(err, core.ErrFrontierExhausted) {
		t.Fatalf("Step error = %v, want ErrFrontierExhausted", err)
	}

	full, err := New(testConfig(5, 5, core.Point{X: 2, Y: 2}, 1, 2, 3, 20), core.NewRNG(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := full.Run(context.Background()); !errors.Is(err, core.ErrFrontierExhausted) {
		t.Fatalf("Run error = %v, want ErrFrontierExhausted", err)
	}
	if full.Iteration() != 8 || full.Grid().CountOccupied() != 9 {
		t.Fatalf("iteration %d occupied %d, want the 3x3 interior filled after 8 particles",
			full.Iteration(), full.Grid().CountOccupied())
	}
}

func TestLandingSkipsOccupiedCells(t *testing.T) {
	center := core.Point{X: 10, Y: 10}
	e, err := New(testConfig(21, 21, center, 3, 5, 8, 1), &fixedRand{u: []float64{0}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.grid.Occupy(13, 10); err != nil {
		t.Fatalf("Occupy: %v", err)
	}
	p, err := e.land(center, 3)
	if err != nil {
		t.Fatalf("land: %v", err)
	}
	if p == (core.Point{X: 13, Y: 10}) || e.Grid().IsOccupied(p.X, p.Y) {
		t.Fatalf("landed on occupied cell %v", p)
	}

	for y := 0; y < 21; y++ {
		for x := 0; x < 21; x++ {
			_ = e.grid.Occupy(x, y)
		}
	}
	if _, err := e.land(center, 3); !errors.Is(err, core.ErrSpawnBlocked) {
		t.Fatalf("land error = %v, want ErrSpawnBlocked", err)
	}
}

func TestLandingOnCircle(t *testing.T) {
	rng := core.NewRNG(5)
	c := core.Point{X: 0, Y: 0}
	for i := 0; i < 1000; i++ {
		p := onCircle(c, 8, rng.Float64())
		if d := math.Sqrt(float64(p.Dist2(c))); math.Abs(d-8) > math.Sqrt2/2 {
			t.Fatalf("point %v at distance %.3f from the circle of radius 8", p, d)
		}
	}
}

func TestSpawnMarkers(t *testing.T) {
	cfg := testConfig(21, 21, core.Point{X: 10, Y: 10}, 5, 8, 12, 3)
	cfg.MarkSpawns = true
	e, err := New(cfg, core.NewRNG(4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	markers := 0
	for _, v := range e.Cells() {
		switch v {
		case 0, 2:
		case 3:
			markers++
		default:
			t.Fatalf("unexpected cell value %d", v)
		}
	}
	if markers == 0 {
		t.Fatal("spawn tracing must leave markers")
	}
	if got := e.Grid().CountOccupied(); got != 4 {
		t.Fatalf("occupied = %d, want 4", got)
	}
}

func TestLineAttractor(t *testing.T) {
	cfg := testConfig(101, 101, core.Point{X: 50, Y: 50}, 25, 32, 40, 0)
	cfg.Attractor = AttractorLine
	e, err := New(cfg, core.NewRNG(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := e.Grid()
	if got := g.CountOccupied(); got != 41 {
		t.Fatalf("occupied = %d, want 41", got)
	}
	for y := 30; y <= 70; y++ {
		if !g.IsOccupied(50, y) {
			t.Fatalf("line cell (50,%d) not occupied", y)
		}
	}

	cfg.Seed = core.Point{X: 3, Y: 3}
	near, err := New(cfg, core.NewRNG(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := near.Grid().CountOccupied(); got != 23 {
		t.Fatalf("line clipped by the margin: occupied = %d, want 23", got)
	}
}

func TestCircleAttractor(t *testing.T) {
	seed := core.Point{X: 50, Y: 50}
	cfg := testConfig(101, 101, seed, 25, 32, 40, 0)
	cfg.Attractor = AttractorCircle
	e, err := New(cfg, core.NewRNG(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := e.Grid()
	n := g.CountOccupied()
	if n < 20 || n > circlePoints+1 {
		t.Fatalf("circle attractor occupied %d cells", n)
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := core.Point{X: x, Y: y}
			if !g.IsOccupied(x, y) || p == seed {
				continue
			}
			if d := math.Sqrt(float64(p.Dist2(seed))); math.Abs(d-circleRadius) > math.Sqrt2/2 {
				t.Fatalf("attractor cell %v at distance %.2f", p, d)
			}
		}
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	e, err := New(testConfig(61, 61, core.Point{X: 30, Y: 30}, 10, 15, 20, 10), core.NewRNG(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name              string
		spawn, jump, kill float64
		width             int
		seed              core.Point
		want              error
	}{
		{name: "JumpEqualsSpawn", spawn: 5, jump: 5, kill: 12, width: 21, seed: core.Point{X: 10, Y: 10}, want: core.ErrInvalidConfiguration},
		{name: "JumpBelowSpawn", spawn: 8, jump: 5, kill: 12, width: 21, seed: core.Point{X: 10, Y: 10}, want: core.ErrInvalidConfiguration},
		{name: "KillEqualsJump", spawn: 5, jump: 8, kill: 8, width: 21, seed: core.Point{X: 10, Y: 10}, want: core.ErrInvalidConfiguration},
		{name: "KillBelowJump", spawn: 5, jump: 8, kill: 6, width: 21, seed: core.Point{X: 10, Y: 10}, want: core.ErrInvalidConfiguration},
		{name: "ZeroSpawn", spawn: 0, jump: 8, kill: 12, width: 21, seed: core.Point{X: 10, Y: 10}, want: core.ErrInvalidConfiguration},
		{name: "TooSmall", spawn: 5, jump: 8, kill: 12, width: 2, seed: core.Point{X: 1, Y: 1}, want: core.ErrInvalidSize},
		{name: "SeedInMargin", spawn: 5, jump: 8, kill: 12, width: 21, seed: core.Point{X: 20, Y: 10}, want: core.ErrOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(tc.width, 21, tc.seed, tc.spawn, tc.jump, tc.kill, 1)
			if _, err := New(cfg, nil); !errors.Is(err, tc.want) {
				t.Fatalf("New error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":           "21",
		"h":           "21",
		"attractor":   "circle",
		"r_spawn":     "5",
		"r_jump":      "8",
		"r_kill":      "12",
		"particles":   "3",
		"mark_spawns": "true",
	})
	if cfg.Seed != (core.Point{X: 10, Y: 10}) {
		t.Fatalf("seed = %v, want plate centre", cfg.Seed)
	}
	if cfg.Attractor != AttractorCircle || !cfg.MarkSpawns || cfg.Particles != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	sim, err := core.NewSim("dla", map[string]string{"w": "21", "h": "21", "r_spawn": "5", "r_jump": "8", "r_kill": "12"})
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	if err := sim.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if sim.Iteration() != 1 {
		t.Fatal("iteration must advance")
	}
	if _, err := core.NewSim("dla", map[string]string{"r_jump": "1"}); !errors.Is(err, core.ErrInvalidConfiguration) {
		t.Fatalf("NewSim error = %v, want ErrInvalidConfiguration", err)
	}
}
