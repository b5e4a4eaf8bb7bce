//go:build ebiten

package app

import (
	"fmt"
	"time"

	"lattice-growth/internal/core"
	"lattice-growth/internal/render"
	"lattice-growth/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxCatchUp bounds the growth iterations run in a single tick.
const maxCatchUp = 2048

type doneReporter interface {
	Done() bool
}

// Game adapts a growth engine to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	palette render.Palette
	hud     *ui.HUD
	overlay *ui.Overlay
	pacer   *core.FixedStep

	scale    int
	panel    int
	paused   bool
	tickOnce bool
	seed     int64
	err      error
}

// New constructs a Game for the provided simulation. rate is the number of
// growth iterations per second; panel is the HUD width in pixels.
func New(sim core.Sim, scale, rate, panel int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		palette: render.DefaultPalette(),
		hud:     ui.NewHUD(sim, panel),
		overlay: ui.NewOverlay(sim, scale),
		pacer:   core.NewFixedStep(rate),
		scale:   scale,
		panel:   panel,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.err = g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()

	steps := g.pacer.Due(maxCatchUp)
	if g.paused {
		steps = 0
	}
	if g.tickOnce {
		steps = 1
		g.tickOnce = false
	}
	for i := 0; i < steps && g.err == nil; i++ {
		if d, ok := g.sim.(doneReporter); ok && d.Done() {
			break
		}
		g.err = g.sim.Step()
	}
	g.hud.Update(g.paused)
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
	if g.err != nil {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("stopped: %v", g.err))
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.panel, s.H * g.scale
}
