//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"lattice-growth/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type frontierProvider interface {
	FrontierCells() []core.Point
}

type radiiProvider interface {
	Radii() (core.Point, []float64)
}

type walkerProvider interface {
	WalkerPos() core.Point
}

var radiusColors = []color.RGBA{
	{R: 90, G: 200, B: 120, A: 200},
	{R: 230, G: 200, B: 60, A: 200},
	{R: 230, G: 70, B: 60, A: 200},
}

// Overlay draws optional debugging visuals on top of the plate: the Eden
// frontier, the DLA spawn/jump/kill circles and the live walker.
type Overlay struct {
	sim          core.Sim
	scale        int
	showFrontier bool
	showRadii    bool
	showWalker   bool
	pixel        *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale, showWalker: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers: 1 frontier, 2 radii, 3 walker.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showFrontier = !o.showFrontier
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showRadii = !o.showRadii
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showWalker = !o.showWalker
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	s := float64(o.scale)
	if o.showFrontier {
		if p, ok := o.sim.(frontierProvider); ok {
			for _, c := range p.FrontierCells() {
				o.drawPoint(screen, (float64(c.X)+0.5)*s, (float64(c.Y)+0.5)*s, s, color.RGBA{R: 250, G: 120, B: 40, A: 160})
			}
		}
	}
	if o.showRadii {
		if p, ok := o.sim.(radiiProvider); ok {
			center, radii := p.Radii()
			for i, r := range radii {
				o.drawCircle(screen, (float64(center.X)+0.5)*s, (float64(center.Y)+0.5)*s, r*s, radiusColors[i%len(radiusColors)])
			}
		}
	}
	if o.showWalker {
		if p, ok := o.sim.(walkerProvider); ok {
			w := p.WalkerPos()
			o.drawPoint(screen, (float64(w.X)+0.5)*s, (float64(w.Y)+0.5)*s, math.Max(s, 3), color.RGBA{R: 255, G: 60, B: 200, A: 255})
		}
	}
}

func (o *Overlay) drawCircle(screen *ebiten.Image, cx, cy, r float64, col color.RGBA) {
	segments := int(math.Max(24, r/2))
	px, py := cx+r, cy
	for i := 1; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x, y := cx+r*math.Cos(theta), cy+r*math.Sin(theta)
		o.drawLine(screen, px, py, x, y, 1, col)
		px, py = x, y
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
