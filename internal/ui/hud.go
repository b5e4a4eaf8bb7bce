//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"lattice-growth/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter and progress panel to the right of the plate.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	status     []string
	title      string
	paused     bool
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width, title: buildTitle(sim)}
}

// Update refreshes the cached parameter snapshot and status lines.
func (h *HUD) Update(paused bool) {
	if h == nil {
		return
	}
	h.paused = paused
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
	} else {
		h.snapshot = core.ParameterSnapshot{}
	}
	h.status = StatusLines(h.sim, paused)
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawText()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Growth"
	}
	return strings.ToUpper(sim.Name())
}

func (h *HUD) drawText() {
	face := basicfont.Face7x13
	heading := color.RGBA{R: 200, G: 200, B: 210, A: 255}
	label := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	value := color.RGBA{R: 230, G: 230, B: 240, A: 255}

	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, heading)
	y += lineHeight
	for _, line := range h.status {
		text.Draw(h.panel, line, face, panelPadding, y, value)
		y += lineHeight
	}
	for _, group := range h.snapshot.Groups {
		y += groupGap
		text.Draw(h.panel, group.Name, face, panelPadding, y, heading)
		y += lineHeight
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label, face, panelPadding, y, label)
			v := p.Value
			w := text.BoundString(face, v).Dx()
			text.Draw(h.panel, v, face, h.width-panelPadding-w, y, value)
			y += lineHeight
		}
	}
	if len(h.snapshot.Groups) == 0 {
		text.Draw(h.panel, fmt.Sprintf("%s has no parameters", h.title), face, panelPadding, y+groupGap, label)
	}
}

const (
	panelPadding   = 12
	lineHeight     = 16
	groupGap       = 10
	headerBaseline = 18
)
