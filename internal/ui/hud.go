//go:build ebiten

package ui

import (
	"image/color"

	"gol-canvas/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// HUD draws the status panel in the top-left corner of the window.
type HUD struct {
	visible  bool
	snapshot core.ParameterSnapshot
	help     []string
}

// NewHUD constructs a visible HUD.
func NewHUD() *HUD {
	return &HUD{
		visible: true,
		help: []string{
			"space pause  n step  d draw/pan",
			"[ ] speed  c clear  r/s reseed",
			"g grid  h hud  q quit",
		},
	}
}

// Update caches the values to draw and handles the visibility key.
func (h *HUD) Update(snap core.ParameterSnapshot) {
	if h == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		h.visible = !h.visible
	}
	h.snapshot = snap
}

// Draw paints the panel onto screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || !h.visible {
		return
	}
	face := basicfont.Face7x13
	lines := len(h.snapshot.Params) + len(h.help) + 1
	height := panelPadding*2 + lines*lineHeight
	vector.DrawFilledRect(screen, 0, 0, panelWidth, float32(height), color.RGBA{R: 16, G: 16, B: 20, A: 200}, false)

	y := panelPadding + baseline
	labelColor := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	for _, p := range h.snapshot.Params {
		text.Draw(screen, p.Label, face, panelPadding, y, labelColor)
		w := text.BoundString(face, p.Value).Dx()
		text.Draw(screen, p.Value, face, panelWidth-panelPadding-w, y, valueColor)
		y += lineHeight
	}
	y += lineHeight
	for _, line := range h.help {
		text.Draw(screen, line, face, panelPadding, y, labelColor)
		y += lineHeight
	}
}

const (
	panelPadding = 8
	panelWidth   = 240
	lineHeight   = 16
	baseline     = 12
)
