//go:build ebiten

package ui

import (
	"image/color"

	"gol-canvas/internal/view"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// minGridExtent is the smallest on-screen cell size that gets grid lines.
const minGridExtent = 6

// Overlay draws grid lines and the hovered cell on top of the painted grid.
// It reads the view every frame and never touches the cells.
type Overlay struct {
	showGrid bool
	cursorX  float64
	cursorY  float64

	lineColor  color.RGBA
	hoverColor color.RGBA
}

// NewOverlay constructs an overlay with the grid hidden.
func NewOverlay() *Overlay {
	return &Overlay{
		lineColor:  color.RGBA{R: 60, G: 60, B: 70, A: 160},
		hoverColor: color.RGBA{R: 90, G: 170, B: 230, A: 220},
	}
}

// Update handles the grid key and tracks the cursor.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
	x, y := ebiten.CursorPosition()
	o.cursorX, o.cursorY = float64(x), float64(y)
}

// Draw renders the overlay for a cols by rows grid under the transform p.
func (o *Overlay) Draw(screen *ebiten.Image, p view.Params, cols, rows int) {
	extent := p.CellExtent()
	if extent <= 0 {
		return
	}
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	if o.showGrid && extent >= minGridExtent {
		o.drawGrid(screen, p, cols, rows, w, h)
	}

	col, row := p.ScreenToGrid(o.cursorX, o.cursorY)
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	x, y := p.GridToScreen(col, row)
	vector.StrokeRect(screen, float32(x), float32(y), float32(extent), float32(extent), 1, o.hoverColor, false)
}

func (o *Overlay) drawGrid(screen *ebiten.Image, p view.Params, cols, rows int, w, h float64) {
	c0, r0, c1, r1 := p.VisibleRange(w, h, cols, rows)
	if c0 >= c1 || r0 >= r1 {
		return
	}
	_, top := p.GridToScreen(0, r0)
	_, bottom := p.GridToScreen(0, r1)
	left, _ := p.GridToScreen(c0, 0)
	right, _ := p.GridToScreen(c1, 0)
	top, bottom = max(top, 0), min(bottom, h)
	left, right = max(left, 0), min(right, w)

	for col := c0; col <= c1; col++ {
		x, _ := p.GridToScreen(col, 0)
		vector.StrokeLine(screen, float32(x), float32(top), float32(x), float32(bottom), 1, o.lineColor, false)
	}
	for row := r0; row <= r1; row++ {
		_, y := p.GridToScreen(0, row)
		vector.StrokeLine(screen, float32(left), float32(y), float32(right), float32(y), 1, o.lineColor, false)
	}
}
