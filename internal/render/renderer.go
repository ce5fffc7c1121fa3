// Package render paints a grid generation onto a raster surface.
package render

import (
	"fmt"
	"image/color"

	"gol-canvas/internal/core"
	"gol-canvas/internal/view"
)

// Options controls colors and the optional visible-region culling.
type Options struct {
	Background color.Color
	Live       color.Color
	// Cull limits the pass to cells intersecting the surface. Without it every
	// cell of the grid is visited on each paint.
	Cull bool
}

// DefaultOptions paints white cells on black.
func DefaultOptions() Options {
	return Options{Background: color.Black, Live: color.White}
}

// Renderer clears the canvas and fills one rectangle per live cell.
type Renderer struct {
	canvas *Canvas
	opts   Options
}

// NewRenderer creates a renderer for the canvas. Missing colors fall back to
// DefaultOptions.
func NewRenderer(canvas *Canvas, opts Options) *Renderer {
	def := DefaultOptions()
	if opts.Background == nil {
		opts.Background = def.Background
	}
	if opts.Live == nil {
		opts.Live = def.Live
	}
	return &Renderer{canvas: canvas, opts: opts}
}

// Canvas returns the canvas the renderer paints on.
func (r *Renderer) Canvas() *Canvas { return r.canvas }

// Options returns the paint options.
func (r *Renderer) Options() Options { return r.opts }

// Paint draws g under the view transform p.
func (r *Renderer) Paint(g *core.Grid, p view.Params) error {
	s, err := r.canvas.Surface()
	if err != nil {
		return fmt.Errorf("paint generation %d: %w", g.Generation(), err)
	}
	s.Clear(r.opts.Background)

	c0, r0, c1, r1 := 0, 0, g.Columns(), g.Rows()
	if r.opts.Cull {
		w, h := s.Size()
		c0, r0, c1, r1 = p.VisibleRange(float64(w), float64(h), g.Columns(), g.Rows())
	}
	side := p.CellExtent()
	for col := c0; col < c1; col++ {
		for row := r0; row < r1; row++ {
			if !g.Alive(col, row) {
				continue
			}
			x, y := p.GridToScreen(col, row)
			s.FillRect(x, y, side, side, r.opts.Live)
		}
	}
	return nil
}
