// Package view holds the viewport transform between device pixels and grid
// cells.
package view

import "math"

// Params is the immutable view transform used by the renderer and the pointer
// mapping. Translation is expressed in unscaled grid pixels.
type Params struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
	CellSize   float64
}

// cellEpsilon absorbs rounding in the screen-to-grid chain, in cells, so a
// cell's own top-left corner maps back to that cell.
const cellEpsilon = 1e-9

// ScreenToGrid maps a device-space point to the cell under it. The result is
// not bounds-checked; callers that mutate cells must validate it.
func (p Params) ScreenToGrid(sx, sy float64) (col, row int) {
	col = int(math.Floor((sx/p.Scale+p.TranslateX)/p.CellSize + cellEpsilon))
	row = int(math.Floor((sy/p.Scale+p.TranslateY)/p.CellSize + cellEpsilon))
	return col, row
}

// GridToScreen returns the device-space top-left corner of a cell.
func (p Params) GridToScreen(col, row int) (x, y float64) {
	x = (float64(col)*p.CellSize - p.TranslateX) * p.Scale
	y = (float64(row)*p.CellSize - p.TranslateY) * p.Scale
	return x, y
}

// CellExtent is the on-screen side length of one cell.
func (p Params) CellExtent() float64 { return p.CellSize * p.Scale }

// VisibleRange returns the half-open cell range [c0,c1)x[r0,r1) that intersects
// a w by h device window, clipped to a cols by rows grid.
func (p Params) VisibleRange(w, h float64, cols, rows int) (c0, r0, c1, r1 int) {
	c0, r0 = p.ScreenToGrid(0, 0)
	c1, r1 = p.ScreenToGrid(w, h)
	c1++
	r1++
	c0 = clampInt(c0, 0, cols)
	c1 = clampInt(c1, 0, cols)
	r0 = clampInt(r0, 0, rows)
	r1 = clampInt(r1, 0, rows)
	return c0, r0, c1, r1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
