package render

import (
	"image/color"

	"gol-canvas/internal/core"
)

// Surface is an immediate-mode raster target. Coordinates are device pixels
// with the origin at the top-left corner.
type Surface interface {
	Size() (w, h int)
	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
}

// Canvas holds the surface a renderer paints onto. The host attaches it once
// the window exists and detaches it on teardown; painting in between those
// points fails with core.ErrSurfaceUnavailable.
type Canvas struct {
	surface Surface
}

// Attach installs the surface, replacing any previous one.
func (c *Canvas) Attach(s Surface) { c.surface = s }

// Detach drops the surface.
func (c *Canvas) Detach() { c.surface = nil }

// Attached reports whether a surface is installed.
func (c *Canvas) Attached() bool { return c != nil && c.surface != nil }

// Surface returns the attached surface.
func (c *Canvas) Surface() (Surface, error) {
	if !c.Attached() {
		return nil, core.ErrSurfaceUnavailable
	}
	return c.surface, nil
}
