// Package input turns pointer and wheel events into cell toggles and
// viewport changes.
package input

import (
	"fmt"

	"gol-canvas/internal/core"
	"gol-canvas/internal/view"
)

// Phase is the controller's gesture state.
type Phase int

const (
	// Idle means no pointer button is held.
	Idle Phase = iota
	// Active means a draw or pan gesture is in progress.
	Active
)

func (p Phase) String() string {
	if p == Active {
		return "active"
	}
	return "idle"
}

// Mode selects what a drag does.
type Mode int

const (
	// Draw toggles cells under the pointer.
	Draw Mode = iota
	// Pan scrolls the viewport.
	Pan
)

func (m Mode) String() string {
	if m == Pan {
		return "pan"
	}
	return "draw"
}

// Toggler flips one cell and reports out-of-range indices.
type Toggler interface {
	Toggle(col, row int) error
}

// Viewport is the part of view.Viewport the controller drives.
type Viewport interface {
	ScreenToGrid(sx, sy float64) (col, row int)
	PanAnchor(px, py float64) view.Point
	PanTo(anchor view.Point, px, py float64) bool
	Zoom(dy float64) bool
}

// Controller is the draw/pan state machine. The mode is read from drawMode on
// every event rather than latched at press time, so flipping the mode
// mid-drag switches behavior mid-gesture.
type Controller struct {
	grid     Toggler
	view     Viewport
	drawMode func() bool

	phase       Phase
	anchor      view.Point
	lastToggled core.Cell
	hasToggled  bool
}

// NewController wires the controller to its collaborators. A nil drawMode
// means draw mode is always on.
func NewController(grid Toggler, vp Viewport, drawMode func() bool) *Controller {
	if drawMode == nil {
		drawMode = func() bool { return true }
	}
	return &Controller{grid: grid, view: vp, drawMode: drawMode}
}

// Phase returns the current gesture state.
func (c *Controller) Phase() Phase { return c.phase }

// PointerDown reports whether a gesture is in progress.
func (c *Controller) PointerDown() bool { return c.phase == Active }

// Mode returns the mode the next event will use.
func (c *Controller) Mode() Mode {
	if c.drawMode() {
		return Draw
	}
	return Pan
}

// LastToggled returns the most recently toggled cell, if any.
func (c *Controller) LastToggled() (core.Cell, bool) { return c.lastToggled, c.hasToggled }

// Press starts a gesture at (x, y). In draw mode the cell under the pointer is
// toggled unconditionally; in pan mode the drag anchor is captured. The
// gesture becomes active even if the toggle was rejected. The move dedup only
// looks at cells toggled within the current gesture.
func (c *Controller) Press(x, y float64) error {
	c.phase = Active
	c.hasToggled = false
	if c.Mode() == Pan {
		c.anchor = c.view.PanAnchor(x, y)
		return nil
	}
	col, row := c.view.ScreenToGrid(x, y)
	return c.toggle(col, row)
}

// Move continues an active gesture. Moves while idle are ignored. In draw
// mode a move that lands on the last toggled cell is a no-op.
func (c *Controller) Move(x, y float64) (changed bool, err error) {
	if c.phase != Active {
		return false, nil
	}
	if c.Mode() == Pan {
		return c.view.PanTo(c.anchor, x, y), nil
	}
	col, row := c.view.ScreenToGrid(x, y)
	if c.hasToggled && c.lastToggled == (core.Cell{Col: col, Row: row}) {
		return false, nil
	}
	if err := c.toggle(col, row); err != nil {
		return false, err
	}
	return true, nil
}

// Release ends the gesture. The last toggled cell stays readable until the
// next press.
func (c *Controller) Release() {
	c.phase = Idle
}

// Wheel forwards a scroll delta to the viewport zoom.
func (c *Controller) Wheel(dy float64) bool {
	if dy == 0 {
		return false
	}
	return c.view.Zoom(dy)
}

func (c *Controller) toggle(col, row int) error {
	if err := c.grid.Toggle(col, row); err != nil {
		return fmt.Errorf("draw at (%d,%d): %w", col, row, err)
	}
	c.lastToggled = core.Cell{Col: col, Row: row}
	c.hasToggled = true
	return nil
}
