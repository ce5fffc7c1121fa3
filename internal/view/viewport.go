package view

// Config carries the fixed inputs of the viewport.
type Config struct {
	Columns     int
	Rows        int
	CellSize    float64
	MinScale    float64
	MaxScale    float64
	ScrollSpeed float64
}

// Point is a device-space or grid-pixel coordinate pair.
type Point struct {
	X, Y float64
}

// Viewport owns the scale factor and translation and keeps both inside their
// bounds. The scale always stays within [MinScale, MaxScale]; the translation
// never goes below zero and never past the far bound of its axis.
type Viewport struct {
	cfg Config

	scale  float64
	tx, ty float64

	winW, winH float64
}

// New creates a viewport for a window of the given size, starting at the given
// scale (clamped) and centered on the grid.
func New(cfg Config, winW, winH, initialScale float64) *Viewport {
	if cfg.CellSize <= 0 {
		cfg.CellSize = 1
	}
	if cfg.MinScale <= 0 {
		cfg.MinScale = 1
	}
	if cfg.MaxScale < cfg.MinScale {
		cfg.MaxScale = cfg.MinScale
	}
	if initialScale == 0 {
		initialScale = 1
	}
	v := &Viewport{cfg: cfg, winW: winW, winH: winH}
	v.scale = clampFloat(initialScale, cfg.MinScale, cfg.MaxScale)
	v.tx = v.clampAxis((float64(cfg.Columns)*cfg.CellSize-winW/v.scale)/2, winW, cfg.Columns)
	v.ty = v.clampAxis((float64(cfg.Rows)*cfg.CellSize-winH/v.scale)/2, winH, cfg.Rows)
	return v
}

// Config returns the fixed viewport inputs.
func (v *Viewport) Config() Config { return v.cfg }

// Scale returns the current scale factor.
func (v *Viewport) Scale() float64 { return v.scale }

// Translation returns the current translation in grid pixels.
func (v *Viewport) Translation() (x, y float64) { return v.tx, v.ty }

// WindowSize returns the window dimensions in device pixels.
func (v *Viewport) WindowSize() (w, h float64) { return v.winW, v.winH }

// Params snapshots the current transform.
func (v *Viewport) Params() Params {
	return Params{Scale: v.scale, TranslateX: v.tx, TranslateY: v.ty, CellSize: v.cfg.CellSize}
}

// ScreenToGrid maps a pointer position to a cell using the current transform.
func (v *Viewport) ScreenToGrid(sx, sy float64) (col, row int) {
	return v.Params().ScreenToGrid(sx, sy)
}

// GridToScreen maps a cell to its device-space top-left corner.
func (v *Viewport) GridToScreen(col, row int) (x, y float64) {
	return v.Params().GridToScreen(col, row)
}

// Zoom applies a wheel delta. Positive dy zooms out. When the candidate scale
// crosses a bound the scale is pinned to that bound and the translation is
// left alone; otherwise the translation is re-clamped for the new scale.
// It reports whether the viewport changed.
func (v *Viewport) Zoom(dy float64) bool {
	return v.SetScale(v.scale + (-dy * v.cfg.ScrollSpeed))
}

// SetScale requests an absolute scale with the same clamping as Zoom.
func (v *Viewport) SetScale(candidate float64) bool {
	prev := v.scale
	if candidate < v.cfg.MinScale {
		v.scale = v.cfg.MinScale
		return v.scale != prev
	}
	if candidate > v.cfg.MaxScale {
		v.scale = v.cfg.MaxScale
		return v.scale != prev
	}
	ptx, pty := v.tx, v.ty
	v.scale = candidate
	v.tx = v.clampAxis(v.tx, v.winW, v.cfg.Columns)
	v.ty = v.clampAxis(v.ty, v.winH, v.cfg.Rows)
	return v.scale != prev || v.tx != ptx || v.ty != pty
}

// PanAnchor captures the anchor for a drag starting at (px, py). Later PanTo
// calls compute the translation from absolute pointer positions relative to
// this anchor, so dropped move events cannot cause drift.
func (v *Viewport) PanAnchor(px, py float64) Point {
	return Point{X: px + v.tx, Y: py + v.ty}
}

// PanTo sets the translation for a drag that started at anchor and is now at
// (px, py). It reports whether the translation changed.
func (v *Viewport) PanTo(anchor Point, px, py float64) bool {
	return v.SetTranslation(-(px - anchor.X), -(py - anchor.Y))
}

// SetTranslation requests an absolute translation, clamped on both axes.
func (v *Viewport) SetTranslation(x, y float64) bool {
	ptx, pty := v.tx, v.ty
	v.tx = v.clampAxis(x, v.winW, v.cfg.Columns)
	v.ty = v.clampAxis(y, v.winH, v.cfg.Rows)
	return v.tx != ptx || v.ty != pty
}

// Resize records a new window size and re-clamps the translation.
func (v *Viewport) Resize(w, h float64) bool {
	if w == v.winW && h == v.winH {
		return false
	}
	v.winW, v.winH = w, h
	v.tx = v.clampAxis(v.tx, w, v.cfg.Columns)
	v.ty = v.clampAxis(v.ty, h, v.cfg.Rows)
	return true
}

// FarBound returns the largest translation allowed on an axis with the given
// window extent and cell count at the current scale. It can be negative, in
// which case the near bound of zero wins.
func (v *Viewport) FarBound(window float64, cells int) float64 {
	axisMax := -(window/v.scale - float64(cells-1)*v.cfg.CellSize)
	return axisMax - window
}

// Bounds returns the far translation bounds of both axes.
func (v *Viewport) Bounds() (maxX, maxY float64) {
	return v.FarBound(v.winW, v.cfg.Columns), v.FarBound(v.winH, v.cfg.Rows)
}

func (v *Viewport) clampAxis(t, window float64, cells int) float64 {
	if far := v.FarBound(window, cells); t > far {
		t = far
	}
	if t < 0 {
		t = 0
	}
	return t
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
