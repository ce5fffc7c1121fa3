package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"gol-canvas/internal/core"
	"gol-canvas/internal/view"
)

type rect struct{ x, y, w, h float64 }

type recordingSurface struct {
	w, h    int
	clears  []color.Color
	rects   []rect
	history []string
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Clear(c color.Color) {
	s.clears = append(s.clears, c)
	s.history = append(s.history, "clear")
}

func (s *recordingSurface) FillRect(x, y, w, h float64, _ color.Color) {
	s.rects = append(s.rects, rect{x, y, w, h})
	s.history = append(s.history, "fill")
}

func TestPaintWithoutSurfaceFails(t *testing.T) {
	r := NewRenderer(&Canvas{}, Options{})
	err := r.Paint(core.NewGrid(2, 2), view.Params{Scale: 1, CellSize: 10})
	if !errors.Is(err, core.ErrSurfaceUnavailable) {
		t.Fatalf("err=%v, want ErrSurfaceUnavailable", err)
	}
}

func TestPaintAfterDetachFails(t *testing.T) {
	c := &Canvas{}
	c.Attach(&recordingSurface{w: 10, h: 10})
	c.Detach()
	if err := NewRenderer(c, Options{}).Paint(core.NewGrid(1, 1), view.Params{Scale: 1, CellSize: 1}); !errors.Is(err, core.ErrSurfaceUnavailable) {
		t.Fatalf("err=%v, want ErrSurfaceUnavailable", err)
	}
}

func TestPaintClearsThenFillsLiveCells(t *testing.T) {
	g := core.NewGrid(4, 4)
	_ = g.Set(1, 2, true)
	_ = g.Set(3, 0, true)

	s := &recordingSurface{w: 100, h: 100}
	c := &Canvas{}
	c.Attach(s)
	r := NewRenderer(c, Options{})
	p := view.Params{Scale: 2, TranslateX: 5, TranslateY: 0, CellSize: 10}
	if err := r.Paint(g, p); err != nil {
		t.Fatalf("paint: %v", err)
	}
	if len(s.history) != 3 || s.history[0] != "clear" {
		t.Fatalf("history=%v, want clear then two fills", s.history)
	}
	if s.clears[0] != color.Black {
		t.Fatalf("background=%v, want black", s.clears[0])
	}
	want := []rect{
		{(10 - 5) * 2, 20 * 2, 20, 20},
		{(30 - 5) * 2, 0, 20, 20},
	}
	for i, got := range s.rects {
		if got != want[i] {
			t.Fatalf("rect %d=%+v, want %+v", i, got, want[i])
		}
	}
}

func TestPaintFullPassIncludesOffscreenCells(t *testing.T) {
	g := core.NewGrid(50, 1)
	_ = g.Set(0, 0, true)
	_ = g.Set(49, 0, true)
	s := &recordingSurface{w: 20, h: 20}
	c := &Canvas{}
	c.Attach(s)
	p := view.Params{Scale: 1, CellSize: 10}

	if err := NewRenderer(c, Options{}).Paint(g, p); err != nil {
		t.Fatal(err)
	}
	if len(s.rects) != 2 {
		t.Fatalf("full pass filled %d rects, want 2", len(s.rects))
	}

	s.rects = nil
	if err := NewRenderer(c, Options{Cull: true}).Paint(g, p); err != nil {
		t.Fatal(err)
	}
	if len(s.rects) != 1 || s.rects[0].x != 0 {
		t.Fatalf("culled pass rects=%+v, want only the first cell", s.rects)
	}
}

func TestImageSurfacePixels(t *testing.T) {
	g := core.NewGrid(3, 3)
	_ = g.Set(1, 1, true)
	s := NewImageSurface(30, 30)
	c := &Canvas{}
	c.Attach(s)
	live := color.RGBA{R: 10, G: 200, B: 30, A: 255}
	r := NewRenderer(c, Options{Background: color.RGBA{A: 255}, Live: live})
	if err := r.Paint(g, view.Params{Scale: 1, CellSize: 10}); err != nil {
		t.Fatalf("paint: %v", err)
	}
	img := s.Image()
	if got := img.RGBAAt(15, 15); got != live {
		t.Fatalf("center pixel=%v, want %v", got, live)
	}
	if got := img.RGBAAt(9, 15); got != (color.RGBA{A: 255}) {
		t.Fatalf("pixel left of the cell=%v, want background", got)
	}
	if got := img.RGBAAt(20, 20); got != (color.RGBA{A: 255}) {
		t.Fatalf("pixel past the cell=%v, want background", got)
	}
}

func TestImageSurfaceClipsRects(t *testing.T) {
	s := NewImageSurface(4, 4)
	s.Clear(color.Black)
	s.FillRect(-10, -10, 12, 12, color.White)
	s.FillRect(100, 100, 5, 5, color.White)
	img := s.Image()
	want := image.Rect(0, 0, 2, 2)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			white := img.RGBAAt(x, y) == color.RGBA{255, 255, 255, 255}
			if white != image.Pt(x, y).In(want) {
				t.Fatalf("pixel (%d,%d) white=%v", x, y, white)
			}
		}
	}
}
