package app

import (
	"errors"
	"image/color"
	"io"
	"log/slog"
	"testing"

	"gol-canvas/internal/config"
	"gol-canvas/internal/core"
	"gol-canvas/internal/render"
	"gol-canvas/internal/telemetry"
)

func testSession(t *testing.T, pattern string) *Session {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Grid.Columns, cfg.Grid.Rows = 10, 10
	cfg.Grid.NeighborPolicy = "bounded"
	cfg.Window.Width, cfg.Window.Height = 100, 100
	cfg.Seed.Pattern = pattern
	cfg.Sim.TickRate = 1
	cfg.Sim.Paused = true
	cfg.Sim.DrawMode = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	s, err := NewSession(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFrameWithoutSurfaceFails(t *testing.T) {
	s := testSession(t, "blank")
	if err := s.Frame(); !errors.Is(err, core.ErrSurfaceUnavailable) {
		t.Fatalf("err=%v, want ErrSurfaceUnavailable", err)
	}
}

func TestDrawTogglesAndRepaints(t *testing.T) {
	s := testSession(t, "blank")
	surf := render.NewImageSurface(100, 100)
	if err := s.AttachSurface(surf); err != nil {
		t.Fatalf("attach: %v", err)
	}
	s.PointerDown(15, 15)
	s.PointerMove(16, 17)
	s.PointerUp()
	if !s.State().Current().Alive(1, 1) || s.State().Current().Population() != 1 {
		t.Fatalf("live=%v, want only (1,1)", s.State().Current().LiveCells())
	}
	if err := s.Frame(); err != nil {
		t.Fatalf("frame: %v", err)
	}
	white := color.RGBA{255, 255, 255, 255}
	if got := surf.Image().RGBAAt(15, 15); got != white {
		t.Fatalf("pixel=%v, want live color", got)
	}
	if got := surf.Image().RGBAAt(25, 25); got == white {
		t.Fatal("neighboring cell painted live")
	}
}

func TestPointerOutsideGridIsIgnored(t *testing.T) {
	s := testSession(t, "blank")
	if err := s.AttachSurface(render.NewImageSurface(100, 100)); err != nil {
		t.Fatal(err)
	}
	if err := s.PointerDown(500, 500); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("err=%v, want ErrOutOfRange", err)
	}
	s.PointerUp()
	if s.State().Current().Population() != 0 {
		t.Fatal("press outside the grid changed cells")
	}
}

func TestInputWithoutSurfaceIsRejected(t *testing.T) {
	s := testSession(t, "blank")
	rev := s.State().Revision()
	if err := s.PointerDown(15, 15); !errors.Is(err, core.ErrSurfaceUnavailable) {
		t.Fatalf("press err=%v, want ErrSurfaceUnavailable", err)
	}
	if err := s.PointerMove(25, 25); !errors.Is(err, core.ErrSurfaceUnavailable) {
		t.Fatalf("move err=%v, want ErrSurfaceUnavailable", err)
	}
	if s.State().Current().Population() != 0 || s.State().Revision() != rev {
		t.Fatal("input without a surface changed the grid")
	}
	before := s.Viewport().Params()
	if err := s.Wheel(-5); !errors.Is(err, core.ErrSurfaceUnavailable) {
		t.Fatalf("wheel err=%v, want ErrSurfaceUnavailable", err)
	}
	if s.Viewport().Params() != before {
		t.Fatal("wheel without a surface changed the viewport")
	}
}

func TestInputAfterDetachIsRejected(t *testing.T) {
	s := testSession(t, "blank")
	if err := s.AttachSurface(render.NewImageSurface(100, 100)); err != nil {
		t.Fatal(err)
	}
	if err := s.PointerDown(15, 15); err != nil {
		t.Fatalf("attached press: %v", err)
	}
	s.PointerUp()
	s.DetachSurface()
	if err := s.PointerDown(35, 35); !errors.Is(err, core.ErrSurfaceUnavailable) {
		t.Fatalf("err=%v, want ErrSurfaceUnavailable", err)
	}
	if got := s.State().Current().LiveCells(); len(got) != 1 || got[0] != (core.Cell{Col: 1, Row: 1}) {
		t.Fatalf("live=%v, want only (1,1)", got)
	}
}

func TestUnpausedFramesStep(t *testing.T) {
	s := testSession(t, "blinker")
	if err := s.AttachSurface(render.NewImageSurface(100, 100)); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := s.Frame(); err != nil {
			t.Fatalf("paused frame: %v", err)
		}
	}
	if gen := s.State().Current().Generation(); gen != 0 {
		t.Fatalf("paused generation=%d, want 0", gen)
	}

	s.SetPaused(false)
	for i := 0; i < 2; i++ {
		if err := s.Frame(); err != nil {
			t.Fatalf("frame: %v", err)
		}
	}
	g := s.State().Current()
	if g.Generation() != 2 || g.Population() != 3 {
		t.Fatalf("generation=%d population=%d, want 2 and 3", g.Generation(), g.Population())
	}
	if s.Stats().Len() != 2 {
		t.Fatalf("recorded %d generations, want 2", s.Stats().Len())
	}

	s.TogglePause()
	_ = s.Frame()
	_ = s.Frame()
	if s.State().Current().Generation() != 2 {
		t.Fatal("stepped after pausing")
	}
}

func TestStepOnceOnlyWhilePaused(t *testing.T) {
	s := testSession(t, "blinker")
	if err := s.AttachSurface(render.NewImageSurface(100, 100)); err != nil {
		t.Fatal(err)
	}
	if err := s.StepOnce(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.State().Current().Generation() != 1 {
		t.Fatal("StepOnce did not advance while paused")
	}
	s.SetPaused(false)
	_ = s.StepOnce()
	if s.State().Current().Generation() != 1 {
		t.Fatal("StepOnce advanced while running")
	}
}

func TestTickRateClamped(t *testing.T) {
	s := testSession(t, "blank")
	s.Faster()
	if got := s.Loop().TickRate(); got != 1 {
		t.Fatalf("tick rate=%d, want 1", got)
	}
	for i := 0; i < 100; i++ {
		s.Slower()
	}
	if got := s.Loop().TickRate(); got != 60 {
		t.Fatalf("tick rate=%d, want 60", got)
	}
}

func TestClearAndReseed(t *testing.T) {
	s := testSession(t, "random")
	first := s.State().Current().Clone()
	rev := s.State().Revision()

	s.Clear()
	if s.State().Current().Population() != 0 || s.State().Revision() == rev {
		t.Fatal("clear did not empty the grid and bump the revision")
	}
	if err := s.Reseed(s.Seed()); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if !s.State().Current().Equal(first) {
		t.Fatal("reseed with the same seed produced a different grid")
	}
}

func TestModeToggleAndParameters(t *testing.T) {
	s := testSession(t, "blinker")
	s.ToggleDrawMode()
	if s.DrawMode() {
		t.Fatal("draw mode still on")
	}
	p := s.Parameters()
	if v, ok := p.Lookup("population"); !ok || v.Value != "3" {
		t.Fatalf("population=%+v", v)
	}
	if v, ok := p.Lookup("mode"); !ok || v.Value != "pan" {
		t.Fatalf("mode=%+v", v)
	}
	if v, ok := p.Lookup("policy"); !ok || v.Value != "bounded" {
		t.Fatalf("policy=%+v", v)
	}
}

func TestRunAdvancesExactly(t *testing.T) {
	s := testSession(t, "glider")
	if err := s.AttachSurface(render.NewImageSurface(100, 100)); err != nil {
		t.Fatal(err)
	}
	s.Loop().SetTickRate(7)
	var seen []uint64
	if err := s.Run(4, func(st telemetry.GenerationStats) { seen = append(seen, st.Generation) }); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := s.State().Current().Generation(); got != 4 {
		t.Fatalf("generation=%d, want 4", got)
	}
	if len(seen) != 4 || seen[0] != 1 || seen[3] != 4 {
		t.Fatalf("progress=%v, want 1..4", seen)
	}
	if !s.Paused() || s.Loop().TickRate() != 7 {
		t.Fatalf("paused=%v rate=%d, want paused at rate 7", s.Paused(), s.Loop().TickRate())
	}
	// a glider keeps five cells away from the edges
	if s.State().Current().Population() != 5 {
		t.Fatalf("population=%d, want 5", s.State().Current().Population())
	}
}

func TestRunWithoutSurfaceFails(t *testing.T) {
	s := testSession(t, "blank")
	if err := s.Run(1, nil); !errors.Is(err, core.ErrSurfaceUnavailable) {
		t.Fatalf("err=%v, want ErrSurfaceUnavailable", err)
	}
}

func TestClearAndReseedKeepGenerationCounting(t *testing.T) {
	s := testSession(t, "blinker")
	if err := s.AttachSurface(render.NewImageSurface(100, 100)); err != nil {
		t.Fatal(err)
	}
	if err := s.Run(2, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	s.Clear()
	if got := s.State().Current().Generation(); got != 3 {
		t.Fatalf("generation after clear=%d, want 3", got)
	}
	if err := s.Reseed(1); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if got := s.State().Current().Generation(); got != 4 {
		t.Fatalf("generation after reseed=%d, want 4", got)
	}
	var seen []uint64
	if err := s.Run(1, func(st telemetry.GenerationStats) { seen = append(seen, st.Generation) }); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(seen) != 1 || seen[0] != 5 {
		t.Fatalf("recorded generations=%v, want [5]", seen)
	}
}
