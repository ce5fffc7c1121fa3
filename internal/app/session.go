package app

import (
	"errors"
	"fmt"
	"log/slog"

	"gol-canvas/internal/config"
	"gol-canvas/internal/core"
	"gol-canvas/internal/input"
	"gol-canvas/internal/loop"
	"gol-canvas/internal/render"
	"gol-canvas/internal/sims/life"
	"gol-canvas/internal/telemetry"
	"gol-canvas/internal/view"
)

// Session owns the simulation state and every component that acts on it. It
// has no window dependency; the GUI and the headless runner both drive it one
// Frame at a time.
type Session struct {
	cfg    *config.Config
	log    *slog.Logger
	policy life.NeighborPolicy
	step   func(*core.Grid) *core.Grid

	state    *core.State
	viewport *view.Viewport
	ctrl     *input.Controller
	queue    *loop.FrameQueue
	loop     *loop.Loop
	canvas   *render.Canvas
	renderer *render.Renderer

	stats *telemetry.Recorder
	csv   *telemetry.CSVWriter

	seed     int64
	paused   bool
	drawMode bool
}

// NewSession builds a session from a validated config.
func NewSession(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	grid, err := cfg.NewGrid()
	if err != nil {
		return nil, fmt.Errorf("seeding grid: %w", err)
	}
	csv, err := telemetry.CreateCSV(cfg.Telemetry.CSV)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		log:      logger,
		policy:   cfg.Policy(),
		state:    core.NewState(grid),
		queue:    loop.NewFrameQueue(),
		canvas:   &render.Canvas{},
		stats:    telemetry.NewRecorder(),
		csv:      csv,
		seed:     cfg.Seed.Seed,
		paused:   cfg.Sim.Paused,
		drawMode: cfg.Sim.DrawMode,
	}
	s.step = life.Stepper(s.policy)
	s.viewport = view.New(cfg.ViewportConfig(), float64(cfg.Window.Width), float64(cfg.Window.Height), cfg.View.InitialScale)
	s.ctrl = input.NewController(s.state, s.viewport, s.DrawMode)
	s.renderer = render.NewRenderer(s.canvas, cfg.RenderOptions())
	s.loop = loop.New(s.queue, s.advance, s.paint, loop.Options{
		TickRate: cfg.Sim.TickRate,
		Probe:    s.probe,
		Logger:   logger,
	})

	logger.Info("session ready",
		"columns", grid.Columns(),
		"rows", grid.Rows(),
		"policy", s.policy.String(),
		"pattern", cfg.Seed.Pattern,
		"population", grid.Population(),
	)
	return s, nil
}

func (s *Session) advance() {
	prev, next := s.state.Advance(s.step)
	st := s.stats.Observe(prev, next)
	if err := s.csv.Write(st); err != nil {
		s.log.Warn("stats export failed", "generation", st.Generation, "error", err)
	}
}

func (s *Session) paint() error {
	return s.renderer.Paint(s.state.Current(), s.viewport.Params())
}

func (s *Session) probe() loop.Snapshot {
	w, h := s.viewport.WindowSize()
	return loop.Snapshot{
		Width:    w,
		Height:   h,
		View:     s.viewport.Params(),
		Paused:   s.paused,
		Revision: s.state.Revision(),
	}
}

// AttachSurface installs the paint target, resizes the viewport to it and
// repaints.
func (s *Session) AttachSurface(surf render.Surface) error {
	s.canvas.Attach(surf)
	w, h := surf.Size()
	s.viewport.Resize(float64(w), float64(h))
	return s.loop.Repaint()
}

// DetachSurface drops the paint target. Later paints fail with
// core.ErrSurfaceUnavailable until a surface is attached again.
func (s *Session) DetachSurface() { s.canvas.Detach() }

// Frame runs one display frame: it syncs the loop with the pause flag,
// repaints if a view input changed and then runs the scheduled frame
// callbacks.
func (s *Session) Frame() error {
	s.loop.SetPaused(s.paused)
	if _, err := s.loop.Observe(); err != nil {
		return err
	}
	s.queue.Pump()
	return nil
}

// Run drives frames at one generation per frame until n more generations
// have been computed, then pauses. progress, if set, receives the stats of
// every generation.
func (s *Session) Run(n int, progress func(telemetry.GenerationStats)) error {
	rate := s.loop.TickRate()
	defer s.loop.SetTickRate(rate)
	s.loop.SetTickRate(1)
	s.SetPaused(false)
	defer s.SetPaused(true)

	target := s.loop.Steps() + uint64(max(n, 0))
	for s.loop.Steps() < target {
		before := s.loop.Steps()
		if err := s.Frame(); err != nil {
			return err
		}
		if s.loop.Steps() == before {
			return fmt.Errorf("frame %d did not advance the simulation", s.queue.Frames())
		}
		if progress != nil {
			if st, ok := s.stats.Last(); ok {
				progress(st)
			}
		}
	}
	return nil
}

// Paused reports whether the simulation is halted.
func (s *Session) Paused() bool { return s.paused }

// SetPaused halts or resumes the simulation from the next Frame.
func (s *Session) SetPaused(paused bool) {
	if s.paused != paused {
		s.log.Debug("pause changed", "paused", paused, "generation", s.state.Current().Generation())
	}
	s.paused = paused
}

// TogglePause flips the pause flag.
func (s *Session) TogglePause() { s.SetPaused(!s.paused) }

// DrawMode reports whether pointer drags paint cells rather than pan.
func (s *Session) DrawMode() bool { return s.drawMode }

// ToggleDrawMode switches between drawing and panning.
func (s *Session) ToggleDrawMode() { s.drawMode = !s.drawMode }

// StepOnce advances one generation while paused.
func (s *Session) StepOnce() error {
	if !s.paused {
		return nil
	}
	return s.loop.StepOnce()
}

// Faster lowers the number of frames per generation.
func (s *Session) Faster() { s.setTickRate(s.loop.TickRate() - 1) }

// Slower raises the number of frames per generation.
func (s *Session) Slower() { s.setTickRate(s.loop.TickRate() + 1) }

func (s *Session) setTickRate(rate int) {
	rate = max(s.cfg.Sim.MinTickRate, min(rate, s.cfg.Sim.MaxTickRate))
	s.loop.SetTickRate(rate)
}

// Clear kills every cell. The generation number keeps counting so exported
// stats never repeat a generation.
func (s *Session) Clear() {
	s.replaceGrid(s.state.Current().Next(), "clear")
}

// Reseed rebuilds the starting pattern with a new seed.
func (s *Session) Reseed(seed int64) error {
	g := s.state.Current().Next()
	opts := s.cfg.SeedOptions()
	opts.Seed = seed
	if err := life.Seed(g, s.cfg.Seed.Pattern, opts, s.cfg.SeedCells()); err != nil {
		return err
	}
	s.seed = seed
	s.replaceGrid(g, "reseed")
	return nil
}

func (s *Session) replaceGrid(g *core.Grid, reason string) {
	s.state.Replace(g)
	s.stats.Reset()
	s.log.Info("grid replaced",
		"reason", reason,
		"seed", s.seed,
		"generation", g.Generation(),
		"population", g.Population(),
	)
}

// Seed returns the seed of the current starting pattern.
func (s *Session) Seed() int64 { return s.seed }

// PointerDown forwards a primary-button press. Without an attached surface
// the press is rejected with core.ErrSurfaceUnavailable and nothing changes.
// Presses outside the grid in draw mode report core.ErrOutOfRange.
func (s *Session) PointerDown(x, y float64) error {
	if err := s.requireSurface("pointer down"); err != nil {
		return err
	}
	err := s.ctrl.Press(x, y)
	s.logToggle(err)
	return err
}

// PointerMove forwards pointer motion.
func (s *Session) PointerMove(x, y float64) error {
	if err := s.requireSurface("pointer move"); err != nil {
		return err
	}
	_, err := s.ctrl.Move(x, y)
	s.logToggle(err)
	return err
}

// PointerUp ends the gesture.
func (s *Session) PointerUp() { s.ctrl.Release() }

// Wheel forwards a wheel delta; positive dy zooms out.
func (s *Session) Wheel(dy float64) error {
	if err := s.requireSurface("wheel"); err != nil {
		return err
	}
	s.ctrl.Wheel(dy)
	return nil
}

func (s *Session) requireSurface(event string) error {
	if s.canvas.Attached() {
		return nil
	}
	s.log.Debug("input without surface", "event", event)
	return fmt.Errorf("%s: %w", event, core.ErrSurfaceUnavailable)
}

func (s *Session) logToggle(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, core.ErrOutOfRange) {
		s.log.Debug("pointer outside grid", "error", err)
		return
	}
	s.log.Warn("pointer event failed", "error", err)
}

// Resize updates the window size seen by the viewport.
func (s *Session) Resize(w, h int) { s.viewport.Resize(float64(w), float64(h)) }

// Parameters reports the values shown on the status HUD.
func (s *Session) Parameters() core.ParameterSnapshot {
	g := s.state.Current()
	var snap core.ParameterSnapshot
	snap.AddInt("generation", "Generation", int(g.Generation()))
	snap.AddInt("population", "Population", g.Population())
	snap.AddFloat("scale", "Scale", s.viewport.Scale(), 2)
	snap.AddInt("tick_rate", "Frames/gen", s.loop.TickRate())
	snap.Add("mode", "Mode", s.ctrl.Mode().String())
	snap.AddBool("paused", "Paused", s.paused)
	snap.Add("policy", "Edges", s.policy.String())
	return snap
}

// State exposes the grid state.
func (s *Session) State() *core.State { return s.state }

// Viewport exposes the viewport.
func (s *Session) Viewport() *view.Viewport { return s.viewport }

// Controller exposes the interaction controller.
func (s *Session) Controller() *input.Controller { return s.ctrl }

// Loop exposes the render loop.
func (s *Session) Loop() *loop.Loop { return s.loop }

// Stats exposes the telemetry recorder.
func (s *Session) Stats() *telemetry.Recorder { return s.stats }

// Close stops the loop, closes the stats file and logs a summary.
func (s *Session) Close() error {
	s.loop.Stop()
	s.canvas.Detach()
	sum := s.stats.Summary()
	s.log.Info("session closed",
		"generations", sum.Generations,
		"population_mean", sum.Mean,
		"population_stddev", sum.StdDev,
		"population_median", sum.Median,
		"births", sum.Births,
		"deaths", sum.Deaths,
	)
	return s.csv.Close()
}
