// Package loop schedules simulation steps and repaints on a host frame clock.
package loop

import (
	"log/slog"

	"gol-canvas/internal/core"
	"gol-canvas/internal/view"
)

// Snapshot is everything a painted frame depends on besides cell contents that
// are already versioned by Revision.
type Snapshot struct {
	Width    float64
	Height   float64
	View     view.Params
	Paused   bool
	Revision uint64
}

// Options configures a Loop.
type Options struct {
	// TickRate is the number of frames per simulation step.
	TickRate int
	// Probe reports the current view inputs; nil disables Observe.
	Probe func() Snapshot
	// Logger receives lifecycle and paint failure records; nil uses slog.Default().
	Logger *slog.Logger
}

// Loop runs step on every TickRate-th frame and repaints right after. Start
// and Stop register and deregister the frame callback; Stop is idempotent and
// a stopped loop never runs another callback.
type Loop struct {
	host  Host
	step  func()
	paint func() error
	probe func() Snapshot
	log   *slog.Logger

	cadence *core.Cadence
	frame   FrameID
	token   *cancelToken

	painted     Snapshot
	havePainted bool

	frames uint64
	steps  uint64
}

type cancelToken struct {
	cancelled bool
}

// New creates a stopped loop.
func New(host Host, step func(), paint func() error, opts Options) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		host:    host,
		step:    step,
		paint:   paint,
		probe:   opts.Probe,
		log:     logger,
		cadence: core.NewCadence(opts.TickRate),
	}
}

// Start registers the frame callback. Starting a running loop does nothing
// and reports false.
func (l *Loop) Start() bool {
	if l.token != nil {
		return false
	}
	tok := &cancelToken{}
	l.token = tok
	l.schedule(tok)
	l.log.Debug("loop started", "tick_rate", l.cadence.Rate())
	return true
}

// Stop deregisters the pending frame callback. Stopping a stopped loop does
// nothing and reports false.
func (l *Loop) Stop() bool {
	if l.token == nil {
		return false
	}
	l.token.cancelled = true
	l.token = nil
	l.host.CancelFrame(l.frame)
	l.log.Debug("loop stopped", "frames", l.frames, "steps", l.steps)
	return true
}

// IsRunning reports whether a frame callback is registered.
func (l *Loop) IsRunning() bool { return l.token != nil }

// SetPaused stops the loop when paused and starts it otherwise.
func (l *Loop) SetPaused(paused bool) {
	if paused {
		l.Stop()
		return
	}
	l.Start()
}

// SetTickRate changes the number of frames per simulation step.
func (l *Loop) SetTickRate(rate int) { l.cadence.SetRate(rate) }

// TickRate returns the number of frames per simulation step.
func (l *Loop) TickRate() int { return l.cadence.Rate() }

// Frames returns the number of frame callbacks run.
func (l *Loop) Frames() uint64 { return l.frames }

// Steps returns the number of simulation steps taken by the loop.
func (l *Loop) Steps() uint64 { return l.steps }

// StepOnce advances one generation and repaints outside the cadence.
func (l *Loop) StepOnce() error {
	l.step()
	l.steps++
	return l.Repaint()
}

// Repaint paints immediately. A successful paint records the probed view
// inputs so Observe does not repeat it.
func (l *Loop) Repaint() error {
	if err := l.paint(); err != nil {
		return err
	}
	if l.probe != nil {
		l.painted = l.probe()
		l.havePainted = true
	}
	return nil
}

// Observe repaints when the probed view inputs differ from the last painted
// ones. It runs regardless of whether the loop is started, so viewport and
// pause changes show while the simulation is halted.
func (l *Loop) Observe() (bool, error) {
	if l.probe == nil {
		return false, nil
	}
	if l.havePainted && l.probe() == l.painted {
		return false, nil
	}
	if err := l.Repaint(); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Loop) schedule(tok *cancelToken) {
	l.frame = l.host.RequestFrame(func() { l.tick(tok) })
}

func (l *Loop) tick(tok *cancelToken) {
	if tok.cancelled {
		return
	}
	l.frames++
	if l.cadence.Tick() {
		l.step()
		l.steps++
		if err := l.Repaint(); err != nil {
			l.log.Error("repaint failed", "frame", l.frames, "error", err)
		}
	}
	// step or paint may have stopped the loop.
	if tok.cancelled {
		return
	}
	l.schedule(tok)
}
