//go:build ebiten

package app

import (
	"errors"
	"log/slog"
	"time"

	"gol-canvas/internal/core"
	"gol-canvas/internal/render"
	"gol-canvas/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Session to the ebiten.Game interface. Cells are painted into
// an offscreen surface only when the session repaints; Draw blits it every
// frame and adds the overlay and HUD on top.
type Game struct {
	session *Session
	log     *slog.Logger
	surface *render.EbitenSurface
	overlay *ui.Overlay
	hud     *ui.HUD

	width, height int
	cursorX       int
	cursorY       int
}

// New constructs a Game for the provided session.
func New(s *Session, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		session: s,
		log:     logger,
		overlay: ui.NewOverlay(),
		hud:     ui.NewHUD(),
	}
}

// Update handles input and runs one session frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.handlePointer()
	g.overlay.Update()
	g.hud.Update(g.session.Parameters())

	if err := g.session.Frame(); err != nil {
		if errors.Is(err, core.ErrSurfaceUnavailable) {
			g.log.Debug("frame skipped", "error", err)
			return nil
		}
		g.log.Error("frame failed", "error", err)
	}
	return nil
}

func (g *Game) handleKeys() {
	s := g.session
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		s.ToggleDrawMode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := s.StepOnce(); err != nil {
			g.log.Error("single step failed", "error", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		s.Faster()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		s.Slower()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reseed(s.Seed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.reseed(time.Now().UnixNano())
	}
}

func (g *Game) reseed(seed int64) {
	if err := g.session.Reseed(seed); err != nil {
		g.log.Error("reseed failed", "seed", seed, "error", err)
	}
}

func (g *Game) handlePointer() {
	s := g.session
	x, y := ebiten.CursorPosition()
	moved := x != g.cursorX || y != g.cursorY
	g.cursorX, g.cursorY = x, y

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.PointerDown(float64(x), float64(y))
	case moved:
		s.PointerMove(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.PointerUp()
	}
	if _, yoff := ebiten.Wheel(); yoff != 0 {
		// ebiten reports wheel-up as positive; the viewport zooms out on positive dy.
		s.Wheel(-yoff)
	}
}

// Draw blits the painted grid and draws the overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.surface != nil {
		g.surface.Blit(screen)
	}
	grid := g.session.State().Current()
	g.overlay.Draw(screen, g.session.Viewport().Params(), grid.Columns(), grid.Rows())
	g.hud.Draw(screen)
}

// Layout sizes the offscreen surface to the window and returns the window
// size as the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return max(outsideWidth, 1), max(outsideHeight, 1)
	}
	if g.surface == nil || outsideWidth != g.width || outsideHeight != g.height {
		g.attach(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) attach(w, h int) {
	old := g.surface
	g.surface = render.NewEbitenSurface(w, h)
	g.width, g.height = w, h
	if err := g.session.AttachSurface(g.surface); err != nil {
		g.log.Error("initial paint failed", "width", w, "height", h, "error", err)
	}
	if old != nil {
		old.Dispose()
	}
	g.log.Debug("surface attached", "width", w, "height", h)
}

// Close detaches and releases the offscreen surface.
func (g *Game) Close() {
	g.session.DetachSurface()
	if g.surface != nil {
		g.surface.Dispose()
		g.surface = nil
	}
}
