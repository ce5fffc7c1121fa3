//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface is a Surface backed by an offscreen ebiten image. It keeps its
// pixels between frames, so the screen only changes when the renderer paints.
type EbitenSurface struct {
	img *ebiten.Image
}

// NewEbitenSurface allocates a w by h offscreen image.
func NewEbitenSurface(w, h int) *EbitenSurface {
	return &EbitenSurface{img: ebiten.NewImage(w, h)}
}

// Image exposes the offscreen image for blitting.
func (s *EbitenSurface) Image() *ebiten.Image { return s.img }

// Size returns the image dimensions.
func (s *EbitenSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the image with c.
func (s *EbitenSurface) Clear(c color.Color) { s.img.Fill(c) }

// FillRect draws a filled axis-aligned rectangle.
func (s *EbitenSurface) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

// Blit copies the offscreen image onto dst at the origin.
func (s *EbitenSurface) Blit(dst *ebiten.Image) {
	dst.DrawImage(s.img, nil)
}

// Dispose releases the GPU image.
func (s *EbitenSurface) Dispose() { s.img.Dispose() }
