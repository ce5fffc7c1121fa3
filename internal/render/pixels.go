package render

import (
	"image"
	"image/color"
	"math"
)

// ImageSurface is a Surface backed by an in-memory RGBA image, used by the
// headless runner and tests.
type ImageSurface struct {
	img *image.RGBA
}

// NewImageSurface allocates a w by h surface.
func NewImageSurface(w, h int) *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Image exposes the backing image.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// Size returns the surface dimensions.
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills every pixel with c.
func (s *ImageSurface) Clear(c color.Color) {
	fillRGBA(s.img, s.img.Bounds(), c)
}

// FillRect fills the pixels whose centers fall inside the rectangle, clipped
// to the surface.
func (s *ImageSurface) FillRect(x, y, w, h float64, c color.Color) {
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	fillRGBA(s.img, r, c)
}

// fillRGBA writes c into every pixel of r, which must lie inside img.
func fillRGBA(img *image.RGBA, r image.Rectangle, c color.Color) {
	cr, cg, cb, ca := c.RGBA()
	px := [4]byte{uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8), uint8(ca >> 8)}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		base := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			copy(img.Pix[base:base+4], px[:])
			base += 4
		}
	}
}
