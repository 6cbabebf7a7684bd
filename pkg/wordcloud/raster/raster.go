// Package raster turns words into bit-packed occupancy masks.
//
// Glyph shaping and anti-aliasing are delegated to a [Rasterizer], the
// text-measurement and alpha-rendering capability of some font backend.
// Two backends are provided: [OpenType] (golang.org/x/image, the default,
// with the Go fonts) and [FreeType] (github.com/golang/freetype, for
// user-supplied TrueType files).
//
// Rendering happens on an explicit [Surface] owned by the caller. A layout
// run allocates one surface and reuses it for every word; concurrent runs
// must use separate surfaces.
package raster

import (
	"image"
	"math"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/mask"
)

// NoiseThreshold is the alpha level a pixel must exceed to count as ink.
const NoiseThreshold = 1

// LineHeight is the surface height per unit of font size. It leaves room for
// ascenders and descenders of the bundled faces.
const LineHeight = 1.3

// Rasterizer measures and renders single-line text.
//
// Implementations must be deterministic: the same text, size and weight
// must always produce the same alpha values.
type Rasterizer interface {
	// MeasureTextWidth returns the advance width of text in pixels.
	// It returns 0 when the text cannot be measured.
	MeasureTextWidth(text string, size float64, bold bool) float64

	// RenderTextAlphaMask draws text into s, horizontally centered with its
	// baseline placed so the line box is vertically centered. s has already
	// been cleared and sized by the caller.
	RenderTextAlphaMask(text string, size float64, bold bool, s *Surface) error
}

// Surface is a reusable off-screen alpha buffer.
type Surface struct {
	img *image.Alpha
}

// NewSurface returns an empty surface.
func NewSurface() *Surface {
	return &Surface{img: image.NewAlpha(image.Rect(0, 0, 0, 0))}
}

// Reset resizes the surface to w×h and clears it, reusing the backing
// buffer when it is large enough.
func (s *Surface) Reset(w, h int) {
	n := w * h
	if cap(s.img.Pix) >= n {
		pix := s.img.Pix[:n]
		clear(pix)
		s.img = &image.Alpha{Pix: pix, Stride: w, Rect: image.Rect(0, 0, w, h)}
		return
	}
	s.img = image.NewAlpha(image.Rect(0, 0, w, h))
}

// Image returns the surface's current pixels. The image is reused by the next
// Reset.
func (s *Surface) Image() *image.Alpha { return s.img }

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// SurfaceSize returns the surface dimensions for text of the given advance
// width at size, including padding on every side.
func SurfaceSize(textWidth, size float64, padding int) (int, int) {
	padding = max(padding, 0)
	w := int(math.Ceil(textWidth)) + 2*padding
	h := int(math.Ceil(size*LineHeight)) + 2*padding
	return w, h
}

// Rasterize renders text at size onto s and returns its ink mask.
//
// The surface is sized to the measured text plus padding on each side. Every
// pixel with alpha above NoiseThreshold is occupied, and the mask's Ink
// bounds are the tight box around those pixels. The returned mask does not
// alias s.
//
// Text that measures to zero width or renders no ink yields a
// RASTERIZATION_FAILED error.
func Rasterize(r Rasterizer, s *Surface, text string, size float64, bold bool, padding int) (*mask.Mask, error) {
	if !(size > 0) {
		return nil, errors.New(errors.ErrCodeRasterization, "font size must be positive, got %v", size)
	}
	tw := r.MeasureTextWidth(text, size, bold)
	if !(tw > 0) {
		return nil, errors.New(errors.ErrCodeRasterization, "%q has zero width at size %v", text, size)
	}

	w, h := SurfaceSize(tw, size, padding)
	s.Reset(w, h)
	if err := r.RenderTextAlphaMask(text, size, bold, s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterization, err, "render %q at size %v", text, size)
	}

	m := FromAlpha(s.Image(), NoiseThreshold)
	if m.Empty() {
		return nil, errors.New(errors.ErrCodeRasterization, "%q rendered no ink at size %v", text, size)
	}
	return m, nil
}

// FromAlpha builds a mask from an alpha image. Pixels with alpha strictly
// above threshold are occupied; runs are written span-wise.
func FromAlpha(img *image.Alpha, threshold uint8) *mask.Mask {
	b := img.Bounds()
	m := mask.New(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()]
		start := -1
		for x, a := range row {
			switch {
			case a > threshold && start < 0:
				start = x
			case a <= threshold && start >= 0:
				m.SetSpan(y, start, x-1)
				start = -1
			}
		}
		if start >= 0 {
			m.SetSpan(y, start, len(row)-1)
		}
	}
	m.Ink = m.Extent()
	return m
}
