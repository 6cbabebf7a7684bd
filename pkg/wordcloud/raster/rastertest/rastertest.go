// Package rastertest provides a font-free Rasterizer for tests.
package rastertest

import (
	"image"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/matzehuels/wordcloud/pkg/wordcloud/raster"
)

// Blocks renders every rune as a solid box, making word geometry trivial to
// predict: a word of n runes at size s is n*ceil(s*Advance) pixels wide and
// its ink is ceil(s) pixels tall, centered in the surface. Whitespace runes
// advance without ink.
type Blocks struct {
	// Advance is the per-rune width as a fraction of the font size.
	// Zero means 0.6.
	Advance float64
}

func (b Blocks) advance(size float64) int {
	a := b.Advance
	if a == 0 {
		a = 0.6
	}
	return int(math.Ceil(size * a))
}

// MeasureTextWidth implements raster.Rasterizer.
func (b Blocks) MeasureTextWidth(text string, size float64, bold bool) float64 {
	return float64(utf8.RuneCountInString(text) * b.advance(size))
}

// RenderTextAlphaMask implements raster.Rasterizer.
func (b Blocks) RenderTextAlphaMask(text string, size float64, bold bool, s *raster.Surface) error {
	img := s.Image()
	adv := b.advance(size)
	inkH := int(math.Ceil(size))
	x := (s.Width() - utf8.RuneCountInString(text)*adv) / 2
	y := (s.Height() - inkH) / 2
	for _, r := range text {
		if r != ' ' {
			rect := image.Rect(x, y, x+adv, y+inkH).Intersect(img.Rect)
			for py := rect.Min.Y; py < rect.Max.Y; py++ {
				for px := rect.Min.X; px < rect.Max.X; px++ {
					img.SetAlpha(px, py, color.Alpha{A: 255})
				}
			}
		}
		x += adv
	}
	return nil
}

var _ raster.Rasterizer = Blocks{}
