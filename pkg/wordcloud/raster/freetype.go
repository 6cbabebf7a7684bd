package raster

import (
	"fmt"
	"image"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// FreeType rasterizes with github.com/golang/freetype. It accepts TrueType
// (glyf) fonts only; use OpenType for CFF-based files.
//
// Like OpenType, all methods serialize on an internal mutex.
type FreeType struct {
	regular *truetype.Font
	bold    *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewFreeType creates a rasterizer from parsed fonts. If bold is nil the
// regular font is used for bold text.
func NewFreeType(regular, bold *truetype.Font) *FreeType {
	if bold == nil {
		bold = regular
	}
	return &FreeType{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}
}

// ParseFreeType creates a rasterizer from TrueType data. bold may be nil.
func ParseFreeType(regular, bold []byte) (*FreeType, error) {
	r, err := freetype.ParseFont(regular)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	var b *truetype.Font
	if bold != nil {
		if b, err = freetype.ParseFont(bold); err != nil {
			return nil, fmt.Errorf("parse bold font: %w", err)
		}
	}
	return NewFreeType(r, b), nil
}

func (f *FreeType) font(bold bool) *truetype.Font {
	if bold {
		return f.bold
	}
	return f.regular
}

// face returns a cached measuring face for size rounded to 1/64 point,
// the same quantization used for drawing. The caller holds f.mu.
func (f *FreeType) face(size float64, bold bool) font.Face {
	key := faceKey{size: floatToFixed(size), bold: bold}
	if face, ok := f.faces[key]; ok {
		return face
	}
	face := truetype.NewFace(f.font(bold), &truetype.Options{
		Size:    fixedToFloat(key.size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if len(f.faces) >= maxCachedFaces {
		clear(f.faces)
	}
	f.faces[key] = face
	return face
}

// MeasureTextWidth implements Rasterizer.
func (f *FreeType) MeasureTextWidth(text string, size float64, bold bool) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fixedToFloat(font.MeasureString(f.face(size, bold), text))
}

// RenderTextAlphaMask implements Rasterizer.
func (f *FreeType) RenderTextAlphaMask(text string, size float64, bold bool, s *Surface) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	face := f.face(size, bold)
	advance := font.MeasureString(face, text)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f.font(bold))
	ctx.SetFontSize(fixedToFloat(floatToFixed(size)))
	ctx.SetClip(s.Image().Bounds())
	ctx.SetDst(s.Image())
	ctx.SetSrc(image.Opaque)
	ctx.SetHinting(font.HintingNone)

	if _, err := ctx.DrawString(text, origin(s, advance, face.Metrics())); err != nil {
		return err
	}
	return nil
}

var _ Rasterizer = (*FreeType)(nil)
