package raster

import (
	"fmt"
	"image"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// maxCachedFaces bounds the face cache. Degradation walks through many sizes
// for hard words, so the cache is flushed rather than allowed to grow.
const maxCachedFaces = 256

type faceKey struct {
	size fixed.Int26_6
	bold bool
}

// OpenType rasterizes with golang.org/x/image/font/opentype.
//
// Faces are cached per size and weight. All methods serialize on an internal
// mutex, so one OpenType may be shared by concurrent layout runs.
type OpenType struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewOpenType creates a rasterizer from parsed faces. If bold is nil the
// regular face is used for bold text.
func NewOpenType(regular, bold *opentype.Font) *OpenType {
	if bold == nil {
		bold = regular
	}
	return &OpenType{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}
}

// NewDefaultOpenType creates a rasterizer using the bundled Go fonts.
func NewDefaultOpenType() (*OpenType, error) {
	regular, err := fonts.Regular()
	if err != nil {
		return nil, err
	}
	bold, err := fonts.Bold()
	if err != nil {
		return nil, err
	}
	return NewOpenType(regular, bold), nil
}

// ParseOpenType creates a rasterizer from raw font data used for both weights.
func ParseOpenType(data []byte) (*OpenType, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return NewOpenType(f, nil), nil
}

// face returns a cached face. The caller holds o.mu.
func (o *OpenType) face(size float64, bold bool) (font.Face, error) {
	key := faceKey{size: floatToFixed(size), bold: bold}
	if f, ok := o.faces[key]; ok {
		return f, nil
	}
	src := o.regular
	if bold {
		src = o.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.size) / 64,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	if len(o.faces) >= maxCachedFaces {
		o.flush()
	}
	o.faces[key] = f
	return f, nil
}

func (o *OpenType) flush() {
	for k, f := range o.faces {
		_ = f.Close()
		delete(o.faces, k)
	}
}

// MeasureTextWidth implements Rasterizer.
func (o *OpenType) MeasureTextWidth(text string, size float64, bold bool) float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	f, err := o.face(size, bold)
	if err != nil {
		return 0
	}
	return fixedToFloat(font.MeasureString(f, text))
}

// RenderTextAlphaMask implements Rasterizer.
func (o *OpenType) RenderTextAlphaMask(text string, size float64, bold bool, s *Surface) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	f, err := o.face(size, bold)
	if err != nil {
		return err
	}
	advance := font.MeasureString(f, text)
	d := &font.Drawer{
		Dst:  s.Image(),
		Src:  image.Opaque,
		Face: f,
		Dot:  origin(s, advance, f.Metrics()),
	}
	d.DrawString(text)
	return nil
}

// Close releases all cached faces.
func (o *OpenType) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.flush()
	return nil
}

// origin returns the pen position that centers a line of the given advance
// in s: horizontally by advance, vertically by the ascent+descent box.
func origin(s *Surface, advance fixed.Int26_6, m font.Metrics) fixed.Point26_6 {
	w, h := fixed.I(s.Width()), fixed.I(s.Height())
	return fixed.Point26_6{
		X: (w - advance) / 2,
		Y: (h + m.Ascent - m.Descent) / 2,
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

var _ Rasterizer = (*OpenType)(nil)
