package sink

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/raster"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette    Palette
	background colorful.Color
	hasBg      bool
	scale      float64
}

// WithPNGPalette sets the word colors.
func WithPNGPalette(p Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// WithPNGBackground fills the image with c. Without it the background is
// transparent.
func WithPNGBackground(c colorful.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c; r.hasBg = true }
}

// WithScale sets the output resolution multiplier (default 1). Glyphs are
// re-rasterized at the scaled size rather than resampled.
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// RenderPNG rasterizes the placed words of c with rz and encodes the result
// as PNG. rz should be the rasterizer the layout was computed with, so the
// drawn glyphs match the collision masks.
func RenderPNG(c wordcloud.Cloud, rz raster.Rasterizer, opts ...PNGOption) ([]byte, error) {
	img, err := RenderImage(c, rz, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// RenderImage is RenderPNG without the encoding step.
func RenderImage(c wordcloud.Cloud, rz raster.Rasterizer, opts ...PNGOption) (*image.RGBA, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "png scale must be positive, got %v", r.scale)
	}
	if rz == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "rasterizer is required")
	}
	if len(r.palette) == 0 {
		r.palette, _ = NamedPalette(DefaultPalette)
	}

	s := r.scale
	dst := image.NewRGBA(image.Rect(0, 0, px(float64(c.Canvas.Width)*s), px(float64(c.Canvas.Height)*s)))
	if r.hasBg {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
	}

	cx, cy := c.Canvas.Center()
	surface := raster.NewSurface()
	for i, pw := range c.Placed() {
		w, h := px(pw.Width*s), px(pw.Height*s)
		if w == 0 || h == 0 {
			continue
		}
		surface.Reset(w, h)
		if err := rz.RenderTextAlphaMask(pw.Name, pw.FontSize*s, c.Canvas.Bold, surface); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRasterization, err, "render %q", pw.Name)
		}
		at := image.Pt(px((float64(cx)+pw.X)*s), px((float64(cy)+pw.Y)*s))
		rect := image.Rectangle{Min: at, Max: at.Add(image.Pt(w, h))}
		draw.DrawMask(dst, rect, image.NewUniform(r.palette.At(i)), image.Point{}, surface.Image(), image.Point{}, draw.Over)
	}
	return dst, nil
}

func px(v float64) int { return int(math.Round(v)) }
