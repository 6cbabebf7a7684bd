package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette    Palette
	background colorful.Color
	hasBg      bool
	fontData   []byte
	embed      bool
	family     string
}

// WithPalette sets the word colors.
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithBackground fills the canvas with c.
func WithBackground(c colorful.Color) SVGOption {
	return func(r *svgRenderer) { r.background = c; r.hasBg = true }
}

// WithFontData embeds the given TrueType or OpenType data instead of the
// bundled face. Pass the same bytes the layout's rasterizer was built from.
func WithFontData(data []byte) SVGOption { return func(r *svgRenderer) { r.fontData = data } }

// WithoutEmbeddedFont references the font family by name only, producing a
// much smaller file that depends on the viewer having the font.
func WithoutEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embed = false } }

// WithFontFamily overrides the CSS font-family of the words.
func WithFontFamily(family string) SVGOption { return func(r *svgRenderer) { r.family = family } }

func newSVGRenderer(opts ...SVGOption) *svgRenderer {
	r := &svgRenderer{embed: true, family: fonts.FontFamily}
	for _, opt := range opts {
		opt(r)
	}
	if len(r.palette) == 0 {
		r.palette, _ = NamedPalette(DefaultPalette)
	}
	return r
}

// RenderSVG draws the placed words of c as SVG text.
//
// Each word is anchored at the middle of its layout surface with a central
// baseline, which matches how the rasterizers position glyphs. Words are
// painted in layout order, so larger words are drawn first.
func RenderSVG(c wordcloud.Cloud, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := c.Canvas.Width, c.Canvas.Height

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	r.writeStyle(&buf, c.Canvas.Bold)
	if r.hasBg {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background.Hex())
	}

	cx, cy := c.Canvas.Center()
	for i, pw := range c.Placed() {
		x := float64(cx) + pw.X + pw.Width/2
		y := float64(cy) + pw.Y + pw.Height/2
		fmt.Fprintf(&buf, `  <text x="%s" y="%s" font-size="%s" fill="%s">%s</text>`+"\n",
			num(x), num(y), num(pw.FontSize), r.palette.At(i).Hex(), escapeXML(pw.Name))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) writeStyle(buf *bytes.Buffer, bold bool) {
	weight := "normal"
	if bold {
		weight = "bold"
	}
	buf.WriteString("  <style>\n")
	if r.embed {
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; font-weight: %s; src: url(data:font/ttf;base64,%s); }\n",
			r.family, weight, r.fontBase64(bold))
	}
	fmt.Fprintf(buf, "    text { font-family: '%s', %s; font-weight: %s; text-anchor: middle; dominant-baseline: central; }\n",
		r.family, fonts.FallbackFontFamily, weight)
	buf.WriteString("  </style>\n")
}

func (r *svgRenderer) fontBase64(bold bool) string {
	switch {
	case r.fontData != nil:
		return base64.StdEncoding.EncodeToString(r.fontData)
	case bold:
		return fonts.BoldBase64()
	default:
		return fonts.RegularBase64()
	}
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
