package sink

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// DefaultPalette is the palette used when none is configured.
const DefaultPalette = "ocean"

// Palette is an ordered list of word colors.
type Palette []colorful.Color

// At returns the color for the i-th word, cycling through the palette.
// An empty palette yields black.
func (p Palette) At(i int) colorful.Color {
	if len(p) == 0 {
		return colorful.Color{}
	}
	return p[i%len(p)]
}

// Hex returns the palette as "#rrggbb" strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// paletteSize is the number of colors generated for gradient palettes.
const paletteSize = 8

// stops holds the gradient end points of the built-in palettes. Gradients are
// blended in HCL space so perceived lightness changes evenly.
var stops = map[string][]string{
	"ocean":  {"#0b3c5d", "#328cc1", "#1fb5a8"},
	"sunset": {"#5f0f40", "#e36414", "#fb8b24"},
	"forest": {"#1b4332", "#40916c", "#95d5b2"},
	"mono":   {"#222222"},
}

// PaletteNames returns the built-in palette names in sorted order, including
// "rainbow".
func PaletteNames() []string {
	names := make([]string, 0, len(stops)+1)
	for n := range stops {
		names = append(names, n)
	}
	names = append(names, "rainbow")
	slices.Sort(names)
	return names
}

// NamedPalette returns a built-in palette.
func NamedPalette(name string) (Palette, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultPalette
	}
	if name == "rainbow" {
		return rainbow(paletteSize), nil
	}
	hexes, ok := stops[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"unknown palette %q (available: %s)", name, strings.Join(PaletteNames(), ", "))
	}
	cs, err := parseHexes(hexes)
	if err != nil {
		return nil, err
	}
	if len(cs) == 1 {
		return Palette(cs), nil
	}
	return gradient(cs, paletteSize), nil
}

// ParsePalette builds a palette from "#rrggbb" colors. A single entry that
// names a built-in palette is resolved with NamedPalette.
func ParsePalette(spec []string) (Palette, error) {
	if len(spec) == 0 {
		return NamedPalette(DefaultPalette)
	}
	if len(spec) == 1 && !strings.HasPrefix(spec[0], "#") {
		return NamedPalette(spec[0])
	}
	cs, err := parseHexes(spec)
	if err != nil {
		return nil, err
	}
	return Palette(cs), nil
}

// ParseColor parses a "#rrggbb" color. Empty and "none" or "transparent"
// report ok=false.
func ParseColor(s string) (c colorful.Color, ok bool, err error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "transparent":
		return colorful.Color{}, false, nil
	}
	c, err = colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q", s)
	}
	return c, true, nil
}

func parseHexes(hexes []string) ([]colorful.Color, error) {
	cs := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q", h)
		}
		cs = append(cs, c)
	}
	return cs, nil
}

// gradient samples n colors evenly along the piecewise HCL blend of cs.
func gradient(cs []colorful.Color, n int) Palette {
	out := make(Palette, n)
	segs := float64(len(cs) - 1)
	for i := range out {
		t := float64(i) / float64(n-1) * segs
		k := min(int(t), len(cs)-2)
		out[i] = cs[k].BlendHcl(cs[k+1], t-float64(k)).Clamped()
	}
	return out
}

func rainbow(n int) Palette {
	out := make(Palette, n)
	for i := range out {
		out[i] = colorful.Hcl(float64(i)*360/float64(n), 0.6, 0.55).Clamped()
	}
	return out
}

func (p Palette) String() string {
	return fmt.Sprintf("%v", p.Hex())
}
