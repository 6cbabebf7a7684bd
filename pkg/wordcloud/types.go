package wordcloud

import (
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Word is a weighted label supplied to the layout engine.
// Value may be zero or negative; sizes are normalized against the set.
type Word struct {
	Name  string  `json:"name" toml:"name"`
	Value float64 `json:"value" toml:"value"`
}

// PlacedWord is the layout result for one input word.
//
// X and Y are the top-left offset of the word's surface relative to the
// canvas center. Width and Height describe the rasterized surface, and
// MinX..MaxY the tight (inclusive) ink bounds within it, so renderers can
// trim padding. Angle is always 0; rotated placement is not implemented.
//
// A word that exhausted every placement attempt has Unplaced set and a Reason
// code; its geometry fields are zero.
type PlacedWord struct {
	Word

	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"font_size"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Angle    float64 `json:"angle"`

	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`

	// Scale is the factor applied by Rescale; zero means unscaled.
	Scale float64 `json:"scale,omitempty"`

	Unplaced bool        `json:"unplaced,omitempty"`
	Reason   errors.Code `json:"reason,omitempty"`
}

// InkLeft returns the canvas-center-relative x of the first ink column.
func (p PlacedWord) InkLeft() float64 { return p.X + p.MinX }

// InkTop returns the canvas-center-relative y of the first ink row.
func (p PlacedWord) InkTop() float64 { return p.Y + p.MinY }

// InkRight returns the canvas-center-relative x just past the last ink column.
func (p PlacedWord) InkRight() float64 { return p.X + p.MaxX + p.pixel() }

// InkBottom returns the canvas-center-relative y just past the last ink row.
func (p PlacedWord) InkBottom() float64 { return p.Y + p.MaxY + p.pixel() }

// pixel is the extent of one source pixel after any rescale. The ink bounds
// are inclusive, so the right/bottom edge adds one scaled pixel.
func (p PlacedWord) pixel() float64 {
	if p.Scale > 0 {
		return p.Scale
	}
	return 1
}

// Canvas describes the placement area and the font size range.
type Canvas struct {
	Width       int     `json:"width" toml:"width"`
	Height      int     `json:"height" toml:"height"`
	MinFontSize float64 `json:"min_font_size" toml:"min_font_size"`
	MaxFontSize float64 `json:"max_font_size" toml:"max_font_size"`
	Bold        bool    `json:"bold,omitempty" toml:"bold"`
}

// Center returns the integer pixel center of the canvas.
func (c Canvas) Center() (int, int) {
	return c.Width / 2, c.Height / 2
}

// Validate checks the canvas dimensions and font range.
func (c Canvas) Validate() error {
	if err := errors.ValidateCanvas(c.Width, c.Height); err != nil {
		return err
	}
	return errors.ValidateFontRange(c.MinFontSize, c.MaxFontSize)
}

// ValidateWords checks that the word list is usable for a layout: it must
// not be empty and every value must be finite. Names are not checked; a name
// that renders nothing comes back unplaced.
func ValidateWords(words []Word) error {
	if len(words) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "word list is empty")
	}
	for i, w := range words {
		if err := errors.ValidateValue(w.Value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "word %d (%q)", i, w.Name)
		}
	}
	return nil
}

// Cloud is a finished layout together with the canvas it was computed for.
// It is what renderers consume and what the JSON sink persists.
type Cloud struct {
	Canvas Canvas       `json:"canvas"`
	Scale  float64      `json:"scale,omitempty"`
	Words  []PlacedWord `json:"words"`
}

// Placed returns the words that were placed, in layout order.
func (c Cloud) Placed() []PlacedWord {
	out := make([]PlacedWord, 0, len(c.Words))
	for _, w := range c.Words {
		if !w.Unplaced {
			out = append(out, w)
		}
	}
	return out
}

// UnplacedCount returns the number of words that could not be placed.
func (c Cloud) UnplacedCount() int {
	n := 0
	for _, w := range c.Words {
		if w.Unplaced {
			n++
		}
	}
	return n
}
