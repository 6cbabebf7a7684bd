package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// DefaultMaxScale bounds Rescale when no maximum is given.
const DefaultMaxScale = 4.0

// Rescale enlarges a finished layout uniformly about the canvas center until
// the ink bounding box of the placed words touches the canvas edge, or until
// maxScale (DefaultMaxScale if not positive) is reached. It scales positions,
// font sizes, surface sizes and ink bounds, and records the factor in Scale.
//
// Collision is not re-checked: a uniform scale of a non-overlapping layout
// cannot introduce overlap. The factor is never below 1. The input slice is
// not modified; the applied factor is returned alongside the copy.
func Rescale(words []wordcloud.PlacedWord, canvas wordcloud.Canvas, maxScale float64) ([]wordcloud.PlacedWord, float64) {
	out := slices.Clone(words)
	if !(maxScale > 0) {
		maxScale = DefaultMaxScale
	}

	left, top := math.Inf(1), math.Inf(1)
	right, bottom := math.Inf(-1), math.Inf(-1)
	for _, w := range words {
		if w.Unplaced {
			continue
		}
		left = math.Min(left, w.InkLeft())
		top = math.Min(top, w.InkTop())
		right = math.Max(right, w.InkRight())
		bottom = math.Max(bottom, w.InkBottom())
	}
	if math.IsInf(left, 1) {
		return out, 1
	}

	cx, cy := canvas.Center()
	s := maxScale
	s = math.Min(s, limit(-left, float64(cx)))
	s = math.Min(s, limit(right, float64(canvas.Width-cx)))
	s = math.Min(s, limit(-top, float64(cy)))
	s = math.Min(s, limit(bottom, float64(canvas.Height-cy)))
	s = math.Max(s, 1)

	for i := range out {
		if out[i].Unplaced {
			continue
		}
		scale(&out[i], s)
	}
	return out, s
}

// limit returns the largest factor that keeps a center-relative extent
// within room. Extents on the other side of the center impose no limit.
func limit(extent, room float64) float64 {
	if extent <= 0 {
		return math.Inf(1)
	}
	return room / extent
}

func scale(w *wordcloud.PlacedWord, s float64) {
	w.X *= s
	w.Y *= s
	w.FontSize *= s
	w.Width *= s
	w.Height *= s
	w.MinX *= s
	w.MinY *= s
	w.MaxX *= s
	w.MaxY *= s
	if w.Scale > 0 {
		w.Scale *= s
	} else {
		w.Scale = s
	}
}
