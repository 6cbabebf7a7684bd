// Package sizing maps word values to target font sizes.
package sizing

import (
	"math"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// MinimumFontSize is the smallest size the degradation ladder tries.
const MinimumFontSize = 1

// Range is the value range of a word set. Compute it once with NewRange
// when sizing many words against the same set.
type Range struct {
	Min, Max float64
}

// NewRange returns the minimum and maximum value of words.
// An empty set yields a zero Range.
func NewRange(words []wordcloud.Word) Range {
	if len(words) == 0 {
		return Range{}
	}
	r := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, w := range words {
		r.Min = math.Min(r.Min, w.Value)
		r.Max = math.Max(r.Max, w.Value)
	}
	return r
}

// FontSize interpolates value linearly between minFont and maxFont, clamped
// to that interval. A degenerate range maps every value to minFont.
func (r Range) FontSize(value, minFont, maxFont float64) float64 {
	span := r.Max - r.Min
	if !(span > 0) {
		return minFont
	}
	size := minFont + (value-r.Min)/span*(maxFont-minFont)
	return math.Max(minFont, math.Min(maxFont, size))
}

// TargetFontSize returns the font size for word before any degradation.
func TargetFontSize(word wordcloud.Word, all []wordcloud.Word, minFont, maxFont float64) float64 {
	return NewRange(all).FontSize(word.Value, minFont, maxFont)
}

// Ladder returns the sizes tried for a word whose target is size: the target,
// then one point smaller each step, ending at MinimumFontSize.
func Ladder(size float64) []float64 {
	if !(size > MinimumFontSize) {
		return []float64{MinimumFontSize}
	}
	steps := make([]float64, 0, int(size))
	for s := size; s > MinimumFontSize; s-- {
		steps = append(steps, s)
	}
	return append(steps, MinimumFontSize)
}
