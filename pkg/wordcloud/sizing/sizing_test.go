package sizing

import (
	"cmp"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

func words(values ...float64) []wordcloud.Word {
	out := make([]wordcloud.Word, len(values))
	for i, v := range values {
		out[i] = wordcloud.Word{Name: "w", Value: v}
	}
	return out
}

func TestTargetFontSize(t *testing.T) {
	all := words(10, 5, 0, 7.5)

	tests := []struct {
		value float64
		want  float64
	}{
		{10, 20},
		{0, 10},
		{5, 15},
		{7.5, 17.5},
	}
	for _, tt := range tests {
		got := TargetFontSize(wordcloud.Word{Value: tt.value}, all, 10, 20)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("TargetFontSize(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestTargetFontSizeTwoWords(t *testing.T) {
	all := []wordcloud.Word{{Name: "one", Value: 10}, {Name: "two", Value: 5}}
	if got := TargetFontSize(all[0], all, 10, 20); got != 20 {
		t.Errorf("one = %v, want 20", got)
	}
	if got := TargetFontSize(all[1], all, 10, 20); got != 10 {
		t.Errorf("two = %v, want 10", got)
	}
}

func TestTargetFontSizeEqualValues(t *testing.T) {
	all := words(1, 1, 1)
	for _, w := range all {
		if got := TargetFontSize(w, all, 8, 40); got != 8 {
			t.Errorf("TargetFontSize() = %v, want min 8", got)
		}
	}
}

func TestTargetFontSizeClamps(t *testing.T) {
	r := NewRange(words(0, 10))
	if got := r.FontSize(20, 10, 20); got != 20 {
		t.Errorf("above range = %v, want 20", got)
	}
	if got := r.FontSize(-5, 10, 20); got != 10 {
		t.Errorf("below range = %v, want 10", got)
	}
}

func TestTargetFontSizeMonotonic(t *testing.T) {
	all := words(-3, 0, 1, 1, 2.5, 9, 100, 42)
	sorted := slices.Clone(all)
	slices.SortFunc(sorted, func(a, b wordcloud.Word) int { return cmp.Compare(a.Value, b.Value) })

	prev := math.Inf(-1)
	for _, w := range sorted {
		got := TargetFontSize(w, all, 12, 64)
		if got < prev {
			t.Errorf("size for %v = %v, smaller than %v for a lower value", w.Value, got, prev)
		}
		prev = got
	}
}

func TestNewRange(t *testing.T) {
	if r := NewRange(nil); r != (Range{}) {
		t.Errorf("NewRange(nil) = %+v, want zero", r)
	}
	if r := NewRange(words(3, -1, 7)); r != (Range{Min: -1, Max: 7}) {
		t.Errorf("NewRange() = %+v, want {-1 7}", r)
	}
}

func TestLadder(t *testing.T) {
	tests := []struct {
		size float64
		want []float64
	}{
		{4, []float64{4, 3, 2, 1}},
		{2.5, []float64{2.5, 1.5, 1}},
		{1, []float64{1}},
		{0.2, []float64{1}},
	}
	for _, tt := range tests {
		if got := Ladder(tt.size); !slices.Equal(got, tt.want) {
			t.Errorf("Ladder(%v) = %v, want %v", tt.size, got, tt.want)
		}
	}
}
