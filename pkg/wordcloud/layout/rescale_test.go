package layout

import (
	"context"
	"math"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/raster/rastertest"
)

func placed(name string, x, y, w, h float64) wordcloud.PlacedWord {
	return wordcloud.PlacedWord{
		Word:     wordcloud.Word{Name: name, Value: 1},
		X:        x,
		Y:        y,
		FontSize: 10,
		Width:    w,
		Height:   h,
		MaxX:     w - 1,
		MaxY:     h - 1,
	}
}

func TestRescale(t *testing.T) {
	canvas := wordcloud.Canvas{Width: 100, Height: 100, MinFontSize: 1, MaxFontSize: 10}
	words := []wordcloud.PlacedWord{placed("a", -10, -5, 20, 10)}

	tests := []struct {
		name     string
		maxScale float64
		want     float64
	}{
		{"capped", 4, 4},
		{"fills canvas", 10, 5},
		{"default cap", 0, DefaultMaxScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, s := Rescale(words, canvas, tt.maxScale)
			if s != tt.want {
				t.Fatalf("scale = %v, want %v", s, tt.want)
			}
			w := got[0]
			if w.X != -10*s || w.Y != -5*s || w.FontSize != 10*s || w.Width != 20*s || w.Height != 10*s {
				t.Errorf("scaled word = %+v", w)
			}
			if w.Scale != s {
				t.Errorf("Scale = %v, want %v", w.Scale, s)
			}
			if w.InkRight() != 10*s {
				t.Errorf("InkRight() = %v, want %v", w.InkRight(), 10*s)
			}
		})
	}
}

func TestRescaleSkipsUnplaced(t *testing.T) {
	canvas := wordcloud.Canvas{Width: 100, Height: 100, MinFontSize: 1, MaxFontSize: 10}
	lost := wordcloud.PlacedWord{Word: wordcloud.Word{Name: "lost"}, Unplaced: true}
	words := []wordcloud.PlacedWord{placed("a", -10, -5, 20, 10), lost}

	got, _ := Rescale(words, canvas, 4)
	if got[1] != lost {
		t.Errorf("unplaced word changed: %+v", got[1])
	}
	if words[0].X != -10 {
		t.Error("Rescale modified its input")
	}

	if _, s := Rescale([]wordcloud.PlacedWord{lost}, canvas, 4); s != 1 {
		t.Errorf("scale with nothing placed = %v, want 1", s)
	}
}

func TestRescaleNeverShrinks(t *testing.T) {
	canvas := wordcloud.Canvas{Width: 20, Height: 20, MinFontSize: 1, MaxFontSize: 10}
	words := []wordcloud.PlacedWord{placed("edge", -10, -10, 20, 20)}

	if _, s := Rescale(words, canvas, 4); s != 1 {
		t.Errorf("scale = %v, want 1 for a layout that already fills the canvas", s)
	}
}

// overlaps compares ink boxes with a tolerance so that touching edges stay
// touching after floating-point scaling.
func overlaps(a, b wordcloud.PlacedWord) bool {
	const eps = 1e-6
	return a.InkLeft() < b.InkRight()-eps && b.InkLeft() < a.InkRight()-eps &&
		a.InkTop() < b.InkBottom()-eps && b.InkTop() < a.InkBottom()-eps
}

func TestRescaleAfterLayout(t *testing.T) {
	words := manyWords(12)
	canvas := wordcloud.Canvas{Width: 400, Height: 300, MinFontSize: 6, MaxFontSize: 18}

	laid, err := Layout(context.Background(), words, canvas, rastertest.Blocks{}, Options{Proximity: 1})
	if err != nil {
		t.Fatal(err)
	}
	got, s := Rescale(laid, canvas, 4)
	if s < 1 || s > 4 {
		t.Fatalf("scale = %v, want within [1, 4]", s)
	}

	cx, cy := canvas.Center()
	const eps = 1e-9
	for i, w := range got {
		if w.Unplaced {
			continue
		}
		if float64(cx)+w.InkLeft() < -eps || float64(cx)+w.InkRight() > float64(canvas.Width)+eps ||
			float64(cy)+w.InkTop() < -eps || float64(cy)+w.InkBottom() > float64(canvas.Height)+eps {
			t.Errorf("%q leaves the canvas after rescale: %+v", w.Name, w)
		}
		for j := i + 1; j < len(got); j++ {
			if got[j].Unplaced {
				continue
			}
			if overlaps(w, got[j]) != overlaps(laid[i], laid[j]) {
				t.Errorf("rescale changed whether %q and %q overlap", w.Name, got[j].Name)
			}
		}
	}

	// The scaled cloud touches at least one canvas edge unless capped.
	if s < 4 {
		touch := math.Inf(1)
		for _, w := range got {
			if w.Unplaced {
				continue
			}
			touch = math.Min(touch, float64(cx)+w.InkLeft())
			touch = math.Min(touch, float64(canvas.Width-cx)-w.InkRight())
			touch = math.Min(touch, float64(cy)+w.InkTop())
			touch = math.Min(touch, float64(canvas.Height-cy)-w.InkBottom())
		}
		if math.Abs(touch) > 1e-6 {
			t.Errorf("closest edge distance = %v, want 0", touch)
		}
	}
}
