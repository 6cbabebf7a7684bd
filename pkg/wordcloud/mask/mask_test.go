package mask

import (
	"image"
	"testing"
)

func TestNewMaskStride(t *testing.T) {
	tests := []struct {
		width, stride int
	}{
		{0, 0},
		{1, 1},
		{32, 1},
		{33, 2},
		{100, 4},
	}
	for _, tt := range tests {
		m := New(tt.width, 3)
		if m.Stride() != tt.stride {
			t.Errorf("New(%d, 3).Stride() = %d, want %d", tt.width, m.Stride(), tt.stride)
		}
		if !m.Empty() {
			t.Errorf("New(%d, 3) should be empty", tt.width)
		}
	}
}

func TestMaskSetSpanClips(t *testing.T) {
	m := New(40, 4)
	m.SetSpan(1, -10, 5)
	m.SetSpan(2, 35, 100)
	m.SetSpan(9, 0, 10) // out of range row

	if !m.At(0, 1) || !m.At(5, 1) || m.At(6, 1) {
		t.Error("span [-10,5] should clip to [0,5]")
	}
	if !m.At(39, 2) || m.At(34, 2) {
		t.Error("span [35,100] should clip to [35,39]")
	}
	if got := m.Count(); got != 6+5 {
		t.Errorf("Count() = %d, want %d", got, 11)
	}

	want := Bounds{MinX: 0, MinY: 1, MaxX: 39, MaxY: 2}
	if m.Extent() != want {
		t.Errorf("Extent() = %+v, want %+v", m.Extent(), want)
	}
}

func TestMaskAtOutOfRange(t *testing.T) {
	m := New(10, 10)
	m.Set(0, 0)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if m.At(p.X, p.Y) {
			t.Errorf("At(%d, %d) = true for out-of-range pixel", p.X, p.Y)
		}
	}
}

func TestMaskSpans(t *testing.T) {
	m := New(96, 1)
	m.SetSpan(0, 2, 4)
	m.SetSpan(0, 30, 70)
	m.SetSpan(0, 95, 95)

	var got [][2]int
	m.Spans(0, func(x0, x1 int) { got = append(got, [2]int{x0, x1}) })

	want := [][2]int{{2, 4}, {30, 70}, {95, 95}}
	if len(got) != len(want) {
		t.Fatalf("Spans() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMaskPointsAndClone(t *testing.T) {
	m := New(8, 8)
	m.Set(1, 1)
	m.Set(6, 3)

	c := m.Clone()
	c.Set(7, 7)

	if got := len(m.Points()); got != 2 {
		t.Errorf("original Points() = %d, want 2", got)
	}
	if got := len(c.Points()); got != 3 {
		t.Errorf("clone Points() = %d, want 3", got)
	}
	if m.At(7, 7) {
		t.Error("Clone should not alias the original rows")
	}
}

func TestBoundsInclude(t *testing.T) {
	b := EmptyBounds()
	if !b.Empty() {
		t.Fatal("EmptyBounds should be empty")
	}
	b = b.Include(5, 7, 2)
	b = b.Include(1, 3, 9)
	want := Bounds{MinX: 1, MinY: 2, MaxX: 7, MaxY: 9}
	if b != want {
		t.Errorf("Include = %+v, want %+v", b, want)
	}
}
