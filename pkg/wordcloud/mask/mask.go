package mask

import (
	"image"
	"math/bits"
)

// Bounds is an inclusive pixel rectangle. A Bounds with MaxX < MinX is empty.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// EmptyBounds returns a Bounds that contains nothing and grows on Include.
func EmptyBounds() Bounds {
	return Bounds{MinX: 1, MinY: 1, MaxX: 0, MaxY: 0}
}

// Empty reports whether b contains no pixels.
func (b Bounds) Empty() bool {
	return b.MaxX < b.MinX || b.MaxY < b.MinY
}

// Include grows b to cover columns x0..x1 of row y.
func (b Bounds) Include(x0, x1, y int) Bounds {
	if b.Empty() {
		return Bounds{MinX: x0, MinY: y, MaxX: x1, MaxY: y}
	}
	b.MinX = min(b.MinX, x0)
	b.MaxX = max(b.MaxX, x1)
	b.MinY = min(b.MinY, y)
	b.MaxY = max(b.MaxY, y)
	return b
}

// Mask is a bit-packed binary bitmap for one rasterized word.
//
// Ink records the tight bounds of the glyph pixels as rasterized, before any
// padding or dilation. The occupied extent, which drives bounds checks during
// placement, may be larger than Ink once padding has been applied.
//
// A Mask is built once by its producer and then treated as read-only;
// Dilate returns a new Mask.
type Mask struct {
	Width  int
	Height int
	Ink    Bounds

	stride int
	rows   []uint32
	extent Bounds
}

// New returns an empty mask of the given size.
func New(width, height int) *Mask {
	width, height = max(width, 0), max(height, 0)
	stride := wordsFor(width)
	return &Mask{
		Width:  width,
		Height: height,
		Ink:    EmptyBounds(),
		stride: stride,
		rows:   make([]uint32, stride*height),
		extent: EmptyBounds(),
	}
}

// Stride returns the number of 32-bit words per row.
func (m *Mask) Stride() int { return m.stride }

// Row returns the packed words of row y. The slice aliases the mask.
func (m *Mask) Row(y int) []uint32 {
	return m.rows[y*m.stride : (y+1)*m.stride]
}

// Extent returns the bounds of all occupied pixels.
func (m *Mask) Extent() Bounds { return m.extent }

// Empty reports whether no pixel is occupied.
func (m *Mask) Empty() bool { return m.extent.Empty() }

// SetSpan marks columns x0..x1 (inclusive) of row y, clipped to the mask.
func (m *Mask) SetSpan(y, x0, x1 int) {
	if y < 0 || y >= m.Height {
		return
	}
	x0, x1 = max(x0, 0), min(x1, m.Width-1)
	if x0 > x1 {
		return
	}
	setSpan(m.Row(y), x0, x1)
	m.extent = m.extent.Include(x0, x1, y)
}

// Set marks a single pixel.
func (m *Mask) Set(x, y int) { m.SetSpan(y, x, x) }

// At reports whether pixel (x, y) is occupied. Out-of-range pixels are not.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.rows[y*m.stride+x/WordBits]&(1<<uint(x%WordBits)) != 0
}

// Count returns the number of occupied pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.rows {
		n += bits.OnesCount32(w)
	}
	return n
}

// Spans calls fn for every maximal run of occupied pixels in row y.
func (m *Mask) Spans(y int, fn func(x0, x1 int)) {
	row := m.Row(y)
	start := -1
	for i, w := range row {
		switch {
		case start < 0 && w == 0:
			continue
		case start >= 0 && w == allBits:
			continue
		}
		base := i * WordBits
		for b := 0; b < WordBits; b++ {
			on := w&(1<<uint(b)) != 0
			switch {
			case on && start < 0:
				start = base + b
			case !on && start >= 0:
				fn(start, base+b-1)
				start = -1
			}
		}
	}
	if start >= 0 {
		fn(start, min(len(row)*WordBits, m.Width)-1)
	}
}

// Points returns every occupied pixel in row-major order.
func (m *Mask) Points() []image.Point {
	var pts []image.Point
	for y := m.extent.MinY; y <= m.extent.MaxY; y++ {
		m.Spans(y, func(x0, x1 int) {
			for x := x0; x <= x1; x++ {
				pts = append(pts, image.Pt(x, y))
			}
		})
	}
	return pts
}

// Clone returns an independent copy of m.
func (m *Mask) Clone() *Mask {
	c := *m
	c.rows = make([]uint32, len(m.rows))
	copy(c.rows, m.rows)
	return &c
}

// orRow merges src into row y and grows the extent to match.
func (m *Mask) orRow(y int, src []uint32) {
	dst := m.Row(y)
	first, last := -1, -1
	for i, w := range src {
		if w == 0 {
			continue
		}
		dst[i] |= w
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return
	}
	x0 := first*WordBits + bits.TrailingZeros32(src[first])
	x1 := last*WordBits + WordBits - 1 - bits.LeadingZeros32(src[last])
	m.extent = m.extent.Include(x0, x1, y)
}
