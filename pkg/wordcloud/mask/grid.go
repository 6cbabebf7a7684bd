package mask

import "math/bits"

// Grid is the canvas-wide occupancy bit field.
//
// A bit is set if and only if some previously marked mask covers that pixel.
// Bits are never cleared; repositioning a word requires a fresh Grid.
// A Grid is owned by a single layout run and is not safe for concurrent use.
type Grid struct {
	Width  int
	Height int

	stride int
	rows   []uint32
	tail   uint32 // valid bits of the last word in each row
}

// NewGrid returns an empty grid of the given size.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	g := &Grid{
		Width:  width,
		Height: height,
		stride: wordsFor(width),
	}
	g.rows = make([]uint32, g.stride*height)
	if width > 0 {
		g.tail = ToBits((width - 1) % WordBits)
	}
	return g
}

func (g *Grid) row(y int) []uint32 {
	return g.rows[y*g.stride : (y+1)*g.stride]
}

// At reports whether pixel (x, y) is claimed. Out-of-range pixels are not.
func (g *Grid) At(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	return g.rows[y*g.stride+x/WordBits]&(1<<uint(x%WordBits)) != 0
}

// CanPlace reports whether m fits with its top-left corner at (ox, oy): every
// occupied pixel must land inside the grid on an unclaimed bit. It stops at
// the first conflicting word.
func (g *Grid) CanPlace(m *Mask, ox, oy int) bool {
	e := m.extent
	if e.Empty() {
		return true
	}
	if ox+e.MinX < 0 || oy+e.MinY < 0 || ox+e.MaxX >= g.Width || oy+e.MaxY >= g.Height {
		return false
	}
	for y := e.MinY; y <= e.MaxY; y++ {
		src := m.Row(y)
		dst := g.row(oy + y)
		for i := e.MinX / WordBits; i <= e.MaxX/WordBits; i++ {
			b := src[i]
			if b == 0 {
				continue
			}
			gw, lo, hi := spread(b, ox+i*WordBits)
			if dst[gw]&lo != 0 {
				return false
			}
			if hi != 0 && dst[gw+1]&hi != 0 {
				return false
			}
		}
	}
	return true
}

// Mark claims every occupied pixel of m placed at (ox, oy). Pixels outside
// the grid are dropped, so Mark never panics even without a prior CanPlace.
func (g *Grid) Mark(m *Mask, ox, oy int) {
	e := m.extent
	if e.Empty() {
		return
	}
	for y := e.MinY; y <= e.MaxY; y++ {
		gy := oy + y
		if gy < 0 || gy >= g.Height {
			continue
		}
		src := m.Row(y)
		dst := g.row(gy)
		for i := e.MinX / WordBits; i <= e.MaxX/WordBits; i++ {
			b := src[i]
			if b == 0 {
				continue
			}
			gw, lo, hi := spread(b, ox+i*WordBits)
			g.or(dst, gw, lo)
			g.or(dst, gw+1, hi)
		}
	}
}

func (g *Grid) or(row []uint32, i int, w uint32) {
	if w == 0 || i < 0 || i >= g.stride {
		return
	}
	if i == g.stride-1 {
		w &= g.tail
	}
	row[i] |= w
}

// Occupied returns the number of claimed pixels.
func (g *Grid) Occupied() int {
	n := 0
	for _, w := range g.rows {
		n += bits.OnesCount32(w)
	}
	return n
}

// Utilization returns the claimed fraction of the grid area.
func (g *Grid) Utilization() float64 {
	area := g.Width * g.Height
	if area == 0 {
		return 0
	}
	return float64(g.Occupied()) / float64(area)
}
