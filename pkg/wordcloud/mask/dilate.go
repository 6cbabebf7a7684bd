package mask

// Dilate returns a copy of m in which every pixel within Chebyshev distance
// radius of an occupied pixel is also occupied.
//
// The result keeps m's width, height and ink bounds: pixels that would fall
// outside the rectangle are dropped. m is not modified. A non-positive radius
// returns a plain copy.
func Dilate(m *Mask, radius int) *Mask {
	if radius <= 0 || m.Empty() {
		return m.Clone()
	}

	wide := Widen(m, radius)

	// Vertical pass: each output row is the OR of its neighbors within radius.
	out := New(m.Width, m.Height)
	out.Ink = m.Ink
	for y := wide.extent.MinY; y <= wide.extent.MaxY; y++ {
		src := wide.Row(y)
		for dy := -radius; dy <= radius; dy++ {
			ty := y + dy
			if ty < 0 || ty >= out.Height {
				continue
			}
			out.orRow(ty, src)
		}
	}
	return out
}

// Widen returns a copy of m in which every run of occupied pixels is
// extended by radius columns on both sides. Rows are not touched. Like
// Dilate it clips to the rectangle and keeps m's ink bounds.
func Widen(m *Mask, radius int) *Mask {
	if radius <= 0 || m.Empty() {
		return m.Clone()
	}
	out := New(m.Width, m.Height)
	out.Ink = m.Ink
	for y := m.extent.MinY; y <= m.extent.MaxY; y++ {
		m.Spans(y, func(x0, x1 int) {
			out.SetSpan(y, x0-radius, x1+radius)
		})
	}
	return out
}
