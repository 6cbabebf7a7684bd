package mask

// WordBits is the number of pixels packed into one row word.
// Bit i of word w covers column w*WordBits+i.
const WordBits = 32

const allBits = ^uint32(0)

// RangeBits returns a word with bits start through end (inclusive) set.
// It requires 0 <= start <= end < WordBits.
func RangeBits(start, end int) uint32 {
	return (allBits >> uint(WordBits-1-(end-start))) << uint(start)
}

// FromBits returns a word with bits start through the end of the word set.
func FromBits(start int) uint32 {
	return allBits << uint(start)
}

// ToBits returns a word with bits from the start of the word through end set.
func ToBits(end int) uint32 {
	return allBits >> uint(WordBits-1-end)
}

// wordsFor returns the number of words needed to hold width pixels.
func wordsFor(width int) int {
	return (width + WordBits - 1) / WordBits
}

// setSpan sets columns x0..x1 (inclusive) in row. Callers clip first.
func setSpan(row []uint32, x0, x1 int) {
	w0, w1 := x0/WordBits, x1/WordBits
	b0, b1 := x0%WordBits, x1%WordBits
	if w0 == w1 {
		row[w0] |= RangeBits(b0, b1)
		return
	}
	row[w0] |= FromBits(b0)
	for i := w0 + 1; i < w1; i++ {
		row[i] = allBits
	}
	row[w1] |= ToBits(b1)
}

// spread positions mask word b so that its bit 0 lands on grid column x0.
// The result straddles at most two grid words: lo at index gw and hi at gw+1.
// Bits that fall left of column 0 are dropped.
func spread(b uint32, x0 int) (gw int, lo, hi uint32) {
	if x0 < 0 {
		if x0 <= -WordBits {
			return 0, 0, 0
		}
		return 0, b >> uint(-x0), 0
	}
	gw = x0 / WordBits
	s := uint(x0 % WordBits)
	lo = b << s
	if s != 0 {
		hi = b >> (WordBits - s)
	}
	return gw, lo, hi
}
