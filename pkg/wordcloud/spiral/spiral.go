// Package spiral searches for a free position for a word mask by walking an
// Archimedean spiral outward from a center point.
//
// A search is a bounded state machine: it visits rings of increasing radius,
// sweeping each ring in fixed angular steps, and stops at the first candidate
// the grid accepts, when the radius passes the larger grid dimension, or
// when the attempt budget runs out. Two parameter sets are predefined:
// [Coarse] for the common case and [Fine] as the last-resort pass.
package spiral

import (
	"image"
	"math"

	"github.com/matzehuels/wordcloud/pkg/wordcloud/mask"
)

// Phase names a search configuration tier.
type Phase int

const (
	// PhaseCoarse uses large steps and a small budget.
	PhaseCoarse Phase = iota
	// PhaseFine uses small steps and a large budget.
	PhaseFine
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseCoarse:
		return "coarse"
	case PhaseFine:
		return "fine"
	}
	return "unknown"
}

// Params configures one search.
type Params struct {
	// AngleStep is the angular increment in degrees.
	AngleStep float64 `json:"angle_step" toml:"angle_step"`
	// RadiusStep is the radial increment in pixels between rings.
	RadiusStep float64 `json:"radius_step" toml:"radius_step"`
	// MaxAttempts bounds the number of candidates tested.
	MaxAttempts int `json:"max_attempts" toml:"max_attempts"`
}

// Default parameter sets. They only affect packing density and speed, never
// correctness.
var (
	Coarse = Params{AngleStep: 10, RadiusStep: 2, MaxAttempts: 10_000}
	Fine   = Params{AngleStep: 2, RadiusStep: 0.5, MaxAttempts: 250_000}
)

// For returns the default parameters for a phase.
func For(p Phase) Params {
	if p == PhaseFine {
		return Fine
	}
	return Coarse
}

// WithDefaults fills zero or negative fields from d.
func (p Params) WithDefaults(d Params) Params {
	if !(p.AngleStep > 0) {
		p.AngleStep = d.AngleStep
	}
	if !(p.RadiusStep > 0) {
		p.RadiusStep = d.RadiusStep
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = d.MaxAttempts
	}
	return p
}

// Result reports the outcome of a search.
type Result struct {
	// Origin is the top-left position for the mask. Valid only if Found.
	Origin   image.Point
	Found    bool
	Attempts int
	Radius   float64
}

// Search looks for the first origin at which g accepts m, walking outward
// from center. Candidates are center + r·(cos θ, sin θ) − size/2, rounded to
// whole pixels.
func Search(m *mask.Mask, g *mask.Grid, center image.Point, p Params) Result {
	s := newSearcher(m, g, center, p)
	for {
		pt, ok := s.next()
		if !ok {
			return Result{Attempts: s.attempts, Radius: s.radius}
		}
		if g.CanPlace(m, pt.X, pt.Y) {
			return Result{Origin: pt, Found: true, Attempts: s.attempts, Radius: s.radius}
		}
	}
}

// searcher holds the per-attempt spiral state.
type searcher struct {
	halfW, halfH float64
	cx, cy       float64
	p            Params

	radius    float64
	maxRadius float64
	ring      int // angle steps per ring
	step      int // next angle index on the current ring
	attempts  int

	last    image.Point
	hasLast bool
}

func newSearcher(m *mask.Mask, g *mask.Grid, center image.Point, p Params) *searcher {
	p = p.WithDefaults(Coarse)
	return &searcher{
		halfW:     float64(m.Width) / 2,
		halfH:     float64(m.Height) / 2,
		cx:        float64(center.X),
		cy:        float64(center.Y),
		p:         p,
		maxRadius: float64(max(g.Width, g.Height)),
		ring:      int(math.Ceil(360 / p.AngleStep)),
	}
}

// next returns the next distinct candidate, or false once the radius limit
// or the attempt budget is exhausted. Consecutive duplicates produced by
// rounding at small radii are skipped without consuming budget.
func (s *searcher) next() (image.Point, bool) {
	for {
		if s.attempts >= s.p.MaxAttempts || s.radius > s.maxRadius {
			return image.Point{}, false
		}

		theta := float64(s.step) * s.p.AngleStep * math.Pi / 180
		pt := image.Point{
			X: int(math.Round(s.cx + s.radius*math.Cos(theta) - s.halfW)),
			Y: int(math.Round(s.cy + s.radius*math.Sin(theta) - s.halfH)),
		}
		s.advance()

		if s.hasLast && pt == s.last {
			continue
		}
		s.last, s.hasLast = pt, true
		s.attempts++
		return pt, true
	}
}

// advance moves to the next angle, or to the next ring after a full sweep.
// Radius zero has a single candidate.
func (s *searcher) advance() {
	s.step++
	if s.radius == 0 || s.step >= s.ring {
		s.step = 0
		s.radius += s.p.RadiusStep
	}
}
