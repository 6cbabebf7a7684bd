// Package layout places weighted words on a canvas without overlap.
//
// Layout processes words from heaviest to lightest. Each word starts at the
// font size its value maps to and is searched for along a spiral from the
// canvas center. When the coarse search fails the word is shrunk one point at
// a time down to size 1, where a final fine-grained search is tried before
// the word is reported as unplaced. Every input word appears in the result
// exactly once.
//
// Rescale post-processes a finished layout so that it fills the canvas.
package layout

import (
	"cmp"
	"context"
	"image"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/mask"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/raster"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/sizing"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/spiral"
)

// DefaultYieldEvery is the number of resolved words between cooperative
// yields when Options.YieldEvery is zero.
const DefaultYieldEvery = 8

// Options tunes a layout run. The zero value is usable.
type Options struct {
	// Proximity is the padding in pixels kept around every word, so two words
	// are at least 2*Proximity apart. Without StrictPixelPadding the padding
	// only applies horizontally.
	Proximity int

	// StrictPixelPadding dilates each word's mask by Proximity in both
	// directions, guaranteeing the gap on every side at some extra cost.
	StrictPixelPadding bool

	// OnProgress is called synchronously after each word is resolved.
	OnProgress func(Progress)

	// Coarse and Fine override the spiral search parameters. Zero fields
	// fall back to spiral.Coarse and spiral.Fine.
	Coarse spiral.Params
	Fine   spiral.Params

	// YieldEvery is the number of words between runtime.Gosched calls.
	// Negative disables yielding.
	YieldEvery int

	// Logger receives per-word debug output. Nil discards it.
	Logger *log.Logger
}

// Progress reports one resolved word.
type Progress struct {
	// Word is the result for the word just resolved.
	Word wordcloud.PlacedWord
	// All holds every result so far in processing order. It must not be
	// modified or retained past the callback.
	All []wordcloud.PlacedWord
	// Total is the number of input words.
	Total int
}

// Done returns the number of resolved words.
func (p Progress) Done() int { return len(p.All) }

// Layout places words on canvas using r to rasterize them.
//
// It fails only for invalid input (an INVALID_INPUT error). Words that cannot
// be placed are returned with Unplaced set. If ctx is canceled between words
// the results so far are returned together with ctx.Err(); words never
// attempted are absent. The result is ordered by descending font size.
func Layout(ctx context.Context, words []wordcloud.Word, canvas wordcloud.Canvas, r raster.Rasterizer, opts Options) ([]wordcloud.PlacedWord, error) {
	if err := wordcloud.ValidateWords(words); err != nil {
		return nil, err
	}
	if err := canvas.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "rasterizer is required")
	}
	if opts.Proximity < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "proximity must not be negative, got %d", opts.Proximity)
	}

	p := newPlacer(canvas, r, opts)
	rng := sizing.NewRange(words)
	yield := opts.YieldEvery
	if yield == 0 {
		yield = DefaultYieldEvery
	}

	start := time.Now()
	results := make([]wordcloud.PlacedWord, 0, len(words))
	for i, idx := range processingOrder(words) {
		if err := ctx.Err(); err != nil {
			return bySize(results), err
		}

		w := words[idx]
		target := rng.FontSize(w.Value, canvas.MinFontSize, canvas.MaxFontSize)
		pw, err := p.place(ctx, w, target)
		if err != nil {
			return bySize(results), err
		}
		results = append(results, pw)

		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Word: pw, All: slices.Clip(results), Total: len(words)})
		}
		if yield > 0 && (i+1)%yield == 0 {
			runtime.Gosched()
		}
	}

	p.log.Debug("layout complete",
		"words", len(words),
		"utilization", p.grid.Utilization(),
		"duration", time.Since(start))
	return bySize(results), nil
}

// processingOrder returns word indexes by descending value, ties in input order.
func processingOrder(words []wordcloud.Word) []int {
	order := make([]int, len(words))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(words[b].Value, words[a].Value)
	})
	return order
}

// bySize orders results by descending font size, keeping processing order
// among equal sizes. Unplaced words have size zero and sort last.
func bySize(results []wordcloud.PlacedWord) []wordcloud.PlacedWord {
	slices.SortStableFunc(results, func(a, b wordcloud.PlacedWord) int {
		return cmp.Compare(b.FontSize, a.FontSize)
	})
	return results
}

// placer holds the state owned by one layout run.
type placer struct {
	canvas  wordcloud.Canvas
	r       raster.Rasterizer
	surface *raster.Surface
	grid    *mask.Grid
	center  image.Point

	proximity int
	strict    bool
	// Per-phase overrides; zero fields fall back to spiral.For.
	coarse spiral.Params
	fine   spiral.Params

	log *log.Logger
}

func newPlacer(canvas wordcloud.Canvas, r raster.Rasterizer, opts Options) *placer {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cx, cy := canvas.Center()
	return &placer{
		canvas:    canvas,
		r:         r,
		surface:   raster.NewSurface(),
		grid:      mask.NewGrid(canvas.Width, canvas.Height),
		center:    image.Pt(cx, cy),
		proximity: opts.Proximity,
		strict:    opts.StrictPixelPadding,
		coarse:    opts.Coarse,
		fine:      opts.Fine,
		log:       logger,
	}
}
