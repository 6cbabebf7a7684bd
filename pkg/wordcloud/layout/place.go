package layout

import (
	"context"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/mask"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/raster"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/sizing"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/spiral"
)

// shape is a word rasterized at one size.
type shape struct {
	size float64
	// ink is the rasterized glyph mask; its Ink bounds are reported.
	ink *mask.Mask
	// collide is ink grown by the padding. It is what gets tested and marked.
	collide *mask.Mask
}

// place walks the degradation ladder for w: the coarse search at every size
// from target down to 1, then the fine search at size 1.
//
// The error is non-nil only when ctx is canceled mid-word.
func (p *placer) place(ctx context.Context, w wordcloud.Word, target float64) (wordcloud.PlacedWord, error) {
	reason := errors.ErrCodeRasterization
	var smallest *shape

	for _, size := range sizing.Ladder(target) {
		if err := ctx.Err(); err != nil {
			return wordcloud.PlacedWord{}, err
		}
		sh, err := p.shape(w.Name, size)
		if err != nil {
			p.log.Debug("rasterize failed", "word", w.Name, "size", size, "err", err)
			continue
		}
		reason = errors.ErrCodeUnplaceable
		if size == sizing.MinimumFontSize {
			smallest = sh
		}
		if res, ok := p.search(sh, spiral.PhaseCoarse); ok {
			return p.commit(w, sh, res), nil
		}
	}

	if smallest != nil {
		if res, ok := p.search(smallest, spiral.PhaseFine); ok {
			return p.commit(w, smallest, res), nil
		}
	}

	p.log.Warn("word unplaced", "word", w.Name, "target", target, "reason", reason)
	return wordcloud.PlacedWord{Word: w, Unplaced: true, Reason: reason}, nil
}

// shape rasterizes name at size and derives its collision mask.
func (p *placer) shape(name string, size float64) (*shape, error) {
	ink, err := raster.Rasterize(p.r, p.surface, name, size, p.canvas.Bold, p.proximity)
	if err != nil {
		return nil, err
	}
	collide := ink
	switch {
	case p.proximity == 0:
	case p.strict:
		collide = mask.Dilate(ink, p.proximity)
	default:
		collide = mask.Widen(ink, p.proximity)
	}
	return &shape{size: size, ink: ink, collide: collide}, nil
}

// search runs one spiral phase for sh. Shapes larger than the canvas are
// rejected without searching.
func (p *placer) search(sh *shape, phase spiral.Phase) (spiral.Result, bool) {
	e := sh.collide.Extent()
	if e.MaxX-e.MinX+1 > p.canvas.Width || e.MaxY-e.MinY+1 > p.canvas.Height {
		return spiral.Result{}, false
	}

	res := spiral.Search(sh.collide, p.grid, p.center, p.params(phase))
	if !res.Found {
		p.log.Debug("spiral exhausted",
			"phase", phase,
			"size", sh.size,
			"attempts", res.Attempts,
			"radius", res.Radius)
	}
	return res, res.Found
}

// params returns the search parameters for phase with overrides applied.
func (p *placer) params(phase spiral.Phase) spiral.Params {
	override := p.coarse
	if phase == spiral.PhaseFine {
		override = p.fine
	}
	return override.WithDefaults(spiral.For(phase))
}

// commit claims the grid cells for sh at the found origin.
func (p *placer) commit(w wordcloud.Word, sh *shape, res spiral.Result) wordcloud.PlacedWord {
	p.grid.Mark(sh.collide, res.Origin.X, res.Origin.Y)
	p.log.Debug("placed word",
		"word", w.Name,
		"size", sh.size,
		"x", res.Origin.X,
		"y", res.Origin.Y,
		"attempts", res.Attempts)

	ink := sh.ink.Ink
	return wordcloud.PlacedWord{
		Word:     w,
		X:        float64(res.Origin.X - p.center.X),
		Y:        float64(res.Origin.Y - p.center.Y),
		FontSize: sh.size,
		Width:    float64(sh.ink.Width),
		Height:   float64(sh.ink.Height),
		MinX:     float64(ink.MinX),
		MinY:     float64(ink.MinY),
		MaxX:     float64(ink.MaxX),
		MaxY:     float64(ink.MaxY),
	}
}
