package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/layout"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/raster"
)

// ComputeLayout places words with r and applies the optional rescale. It
// reports the run to the registered pipeline hooks.
//
// A canceled context returns the words resolved so far together with the
// context error; the partial cloud is never rescaled.
func ComputeLayout(ctx context.Context, words []wordcloud.Word, r raster.Rasterizer, opts Options) (wordcloud.Cloud, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return wordcloud.Cloud{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(words))
	start := time.Now()

	canvas := opts.Canvas()
	placed, err := layout.Layout(ctx, words, canvas, r, layout.Options{
		Proximity:          opts.Proximity,
		StrictPixelPadding: opts.StrictPadding,
		OnProgress:         opts.OnProgress,
		Coarse:             opts.Coarse,
		Fine:               opts.Fine,
		Logger:             opts.Logger,
	})
	cloud := wordcloud.Cloud{Canvas: canvas, Words: placed}
	for _, w := range placed {
		if w.Unplaced {
			hooks.OnWordUnplaced(ctx, w.Name, string(w.Reason))
		}
	}
	if err == nil && opts.Rescale {
		cloud.Words, cloud.Scale = layout.Rescale(placed, canvas, opts.MaxScale)
	}

	unplaced := cloud.UnplacedCount()
	hooks.OnLayoutComplete(ctx, len(placed)-unplaced, unplaced, time.Since(start), err)
	return cloud, err
}
