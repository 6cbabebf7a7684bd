package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/raster"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/sink"
)

// Render generates output artifacts in the requested formats. fontData is
// the user font embedded into SVG output, or nil for the bundled face.
func Render(ctx context.Context, c wordcloud.Cloud, r raster.Rasterizer, fontData []byte, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := render(c, r, fontData, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func render(c wordcloud.Cloud, r raster.Rasterizer, fontData []byte, opts Options) (map[string][]byte, error) {
	palette, err := opts.palette()
	if err != nil {
		return nil, err
	}
	bg, hasBg, err := opts.background()
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			svgOpts := []sink.SVGOption{sink.WithPalette(palette)}
			if hasBg {
				svgOpts = append(svgOpts, sink.WithBackground(bg))
			}
			if fontData != nil {
				svgOpts = append(svgOpts, sink.WithFontData(fontData), sink.WithFontFamily("WordcloudCustom"))
			}
			if opts.NoEmbedFont {
				svgOpts = append(svgOpts, sink.WithoutEmbeddedFont())
			}
			data = sink.RenderSVG(c, svgOpts...)
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithPNGPalette(palette), sink.WithScale(opts.PNGScale)}
			if hasBg {
				pngOpts = append(pngOpts, sink.WithPNGBackground(bg))
			}
			data, err = sink.RenderPNG(c, r, pngOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(c)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// palette resolves the configured colors.
func (o *Options) palette() (sink.Palette, error) {
	return sink.ParsePalette(o.Palette)
}

func (o *Options) background() (c colorful.Color, ok bool, err error) {
	return sink.ParseColor(o.Background)
}
