// Package pkg provides the libraries behind the wordcloud layout engine.
//
// # Overview
//
// Wordcloud places weighted words on a fixed canvas so that no two glyph
// shapes overlap, sizing each word by its value. The pkg directory is
// organized into three areas:
//
//  1. [wordcloud] - The layout engine (masks, rasterization, spiral search, sizing, sinks)
//  2. [pipeline] - Orchestration (read → layout → render) with caching
//  3. Infrastructure ([cache], [errors], [observability], [fonts], [io], [api])
//
// # Architecture
//
// The typical data flow:
//
//	Word list (JSON/CSV/TOML) or raw text
//	         ↓
//	    [io] package (parse, count, filter stopwords)
//	         ↓
//	    [wordcloud/layout] package (size, rasterize, place on the spiral)
//	         ↓
//	    [wordcloud/sink] package (SVG/PNG/JSON output)
//
// # Quick Start
//
// Run the whole pipeline with an in-memory cache:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/wordcloud/pkg/cache"
//	    "github.com/matzehuels/wordcloud/pkg/pipeline"
//	)
//
//	opts := pipeline.Options{Text: text, Formats: []string{"svg"}}
//	runner := pipeline.NewRunner(cache.NewMemoryCache(0), nil, nil)
//	defer runner.Close()
//
//	res, _ := runner.Execute(context.Background(), opts)
//	svg := res.Artifacts["svg"]
//
// # Main Packages
//
// ## Layout Engine
//
// [wordcloud] - Shared data model: Word, PlacedWord, Canvas and Cloud.
//
//   - [wordcloud/mask]: Bit-packed word masks, the occupancy grid, dilation
//   - [wordcloud/raster]: Glyph rasterization (freetype and x/image/opentype)
//   - [wordcloud/spiral]: Archimedean spiral placement search
//   - [wordcloud/sizing]: Value to font size mapping
//   - [wordcloud/layout]: The placement loop and the fill rescaler
//   - [wordcloud/sink]: SVG, PNG and JSON output, color palettes
//
// ## Orchestration
//
// [pipeline] - Options, defaults and validation shared by the CLI and the
// HTTP server. The Runner caches word lists, layouts and artifacts.
//
// ## Infrastructure
//
// [cache] - Content-addressed cache with file, memory, Redis and null backends.
//
// [errors] - Coded errors mapped to exit codes and HTTP statuses.
//
// [observability] - Hooks for layout and render events.
//
// [fonts] - Bundled Go fonts and font file loading.
//
// [io] - Word list import and export.
//
// [api] - HTTP server exposing layout and render endpoints.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/wordcloud/layout/...   # Specific package
//	go test -run Example                 # Examples only
//
// [wordcloud]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/wordcloud
// [wordcloud/mask]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/wordcloud/mask
// [wordcloud/raster]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/wordcloud/raster
// [wordcloud/spiral]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/wordcloud/spiral
// [wordcloud/sizing]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/wordcloud/sizing
// [wordcloud/layout]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/wordcloud/layout
// [wordcloud/sink]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/wordcloud/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/observability
// [fonts]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/fonts
// [io]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/io
// [api]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/api
package pkg
