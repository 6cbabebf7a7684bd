// Package wordcloud defines the data model shared by the word-cloud layout
// engine and its renderers.
//
// The engine itself lives in subpackages, leaf-first:
//
//   - [github.com/matzehuels/wordcloud/pkg/wordcloud/mask]: bit-packed word masks,
//     the occupancy grid, and mask dilation
//   - [github.com/matzehuels/wordcloud/pkg/wordcloud/raster]: glyph rasterization
//     into masks
//   - [github.com/matzehuels/wordcloud/pkg/wordcloud/spiral]: Archimedean spiral
//     placement search
//   - [github.com/matzehuels/wordcloud/pkg/wordcloud/sizing]: value to font size
//     mapping
//   - [github.com/matzehuels/wordcloud/pkg/wordcloud/layout]: the orchestrator and
//     the fill rescaler
//   - [github.com/matzehuels/wordcloud/pkg/wordcloud/sink]: SVG, PNG and JSON output
//
// # Coordinates
//
// Placement happens on an integer pixel grid of Canvas.Width × Canvas.Height
// with the origin at the top-left. Results report positions relative to the
// canvas center so they survive a uniform rescale about that center.
//
// # Determinism
//
// Given a deterministic rasterizer, a layout is a pure function of its inputs.
// Words are processed in descending value order, ties broken by input order.
package wordcloud
