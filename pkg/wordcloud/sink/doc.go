// Package sink renders a finished [wordcloud.Cloud] to output formats.
//
// # Formats
//
//   - SVG ([RenderSVG]): one <text> element per placed word, painted largest
//     first. The font used for layout is embedded as a data URI by default so
//     browsers draw the same glyphs the engine collided against.
//   - PNG ([RenderPNG]): words are rasterized with the same
//     [raster.Rasterizer] that produced the layout and composited onto an
//     RGBA image. No external tools are needed.
//   - JSON ([RenderJSON], [ReadJSON]): the layout document itself, which can
//     be re-rendered later without recomputing the layout.
//
// # Colors
//
// Words are colored from a [Palette] in layout order, cycling when the cloud
// has more words than the palette has colors. See [PaletteNames] for the
// built-in palettes.
//
// Unplaced words are never drawn. All renderers are safe to call
// concurrently; none modify the cloud.
//
// [raster.Rasterizer]: github.com/matzehuels/wordcloud/pkg/wordcloud/raster.Rasterizer
package sink
