// Package pipeline provides the read → layout → render pipeline shared by
// the CLI and the HTTP API.
//
// Centralizing the stages here keeps defaults, validation and caching
// identical across entry points.
//
// # Stages
//
//  1. Read: load a weighted word list from a file or take it inline, then
//     optionally keep only the MaxWords heaviest words
//  2. Layout: place the words with the layout engine and optionally rescale
//     the result to fill the canvas
//  3. Render: produce SVG, PNG and JSON artifacts from the layout
//
// Each stage can be run on its own through a [Runner], which caches stage
// results keyed by content hashes.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "words.csv",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/errors"
	wcio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/layout"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/spiral"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600

	// DefaultMinFontSize is the font size of the lightest word.
	DefaultMinFontSize = 10.0

	// DefaultMaxFontSize is the font size of the heaviest word.
	DefaultMaxFontSize = 80.0

	// DefaultMaxWords caps the number of words taken from text sources.
	DefaultMaxWords = 200

	// DefaultMinLength is the shortest token counted in plain text.
	DefaultMinLength = 3
)

// Font rasterizer engines.
const (
	EngineOpenType = "opentype"
	EngineFreeType = "freetype"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidEngines is the set of supported rasterizer engines.
var ValidEngines = map[string]bool{
	EngineOpenType: true,
	EngineFreeType: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. It is decoded from API
// request bodies (JSON) and config files (TOML).
type Options struct {
	// Read options
	Input         string           `json:"-" toml:"input"`
	Format        string           `json:"format,omitempty" toml:"format"`
	Words         []wordcloud.Word `json:"words,omitempty" toml:"words"`
	Text          string           `json:"text,omitempty" toml:"-"`
	MinLength     int              `json:"min_length,omitempty" toml:"min_length"`
	MaxWords      int              `json:"max_words,omitempty" toml:"max_words"`
	KeepStopwords bool             `json:"keep_stopwords,omitempty" toml:"keep_stopwords"`

	// Layout options
	Width         int           `json:"width,omitempty" toml:"width"`
	Height        int           `json:"height,omitempty" toml:"height"`
	MinFontSize   float64       `json:"min_font_size,omitempty" toml:"min_font_size"`
	MaxFontSize   float64       `json:"max_font_size,omitempty" toml:"max_font_size"`
	Bold          bool          `json:"bold,omitempty" toml:"bold"`
	Proximity     int           `json:"proximity,omitempty" toml:"proximity"`
	StrictPadding bool          `json:"strict_padding,omitempty" toml:"strict_padding"`
	Rescale       bool          `json:"rescale,omitempty" toml:"rescale"`
	MaxScale      float64       `json:"max_scale,omitempty" toml:"max_scale"`
	Font          string        `json:"-" toml:"font"`
	Engine        string        `json:"engine,omitempty" toml:"engine"`
	Coarse        spiral.Params `json:"coarse" toml:"coarse"`
	Fine          spiral.Params `json:"fine" toml:"fine"`

	// Render options
	Formats     []string `json:"formats,omitempty" toml:"formats"`
	Palette     []string `json:"palette,omitempty" toml:"palette"`
	Background  string   `json:"background,omitempty" toml:"background"`
	PNGScale    float64  `json:"png_scale,omitempty" toml:"png_scale"`
	NoEmbedFont bool     `json:"no_embed_font,omitempty" toml:"no_embed_font"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger     *log.Logger           `json:"-" toml:"-"`
	OnProgress func(layout.Progress) `json:"-" toml:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that a rasterizer engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid engine: %q (must be one of: opentype, freetype)", engine)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetReadDefaults sets default values for reading word lists.
func (o *Options) SetReadDefaults() {
	if o.MinLength == 0 {
		o.MinLength = DefaultMinLength
	}
	o.setLogger()
}

// ValidateForRead checks that a word source is present.
func (o *Options) ValidateForRead() error {
	o.SetReadDefaults()
	if len(o.Words) == 0 && o.Text == "" && o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "words, text or an input file is required")
	}
	if o.Format != "" {
		if _, err := wcio.ParseFormat(o.Format); err != nil {
			return err
		}
	}
	if o.MaxWords < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_words must not be negative, got %d", o.MaxWords)
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MinFontSize == 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.MaxFontSize == 0 {
		o.MaxFontSize = max(DefaultMaxFontSize, o.MinFontSize)
	}
	if o.MaxScale == 0 {
		o.MaxScale = layout.DefaultMaxScale
	}
	if o.Engine == "" {
		o.Engine = EngineOpenType
	}
	o.Coarse = o.Coarse.WithDefaults(spiral.Coarse)
	o.Fine = o.Fine.WithDefaults(spiral.Fine)
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.Canvas().Validate(); err != nil {
		return err
	}
	if o.Proximity < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "proximity must not be negative, got %d", o.Proximity)
	}
	if o.MaxScale < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_scale must be at least 1, got %v", o.MaxScale)
	}
	return ValidateEngine(o.Engine)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = 1
	}
	if o.Engine == "" {
		o.Engine = EngineOpenType
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "png_scale must be positive, got %v", o.PNGScale)
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if _, err := o.palette(); err != nil {
		return err
	}
	_, _, err := o.background()
	return err
}

// Canvas returns the layout canvas described by the options.
func (o *Options) Canvas() wordcloud.Canvas {
	return wordcloud.Canvas{
		Width:       o.Width,
		Height:      o.Height,
		MinFontSize: o.MinFontSize,
		MaxFontSize: o.MaxFontSize,
		Bold:        o.Bold,
	}
}

// TextOptions returns the plain-text extraction options.
func (o *Options) TextOptions() wcio.TextOptions {
	return wcio.TextOptions{
		MinLength: o.MinLength,
		MaxWords:  o.textLimit(),
		Stopwords: !o.KeepStopwords,
	}
}

// textLimit is the number of tokens kept from plain text.
func (o *Options) textLimit() int {
	if o.MaxWords > 0 {
		return o.MaxWords
	}
	return DefaultMaxWords
}

// WordsKeyOpts returns cache key options for word extraction.
func (o *Options) WordsKeyOpts(format wcio.Format) cache.WordsKeyOpts {
	return cache.WordsKeyOpts{
		Format:    string(format),
		MinLength: o.MinLength,
		MaxWords:  o.textLimit(),
		Stopwords: !o.KeepStopwords,
	}
}

// LayoutKeyOpts returns cache key options for layout computation. fontHash
// identifies the font data the rasterizer was built from.
func (o *Options) LayoutKeyOpts(fontHash string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:       o.Width,
		Height:      o.Height,
		MinFontSize: o.MinFontSize,
		MaxFontSize: o.MaxFontSize,
		Bold:        o.Bold,
		Proximity:   o.Proximity,
		Strict:      o.StrictPadding,
		Rescale:     o.Rescale,
		MaxScale:    o.MaxScale,
		MaxWords:    o.MaxWords,
		Font:        o.Engine + ":" + fontHash,
		Search:      fmt.Sprintf("%v/%v", o.Coarse, o.Fine),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format, fontHash string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		Palette:    strings.Join(o.Palette, ","),
		Background: o.Background,
		Font:       o.Engine + ":" + fontHash,
	}
	if format == FormatPNG {
		opts.Format = fmt.Sprintf("%s@%v", format, o.PNGScale)
	}
	if format == FormatSVG && o.NoEmbedFont {
		opts.Format = format + "+noembed"
	}
	return opts
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// =============================================================================
// Config Files
// =============================================================================

// LoadConfig reads options from a TOML file. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func LoadConfig(path string) (Options, error) {
	var o Options
	if err := ApplyConfig(path, &o); err != nil {
		return Options{}, err
	}
	return o, nil
}

// ApplyConfig decodes a TOML file over o. Keys absent from the file keep
// their current values, so callers can layer a file on top of defaults.
func ApplyConfig(path string, o *Options) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	md, err := toml.DecodeFile(path, o)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}
