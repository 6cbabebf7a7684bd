package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/sink"
)

// binder registers one group of option flags on fs, writing into o. The
// current field values become the flag defaults.
type binder func(fs *pflag.FlagSet, o *pipeline.Options)

func bindReadFlags(fs *pflag.FlagSet, o *pipeline.Options) {
	fs.StringVar(&o.Format, "input-format", o.Format, "input format: json, csv, toml, text (default: by extension)")
	fs.StringVar(&o.Text, "text", o.Text, "count words in this text instead of reading a file")
	fs.IntVar(&o.MinLength, "min-length", o.MinLength, "shortest word counted in plain text")
	fs.IntVar(&o.MaxWords, "max-words", o.MaxWords, "keep only the N heaviest words (0: all)")
	fs.BoolVar(&o.KeepStopwords, "keep-stopwords", o.KeepStopwords, "count common English stop words in plain text")
}

func bindFontFlags(fs *pflag.FlagSet, o *pipeline.Options) {
	fs.StringVar(&o.Font, "font", o.Font, "TrueType/OpenType font file or installed font name (default: bundled Go font)")
	fs.StringVar(&o.Engine, "engine", o.Engine, "glyph rasterizer: opentype (default), freetype")
	fs.BoolVar(&o.Bold, "bold", o.Bold, "use the bold face")
}

func bindLayoutFlags(fs *pflag.FlagSet, o *pipeline.Options) {
	fs.IntVar(&o.Width, "width", o.Width, "canvas width in pixels")
	fs.IntVar(&o.Height, "height", o.Height, "canvas height in pixels")
	fs.Float64Var(&o.MinFontSize, "min-font", o.MinFontSize, "font size of the lightest word")
	fs.Float64Var(&o.MaxFontSize, "max-font", o.MaxFontSize, "font size of the heaviest word")
	fs.IntVar(&o.Proximity, "proximity", o.Proximity, "padding in pixels around each word")
	fs.BoolVar(&o.StrictPadding, "strict", o.StrictPadding, "pad vertically as well as horizontally")
	fs.BoolVar(&o.Rescale, "rescale", o.Rescale, "scale the finished layout to fill the canvas")
	fs.Float64Var(&o.MaxScale, "max-scale", o.MaxScale, "upper bound for --rescale")
}

func bindRenderFlags(fs *pflag.FlagSet, o *pipeline.Options) {
	fs.StringSliceVarP(&o.Formats, "format", "f", o.Formats, "output format(s): svg, png, json (comma-separated)")
	fs.StringSliceVar(&o.Palette, "palette", o.Palette, "palette name ("+strings.Join(sink.PaletteNames(), ", ")+") or comma-separated hex colors")
	fs.StringVar(&o.Background, "background", o.Background, "background color (default: transparent)")
	fs.Float64Var(&o.PNGScale, "png-scale", o.PNGScale, "pixel density of PNG output")
	fs.BoolVar(&o.NoEmbedFont, "no-embed-font", o.NoEmbedFont, "reference the font family in SVG instead of embedding it")
}

// optionFlags collects the pipeline flags of one command together with the
// --config file they may be layered over.
type optionFlags struct {
	opts    pipeline.Options
	config  string
	binders []binder
}

func newOptionFlags(cmd *cobra.Command, binders ...binder) *optionFlags {
	f := &optionFlags{binders: binders}
	setCLIDefaults(&f.opts)
	for _, bind := range binders {
		bind(cmd.Flags(), &f.opts)
	}
	cmd.Flags().StringVar(&f.config, "config", "", "TOML file with options; explicit flags override it")
	return f
}

// resolve returns the effective options. Without --config these are the
// flag values. With it, the file is decoded over the CLI defaults and every
// flag given on the command line is applied on top.
func (f *optionFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	if f.config == "" {
		return f.opts, nil
	}

	var cfg pipeline.Options
	setCLIDefaults(&cfg)
	if err := pipeline.ApplyConfig(f.config, &cfg); err != nil {
		return pipeline.Options{}, err
	}

	shadow := pflag.NewFlagSet("config", pflag.ContinueOnError)
	for _, bind := range f.binders {
		bind(shadow, &cfg)
	}
	var err error
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		dst := shadow.Lookup(fl.Name)
		if err != nil || dst == nil {
			return
		}
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			err = dst.Value.(pflag.SliceValue).Replace(sv.GetSlice())
			return
		}
		err = dst.Value.Set(fl.Value.String())
	})
	if err != nil {
		return pipeline.Options{}, err
	}
	return cfg, nil
}
