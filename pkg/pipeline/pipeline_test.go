package pipeline

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/layout"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/spiral"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateEngine(t *testing.T) {
	tests := []struct {
		engine  string
		wantErr bool
	}{
		{"opentype", false},
		{"freetype", false},
		{"cairo", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateEngine(tt.engine)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
		}
	}
}

func TestLayoutDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("ValidateForLayout() error: %v", err)
	}

	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("canvas = %dx%d, want %dx%d", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.MinFontSize != DefaultMinFontSize || opts.MaxFontSize != DefaultMaxFontSize {
		t.Errorf("font range = [%v, %v]", opts.MinFontSize, opts.MaxFontSize)
	}
	if opts.MaxScale != layout.DefaultMaxScale {
		t.Errorf("MaxScale = %v, want %v", opts.MaxScale, layout.DefaultMaxScale)
	}
	if opts.Engine != EngineOpenType {
		t.Errorf("Engine = %q, want %q", opts.Engine, EngineOpenType)
	}
	if opts.Coarse != spiral.Coarse || opts.Fine != spiral.Fine {
		t.Errorf("search params = %v/%v", opts.Coarse, opts.Fine)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestMaxFontSizeFollowsLargeMinimum(t *testing.T) {
	opts := Options{MinFontSize: 120}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("ValidateForLayout() error: %v", err)
	}
	if opts.MaxFontSize != 120 {
		t.Errorf("MaxFontSize = %v, want 120", opts.MaxFontSize)
	}
}

func TestValidateForLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidInput},
		{"inverted fonts", Options{MinFontSize: 20, MaxFontSize: 10}, errors.ErrCodeInvalidInput},
		{"negative proximity", Options{Proximity: -2}, errors.ErrCodeInvalidConfig},
		{"max scale below one", Options{MaxScale: 0.5}, errors.ErrCodeInvalidConfig},
		{"unknown engine", Options{Engine: "cairo"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForLayout() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidateForRead(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"no source", Options{}, true},
		{"inline words", Options{Words: []wordcloud.Word{{Name: "a", Value: 1}}}, false},
		{"inline text", Options{Text: "hello world"}, false},
		{"input file", Options{Input: "words.csv"}, false},
		{"bad format", Options{Input: "words.csv", Format: "xml"}, true},
		{"negative max words", Options{Text: "x", MaxWords: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRead()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForRead() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateForRender(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender() error: %v", err)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.PNGScale != 1 {
		t.Errorf("PNGScale = %v, want 1", opts.PNGScale)
	}

	bad := []Options{
		{Formats: []string{"gif"}},
		{Palette: []string{"plaid"}},
		{Background: "blue"},
		{PNGScale: -1},
	}
	for _, o := range bad {
		if err := o.ValidateForRender(); err == nil {
			t.Errorf("ValidateForRender(%+v) should fail", o)
		}
	}
}

func TestTopWords(t *testing.T) {
	words := []wordcloud.Word{
		{Name: "a", Value: 1},
		{Name: "b", Value: 5},
		{Name: "c", Value: 3},
		{Name: "d", Value: 5},
		{Name: "e", Value: 3},
	}

	tests := []struct {
		n    int
		want []string
	}{
		{0, []string{"a", "b", "c", "d", "e"}},
		{2, []string{"b", "d"}},
		{3, []string{"b", "c", "d"}},
		{10, []string{"a", "b", "c", "d", "e"}},
	}
	for _, tt := range tests {
		got := TopWords(words, tt.n)
		names := make([]string, len(got))
		for i, w := range got {
			names[i] = w.Name
		}
		if !reflect.DeepEqual(names, tt.want) {
			t.Errorf("TopWords(%d) = %v, want %v", tt.n, names, tt.want)
		}
	}
}

func TestCacheKeyOptions(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	a := opts.LayoutKeyOpts("bundled")
	opts.Proximity = 2
	if b := opts.LayoutKeyOpts("bundled"); a == b {
		t.Error("proximity should change the layout key")
	}
	if opts.LayoutKeyOpts("bundled") == opts.LayoutKeyOpts("other") {
		t.Error("font hash should change the layout key")
	}

	png1 := opts.ArtifactKeyOpts(FormatPNG, "bundled")
	opts.PNGScale = 2
	if png1 == opts.ArtifactKeyOpts(FormatPNG, "bundled") {
		t.Error("png scale should change the artifact key")
	}
	svg := opts.ArtifactKeyOpts(FormatSVG, "bundled")
	opts.NoEmbedFont = true
	if svg == opts.ArtifactKeyOpts(FormatSVG, "bundled") {
		t.Error("font embedding should change the svg artifact key")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloud.toml")
	config := `
width = 400
height = 300
proximity = 2
strict_padding = true
formats = ["svg", "png"]
palette = ["#ff0000", "#00ff00"]

[coarse]
angle_step = 5

[[words]]
name = "go"
value = 10

[[words]]
name = "rust"
value = 7
`
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if opts.Width != 400 || opts.Height != 300 || opts.Proximity != 2 || !opts.StrictPadding {
		t.Errorf("layout options = %+v", opts)
	}
	if opts.Coarse.AngleStep != 5 || opts.Coarse.RadiusStep != 0 {
		t.Errorf("Coarse = %+v, want only AngleStep set", opts.Coarse)
	}
	want := []wordcloud.Word{{Name: "go", Value: 10}, {Name: "rust", Value: 7}}
	if !reflect.DeepEqual(opts.Words, want) {
		t.Errorf("Words = %v, want %v", opts.Words, want)
	}
	if !reflect.DeepEqual(opts.Formats, []string{"svg", "png"}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	typo := filepath.Join(dir, "typo.toml")
	if err := os.WriteFile(typo, []byte("widht = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("width = \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{typo, broken, filepath.Join(dir, "missing.toml")} {
		if _, err := LoadConfig(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("LoadConfig(%s) error = %v, want INVALID_CONFIG", filepath.Base(path), err)
		}
	}
}

func TestApplyConfigKeepsUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloud.toml")
	if err := os.WriteFile(path, []byte("width = 640\nrescale = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := Options{Width: 100, Height: 90, Rescale: true, Engine: EngineFreeType}
	if err := ApplyConfig(path, &opts); err != nil {
		t.Fatalf("ApplyConfig() error: %v", err)
	}
	if opts.Width != 640 || opts.Rescale {
		t.Errorf("file values not applied: %+v", opts)
	}
	if opts.Height != 90 || opts.Engine != EngineFreeType {
		t.Errorf("unset fields changed: %+v", opts)
	}
}
