package cache

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// WordsKey identifies a word list extracted from a source document.
	WordsKey(sourceHash string, opts WordsKeyOpts) string
	// LayoutKey identifies a layout computed from a word list.
	LayoutKey(wordsHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// WordsKeyOpts holds the extraction options that affect a word list.
type WordsKeyOpts struct {
	Format    string `json:"format"`
	MinLength int    `json:"min_length,omitempty"`
	MaxWords  int    `json:"max_words,omitempty"`
	Stopwords bool   `json:"stopwords,omitempty"`
}

// LayoutKeyOpts holds the options that affect a layout.
type LayoutKeyOpts struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	MinFontSize float64 `json:"min_font_size"`
	MaxFontSize float64 `json:"max_font_size"`
	Bold        bool    `json:"bold,omitempty"`
	Proximity   int     `json:"proximity,omitempty"`
	Strict      bool    `json:"strict,omitempty"`
	Rescale     bool    `json:"rescale,omitempty"`
	MaxScale    float64 `json:"max_scale,omitempty"`
	MaxWords    int     `json:"max_words,omitempty"`
	Font        string  `json:"font,omitempty"`
	Search      string  `json:"search,omitempty"`
}

// ArtifactKeyOpts holds the options that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Palette    string `json:"palette,omitempty"`
	Background string `json:"background,omitempty"`
	Font       string `json:"font,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// WordsKey implements Keyer.
func (DefaultKeyer) WordsKey(sourceHash string, opts WordsKeyOpts) string {
	return hashKey(StageWords, sourceHash, opts)
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(wordsHash string, opts LayoutKeyOpts) string {
	return hashKey(StageLayout, wordsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(StageArtifact, layoutHash, opts)
}
