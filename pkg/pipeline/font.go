package pipeline

import (
	"io"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/raster"
)

// bundledFont identifies the built-in Go faces in cache keys.
const bundledFont = "bundled"

// typeface is the font a run measures, rasterizes and embeds.
type typeface struct {
	// data is the user font file, or nil for the bundled faces.
	data []byte
	hash string
	r    raster.Rasterizer
}

// Close releases cached glyph faces.
func (t *typeface) Close() error {
	if c, ok := t.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// loadTypeface builds the rasterizer selected by opts.Engine from opts.Font,
// or from the bundled faces when no font file is given.
func loadTypeface(opts Options) (*typeface, error) {
	if opts.Font == "" {
		return bundledTypeface(opts.Engine)
	}
	data, err := fonts.Load(opts.Font)
	if err != nil {
		return nil, err
	}
	t := &typeface{data: data, hash: cache.Hash(data)}
	switch opts.Engine {
	case EngineFreeType:
		t.r, err = raster.ParseFreeType(data, nil)
	default:
		t.r, err = raster.ParseOpenType(data)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func bundledTypeface(engine string) (*typeface, error) {
	t := &typeface{hash: bundledFont}
	var err error
	switch engine {
	case EngineFreeType:
		t.r, err = raster.ParseFreeType(fonts.RegularTTF(), fonts.BoldTTF())
	default:
		t.r, err = raster.NewDefaultOpenType()
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}
