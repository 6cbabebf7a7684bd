// Package fonts provides the font data used to measure, rasterize and render
// words.
//
// The default faces are the Go fonts shipped with golang.org/x/image, so the
// binary needs no font files on disk. The same bytes are embedded into SVG
// output, which keeps the browser's glyph shapes identical to the ones the
// layout engine collided against.
package fonts

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name used for the embedded faces.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers that ignore @font-face.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// RegularTTF returns the TrueType data of the regular face.
func RegularTTF() []byte { return goregular.TTF }

// BoldTTF returns the TrueType data of the bold face.
func BoldTTF() []byte { return gobold.TTF }

var (
	parseOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	parseErr    error
)

func parseDefaults() {
	regularFont, parseErr = opentype.Parse(goregular.TTF)
	if parseErr != nil {
		parseErr = fmt.Errorf("parse regular face: %w", parseErr)
		return
	}
	boldFont, parseErr = opentype.Parse(gobold.TTF)
	if parseErr != nil {
		parseErr = fmt.Errorf("parse bold face: %w", parseErr)
	}
}

// Regular returns the parsed regular face. The result is cached.
func Regular() (*opentype.Font, error) {
	parseOnce.Do(parseDefaults)
	return regularFont, parseErr
}

// Bold returns the parsed bold face. The result is cached.
func Bold() (*opentype.Font, error) {
	parseOnce.Do(parseDefaults)
	return boldFont, parseErr
}

// Load reads a TrueType or OpenType font file from disk. A bare file name
// that does not exist in the working directory (e.g. "DejaVuSans.ttf") is
// looked up in the user and system font directories.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && filepath.Base(path) == path {
		found, ferr := findfont.Find(path)
		if ferr != nil {
			return nil, fmt.Errorf("font %s: not a file and not installed", path)
		}
		data, err = os.ReadFile(found)
		path = found
	}
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return data, nil
}

// Cache for base64-encoded fonts (computed once on first access).
var (
	regularBase64     string
	regularBase64Once sync.Once
	boldBase64        string
	boldBase64Once    sync.Once
)

// RegularBase64 returns the regular TTF data as a base64 string.
func RegularBase64() string {
	regularBase64Once.Do(func() {
		regularBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return regularBase64
}

// BoldBase64 returns the bold TTF data as a base64 string.
func BoldBase64() string {
	boldBase64Once.Do(func() {
		boldBase64 = base64.StdEncoding.EncodeToString(gobold.TTF)
	})
	return boldBase64
}
