package sink

import (
	"encoding/json"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact      bool
	dropUnplaced bool
}

// WithCompactJSON disables indentation.
func WithCompactJSON() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithoutUnplaced omits words that could not be placed.
func WithoutUnplaced() JSONOption { return func(r *jsonRenderer) { r.dropUnplaced = true } }

// RenderJSON exports the cloud as a JSON document that [ReadJSON] can load
// back for re-rendering. Unplaced words are kept with their reason code
// unless WithoutUnplaced is given.
func RenderJSON(c wordcloud.Cloud, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.dropUnplaced {
		c.Words = c.Placed()
	}
	if c.Words == nil {
		c.Words = []wordcloud.PlacedWord{}
	}
	if r.compact {
		return json.Marshal(c)
	}
	return json.MarshalIndent(c, "", "  ")
}

// ReadJSON parses a document written by RenderJSON and validates its canvas.
func ReadJSON(data []byte) (wordcloud.Cloud, error) {
	var c wordcloud.Cloud
	if err := json.Unmarshal(data, &c); err != nil {
		return wordcloud.Cloud{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout document")
	}
	if err := c.Canvas.Validate(); err != nil {
		return wordcloud.Cloud{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "layout document")
	}
	return c, nil
}
