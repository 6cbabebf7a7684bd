package pipeline

import (
	"bytes"
	"cmp"
	"context"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/errors"
	wcio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// source is a word list document to be parsed.
type source struct {
	name   string
	format wcio.Format
	data   []byte
}

// openSource resolves where the words come from. Inline words bypass it.
func openSource(opts Options) (source, error) {
	if opts.Text != "" {
		format := wcio.FormatText
		if opts.Format != "" {
			format, _ = wcio.ParseFormat(opts.Format)
		}
		return source{name: "inline", format: format, data: []byte(opts.Text)}, nil
	}

	if err := errors.ValidatePath(opts.Input); err != nil {
		return source{}, err
	}
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return source{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", opts.Input)
		}
		return source{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read input %s", opts.Input)
	}
	format := wcio.DetectFormat(opts.Input)
	if opts.Format != "" {
		format, _ = wcio.ParseFormat(opts.Format)
	}
	return source{name: opts.Input, format: format, data: data}, nil
}

// Read parses the source into a word list without caching.
func Read(ctx context.Context, opts Options) ([]wordcloud.Word, error) {
	if err := opts.ValidateForRead(); err != nil {
		return nil, err
	}
	if len(opts.Words) > 0 {
		return TopWords(opts.Words, opts.MaxWords), nil
	}
	src, err := openSource(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return parseSource(src, opts)
}

func parseSource(src source, opts Options) ([]wordcloud.Word, error) {
	words, err := wcio.ReadWords(bytes.NewReader(src.data), src.format, opts.TextOptions())
	if err != nil {
		return nil, err
	}
	return TopWords(words, opts.MaxWords), nil
}

// TopWords keeps the n heaviest words, preserving their relative input
// order. Ties at the cut favor earlier words. n <= 0 keeps everything.
func TopWords(words []wordcloud.Word, n int) []wordcloud.Word {
	if n <= 0 || len(words) <= n {
		return words
	}
	idx := make([]int, len(words))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(words[b].Value, words[a].Value)
	})
	idx = idx[:n]
	slices.Sort(idx)

	out := make([]wordcloud.Word, n)
	for i, j := range idx {
		out[i] = words[j]
	}
	return out
}

// describe names a word source for logs and hooks.
func describe(opts Options) string {
	switch {
	case len(opts.Words) > 0:
		return "inline words"
	case opts.Text != "":
		return "inline text"
	default:
		return strings.TrimSpace(opts.Input)
	}
}
