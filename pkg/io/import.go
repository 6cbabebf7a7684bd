package io

import (
	"bufio"
	"bytes"
	"cmp"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// Format names a word list encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTOML Format = "toml"
	FormatText Format = "text"
)

// Formats lists the supported input formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatTOML, FormatText}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats, f) {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown word format %q (want json, csv, toml or text)", s)
}

// DetectFormat returns the format implied by a file extension. Unknown
// extensions are read as plain text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	case ".toml":
		return FormatTOML
	}
	return FormatText
}

// TextOptions controls word extraction from plain text.
type TextOptions struct {
	// MinLength drops tokens shorter than this many runes.
	MinLength int `json:"min_length,omitempty" toml:"min_length"`
	// MaxWords keeps only the most frequent words. Zero keeps all.
	MaxWords int `json:"max_words,omitempty" toml:"max_words"`
	// Stopwords removes common English function words.
	Stopwords bool `json:"stopwords,omitempty" toml:"stopwords"`
}

// ReadWords decodes r in the given format. opts only applies to FormatText.
func ReadWords(r io.Reader, format Format, opts TextOptions) ([]wordcloud.Word, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCSV:
		return ReadCSV(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatText:
		return ReadText(r, opts)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown word format %q", format)
}

// ImportWords reads the word list at path. An empty format is detected from
// the extension.
func ImportWords(path string, format Format, opts TextOptions) ([]wordcloud.Word, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if format == "" {
		format = DetectFormat(path)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "word list %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	words, err := ReadWords(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

type wordList struct {
	Words []wordcloud.Word `json:"words" toml:"words"`
}

// ReadJSON decodes a bare array of words or an object with a "words" array.
func ReadJSON(r io.Reader) ([]wordcloud.Word, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	var words []wordcloud.Word
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &words)
	} else {
		var list wordList
		err = json.Unmarshal(data, &list)
		words = list.Words
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return checkNames(words)
}

// ReadTOML decodes a [[words]] array of tables.
func ReadTOML(r io.Reader) ([]wordcloud.Word, error) {
	var list wordList
	if _, err := toml.NewDecoder(r).Decode(&list); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	return checkNames(list.Words)
}

// checkNames rejects word lists with blank, overlong or multi-line names.
// Plain text is tokenized first and is not checked.
func checkNames(words []wordcloud.Word) ([]wordcloud.Word, error) {
	for i, w := range words {
		if err := errors.ValidateWordName(w.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "word %d", i)
		}
	}
	return words, nil
}

// ReadCSV decodes name[,value] rows. Repeated names are summed in order of
// first appearance.
func ReadCSV(r io.Reader) ([]wordcloud.Word, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var c counter
	for rec := 1; ; rec++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode csv")
		}
		name := strings.TrimSpace(fields[0])
		if name == "" || (rec == 1 && strings.EqualFold(name, "name")) {
			continue
		}
		value := 1.0
		if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
			if err != nil {
				if rec == 1 {
					continue // header
				}
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "csv record %d: value %q", rec, fields[1])
			}
			value = v
		}
		c.add(name, value)
	}
	return checkNames(c.words())
}

// ReadText counts the tokens of a plain text document. The result is
// ordered by descending count, ties alphabetically.
func ReadText(r io.Reader, opts TextOptions) ([]wordcloud.Word, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	var c counter
	for sc.Scan() {
		for _, tok := range tokens(sc.Text()) {
			if utf8.RuneCountInString(tok) < opts.MinLength {
				continue
			}
			if opts.Stopwords && isStopword(tok) {
				continue
			}
			c.add(tok, 1)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	words := c.words()
	slices.SortStableFunc(words, func(a, b wordcloud.Word) int {
		if n := cmp.Compare(b.Value, a.Value); n != 0 {
			return n
		}
		return strings.Compare(a.Name, b.Name)
	})
	if opts.MaxWords > 0 && len(words) > opts.MaxWords {
		words = words[:opts.MaxWords]
	}
	return words, nil
}

// tokens splits a whitespace-delimited field into lower-cased words.
// Apostrophes are kept only between letters ("don't", not "'quoted'").
func tokens(field string) []string {
	var out []string
	var b strings.Builder
	runes := []rune(field)
	flush := func() {
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case (r == '\'' || r == '’') && b.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			b.WriteRune('\'')
		default:
			flush()
		}
	}
	flush()
	return out
}

// counter sums values per name, remembering first-appearance order.
type counter struct {
	index map[string]int
	list  []wordcloud.Word
}

func (c *counter) add(name string, v float64) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[name]; ok {
		c.list[i].Value += v
		return
	}
	c.index[name] = len(c.list)
	c.list = append(c.list, wordcloud.Word{Name: name, Value: v})
}

func (c *counter) words() []wordcloud.Word {
	return c.list
}
