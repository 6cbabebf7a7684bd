package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// WriteJSON encodes words as an indented JSON array that [ReadJSON] accepts.
func WriteJSON(words []wordcloud.Word, w io.Writer) error {
	if words == nil {
		words = []wordcloud.Word{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(words); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteCSV encodes words as name,value rows with a header.
func WriteCSV(words []wordcloud.Word, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "value"}); err != nil {
		return err
	}
	for _, word := range words {
		if err := cw.Write([]string{word.Name, strconv.FormatFloat(word.Value, 'g', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportWords writes words to path, choosing CSV for a .csv extension and
// JSON otherwise. Missing parent directories are created.
func ExportWords(words []wordcloud.Word, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	write := WriteJSON
	if DetectFormat(path) == FormatCSV {
		write = WriteCSV
	}
	if err := write(words, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
