package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	wcio "github.com/matzehuels/wordcloud/pkg/io"
)

func TestWordsCommand(t *testing.T) {
	t.Setenv(cacheURLEnv, "")
	path := filepath.Join(t.TempDir(), "lists", "notes.json")

	out, err := runCLI(t, "words", "--no-cache", "--text", "gopher gopher gopher channel channel slice", "-o", path)
	if err != nil {
		t.Fatalf("words: %v\n%s", err, out)
	}
	words, err := wcio.ImportWords(path, "", wcio.TextOptions{})
	if err != nil {
		t.Fatal(err)
	}
	got := make(map[string]float64, len(words))
	for _, w := range words {
		got[w.Name] = w.Value
	}
	if got["gopher"] != 3 || got["channel"] != 2 || got["slice"] != 1 {
		t.Errorf("counts = %v, want gopher=3 channel=2 slice=1", got)
	}
	if !strings.Contains(out, "Extracted 3 words") {
		t.Errorf("output %q missing summary", out)
	}
}

func TestWordsCommandDefaultPath(t *testing.T) {
	input := writeWords(t)

	out, err := runCLI(t, "words", input, "--no-cache", "--max-words", "2")
	if err != nil {
		t.Fatalf("words: %v\n%s", err, out)
	}
	path := strings.TrimSuffix(input, ".csv") + wordsSuffix + ".csv"
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "name,value\ngopher,10\nchannel,7\n"
	if string(data) != want {
		t.Errorf("word list = %q, want %q", data, want)
	}
}
