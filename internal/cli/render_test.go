package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/wordcloud/sink"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "words.csv", "words"},
		{"", "dir/words.layout.json", "dir/words"},
		{"out/cloud.svg", "words.csv", "out/cloud"},
		{"out/cloud", "words.csv", "out/cloud"},
		{"cloud.pdf", "words.csv", "cloud.pdf"},
		{"", "", appName},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPaths(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		output  string
		want    map[string]string
	}{
		{"single default", []string{"svg"}, "", map[string]string{"svg": "words.svg"}},
		{"single explicit", []string{"png"}, "art/cloud.image", map[string]string{"png": "art/cloud.image"}},
		{"multiple", []string{"svg", "png"}, "art/cloud.svg", map[string]string{"svg": "art/cloud.svg", "png": "art/cloud.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPaths(tt.formats, "words.csv", tt.output); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("artifactPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsLayoutFile(t *testing.T) {
	tests := map[string]bool{
		"words.layout.json": true,
		"WORDS.LAYOUT.JSON": true,
		"words.json":        false,
		"layout.json":       false,
		"":                  false,
	}
	for path, want := range tests {
		if got := isLayoutFile(path); got != want {
			t.Errorf("isLayoutFile(%q) = %v, want %v", path, got, want)
		}
	}
}

// writeWords creates a small CSV word list in a temp dir.
func writeWords(t *testing.T) string {
	t.Helper()
	t.Setenv(cacheURLEnv, "")
	path := filepath.Join(t.TempDir(), "words.csv")
	data := "name,value\ngopher,10\nchannel,7\nslice,5\nmap,3\nrune,2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	input := writeWords(t)
	out, err := runCLI(t, "render", input, "--no-cache", "--width", "300", "--height", "200", "-f", "svg,png,json")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}

	base := strings.TrimSuffix(input, ".csv")
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) || !bytes.Contains(svg, []byte(">gopher<")) {
		t.Errorf("svg output looks wrong: %.80s", svg)
	}
	png, err := os.ReadFile(base + ".png")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png output has no PNG signature")
	}
	doc, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	cl, err := sink.ReadJSON(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(cl.Words) != 5 || cl.Canvas.Width != 300 {
		t.Errorf("layout document = %d words on %d px, want 5 on 300", len(cl.Words), cl.Canvas.Width)
	}
	if !strings.Contains(out, "Rendered 5 words") {
		t.Errorf("output %q missing summary", out)
	}
}

func TestLayoutThenRender(t *testing.T) {
	input := writeWords(t)
	dir := filepath.Dir(input)

	out, err := runCLI(t, "layout", input, "--no-cache", "--width", "240", "--height", "160", "--table")
	if err != nil {
		t.Fatalf("layout: %v\n%s", err, out)
	}
	layoutPath := filepath.Join(dir, "words.layout.json")
	if _, err := os.Stat(layoutPath); err != nil {
		t.Fatalf("layout document not written: %v", err)
	}
	if !strings.Contains(out, "gopher") || !strings.Contains(out, "Position") {
		t.Errorf("--table output missing word table:\n%s", out)
	}

	cloudPath := filepath.Join(dir, "out", "cloud.json")
	out, err = runCLI(t, "render", layoutPath, "--no-cache", "-f", "json", "-o", cloudPath)
	if err != nil {
		t.Fatalf("render layout: %v\n%s", err, out)
	}

	saved, _ := os.ReadFile(layoutPath)
	rendered, err := os.ReadFile(cloudPath)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := sink.ReadJSON(saved)
	b, err := sink.ReadJSON(rendered)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("rendering a saved layout changed it")
	}
}

func TestRenderConfigLayering(t *testing.T) {
	input := writeWords(t)
	dir := filepath.Dir(input)
	config := filepath.Join(dir, "cloud.toml")
	if err := os.WriteFile(config, []byte("width = 320\nheight = 180\nformats = [\"svg\", \"json\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "render", input, "--no-cache", "--config", config, "--height", "220", "-f", "json")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(dir, "words.svg")); err == nil {
		t.Error("flag -f json should override the formats in the config file")
	}
	doc, err := os.ReadFile(filepath.Join(dir, "words.json"))
	if err != nil {
		t.Fatal(err)
	}
	cl, err := sink.ReadJSON(doc)
	if err != nil {
		t.Fatal(err)
	}
	if cl.Canvas.Width != 320 || cl.Canvas.Height != 220 {
		t.Errorf("canvas = %dx%d, want 320 from the file and 220 from the flag", cl.Canvas.Width, cl.Canvas.Height)
	}
}

func TestRenderErrors(t *testing.T) {
	input := writeWords(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no words", []string{"render", "--no-cache"}},
		{"bad format", []string{"render", input, "--no-cache", "-f", "gif"}},
		{"stdout needs one format", []string{"render", input, "--no-cache", "-f", "svg,png", "-o", "-"}},
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "nope.csv"), "--no-cache"}},
		{"missing config", []string{"render", input, "--no-cache", "--config", "nope.toml"}},
		{"bad palette", []string{"render", input, "--no-cache", "--palette", "plaid"}},
		{"layout without file", []string{"render", "--from-layout", "--no-cache"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Errorf("%v: want error", tt.args)
			}
		})
	}
}
