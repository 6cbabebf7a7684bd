package fonts

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultFacesParse(t *testing.T) {
	r, err := Regular()
	if err != nil || r == nil {
		t.Fatalf("Regular() = %v, %v", r, err)
	}
	b, err := Bold()
	if err != nil || b == nil {
		t.Fatalf("Bold() = %v, %v", b, err)
	}
	if r == b {
		t.Error("Regular and Bold should be distinct faces")
	}

	again, _ := Regular()
	if again != r {
		t.Error("Regular() should return the cached face")
	}
}

func TestBase64RoundTrip(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(RegularBase64())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data) != len(RegularTTF()) {
		t.Errorf("decoded %d bytes, want %d", len(data), len(RegularTTF()))
	}
	if RegularBase64() == BoldBase64() {
		t.Error("regular and bold encodings should differ")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "face.ttf")
	if err := os.WriteFile(path, BoldTTF(), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(data) != len(BoldTTF()) {
		t.Errorf("Load() = %d bytes, want %d", len(data), len(BoldTTF()))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestLoadUnknownName(t *testing.T) {
	if _, err := Load("no-such-face-7f3a91.ttf"); err == nil {
		t.Error("Load() of an unknown font name should fail")
	}
}
