package assets

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/docsmith/docgen/observability"
)

func TestLoadMissingAssetsDegrade(t *testing.T) {
	b := load(Paths{
		Logo:     "/nonexistent/logo.png",
		BodyFont: "/nonexistent/body.ttf",
	}, observability.NopLogger{})
	if b.Logo != nil || b.BodyFont != nil {
		t.Fatalf("missing assets must load as nil: %+v", b)
	}
	if len(b.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", b.Warnings)
	}
}

func TestLoadEmptyPathsSkipped(t *testing.T) {
	b := load(Paths{}, observability.NopLogger{})
	if len(b.Warnings) != 0 {
		t.Fatalf("empty paths must not warn: %v", b.Warnings)
	}
}

func TestLoadLogoFromDisk(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	b := load(Paths{Logo: path}, observability.NopLogger{})
	if b.Logo == nil {
		t.Fatalf("logo should load: %v", b.Warnings)
	}
	if b.Logo.Width != 4 || b.Logo.Height != 4 {
		t.Fatalf("logo dimensions wrong: %+v", b.Logo)
	}
}

func TestLoadCorruptFontWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b := load(Paths{BoldFont: path}, observability.NopLogger{})
	if b.BoldFont != nil {
		t.Fatalf("corrupt font must not load")
	}
	if len(b.Warnings) != 1 {
		t.Fatalf("expected a warning, got %v", b.Warnings)
	}
}
