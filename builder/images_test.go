package builder

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/docsmith/docgen/doc"
)

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestLoadImagePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	src.Set(1, 0, color.RGBA{G: 255, A: 255})
	src.Set(0, 1, color.RGBA{B: 255, A: 255})
	// fully transparent pixel must flatten to white
	src.Set(1, 1, color.RGBA{})

	img, err := LoadImage(pngBytes(t, src))
	if err != nil {
		t.Fatalf("load png: %v", err)
	}
	if img.Format != doc.ImagePNG || img.Width != 2 || img.Height != 2 || img.Components != 3 {
		t.Fatalf("unexpected image %+v", img)
	}
	if len(img.Data) != 2*2*3 {
		t.Fatalf("expected raw RGB, got %d bytes", len(img.Data))
	}
	if img.Data[0] != 0xff || img.Data[1] != 0 {
		t.Fatalf("first pixel should be red, got % x", img.Data[:3])
	}
	last := img.Data[9:12]
	if last[0] != 0xff || last[1] != 0xff || last[2] != 0xff {
		t.Fatalf("transparent pixel must flatten to white, got % x", last)
	}
}

func TestLoadImageJPEGPassthrough(t *testing.T) {
	var buf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	data := buf.Bytes()

	img, err := LoadImage(data)
	if err != nil {
		t.Fatalf("load jpeg: %v", err)
	}
	if img.Format != doc.ImageJPEG || img.Width != 3 || img.Height != 2 {
		t.Fatalf("unexpected image %+v", img)
	}
	if !bytes.Equal(img.Data, data) {
		t.Fatalf("jpeg bytes must pass through untouched")
	}
}

func TestLoadImageGrayJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	img, err := LoadImage(buf.Bytes())
	if err != nil {
		t.Fatalf("load gray jpeg: %v", err)
	}
	if img.Components != 1 {
		t.Fatalf("gray jpeg must report 1 component, got %d", img.Components)
	}
}

func TestLoadImageRejectsGarbage(t *testing.T) {
	if _, err := LoadImage([]byte("not an image")); err == nil {
		t.Fatalf("garbage bytes must be rejected")
	}
}
