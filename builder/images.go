package builder

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/docsmith/docgen/doc"
)

// LoadImage decodes PNG or JPEG bytes into an embeddable image. JPEG data is
// kept as-is (DCTDecode passthrough); PNG pixels are flattened onto white and
// stored as raw RGB for FlateDecode.
func LoadImage(data []byte) (*doc.Image, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image config: %w", err)
	}
	switch format {
	case "jpeg":
		return loadJPEG(data)
	case "png":
		return loadPNG(data)
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
}

func loadJPEG(data []byte) (*doc.Image, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode jpeg: %w", err)
	}
	components := 3
	if cfg.ColorModel == color.GrayModel {
		components = 1
	}
	return &doc.Image{
		Format:     doc.ImageJPEG,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Components: components,
		Data:       data,
	}, nil
}

func loadPNG(data []byte) (*doc.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgb := make([]byte, 0, w*h*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			// composite over white; channels are 16-bit premultiplied
			rgb = append(rgb,
				flatten(r, a),
				flatten(g, a),
				flatten(b, a),
			)
		}
	}
	return &doc.Image{
		Format:     doc.ImagePNG,
		Width:      w,
		Height:     h,
		Components: 3,
		Data:       rgb,
	}, nil
}

func flatten(c, a uint32) byte {
	// premultiplied channel plus white background contribution
	v := (c + (0xffff - a)) >> 8
	if v > 0xff {
		v = 0xff
	}
	return byte(v)
}
