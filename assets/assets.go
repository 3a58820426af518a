// Package assets loads the shared branding files (letterhead logo, optional
// brand TrueType fonts) once per process. A missing or unreadable asset is a
// warning, not an error: rendering proceeds without the logo or with the
// standard Helvetica set.
package assets

import (
	"fmt"
	"os"
	"sync"

	"github.com/docsmith/docgen/builder"
	"github.com/docsmith/docgen/doc"
	"github.com/docsmith/docgen/fonts"
	"github.com/docsmith/docgen/observability"
)

// Paths names the asset files on disk. Empty fields are simply skipped.
type Paths struct {
	Logo     string // PNG or JPEG
	BodyFont string // TTF; empty keeps Helvetica
	BoldFont string // TTF; empty keeps Helvetica-Bold
}

// Bundle holds the loaded assets. Nil fields mean the asset was absent or
// failed to load.
type Bundle struct {
	Logo     *doc.Image
	BodyFont *fonts.Font
	BoldFont *fonts.Font

	// Warnings lists assets that could not be loaded, for surfacing once at
	// startup.
	Warnings []string
}

var (
	loadOnce sync.Once
	loaded   *Bundle
)

// Load reads the assets exactly once per process; later calls return the same
// bundle regardless of paths. Failures are recorded as warnings and logged.
func Load(paths Paths, log observability.Logger) *Bundle {
	loadOnce.Do(func() {
		loaded = load(paths, log)
	})
	return loaded
}

func load(paths Paths, log observability.Logger) *Bundle {
	if log == nil {
		log = observability.NopLogger{}
	}
	b := &Bundle{}
	if paths.Logo != "" {
		img, err := loadImage(paths.Logo)
		if err != nil {
			b.warn(log, "logo", paths.Logo, err)
		} else {
			b.Logo = img
		}
	}
	if paths.BodyFont != "" {
		f, err := loadFont("BrandBody", paths.BodyFont)
		if err != nil {
			b.warn(log, "body font", paths.BodyFont, err)
		} else {
			b.BodyFont = f
		}
	}
	if paths.BoldFont != "" {
		f, err := loadFont("BrandBold", paths.BoldFont)
		if err != nil {
			b.warn(log, "bold font", paths.BoldFont, err)
		} else {
			b.BoldFont = f
		}
	}
	return b
}

func (b *Bundle) warn(log observability.Logger, what, path string, err error) {
	msg := fmt.Sprintf("%s unavailable (%s): %v", what, path, err)
	b.Warnings = append(b.Warnings, msg)
	log.Warn("asset load failed",
		observability.String("asset", what),
		observability.String("path", path),
		observability.Error("error", err))
}

func loadImage(path string) (*doc.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return builder.LoadImage(data)
}

func loadFont(name, path string) (*fonts.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fonts.LoadTrueType(name, data)
}
