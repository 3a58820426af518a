// Package writer serializes a completed doc.Document into PDF bytes: page
// tree, standard and embedded fonts, image XObjects, AcroForm widgets, xref
// table and trailer. Output is deterministic for identical input.
package writer

import (
	"context"
	"io"

	"github.com/docsmith/docgen/doc"
)

// PDFVersion selects the header version written to the file.
type PDFVersion string

const (
	PDF17 PDFVersion = "1.7"
)

// Config controls serialization.
type Config struct {
	Version PDFVersion
	// CompressFonts flate-compresses embedded font programs. Content streams
	// stay uncompressed so golden-file tests remain readable.
	CompressFonts bool
}

// Writer turns a document graph into PDF bytes.
type Writer interface {
	Write(ctx context.Context, d *doc.Document, w io.Writer, cfg Config) error
}

// New returns the default writer implementation.
func New() Writer { return &impl{} }
