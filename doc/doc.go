// Package doc holds the in-memory document graph produced by one render call
// and consumed by the writer. A Document is owned by exactly one render and
// never mutated after serialization.
package doc

import (
	"time"

	"github.com/docsmith/docgen/fonts"
	"github.com/docsmith/docgen/geom"
)

// Kind identifies the document type. It is part of every cache key.
type Kind string

const (
	KindInvoice        Kind = "invoice"
	KindProposal       Kind = "proposal"
	KindContract       Kind = "contract"
	KindIntakeSummary  Kind = "intake"
	KindMarkdownReport Kind = "markdown"
)

// Valid reports whether k is one of the closed set of document kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindInvoice, KindProposal, KindContract, KindIntakeSummary, KindMarkdownReport:
		return true
	}
	return false
}

// Info carries document metadata written to the PDF Info dictionary.
// CreationDate must be supplied by the caller so output stays deterministic.
type Info struct {
	Title        string
	Author       string
	Subject      string
	Creator      string
	CreationDate time.Time
}

// Document is the root artifact handed to the writer.
type Document struct {
	Kind  Kind
	Info  Info
	Pages []*Page

	// Fonts maps resource names (F1, F2, ...) to fonts referenced by any page.
	Fonts map[string]*fonts.Font
	// Images maps resource names (Im1, Im2, ...) to embedded images.
	Images map[string]*Image
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// FieldCount returns the total number of interactive form fields.
func (d *Document) FieldCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Fields)
	}
	return n
}

// Page is a fixed-size drawing surface. Content is the accumulated content
// stream; once the page is closed the stream is frozen.
type Page struct {
	Width  float64
	Height float64

	Content []byte
	Fields  []*FormField

	// FontRefs and ImageRefs name the resources this page actually uses.
	FontRefs  map[string]bool
	ImageRefs map[string]bool

	closed bool
}

// Append adds raw content-stream bytes. Appending to a closed page is a
// programming error and is silently ignored so a stray late draw can never
// corrupt an emitted page.
func (p *Page) Append(b []byte) {
	if p.closed {
		return
	}
	p.Content = append(p.Content, b...)
}

// Close freezes the page.
func (p *Page) Close() { p.closed = true }

// Closed reports whether the page has been frozen.
func (p *Page) Closed() bool { return p.closed }

// UseFont records that the page references the named font resource.
func (p *Page) UseFont(name string) {
	if p.FontRefs == nil {
		p.FontRefs = make(map[string]bool)
	}
	p.FontRefs[name] = true
}

// UseImage records that the page references the named image resource.
func (p *Page) UseImage(name string) {
	if p.ImageRefs == nil {
		p.ImageRefs = make(map[string]bool)
	}
	p.ImageRefs[name] = true
}

// FieldKind discriminates interactive field types.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldCheckbox
)

// FormField is an interactive placement owned by the page it sits on.
type FormField struct {
	Name     string
	Kind     FieldKind
	Rect     geom.Rect
	Value    string // text fields
	Checked  bool   // checkboxes
	Bordered bool
}

// ImageFormat selects the stream filter used at serialization time.
type ImageFormat int

const (
	ImageJPEG ImageFormat = iota // DCTDecode passthrough
	ImagePNG                     // decoded RGB, FlateDecode
)

// Image is an embedded raster image (letterhead logo).
type Image struct {
	Format     ImageFormat
	Width      int
	Height     int
	Components int // 1 = gray, 3 = RGB
	Data       []byte
}
