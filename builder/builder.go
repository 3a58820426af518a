// Package builder provides a fluent API for assembling the document graph:
// pages, draw operations, images and interactive form fields. It owns content
// stream encoding; the layout package decides where things go.
package builder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docsmith/docgen/doc"
	"github.com/docsmith/docgen/fonts"
	"github.com/docsmith/docgen/geom"
	"github.com/docsmith/docgen/pdfobj"
)

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

var (
	Black     = Color{}
	White     = Color{R: 1, G: 1, B: 1}
	LightGray = Color{R: 0.9, G: 0.9, B: 0.9}
)

// TextOptions configures text drawing.
type TextOptions struct {
	Font     string // base font name, e.g. "Helvetica-Bold"; empty = default
	FontSize float64
	Color    Color
}

// LineOptions configures line drawing.
type LineOptions struct {
	StrokeColor Color
	LineWidth   float64
	DashPattern []float64
}

// RectOptions configures rectangle drawing; defaults to stroke when neither
// fill nor stroke is requested.
type RectOptions struct {
	StrokeColor Color
	FillColor   Color
	LineWidth   float64
	Fill        bool
	Stroke      bool
}

// PDFBuilder accumulates a document.
type PDFBuilder interface {
	NewPage(width, height float64) PageBuilder
	SetKind(kind doc.Kind) PDFBuilder
	SetInfo(info doc.Info) PDFBuilder
	// RegisterFont makes a font addressable by its BaseFont name in
	// TextOptions. Standard Helvetica/Courier variants resolve lazily and do
	// not need registration.
	RegisterFont(f *fonts.Font) PDFBuilder
	// RegisterImage adds an image resource and returns its resource name.
	RegisterImage(img *doc.Image) string
	// MeasureText returns the width of text in points for the named font.
	MeasureText(text string, size float64, fontName string) float64
	Build() (*doc.Document, error)
}

// PageBuilder draws onto a single page. Finish freezes the page.
type PageBuilder interface {
	DrawText(text string, x, y float64, opts TextOptions) PageBuilder
	DrawLine(x1, y1, x2, y2 float64, opts LineOptions) PageBuilder
	DrawRectangle(x, y, width, height float64, opts RectOptions) PageBuilder
	DrawImage(resourceName string, x, y, width, height float64) PageBuilder
	AddTextField(rect geom.Rect, value string, bordered bool) PageBuilder
	AddCheckbox(rect geom.Rect, checked bool) PageBuilder
	Page() *doc.Page
	Finish() PDFBuilder
}

const defaultBaseFont = "Helvetica"

type builderImpl struct {
	kind   doc.Kind
	info   doc.Info
	pages  []*doc.Page
	images map[string]*doc.Image

	fontsByBase map[string]*fonts.Font // BaseFont -> font
	resByBase   map[string]string      // BaseFont -> resource name (F1...)
	fontCount   int
	imageCount  int
	fieldCount  int
}

// New constructs an empty PDFBuilder.
func New() PDFBuilder {
	return &builderImpl{
		fontsByBase: make(map[string]*fonts.Font),
		resByBase:   make(map[string]string),
		images:      make(map[string]*doc.Image),
	}
}

func (b *builderImpl) NewPage(w, h float64) PageBuilder {
	p := &doc.Page{Width: w, Height: h}
	b.pages = append(b.pages, p)
	return &pageBuilderImpl{parent: b, page: p}
}

func (b *builderImpl) SetKind(kind doc.Kind) PDFBuilder {
	b.kind = kind
	return b
}

func (b *builderImpl) SetInfo(info doc.Info) PDFBuilder {
	b.info = info
	return b
}

func (b *builderImpl) RegisterFont(f *fonts.Font) PDFBuilder {
	if f != nil {
		b.ensureFont(f)
	}
	return b
}

func (b *builderImpl) RegisterImage(img *doc.Image) string {
	b.imageCount++
	name := fmt.Sprintf("Im%d", b.imageCount)
	b.images[name] = img
	return name
}

func (b *builderImpl) MeasureText(text string, size float64, fontName string) float64 {
	f, _ := b.fontForName(fontName)
	return f.TextWidth(text, size)
}

func (b *builderImpl) Build() (*doc.Document, error) {
	if len(b.pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}
	fontRes := make(map[string]*fonts.Font, len(b.fontsByBase))
	for base, res := range b.resByBase {
		fontRes[res] = b.fontsByBase[base]
	}
	return &doc.Document{
		Kind:   b.kind,
		Info:   b.info,
		Pages:  b.pages,
		Fonts:  fontRes,
		Images: b.images,
	}, nil
}

// fontForName resolves a base font name to a font and its resource name.
// Unknown names fall back to Helvetica, matching viewer behavior for the
// standard set.
func (b *builderImpl) fontForName(name string) (*fonts.Font, string) {
	if name == "" {
		name = defaultBaseFont
	}
	if f, ok := b.fontsByBase[name]; ok {
		return f, b.resByBase[name]
	}
	var f *fonts.Font
	switch name {
	case "Helvetica":
		f = fonts.Helvetica()
	case "Helvetica-Bold":
		f = fonts.HelveticaBold()
	case "Helvetica-Oblique":
		f = fonts.HelveticaOblique()
	case "Helvetica-BoldOblique":
		f = fonts.HelveticaBoldOblique()
	case "Courier":
		f = fonts.Courier()
	case "Courier-Bold":
		f = fonts.CourierBold()
	default:
		return b.fontForName(defaultBaseFont)
	}
	return f, b.ensureFont(f)
}

func (b *builderImpl) ensureFont(f *fonts.Font) string {
	if res, ok := b.resByBase[f.BaseFont]; ok {
		return res
	}
	b.fontCount++
	res := fmt.Sprintf("F%d", b.fontCount)
	b.fontsByBase[f.BaseFont] = f
	b.resByBase[f.BaseFont] = res
	return res
}

func (b *builderImpl) nextFieldName(prefix string) string {
	b.fieldCount++
	return fmt.Sprintf("%s_%d", prefix, b.fieldCount)
}

type pageBuilderImpl struct {
	parent *builderImpl
	page   *doc.Page
}

func (p *pageBuilderImpl) DrawText(text string, x, y float64, opts TextOptions) PageBuilder {
	_, res := p.parent.fontForName(opts.Font)
	size := opts.FontSize
	if size <= 0 {
		size = 12
	}
	p.page.UseFont(res)

	var sb strings.Builder
	sb.WriteString("q\nBT\n")
	fmt.Fprintf(&sb, "/%s %s Tf\n", res, fmtNum(size))
	fmt.Fprintf(&sb, "%s %s %s rg\n", fmtNum(opts.Color.R), fmtNum(opts.Color.G), fmtNum(opts.Color.B))
	fmt.Fprintf(&sb, "1 0 0 1 %s %s Tm\n", fmtNum(x), fmtNum(y))
	sb.WriteString("(")
	sb.WriteString(escapeText(text))
	sb.WriteString(") Tj\nET\nQ\n")
	p.page.Append([]byte(sb.String()))
	return p
}

func (p *pageBuilderImpl) DrawLine(x1, y1, x2, y2 float64, opts LineOptions) PageBuilder {
	width := opts.LineWidth
	if width <= 0 {
		width = 1
	}
	var sb strings.Builder
	sb.WriteString("q\n")
	fmt.Fprintf(&sb, "%s %s %s RG\n", fmtNum(opts.StrokeColor.R), fmtNum(opts.StrokeColor.G), fmtNum(opts.StrokeColor.B))
	fmt.Fprintf(&sb, "%s w\n", fmtNum(width))
	if len(opts.DashPattern) > 0 {
		sb.WriteString("[")
		for i, v := range opts.DashPattern {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmtNum(v))
		}
		sb.WriteString("] 0 d\n")
	}
	fmt.Fprintf(&sb, "%s %s m\n%s %s l\nS\nQ\n", fmtNum(x1), fmtNum(y1), fmtNum(x2), fmtNum(y2))
	p.page.Append([]byte(sb.String()))
	return p
}

func (p *pageBuilderImpl) DrawRectangle(x, y, width, height float64, opts RectOptions) PageBuilder {
	po := opts
	if !po.Fill && !po.Stroke {
		po.Stroke = true
	}
	var sb strings.Builder
	sb.WriteString("q\n")
	if po.Fill {
		fmt.Fprintf(&sb, "%s %s %s rg\n", fmtNum(po.FillColor.R), fmtNum(po.FillColor.G), fmtNum(po.FillColor.B))
	}
	if po.Stroke {
		fmt.Fprintf(&sb, "%s %s %s RG\n", fmtNum(po.StrokeColor.R), fmtNum(po.StrokeColor.G), fmtNum(po.StrokeColor.B))
		lw := po.LineWidth
		if lw <= 0 {
			lw = 0.5
		}
		fmt.Fprintf(&sb, "%s w\n", fmtNum(lw))
	}
	fmt.Fprintf(&sb, "%s %s %s %s re\n", fmtNum(x), fmtNum(y), fmtNum(width), fmtNum(height))
	sb.WriteString(paintOperator(po.Fill, po.Stroke))
	sb.WriteString("\nQ\n")
	p.page.Append([]byte(sb.String()))
	return p
}

func (p *pageBuilderImpl) DrawImage(resourceName string, x, y, width, height float64) PageBuilder {
	if resourceName == "" {
		return p
	}
	p.page.UseImage(resourceName)
	var sb strings.Builder
	fmt.Fprintf(&sb, "q\n%s 0 0 %s %s %s cm\n/%s Do\nQ\n",
		fmtNum(width), fmtNum(height), fmtNum(x), fmtNum(y), resourceName)
	p.page.Append([]byte(sb.String()))
	return p
}

func (p *pageBuilderImpl) AddTextField(rect geom.Rect, value string, bordered bool) PageBuilder {
	p.page.Fields = append(p.page.Fields, &doc.FormField{
		Name:     p.parent.nextFieldName("text"),
		Kind:     doc.FieldText,
		Rect:     rect,
		Value:    value,
		Bordered: bordered,
	})
	return p
}

func (p *pageBuilderImpl) AddCheckbox(rect geom.Rect, checked bool) PageBuilder {
	p.page.Fields = append(p.page.Fields, &doc.FormField{
		Name:    p.parent.nextFieldName("check"),
		Kind:    doc.FieldCheckbox,
		Rect:    rect,
		Checked: checked,
	})
	return p
}

func (p *pageBuilderImpl) Page() *doc.Page { return p.page }

func (p *pageBuilderImpl) Finish() PDFBuilder {
	p.page.Close()
	return p.parent
}

func fmtNum(f float64) string { return pdfobj.FormatFloat(f) }

// escapeText escapes a string for a PDF literal string under WinAnsi
// single-byte encoding; unmappable runes become '?'.
func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		c, ok := fonts.WinAnsiByte(r)
		if !ok {
			c = '?'
		}
		switch c {
		case '(', ')', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n', '\r':
			sb.WriteByte(' ')
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func paintOperator(fill, stroke bool) string {
	switch {
	case fill && stroke:
		return "B"
	case fill:
		return "f"
	default:
		return "S"
	}
}

// SortedFontResources lists registered resource names in stable order, for
// tests that inspect the built document.
func SortedFontResources(d *doc.Document) []string {
	names := make([]string, 0, len(d.Fonts))
	for n := range d.Fonts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
