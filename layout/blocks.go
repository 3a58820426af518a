package layout

// Block is a renderer-agnostic content instruction. Blocks are immutable
// values produced by a template assembler or the markdown parser and consumed
// in order; they know nothing about page boundaries.
type Block interface{ isBlock() }

// Span is a run of paragraph text with a single style.
type Span struct {
	Text string
	Bold bool
}

// Heading is a level 1-4 section title.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is wrapped body text.
type Paragraph struct {
	Spans []Span
}

// Text builds a single-span paragraph.
func Text(s string) Paragraph { return Paragraph{Spans: []Span{{Text: s}}} }

// BulletItem is one list entry at a nesting depth (0 = top level).
type BulletItem struct {
	Spans []Span
	Depth int
}

// Align controls horizontal cell alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Table is a header row plus body rows. ColumnWeights, when set, give
// proportional column widths; otherwise columns share the width equally.
// RepeatHeader redraws the header row on continuation pages.
type Table struct {
	Header        []string
	Rows          [][]string
	Aligns        []Align
	ColumnWeights []float64
	RepeatHeader  bool
}

// Divider is a fixed-height horizontal rule.
type Divider struct{}

// FieldKind selects what a SignatureLine places over its underline.
type FieldKind int

const (
	FieldNone FieldKind = iota
	FieldText
	FieldCheckbox
	FieldDate
)

// SignatureLine draws a label with an underline and optionally an interactive
// form field. Checked supplies the default state for checkbox fields.
type SignatureLine struct {
	Label   string
	Kind    FieldKind
	Checked bool
}

// ManualPageBreak unconditionally starts a new page.
type ManualPageBreak struct{}

// Spacer inserts vertical whitespace.
type Spacer struct {
	Height float64
}

// ImageBlock places a registered image resource at its natural position in
// the flow (used for the letterhead logo).
type ImageBlock struct {
	Resource string
	Width    float64
	Height   float64
}

func (Heading) isBlock()         {}
func (Paragraph) isBlock()       {}
func (BulletItem) isBlock()      {}
func (Table) isBlock()           {}
func (Divider) isBlock()         {}
func (SignatureLine) isBlock()   {}
func (ManualPageBreak) isBlock() {}
func (Spacer) isBlock()          {}
func (ImageBlock) isBlock()      {}
