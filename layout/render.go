package layout

import (
	"github.com/docsmith/docgen/builder"
	"github.com/docsmith/docgen/fonts"
)

// Style bundles the fonts and spacing the block renderer draws with.
type Style struct {
	Body         *fonts.Font
	Bold         *fonts.Font
	BaseFontSize float64
	HeadingSizes [4]float64
	LineSpacing  float64 // multiplier on font size
	IndentUnit   float64 // per bullet nesting depth
	DividerGap   float64
	CellPadding  float64
	ParagraphGap float64
}

// DefaultStyle returns the stock letterhead style.
func DefaultStyle() Style {
	return Style{
		Body:         fonts.Helvetica(),
		Bold:         fonts.HelveticaBold(),
		BaseFontSize: 10,
		HeadingSizes: [4]float64{18, 14, 12, 11},
		LineSpacing:  1.4,
		IndentUnit:   16,
		DividerGap:   12,
		CellPadding:  4,
		ParagraphGap: 6,
	}
}

func (s Style) lineHeight(size float64) float64 { return size * s.LineSpacing }

// Renderer turns blocks into draw operations against the flow, requesting
// space as it goes. Blocks render in exactly the order received.
type Renderer struct {
	flow  *Flow
	style Style
}

// NewRenderer binds a renderer to a flow.
func NewRenderer(flow *Flow, style Style) *Renderer {
	return &Renderer{flow: flow, style: style}
}

// Render draws every block in order. On error the partially built document
// must be discarded by the caller; nothing is rolled back here.
func (r *Renderer) Render(blocks []Block) error {
	for _, b := range blocks {
		if err := r.renderBlock(b); err != nil {
			return err
		}
	}
	r.flow.Finish()
	return nil
}

func (r *Renderer) renderBlock(b Block) error {
	switch blk := b.(type) {
	case Heading:
		r.renderHeading(blk)
	case Paragraph:
		r.renderSpans(blk.Spans, r.flow.Left(), r.flow.ContentWidth(), r.style.BaseFontSize)
		r.flow.Advance(r.style.ParagraphGap)
	case BulletItem:
		r.renderBullet(blk)
	case Table:
		return r.renderTable(blk)
	case Divider:
		r.renderDivider()
	case SignatureLine:
		r.renderSignatureLine(blk)
	case ManualPageBreak:
		r.flow.ForcePageBreak()
	case Spacer:
		r.flow.EnsureSpace(blk.Height)
		r.flow.Advance(blk.Height)
	case ImageBlock:
		return r.renderImage(blk)
	}
	return nil
}

func (r *Renderer) renderHeading(h Heading) {
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > 4 {
		level = 4
	}
	size := r.style.HeadingSizes[level-1]
	lh := r.style.lineHeight(size)
	width := r.flow.ContentWidth()
	for line := range WrapLines(h.Text, r.style.Bold, size, width) {
		r.flow.EnsureSpace(lh)
		r.flow.Page().DrawText(line, r.flow.Left(), r.flow.Y()-size, builder.TextOptions{
			Font:     r.style.Bold.BaseFont,
			FontSize: size,
		})
		r.flow.Advance(lh)
	}
	r.flow.Advance(r.style.ParagraphGap)
}

// renderSpans wraps styled spans into lines and draws them left-aligned
// starting at x. Used by paragraphs and bullet bodies.
func (r *Renderer) renderSpans(spans []Span, x, maxWidth, size float64) {
	lh := r.style.lineHeight(size)
	spaceW := r.style.Body.TextWidth(" ", size)
	for _, ln := range wrapSpans(spans, r.style.Body, r.style.Bold, size, maxWidth) {
		r.flow.EnsureSpace(lh)
		curX := x
		for _, w := range ln.words {
			font := r.style.Body
			if w.bold {
				font = r.style.Bold
			}
			r.flow.Page().DrawText(w.text, curX, r.flow.Y()-size, builder.TextOptions{
				Font:     font.BaseFont,
				FontSize: size,
			})
			curX += w.width + spaceW
		}
		r.flow.Advance(lh)
	}
}

func (r *Renderer) renderBullet(b BulletItem) {
	size := r.style.BaseFontSize
	lh := r.style.lineHeight(size)
	indent := r.flow.Left() + float64(b.Depth)*r.style.IndentUnit
	bulletGap := r.style.IndentUnit * 0.75

	r.flow.EnsureSpace(lh)
	r.flow.Page().DrawText("•", indent, r.flow.Y()-size, builder.TextOptions{
		Font:     r.style.Body.BaseFont,
		FontSize: size,
	})
	bodyX := indent + bulletGap
	r.renderSpans(b.Spans, bodyX, r.flow.Right()-bodyX, size)
}

func (r *Renderer) renderDivider() {
	gap := r.style.DividerGap
	r.flow.EnsureSpace(gap)
	y := r.flow.Y() - gap/2
	r.flow.Page().DrawLine(r.flow.Left(), y, r.flow.Right(), y, builder.LineOptions{
		StrokeColor: builder.Color{R: 0.6, G: 0.6, B: 0.6},
		LineWidth:   0.75,
	})
	r.flow.Advance(gap)
}

func (r *Renderer) renderImage(b ImageBlock) error {
	if b.Resource == "" {
		return nil
	}
	if !r.flow.Fits(b.Height) {
		return &OversizedBlockError{RequiredHeight: b.Height, AvailableHeight: r.flow.ContentHeight()}
	}
	r.flow.EnsureSpace(b.Height)
	r.flow.Page().DrawImage(b.Resource, r.flow.Left(), r.flow.Y()-b.Height, b.Width, b.Height)
	r.flow.Advance(b.Height)
	return nil
}
