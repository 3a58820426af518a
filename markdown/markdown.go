// Package markdown converts a constrained markdown dialect into an ordered
// block sequence. Supported syntax: #–#### headings, **bold** (kept inline;
// all other inline styling is stripped, links reduce to their label), nested
// "- " bullets, "- [x]" task checkboxes, pipe tables, "---" dividers,
// signature prefixes (**Signature:** / **Printed Name:** / **Date:**) and an
// explicit <!-- pagebreak --> marker.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/docsmith/docgen/layout"
)

// PageBreakMarker forces a new page wherever it appears on its own line.
const PageBreakMarker = "<!-- pagebreak -->"

// signature prefixes and the field kind each one carries.
var signatureKinds = map[string]layout.FieldKind{
	"Signature:":    layout.FieldText,
	"Printed Name:": layout.FieldNone,
	"Date:":         layout.FieldDate,
}

// Parse materializes the full block list before rendering begins. Malformed
// input never fails: unknown constructs degrade to plain paragraphs and
// ragged table rows are padded or truncated to the header width.
func Parse(source string) []layout.Block {
	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.TaskList))
	src := []byte(source)
	root := md.Parser().Parse(text.NewReader(src))

	var blocks []layout.Block
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		blocks = append(blocks, convertNode(child, src, 0)...)
	}
	return blocks
}

func convertNode(node ast.Node, src []byte, depth int) []layout.Block {
	switch n := node.(type) {
	case *ast.Heading:
		level := n.Level
		if level > 4 {
			level = 4
		}
		return []layout.Block{layout.Heading{Level: level, Text: plainText(n, src)}}
	case *ast.Paragraph:
		return convertParagraph(n, src)
	case *ast.ThematicBreak:
		return []layout.Block{layout.Divider{}}
	case *ast.List:
		return convertList(n, src, depth)
	case *ast.HTMLBlock:
		if isPageBreak(rawLines(n, src)) {
			return []layout.Block{layout.ManualPageBreak{}}
		}
		return nil
	case *east.Table:
		return convertTable(n, src)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		// code blocks degrade to plain paragraphs in this dialect
		return []layout.Block{layout.Text(rawLines(node, src))}
	case *ast.Blockquote:
		var out []layout.Block
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			out = append(out, convertNode(child, src, depth)...)
		}
		return out
	default:
		return nil
	}
}

func convertParagraph(n *ast.Paragraph, src []byte) []layout.Block {
	spans := inlineSpans(n, src)
	if len(spans) == 0 {
		return nil
	}
	if sig, ok := signatureBlock(spans); ok {
		return []layout.Block{sig}
	}
	return []layout.Block{layout.Paragraph{Spans: spans}}
}

// signatureBlock recognizes a bold signature prefix at the start of a
// paragraph and converts the whole paragraph into a SignatureLine.
func signatureBlock(spans []layout.Span) (layout.Block, bool) {
	if !spans[0].Bold {
		return nil, false
	}
	label := strings.TrimSpace(spans[0].Text)
	kind, ok := signatureKinds[label]
	if !ok {
		return nil, false
	}
	return layout.SignatureLine{Label: label, Kind: kind}, true
}

func convertList(n *ast.List, src []byte, depth int) []layout.Block {
	var blocks []layout.Block
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.List:
				blocks = append(blocks, convertList(c, src, depth+1)...)
			default:
				spans, checkbox, checked := itemSpans(c, src)
				if checkbox {
					blocks = append(blocks, layout.SignatureLine{
						Label:   joinSpans(spans),
						Kind:    layout.FieldCheckbox,
						Checked: checked,
					})
				} else if len(spans) > 0 {
					blocks = append(blocks, layout.BulletItem{Spans: spans, Depth: depth})
				}
			}
		}
	}
	return blocks
}

// itemSpans extracts the inline content of a list item body, detecting a
// leading task-list checkbox.
func itemSpans(node ast.Node, src []byte) (spans []layout.Span, checkbox, checked bool) {
	if first := node.FirstChild(); first != nil {
		if cb, ok := first.(*east.TaskCheckBox); ok {
			checkbox = true
			checked = cb.IsChecked
		}
	}
	return inlineSpans(node, src), checkbox, checked
}

func convertTable(n *east.Table, src []byte) []layout.Block {
	var header []string
	var aligns []layout.Align
	var rows [][]string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			header, aligns = tableCells(row, src)
		case *east.TableRow:
			cells, _ := tableCells(row, src)
			rows = append(rows, cells)
		}
	}
	if len(header) == 0 && len(rows) == 0 {
		return nil
	}
	// ragged rows tolerate: pad/truncate to the header's column count
	if len(header) > 0 {
		for i, row := range rows {
			if len(row) != len(header) {
				fixed := make([]string, len(header))
				copy(fixed, row)
				rows[i] = fixed
			}
		}
	}
	return []layout.Block{layout.Table{Header: header, Rows: rows, Aligns: aligns}}
}

func tableCells(row ast.Node, src []byte) ([]string, []layout.Align) {
	var cells []string
	var aligns []layout.Align
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		tc, ok := cell.(*east.TableCell)
		if !ok {
			continue
		}
		cells = append(cells, joinSpans(inlineSpans(tc, src)))
		switch tc.Alignment {
		case east.AlignCenter:
			aligns = append(aligns, layout.AlignCenter)
		case east.AlignRight:
			aligns = append(aligns, layout.AlignRight)
		default:
			aligns = append(aligns, layout.AlignLeft)
		}
	}
	return cells, aligns
}

// inlineSpans flattens inline children into styled spans: strong emphasis is
// kept bold, everything else is reduced to plain text.
func inlineSpans(node ast.Node, src []byte) []layout.Span {
	var spans []layout.Span
	appendText := func(s string, bold bool) {
		if s == "" {
			return
		}
		if len(spans) > 0 && spans[len(spans)-1].Bold == bold {
			spans[len(spans)-1].Text += s
			return
		}
		spans = append(spans, layout.Span{Text: s, Bold: bold})
	}

	var walk func(n ast.Node, bold bool)
	walk = func(n ast.Node, bold bool) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.Text:
				appendText(string(c.Segment.Value(src)), bold)
				if c.SoftLineBreak() || c.HardLineBreak() {
					appendText(" ", bold)
				}
			case *ast.Emphasis:
				walk(c, bold || c.Level >= 2)
			case *ast.CodeSpan, *ast.Link:
				walk(c, bold)
			case *ast.AutoLink:
				appendText(string(c.URL(src)), bold)
			case *ast.String:
				appendText(string(c.Value), bold)
			case *east.TaskCheckBox:
				// consumed by itemSpans
			default:
				walk(c, bold)
			}
		}
	}
	walk(node, false)

	// trim outer whitespace without losing inner span boundaries
	for len(spans) > 0 {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " ")
		if spans[0].Text != "" {
			break
		}
		spans = spans[1:]
	}
	for len(spans) > 0 {
		last := len(spans) - 1
		spans[last].Text = strings.TrimRight(spans[last].Text, " ")
		if spans[last].Text != "" {
			break
		}
		spans = spans[:last]
	}
	return spans
}

// plainText reduces a node's inline content to an unstyled string.
func plainText(n ast.Node, src []byte) string {
	return joinSpans(inlineSpans(n, src))
}

func joinSpans(spans []layout.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return strings.TrimSpace(sb.String())
}

func rawLines(node ast.Node, src []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimSpace(sb.String())
}

func isPageBreak(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "pagebreak")
}
