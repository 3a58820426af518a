package markdown

import (
	"testing"

	"github.com/docsmith/docgen/layout"
)

func TestParseHeadingsAndParagraphs(t *testing.T) {
	blocks := Parse("# Title\n\nSome body text.\n\n## Section\n")
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %#v", len(blocks), blocks)
	}
	h, ok := blocks[0].(layout.Heading)
	if !ok || h.Level != 1 || h.Text != "Title" {
		t.Fatalf("unexpected first block %#v", blocks[0])
	}
	p, ok := blocks[1].(layout.Paragraph)
	if !ok || p.Spans[0].Text != "Some body text." {
		t.Fatalf("unexpected paragraph %#v", blocks[1])
	}
	if h2 := blocks[2].(layout.Heading); h2.Level != 2 || h2.Text != "Section" {
		t.Fatalf("unexpected second heading %#v", blocks[2])
	}
}

func TestParseDeepHeadingClamped(t *testing.T) {
	blocks := Parse("###### Tiny\n")
	if h := blocks[0].(layout.Heading); h.Level != 4 {
		t.Fatalf("level 6 heading must clamp to 4, got %d", h.Level)
	}
}

func TestParseBoldSpans(t *testing.T) {
	blocks := Parse("Payment is **due on receipt** of this invoice.\n")
	p := blocks[0].(layout.Paragraph)
	if len(p.Spans) != 3 {
		t.Fatalf("expected 3 spans, got %#v", p.Spans)
	}
	if p.Spans[0].Bold || !p.Spans[1].Bold || p.Spans[2].Bold {
		t.Fatalf("bold run misplaced: %#v", p.Spans)
	}
	if p.Spans[1].Text != "due on receipt" {
		t.Fatalf("bold text = %q", p.Spans[1].Text)
	}
}

func TestParseNestedBullets(t *testing.T) {
	blocks := Parse("- top level\n  - nested item\n- another top\n")
	if len(blocks) != 3 {
		t.Fatalf("expected 3 bullets, got %#v", blocks)
	}
	if b := blocks[0].(layout.BulletItem); b.Depth != 0 {
		t.Fatalf("first bullet depth = %d", b.Depth)
	}
	nested := blocks[1].(layout.BulletItem)
	if nested.Depth != 1 || nested.Spans[0].Text != "nested item" {
		t.Fatalf("nested bullet wrong: %#v", nested)
	}
}

func TestParseTaskCheckbox(t *testing.T) {
	blocks := Parse("- [x] I accept the terms\n- [ ] Optional add-on\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %#v", blocks)
	}
	checked := blocks[0].(layout.SignatureLine)
	if checked.Kind != layout.FieldCheckbox || !checked.Checked {
		t.Fatalf("checked box wrong: %#v", checked)
	}
	if checked.Label != "I accept the terms" {
		t.Fatalf("label = %q", checked.Label)
	}
	if un := blocks[1].(layout.SignatureLine); un.Checked {
		t.Fatalf("unchecked box parsed as checked")
	}
}

func TestParseSignaturePrefixes(t *testing.T) {
	src := "**Signature:**\n\n**Printed Name:**\n\n**Date:**\n"
	blocks := Parse(src)
	wantKinds := []layout.FieldKind{layout.FieldText, layout.FieldNone, layout.FieldDate}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 signature lines, got %#v", blocks)
	}
	for i, b := range blocks {
		s, ok := b.(layout.SignatureLine)
		if !ok || s.Kind != wantKinds[i] {
			t.Fatalf("block %d: %#v, want kind %v", i, b, wantKinds[i])
		}
	}
}

func TestParseBoldWithoutPrefixStaysParagraph(t *testing.T) {
	blocks := Parse("**Total:** $500\n")
	if _, ok := blocks[0].(layout.Paragraph); !ok {
		t.Fatalf("non-signature bold lead must stay a paragraph, got %#v", blocks[0])
	}
}

func TestParsePageBreakMarker(t *testing.T) {
	blocks := Parse("before\n\n<!-- pagebreak -->\n\nafter\n")
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %#v", blocks)
	}
	if _, ok := blocks[1].(layout.ManualPageBreak); !ok {
		t.Fatalf("marker must become ManualPageBreak, got %#v", blocks[1])
	}
}

func TestParseThematicBreak(t *testing.T) {
	blocks := Parse("above\n\n---\n\nbelow\n")
	if _, ok := blocks[1].(layout.Divider); !ok {
		t.Fatalf("--- must become a Divider, got %#v", blocks[1])
	}
}

func TestParseTable(t *testing.T) {
	src := "| Item | Qty | Price |\n|:-----|:---:|------:|\n| Widget | 2 | $10.00 |\n| Gadget | 1 |\n"
	blocks := Parse(src)
	tbl, ok := blocks[0].(layout.Table)
	if !ok {
		t.Fatalf("expected table, got %#v", blocks[0])
	}
	if len(tbl.Header) != 3 || tbl.Header[0] != "Item" {
		t.Fatalf("header wrong: %#v", tbl.Header)
	}
	if tbl.Aligns[1] != layout.AlignCenter || tbl.Aligns[2] != layout.AlignRight {
		t.Fatalf("alignments wrong: %#v", tbl.Aligns)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %#v", tbl.Rows)
	}
	// ragged row padded to header width
	if len(tbl.Rows[1]) != 3 || tbl.Rows[1][2] != "" {
		t.Fatalf("ragged row not normalized: %#v", tbl.Rows[1])
	}
}

func TestParseLinkReducesToLabel(t *testing.T) {
	blocks := Parse("See [our site](https://example.com) for details.\n")
	p := blocks[0].(layout.Paragraph)
	var all string
	for _, s := range p.Spans {
		all += s.Text
	}
	if all != "See our site for details." {
		t.Fatalf("link not reduced to label: %q", all)
	}
}

func TestParseMalformedInputNeverPanics(t *testing.T) {
	inputs := []string{
		"", "|", "|||\n|--|\n", "**unclosed", "- ", "<!--", "### ", "[x]",
	}
	for _, in := range inputs {
		Parse(in) // must not panic
	}
}
