package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/docsmith/docgen/builder"
	"github.com/docsmith/docgen/doc"
	"github.com/docsmith/docgen/geom"
)

func renderBlocks(t *testing.T, blocks []Block, opts ...FlowOption) *doc.Document {
	t.Helper()
	b := builder.New()
	flow := NewFlow(b, geom.Letter, geom.Uniform(54), opts...)
	if err := NewRenderer(flow, DefaultStyle()).Render(blocks); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	d, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return d
}

func TestRenderSpillsToSecondPage(t *testing.T) {
	var blocks []Block
	for i := 0; i < 80; i++ {
		blocks = append(blocks, Text("Services are provided as described in the attached statement of work."))
	}
	d := renderBlocks(t, blocks)
	if d.PageCount() < 2 {
		t.Fatalf("80 paragraphs must span multiple pages, got %d", d.PageCount())
	}
	for _, p := range d.Pages {
		if !p.Closed() {
			t.Fatalf("every page must be closed after render")
		}
	}
}

func TestRenderManualMarkersControlPageCount(t *testing.T) {
	blocks := []Block{
		Heading{Level: 1, Text: "Agreement"},
		Text("Page one body."),
		ManualPageBreak{},
		Text("Page two body."),
		ManualPageBreak{},
		Text("Page three body."),
	}
	d := renderBlocks(t, blocks, WithMode(ReflowManual))
	if d.PageCount() != 3 {
		t.Fatalf("two markers must yield exactly 3 pages, got %d", d.PageCount())
	}
}

func TestRenderTableRowAtomic(t *testing.T) {
	// fill most of the first page, then render a table whose first row
	// cannot fit in the remainder; the row must land whole on page 2
	filler := make([]Block, 0, 40)
	for i := 0; i < 40; i++ {
		filler = append(filler, Text("filler line"))
	}
	tall := strings.Repeat("a very long answer that wraps over many lines ", 12)
	blocks := append(filler, Table{
		Header: []string{"Question", "Response"},
		Rows:   [][]string{{"Scope", tall}},
	})
	d := renderBlocks(t, blocks)
	if d.PageCount() != 2 {
		t.Fatalf("expected the tall row to push onto page 2, got %d page(s)", d.PageCount())
	}
	// page 2 carries the row text; page 1 must not contain any of it
	if !strings.Contains(string(d.Pages[1].Content), "a very long answer") {
		t.Fatalf("row content missing from page 2")
	}
	if strings.Contains(string(d.Pages[0].Content), "a very long answer") {
		t.Fatalf("row content leaked onto page 1; rows must not split")
	}
}

func TestRenderOversizedRowFailsWholeRender(t *testing.T) {
	giant := strings.Repeat("word ", 3000)
	b := builder.New()
	flow := NewFlow(b, geom.Letter, geom.Uniform(54))
	err := NewRenderer(flow, DefaultStyle()).Render([]Block{
		Table{Header: []string{"A"}, Rows: [][]string{{giant}}},
	})
	var oe *OversizedBlockError
	if !errors.As(err, &oe) {
		t.Fatalf("expected OversizedBlockError, got %v", err)
	}
	if oe.RequiredHeight <= oe.AvailableHeight {
		t.Fatalf("error must report required %v > available %v", oe.RequiredHeight, oe.AvailableHeight)
	}
}

func TestRenderRepeatHeaderOnContinuation(t *testing.T) {
	rows := make([][]string, 120)
	for i := range rows {
		rows[i] = []string{"Design work", "$100.00"}
	}
	d := renderBlocks(t, []Block{Table{
		Header:       []string{"Description", "Amount"},
		Rows:         rows,
		RepeatHeader: true,
	}})
	if d.PageCount() < 2 {
		t.Fatalf("120 rows must paginate, got %d page(s)", d.PageCount())
	}
	for i, p := range d.Pages {
		if !strings.Contains(string(p.Content), "Description") {
			t.Fatalf("page %d missing repeated header", i+1)
		}
	}
}

func TestRenderSignatureLineFields(t *testing.T) {
	d := renderBlocks(t, []Block{
		SignatureLine{Label: "Signature:", Kind: FieldText},
		SignatureLine{Label: "Printed Name:", Kind: FieldNone},
		SignatureLine{Label: "Date:", Kind: FieldDate},
		SignatureLine{Label: "I agree to the terms", Kind: FieldCheckbox, Checked: true},
	})
	if got := d.FieldCount(); got != 3 {
		t.Fatalf("expected 3 interactive fields (text, date, checkbox), got %d", got)
	}
	var checkboxes, texts int
	for _, f := range d.Pages[0].Fields {
		switch f.Kind {
		case doc.FieldCheckbox:
			checkboxes++
			if !f.Checked {
				t.Fatalf("checkbox default state lost")
			}
		case doc.FieldText:
			texts++
		}
	}
	if checkboxes != 1 || texts != 2 {
		t.Fatalf("field mix wrong: %d checkboxes, %d texts", checkboxes, texts)
	}
}

func TestRenderBulletIndentsByDepth(t *testing.T) {
	d := renderBlocks(t, []Block{
		BulletItem{Spans: []Span{{Text: "top"}}, Depth: 0},
		BulletItem{Spans: []Span{{Text: "nested"}}, Depth: 1},
	})
	content := string(d.Pages[0].Content)
	if !strings.Contains(content, "(top)") || !strings.Contains(content, "(nested)") {
		t.Fatalf("bullet text missing from content stream")
	}
}
