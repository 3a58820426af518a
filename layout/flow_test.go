package layout

import (
	"testing"

	"github.com/docsmith/docgen/builder"
	"github.com/docsmith/docgen/geom"
)

func testFlow(opts ...FlowOption) *Flow {
	return NewFlow(builder.New(), geom.Letter, geom.Uniform(54), opts...)
}

func TestFlowFirstPageLazy(t *testing.T) {
	f := testFlow()
	if f.PageCount() != 0 {
		t.Fatalf("no page should exist before first use")
	}
	f.Page()
	if f.PageCount() != 1 {
		t.Fatalf("expected 1 page after first use, got %d", f.PageCount())
	}
	if got, want := f.Y(), geom.Letter.Height-54; got != want {
		t.Fatalf("cursor starts at %v, want %v", got, want)
	}
}

func TestFlowAutoBreaksAtBottomMargin(t *testing.T) {
	f := testFlow(WithMode(ReflowAuto))
	f.Page()
	for f.Y()-50 >= 54 {
		f.EnsureSpace(50)
		f.Advance(50)
	}
	if f.PageCount() != 1 {
		t.Fatalf("filled exactly one page, got %d", f.PageCount())
	}
	f.EnsureSpace(50)
	if f.PageCount() != 2 {
		t.Fatalf("expected page break, still on page %d", f.PageCount())
	}
	if got, want := f.Y(), geom.Letter.Height-54; got != want {
		t.Fatalf("cursor must reset to top margin, got %v want %v", got, want)
	}
}

func TestFlowManualNeverAutoBreaks(t *testing.T) {
	f := testFlow(WithMode(ReflowManual))
	f.Page()
	for i := 0; i < 100; i++ {
		f.EnsureSpace(50)
		f.Advance(50)
	}
	if f.PageCount() != 1 {
		t.Fatalf("manual mode must not break pages, got %d", f.PageCount())
	}
	f.ForcePageBreak()
	if f.PageCount() != 2 {
		t.Fatalf("forced break must always work, got %d", f.PageCount())
	}
}

func TestFlowFits(t *testing.T) {
	f := testFlow()
	if !f.Fits(f.ContentHeight()) {
		t.Fatalf("a full-content-height block must fit")
	}
	if f.Fits(f.ContentHeight() + 1) {
		t.Fatalf("a block taller than the content area can never fit")
	}
}

func TestFlowOnNewPageCallback(t *testing.T) {
	var indexes []int
	f := testFlow(WithOnNewPage(func(_ *Flow, i int) { indexes = append(indexes, i) }))
	f.Page()
	f.ForcePageBreak()
	f.ForcePageBreak()
	if len(indexes) != 3 || indexes[0] != 0 || indexes[2] != 2 {
		t.Fatalf("unexpected callback indexes %v", indexes)
	}
}
