package layout

import (
	"fmt"

	"github.com/docsmith/docgen/builder"
	"github.com/docsmith/docgen/geom"
	"github.com/docsmith/docgen/observability"
)

// Mode selects the pagination policy.
type Mode int

const (
	// ReflowAuto starts a new page whenever a write would cross the bottom
	// margin. Typed document templates always use this.
	ReflowAuto Mode = iota
	// ReflowManual breaks pages only on ManualPageBreak blocks. Signature
	// documents rendered from markdown rely on this for predictable page
	// numbering.
	ReflowManual
)

// OversizedBlockError reports a single block that cannot fit on any page,
// even alone. The render is abandoned; no truncated output is produced.
type OversizedBlockError struct {
	RequiredHeight  float64
	AvailableHeight float64
}

func (e *OversizedBlockError) Error() string {
	return fmt.Sprintf("block requires %.1fpt but a full page holds %.1fpt", e.RequiredHeight, e.AvailableHeight)
}

// Flow owns the cursor for one in-progress render and mediates between
// logical content and physical pages. Exactly one Flow exists per render.
type Flow struct {
	b          builder.PDFBuilder
	page       builder.PageBuilder
	pageWidth  float64
	pageHeight float64
	margins    geom.Margins
	mode       Mode
	y          float64
	pages      int
	onNewPage  func(f *Flow, pageIndex int)
	log        observability.Logger
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithMode sets the pagination policy.
func WithMode(m Mode) FlowOption {
	return func(f *Flow) { f.mode = m }
}

// WithOnNewPage registers a callback invoked after each page starts, before
// any content lands on it. Used to redraw running headers.
func WithOnNewPage(fn func(f *Flow, pageIndex int)) FlowOption {
	return func(f *Flow) { f.onNewPage = fn }
}

// WithFlowLogger sets the logger.
func WithFlowLogger(l observability.Logger) FlowOption {
	return func(f *Flow) { f.log = l }
}

// NewFlow creates a flow over the given builder and page geometry. The first
// page starts lazily on first use.
func NewFlow(b builder.PDFBuilder, size geom.PaperSize, margins geom.Margins, opts ...FlowOption) *Flow {
	f := &Flow{
		b:          b,
		pageWidth:  size.Width,
		pageHeight: size.Height,
		margins:    margins,
		log:        observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Page returns the current page, starting the first one if needed.
func (f *Flow) Page() builder.PageBuilder {
	if f.page == nil {
		f.newPage()
	}
	return f.page
}

// PageCount returns the number of pages started so far.
func (f *Flow) PageCount() int { return f.pages }

// Y is the cursor's current vertical position in PDF coordinates (descending
// from the top margin).
func (f *Flow) Y() float64 {
	f.Page()
	return f.y
}

// Left returns the left content edge.
func (f *Flow) Left() float64 { return f.margins.Left }

// Right returns the right content edge.
func (f *Flow) Right() float64 { return f.pageWidth - f.margins.Right }

// ContentWidth returns the writable width.
func (f *Flow) ContentWidth() float64 { return f.pageWidth - f.margins.Left - f.margins.Right }

// ContentHeight returns the writable height of a fresh page: the most any
// single block can ever occupy.
func (f *Flow) ContentHeight() float64 { return f.pageHeight - f.margins.Top - f.margins.Bottom }

// EnsureSpace guarantees required vertical room before a write. Under
// ReflowAuto a new page starts when the write would cross the bottom margin;
// under ReflowManual this only makes sure a page exists.
func (f *Flow) EnsureSpace(required float64) {
	if f.page == nil {
		f.newPage()
		return
	}
	if f.mode == ReflowManual {
		return
	}
	if f.y-required < f.margins.Bottom {
		f.newPage()
	}
}

// Advance moves the cursor down by consumed points. Callers must EnsureSpace
// first; Advance itself never starts a page.
func (f *Flow) Advance(consumed float64) {
	f.Page()
	f.y -= consumed
}

// ForcePageBreak unconditionally closes the current page and starts a new
// one, regardless of remaining space or mode.
func (f *Flow) ForcePageBreak() {
	f.newPage()
}

// Fits reports whether a block of the given height can ever be placed, even
// on an empty page.
func (f *Flow) Fits(height float64) bool {
	return height <= f.ContentHeight()
}

func (f *Flow) newPage() {
	if f.page != nil {
		f.page.Finish()
	}
	f.page = f.b.NewPage(f.pageWidth, f.pageHeight)
	f.y = f.pageHeight - f.margins.Top
	f.pages++
	f.log.Debug("page started", observability.Int("page", f.pages))
	if f.onNewPage != nil {
		f.onNewPage(f, f.pages-1)
	}
}

// Finish closes the last open page.
func (f *Flow) Finish() {
	if f.page != nil {
		f.page.Finish()
	}
}
