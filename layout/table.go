package layout

import (
	"github.com/docsmith/docgen/builder"
	"github.com/docsmith/docgen/fonts"
)

var tableBorder = builder.Color{R: 0.55, G: 0.55, B: 0.55}

// renderTable draws a table in two passes: column widths and row heights
// first, then header and body rows. A row is atomic for space-checking: it
// never splits across pages. The header repeats on continuation pages only
// when the block asks for it.
func (r *Renderer) renderTable(t Table) error {
	cols := len(t.Header)
	if cols == 0 && len(t.Rows) > 0 {
		cols = len(t.Rows[0])
	}
	if cols == 0 {
		return nil
	}
	widths := r.columnWidths(t, cols)

	size := r.style.BaseFontSize
	headerH := r.rowHeight(t.Header, widths, r.style.Bold, size)
	if !r.flow.Fits(headerH) {
		return &OversizedBlockError{RequiredHeight: headerH, AvailableHeight: r.flow.ContentHeight()}
	}

	drawHeader := func() {
		r.flow.EnsureSpace(headerH)
		r.drawRow(t.Header, widths, t.Aligns, r.style.Bold, size, headerH, true)
	}
	if len(t.Header) > 0 {
		drawHeader()
	}

	for _, row := range t.Rows {
		cells := normalizeRow(row, cols)
		rh := r.rowHeight(cells, widths, r.style.Body, size)
		if !r.flow.Fits(rh) {
			return &OversizedBlockError{RequiredHeight: rh, AvailableHeight: r.flow.ContentHeight()}
		}
		before := r.flow.PageCount()
		r.flow.EnsureSpace(rh)
		if r.flow.PageCount() != before && t.RepeatHeader && len(t.Header) > 0 {
			drawHeader()
		}
		r.drawRow(cells, widths, t.Aligns, r.style.Body, size, rh, false)
	}
	r.flow.Advance(r.style.ParagraphGap)
	return nil
}

func (r *Renderer) columnWidths(t Table, cols int) []float64 {
	total := r.flow.ContentWidth()
	widths := make([]float64, cols)
	if len(t.ColumnWeights) == cols {
		sum := 0.0
		for _, w := range t.ColumnWeights {
			sum += w
		}
		if sum > 0 {
			for i, w := range t.ColumnWeights {
				widths[i] = w / sum * total
			}
			return widths
		}
	}
	for i := range widths {
		widths[i] = total / float64(cols)
	}
	return widths
}

// rowHeight is the wrapped line count of the tallest cell plus padding.
func (r *Renderer) rowHeight(cells []string, widths []float64, font *fonts.Font, size float64) float64 {
	pad := r.style.CellPadding
	lh := r.style.lineHeight(size)
	maxLines := 1
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		n := len(WrapText(cell, font, size, widths[i]-2*pad))
		if n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines)*lh + 2*pad
}

func (r *Renderer) drawRow(cells []string, widths []float64, aligns []Align, font *fonts.Font, size, height float64, header bool) {
	pad := r.style.CellPadding
	lh := r.style.lineHeight(size)
	page := r.flow.Page()
	y := r.flow.Y()
	x := r.flow.Left()
	for i, w := range widths {
		if header {
			page.DrawRectangle(x, y-height, w, height, builder.RectOptions{
				Fill:      true,
				FillColor: builder.LightGray,
			})
		}
		page.DrawRectangle(x, y-height, w, height, builder.RectOptions{
			Stroke:      true,
			StrokeColor: tableBorder,
			LineWidth:   0.5,
		})
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		align := AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}
		lineIdx := 0
		for line := range WrapLines(cell, font, size, w-2*pad) {
			tx := x + pad
			switch align {
			case AlignCenter:
				tx = x + (w-MeasureWidth(line, font, size))/2
			case AlignRight:
				tx = x + w - pad - MeasureWidth(line, font, size)
			}
			page.DrawText(line, tx, y-pad-size-float64(lineIdx)*lh, builder.TextOptions{
				Font:     font.BaseFont,
				FontSize: size,
			})
			lineIdx++
		}
		x += w
	}
	r.flow.Advance(height)
}

// normalizeRow pads or truncates a row to the header's column count.
func normalizeRow(row []string, cols int) []string {
	if len(row) == cols {
		return row
	}
	out := make([]string, cols)
	copy(out, row)
	return out
}
