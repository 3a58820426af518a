package layout

import (
	"github.com/docsmith/docgen/builder"
	"github.com/docsmith/docgen/geom"
)

const (
	checkboxSide  = 11.0
	fieldHeight   = 16.0
	dateLineWidth = 150.0
	labelRuleGap  = 8.0
	underlineDrop = 2.0
)

// renderSignatureLine draws a label with an underline and, depending on the
// field kind, overlays an interactive form field:
//
//	FieldNone     bare underline (printed name lines)
//	FieldText     invisible-border text input over the underline
//	FieldDate     shorter underline with a text input
//	FieldCheckbox bordered checkbox before the label
func (r *Renderer) renderSignatureLine(s SignatureLine) {
	size := r.style.BaseFontSize
	rowH := r.style.lineHeight(size) * 1.8
	r.flow.EnsureSpace(rowH)

	page := r.flow.Page()
	y := r.flow.Y()
	baseline := y - size

	if s.Kind == FieldCheckbox {
		rect := geom.Rect{
			LLX: r.flow.Left(),
			LLY: baseline - (checkboxSide-size)/2,
			URX: r.flow.Left() + checkboxSide,
			URY: baseline + size - (checkboxSide-size)/2,
		}
		rect.URY = rect.LLY + checkboxSide
		page.AddCheckbox(rect, s.Checked)
		page.DrawText(s.Label, rect.URX+6, baseline, builder.TextOptions{
			Font:     r.style.Body.BaseFont,
			FontSize: size,
		})
		r.flow.Advance(rowH)
		return
	}

	labelW := r.style.Bold.TextWidth(s.Label, size)
	page.DrawText(s.Label, r.flow.Left(), baseline, builder.TextOptions{
		Font:     r.style.Bold.BaseFont,
		FontSize: size,
	})

	lineStart := r.flow.Left() + labelW + labelRuleGap
	lineEnd := r.flow.Right()
	if s.Kind == FieldDate {
		lineEnd = lineStart + dateLineWidth
	}
	ruleY := baseline - underlineDrop
	page.DrawLine(lineStart, ruleY, lineEnd, ruleY, builder.LineOptions{
		StrokeColor: builder.Black,
		LineWidth:   0.75,
	})

	if s.Kind == FieldText || s.Kind == FieldDate {
		page.AddTextField(geom.Rect{
			LLX: lineStart,
			LLY: ruleY,
			URX: lineEnd,
			URY: ruleY + fieldHeight,
		}, "", false)
	}
	r.flow.Advance(rowH)
}
