// Package templates turns typed business records into ordered block
// sequences. One assembler per document kind; every assembler opens with the
// shared letterhead so all generated documents look consistent. Assemblers
// validate required input before emitting anything: a missing field is a
// caller error, never a rendering error.
package templates

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/docsmith/docgen/layout"
)

// BusinessInfo is the letterhead identity threaded explicitly into every
// assembler call. Never package-level state: tests supply fixtures.
type BusinessInfo struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	Contact      string // phone / email line

	// LogoResource is a builder image resource name; empty means no logo
	// (missing logo assets degrade to a text-only letterhead).
	LogoResource string
	LogoWidth    float64
	LogoHeight   float64
}

// ValidationError reports a missing or malformed required input field.
type ValidationError struct {
	Doc   string
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: required field %q is missing", e.Doc, e.Field)
}

// Letterhead is the shared header block sequence: logo, four-line business
// block, divider.
func Letterhead(biz BusinessInfo) []layout.Block {
	var blocks []layout.Block
	if biz.LogoResource != "" {
		w, h := biz.LogoWidth, biz.LogoHeight
		if w <= 0 {
			w = 120
		}
		if h <= 0 {
			h = 40
		}
		blocks = append(blocks, layout.ImageBlock{Resource: biz.LogoResource, Width: w, Height: h})
	}
	blocks = append(blocks,
		layout.Paragraph{Spans: []layout.Span{{Text: biz.Name, Bold: true}}},
		layout.Text(biz.AddressLine1),
		layout.Text(biz.AddressLine2),
		layout.Text(biz.Contact),
		layout.Divider{},
	)
	return blocks
}

// Money formats a dollar amount with comma grouping: 5000 -> "$5,000.00".
// Negative amounts render with a leading minus before the dollar sign.
func Money(amount float64) string {
	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	out := fmt.Sprintf("$%s.%02d", sb.String(), frac)
	if neg {
		out = "-" + out
	}
	return out
}

// Quantity renders a quantity without trailing zeros: 1 -> "1", 1.5 -> "1.5".
func Quantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
