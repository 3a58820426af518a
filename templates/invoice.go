package templates

import (
	"github.com/docsmith/docgen/layout"
)

// LineItem is one billable row of an invoice. Details, when present, are
// appended to the description cell so each item stays a single atomic row.
type LineItem struct {
	Description string
	Quantity    float64
	Rate        float64
	Amount      float64
	Details     []string
}

// InvoiceInput is the typed record behind an invoice document.
type InvoiceInput struct {
	Number        string
	IssueDate     string
	DueDate       string
	ClientName    string
	ClientAddress []string
	Items         []LineItem
	Subtotal      float64
	TaxLabel      string // e.g. "Sales Tax (8.25%)"; empty hides the row
	Tax           float64
	Discount      float64 // positive amount subtracted from the total
	CreditApplied float64 // positive amount already paid or credited
	Total         float64
	Notes         string
}

// Invoice assembles the invoice block sequence: letterhead, invoice meta,
// bill-to block, line-items table, totals, notes. The final total row is
// labeled AMOUNT DUE when a credit was applied and TOTAL otherwise.
func Invoice(in InvoiceInput, biz BusinessInfo) ([]layout.Block, error) {
	switch {
	case in.Number == "":
		return nil, &ValidationError{Doc: "invoice", Field: "number"}
	case in.ClientName == "":
		return nil, &ValidationError{Doc: "invoice", Field: "client name"}
	case len(in.Items) == 0:
		return nil, &ValidationError{Doc: "invoice", Field: "items"}
	}

	blocks := Letterhead(biz)
	blocks = append(blocks,
		layout.Heading{Level: 1, Text: "INVOICE"},
		layout.Paragraph{Spans: []layout.Span{
			{Text: "Invoice #: ", Bold: true}, {Text: in.Number},
		}},
	)
	if in.IssueDate != "" {
		blocks = append(blocks, layout.Paragraph{Spans: []layout.Span{
			{Text: "Date: ", Bold: true}, {Text: in.IssueDate},
		}})
	}
	if in.DueDate != "" {
		blocks = append(blocks, layout.Paragraph{Spans: []layout.Span{
			{Text: "Due: ", Bold: true}, {Text: in.DueDate},
		}})
	}

	blocks = append(blocks,
		layout.Spacer{Height: 8},
		layout.Paragraph{Spans: []layout.Span{{Text: "Bill To", Bold: true}}},
		layout.Text(in.ClientName),
	)
	for _, line := range in.ClientAddress {
		blocks = append(blocks, layout.Text(line))
	}

	rows := make([][]string, 0, len(in.Items))
	for _, item := range in.Items {
		desc := item.Description
		for _, d := range item.Details {
			desc += " • " + d
		}
		rows = append(rows, []string{
			desc,
			Quantity(item.Quantity),
			Money(item.Rate),
			Money(item.Amount),
		})
	}
	blocks = append(blocks,
		layout.Spacer{Height: 8},
		layout.Table{
			Header:        []string{"Description", "Qty", "Rate", "Amount"},
			Rows:          rows,
			Aligns:        []layout.Align{layout.AlignLeft, layout.AlignRight, layout.AlignRight, layout.AlignRight},
			ColumnWeights: []float64{5, 1, 1.5, 1.5},
			RepeatHeader:  true,
		},
	)

	blocks = append(blocks, layout.Spacer{Height: 4})
	blocks = append(blocks, totalsRows(in)...)

	if in.Notes != "" {
		blocks = append(blocks,
			layout.Spacer{Height: 12},
			layout.Paragraph{Spans: []layout.Span{{Text: "Notes", Bold: true}}},
			layout.Text(in.Notes),
		)
	}
	return blocks, nil
}

func totalsRows(in InvoiceInput) []layout.Block {
	rows := [][]string{{"Subtotal", Money(in.Subtotal)}}
	if in.TaxLabel != "" {
		rows = append(rows, []string{in.TaxLabel, Money(in.Tax)})
	}
	if in.Discount > 0 {
		rows = append(rows, []string{"Discount", "-" + Money(in.Discount)})
	}
	label := "TOTAL"
	if in.CreditApplied > 0 {
		rows = append(rows, []string{"Credit Applied", "-" + Money(in.CreditApplied)})
		label = "AMOUNT DUE"
	}
	rows = append(rows, []string{label, Money(in.Total)})
	return []layout.Block{layout.Table{
		Rows:          rows,
		Aligns:        []layout.Align{layout.AlignRight, layout.AlignRight},
		ColumnWeights: []float64{6, 2},
	}}
}
