package templates

import (
	"github.com/docsmith/docgen/layout"
)

// ProposalSection is one titled body section, optionally with bullets.
type ProposalSection struct {
	Title   string
	Body    string
	Bullets []string
}

// PriceRow is one line of the optional pricing summary.
type PriceRow struct {
	Item   string
	Amount float64
}

// ProposalInput is the typed record behind a proposal document.
type ProposalInput struct {
	Title      string
	ClientName string
	Date       string
	ValidUntil string
	Sections   []ProposalSection
	Pricing    []PriceRow
	Total      float64
}

// Proposal assembles the proposal block sequence: letterhead, title block,
// sections with bullets, optional pricing table, acceptance signature block.
func Proposal(in ProposalInput, biz BusinessInfo) ([]layout.Block, error) {
	switch {
	case in.Title == "":
		return nil, &ValidationError{Doc: "proposal", Field: "title"}
	case in.ClientName == "":
		return nil, &ValidationError{Doc: "proposal", Field: "client name"}
	case len(in.Sections) == 0:
		return nil, &ValidationError{Doc: "proposal", Field: "sections"}
	}

	blocks := Letterhead(biz)
	blocks = append(blocks,
		layout.Heading{Level: 1, Text: in.Title},
		layout.Paragraph{Spans: []layout.Span{
			{Text: "Prepared for: ", Bold: true}, {Text: in.ClientName},
		}},
	)
	if in.Date != "" {
		blocks = append(blocks, layout.Paragraph{Spans: []layout.Span{
			{Text: "Date: ", Bold: true}, {Text: in.Date},
		}})
	}
	if in.ValidUntil != "" {
		blocks = append(blocks, layout.Paragraph{Spans: []layout.Span{
			{Text: "Valid until: ", Bold: true}, {Text: in.ValidUntil},
		}})
	}

	for _, sec := range in.Sections {
		blocks = append(blocks, layout.Heading{Level: 2, Text: sec.Title})
		if sec.Body != "" {
			blocks = append(blocks, layout.Text(sec.Body))
		}
		for _, b := range sec.Bullets {
			blocks = append(blocks, layout.BulletItem{Spans: []layout.Span{{Text: b}}})
		}
	}

	if len(in.Pricing) > 0 {
		rows := make([][]string, 0, len(in.Pricing)+1)
		for _, p := range in.Pricing {
			rows = append(rows, []string{p.Item, Money(p.Amount)})
		}
		rows = append(rows, []string{"Total", Money(in.Total)})
		blocks = append(blocks,
			layout.Heading{Level: 2, Text: "Investment"},
			layout.Table{
				Header:        []string{"Item", "Amount"},
				Rows:          rows,
				Aligns:        []layout.Align{layout.AlignLeft, layout.AlignRight},
				ColumnWeights: []float64{5, 2},
				RepeatHeader:  true,
			},
		)
	}

	blocks = append(blocks,
		layout.Spacer{Height: 16},
		layout.Heading{Level: 2, Text: "Acceptance"},
		layout.Text("Signing below indicates acceptance of this proposal and its terms."),
		layout.SignatureLine{Label: "Signature:", Kind: layout.FieldText},
		layout.SignatureLine{Label: "Printed Name:", Kind: layout.FieldNone},
		layout.SignatureLine{Label: "Date:", Kind: layout.FieldDate},
	)
	return blocks, nil
}
