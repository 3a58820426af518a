package templates

import (
	"fmt"

	"github.com/docsmith/docgen/layout"
)

// Clause is one numbered contract clause.
type Clause struct {
	Title string
	Body  string
}

// Acknowledgement is a checkbox line the signer must review. PreChecked marks
// terms acknowledged at generation time.
type Acknowledgement struct {
	Text       string
	PreChecked bool
}

// ContractInput is the typed record behind a contract document.
type ContractInput struct {
	Title            string
	ClientName       string
	EffectiveDate    string
	Clauses          []Clause
	Acknowledgements []Acknowledgement

	// CounterSigned adds a second signature block for the business.
	CounterSigned bool
}

// Contract assembles the contract block sequence: letterhead, title,
// effective-date line, numbered clauses, acknowledgement checkboxes and one
// signature block per party.
func Contract(in ContractInput, biz BusinessInfo) ([]layout.Block, error) {
	switch {
	case in.Title == "":
		return nil, &ValidationError{Doc: "contract", Field: "title"}
	case in.ClientName == "":
		return nil, &ValidationError{Doc: "contract", Field: "client name"}
	case len(in.Clauses) == 0:
		return nil, &ValidationError{Doc: "contract", Field: "clauses"}
	}

	blocks := Letterhead(biz)
	blocks = append(blocks, layout.Heading{Level: 1, Text: in.Title})
	intro := fmt.Sprintf("This agreement is entered into between %s and %s", biz.Name, in.ClientName)
	if in.EffectiveDate != "" {
		intro += fmt.Sprintf(", effective %s", in.EffectiveDate)
	}
	blocks = append(blocks, layout.Text(intro+"."))

	for i, clause := range in.Clauses {
		blocks = append(blocks,
			layout.Heading{Level: 3, Text: fmt.Sprintf("%d. %s", i+1, clause.Title)},
			layout.Text(clause.Body),
		)
	}

	if len(in.Acknowledgements) > 0 {
		blocks = append(blocks,
			layout.Spacer{Height: 8},
			layout.Heading{Level: 2, Text: "Acknowledgements"},
		)
		for _, ack := range in.Acknowledgements {
			blocks = append(blocks, layout.SignatureLine{
				Label:   ack.Text,
				Kind:    layout.FieldCheckbox,
				Checked: ack.PreChecked,
			})
		}
	}

	blocks = append(blocks,
		layout.Spacer{Height: 16},
		layout.Heading{Level: 2, Text: "Agreed and Accepted"},
		layout.Paragraph{Spans: []layout.Span{{Text: in.ClientName, Bold: true}}},
		layout.SignatureLine{Label: "Signature:", Kind: layout.FieldText},
		layout.SignatureLine{Label: "Printed Name:", Kind: layout.FieldNone},
		layout.SignatureLine{Label: "Date:", Kind: layout.FieldDate},
	)
	if in.CounterSigned {
		blocks = append(blocks,
			layout.Spacer{Height: 12},
			layout.Paragraph{Spans: []layout.Span{{Text: biz.Name, Bold: true}}},
			layout.SignatureLine{Label: "Signature:", Kind: layout.FieldText},
			layout.SignatureLine{Label: "Printed Name:", Kind: layout.FieldNone},
			layout.SignatureLine{Label: "Date:", Kind: layout.FieldDate},
		)
	}
	return blocks, nil
}
