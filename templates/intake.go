package templates

import (
	"github.com/docsmith/docgen/layout"
)

// Response is one answered intake-form question.
type Response struct {
	Question string
	Answer   string
}

// IntakeInput is the typed record behind an intake summary document.
type IntakeInput struct {
	FormTitle   string
	ClientName  string
	ClientEmail string
	SubmittedAt string
	Responses   []Response
}

// Intake assembles the intake summary: letterhead, submission meta and a
// two-column question/answer table. Rows stay atomic, so a long answer never
// splits across pages.
func Intake(in IntakeInput, biz BusinessInfo) ([]layout.Block, error) {
	switch {
	case in.ClientName == "":
		return nil, &ValidationError{Doc: "intake summary", Field: "client name"}
	case len(in.Responses) == 0:
		return nil, &ValidationError{Doc: "intake summary", Field: "responses"}
	}

	title := in.FormTitle
	if title == "" {
		title = "Intake Summary"
	}
	blocks := Letterhead(biz)
	blocks = append(blocks,
		layout.Heading{Level: 1, Text: title},
		layout.Paragraph{Spans: []layout.Span{
			{Text: "Client: ", Bold: true}, {Text: in.ClientName},
		}},
	)
	if in.ClientEmail != "" {
		blocks = append(blocks, layout.Paragraph{Spans: []layout.Span{
			{Text: "Email: ", Bold: true}, {Text: in.ClientEmail},
		}})
	}
	if in.SubmittedAt != "" {
		blocks = append(blocks, layout.Paragraph{Spans: []layout.Span{
			{Text: "Submitted: ", Bold: true}, {Text: in.SubmittedAt},
		}})
	}

	rows := make([][]string, 0, len(in.Responses))
	for _, r := range in.Responses {
		answer := r.Answer
		if answer == "" {
			answer = "—"
		}
		rows = append(rows, []string{r.Question, answer})
	}
	blocks = append(blocks,
		layout.Spacer{Height: 8},
		layout.Table{
			Header:       []string{"Question", "Response"},
			Rows:         rows,
			Aligns:       []layout.Align{layout.AlignLeft, layout.AlignLeft},
			RepeatHeader: true,
		},
	)
	return blocks, nil
}
