package templates

import (
	"errors"
	"testing"

	"github.com/docsmith/docgen/layout"
)

var testBiz = BusinessInfo{
	Name:         "Acme Consulting LLC",
	AddressLine1: "100 Main Street, Suite 4",
	AddressLine2: "Springfield, IL 62701",
	Contact:      "hello@acme.example | (555) 010-0100",
}

func TestMoney(t *testing.T) {
	cases := map[float64]string{
		0:          "$0.00",
		5:          "$5.00",
		1234.5:     "$1,234.50",
		5000:       "$5,000.00",
		1234567.89: "$1,234,567.89",
		-42.1:      "-$42.10",
	}
	for in, want := range cases {
		if got := Money(in); got != want {
			t.Fatalf("Money(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestQuantity(t *testing.T) {
	if got := Quantity(1); got != "1" {
		t.Fatalf("Quantity(1) = %q", got)
	}
	if got := Quantity(2.5); got != "2.5" {
		t.Fatalf("Quantity(2.5) = %q", got)
	}
}

func TestLetterheadFourLines(t *testing.T) {
	blocks := Letterhead(testBiz)
	// no logo: name, two address lines, contact, divider
	if len(blocks) != 5 {
		t.Fatalf("expected 5 blocks, got %#v", blocks)
	}
	name := blocks[0].(layout.Paragraph)
	if !name.Spans[0].Bold || name.Spans[0].Text != testBiz.Name {
		t.Fatalf("letterhead must lead with the bold business name: %#v", name)
	}
	if _, ok := blocks[4].(layout.Divider); !ok {
		t.Fatalf("letterhead must end with a divider")
	}

	withLogo := testBiz
	withLogo.LogoResource = "Im1"
	blocks = Letterhead(withLogo)
	img, ok := blocks[0].(layout.ImageBlock)
	if !ok || img.Resource != "Im1" {
		t.Fatalf("logo must render first: %#v", blocks[0])
	}
}

func findTables(blocks []layout.Block) []layout.Table {
	var tables []layout.Table
	for _, b := range blocks {
		if t, ok := b.(layout.Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

func TestInvoiceSingleItem(t *testing.T) {
	in := InvoiceInput{
		Number:     "INV-001",
		IssueDate:  "May 1, 2024",
		ClientName: "Globex Corp",
		Items: []LineItem{
			{Description: "Initial consultation", Quantity: 1, Rate: 5000, Amount: 5000},
		},
		Subtotal: 5000,
		Total:    5000,
	}
	blocks, err := Invoice(in, testBiz)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	tables := findTables(blocks)
	if len(tables) != 2 {
		t.Fatalf("expected items + totals tables, got %d", len(tables))
	}
	items := tables[0]
	if len(items.Rows) != 1 {
		t.Fatalf("one item must produce exactly one body row, got %d", len(items.Rows))
	}
	if items.Rows[0][3] != "$5,000.00" {
		t.Fatalf("amount cell = %q", items.Rows[0][3])
	}
	totals := tables[1]
	last := totals.Rows[len(totals.Rows)-1]
	if last[0] != "TOTAL" || last[1] != "$5,000.00" {
		t.Fatalf("final row = %#v, want TOTAL", last)
	}
}

func TestInvoiceCreditRelabelsTotal(t *testing.T) {
	in := InvoiceInput{
		Number:        "INV-002",
		ClientName:    "Globex Corp",
		Items:         []LineItem{{Description: "Work", Quantity: 1, Rate: 100, Amount: 100}},
		Subtotal:      100,
		CreditApplied: 25,
		Total:         75,
	}
	blocks, err := Invoice(in, testBiz)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	totals := findTables(blocks)[1]
	last := totals.Rows[len(totals.Rows)-1]
	if last[0] != "AMOUNT DUE" {
		t.Fatalf("credit applied must relabel the total, got %q", last[0])
	}
	var sawCredit bool
	for _, row := range totals.Rows {
		if row[0] == "Credit Applied" && row[1] == "-$25.00" {
			sawCredit = true
		}
	}
	if !sawCredit {
		t.Fatalf("credit row missing: %#v", totals.Rows)
	}
}

func TestInvoiceValidation(t *testing.T) {
	cases := []InvoiceInput{
		{ClientName: "X", Items: []LineItem{{}}},            // no number
		{Number: "1", Items: []LineItem{{}}},                // no client
		{Number: "1", ClientName: "X"},                      // no items
	}
	for i, in := range cases {
		_, err := Invoice(in, testBiz)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d: expected ValidationError, got %v", i, err)
		}
	}
}

func TestProposalSignatureBlock(t *testing.T) {
	in := ProposalInput{
		Title:      "Website Redesign",
		ClientName: "Globex Corp",
		Sections:   []ProposalSection{{Title: "Scope", Body: "Full redesign.", Bullets: []string{"Design", "Build"}}},
	}
	blocks, err := Proposal(in, testBiz)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	var sigs []layout.SignatureLine
	for _, b := range blocks {
		if s, ok := b.(layout.SignatureLine); ok {
			sigs = append(sigs, s)
		}
	}
	if len(sigs) != 3 {
		t.Fatalf("expected signature, printed name and date lines, got %#v", sigs)
	}
	if sigs[0].Kind != layout.FieldText || sigs[1].Kind != layout.FieldNone || sigs[2].Kind != layout.FieldDate {
		t.Fatalf("signature kinds wrong: %#v", sigs)
	}
}

func TestContractAcknowledgementsAndCounterSign(t *testing.T) {
	in := ContractInput{
		Title:      "Services Agreement",
		ClientName: "Globex Corp",
		Clauses:    []Clause{{Title: "Term", Body: "One year."}},
		Acknowledgements: []Acknowledgement{
			{Text: "I have read the payment terms", PreChecked: true},
			{Text: "I agree to the cancellation policy"},
		},
		CounterSigned: true,
	}
	blocks, err := Contract(in, testBiz)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	var boxes, sigLines int
	for _, b := range blocks {
		if s, ok := b.(layout.SignatureLine); ok {
			if s.Kind == layout.FieldCheckbox {
				boxes++
			} else {
				sigLines++
			}
		}
	}
	if boxes != 2 {
		t.Fatalf("expected 2 acknowledgement boxes, got %d", boxes)
	}
	// two parties, three lines each
	if sigLines != 6 {
		t.Fatalf("expected 6 signature lines with countersign, got %d", sigLines)
	}
}

func TestContractClausesNumbered(t *testing.T) {
	in := ContractInput{
		Title:      "Agreement",
		ClientName: "Client",
		Clauses:    []Clause{{Title: "Scope", Body: "a"}, {Title: "Term", Body: "b"}},
	}
	blocks, _ := Contract(in, testBiz)
	var clauseHeads []string
	for _, b := range blocks {
		if h, ok := b.(layout.Heading); ok && h.Level == 3 {
			clauseHeads = append(clauseHeads, h.Text)
		}
	}
	if len(clauseHeads) != 2 || clauseHeads[0] != "1. Scope" || clauseHeads[1] != "2. Term" {
		t.Fatalf("clause numbering wrong: %#v", clauseHeads)
	}
}

func TestIntakeTable(t *testing.T) {
	in := IntakeInput{
		ClientName:  "Globex Corp",
		SubmittedAt: "May 2, 2024 9:15 AM",
		Responses: []Response{
			{Question: "What is your budget?", Answer: "$10k"},
			{Question: "Timeline?", Answer: ""},
		},
	}
	blocks, err := Intake(in, testBiz)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	tbl := findTables(blocks)[0]
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected one row per response, got %d", len(tbl.Rows))
	}
	if tbl.Rows[1][1] != "—" {
		t.Fatalf("empty answer must render as an em dash, got %q", tbl.Rows[1][1])
	}
	if !tbl.RepeatHeader {
		t.Fatalf("intake table must repeat its header across pages")
	}
}
