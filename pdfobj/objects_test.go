package pdfobj

import (
	"bytes"
	"testing"
)

func TestDictKeysSorted(t *testing.T) {
	d := Dict{
		"Type":     Name("Page"),
		"Contents": Ref{Num: 4},
		"Parent":   Ref{Num: 2},
	}
	want := "<</Contents 4 0 R/Parent 2 0 R/Type /Page>>"
	if got := string(Encode(d)); got != want {
		t.Fatalf("dict encoding:\n got %q\nwant %q", got, want)
	}
	// map iteration order must never leak into the bytes
	for i := 0; i < 50; i++ {
		if got := string(Encode(d)); got != want {
			t.Fatalf("dict encoding unstable on iteration %d: %q", i, got)
		}
	}
}

func TestStringEscaping(t *testing.T) {
	got := string(Encode(Str(`a(b)c\d`)))
	want := `(a\(b\)c\\d)`
	if got != want {
		t.Fatalf("string escaping: got %q want %q", got, want)
	}
}

func TestStreamLengthFilled(t *testing.T) {
	s := &Stream{Data: []byte("BT ET")}
	got := Encode(s)
	if !bytes.Contains(got, []byte("/Length 5")) {
		t.Fatalf("stream missing length: %q", got)
	}
	if !bytes.HasSuffix(got, []byte("\nendstream")) {
		t.Fatalf("stream missing terminator: %q", got)
	}
}

func TestEncodeIndirect(t *testing.T) {
	got := string(EncodeIndirect(ObjectRef{Num: 3}, Integer(7)))
	want := "3 0 obj\n7\nendobj\n"
	if got != want {
		t.Fatalf("indirect encoding: got %q want %q", got, want)
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		612:     "612",
		595.28:  "595.28",
		0.5:     "0.5",
		-0.0001: "-0.0001",
		1.00004: "1",
	}
	for in, want := range cases {
		if got := FormatFloat(in); got != want {
			t.Fatalf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatFloat(-0.00001); got != "0" {
		t.Fatalf("negative zero must normalize, got %q", got)
	}
}
