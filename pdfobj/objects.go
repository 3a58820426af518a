// Package pdfobj models the handful of raw PDF object types the writer emits
// and serializes them deterministically (dictionary keys are sorted, numbers
// use shortest-form decimal).
package pdfobj

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// ObjectRef identifies an indirect object.
type ObjectRef struct {
	Num int
	Gen int
}

func (r ObjectRef) String() string { return fmt.Sprintf("%d %d R", r.Num, r.Gen) }

// Object is any serializable PDF value.
type Object interface {
	encode(buf *bytes.Buffer)
}

// Name is a PDF name object (/Foo).
type Name string

func (n Name) encode(buf *bytes.Buffer) {
	buf.WriteByte('/')
	buf.WriteString(string(n))
}

// Integer is a PDF integer.
type Integer int64

func (i Integer) encode(buf *bytes.Buffer) {
	buf.WriteString(strconv.FormatInt(int64(i), 10))
}

// Real is a PDF real number.
type Real float64

func (r Real) encode(buf *bytes.Buffer) {
	buf.WriteString(FormatFloat(float64(r)))
}

// Boolean is a PDF boolean.
type Boolean bool

func (b Boolean) encode(buf *bytes.Buffer) {
	if b {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}
}

// Null is the PDF null object.
type Null struct{}

func (Null) encode(buf *bytes.Buffer) { buf.WriteString("null") }

// String is a PDF literal string; parentheses and backslashes are escaped.
type String []byte

func (s String) encode(buf *bytes.Buffer) {
	buf.WriteByte('(')
	for _, c := range s {
		switch c {
		case '(', ')', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte(')')
}

// Str builds a literal string object from text.
func Str(s string) String { return String(s) }

// Array is a PDF array.
type Array []Object

func (a Array) encode(buf *bytes.Buffer) {
	buf.WriteByte('[')
	for i, it := range a {
		if i > 0 {
			buf.WriteByte(' ')
		}
		it.encode(buf)
	}
	buf.WriteByte(']')
}

// Dict is a PDF dictionary. Keys serialize in sorted order so identical
// documents always produce identical bytes.
type Dict map[Name]Object

func (d Dict) encode(buf *bytes.Buffer) {
	buf.WriteString("<<")
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteByte('/')
		buf.WriteString(k)
		buf.WriteByte(' ')
		d[Name(k)].encode(buf)
	}
	buf.WriteString(">>")
}

// Stream is a PDF stream object; Length is filled in automatically.
type Stream struct {
	Dict Dict
	Data []byte
}

func (s *Stream) encode(buf *bytes.Buffer) {
	d := s.Dict
	if d == nil {
		d = Dict{}
	}
	d["Length"] = Integer(len(s.Data))
	d.encode(buf)
	buf.WriteString("\nstream\n")
	buf.Write(s.Data)
	buf.WriteString("\nendstream")
}

// Ref is an indirect reference object.
type Ref ObjectRef

func (r Ref) encode(buf *bytes.Buffer) {
	buf.WriteString(strconv.Itoa(r.Num))
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(r.Gen))
	buf.WriteString(" R")
}

// Encode serializes a bare object.
func Encode(o Object) []byte {
	var buf bytes.Buffer
	o.encode(&buf)
	return buf.Bytes()
}

// EncodeIndirect serializes "N G obj ... endobj".
func EncodeIndirect(ref ObjectRef, o Object) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d %d obj\n", ref.Num, ref.Gen)
	o.encode(&buf)
	buf.WriteString("\nendobj\n")
	return buf.Bytes()
}

// FormatFloat renders a float the way the writer wants it everywhere:
// shortest decimal form, no exponent, integers without a trailing dot.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 4, 64)
	// trim trailing zeros and a dangling dot
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
