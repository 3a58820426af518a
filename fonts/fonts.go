package fonts

// Font describes a font usable for text measurement and PDF embedding.
// Builtin fonts carry AFM width tables for the standard-14 set and are never
// embedded; TrueType fonts carry the parsed font program and are embedded as
// a FontFile2 stream.
type Font struct {
	BaseFont string // PostScript name written to the PDF
	Builtin  bool
	widths   *[256]int // glyph-space widths (1/1000 em) for builtin fonts
	TrueType *TrueType // non-nil when loaded from a TTF
}

// Standard font constructors. Oblique variants share the upright widths,
// matching the Adobe AFM files.
func Helvetica() *Font {
	return &Font{BaseFont: "Helvetica", Builtin: true, widths: &helveticaWidths}
}

func HelveticaBold() *Font {
	return &Font{BaseFont: "Helvetica-Bold", Builtin: true, widths: &helveticaBoldWidths}
}

func HelveticaOblique() *Font {
	return &Font{BaseFont: "Helvetica-Oblique", Builtin: true, widths: &helveticaWidths}
}

func HelveticaBoldOblique() *Font {
	return &Font{BaseFont: "Helvetica-BoldOblique", Builtin: true, widths: &helveticaBoldWidths}
}

func Courier() *Font {
	return &Font{BaseFont: "Courier", Builtin: true, widths: &courierWidths}
}

func CourierBold() *Font {
	return &Font{BaseFont: "Courier-Bold", Builtin: true, widths: &courierWidths}
}

// TextWidth returns the width of text at the given point size.
// Deterministic: same input always yields the same output.
func (f *Font) TextWidth(text string, size float64) float64 {
	if f.TrueType != nil {
		return f.TrueType.textWidth(text, size)
	}
	sum := 0
	for _, r := range text {
		sum += f.runeWidth(r)
	}
	return float64(sum) / 1000 * size
}

// CharWidth returns the glyph-space width (1/1000 em) for a single rune.
func (f *Font) CharWidth(r rune) int {
	if f.TrueType != nil {
		return f.TrueType.runeWidth(r)
	}
	return f.runeWidth(r)
}

func (f *Font) runeWidth(r rune) int {
	if f.widths == nil {
		return defaultGlyphWidth
	}
	if c, ok := WinAnsiByte(r); ok {
		if w := f.widths[c]; w > 0 {
			return w
		}
	}
	return f.widths[0] // slot 0 holds the fallback width
}

// winAnsiExtra maps the typographic runes WinAnsi places in 0x80-0x9F.
var winAnsiExtra = map[rune]byte{
	'€': 0x80, '‚': 0x82, '„': 0x84, '…': 0x85, '†': 0x86, '‡': 0x87,
	'‰': 0x89, '‹': 0x8B, '‘': 0x91, '’': 0x92, '“': 0x93, '”': 0x94,
	'•': 0x95, '–': 0x96, '—': 0x97, '™': 0x99, '›': 0x9B,
}

// WinAnsiByte maps a rune to its WinAnsi single-byte code.
func WinAnsiByte(r rune) (byte, bool) {
	if r >= 32 && r < 256 {
		return byte(r), true
	}
	c, ok := winAnsiExtra[r]
	return c, ok
}
