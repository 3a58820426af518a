package fonts

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	gofont "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// TrueType holds a parsed TrueType/OpenType font program together with the
// metrics the writer needs to embed it as a FontFile2 stream.
type TrueType struct {
	Data           []byte
	PostScriptName string
	UnitsPerEm     int
	Ascent         float64 // glyph space (1/1000 em)
	Descent        float64
	CapHeight      float64
	ItalicAngle    float64
	BBox           [4]float64
	CharWidths     [256]int // per Latin-1 char code
	MissingWidth   int

	face *gofont.Face // shaping face, built once at load time
}

// LoadTrueType parses a TrueType/OpenType font and returns a Font backed by
// it. The full font program is kept for embedding (no subsetting).
func LoadTrueType(name string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("truetype font data is empty")
	}
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse truetype: %w", err)
	}
	unitsPerEm := parsed.UnitsPerEm()
	if unitsPerEm == 0 {
		return nil, fmt.Errorf("invalid unitsPerEm")
	}
	buf := &sfnt.Buffer{}
	ppem := fixed.Int26_6(int32(unitsPerEm) << 6)

	baseName := strings.TrimSpace(name)
	if ps, _ := parsed.Name(buf, sfnt.NameIDPostScript); len(ps) > 0 {
		baseName = ps
	}
	if baseName == "" {
		baseName = "CustomTT"
	}

	tt := &TrueType{
		Data:           data,
		PostScriptName: baseName,
		UnitsPerEm:     int(unitsPerEm),
		MissingWidth:   defaultGlyphWidth,
	}

	metrics, _ := parsed.Metrics(buf, ppem, xfont.HintingNone)
	bounds, _ := parsed.Bounds(buf, ppem, xfont.HintingNone)
	tt.Ascent = scaleFixed(metrics.Ascent, unitsPerEm)
	tt.Descent = -scaleFixed(metrics.Descent, unitsPerEm)
	tt.CapHeight = scaleFixed(metrics.CapHeight, unitsPerEm)
	if tt.CapHeight == 0 {
		tt.CapHeight = tt.Ascent
	}
	tt.BBox = [4]float64{
		scaleFixed(bounds.Min.X, unitsPerEm),
		-scaleFixed(bounds.Max.Y, unitsPerEm),
		scaleFixed(bounds.Max.X, unitsPerEm),
		-scaleFixed(bounds.Min.Y, unitsPerEm),
	}
	if post := parsed.PostTable(); post != nil {
		tt.ItalicAngle = post.ItalicAngle
	}

	for code := 32; code < 256; code++ {
		gi, err := parsed.GlyphIndex(buf, rune(code))
		if err != nil || gi == 0 {
			tt.CharWidths[code] = tt.MissingWidth
			continue
		}
		adv, err := parsed.GlyphAdvance(buf, gi, ppem, xfont.HintingNone)
		if err != nil {
			tt.CharWidths[code] = tt.MissingWidth
			continue
		}
		tt.CharWidths[code] = int(math.Round(scaleFixed(adv, unitsPerEm)))
	}
	tt.CharWidths[0] = tt.MissingWidth

	face, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse ttf for shaping: %w", err)
	}
	tt.face = face

	return &Font{BaseFont: baseName, TrueType: tt}, nil
}

func (tt *TrueType) runeWidth(r rune) int {
	if r >= 32 && r < 256 {
		return tt.CharWidths[r]
	}
	return tt.MissingWidth
}

func scaleFixed(val fixed.Int26_6, unitsPerEm sfnt.Units) float64 {
	return float64(val) * 1000.0 / (64.0 * float64(unitsPerEm))
}
