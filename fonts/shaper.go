package fonts

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// textWidth measures shaped text for a loaded TrueType face. Shaping runs at
// 1000 units per em so advances come out in glyph space, then scale by size.
func (tt *TrueType) textWidth(text string, size float64) float64 {
	if tt.face == nil {
		return tt.fallbackWidth(text, size)
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}

	shaper := &shaping.HarfbuzzShaper{}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      tt.face,
		Size:      fixed.Int26_6(1000 * 64),
		Script:    language.Latin,
		Language:  language.DefaultLanguage(),
	}
	output := shaper.Shape(input)

	sum := 0.0
	for _, g := range output.Glyphs {
		sum += float64(g.XAdvance) / 64.0
	}
	return sum / 1000 * size
}

func (tt *TrueType) fallbackWidth(text string, size float64) float64 {
	sum := 0
	for _, r := range text {
		sum += tt.runeWidth(r)
	}
	return float64(sum) / 1000 * size
}
