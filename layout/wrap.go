package layout

import (
	"iter"
	"strings"

	"github.com/docsmith/docgen/fonts"
)

// MeasureWidth returns the width in points of text at the given size.
// Pure: same input always yields the same output.
func MeasureWidth(text string, font *fonts.Font, size float64) float64 {
	return font.TextWidth(text, size)
}

// WrapLines yields greedy word-wrapped lines whose measured width stays
// within maxWidth. A single word wider than maxWidth is yielded alone on its
// own line, never hyphenated or truncated: overflow beats silent data loss.
// The sequence is finite and meant to be consumed once, immediately.
func WrapLines(text string, font *fonts.Font, size, maxWidth float64) iter.Seq[string] {
	return func(yield func(string) bool) {
		words := strings.Fields(text)
		if len(words) == 0 {
			return
		}
		current := words[0]
		for _, word := range words[1:] {
			if MeasureWidth(current+" "+word, font, size) <= maxWidth {
				current += " " + word
				continue
			}
			if !yield(current) {
				return
			}
			current = word
		}
		yield(current)
	}
}

// WrapText materializes WrapLines.
func WrapText(text string, font *fonts.Font, size, maxWidth float64) []string {
	var lines []string
	for line := range WrapLines(text, font, size, maxWidth) {
		lines = append(lines, line)
	}
	return lines
}

// word is a measured token used for span-aware wrapping.
type word struct {
	text  string
	bold  bool
	width float64
}

// line is one wrapped row of styled words.
type line struct {
	words []word
	width float64
}

// wrapSpans wraps styled spans into lines, keeping bold runs intact at word
// granularity. Space width follows the style of the word it precedes.
func wrapSpans(spans []Span, regular, bold *fonts.Font, size, maxWidth float64) []line {
	var words []word
	for _, span := range spans {
		f := regular
		if span.Bold {
			f = bold
		}
		for _, tok := range strings.Fields(span.Text) {
			words = append(words, word{text: tok, bold: span.Bold, width: f.TextWidth(tok, size)})
		}
	}
	if len(words) == 0 {
		return nil
	}

	spaceW := regular.TextWidth(" ", size)
	var lines []line
	current := line{}
	for _, w := range words {
		needed := w.width
		if len(current.words) > 0 {
			needed += spaceW
		}
		if len(current.words) > 0 && current.width+needed > maxWidth {
			lines = append(lines, current)
			current = line{}
			needed = w.width
		}
		current.words = append(current.words, w)
		current.width += needed
	}
	lines = append(lines, current)
	return lines
}
