// Package linescan splits text lines into fields while remembering where each
// field sits, so a field can be replaced without touching the rest of the line.
package linescan

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// MaxLineLength bounds a single line of input.
const MaxLineLength = 1024 * 1024

// Span is a half-open byte range of a line.
type Span struct {
	Start, End int
}

// Of returns the text covered by s.
func (s Span) Of(text string) string {
	return text[s.Start:s.End]
}

// Replacement substitutes the text of a span.
type Replacement struct {
	At   Span
	With string
}

// Fields returns the whitespace separated fields of text from offset on.
func Fields(text string, offset int) []Span {
	var spans []Span

	start := -1

	for i := offset; i < len(text); i++ {
		if unicode.IsSpace(rune(text[i])) {
			if start >= 0 {
				spans = append(spans, Span{start, i})
				start = -1
			}

			continue
		}

		if start < 0 {
			start = i
		}
	}

	if start >= 0 {
		spans = append(spans, Span{start, len(text)})
	}

	return spans
}

// StripComment cuts text at the first '#'.
func StripComment(text string) string {
	if idx := strings.IndexByte(text, '#'); idx >= 0 {
		return text[:idx]
	}

	return text
}

// IsBlankOrComment reports whether a line carries no record.
func IsBlankOrComment(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// Replace applies replacements, which must be ordered and non-overlapping.
func Replace(text string, replacements ...Replacement) string {
	var sb strings.Builder

	sb.Grow(len(text))

	last := 0
	for _, r := range replacements {
		sb.WriteString(text[last:r.At.Start])
		sb.WriteString(r.With)
		last = r.At.End
	}

	sb.WriteString(text[last:])

	return sb.String()
}

// NewScanner returns a line scanner accepting lines up to MaxLineLength.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	return sc
}
