// Package widener transforms access widener files so that the symbols they
// reference follow a renaming, and derives the access flag edit of each entry.
package widener

import (
	"fmt"
	"strings"

	"remap.dev/pkg/remap/internal/domain/linescan"
	m "remap.dev/pkg/remap/internal/model"
)

const (
	magic = "accessWidener"

	headerColumns = 3
	classFields   = 3
	memberFields  = 5

	compileOnlyMarker = "compileOnly"
	// emittedMarker is how a compileOnly entry is written back: a comment to
	// consumers that only know the plain grammar.
	emittedMarker = "#" + compileOnlyMarker + " "
)

var operations = map[string]m.WidenerOperation{
	string(m.OpAccessible):  m.OpAccessible,
	string(m.OpExtendable):  m.OpExtendable,
	string(m.OpMutable):     m.OpMutable,
	string(m.OpNatural):     m.OpNatural,
	string(m.OpDenumerised): m.OpDenumerised,
}

var kinds = map[string]m.EntryKind{
	"class":  m.KindClass,
	"field":  m.KindField,
	"method": m.KindMethod,
}

type line interface {
	number() int
}

type lineNo int

func (n lineNo) number() int { return int(n) }

// passLine is a header, blank or comment line copied unchanged.
type passLine struct {
	lineNo
	text string
}

type headerLine struct {
	lineNo
	text      string
	version   string
	namespace string
	nsSpan    linescan.Span
}

type entryLine struct {
	lineNo
	// body is the line without any compileOnly marker.
	body        string
	compileOnly bool
	op          m.WidenerOperation
	kind        m.EntryKind
	class       linescan.Span
	name        *linescan.Span
	desc        *linescan.Span
}

func (e entryLine) field(s linescan.Span) string {
	return s.Of(e.body)
}

type malformedLine struct {
	lineNo
	text string
	err  error
}

type scanner struct {
	seenHeader bool
}

func (s *scanner) parse(n int, text string) line {
	compileOnly := false
	body := text

	if rest, ok := strings.CutPrefix(strings.TrimLeft(text, " \t"), emittedMarker); ok && s.seenHeader && isEntry(rest) {
		compileOnly = true
		body = rest
	} else if linescan.IsBlankOrComment(text) {
		return passLine{lineNo(n), text}
	}

	if !s.seenHeader {
		s.seenHeader = true
		return parseHeader(n, text)
	}

	return parseEntry(n, body, compileOnly)
}

// isEntry reports whether text starts with a known operation and target kind.
func isEntry(text string) bool {
	fields := strings.Fields(linescan.StripComment(text))
	if len(fields) < 2 {
		return false
	}

	_, knownOp := operations[fields[0]]
	_, knownKind := kinds[fields[1]]

	return knownOp && knownKind
}

func parseHeader(n int, text string) line {
	spans := linescan.Fields(linescan.StripComment(text), 0)

	if len(spans) != headerColumns || spans[0].Of(text) != magic {
		return malformedLine{lineNo(n), text,
			fmt.Errorf("%w: header must be %q <version> <namespace>", m.ErrFormat, magic)}
	}

	return headerLine{lineNo(n), text, spans[1].Of(text), spans[2].Of(text), spans[2]}
}

func parseEntry(n int, body string, compileOnly bool) line {
	fail := func(format string, args ...any) line {
		return malformedLine{lineNo(n), body, fmt.Errorf("%w: "+format, append([]any{m.ErrFormat}, args...)...)}
	}

	spans := linescan.Fields(linescan.StripComment(body), 0)
	if len(spans) > 0 && spans[0].Of(body) == compileOnlyMarker {
		if len(spans) == 1 {
			return fail("%s marker without an entry", compileOnlyMarker)
		}

		compileOnly = true
		body = body[spans[1].Start:]
		spans = linescan.Fields(linescan.StripComment(body), 0)
	}

	if len(spans) < 2 {
		return fail("expected <operation> <class|field|method> ...")
	}

	op, ok := operations[spans[0].Of(body)]
	if !ok {
		return fail("unknown operation %q", spans[0].Of(body))
	}

	kind, ok := kinds[spans[1].Of(body)]
	if !ok {
		return fail("unknown target kind %q", spans[1].Of(body))
	}

	want := memberFields
	if kind == m.KindClass {
		want = classFields
	}

	if len(spans) != want {
		return fail("%s entries take %d fields, got %d", spans[1].Of(body), want, len(spans))
	}

	entry := entryLine{lineNo: lineNo(n), body: body, compileOnly: compileOnly, op: op, kind: kind, class: spans[2]}
	if kind != m.KindClass {
		entry.name, entry.desc = &spans[3], &spans[4]
	}

	return entry
}
