// Package ras transforms reversible access setter files so that the symbols
// they reference follow a renaming.
//
//	RAS v1 std
//	# make Foo public everywhere
//	 a ACC_PRIVATE ACC_PUBLIC net/example/Foo
//	@b 0 ACC_PUBLIC net/example/Foo bar I
package ras

import (
	"fmt"
	"strings"

	"remap.dev/pkg/remap/internal/domain/linescan"
	m "remap.dev/pkg/remap/internal/model"
)

const (
	magic = "RAS"

	headerColumns = 3
	classFields   = 4
	memberFields  = 6

	// minLineLength is the shortest body line that can hold a record.
	minLineLength = 9
)

var dialects = map[string]struct{}{
	"std":      {},
	"starrian": {},
	"stian":    {},
}

var versions = map[string]struct{}{
	"1":   {},
	"1.0": {},
	"1.1": {},
}

var scopes = map[string]m.Scope{
	"a":       m.ScopeAll,
	"all":     m.ScopeAll,
	"b":       m.ScopeBuild,
	"build":   m.ScopeBuild,
	"r":       m.ScopeRuntime,
	"runtime": m.ScopeRuntime,
}

// line is one parsed line of a RAS file.
type line interface {
	number() int
}

type lineNo int

func (n lineNo) number() int { return int(n) }

// commentLine is copied to the output unchanged.
type commentLine struct {
	lineNo
	text string
}

type headerLine struct {
	lineNo
	text    string
	version string
	dialect string
}

type recordLine struct {
	lineNo
	text   string
	prefix m.Prefix
	// lenient is set when the prefix marker was missing.
	lenient bool
	scope   m.Scope
	from    linescan.Span
	to      linescan.Span
	class   linescan.Span
	name    *linescan.Span
	desc    *linescan.Span
}

func (r recordLine) field(s linescan.Span) string {
	return s.Of(r.text)
}

// malformedLine is dropped unless fatal is set.
type malformedLine struct {
	lineNo
	text  string
	err   error
	fatal bool
}

// scanner turns raw lines into tagged lines. The first line that is neither
// blank nor a comment must be the header.
type scanner struct {
	seenHeader bool
}

func (s *scanner) parse(n int, text string) line {
	if linescan.IsBlankOrComment(text) {
		return commentLine{lineNo(n), text}
	}

	if !s.seenHeader {
		s.seenHeader = true
		return parseHeader(n, text)
	}

	return parseRecord(n, text)
}

func parseHeader(n int, text string) line {
	fields := strings.Fields(linescan.StripComment(text))

	fatal := func(format string, args ...any) line {
		return malformedLine{lineNo(n), text, fmt.Errorf("%w: "+format, append([]any{m.ErrFormat}, args...)...), true}
	}

	switch {
	case len(fields) < headerColumns:
		return fatal("header needs %d tokens, got %d", headerColumns, len(fields))
	case len(fields) > headerColumns:
		return fatal("unexpected header token %q", fields[headerColumns])
	case fields[0] != magic:
		return fatal("not a RAS file: %q", fields[0])
	}

	if _, ok := versions[strings.TrimPrefix(fields[1], "v")]; !ok {
		return fatal("unsupported version %q", fields[1])
	}

	if _, ok := dialects[fields[2]]; !ok {
		return fatal("unsupported dialect %q", fields[2])
	}

	return headerLine{lineNo(n), text, fields[1], fields[2]}
}

func parseRecord(n int, text string) line {
	drop := func(format string, args ...any) line {
		return malformedLine{lineNo(n), text, fmt.Errorf("%w: "+format, append([]any{m.ErrValidation}, args...)...), false}
	}

	if len(text) < minLineLength {
		return drop("line too short")
	}

	rec := recordLine{lineNo: lineNo(n), text: text, prefix: m.PrefixNone}

	offset := 0

	switch m.Prefix(text[0]) {
	case m.PrefixNone, m.PrefixCompileOnly, m.PrefixStrict:
		rec.prefix = m.Prefix(text[0])
		offset = 1
	default:
		rec.lenient = true
	}

	spans := linescan.Fields(linescan.StripComment(text), offset)
	if len(spans) == 0 || spans[0].Start != offset {
		return drop("scope must follow the %q marker directly", rune(rec.prefix))
	}

	scope, ok := scopes[spans[0].Of(text)]
	if !ok {
		return drop("illegal scope %q", spans[0].Of(text))
	}

	rec.scope = scope

	switch len(spans) {
	case classFields:
	case memberFields:
		rec.name = &spans[4]
		rec.desc = &spans[5]
	default:
		return drop("expected %d or %d fields, got %d", classFields, memberFields, len(spans))
	}

	rec.from, rec.to, rec.class = spans[1], spans[2], spans[3]

	return rec
}
