// Package tiny reads and writes the tiny v1 mapping format.
//
//	v1	official	named
//	CLASS	a	net/example/Foo
//	FIELD	a	I	b	count
//	METHOD	a	()V	c	tick
package tiny

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"remap.dev/pkg/remap/internal/domain/linescan"
	m "remap.dev/pkg/remap/internal/model"
)

const (
	version = "v1"

	headerColumns = 3
	classColumns  = 3
	memberColumns = 5

	commentMarker = "#"
)

// record is one line of a tiny file.
type record interface {
	line() int
}

type position int

func (p position) line() int { return int(p) }

// commentRecord is a blank or comment-only line.
type commentRecord struct {
	position
}

type headerRecord struct {
	position
	from m.Namespace
	to   m.Namespace
}

type classRecord struct {
	position
	src string
	dst string
}

type memberRecord struct {
	position
	kind  m.EntryKind
	owner string
	desc  string
	src   string
	dst   string
}

// malformedRecord is always fatal in the tiny format.
type malformedRecord struct {
	position
	text string
	err  error
}

// scanner splits a tiny stream into records. Line 1 is always the header.
type scanner struct {
	sc       *bufio.Scanner
	lineNo   int
	seenHead bool
	current  record
	err      error
}

func newScanner(r io.Reader) *scanner {
	return &scanner{sc: linescan.NewScanner(r)}
}

// Scan advances to the next record.
func (s *scanner) Scan() bool {
	if !s.sc.Scan() {
		s.err = s.sc.Err()
		return false
	}

	s.lineNo++
	s.current = s.parse(s.lineNo, s.sc.Text())

	return true
}

// Record returns the current record.
func (s *scanner) Record() record {
	return s.current
}

// Err returns the first read error, if any.
func (s *scanner) Err() error {
	return s.err
}

func (s *scanner) parse(lineNo int, text string) record {
	content := text
	if idx := strings.Index(content, commentMarker); idx >= 0 {
		content = content[:idx]
	}

	fields := strings.Fields(content)

	if !s.seenHead {
		s.seenHead = true
		return parseHeader(lineNo, text, fields)
	}

	if len(fields) == 0 {
		return commentRecord{position(lineNo)}
	}

	return parseBody(lineNo, text, fields)
}

func parseHeader(lineNo int, text string, fields []string) record {
	if len(fields) == 0 {
		return malformedRecord{position(lineNo), text,
			fmt.Errorf("%w: line 1 must be the header", m.ErrFormat)}
	}

	if len(fields) != headerColumns {
		return malformedRecord{position(lineNo), text,
			fmt.Errorf("%w: header must have %d columns, got %d", m.ErrFormat, headerColumns, len(fields))}
	}

	if fields[0] != version {
		return malformedRecord{position(lineNo), text,
			fmt.Errorf("%w: unsupported version %q", m.ErrFormat, fields[0])}
	}

	return headerRecord{position(lineNo), m.Namespace(fields[1]), m.Namespace(fields[2])}
}

func parseBody(lineNo int, text string, fields []string) record {
	switch fields[0] {
	case m.KindClass.String():
		if len(fields) != classColumns {
			return columnMismatch(lineNo, text, fields, classColumns)
		}

		return classRecord{position(lineNo), fields[1], fields[2]}
	case m.KindField.String(), m.KindMethod.String():
		if len(fields) != memberColumns {
			return columnMismatch(lineNo, text, fields, memberColumns)
		}

		kind := m.KindField
		if fields[0] == m.KindMethod.String() {
			kind = m.KindMethod
		}

		return memberRecord{position(lineNo), kind, fields[1], fields[2], fields[3], fields[4]}
	default:
		return malformedRecord{position(lineNo), text,
			fmt.Errorf("%w: unknown record type %q", m.ErrFormat, fields[0])}
	}
}

func columnMismatch(lineNo int, text string, fields []string, want int) record {
	return malformedRecord{position(lineNo), text,
		fmt.Errorf("%w: %s record must have %d columns, got %d", m.ErrFormat, fields[0], want, len(fields))}
}
