package ras

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"remap.dev/pkg/remap/internal/domain/access"
	"remap.dev/pkg/remap/internal/domain/descriptor"
	"remap.dev/pkg/remap/internal/domain/linescan"
	"remap.dev/pkg/remap/internal/domain/lookup"
	m "remap.dev/pkg/remap/internal/model"
)

// Option configures Transform.
type Option func(*options)

type options struct {
	path m.Path
	hook func(m.Instruction)
}

// WithPath labels log entries and diagnostics with the file being transformed.
func WithPath(path m.Path) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithInstructionHook observes every validated instruction, expressed in the
// remapped namespace.
func WithInstructionHook(hook func(m.Instruction)) Option {
	return func(o *options) {
		o.hook = hook
	}
}

// Transform reads a RAS file from r, rewrites the symbols of every record
// through lk and writes the result to w.
//
// Invalid records are logged and dropped. A bad header or a record that
// changes visibility inconsistently aborts the file; nothing is written to w
// in that case.
func Transform(r io.Reader, w io.Writer, lk lookup.Lookup, opts ...Option) (m.TransformReport, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	report := m.TransformReport{Path: o.path, Format: m.FormatRAS}

	var out bytes.Buffer

	sc := linescan.NewScanner(r)

	p := scanner{}

	for sc.Scan() {
		report.Lines++

		text, err := transformLine(p.parse(report.Lines, sc.Text()), lk, &o, &report)
		if err != nil {
			report.Err = err
			slog.Error("ras transform aborted", "path", o.path, "line", report.Lines, "error", err)

			return report, err
		}

		if text != nil {
			out.WriteString(*text)
			out.WriteByte('\n')
		}
	}

	if err := sc.Err(); err != nil {
		report.Err = fmt.Errorf("read ras: %w", err)
		return report, report.Err
	}

	if !p.seenHeader {
		report.Err = fmt.Errorf("%w: missing RAS header", m.ErrFormat)
		return report, report.Err
	}

	if _, err := out.WriteTo(w); err != nil {
		report.Err = fmt.Errorf("write ras: %w", err)
		return report, report.Err
	}

	return report, nil
}

// transformLine returns the output text of one line, or nil if it is dropped.
func transformLine(l line, lk lookup.Lookup, o *options, report *m.TransformReport) (*string, error) {
	switch v := l.(type) {
	case commentLine:
		return &v.text, nil
	case headerLine:
		return &v.text, nil
	case malformedLine:
		if v.fatal {
			return nil, m.NewLineError(v.number(), v.text, v.err)
		}

		drop(o, report, v.number(), v.text, v.err)

		return nil, nil
	case recordLine:
		insn, err := validate(v)
		if isFatal(err) {
			return nil, m.NewLineError(v.number(), v.text, err)
		}

		if err != nil {
			drop(o, report, v.number(), v.text, err)
			return nil, nil
		}

		if v.lenient {
			slog.Warn("ras record without scope marker, assuming ' '", "path", o.path, "line", v.number())
		}

		text := remap(v, &insn, lk)
		report.Remapped++

		if o.hook != nil {
			o.hook(insn)
		}

		return &text, nil
	}

	return nil, nil
}

func drop(o *options, report *m.TransformReport, n int, text string, err error) {
	slog.Error("dropping ras line", "path", o.path, "line", n, "error", err)
	report.AddDiagnostic(n, text, err)
}

// fatalError marks a record error that aborts the whole file.
type fatalError struct {
	error
}

func (e fatalError) Unwrap() error { return e.error }

func isFatal(err error) bool {
	_, ok := err.(fatalError)
	return ok
}

// validate checks a record against the access flag catalog and returns the
// instruction it describes, still in the source namespace.
func validate(rec recordLine) (m.Instruction, error) {
	insn := m.Instruction{
		Scope:       rec.scope,
		Prefix:      rec.prefix,
		CompileOnly: rec.prefix == m.PrefixCompileOnly,
		Target:      m.MemberKey{Owner: rec.field(rec.class)},
	}

	from, err := access.Parse(rec.field(rec.from))
	if err != nil {
		return insn, fmt.Errorf("%w: %w", m.ErrValidation, err)
	}

	to, err := access.Parse(rec.field(rec.to))
	if err != nil {
		return insn, fmt.Errorf("%w: %w", m.ErrValidation, err)
	}

	insn.From, insn.To = from, to

	if from.Category == m.CategoryModule || to.Category == m.CategoryModule {
		return insn, fmt.Errorf("%w: module access flags are not supported", m.ErrValidation)
	}

	if !access.Compatible(from.Category, to.Category) {
		return insn, fmt.Errorf("%w: cannot change %s access into %s access", m.ErrValidation, from.Category, to.Category)
	}

	target := m.CategoryClass

	if rec.desc != nil {
		insn.Target.Name = rec.field(*rec.name)
		insn.Target.Desc = rec.field(*rec.desc)

		if descriptor.IsMethod(insn.Target.Desc) {
			target = m.CategoryMethod
			err = descriptor.ValidateMethod(insn.Target.Desc)
		} else {
			target = m.CategoryField
			err = descriptor.ValidateField(insn.Target.Desc)
		}

		if err != nil {
			return insn, err
		}
	}

	if !access.Compatible(from.Category, target) || !access.Compatible(to.Category, target) {
		return insn, fmt.Errorf("%w: %s/%s flags cannot decorate a %s", m.ErrValidation, from.Category, to.Category, target)
	}

	if from.Bits != 0 && to.Bits != 0 {
		fromVisible, toVisible := access.TouchesVisibility(from.Bits), access.TouchesVisibility(to.Bits)

		switch {
		case fromVisible != toVisible:
			return insn, fatalError{fmt.Errorf("%w: only one side of %s -> %s changes visibility",
				m.ErrFormat, rec.field(rec.from), rec.field(rec.to))}
		case !fromVisible && from.Bits != to.Bits:
			return insn, fatalError{fmt.Errorf("%w: %s -> %s changes flags without changing visibility",
				m.ErrFormat, rec.field(rec.from), rec.field(rec.to))}
		}
	}

	return insn, nil
}

// remap substitutes the class, member name and descriptor of rec and keeps
// every other byte of the line. insn.Target is updated to the new names.
func remap(rec recordLine, insn *m.Instruction, lk lookup.Lookup) string {
	owner := insn.Target.Owner
	target := m.MemberKey{Owner: lk.RemappedClassName(owner)}
	replacements := []linescan.Replacement{{At: rec.class, With: target.Owner}}

	if rec.desc != nil {
		name, desc := insn.Target.Name, insn.Target.Desc

		if descriptor.IsMethod(desc) {
			target.Name = lk.RemappedMethodName(owner, name, desc)
			target.Desc = descriptor.RewriteMethod(desc, lk)
		} else {
			target.Name = lk.RemappedFieldName(owner, name, desc)
			target.Desc = descriptor.RewriteField(desc, lk)
		}

		replacements = append(replacements,
			linescan.Replacement{At: *rec.name, With: target.Name},
			linescan.Replacement{At: *rec.desc, With: target.Desc})
	}

	insn.Target = target

	text := linescan.Replace(rec.text, replacements...)
	if rec.lenient {
		return string(rune(m.PrefixNone)) + text
	}

	return text
}
