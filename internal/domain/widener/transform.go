package widener

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
	path      m.Path
	namespace string
}

// WithPath labels log entries and diagnostics with the file being transformed.
func WithPath(path m.Path) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithNamespace rewrites the namespace named by the header.
func WithNamespace(namespace m.Namespace) Option {
	return func(o *options) {
		o.namespace = string(namespace)
	}
}

// Transform reads an access widener file from r, rewrites the symbols of every
// entry through lk and writes the result to w. It returns the access flag edit
// of every emitted entry, expressed in the remapped namespace.
//
// Malformed entries abort the file and nothing is written to w. Entries whose
// operation does not apply to their target kind are logged and dropped.
func Transform(r io.Reader, w io.Writer, lk lookup.Lookup, opts ...Option) (m.TransformReport, []m.Directive, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	report := m.TransformReport{Path: o.path, Format: m.FormatWidener}

	var (
		out        bytes.Buffer
		directives []m.Directive
	)

	sc := linescan.NewScanner(r)
	p := scanner{}

	fail := func(err error) (m.TransformReport, []m.Directive, error) {
		report.Err = err
		slog.Error("access widener transform aborted", "path", o.path, "line", report.Lines, "error", err)

		return report, nil, err
	}

	for sc.Scan() {
		report.Lines++

		switch v := p.parse(report.Lines, sc.Text()).(type) {
		case passLine:
			out.WriteString(v.text)
		case headerLine:
			out.WriteString(rewriteHeader(v, o.namespace))
		case malformedLine:
			return fail(m.NewLineError(v.number(), v.text, v.err))
		case entryLine:
			directive, err := validate(v)
			if err != nil {
				slog.Error("dropping access widener entry", "path", o.path, "line", v.number(), "error", err)
				report.AddDiagnostic(v.number(), v.body, err)

				continue
			}

			text := remap(v, &directive, lk)
			if v.compileOnly {
				text = emittedMarker + text
			}

			out.WriteString(text)

			report.Remapped++

			directives = append(directives, directive)
		}

		out.WriteByte('\n')
	}

	if err := sc.Err(); err != nil {
		return fail(fmt.Errorf("read access widener: %w", err))
	}

	if !p.seenHeader {
		return fail(fmt.Errorf("%w: missing %s header", m.ErrFormat, magic))
	}

	if _, err := out.WriteTo(w); err != nil {
		return fail(fmt.Errorf("write access widener: %w", err))
	}

	return report, directives, nil
}

func rewriteHeader(h headerLine, namespace string) string {
	if namespace == "" || namespace == h.namespace {
		return h.text
	}

	return linescan.Replace(h.text, linescan.Replacement{At: h.nsSpan, With: namespace})
}

// validate checks that the operation applies to the target kind and returns
// its directive, still in the source namespace.
func validate(e entryLine) (m.Directive, error) {
	d := m.Directive{
		Operation:   e.op,
		Kind:        e.kind,
		Target:      m.MemberKey{Owner: e.field(e.class)},
		CompileOnly: e.compileOnly,
	}

	if e.kind != m.KindClass {
		d.Target.Name = e.field(*e.name)
		d.Target.Desc = e.field(*e.desc)

		var err error
		if e.kind == m.KindMethod {
			err = descriptor.ValidateMethod(d.Target.Desc)
		} else {
			err = descriptor.ValidateField(d.Target.Desc)
		}

		if err != nil {
			return d, err
		}
	}

	add, remove, ok := edit(e.op, e.kind)
	if !ok {
		return d, fmt.Errorf("%w: %s does not apply to a %s", m.ErrValidation, e.op, e.kind)
	}

	d.Add, d.Remove = add, remove

	return d, nil
}

// edit returns the flags an operation sets and clears on a target kind.
func edit(op m.WidenerOperation, kind m.EntryKind) (add, remove uint32, ok bool) {
	switch op {
	case m.OpAccessible:
		if kind == m.KindMethod {
			return access.Public, access.Private | access.Protected | access.Final, true
		}

		return access.Public, access.Private | access.Protected, true
	case m.OpExtendable:
		switch kind {
		case m.KindClass:
			return access.Public, access.Private | access.Protected | access.Final, true
		case m.KindMethod:
			return access.Protected, access.Private | access.Final, true
		}
	case m.OpMutable:
		if kind == m.KindField {
			return 0, access.Final, true
		}
	case m.OpNatural:
		return 0, access.Synthetic, true
	case m.OpDenumerised:
		if kind != m.KindMethod {
			return 0, access.Enum, true
		}
	}

	return 0, 0, false
}

// remap substitutes the class, member name and descriptor of e. d.Target is
// updated to the new names.
func remap(e entryLine, d *m.Directive, lk lookup.Lookup) string {
	owner := d.Target.Owner
	target := m.MemberKey{Owner: lk.RemappedClassName(owner)}
	replacements := []linescan.Replacement{{At: e.class, With: target.Owner}}

	switch e.kind {
	case m.KindMethod:
		target.Name = lk.RemappedMethodName(owner, d.Target.Name, d.Target.Desc)
		target.Desc = descriptor.RewriteMethod(d.Target.Desc, lk)
	case m.KindField:
		target.Name = lk.RemappedFieldName(owner, d.Target.Name, d.Target.Desc)
		target.Desc = descriptor.RewriteField(d.Target.Desc, lk)
	}

	if e.kind != m.KindClass {
		replacements = append(replacements,
			linescan.Replacement{At: *e.name, With: target.Name},
			linescan.Replacement{At: *e.desc, With: target.Desc})
	}

	d.Target = target

	return linescan.Replace(e.body, replacements...)
}
