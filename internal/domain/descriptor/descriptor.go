// Package descriptor rewrites and validates field and method type descriptors.
package descriptor

import (
	"fmt"
	"strings"

	m "remap.dev/pkg/remap/internal/model"
)

// ClassRemapper maps an internal class name to its remapped form.
type ClassRemapper interface {
	RemappedClassName(name string) string
}

// ClassRemapperFunc adapts a function to ClassRemapper.
type ClassRemapperFunc func(name string) string

// RemappedClassName implements ClassRemapper.
func (f ClassRemapperFunc) RemappedClassName(name string) string {
	return f(name)
}

// IsMethod reports whether desc is a method descriptor.
func IsMethod(desc string) bool {
	return strings.HasPrefix(desc, "(")
}

// RewriteField substitutes every L<class>; reference in a field descriptor.
func RewriteField(desc string, remapper ClassRemapper) string {
	var sb strings.Builder

	sb.Grow(len(desc))
	rewrite(&sb, desc, remapper)

	return sb.String()
}

// RewriteMethod substitutes class references in every parameter and in the
// return type of a method descriptor. Parameter order and arity are preserved.
func RewriteMethod(desc string, remapper ClassRemapper) string {
	// The scan is identical: '(' and ')' are copied like primitive markers.
	return RewriteField(desc, remapper)
}

// rewrite copies desc into sb, replacing the name of every object type.
// An unterminated object type is copied verbatim.
func rewrite(sb *strings.Builder, desc string, remapper ClassRemapper) {
	for i := 0; i < len(desc); i++ {
		c := desc[i]
		if c != 'L' {
			sb.WriteByte(c)
			continue
		}

		end := strings.IndexByte(desc[i:], ';')
		if end < 0 {
			sb.WriteString(desc[i:])
			return
		}

		sb.WriteByte('L')
		sb.WriteString(remapper.RemappedClassName(desc[i+1 : i+end]))
		sb.WriteByte(';')

		i += end
	}
}

// ValidateField checks that desc is exactly one field type.
func ValidateField(desc string) error {
	n, err := fieldType(desc, 0)
	if err != nil {
		return err
	}

	if n != len(desc) {
		return fmt.Errorf("%w: trailing data in field descriptor %q", m.ErrValidation, desc)
	}

	return nil
}

// ValidateMethod checks that desc is a well-formed method descriptor.
func ValidateMethod(desc string) error {
	if !IsMethod(desc) {
		return fmt.Errorf("%w: method descriptor %q must start with '('", m.ErrValidation, desc)
	}

	pos := 1
	for pos < len(desc) && desc[pos] != ')' {
		next, err := fieldType(desc, pos)
		if err != nil {
			return err
		}

		pos = next
	}

	if pos >= len(desc) {
		return fmt.Errorf("%w: unterminated parameter list in %q", m.ErrValidation, desc)
	}

	pos++
	if pos < len(desc) && desc[pos] == 'V' {
		pos++
	} else {
		next, err := fieldType(desc, pos)
		if err != nil {
			return err
		}

		pos = next
	}

	if pos != len(desc) {
		return fmt.Errorf("%w: trailing data in method descriptor %q", m.ErrValidation, desc)
	}

	return nil
}

// fieldType parses one field type starting at pos and returns the offset after it.
func fieldType(desc string, pos int) (int, error) {
	for pos < len(desc) && desc[pos] == '[' {
		pos++
	}

	if pos >= len(desc) {
		return pos, fmt.Errorf("%w: truncated descriptor %q", m.ErrValidation, desc)
	}

	switch desc[pos] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return pos + 1, nil
	case 'L':
		end := strings.IndexByte(desc[pos:], ';')
		if end <= 1 {
			return pos, fmt.Errorf("%w: bad object type in %q", m.ErrValidation, desc)
		}

		return pos + end + 1, nil
	default:
		return pos, fmt.Errorf("%w: unexpected %q in descriptor %q", m.ErrValidation, desc[pos], desc)
	}
}
