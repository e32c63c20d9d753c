// Package lookup provides read-only renaming functions over classes, fields
// and methods, their per-query chaining and the composer that collapses
// several single-hop mappings into one table.
package lookup

// Lookup answers renaming queries. Unknown symbols are returned unchanged.
type Lookup interface {
	// RemappedClassName returns the new internal name of a class, or src.
	RemappedClassName(src string) string

	// RemappedClassNameFast reports whether src is known, so callers can tell
	// "no mapping" apart from "mapped to itself".
	RemappedClassNameFast(src string) (string, bool)

	// RemappedFieldName returns the new name of the field, or name.
	RemappedFieldName(owner, name, desc string) string

	// RemappedMethodName returns the new name of the method, or name.
	RemappedMethodName(owner, name, desc string) string
}

// Identity is a Lookup that knows no symbols.
type Identity struct{}

// RemappedClassName implements Lookup.
func (Identity) RemappedClassName(src string) string {
	return src
}

// RemappedClassNameFast implements Lookup.
func (Identity) RemappedClassNameFast(string) (string, bool) {
	return "", false
}

// RemappedFieldName implements Lookup.
func (Identity) RemappedFieldName(_, name, _ string) string {
	return name
}

// RemappedMethodName implements Lookup.
func (Identity) RemappedMethodName(_, name, _ string) string {
	return name
}
