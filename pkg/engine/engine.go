// Package engine is the embeddable API of remap: compose tiny mappings and
// rewrite access transformer and access widener text through them.
package engine

import (
	"strings"

	"remap.dev/pkg/remap/internal/domain/lookup"
	"remap.dev/pkg/remap/internal/domain/ras"
	"remap.dev/pkg/remap/internal/domain/tiny"
	"remap.dev/pkg/remap/internal/domain/widener"
	m "remap.dev/pkg/remap/internal/model"
)

// Lookup resolves class, field and method names to their remapped form.
type Lookup = lookup.Lookup

// Source is a single-hop mapping accepted by BuildLookup.
type Source = lookup.Source

// Table is an immutable mapping table. It implements both Lookup and Source.
type Table = lookup.Table

// Namespace names one view of symbol names, such as "official" or "named".
type Namespace = m.Namespace

// MappingEntry is a single class, field or method rename.
type MappingEntry = m.MappingEntry

// NewTable builds a single-hop table from entries. Later entries for the same
// key replace earlier ones.
func NewTable(from, to Namespace, entries []MappingEntry) *Table {
	return lookup.NewTable(from, to, entries)
}

// ClassMapping renames the class src to dst.
func ClassMapping(src, dst string) MappingEntry {
	return m.ClassMapping(src, dst)
}

// FieldMapping renames a field. Owner and descriptor use source namespace names.
func FieldMapping(owner, name, desc, dst string) MappingEntry {
	return m.FieldMapping(owner, name, desc, dst)
}

// MethodMapping renames a method. Owner and descriptor use source namespace names.
func MethodMapping(owner, name, desc, dst string) MappingEntry {
	return m.MethodMapping(owner, name, desc, dst)
}

// Errors reported by the engine. Use errors.Is to test for them.
var (
	ErrFormat           = m.ErrFormat
	ErrValidation       = m.ErrValidation
	ErrUnknownToken     = m.ErrUnknownToken
	ErrChainOrder       = m.ErrChainOrder
	ErrBuilderFinalized = m.ErrBuilderFinalized
)

// LineError locates a fatal error in its input.
type LineError = m.LineError

// ReadTiny parses tiny v1 text. A reversed read maps the destination
// namespace back to the source one.
func ReadTiny(text string, reversed bool) (*Table, error) {
	return tiny.Read(strings.NewReader(text), reversed)
}

// BuildLookup composes single-hop sources, given in chain order, into one
// lookup from the first namespace to the last.
func BuildLookup(sources ...Source) (Lookup, error) {
	table, err := lookup.BuildLookup(sources...)
	if err != nil {
		return nil, err
	}

	return table, nil
}

// TransformRAS rewrites the symbols of a RAS file. Invalid lines are dropped.
func TransformRAS(text string, lk Lookup) (string, error) {
	var out strings.Builder

	if _, err := ras.Transform(strings.NewReader(text), &out, lk); err != nil {
		return "", err
	}

	return out.String(), nil
}

// TransformAccessWidener rewrites the symbols of an access widener file.
// Entries whose operation does not apply to their target are dropped.
func TransformAccessWidener(text string, lk Lookup) (string, error) {
	var out strings.Builder

	if _, _, err := widener.Transform(strings.NewReader(text), &out, lk); err != nil {
		return "", err
	}

	return out.String(), nil
}
