package lookup

import (
	"sort"

	"remap.dev/pkg/remap/internal/domain/descriptor"
	m "remap.dev/pkg/remap/internal/model"
)

// Table is an immutable map-backed Lookup from one namespace to another.
// A Table is safe for concurrent use once constructed.
type Table struct {
	from    m.Namespace
	to      m.Namespace
	classes map[string]string
	fields  map[m.MemberKey]string
	methods map[m.MemberKey]string
}

// NewTable builds a single-hop table from entries. Later entries for the same
// key replace earlier ones.
func NewTable(from, to m.Namespace, entries []m.MappingEntry) *Table {
	t := &Table{
		from:    from,
		to:      to,
		classes: make(map[string]string),
		fields:  make(map[m.MemberKey]string),
		methods: make(map[m.MemberKey]string),
	}

	for _, e := range entries {
		switch e.Kind {
		case m.KindClass:
			t.classes[e.Name] = e.Target
		case m.KindField:
			t.fields[e.Key()] = e.Target
		case m.KindMethod:
			t.methods[e.Key()] = e.Target
		}
	}

	return t
}

// RemappedClassName implements Lookup.
func (t *Table) RemappedClassName(src string) string {
	if dst, ok := t.classes[src]; ok {
		return dst
	}

	return src
}

// RemappedClassNameFast implements Lookup.
func (t *Table) RemappedClassNameFast(src string) (string, bool) {
	dst, ok := t.classes[src]
	return dst, ok
}

// RemappedFieldName implements Lookup.
func (t *Table) RemappedFieldName(owner, name, desc string) string {
	if dst, ok := t.fields[m.MemberKey{Owner: owner, Name: name, Desc: desc}]; ok {
		return dst
	}

	return name
}

// RemappedMethodName implements Lookup.
func (t *Table) RemappedMethodName(owner, name, desc string) string {
	if dst, ok := t.methods[m.MemberKey{Owner: owner, Name: name, Desc: desc}]; ok {
		return dst
	}

	return name
}

// Namespaces returns the source and destination namespaces, which may be empty.
func (t *Table) Namespaces() (m.Namespace, m.Namespace) {
	return t.from, t.to
}

// Len returns the number of class, field and method entries.
func (t *Table) Len() (classes, fields, methods int) {
	return len(t.classes), len(t.fields), len(t.methods)
}

// Entries lists every entry: classes first, then fields, then methods, each
// sorted by owner, name and descriptor.
func (t *Table) Entries() []m.MappingEntry {
	entries := make([]m.MappingEntry, 0, len(t.classes)+len(t.fields)+len(t.methods))

	classNames := make([]string, 0, len(t.classes))
	for name := range t.classes {
		classNames = append(classNames, name)
	}

	sort.Strings(classNames)

	for _, name := range classNames {
		entries = append(entries, m.ClassMapping(name, t.classes[name]))
	}

	for _, key := range sortedKeys(t.fields) {
		entries = append(entries, m.FieldMapping(key.Owner, key.Name, key.Desc, t.fields[key]))
	}

	for _, key := range sortedKeys(t.methods) {
		entries = append(entries, m.MethodMapping(key.Owner, key.Name, key.Desc, t.methods[key]))
	}

	return entries
}

// Inverse returns the table mapping back from the destination namespace.
// Member owners and descriptors are rewritten through the class map so the
// inverse keys are expressed in the destination namespace.
func (t *Table) Inverse() *Table {
	entries := make([]m.MappingEntry, 0, len(t.classes)+len(t.fields)+len(t.methods))

	for src, dst := range t.classes {
		entries = append(entries, m.ClassMapping(dst, src))
	}

	for key, dst := range t.fields {
		entries = append(entries, m.FieldMapping(
			t.RemappedClassName(key.Owner), dst, descriptor.RewriteField(key.Desc, t), key.Name))
	}

	for key, dst := range t.methods {
		entries = append(entries, m.MethodMapping(
			t.RemappedClassName(key.Owner), dst, descriptor.RewriteMethod(key.Desc, t), key.Name))
	}

	return NewTable(t.to, t.from, entries)
}

func sortedKeys(members map[m.MemberKey]string) []m.MemberKey {
	keys := make([]m.MemberKey, 0, len(members))
	for key := range members {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Owner != keys[j].Owner {
			return keys[i].Owner < keys[j].Owner
		}

		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}

		return keys[i].Desc < keys[j].Desc
	})

	return keys
}
