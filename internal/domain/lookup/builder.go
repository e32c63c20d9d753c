package lookup

import (
	"fmt"
	"log/slog"
	"sort"

	"remap.dev/pkg/remap/internal/domain/descriptor"
	m "remap.dev/pkg/remap/internal/model"
)

// Source is one single-hop mapping fed to a Builder.
type Source interface {
	// Namespaces returns the source and destination namespace. Empty
	// namespaces disable the chain order check for this source.
	Namespaces() (m.Namespace, m.Namespace)

	// Entries lists the renames of this hop.
	Entries() []m.MappingEntry
}

// Builder collapses ordered single-hop mappings into one table from the first
// namespace straight to the last one. Sources must be merged in chain order:
// ascending for a forward mapping, descending (with reversed sources) for an
// undo mapping. A Builder is owned by a single goroutine until Finalize.
type Builder struct {
	from   m.Namespace
	to     m.Namespace
	merged int
	done   bool

	// classes maps a root class name to its name in the last merged namespace.
	classes map[string]string
	// fields and methods map a root member key to its image in the last merged namespace.
	fields  map[m.MemberKey]m.MemberKey
	methods map[m.MemberKey]m.MemberKey
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		classes: make(map[string]string),
		fields:  make(map[m.MemberKey]m.MemberKey),
		methods: make(map[m.MemberKey]m.MemberKey),
	}
}

// Merge folds one more hop into the table.
//
// An incoming class pair whose source is already the value of an entry
// continues that entry's chain and replaces its value; any other pair becomes
// a new entry. All pairs of one source are matched against the state before
// the call, so a source can never chain onto itself.
func (b *Builder) Merge(src Source) error {
	if b.done {
		return m.ErrBuilderFinalized
	}

	from, to := src.Namespaces()
	if b.merged > 0 && from != "" && b.to != "" && from != b.to {
		return fmt.Errorf("%w: source maps %s -> %s but the chain ends at %s", m.ErrChainOrder, from, to, b.to)
	}

	if b.merged == 0 {
		b.from = from
	}

	hop := NewTable(from, to, src.Entries())
	roots := b.rootIndex()

	classes := b.classes

	b.mergeClasses(hop, roots)
	b.fields = b.mergeMembers(b.fields, hop.fields, hop, roots, classes, descriptor.RewriteField, hop.RemappedFieldName)
	b.methods = b.mergeMembers(b.methods, hop.methods, hop, roots, classes, descriptor.RewriteMethod, hop.RemappedMethodName)

	b.to = to
	b.merged++

	classCount, fields, methods := hop.Len()
	slog.Debug("merged mapping source",
		"from", from, "to", to, "classes", classCount, "fields", fields, "methods", methods, "hop", b.merged)

	return nil
}

// rootIndex maps a class name of the last merged namespace back to the root
// names that currently resolve to it.
func (b *Builder) rootIndex() map[string][]string {
	index := make(map[string][]string, len(b.classes))
	for root, current := range b.classes {
		index[current] = append(index[current], root)
	}

	for _, names := range index {
		sort.Strings(names)
	}

	return index
}

// reachable reports whether a class of the last merged namespace has a root
// name. A class that an earlier hop renamed away is only reachable when some
// other root now resolves to it.
func reachable(roots map[string][]string, classes map[string]string, current string) bool {
	if _, ok := roots[current]; ok {
		return true
	}

	_, renamed := classes[current]

	return !renamed
}

// memberReachable checks the owner and every class referenced by the descriptor.
func memberReachable(roots map[string][]string, classes map[string]string, key m.MemberKey, rewrite rewriteFunc) bool {
	ok := reachable(roots, classes, key.Owner)

	rewrite(key.Desc, descriptor.ClassRemapperFunc(func(name string) string {
		ok = ok && reachable(roots, classes, name)
		return name
	}))

	return ok
}

// rootName resolves a class of the last merged namespace to its root name.
func (b *Builder) rootName(roots map[string][]string, current string) string {
	if names, ok := roots[current]; ok {
		return names[0]
	}

	return current
}

func (b *Builder) mergeClasses(hop *Table, roots map[string][]string) {
	next := make(map[string]string, len(b.classes)+len(hop.classes))
	for root, current := range b.classes {
		next[root] = current
	}

	sources := make([]string, 0, len(hop.classes))
	for name := range hop.classes {
		sources = append(sources, name)
	}

	sort.Strings(sources)

	for _, src := range sources {
		dst := hop.classes[src]

		if names, ok := roots[src]; ok {
			for _, root := range names {
				next[root] = dst
			}

			continue
		}

		if !reachable(roots, b.classes, src) {
			slog.Warn("class has no preimage in the root namespace, skipping", "class", src, "target", dst)
			continue
		}

		next[src] = dst
	}

	b.classes = next
}

type rewriteFunc func(desc string, remapper descriptor.ClassRemapper) string

func (b *Builder) mergeMembers(
	existing map[m.MemberKey]m.MemberKey,
	incoming map[m.MemberKey]string,
	hop *Table,
	roots map[string][]string,
	classes map[string]string,
	rewrite rewriteFunc,
	rename func(owner, name, desc string) string,
) map[m.MemberKey]m.MemberKey {
	next := make(map[m.MemberKey]m.MemberKey, len(existing)+len(incoming))
	consumed := make(map[m.MemberKey]struct{})

	for root, current := range existing {
		if _, ok := incoming[current]; ok {
			consumed[current] = struct{}{}
		}

		next[root] = m.MemberKey{
			Owner: hop.RemappedClassName(current.Owner),
			Name:  rename(current.Owner, current.Name, current.Desc),
			Desc:  rewrite(current.Desc, hop),
		}
	}

	toRoot := descriptor.ClassRemapperFunc(func(name string) string {
		return b.rootName(roots, name)
	})

	for key, dst := range incoming {
		if _, ok := consumed[key]; ok {
			continue
		}

		if !memberReachable(roots, classes, key, rewrite) {
			slog.Warn("member has no preimage in the root namespace, skipping", "member", key.String(), "target", dst)
			continue
		}

		root := m.MemberKey{
			Owner: b.rootName(roots, key.Owner),
			Name:  key.Name,
			Desc:  rewrite(key.Desc, toRoot),
		}

		if _, taken := next[root]; taken {
			slog.Warn("member has no preimage in the root namespace, skipping", "member", key.String(), "target", dst)
			continue
		}

		next[root] = m.MemberKey{
			Owner: hop.RemappedClassName(key.Owner),
			Name:  dst,
			Desc:  rewrite(key.Desc, hop),
		}
	}

	return next
}

// Finalize freezes the accumulated mapping. The builder cannot be used afterwards.
func (b *Builder) Finalize() *Table {
	t := &Table{
		from:    b.from,
		to:      b.to,
		classes: b.classes,
		fields:  make(map[m.MemberKey]string, len(b.fields)),
		methods: make(map[m.MemberKey]string, len(b.methods)),
	}

	for root, current := range b.fields {
		t.fields[root] = current.Name
	}

	for root, current := range b.methods {
		t.methods[root] = current.Name
	}

	b.done = true
	b.classes = nil
	b.fields = nil
	b.methods = nil

	return t
}

// BuildLookup merges sources in order and freezes the result.
func BuildLookup(sources ...Source) (*Table, error) {
	b := NewBuilder()

	for i, src := range sources {
		if err := b.Merge(src); err != nil {
			return nil, fmt.Errorf("merge source %d: %w", i, err)
		}
	}

	return b.Finalize(), nil
}
