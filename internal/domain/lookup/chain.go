package lookup

import (
	"remap.dev/pkg/remap/internal/domain/descriptor"
)

// ChainLookup composes lookups for a single query. Each delegate only knows
// symbols expressed in the namespace produced by the delegate before it, so
// owner and descriptor are advanced after every step.
type ChainLookup struct {
	delegates []Lookup
}

// Chain returns a lookup that queries delegates in order.
func Chain(delegates ...Lookup) *ChainLookup {
	return &ChainLookup{delegates: append([]Lookup(nil), delegates...)}
}

// RemappedClassName implements Lookup.
func (c *ChainLookup) RemappedClassName(src string) string {
	for _, l := range c.delegates {
		src = l.RemappedClassName(src)
	}

	return src
}

// RemappedClassNameFast implements Lookup. The name is known if any delegate
// knew it along the way.
func (c *ChainLookup) RemappedClassNameFast(src string) (string, bool) {
	known := false

	for _, l := range c.delegates {
		if dst, ok := l.RemappedClassNameFast(src); ok {
			src = dst
			known = true
		}
	}

	if !known {
		return "", false
	}

	return src, true
}

// RemappedFieldName implements Lookup.
func (c *ChainLookup) RemappedFieldName(owner, name, desc string) string {
	for _, l := range c.delegates {
		name = l.RemappedFieldName(owner, name, desc)
		owner = l.RemappedClassName(owner)
		desc = descriptor.RewriteField(desc, l)
	}

	return name
}

// RemappedMethodName implements Lookup.
func (c *ChainLookup) RemappedMethodName(owner, name, desc string) string {
	for _, l := range c.delegates {
		name = l.RemappedMethodName(owner, name, desc)
		owner = l.RemappedClassName(owner)
		desc = descriptor.RewriteMethod(desc, l)
	}

	return name
}
