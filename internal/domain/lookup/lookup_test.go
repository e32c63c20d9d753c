package lookup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"remap.dev/pkg/remap/internal/domain/lookup"
	m "remap.dev/pkg/remap/internal/model"
)

func TestIdentity(t *testing.T) {
	var l lookup.Lookup = lookup.Identity{}

	assert.Equal(t, "a/Foo", l.RemappedClassName("a/Foo"))
	_, ok := l.RemappedClassNameFast("a/Foo")
	assert.False(t, ok)
	assert.Equal(t, "bar", l.RemappedFieldName("a/Foo", "bar", "I"))
	assert.Equal(t, "baz", l.RemappedMethodName("a/Foo", "baz", "()V"))
}

func TestTable_UnknownSymbolsFallBack(t *testing.T) {
	table := lookup.NewTable("official", "named", []m.MappingEntry{
		m.ClassMapping("a", "net/example/Foo"),
		m.ClassMapping("b", "b"),
	})

	assert.Equal(t, "net/example/Foo", table.RemappedClassName("a"))
	assert.Equal(t, "c", table.RemappedClassName("c"))

	dst, ok := table.RemappedClassNameFast("c")
	assert.False(t, ok)
	assert.Empty(t, dst)

	dst, ok = table.RemappedClassNameFast("b")
	assert.True(t, ok, "mapped to itself is still known")
	assert.Equal(t, "b", dst)
}

func TestTable_Members(t *testing.T) {
	table := lookup.NewTable("official", "named", []m.MappingEntry{
		m.FieldMapping("a", "b", "I", "count"),
		m.MethodMapping("a", "b", "()V", "tick"),
	})

	assert.Equal(t, "count", table.RemappedFieldName("a", "b", "I"))
	assert.Equal(t, "b", table.RemappedFieldName("a", "b", "J"), "descriptors compare verbatim")
	assert.Equal(t, "tick", table.RemappedMethodName("a", "b", "()V"))
	assert.Equal(t, "b", table.RemappedMethodName("a", "b", "(I)V"))
	assert.Equal(t, "b", table.RemappedMethodName("a", "b", "I"), "fields and methods are separate tables")
}

func TestTable_Entries(t *testing.T) {
	table := lookup.NewTable("x", "y", []m.MappingEntry{
		m.MethodMapping("b", "m", "()V", "run"),
		m.FieldMapping("b", "f", "I", "size"),
		m.ClassMapping("b", "net/B"),
		m.ClassMapping("a", "net/A"),
	})

	assert.Equal(t, []m.MappingEntry{
		m.ClassMapping("a", "net/A"),
		m.ClassMapping("b", "net/B"),
		m.FieldMapping("b", "f", "I", "size"),
		m.MethodMapping("b", "m", "()V", "run"),
	}, table.Entries())

	classes, fields, methods := table.Len()
	assert.Equal(t, 2, classes)
	assert.Equal(t, 1, fields)
	assert.Equal(t, 1, methods)

	from, to := table.Namespaces()
	assert.Equal(t, m.Namespace("x"), from)
	assert.Equal(t, m.Namespace("y"), to)
}

func TestTable_Inverse(t *testing.T) {
	table := lookup.NewTable("official", "named", []m.MappingEntry{
		m.ClassMapping("a", "net/Foo"),
		m.ClassMapping("b", "net/Bar"),
		m.FieldMapping("a", "c", "Lb;", "bar"),
		m.MethodMapping("a", "d", "(Lb;)La;", "make"),
	})

	inverse := table.Inverse()

	from, to := inverse.Namespaces()
	assert.Equal(t, m.Namespace("named"), from)
	assert.Equal(t, m.Namespace("official"), to)
	assert.Equal(t, "a", inverse.RemappedClassName("net/Foo"))
	assert.Equal(t, "c", inverse.RemappedFieldName("net/Foo", "bar", "Lnet/Bar;"))
	assert.Equal(t, "d", inverse.RemappedMethodName("net/Foo", "make", "(Lnet/Bar;)Lnet/Foo;"))
}

func TestChain_ClassComposition(t *testing.T) {
	first := lookup.NewTable("a", "b", []m.MappingEntry{m.ClassMapping("x", "y")})
	second := lookup.NewTable("b", "c", []m.MappingEntry{m.ClassMapping("y", "z"), m.ClassMapping("q", "r")})
	chain := lookup.Chain(first, second)

	assert.Equal(t, "z", chain.RemappedClassName("x"))
	assert.Equal(t, "r", chain.RemappedClassName("q"))
	assert.Equal(t, "w", chain.RemappedClassName("w"))

	dst, ok := chain.RemappedClassNameFast("x")
	assert.True(t, ok)
	assert.Equal(t, "z", dst)

	_, ok = chain.RemappedClassNameFast("w")
	assert.False(t, ok)
}

func TestChain_MembersAdvanceOwnerAndDescriptor(t *testing.T) {
	first := lookup.NewTable("a", "b", []m.MappingEntry{
		m.ClassMapping("x", "y"),
		m.ClassMapping("p", "q"),
		m.FieldMapping("x", "f", "Lp;", "g"),
		m.MethodMapping("x", "m", "(Lp;)V", "n"),
	})
	second := lookup.NewTable("b", "c", []m.MappingEntry{
		m.FieldMapping("y", "g", "Lq;", "h"),
		m.MethodMapping("y", "n", "(Lq;)V", "o"),
	})

	chain := lookup.Chain(first, second)

	assert.Equal(t, "h", chain.RemappedFieldName("x", "f", "Lp;"))
	assert.Equal(t, "o", chain.RemappedMethodName("x", "m", "(Lp;)V"))
	assert.Equal(t, "k", chain.RemappedMethodName("x", "k", "()V"))
}

func TestChain_Empty(t *testing.T) {
	chain := lookup.Chain()
	assert.Equal(t, "a", chain.RemappedClassName("a"))
	assert.Equal(t, "f", chain.RemappedFieldName("a", "f", "I"))
}
