package widener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "remap.dev/pkg/remap/internal/model"
)

func TestScanner_HeaderIsFirstRecord(t *testing.T) {
	s := scanner{}

	assert.Equal(t, passLine{1, "# leading"}, s.parse(1, "# leading"))
	assert.False(t, s.seenHeader)

	header, ok := s.parse(2, "accessWidener\tv1\tnamed").(headerLine)
	require.True(t, ok)
	assert.Equal(t, "v1", header.version)
	assert.Equal(t, "named", header.namespace)
	assert.Equal(t, "named", header.nsSpan.Of(header.text))
	assert.True(t, s.seenHeader)
}

func TestScanner_Entry(t *testing.T) {
	s := scanner{seenHeader: true}

	entry, ok := s.parse(3, "accessible method a/Foo m ()V # keep").(entryLine)
	require.True(t, ok)
	assert.Equal(t, m.OpAccessible, entry.op)
	assert.Equal(t, m.KindMethod, entry.kind)
	assert.False(t, entry.compileOnly)
	assert.Equal(t, "a/Foo", entry.field(entry.class))
	require.NotNil(t, entry.name)
	assert.Equal(t, "m", entry.field(*entry.name))
	assert.Equal(t, "()V", entry.field(*entry.desc))
}

func TestScanner_CompileOnlyForms(t *testing.T) {
	for _, text := range []string{
		"compileOnly extendable class a/Foo",
		"#compileOnly extendable class a/Foo",
		"  #compileOnly extendable class a/Foo",
	} {
		t.Run(text, func(t *testing.T) {
			s := scanner{seenHeader: true}

			entry, ok := s.parse(2, text).(entryLine)
			require.True(t, ok)
			assert.True(t, entry.compileOnly)
			assert.Equal(t, "extendable class a/Foo", entry.body)
			assert.Nil(t, entry.name)
		})
	}
}

func TestScanner_PlainCommentIsNotAnEntry(t *testing.T) {
	s := scanner{seenHeader: true}
	assert.IsType(t, passLine{}, s.parse(2, "#compileOnly"))
	assert.IsType(t, passLine{}, s.parse(3, "# accessible class a/Foo"))
	assert.IsType(t, passLine{}, s.parse(4, "#compileOnly entries follow"))
	assert.IsType(t, passLine{}, s.parse(5, "#compileOnly accessible"))
	assert.IsType(t, passLine{}, s.parse(6, "#compileOnly "))
}

func TestScanner_CompileOnlyCommentBeforeHeader(t *testing.T) {
	s := scanner{}
	assert.IsType(t, passLine{}, s.parse(1, "#compileOnly accessible class a/Foo"))
	assert.False(t, s.seenHeader)
}
