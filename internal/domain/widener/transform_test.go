package widener_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"remap.dev/pkg/remap/internal/domain/access"
	"remap.dev/pkg/remap/internal/domain/lookup"
	"remap.dev/pkg/remap/internal/domain/widener"
	m "remap.dev/pkg/remap/internal/model"
)

func renames() *lookup.Table {
	return lookup.NewTable("official", "named", []m.MappingEntry{
		m.ClassMapping("a/Foo", "net/example/Foo"),
		m.ClassMapping("a/Bar", "net/example/Bar"),
		m.FieldMapping("a/Foo", "bar", "I", "count"),
		m.FieldMapping("a/Foo", "baz", "La/Bar;", "other"),
		m.MethodMapping("a/Foo", "m", "(La/Bar;)V", "consume"),
	})
}

func transform(t *testing.T, input string, opts ...widener.Option) (string, m.TransformReport, []m.Directive, error) {
	t.Helper()

	var out bytes.Buffer
	report, directives, err := widener.Transform(strings.NewReader(input), &out, renames(), opts...)

	return out.String(), report, directives, err
}

func TestTransform_MutableField(t *testing.T) {
	out, report, directives, err := transform(t, "accessWidener v1 official\nmutable field a/Foo bar I\n")
	require.NoError(t, err)

	assert.Equal(t, "accessWidener v1 official\nmutable field net/example/Foo count I\n", out)
	assert.Equal(t, 1, report.Remapped)

	require.Len(t, directives, 1)
	assert.Equal(t, m.Directive{
		Operation: m.OpMutable,
		Kind:      m.KindField,
		Target:    m.MemberKey{Owner: "net/example/Foo", Name: "count", Desc: "I"},
		Remove:    access.Final,
	}, directives[0])
}

func TestTransform_Kinds(t *testing.T) {
	input := strings.Join([]string{
		"accessWidener\tv2\tofficial",
		"# comment",
		"accessible\tclass\ta/Foo",
		"accessible\tmethod\ta/Foo\tm\t(La/Bar;)V",
		"extendable\tmethod\ta/Foo\tunknown\t()La/Foo;",
		"accessible\tfield\ta/Foo\tbaz\tLa/Bar;   # trailing",
		"",
	}, "\n")

	out, _, directives, err := transform(t, input)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"accessWidener\tv2\tofficial",
		"# comment",
		"accessible\tclass\tnet/example/Foo",
		"accessible\tmethod\tnet/example/Foo\tconsume\t(Lnet/example/Bar;)V",
		"extendable\tmethod\tnet/example/Foo\tunknown\t()Lnet/example/Foo;",
		"accessible\tfield\tnet/example/Foo\tother\tLnet/example/Bar;   # trailing",
		"",
	}, "\n"), out)

	require.Len(t, directives, 4)
	assert.Equal(t, access.Public, directives[0].Add)
	assert.Equal(t, access.Private|access.Protected, directives[0].Remove)
	assert.Equal(t, access.Private|access.Protected|access.Final, directives[1].Remove)
	assert.Equal(t, access.Protected, directives[2].Add)
	assert.Equal(t, m.MemberKey{Owner: "net/example/Foo", Name: "other", Desc: "Lnet/example/Bar;"}, directives[3].Target)
}

func TestTransform_CompileOnly(t *testing.T) {
	out, _, directives, err := transform(t, "accessWidener v1 official\ncompileOnly natural class a/Bar\n")
	require.NoError(t, err)

	assert.Equal(t, "accessWidener v1 official\n#compileOnly natural class net/example/Bar\n", out)
	require.Len(t, directives, 1)
	assert.True(t, directives[0].CompileOnly)
	assert.Equal(t, access.Synthetic, directives[0].Remove)

	// The emitted form is read back as a compileOnly entry.
	again, _, directives, err := transform(t, out)
	require.NoError(t, err)
	assert.Equal(t, out, again)
	require.Len(t, directives, 1)
	assert.True(t, directives[0].CompileOnly)
}

func TestTransform_CompileOnlyWordInCommentPassesThrough(t *testing.T) {
	input := "accessWidener v1 official\n#compileOnly entries follow\naccessible class a/Foo\n"

	out, report, directives, err := transform(t, input)
	require.NoError(t, err)

	assert.Equal(t, "accessWidener v1 official\n#compileOnly entries follow\naccessible class net/example/Foo\n", out)
	assert.Equal(t, 1, report.Remapped)
	require.Len(t, directives, 1)
	assert.False(t, directives[0].CompileOnly)
}

func TestTransform_Namespace(t *testing.T) {
	out, _, _, err := transform(t, "accessWidener v1 official\n", widener.WithNamespace("named"))
	require.NoError(t, err)
	assert.Equal(t, "accessWidener v1 named\n", out)
}

func TestTransform_DropsInapplicableOperations(t *testing.T) {
	input := strings.Join([]string{
		"accessWidener v1 official",
		"mutable class a/Foo",
		"extendable field a/Foo bar I",
		"denumerised method a/Foo m (La/Bar;)V",
		"mutable field a/Foo bar (I)V",
		"denumerised class a/Foo",
		"",
	}, "\n")

	out, report, directives, err := transform(t, input, widener.WithPath("mod.accesswidener"))
	require.NoError(t, err)

	assert.Equal(t, "accessWidener v1 official\ndenumerised class net/example/Foo\n", out)
	assert.Equal(t, 4, report.Dropped)
	require.Len(t, report.Diagnostics, 4)
	assert.Equal(t, m.Path("mod.accesswidener"), report.Diagnostics[0].Path)
	assert.ErrorIs(t, report.Diagnostics[0].Err, m.ErrValidation)
	require.Len(t, directives, 1)
	assert.Equal(t, access.Enum, directives[0].Remove)
}

func TestTransform_FatalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing header", ""},
		{"bad header", "accessTransformer v1 official\n"},
		{"short header", "accessWidener v1\n"},
		{"unknown operation", "accessWidener v1 official\nwiden class a/Foo\n"},
		{"unknown kind", "accessWidener v1 official\naccessible package a/Foo\n"},
		{"class field count", "accessWidener v1 official\naccessible class a/Foo extra\n"},
		{"member field count", "accessWidener v1 official\naccessible method a/Foo m\n"},
		{"bare marker", "accessWidener v1 official\ncompileOnly\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, report, directives, err := transform(t, tt.input)
			require.ErrorIs(t, err, m.ErrFormat)
			assert.Empty(t, out)
			assert.Nil(t, directives)
			assert.Equal(t, err, report.Err)
		})
	}
}
