package funcs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathcli/internal/operror"
	"mathcli/internal/persist"
)

func newTestRegistry(t *testing.T, port persist.Port) *Registry {
	t.Helper()
	r, err := NewRegistry(port, nil)
	require.NoError(t, err)
	return r
}

func TestDefineAndGet(t *testing.T) {
	r := newTestRegistry(t, persist.NewMemoryStore())

	require.NoError(t, r.Define("square", []string{"x"}, "multiply $x $x", ""))

	fn, ok := r.Get("square")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, fn.Parameters)
	assert.Equal(t, "multiply $x $x", fn.Body)
	assert.Equal(t, "square(x)", fn.Signature())
	assert.True(t, r.Has("square"))
	assert.Equal(t, 1, r.Count())
}

func TestDefineValidation(t *testing.T) {
	r := newTestRegistry(t, nil)

	assert.True(t, errors.Is(r.Define("", []string{"x"}, "body", ""), operror.ErrInvalidValue))
	assert.True(t, errors.Is(r.Define("f", []string{"x"}, "", ""), operror.ErrInvalidValue))
}

func TestRedefineReplaces(t *testing.T) {
	r := newTestRegistry(t, nil)

	require.NoError(t, r.Define("f", []string{"x"}, "add $x 1", ""))
	require.NoError(t, r.Define("f", []string{"a", "b"}, "add $a $b", ""))

	fn, ok := r.Get("f")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, fn.Parameters)
	assert.Equal(t, 1, r.Count())
}

func TestUndefine(t *testing.T) {
	r := newTestRegistry(t, nil)

	require.NoError(t, r.Define("f", nil, "pi", ""))
	require.NoError(t, r.Undefine("f"))
	assert.False(t, r.Has("f"))

	err := r.Undefine("f")
	assert.True(t, errors.Is(err, operror.ErrFunctionNotFound))
}

func TestPersistenceAcrossRegistries(t *testing.T) {
	port := persist.NewMemoryStore()

	first := newTestRegistry(t, port)
	require.NoError(t, first.Define("square", []string{"x"}, "multiply $x $x", "squares x"))

	// A new registry over the same port sees the definition.
	second := newTestRegistry(t, port)
	fn, ok := second.Get("square")
	require.True(t, ok)
	assert.Equal(t, "multiply $x $x", fn.Body)
	assert.Equal(t, "squares x", fn.Help)
}

func TestImportSkipsMalformedRecords(t *testing.T) {
	r := newTestRegistry(t, nil)

	records := []Record{
		{Name: "good", Parameters: []string{"x"}, Body: "add $x 1"},
		{Name: "", Parameters: []string{"x"}, Body: "add $x 1"},
		{Name: "noparams", Parameters: nil, Body: "pi"},
		{Name: "nobody", Parameters: []string{"x"}, Body: ""},
	}
	require.NoError(t, r.Import(records, false))

	assert.Equal(t, 1, r.Count())
	assert.True(t, r.Has("good"))
}

func TestImportReplaceVersusMerge(t *testing.T) {
	r := newTestRegistry(t, nil)

	require.NoError(t, r.Define("keep", []string{}, "pi", ""))

	require.NoError(t, r.Import([]Record{{Name: "extra", Parameters: []string{}, Body: "e"}}, true))
	assert.True(t, r.Has("keep"))
	assert.True(t, r.Has("extra"))

	require.NoError(t, r.Import([]Record{{Name: "only", Parameters: []string{}, Body: "tau"}}, false))
	assert.False(t, r.Has("keep"))
	assert.False(t, r.Has("extra"))
	assert.True(t, r.Has("only"))
}

func TestListSorted(t *testing.T) {
	r := newTestRegistry(t, nil)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, r.Define(name, nil, "pi", ""))
	}
	got := r.List()
	require.Len(t, got, 3)
	assert.Equal(t, "alpha", got[0].Name)
	assert.Equal(t, "mid", got[1].Name)
	assert.Equal(t, "zeta", got[2].Name)
}

func TestExportShape(t *testing.T) {
	r := newTestRegistry(t, nil)
	require.NoError(t, r.Define("square", []string{"x"}, "multiply $x $x", ""))

	records := r.Export()
	require.Len(t, records, 1)
	assert.Equal(t, "square", records[0].Name)
	assert.Equal(t, []string{"x"}, records[0].Parameters)
	assert.Equal(t, "multiply $x $x", records[0].Body)
}
