package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathcli/internal/value"
)

func noop(args []value.Value) (value.Value, error) {
	return value.Unit(), nil
}

func desc(name string, cat Category, help string) *Descriptor {
	return &Descriptor{Name: name, Parameters: []string{"x"}, Category: cat, Help: help, Capability: noop}
}

func TestRegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(desc("sin", CategoryTrigonometry, "Sine")))

	d := r.Resolve("sin")
	require.NotNil(t, d)
	assert.Equal(t, "sin", d.Name)
	assert.True(t, r.Has("sin"))
	assert.Nil(t, r.Resolve("cos"))
	assert.Equal(t, 1, r.Count())
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(desc("sin", CategoryTrigonometry, "")))

	err := r.Register(desc("sin", CategoryTrigonometry, ""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateName))
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry()

	t.Run("empty name", func(t *testing.T) {
		err := r.Register(&Descriptor{Capability: noop})
		assert.ErrorIs(t, err, ErrNameEmpty)
	})

	t.Run("nil capability", func(t *testing.T) {
		err := r.Register(&Descriptor{Name: "x"})
		assert.ErrorIs(t, err, ErrCapabilityNil)
	})

	t.Run("optional exceeds parameters", func(t *testing.T) {
		err := r.Register(&Descriptor{Name: "x", Optional: 2, Parameters: []string{"a"}, Capability: noop})
		assert.ErrorIs(t, err, ErrOptionalExceedsParams)
	})
}

func TestDefaultCategory(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Descriptor{Name: "misc", Capability: noop}))
	assert.Equal(t, CategoryGeneral, r.Resolve("misc").Category)
}

func TestListByCategorySorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"tan", "cos", "sin"} {
		require.NoError(t, r.Register(desc(name, CategoryTrigonometry, "")))
	}
	require.NoError(t, r.Register(desc("add", CategoryArithmetic, "")))

	got := r.ListByCategory(CategoryTrigonometry)
	require.Len(t, got, 3)
	assert.Equal(t, "cos", got[0].Name)
	assert.Equal(t, "sin", got[1].Name)
	assert.Equal(t, "tan", got[2].Name)

	assert.Empty(t, r.ListByCategory(CategoryMatrix))
	assert.Equal(t, []Category{CategoryArithmetic, CategoryTrigonometry}, r.Categories())
}

func TestMinimumArity(t *testing.T) {
	cases := []struct {
		name string
		d    Descriptor
		want int
	}{
		{"fixed", Descriptor{Parameters: []string{"a", "b"}}, 2},
		{"optional trailing", Descriptor{Parameters: []string{"a", "b"}, Optional: 1}, 1},
		{"variadic floor", Descriptor{Parameters: []string{"values"}, Variadic: true, MinArgs: 2}, 2},
		{"variadic default", Descriptor{Parameters: []string{"values"}, Variadic: true}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.d.MinimumArity())
		})
	}
}

func TestSearch(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(desc("sin", CategoryTrigonometry, "Sine of angle in radians")))
	require.NoError(t, r.Register(desc("asinh", CategoryTrigonometry, "Inverse hyperbolic sine")))
	require.NoError(t, r.Register(desc("is_prime", CategoryNumberTheory, "Whether n is prime")))
	require.NoError(t, r.Register(desc("next_prime", CategoryNumberTheory, "Smallest prime greater than n")))

	t.Run("name substring", func(t *testing.T) {
		got := r.Search("sin")
		require.NotEmpty(t, got)
		assert.Equal(t, "sin", got[0].Name)
	})

	t.Run("help text", func(t *testing.T) {
		names := make([]string, 0)
		for _, m := range r.Search("prime") {
			names = append(names, m.Name)
		}
		assert.Contains(t, names, "is_prime")
		assert.Contains(t, names, "next_prime")
	})

	t.Run("no hits", func(t *testing.T) {
		assert.Empty(t, r.Search("zebra"))
	})
}
