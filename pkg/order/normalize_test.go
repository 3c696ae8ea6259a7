package order

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	want := []Order{Count(false), Key(true)}
	got := Default()

	require.True(t, got.IsCompound())
	if diff := cmp.Diff(want, got.Elements()); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeList_SingletonMatchesElement(t *testing.T) {
	criteria := []Order{
		Count(false),
		Count(true),
		Key(true),
		Key(false),
		Aggregation("sales.avg", true),
		Compound(Count(true), Aggregation("x", false)),
	}

	for _, c := range criteria {
		t.Run(c.String(), func(t *testing.T) {
			direct, err := Normalize(c)
			require.NoError(t, err)
			fromList, err := NormalizeList([]Order{c})
			require.NoError(t, err)
			assert.True(t, direct.Equal(fromList), "Normalize=%s NormalizeList=%s", direct, fromList)
		})
	}
}

func TestNormalizeList_AppendsKeyTieBreaker(t *testing.T) {
	got, err := NormalizeList([]Order{Count(false), Aggregation("max_size", true)})
	require.NoError(t, err)

	want := []Order{Count(false), Aggregation("max_size", true), Key(true)}
	if diff := cmp.Diff(want, got.Elements()); diff != "" {
		t.Errorf("NormalizeList mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Order
		want []Order
	}{
		{
			name: "count gets tie-breaker",
			in:   Count(false),
			want: []Order{Count(false), Key(true)},
		},
		{
			name: "aggregation gets tie-breaker",
			in:   Aggregation("avg", false),
			want: []Order{Aggregation("avg", false), Key(true)},
		},
		{
			name: "key ascending untouched",
			in:   Key(true),
			want: []Order{Key(true)},
		},
		{
			name: "key descending untouched",
			in:   Key(false),
			want: []Order{Key(false)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got.Elements()); diff != "" {
				t.Errorf("Normalize(%s) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestNormalize_KeyOrderNotWrapped(t *testing.T) {
	got, err := Normalize(Key(false))
	require.NoError(t, err)
	assert.False(t, got.IsCompound())
	assert.True(t, got.Equal(Key(false)))
}

func TestNormalize_ExistingCompoundTrusted(t *testing.T) {
	// A compound ending in a key order is kept as-is, whatever precedes it.
	c := Compound(Key(true), Count(false))
	require.Len(t, c.Elements(), 3)

	got, err := Normalize(c)
	require.NoError(t, err)
	assert.True(t, got.Equal(c))
}

func TestNormalize_Empty(t *testing.T) {
	_, err := Normalize(Order{})
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = NormalizeList(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = NormalizeList([]Order{Count(true), {}})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNormalize_EmptyAggregationPath(t *testing.T) {
	_, err := Normalize(Aggregation("", true))
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestCompound(t *testing.T) {
	t.Run("flattens nested compounds", func(t *testing.T) {
		inner := Compound(Count(false), Aggregation("a", true))
		got := Compound(inner, Aggregation("b", false))
		want := []Order{Count(false), Aggregation("a", true), Key(true), Aggregation("b", false), Key(true)}
		if diff := cmp.Diff(want, got.Elements()); diff != "" {
			t.Errorf("Compound mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("single key collapses", func(t *testing.T) {
		got := Compound(Key(false))
		assert.False(t, got.IsCompound())
		assert.True(t, got.Equal(Key(false)))
	})

	t.Run("empty is key ascending", func(t *testing.T) {
		assert.True(t, Compound().Equal(Key(true)))
	})
}

func TestEqual(t *testing.T) {
	assert.True(t, Count(true).Equal(Count(true)))
	assert.False(t, Count(true).Equal(Count(false)))
	assert.False(t, Count(true).Equal(Key(true)))
	assert.False(t, Aggregation("a", true).Equal(Aggregation("b", true)))
	assert.False(t, Compound(Count(true)).Equal(Compound(Count(false))))
	assert.False(t, Compound(Count(true), Aggregation("a", true)).Equal(Compound(Count(true))))
	assert.True(t, Order{}.Equal(Order{}))
}

func TestElements_ReturnsCopy(t *testing.T) {
	c := Default()
	elems := c.Elements()
	elems[0] = Key(false)
	assert.True(t, c.Equal(Default()))
}

func TestString(t *testing.T) {
	assert.Equal(t, "[_count desc, _key asc]", Default().String())
	assert.Equal(t, "sales.avg asc", Aggregation("sales.avg", true).String())
	assert.Equal(t, "<none>", Order{}.String())
}
