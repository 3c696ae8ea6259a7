package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Order
		want string
	}{
		{"count", Count(false), `{"_count":"desc"}`},
		{"key", Key(true), `{"_key":"asc"}`},
		{"aggregation", Aggregation("stats.max", true), `{"stats.max":"asc"}`},
		{"default", Default(), `[{"_count":"desc"},{"_key":"asc"}]`},
		{"quoted path", Aggregation(`we"ird`, false), `{"we\"ird":"desc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalJSON_Empty(t *testing.T) {
	_, err := Order{}.MarshalJSON()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Order
		wantErr error
	}{
		{
			name:  "single object",
			input: `{"_count":"asc"}`,
			want:  []Order{Count(true)},
		},
		{
			name:  "array",
			input: `[{"_count":"desc"},{"sales.avg":"ASC"}]`,
			want:  []Order{Count(false), Aggregation("sales.avg", true)},
		},
		{
			name:  "deprecated term alias",
			input: `{"_term":"desc"}`,
			want:  []Order{Key(false)},
		},
		{name: "null", input: `null`, wantErr: ErrEmpty},
		{name: "empty array", input: `[]`, wantErr: ErrEmpty},
		{name: "bad direction", input: `{"_count":"up"}`, wantErr: ErrInvalidOrder},
		{name: "two fields", input: `{"_count":"asc","_key":"asc"}`, wantErr: ErrInvalidOrder},
		{name: "no fields", input: `{}`, wantErr: ErrInvalidOrder},
		{name: "not an object", input: `"_count"`, wantErr: ErrInvalidOrder},
		{name: "direction not a string", input: `{"_count":1}`, wantErr: ErrInvalidOrder},
		{name: "empty path", input: `{"":"asc"}`, wantErr: ErrInvalidOrder},
		{name: "nested array", input: `[[{"_key":"asc"}]]`, wantErr: ErrInvalidOrder},
		{name: "broken json", input: `[{`, wantErr: ErrInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON([]byte(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.True(t, tt.want[i].Equal(got[i]), "element %d: want %s, got %s", i, tt.want[i], got[i])
			}
		})
	}
}

func TestTextRoundTrip(t *testing.T) {
	orders := []Order{
		Default(),
		Key(false),
		Compound(Aggregation("a.b", true), Count(true)),
		Compound(Key(true), Count(false)),
	}

	for _, o := range orders {
		data, err := o.MarshalJSON()
		require.NoError(t, err)

		parsed, err := ParseJSON(data)
		require.NoError(t, err)
		got, err := NormalizeList(parsed)
		require.NoError(t, err)

		assert.True(t, o.Equal(got), "round trip of %s gave %s", o, got)
	}
}
