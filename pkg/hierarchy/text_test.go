package hierarchy

import (
	"math"
	"testing"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON_DefaultsElided(t *testing.T) {
	data, err := Default("paths").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"order":[{"_count":"desc"},{"_key":"asc"}]}`, string(data))

	parsed, err := ParseConfig("paths", data)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(Default("paths")))
}

func TestMarshalJSON_FieldOrder(t *testing.T) {
	b := NewBuilder("paths").
		ValuesSource(domain.ValuesSource{Field: "path", Missing: "/unknown"}).
		Separator("::").
		MinDepth(1).
		MaxDepth(4).
		Depth(3)
	require.NoError(t, b.Order(order.Key(true)))
	cfg, err := b.Build()
	require.NoError(t, err)

	data, err := cfg.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"field":"path","missing":"/unknown","order":{"_key":"asc"},"separator":"::","minDepth":1,"maxDepth":4,"depth":3}`,
		string(data))
}

func TestTextRoundTrip(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"field":"category","order":{"_count":"asc"}}`,
		`{"order":[{"_count":"desc"},{"sales.sum":"asc"}],"separator":">","maxDepth":10}`,
		`{"order":{"_key":"desc"},"minDepth":2,"maxDepth":2,"depth":1}`,
		`{"script":{"source":"doc['p'].value","lang":"painless"},"missing":0,"format":"raw","value_type":"string"}`,
		`{"order":{"_term":"asc"},"separator":""}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := ParseConfig("paths", []byte(input))
			require.NoError(t, err)

			emitted, err := first.MarshalJSON()
			require.NoError(t, err)

			second, err := ParseConfig("paths", emitted)
			require.NoError(t, err)
			assert.True(t, first.Equal(second))
			assert.True(t, first.ValuesSource().Equal(second.ValuesSource()))

			again, err := second.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, string(emitted), string(again), "emission must be byte-stable")
		})
	}
}

func TestParse_SetterAndTextPathsAgree(t *testing.T) {
	b := NewBuilder("direct").Separator("|").MinDepth(1).MaxDepth(3)
	require.NoError(t, b.Orders(order.Count(false), order.Aggregation("m", true)))
	direct, err := b.Build()
	require.NoError(t, err)

	parsed, err := ParseConfig("parsed", []byte(
		`{"separator":"|","minDepth":1,"maxDepth":3,"order":[{"_count":"desc"},{"m":"asc"}]}`))
	require.NoError(t, err)

	assert.True(t, direct.Equal(parsed))
	assert.Equal(t, direct.Hash(), parsed.Hash())
	assert.Equal(t, direct.CacheKey(), parsed.CacheKey())
}

func TestParse_DeferredDepthCheck(t *testing.T) {
	b, err := Parse("paths", []byte(`{"minDepth":3,"maxDepth":1}`))
	require.NoError(t, err, "parse must not check the depth range")

	_, err = b.Build()
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"null order", `{"order":null}`, domain.ErrInvalidArgument},
		{"empty order list", `{"order":[]}`, domain.ErrInvalidArgument},
		{"unknown field", `{"size":10}`, domain.ErrMalformedRequest},
		{"wrong case field", `{"mindepth":1}`, domain.ErrMalformedRequest},
		{"fractional depth", `{"maxDepth":2.5}`, domain.ErrMalformedRequest},
		{"fractional string depth", `{"maxDepth":"3.5"}`, domain.ErrMalformedRequest},
		{"padded string depth", `{"maxDepth":" 3"}`, domain.ErrMalformedRequest},
		{"boolean depth", `{"depth":true}`, domain.ErrMalformedRequest},
		{"depth above int32", `{"maxDepth":4294967297}`, domain.ErrMalformedRequest},
		{"depth just above int32", `{"maxDepth":2147483648}`, domain.ErrMalformedRequest},
		{"depth below int32", `{"minDepth":-2147483649}`, domain.ErrMalformedRequest},
		{"exponent depth above int32", `{"depth":1e10}`, domain.ErrMalformedRequest},
		{"string depth above int32", `{"maxDepth":"4294967297"}`, domain.ErrMalformedRequest},
		{"number separator", `{"separator":5}`, domain.ErrMalformedRequest},
		{"number field", `{"field":7}`, domain.ErrMalformedRequest},
		{"number format", `{"format":1.5}`, domain.ErrMalformedRequest},
		{"number value_type", `{"value_type":0}`, domain.ErrMalformedRequest},
		{"boolean separator", `{"separator":true}`, domain.ErrMalformedRequest},
		{"null separator", `{"separator":null}`, domain.ErrMalformedRequest},
		{"bad order direction", `{"order":{"_count":"sideways"}}`, domain.ErrMalformedRequest},
		{"not an object", `[1,2]`, domain.ErrMalformedRequest},
		{"null body", `null`, domain.ErrMalformedRequest},
		{"trailing data", `{} {}`, domain.ErrMalformedRequest},
		{"syntax error", `{"order":`, domain.ErrMalformedRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("paths", []byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseMap_YAMLStyleValues(t *testing.T) {
	// yaml.v3 produces plain ints and floats rather than json.Number.
	raw := map[string]any{
		"separator": ".",
		"minDepth":  1,
		"maxDepth":  float64(3),
		"order":     []any{map[string]any{"_count": "asc"}},
	}
	b, err := ParseMap("paths", raw)
	require.NoError(t, err)
	cfg, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Separator())
	assert.Equal(t, 1, cfg.MinDepth())
	assert.Equal(t, 3, cfg.MaxDepth())
	assert.True(t, cfg.Order().Equal(order.Compound(order.Count(true))))
}

func TestEnvelopeRoundTrip(t *testing.T) {
	input := `{"path_hierarchy":{"field":"path","maxDepth":5},"meta":{"owner":"ops","version":2},"aggs":{"total":{"sum":{"field":"bytes"}}}}`

	b, err := ParseEnvelope("paths", []byte(input))
	require.NoError(t, err)
	cfg, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "path", cfg.ValuesSource().Field)
	assert.Equal(t, 5, cfg.MaxDepth())
	assert.Equal(t, "ops", cfg.Metadata()["owner"])
	assert.JSONEq(t, `{"total":{"sum":{"field":"bytes"}}}`, string(cfg.SubAggregations()))

	emitted, err := cfg.MarshalEnvelope()
	require.NoError(t, err)
	b2, err := ParseEnvelope("paths", emitted)
	require.NoError(t, err)
	cfg2, err := b2.Build()
	require.NoError(t, err)

	again, err := cfg2.MarshalEnvelope()
	require.NoError(t, err)
	assert.Equal(t, string(emitted), string(again))
}

func TestParseEnvelope_Errors(t *testing.T) {
	for _, input := range []string{
		`{}`,
		`{"path_hierarchy":null}`,
		`{"terms":{}}`,
		`{"path_hierarchy":{},"aggs":{}} trailing`,
	} {
		_, err := ParseEnvelope("paths", []byte(input))
		assert.ErrorIs(t, err, domain.ErrMalformedRequest, input)
	}
}

func TestParse_IntegerForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", `{"maxDepth":3}`, 3},
		{"numeric string", `{"maxDepth":"3"}`, 3},
		{"negative string", `{"maxDepth":"-3","minDepth":-4}`, -3},
		{"integral exponent", `{"maxDepth":3e1}`, 30},
		{"integral decimal", `{"maxDepth":3.0}`, 3},
		{"int32 max", `{"maxDepth":2147483647}`, math.MaxInt32},
		{"int32 max as string", `{"maxDepth":"2147483647"}`, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig("paths", []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.MaxDepth())
		})
	}
}

func TestParse_Int32BoundsRoundTrip(t *testing.T) {
	cfg, err := ParseConfig("paths", []byte(`{"minDepth":-2147483648,"maxDepth":2147483647,"depth":-2147483648}`))
	require.NoError(t, err)

	data, err := Encode(cfg)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, cfg.Equal(decoded))
	assert.Equal(t, math.MinInt32, decoded.MinDepth())
	assert.Equal(t, math.MaxInt32, decoded.MaxDepth())
}

func TestParseMap_YAMLTypeMismatches(t *testing.T) {
	tests := map[string]map[string]any{
		"int separator":     {"separator": 5},
		"int field":         {"field": 7},
		"depth above int32": {"maxDepth": 4294967297},
		"float above int32": {"maxDepth": float64(1 << 40)},
		"unsigned above":    {"maxDepth": uint64(1 << 33)},
		"fractional depth":  {"minDepth": 1.5},
		"bool depth":        {"minDepth": false},
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMap("paths", raw)
			assert.ErrorIs(t, err, domain.ErrMalformedRequest)
		})
	}
}
