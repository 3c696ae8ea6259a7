package hierarchy

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/order"
	"github.com/aretw0/pathhierarchy/pkg/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfigs(t *testing.T) []Config {
	t.Helper()

	build := func(b *Builder, orders ...order.Order) Config {
		if len(orders) > 0 {
			require.NoError(t, b.Orders(orders...))
		}
		cfg, err := b.Build()
		require.NoError(t, err)
		return cfg
	}

	return []Config{
		Default("paths"),
		build(NewBuilder("deep").Separator("::").MinDepth(1).MaxDepth(300).Depth(2)),
		build(NewBuilder("equal-bounds").MinDepth(4).MaxDepth(4), order.Key(false)),
		build(NewBuilder("compound"), order.Aggregation("size.avg", true), order.Count(false)),
		build(NewBuilder("negative").MinDepth(-1).Depth(-5)),
		build(NewBuilder("sourced").
			ValuesSource(domain.ValuesSource{
				Field:     "path",
				Script:    map[string]any{"source": "emit(doc.p)"},
				Missing:   "/none",
				Format:    "raw",
				ValueType: "string",
			}).
			Metadata(map[string]any{"owner": "ops"}).
			SubAggregations(json.RawMessage(`{"n":{"value_count":{"field":"id"}}}`))),
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	for _, cfg := range sampleConfigs(t) {
		t.Run(cfg.Name(), func(t *testing.T) {
			data, err := Encode(cfg)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)

			assert.True(t, cfg.Equal(got), "decoded config differs")
			assert.Equal(t, cfg.Hash(), got.Hash())
			assert.Equal(t, cfg.Name(), got.Name())
			assert.Equal(t, cfg.ValuesSource().Field, got.ValuesSource().Field)
			assert.Equal(t, cfg.ValuesSource().Format, got.ValuesSource().Format)
			assert.Equal(t, cfg.ValuesSource().ValueType, got.ValuesSource().ValueType)
			assert.Equal(t, cfg.Metadata(), got.Metadata())
			assert.Equal(t, string(cfg.SubAggregations()), string(got.SubAggregations()))

			again, err := Encode(got)
			require.NoError(t, err)
			assert.Equal(t, data, again, "encoding must be bit-exact")
		})
	}
}

func TestEncodeBody_Layout(t *testing.T) {
	w := stream.NewWriter(16)
	require.NoError(t, EncodeBody(w, Default("paths")))

	want := []byte{
		0x01, '/', // separator
		0x01, 0x00, // minDepth present, 0
		0x01, 0x02, // maxDepth present, 2
		0x01, 0x00, // depth present, 0
		0xFF, 0x02, 0x01, 0x04, // [_count desc, _key asc]
	}
	assert.Equal(t, want, w.Bytes())
}

func TestDecodeBody_AbsentDepthsKeepDefaults(t *testing.T) {
	input := []byte{
		0x01, '/',
		0x00,       // minDepth absent
		0x01, 0x05, // maxDepth 5
		0x00,       // depth absent
		0x04,       // _key asc
	}
	b := NewBuilder("paths")
	r := stream.NewReader(input)
	require.NoError(t, DecodeBody(r, b))
	assert.Zero(t, r.Remaining())

	cfg, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.MinDepth())
	assert.Equal(t, 5, cfg.MaxDepth())
	assert.Equal(t, 0, cfg.Depth())
	assert.True(t, cfg.Order().Equal(order.Key(true)))
}

func TestDecode_Rejects(t *testing.T) {
	valid, err := Encode(Default("paths"))
	require.NoError(t, err)

	t.Run("every truncation", func(t *testing.T) {
		for n := 0; n < len(valid); n++ {
			_, err := Decode(valid[:n])
			assert.ErrorIs(t, err, stream.ErrTruncated, "prefix of %d bytes", n)
		}
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := Decode(append(append([]byte(nil), valid...), 0x00))
		assert.ErrorIs(t, err, stream.ErrMalformed)
	})

	t.Run("inverted depth range", func(t *testing.T) {
		w := stream.NewWriter(32)
		w.WriteString("paths")
		for i := 0; i < 6; i++ {
			w.WriteBool(false) // value source and metadata absent
		}
		w.WriteBytes(nil)
		w.WriteString("/")
		three, one, zero := 3, 1, 0
		w.WriteOptionalVInt(&three)
		w.WriteOptionalVInt(&one)
		w.WriteOptionalVInt(&zero)
		require.NoError(t, order.Write(w, order.Key(true)))

		_, err := Decode(w.Bytes())
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestEncode_RejectsOutOfRangeDepths(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"maxDepth above int32", Config{name: "p", separator: "/", maxDepth: 4294967297, order: order.Default()}},
		{"minDepth below int32", Config{name: "p", separator: "/", minDepth: math.MinInt32 - 1, maxDepth: 2, order: order.Default()}},
		{"depth above int32", Config{name: "p", separator: "/", maxDepth: 2, depth: math.MaxInt32 + 1, order: order.Default()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.cfg)
			assert.ErrorIs(t, err, stream.ErrOutOfRange)

			w := stream.NewWriter(16)
			assert.ErrorIs(t, EncodeBody(w, tt.cfg), stream.ErrOutOfRange)
		})
	}
}

func TestDecode_RejectsVIntOverflow(t *testing.T) {
	w := stream.NewWriter(32)
	w.WriteString("paths")
	for i := 0; i < 6; i++ {
		w.WriteBool(false)
	}
	w.WriteBytes(nil)
	w.WriteString("/")
	w.WriteBool(true)
	// Five-byte vint with bits above 32 set.
	for _, b := range []byte{0x81, 0x80, 0x80, 0x80, 0x10} {
		_ = w.WriteByte(b)
	}

	_, err := Decode(w.Bytes())
	assert.ErrorIs(t, err, stream.ErrMalformed)
}
