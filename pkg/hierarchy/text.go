package hierarchy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/order"
	"github.com/mitchellh/mapstructure"
)

// textBody fixes the emission order of the text format. Pointer fields are
// only set when the value differs from its default.
type textBody struct {
	Field     string      `json:"field,omitempty"`
	Script    any         `json:"script,omitempty"`
	Missing   any         `json:"missing,omitempty"`
	Format    string      `json:"format,omitempty"`
	ValueType string      `json:"value_type,omitempty"`
	Order     order.Order `json:"order"`
	Separator *string     `json:"separator,omitempty"`
	MinDepth  *int        `json:"minDepth,omitempty"`
	MaxDepth  *int        `json:"maxDepth,omitempty"`
	Depth     *int        `json:"depth,omitempty"`
}

// MarshalJSON renders the aggregation body, omitting every field that holds
// its default value.
func (c Config) MarshalJSON() ([]byte, error) {
	body := textBody{
		Field:     c.source.Field,
		Script:    c.source.Script,
		Missing:   c.source.Missing,
		Format:    c.source.Format,
		ValueType: c.source.ValueType,
		Order:     c.order,
	}
	if c.separator != domain.DefaultSeparator {
		body.Separator = &c.separator
	}
	if c.minDepth != domain.DefaultMinDepth {
		body.MinDepth = &c.minDepth
	}
	if c.maxDepth != domain.DefaultMaxDepth {
		body.MaxDepth = &c.maxDepth
	}
	if c.depth != domain.DefaultDepth {
		body.Depth = &c.depth
	}
	return json.Marshal(body)
}

// fields is the decode target of the text format. Pointers tell absent
// fields apart from zero values.
type fields struct {
	Order     any     `mapstructure:"order"`
	Separator *string `mapstructure:"separator"`
	MinDepth  *int    `mapstructure:"minDepth"`
	MaxDepth  *int    `mapstructure:"maxDepth"`
	Depth     *int    `mapstructure:"depth"`
	Field     *string `mapstructure:"field"`
	Script    any     `mapstructure:"script"`
	Missing   any     `mapstructure:"missing"`
	Format    *string `mapstructure:"format"`
	ValueType *string `mapstructure:"value_type"`
}

// Parse decodes a JSON aggregation body into a builder. Absent fields keep
// their defaults; the depth range is not checked until Build.
func Parse(name string, data []byte) (*Builder, error) {
	var raw map[string]any
	if err := decodeJSON(data, &raw); err != nil {
		return nil, malformed(name, err)
	}
	if raw == nil {
		return nil, malformed(name, errors.New("body must be an object"))
	}
	return ParseMap(name, raw)
}

// ParseConfig is Parse followed by Build.
func ParseConfig(name string, data []byte) (Config, error) {
	b, err := Parse(name, data)
	if err != nil {
		return Config{}, err
	}
	return b.Build()
}

// ParseMap decodes an already parsed aggregation body, as produced by
// encoding/json (with or without UseNumber) or yaml.v3.
func ParseMap(name string, raw map[string]any) (*Builder, error) {
	for key, v := range raw {
		if v != nil {
			continue
		}
		if key == domain.FieldOrder {
			return nil, domain.NullArgument(name, domain.FieldOrder)
		}
		return nil, malformed(name, fmt.Errorf("[%s] must not be null", key))
	}

	var f fields
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  strictHook,
		ErrorUnused: true,
		MatchName:   func(key, field string) bool { return key == field },
		Result:      &f,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, malformed(name, err)
	}

	b := NewBuilder(name)
	if f.Separator != nil {
		b.Separator(*f.Separator)
	}
	if f.MinDepth != nil {
		b.MinDepth(*f.MinDepth)
	}
	if f.MaxDepth != nil {
		b.MaxDepth(*f.MaxDepth)
	}
	if f.Depth != nil {
		b.Depth(*f.Depth)
	}
	b.ValuesSource(domain.ValuesSource{
		Field:     deref(f.Field),
		Script:    f.Script,
		Missing:   f.Missing,
		Format:    deref(f.Format),
		ValueType: deref(f.ValueType),
	})

	if f.Order != nil {
		orders, err := order.Parse(f.Order)
		if err != nil {
			if errors.Is(err, order.ErrEmpty) {
				return nil, domain.NullArgument(name, domain.FieldOrder)
			}
			return nil, malformed(name, err)
		}
		if err := b.Orders(orders...); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// envelope is the aggregation object found under the aggregation name.
type envelope struct {
	Body json.RawMessage `json:"path_hierarchy"`
	Meta map[string]any  `json:"meta,omitempty"`
	Aggs json.RawMessage `json:"aggs,omitempty"`
}

// MarshalEnvelope renders {"path_hierarchy": body, "meta": ..., "aggs": ...}.
func (c Config) MarshalEnvelope() ([]byte, error) {
	body, err := c.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Body: body, Meta: c.metadata, Aggs: c.subAggs})
}

// ParseEnvelope decodes the output of MarshalEnvelope into a builder,
// attachments included.
func ParseEnvelope(name string, data []byte) (*Builder, error) {
	var env envelope
	if err := decodeJSON(data, &env, strict); err != nil {
		return nil, malformed(name, err)
	}
	if len(env.Body) == 0 {
		return nil, malformed(name, fmt.Errorf("missing [%s] body", domain.TypeName))
	}
	b, err := Parse(name, env.Body)
	if err != nil {
		return nil, err
	}
	return b.Metadata(env.Meta).SubAggregations(env.Aggs), nil
}

func strict(dec *json.Decoder) { dec.DisallowUnknownFields() }

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(data []byte, v any, opts ...func(*json.Decoder)) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	for _, opt := range opts {
		opt(dec)
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

// strictHook keeps mapstructure from coercing between JSON types. Integer
// fields take integral numbers, or strings holding one, within the 32-bit
// range of the wire format; mapstructure would otherwise truncate them.
// String fields refuse json.Number, whose reflect kind is string.
func strictHook(from, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int:
		return toInt32(data)
	case reflect.String:
		if n, ok := data.(json.Number); ok {
			return nil, fmt.Errorf("expected string, got number %s", n)
		}
	}
	return data, nil
}

func toInt32(data any) (any, error) {
	var n int64
	switch v := data.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case uint64:
		if v > math.MaxInt32 {
			return nil, fmt.Errorf("%d is out of range [%d, %d]", v, math.MinInt32, math.MaxInt32)
		}
		n = int64(v)
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("expected integer, got %v", v)
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("%v is out of range [%d, %d]", v, math.MinInt32, math.MaxInt32)
		}
		n = int64(v)
	case json.Number:
		i, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return nil, fmt.Errorf("expected integer, got %s", v)
			}
			return toInt32(f)
		}
		n = i
	case string:
		i, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("expected integer, got string %q", v)
		}
		n = i
	default:
		return data, nil
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, fmt.Errorf("%d is out of range [%d, %d]", n, math.MinInt32, math.MaxInt32)
	}
	return int(n), nil
}

func malformed(name string, err error) error {
	return fmt.Errorf("%w: [%s]: %v", domain.ErrMalformedRequest, name, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
