package order

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOrder is returned for order text that cannot be parsed.
var ErrInvalidOrder = errors.New("invalid order")

const (
	keyCount = "_count"
	keyKey   = "_key"
	keyTerm  = "_term" // deprecated alias of _key
)

// MarshalJSON renders a single criterion as {"<field>":"<dir>"} and a
// compound as an array of single criteria.
func (o Order) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := o.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o Order) writeJSON(buf *bytes.Buffer) error {
	switch o.kind {
	case KindNone:
		return ErrEmpty
	case KindCompound:
		buf.WriteByte('[')
		for i, e := range o.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		field, err := json.Marshal(o.fieldName())
		if err != nil {
			return err
		}
		buf.WriteByte('{')
		buf.Write(field)
		buf.WriteString(`:"`)
		buf.WriteString(direction(o.asc))
		buf.WriteString(`"}`)
		return nil
	}
}

// ParseJSON parses the JSON value of an "order" field into its criteria.
func ParseJSON(data []byte) ([]Order, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	return Parse(v)
}

// Parse converts a decoded "order" value into its criteria, in request
// order. v is either a single criterion object or a list of them, as
// produced by encoding/json or yaml.v3. The result is not normalized.
func Parse(v any) ([]Order, error) {
	switch t := v.(type) {
	case nil:
		return nil, ErrEmpty
	case []any:
		if len(t) == 0 {
			return nil, ErrEmpty
		}
		out := make([]Order, 0, len(t))
		for i, item := range t {
			o, err := parseCriterion(item)
			if err != nil {
				return nil, fmt.Errorf("order[%d]: %w", i, err)
			}
			out = append(out, o)
		}
		return out, nil
	default:
		o, err := parseCriterion(v)
		if err != nil {
			return nil, err
		}
		return []Order{o}, nil
	}
}

func parseCriterion(v any) (Order, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Order{}, fmt.Errorf("%w: expected object, got %T", ErrInvalidOrder, v)
	}
	if len(obj) != 1 {
		return Order{}, fmt.Errorf("%w: expected exactly one field, got %d", ErrInvalidOrder, len(obj))
	}
	var (
		field string
		raw   any
	)
	for k, v := range obj {
		field, raw = k, v
	}

	dir, ok := raw.(string)
	if !ok {
		return Order{}, fmt.Errorf("%w: direction of [%s] must be a string, got %T", ErrInvalidOrder, field, raw)
	}
	asc, err := parseDirection(dir)
	if err != nil {
		return Order{}, fmt.Errorf("%w: [%s]: %v", ErrInvalidOrder, field, err)
	}
	switch field {
	case keyCount:
		return Count(asc), nil
	case keyKey, keyTerm:
		return Key(asc), nil
	case "":
		return Order{}, fmt.Errorf("%w: empty order path", ErrInvalidOrder)
	default:
		return Aggregation(field, asc), nil
	}
}

func parseDirection(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "asc":
		return true, nil
	case "desc":
		return false, nil
	default:
		return false, fmt.Errorf("unknown direction %q, expected asc or desc", s)
	}
}
