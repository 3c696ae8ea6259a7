package hierarchy

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/order"
	"github.com/aretw0/pathhierarchy/pkg/stream"
)

// Encode renders c in the node-to-node binary format: the name, the value
// source and the attachments, followed by the body written by EncodeBody.
func Encode(c Config) ([]byte, error) {
	w := stream.NewWriter(64)
	w.WriteString(c.name)

	if err := encodeSource(w, c.source); err != nil {
		return nil, err
	}

	var meta any
	if len(c.metadata) > 0 {
		meta = c.metadata
	}
	if err := writeOptionalJSON(w, meta); err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	w.WriteBytes(c.subAggs)

	if err := EncodeBody(w, c); err != nil {
		return nil, err
	}
	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return w.Bytes(), nil
}

func encodeSource(w *stream.Writer, source domain.ValuesSource) error {
	w.WriteOptionalString(source.Field)
	if err := writeOptionalJSON(w, source.Script); err != nil {
		return fmt.Errorf("encode script: %w", err)
	}
	if err := writeOptionalJSON(w, source.Missing); err != nil {
		return fmt.Errorf("encode missing: %w", err)
	}
	w.WriteOptionalString(source.Format)
	w.WriteOptionalString(source.ValueType)
	return w.Err()
}

// EncodeBody writes the aggregation body in its fixed field order:
// separator, minDepth, maxDepth, depth, order. Depths outside the 32-bit
// range fail with stream.ErrOutOfRange.
func EncodeBody(w *stream.Writer, c Config) error {
	w.WriteString(c.separator)
	for _, f := range []struct {
		name  string
		value int
	}{
		{domain.FieldMinDepth, c.minDepth},
		{domain.FieldMaxDepth, c.maxDepth},
		{domain.FieldDepth, c.depth},
	} {
		if err := w.WriteOptionalVInt(&f.value); err != nil {
			return fmt.Errorf("encode %s: %w", f.name, err)
		}
	}
	if err := order.Write(w, c.order); err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	return w.Err()
}

// Decode reads a Config written by Encode. The input must be consumed
// exactly and the result must pass Build.
func Decode(data []byte) (Config, error) {
	r := stream.NewReader(data)
	name, err := r.ReadString()
	if err != nil {
		return Config{}, fmt.Errorf("decode name: %w", err)
	}
	b := NewBuilder(name)

	var source domain.ValuesSource
	if source.Field, err = r.ReadOptionalString(); err != nil {
		return Config{}, fmt.Errorf("decode field: %w", err)
	}
	if source.Script, err = readOptionalJSON(r); err != nil {
		return Config{}, fmt.Errorf("decode script: %w", err)
	}
	if source.Missing, err = readOptionalJSON(r); err != nil {
		return Config{}, fmt.Errorf("decode missing: %w", err)
	}
	if source.Format, err = r.ReadOptionalString(); err != nil {
		return Config{}, fmt.Errorf("decode format: %w", err)
	}
	if source.ValueType, err = r.ReadOptionalString(); err != nil {
		return Config{}, fmt.Errorf("decode value_type: %w", err)
	}
	b.ValuesSource(source)

	meta, err := readOptionalJSON(r)
	if err != nil {
		return Config{}, fmt.Errorf("decode metadata: %w", err)
	}
	if meta != nil {
		m, ok := meta.(map[string]any)
		if !ok {
			return Config{}, fmt.Errorf("%w: metadata is %T, not an object", stream.ErrMalformed, meta)
		}
		b.metadata = m
	}
	subAggs, err := r.ReadBytes()
	if err != nil {
		return Config{}, fmt.Errorf("decode sub-aggregations: %w", err)
	}
	if len(subAggs) > 0 {
		b.subAggs = subAggs
	}

	if err := DecodeBody(r, b); err != nil {
		return Config{}, err
	}
	if n := r.Remaining(); n > 0 {
		return Config{}, fmt.Errorf("%w: %d trailing bytes", stream.ErrMalformed, n)
	}
	return b.Build()
}

// DecodeBody reads the fields written by EncodeBody into b. Depth fields
// that are absent keep the builder's values. The order is restored exactly
// as written.
func DecodeBody(r *stream.Reader, b *Builder) error {
	separator, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("decode separator: %w", err)
	}
	b.Separator(separator)

	for _, f := range []struct {
		name string
		set  func(int) *Builder
	}{
		{domain.FieldMinDepth, b.MinDepth},
		{domain.FieldMaxDepth, b.MaxDepth},
		{domain.FieldDepth, b.Depth},
	} {
		v, err := r.ReadOptionalVInt()
		if err != nil {
			return fmt.Errorf("decode %s: %w", f.name, err)
		}
		if v != nil {
			f.set(*v)
		}
	}

	o, err := order.Read(r)
	if err != nil {
		return fmt.Errorf("decode order: %w", err)
	}
	b.order = o
	return nil
}

func writeOptionalJSON(w *stream.Writer, v any) error {
	if v == nil {
		w.WriteBool(false)
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.WriteBool(true)
	w.WriteBytes(data)
	return nil
}

func readOptionalJSON(r *stream.Reader) (any, error) {
	present, err := r.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	data, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	var v any
	if err := decodeJSON(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", stream.ErrMalformed, err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: null value marked present", stream.ErrMalformed)
	}
	return v, nil
}

// bodyBytes is the binary body of c, used as the hash input. Build rejects
// every config whose body cannot be encoded.
func bodyBytes(c Config) []byte {
	w := stream.NewWriter(16)
	_ = EncodeBody(w, c)
	return w.Bytes()
}
