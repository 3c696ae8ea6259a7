package order

import (
	"fmt"

	"github.com/aretw0/pathhierarchy/pkg/stream"
)

// Wire ids. Single count/key criteria carry their direction in the id.
const (
	idAggregation byte = 0
	idCountDesc   byte = 1
	idCountAsc    byte = 2
	idKeyDesc     byte = 3
	idKeyAsc      byte = 4
	idCompound    byte = 0xFF
)

// Write appends the binary form of o to w.
func Write(w *stream.Writer, o Order) error {
	switch o.kind {
	case KindNone:
		return ErrEmpty
	case KindCount:
		_ = w.WriteByte(pick(o.asc, idCountAsc, idCountDesc))
	case KindKey:
		_ = w.WriteByte(pick(o.asc, idKeyAsc, idKeyDesc))
	case KindAggregation:
		_ = w.WriteByte(idAggregation)
		w.WriteBool(o.asc)
		w.WriteString(o.path)
		return w.Err()
	case KindCompound:
		_ = w.WriteByte(idCompound)
		if err := w.WriteVInt(len(o.elems)); err != nil {
			return err
		}
		for _, e := range o.elems {
			if e.IsCompound() {
				return fmt.Errorf("%w: nested compound", ErrInvalidOrder)
			}
			if err := Write(w, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// Read consumes an order written by Write. The structure is restored as
// written; no tie-breaker is added.
func Read(r *stream.Reader) (Order, error) {
	id, err := r.ReadByte()
	if err != nil {
		return Order{}, err
	}
	if id != idCompound {
		return readSingle(r, id)
	}

	n, err := r.ReadVInt()
	if err != nil {
		return Order{}, err
	}
	if n < 2 {
		return Order{}, fmt.Errorf("%w: compound order of %d elements", stream.ErrMalformed, n)
	}
	// Every element takes at least one byte.
	if n > r.Remaining() {
		return Order{}, stream.ErrTruncated
	}
	elems := make([]Order, 0, n)
	for i := 0; i < n; i++ {
		id, err := r.ReadByte()
		if err != nil {
			return Order{}, err
		}
		e, err := readSingle(r, id)
		if err != nil {
			return Order{}, fmt.Errorf("compound element %d: %w", i, err)
		}
		elems = append(elems, e)
	}
	return Order{kind: KindCompound, elems: elems}, nil
}

func readSingle(r *stream.Reader, id byte) (Order, error) {
	switch id {
	case idCountDesc:
		return Count(false), nil
	case idCountAsc:
		return Count(true), nil
	case idKeyDesc:
		return Key(false), nil
	case idKeyAsc:
		return Key(true), nil
	case idAggregation:
		asc, err := r.ReadBool()
		if err != nil {
			return Order{}, err
		}
		path, err := r.ReadString()
		if err != nil {
			return Order{}, err
		}
		if path == "" {
			return Order{}, fmt.Errorf("%w: empty aggregation path", stream.ErrMalformed)
		}
		return Aggregation(path, asc), nil
	default:
		return Order{}, fmt.Errorf("%w: unknown order id 0x%02x", stream.ErrMalformed, id)
	}
}

func pick(cond bool, a, b byte) byte {
	if cond {
		return a
	}
	return b
}
