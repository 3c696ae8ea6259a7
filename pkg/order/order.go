package order

import (
	"errors"
	"strings"
)

// ErrEmpty is returned when an order or an order list is missing.
var ErrEmpty = errors.New("order must not be empty")

// Kind tags the variant held by an Order.
type Kind uint8

const (
	// KindNone is the zero value: no order.
	KindNone Kind = iota
	// KindCount ranks buckets by document count.
	KindCount
	// KindKey ranks buckets by their key.
	KindKey
	// KindAggregation ranks buckets by a sub-aggregation value.
	KindAggregation
	// KindCompound applies several criteria in priority order.
	KindCompound
)

func (k Kind) String() string {
	switch k {
	case KindCount:
		return "count"
	case KindKey:
		return "key"
	case KindAggregation:
		return "aggregation"
	case KindCompound:
		return "compound"
	default:
		return "none"
	}
}

// Order is an immutable ranking criterion. The zero value means "no order".
type Order struct {
	kind  Kind
	asc   bool
	path  string
	elems []Order
}

// Count ranks buckets by document count.
func Count(asc bool) Order { return Order{kind: KindCount, asc: asc} }

// Key ranks buckets by key.
func Key(asc bool) Order { return Order{kind: KindKey, asc: asc} }

// Aggregation ranks buckets by the value found at path in each bucket's
// sub-aggregations, e.g. "sales.avg".
func Aggregation(path string, asc bool) Order {
	return Order{kind: KindAggregation, asc: asc, path: path}
}

// Compound builds a compound order. Nested compounds are flattened and zero
// values dropped. Key(true) is appended unless the last element already
// ranks by key. A result with a single element is that element.
func Compound(orders ...Order) Order {
	elems := flatten(orders)
	if len(elems) == 0 || !elems[len(elems)-1].IsKeyOrder() {
		elems = append(elems, Key(true))
	}
	return compoundOf(elems)
}

// compoundOf wraps elems without adding a tie-breaker.
func compoundOf(elems []Order) Order {
	if len(elems) == 1 {
		return elems[0]
	}
	return Order{kind: KindCompound, elems: elems}
}

func flatten(orders []Order) []Order {
	out := make([]Order, 0, len(orders)+1)
	for _, o := range orders {
		switch o.kind {
		case KindNone:
		case KindCompound:
			out = append(out, o.elems...)
		default:
			out = append(out, o)
		}
	}
	return out
}

// Kind returns the variant tag.
func (o Order) Kind() Kind { return o.kind }

// IsZero reports whether o holds no order.
func (o Order) IsZero() bool { return o.kind == KindNone }

// IsCompound reports whether o is a compound order.
func (o Order) IsCompound() bool { return o.kind == KindCompound }

// IsKeyOrder reports whether o ranks by bucket key, in either direction.
func (o Order) IsKeyOrder() bool { return o.kind == KindKey }

// Ascending reports the direction of a single criterion.
// It is false for compounds.
func (o Order) Ascending() bool { return o.asc }

// Path returns the sub-aggregation path of an aggregation criterion.
func (o Order) Path() string { return o.path }

// Elements returns a copy of the criteria of a compound, or o itself for a
// single criterion.
func (o Order) Elements() []Order {
	switch o.kind {
	case KindNone:
		return nil
	case KindCompound:
		return append([]Order(nil), o.elems...)
	default:
		return []Order{o}
	}
}

// Equal reports structural equality, including nesting and direction.
func (o Order) Equal(other Order) bool {
	if o.kind != other.kind {
		return false
	}
	switch o.kind {
	case KindNone:
		return true
	case KindCompound:
		if len(o.elems) != len(other.elems) {
			return false
		}
		for i := range o.elems {
			if !o.elems[i].Equal(other.elems[i]) {
				return false
			}
		}
		return true
	case KindAggregation:
		return o.asc == other.asc && o.path == other.path
	default:
		return o.asc == other.asc
	}
}

func (o Order) String() string {
	switch o.kind {
	case KindNone:
		return "<none>"
	case KindCompound:
		parts := make([]string, len(o.elems))
		for i, e := range o.elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return o.fieldName() + " " + direction(o.asc)
	}
}

func (o Order) fieldName() string {
	switch o.kind {
	case KindCount:
		return keyCount
	case KindKey:
		return keyKey
	default:
		return o.path
	}
}

func direction(asc bool) string {
	if asc {
		return "asc"
	}
	return "desc"
}
