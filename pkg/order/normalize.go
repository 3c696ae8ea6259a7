package order

import "fmt"

// Default is the order used when a request does not name one:
// document count descending, then key ascending.
func Default() Order {
	return Compound(Count(false))
}

// Normalize returns the canonical form of a single order.
// Key orders and compounds are returned unchanged; anything else gets a
// key-ascending tie-breaker.
func Normalize(o Order) (Order, error) {
	if o.IsZero() {
		return Order{}, ErrEmpty
	}
	if err := check(o); err != nil {
		return Order{}, err
	}
	if o.IsCompound() || o.IsKeyOrder() {
		return o, nil
	}
	return Compound(o), nil
}

// NormalizeList returns the canonical form of an ordered list of criteria.
// A single-element list normalizes exactly like its element, so the same
// request always serializes the same way.
func NormalizeList(orders []Order) (Order, error) {
	switch len(orders) {
	case 0:
		return Order{}, ErrEmpty
	case 1:
		return Normalize(orders[0])
	}
	for _, o := range orders {
		if o.IsZero() {
			return Order{}, ErrEmpty
		}
	}
	return Normalize(Compound(orders...))
}

// check rejects criteria that cannot be rendered in either wire format.
func check(o Order) error {
	for _, e := range o.Elements() {
		if e.kind == KindAggregation && e.path == "" {
			return fmt.Errorf("%w: empty aggregation path", ErrInvalidOrder)
		}
	}
	return nil
}
