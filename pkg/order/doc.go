/*
Package order models how sibling buckets are ranked.

An Order is a tagged variant: either a single criterion (by document count, by
bucket key, or by a sub-aggregation value) or a compound, an ordered list of
single criteria applied in priority order.

# Tie-breaking

Normalize guarantees that every order it returns ends in a deterministic
criterion: a bare non-key criterion is wrapped in a compound that appends
Key(true). Compound itself appends Key(true) whenever its last element is not
a key order. An existing compound is trusted as-is.

	o, err := order.NormalizeList([]order.Order{order.Count(false)})
	// o == [_count desc, _key asc]
*/
package order
