/*
Package hierarchy holds the request configuration of the path_hierarchy
aggregation.

Construction is two-phase. A Builder collects fields (from setters or from the
text format) and Build validates them into an immutable Config:

	b := hierarchy.NewBuilder("paths").Separator("::").MaxDepth(4)
	if err := b.Order(order.Count(false)); err != nil {
		return err
	}
	cfg, err := b.Build()

Only the order is checked when it is set; the depth range is checked by Build,
after every field (and attachment) has been supplied.

A Config travels in two forms: the JSON text format (MarshalJSON, Parse), which
omits fields left at their defaults, and the binary node-to-node format
(Encode, Decode). Both round-trip to a Config that is Equal to the original.
Equal and Hash cover the separator, the depth bounds, depth and the order.
*/
package hierarchy
