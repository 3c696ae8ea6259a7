package hierarchy

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/order"
)

// Builder collects the fields of a Config. It is not safe for concurrent use.
type Builder struct {
	name      string
	separator string
	minDepth  int
	maxDepth  int
	depth     int
	order     order.Order
	source    domain.ValuesSource
	metadata  map[string]any
	subAggs   json.RawMessage
}

// NewBuilder creates a builder with every field at its default.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:      name,
		separator: domain.DefaultSeparator,
		minDepth:  domain.DefaultMinDepth,
		maxDepth:  domain.DefaultMaxDepth,
		depth:     domain.DefaultDepth,
		order:     order.Default(),
	}
}

// Name returns the aggregation name.
func (b *Builder) Name() string { return b.name }

// Separator sets the path segment delimiter.
func (b *Builder) Separator(separator string) *Builder {
	b.separator = separator
	return b
}

// MinDepth sets the lowest level that produces buckets.
func (b *Builder) MinDepth(minDepth int) *Builder {
	b.minDepth = minDepth
	return b
}

// MaxDepth sets the highest level that produces buckets.
func (b *Builder) MaxDepth(maxDepth int) *Builder {
	b.maxDepth = maxDepth
	return b
}

// Depth sets the auxiliary depth parameter. It is not checked against the
// min/max bounds.
func (b *Builder) Depth(depth int) *Builder {
	b.depth = depth
	return b
}

// ValuesSource sets the value-source descriptor.
func (b *Builder) ValuesSource(source domain.ValuesSource) *Builder {
	b.source = source
	return b
}

// Metadata attaches free-form metadata.
func (b *Builder) Metadata(metadata map[string]any) *Builder {
	b.metadata = maps.Clone(metadata)
	return b
}

// SubAggregations attaches the sub-aggregation definitions.
func (b *Builder) SubAggregations(subAggs json.RawMessage) *Builder {
	b.subAggs = cloneRaw(subAggs)
	return b
}

// Order sets the bucket order. A tie-breaker on the bucket key is appended
// unless o is a compound or already ranks by key.
func (b *Builder) Order(o order.Order) error {
	if o.IsZero() {
		return domain.NullArgument(b.name, domain.FieldOrder)
	}
	n, err := order.Normalize(o)
	if err != nil {
		return b.invalidOrder(domain.FieldOrder, err)
	}
	b.order = n
	return nil
}

// Orders sets the bucket order from a list of criteria, first one primary.
// A single criterion is treated exactly like Order.
func (b *Builder) Orders(orders ...order.Order) error {
	n, err := order.NormalizeList(orders)
	if err != nil {
		return b.invalidOrder("orders", err)
	}
	b.order = n
	return nil
}

func (b *Builder) invalidOrder(field string, err error) error {
	if errors.Is(err, order.ErrEmpty) {
		return domain.NullArgument(b.name, field)
	}
	return &domain.InvalidArgumentError{
		Aggregation: b.name,
		Fields:      []string{field},
		Reason:      fmt.Sprintf("[%s] %v: [%s]", field, err, b.name),
	}
}

// Build validates the collected fields and returns the immutable Config.
// The builder can be reused afterwards without affecting the result.
func (b *Builder) Build() (Config, error) {
	c := Config{
		name:      b.name,
		separator: b.separator,
		minDepth:  b.minDepth,
		maxDepth:  b.maxDepth,
		depth:     b.depth,
		order:     b.order,
		source:    b.source,
		metadata:  maps.Clone(b.metadata),
		subAggs:   cloneRaw(b.subAggs),
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
