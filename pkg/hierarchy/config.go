package hierarchy

import (
	"encoding/json"
	"maps"
	"math"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/order"
)

// Config is a validated path_hierarchy request. It is immutable and safe for
// concurrent readers.
type Config struct {
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

// Default returns the configuration of a request that sets no field.
func Default(name string) Config {
	c, _ := NewBuilder(name).Build()
	return c
}

// Type returns the aggregation type name.
func (c Config) Type() string { return domain.TypeName }

// Name returns the aggregation name.
func (c Config) Name() string { return c.name }

// Separator returns the path segment delimiter.
func (c Config) Separator() string { return c.separator }

// MinDepth returns the lowest level that produces buckets.
func (c Config) MinDepth() int { return c.minDepth }

// MaxDepth returns the highest level that produces buckets.
func (c Config) MaxDepth() int { return c.maxDepth }

// Depth returns the auxiliary depth parameter.
func (c Config) Depth() int { return c.depth }

// Order returns the normalized bucket order.
func (c Config) Order() order.Order { return c.order }

// ValuesSource returns the value-source descriptor.
func (c Config) ValuesSource() domain.ValuesSource { return c.source }

// Metadata returns a copy of the attached metadata.
func (c Config) Metadata() map[string]any { return maps.Clone(c.metadata) }

// SubAggregations returns a copy of the sub-aggregation definitions.
func (c Config) SubAggregations() json.RawMessage { return cloneRaw(c.subAggs) }

// ShallowCopy returns a Config with the same fields and value source but
// with subAggs and metadata as its attachments.
func (c Config) ShallowCopy(subAggs json.RawMessage, metadata map[string]any) Config {
	cp := c
	cp.subAggs = cloneRaw(subAggs)
	cp.metadata = maps.Clone(metadata)
	return cp
}

// ToBuilder returns a builder seeded with every field of c.
func (c Config) ToBuilder() *Builder {
	return &Builder{
		name:      c.name,
		separator: c.separator,
		minDepth:  c.minDepth,
		maxDepth:  c.maxDepth,
		depth:     c.depth,
		order:     c.order,
		source:    c.source,
		metadata:  maps.Clone(c.metadata),
		subAggs:   cloneRaw(c.subAggs),
	}
}

func (c Config) validate() error {
	if c.order.IsZero() {
		return domain.NullArgument(c.name, domain.FieldOrder)
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{domain.FieldMinDepth, c.minDepth},
		{domain.FieldMaxDepth, c.maxDepth},
		{domain.FieldDepth, c.depth},
	} {
		if f.value < math.MinInt32 || f.value > math.MaxInt32 {
			return domain.IntRange(c.name, f.name, f.value)
		}
	}
	if c.minDepth > c.maxDepth {
		return domain.DepthRange(c.name, c.minDepth, c.maxDepth)
	}
	return nil
}
