package hierarchy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/pathhierarchy/pkg/order"
)

// Aggregator is the runtime aggregator produced by the execution engine.
// This package never inspects it.
type Aggregator interface {
	Name() string
}

// LaunchRequest is everything the execution engine receives for one
// path_hierarchy aggregation.
type LaunchRequest struct {
	Name      string
	Source    any // resolved value source
	Separator string
	MinDepth  int
	MaxDepth  int
	Order     order.Order

	SearchContext   any
	Parent          Aggregator
	SubAggregations json.RawMessage
	Metadata        map[string]any
}

// Launcher builds runtime aggregators. It is implemented by the execution
// engine.
type Launcher interface {
	Launch(ctx context.Context, req LaunchRequest) (Aggregator, error)
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, req LaunchRequest) (Aggregator, error)

// Launch calls f(ctx, req).
func (f LauncherFunc) Launch(ctx context.Context, req LaunchRequest) (Aggregator, error) {
	return f(ctx, req)
}

// Launch validates c again and hands it to the execution engine.
// Validation failures are the same InvalidArgumentError Build returns.
func (c Config) Launch(ctx context.Context, l Launcher, source, searchContext any, parent Aggregator) (Aggregator, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agg, err := l.Launch(ctx, LaunchRequest{
		Name:            c.name,
		Source:          source,
		Separator:       c.separator,
		MinDepth:        c.minDepth,
		MaxDepth:        c.maxDepth,
		Order:           c.order,
		SearchContext:   searchContext,
		Parent:          parent,
		SubAggregations: c.SubAggregations(),
		Metadata:        c.Metadata(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch aggregator [%s]: %w", c.name, err)
	}
	return agg, nil
}
