package middleware

import (
	"context"
	"log/slog"

	"github.com/aretw0/pathhierarchy/internal/logging"
	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
	"github.com/aretw0/pathhierarchy/pkg/observability"
	"github.com/aretw0/pathhierarchy/pkg/ports"
)

type instrumentMiddleware struct {
	next    ports.ConfigStore
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewInstrumentationMiddleware counts every store call by outcome under
// "store_<op>" and logs failures. Either argument may be nil.
func NewInstrumentationMiddleware(metrics *observability.Metrics, logger *slog.Logger) Middleware {
	logger = logging.Component(logger, "store")
	return func(next ports.ConfigStore) ports.ConfigStore {
		return &instrumentMiddleware{next: next, metrics: metrics, logger: logger}
	}
}

func (m *instrumentMiddleware) observe(op string, err error, args ...any) {
	m.metrics.Observe("store_"+op, err)
	if err != nil && observability.Outcome(err) == observability.OutcomeError {
		m.logger.Error(op+" failed", append(args, "error", err)...)
		return
	}
	m.logger.Debug(op, append(args, "outcome", observability.Outcome(err))...)
}

func (m *instrumentMiddleware) Save(ctx context.Context, cfg hierarchy.Config) (string, error) {
	key, err := m.next.Save(ctx, cfg)
	m.observe("save", err, "name", cfg.Name(), "key", key)
	return key, err
}

func (m *instrumentMiddleware) Load(ctx context.Context, key string) (hierarchy.Config, error) {
	cfg, err := m.next.Load(ctx, key)
	m.observe("load", err, "key", key)
	return cfg, err
}

func (m *instrumentMiddleware) Delete(ctx context.Context, key string) error {
	err := m.next.Delete(ctx, key)
	m.observe("delete", err, "key", key)
	return err
}

func (m *instrumentMiddleware) List(ctx context.Context) ([]string, error) {
	keys, err := m.next.List(ctx)
	m.observe("list", err, "count", len(keys))
	return keys, err
}
