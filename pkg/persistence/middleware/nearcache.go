package middleware

import (
	"context"
	"errors"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
	"github.com/aretw0/pathhierarchy/pkg/ports"
)

type nearCacheMiddleware struct {
	next  ports.ConfigStore
	local ports.ConfigStore
}

// NewNearCacheMiddleware keeps a local copy of every config read from or
// written to the wrapped store. Loads hit local first. List and misses
// always go to the wrapped store, which stays the source of truth.
//
// Local entries are not expired; pair it with a TTL-less backend or accept
// that a locally cached config outlives its remote entry until deleted
// through this store.
func NewNearCacheMiddleware(local ports.ConfigStore) Middleware {
	return func(next ports.ConfigStore) ports.ConfigStore {
		return &nearCacheMiddleware{next: next, local: local}
	}
}

func (m *nearCacheMiddleware) Save(ctx context.Context, cfg hierarchy.Config) (string, error) {
	key, err := m.next.Save(ctx, cfg)
	if err != nil {
		return "", err
	}
	if _, err := m.local.Save(ctx, cfg); err != nil {
		_ = m.local.Delete(ctx, key)
	}
	return key, nil
}

func (m *nearCacheMiddleware) Load(ctx context.Context, key string) (hierarchy.Config, error) {
	cfg, err := m.local.Load(ctx, key)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, domain.ErrConfigNotFound) {
		return hierarchy.Config{}, err
	}

	cfg, err = m.next.Load(ctx, key)
	if err != nil {
		return hierarchy.Config{}, err
	}
	_, _ = m.local.Save(ctx, cfg)
	return cfg, nil
}

func (m *nearCacheMiddleware) Delete(ctx context.Context, key string) error {
	if err := m.next.Delete(ctx, key); err != nil {
		return err
	}
	return m.local.Delete(ctx, key)
}

func (m *nearCacheMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
