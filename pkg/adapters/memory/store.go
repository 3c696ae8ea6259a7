package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
)

// Store implements ports.ConfigStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]hierarchy.Config
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]hierarchy.Config),
	}
}

// Save keeps cfg under its store key. Config values are immutable, so no
// copy is needed.
func (s *Store) Save(ctx context.Context, cfg hierarchy.Config) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := cfg.StoreKey()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = cfg
	return key, nil
}

// Load retrieves the configuration stored under key.
func (s *Store) Load(ctx context.Context, key string) (hierarchy.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.data[key]
	if !ok {
		return hierarchy.Config{}, domain.ErrConfigNotFound
	}
	return cfg, nil
}

// Delete removes the entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
