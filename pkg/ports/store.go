package ports

import (
	"context"

	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
)

// ConfigStore defines the interface for caching finalized configurations.
// Entries are addressed by hierarchy.Config.CacheKey, so configurations that
// compare equal share one entry.
type ConfigStore interface {
	// Save persists the configuration and returns the key it was stored under.
	Save(ctx context.Context, cfg hierarchy.Config) (string, error)

	// Load retrieves the configuration stored under key.
	// Returns domain.ErrConfigNotFound if no entry exists.
	Load(ctx context.Context, key string) (hierarchy.Config, error)

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys of all live entries.
	List(ctx context.Context) ([]string, error)
}
