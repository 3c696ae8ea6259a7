package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "pathagg:config:"

// noExpiry is the index score for entries saved without a TTL (2100-01-01).
const noExpiry = 4102444800

// Store implements ports.ConfigStore using Redis.
// Payloads are the binary envelope produced by hierarchy.Encode.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Store)

// WithTTL sets the expiration for cached configs.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock overrides the time source used for index scores.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save writes the encoded config and registers its key in the index.
func (s *Store) Save(ctx context.Context, cfg hierarchy.Config) (string, error) {
	data, err := hierarchy.Encode(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	key, err := cfg.StoreKey()
	if err != nil {
		return "", fmt.Errorf("failed to key config: %w", err)
	}

	score := float64(s.now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = noExpiry
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(key), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: key,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to save to redis: %w", err)
	}
	return key, nil
}

// Load retrieves and decodes the config stored under key.
func (s *Store) Load(ctx context.Context, key string) (hierarchy.Config, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return hierarchy.Config{}, domain.ErrConfigNotFound
		}
		return hierarchy.Config{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	cfg, err := hierarchy.Decode(data)
	if err != nil {
		return hierarchy.Config{}, fmt.Errorf("failed to decode config %s: %w", key, err)
	}
	return cfg, nil
}

// Delete removes the entry and its index member.
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(key))
	pipe.ZRem(ctx, s.indexKey(), key)

	_, err := pipe.Exec(ctx)
	return err
}

// List prunes expired members from the index and returns the rest.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(s.now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired configs: %w", err)
	}

	keys, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}
	return keys, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
