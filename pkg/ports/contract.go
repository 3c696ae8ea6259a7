package ports

import (
	"context"
	"testing"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
	"github.com/aretw0/pathhierarchy/pkg/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunConfigStoreContract runs a suite of tests to verify that a ConfigStore implementation
// adheres to the defined interface contract.
func RunConfigStoreContract(t *testing.T, store ConfigStore) {
	ctx := context.Background()

	build := func(t *testing.T, name string, minDepth int) hierarchy.Config {
		b := hierarchy.NewBuilder(name).
			Separator(".").
			MinDepth(minDepth).
			MaxDepth(4).
			ValuesSource(domain.ValuesSource{Field: "path"}).
			Metadata(map[string]any{"owner": "contract"})
		require.NoError(t, b.Order(order.Aggregation("max_size", false)))
		cfg, err := b.Build()
		require.NoError(t, err)
		return cfg
	}

	t.Run("Save and Load", func(t *testing.T) {
		cfg := build(t, "contract", 1)

		key, err := store.Save(ctx, cfg)
		require.NoError(t, err, "Save should not return error")
		want, err := cfg.StoreKey()
		require.NoError(t, err)
		assert.Equal(t, want, key)

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, cfg.Equal(loaded), "loaded config should equal the saved one")
		assert.Equal(t, cfg.Name(), loaded.Name())
		assert.Equal(t, cfg.ValuesSource(), loaded.ValuesSource())
		assert.Equal(t, cfg.Metadata(), loaded.Metadata())
		assert.Equal(t, cfg.Hash(), loaded.Hash())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "0000000000000000")
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	t.Run("Equal Configs Share a Key", func(t *testing.T) {
		a := build(t, "first", 2)
		b := build(t, "second", 2)

		ka, err := store.Save(ctx, a)
		require.NoError(t, err)
		kb, err := store.Save(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, ka, kb)

		loaded, err := store.Load(ctx, kb)
		require.NoError(t, err)
		assert.Equal(t, "second", loaded.Name(), "last save wins")
		require.NoError(t, store.Delete(ctx, kb))
	})

	t.Run("Different Fields Keep Separate Keys", func(t *testing.T) {
		onPath := build(t, "by-path", 2)
		b := hierarchy.NewBuilder("by-dir").
			Separator(".").
			MinDepth(2).
			MaxDepth(4).
			ValuesSource(domain.ValuesSource{Field: "dir"}).
			Metadata(map[string]any{"owner": "contract"})
		require.NoError(t, b.Order(order.Aggregation("max_size", false)))
		onDir, err := b.Build()
		require.NoError(t, err)
		require.True(t, onPath.Equal(onDir))

		kp, err := store.Save(ctx, onPath)
		require.NoError(t, err)
		kd, err := store.Save(ctx, onDir)
		require.NoError(t, err)
		assert.NotEqual(t, kp, kd)

		loaded, err := store.Load(ctx, kp)
		require.NoError(t, err)
		assert.Equal(t, "by-path", loaded.Name())
		assert.Equal(t, "path", loaded.ValuesSource().Field)

		loaded, err = store.Load(ctx, kd)
		require.NoError(t, err)
		assert.Equal(t, "by-dir", loaded.Name())
		assert.Equal(t, "dir", loaded.ValuesSource().Field)

		require.NoError(t, store.Delete(ctx, kp))
		require.NoError(t, store.Delete(ctx, kd))
	})

	t.Run("Delete", func(t *testing.T) {
		key, err := store.Save(ctx, build(t, "doomed", 3))
		require.NoError(t, err)

		err = store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrConfigNotFound, "Load after Delete should return ErrConfigNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Delete of a missing key should succeed")
	})

	t.Run("List", func(t *testing.T) {
		k1, err := store.Save(ctx, hierarchy.Default("one"))
		require.NoError(t, err)
		k2, err := store.Save(ctx, build(t, "two", 0))
		require.NoError(t, err)

		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
