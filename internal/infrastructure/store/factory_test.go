package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordertrack/backend/internal/infrastructure/config"
)

func TestFactoryCreate(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		f := NewFactory(config.StoreConfig{Backend: "memory"}, config.RedisConfig{})
		repo, err := f.Create()
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, repo)
	})

	t.Run("empty backend defaults to memory", func(t *testing.T) {
		f := NewFactory(config.StoreConfig{}, config.RedisConfig{})
		repo, err := f.Create()
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, repo)
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		f := NewFactory(config.StoreConfig{Backend: "postgres"}, config.RedisConfig{})
		_, err := f.Create()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres")
	})

	t.Run("unreachable redis falls back to memory", func(t *testing.T) {
		f := NewFactory(
			config.StoreConfig{Backend: "redis"},
			config.RedisConfig{Host: "127.0.0.1", Port: 1},
		)
		repo, err := f.Create()
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, repo)
	})

	t.Run("unreachable redis errors when fallback disabled", func(t *testing.T) {
		f := NewFactory(
			config.StoreConfig{Backend: "redis"},
			config.RedisConfig{Host: "127.0.0.1", Port: 1},
			WithMemoryFallback(false),
		)
		_, err := f.Create()
		assert.Error(t, err)
	})
}
