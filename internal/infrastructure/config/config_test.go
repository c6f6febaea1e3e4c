package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a temp dir so no config.toml or .env is picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ordertrack", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Assistant.BaseURL)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Assistant.Model)
	assert.InDelta(t, 0.7, cfg.Assistant.Temperature, 0.001)
	assert.Equal(t, 15*time.Second, cfg.Assistant.Timeout)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ORDERTRACK_APP_PORT", "8080")
	t.Setenv("ORDERTRACK_STORE_BACKEND", "memory")
	t.Setenv("ORDERTRACK_ASSISTANT_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "sk-test", cfg.Assistant.APIKey)
}

func TestValidate(t *testing.T) {
	t.Run("rejects unknown store backend", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("ORDERTRACK_STORE_BACKEND", "postgres")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store.backend")
	})

	t.Run("rejects out-of-range temperature", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("ORDERTRACK_ASSISTANT_TEMPERATURE", "3.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "temperature")
	})

	t.Run("requires api key in production", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("ORDERTRACK_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api_key")
	})

	t.Run("production with api key passes", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("ORDERTRACK_APP_ENV", "production")
		t.Setenv("ORDERTRACK_ASSISTANT_API_KEY", "sk-test")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}
