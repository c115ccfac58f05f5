package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	for _, key := range []string{"API_BASE_URL", "API_TIMEOUT", "SESSION_BACKEND", "SESSION_FILE", "REDIS_HOST", "REDIS_PORT"} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9090", cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, SessionBackendFile, cfg.Session.Backend)
	assert.Equal(t, "session.json", filepath.Base(cfg.Session.File))
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
	assert.Equal(t, "healthcare:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 3, cfg.Redis.ConnectAttempts)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_APIConfig(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://backend.test:9090/")
	t.Setenv("API_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://backend.test:9090", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "http://backend.test:9090/availabilities", cfg.API.ResourceURL("/availabilities/"))
}

func TestLoad_SessionBackend(t *testing.T) {
	t.Run("redis", func(t *testing.T) {
		t.Setenv("SESSION_BACKEND", "redis")
		t.Setenv("REDIS_HOST", "cache")
		t.Setenv("REDIS_PORT", "6380")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
		assert.Equal(t, "cache:6380", cfg.Redis.RedisAddr())
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("SESSION_BACKEND", "cookie")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("REDIS_PORT", "not-a-port")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_BASE_URL=http://dotenv.test\n"), 0o600))
	t.Setenv("API_BASE_URL", "")
	os.Unsetenv("API_BASE_URL")
	t.Cleanup(func() { os.Unsetenv("API_BASE_URL") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv.test", cfg.API.BaseURL)
}
