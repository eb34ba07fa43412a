package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Storage.Backend)
	assert.Equal(t, "eu-north-1", cfg.Storage.FallbackRegion)
	assert.Equal(t, "auto", cfg.Storage.UseSSL)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
	assert.Equal(t, 1000, cfg.Storage.PageSize)
	assert.Equal(t, "iron-navigator.db", cfg.Accounts.Path)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.False(t, cfg.Server.SecureCookies)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "aws")
	t.Setenv("STORAGE_FALLBACK_REGION", "eu-west-3")
	t.Setenv("STORAGE_ACCESS_KEY", "AKIA")
	t.Setenv("STORAGE_SECRET_KEY", "secret")
	t.Setenv("SERVER_SECURE_COOKIES", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "aws", cfg.Storage.Backend)
	assert.Equal(t, "eu-west-3", cfg.Storage.FallbackRegion)
	assert.Equal(t, "AKIA", cfg.Storage.FallbackIdentity().AccessKey)
	assert.True(t, cfg.Server.SecureCookies)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STORAGE_ENDPOINT=minio:9000\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("STORAGE_ENDPOINT")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "minio:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_InvalidBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "ftp")

	_, err := LoadConfig(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Backend")
}

func TestLoadConfig_SecretRequiredWithAccessKey(t *testing.T) {
	t.Setenv("STORAGE_ACCESS_KEY", "AKIA")

	_, err := LoadConfig(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SecretKey")
}

func TestLoadConfig_ShortSessionKey(t *testing.T) {
	t.Setenv("SERVER_SESSION_KEY", "short")

	_, err := LoadConfig(t.TempDir())

	assert.Error(t, err)
}
