package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vauradkar/letso/internal/server"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cmd := newRootCmd()

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	defaults := server.DefaultConfig()
	assert.Equal(t, defaults.HTTP, cfg.HTTP)
	assert.Equal(t, defaults.Store.RootDir, cfg.Store.RootDir)
	assert.Equal(t, defaults.Store.CacheCapacity, cfg.Store.CacheCapacity)
	assert.Equal(t, defaults.Store.ChunkSize, cfg.Store.ChunkSize)
	assert.Equal(t, defaults.Store.BufferItems, cfg.Store.BufferItems)
	assert.Empty(t, cfg.Store.Ignore)
	assert.Equal(t, defaults.UploadRateLimit, cfg.UploadRateLimit)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("LETSO_HTTP_ADDR", ":8080")
	t.Setenv("LETSO_HTTP_CERT_FILE", "test-cert.pem")
	t.Setenv("LETSO_HTTP_KEY_FILE", "test-key.pem")
	t.Setenv("LETSO_STORE_ROOT_DIR", "/srv/letso")
	t.Setenv("LETSO_STORE_CACHE_CAPACITY", "42")
	t.Setenv("LETSO_STORE_CHUNK_SIZE", "7")
	t.Setenv("LETSO_STORE_BUFFER_ITEMS", "3")
	t.Setenv("LETSO_UPLOAD_RATE_LIMIT", "10-M")

	cfg, err := loadConfig(newRootCmd())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "test-cert.pem", cfg.HTTP.CertFile)
	assert.Equal(t, "test-key.pem", cfg.HTTP.KeyFile)
	assert.Equal(t, "/srv/letso", cfg.Store.RootDir)
	assert.Equal(t, 42, cfg.Store.CacheCapacity)
	assert.Equal(t, 7, cfg.Store.ChunkSize)
	assert.Equal(t, 3, cfg.Store.BufferItems)
	assert.Equal(t, "10-M", cfg.UploadRateLimit)
}

func TestLoadConfigYAML(t *testing.T) {
	configFile := writeConfig(t, "letso.yaml", `
http:
  cert_file: test-cert.pem
  key_file: test-key.pem

store:
  root_dir: /data/files
  chunk_size: 25
  ignore:
    - "**/*.tmp"
    - ".git"

ui_dir: /srv/ui
log_dir: /var/log/letso
`)
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("config", configFile))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, server.DefaultAddr, cfg.HTTP.Addr)
	assert.Equal(t, "test-cert.pem", cfg.HTTP.CertFile)
	assert.Equal(t, "test-key.pem", cfg.HTTP.KeyFile)
	assert.Equal(t, "/data/files", cfg.Store.RootDir)
	assert.Equal(t, 25, cfg.Store.ChunkSize)
	assert.Equal(t, []string{"**/*.tmp", ".git"}, cfg.Store.Ignore)
	assert.Equal(t, "/srv/ui", cfg.UIDir)
	assert.Equal(t, "/var/log/letso", cfg.LogDir)
	assert.Equal(t, server.DefaultUploadRateLimit, cfg.UploadRateLimit)
}

func TestLoadConfigJSON(t *testing.T) {
	configFile := writeConfig(t, "letso.json", `
{
	"http": {
		"addr": "localhost:38080"
	},
	"store": {
		"root_dir": "path/to/root",
		"cache_capacity": 10,
		"buffer_items": 0
	},
	"upload_rate_limit": "5-S"
}
`)
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("config", configFile))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "localhost:38080", cfg.HTTP.Addr)
	assert.Equal(t, "", cfg.HTTP.CertFile)
	assert.Equal(t, "path/to/root", cfg.Store.RootDir)
	assert.Equal(t, 10, cfg.Store.CacheCapacity)
	assert.Equal(t, 0, cfg.Store.BufferItems)
	assert.Equal(t, server.DefaultConfig().Store.ChunkSize, cfg.Store.ChunkSize)
	assert.Equal(t, "5-S", cfg.UploadRateLimit)
}

func TestLoadConfigPrecedence(t *testing.T) {
	configFile := writeConfig(t, "letso.yaml", `
http:
  addr: from-file:1
store:
  root_dir: /from/file
ui_dir: /from/file/ui
`)
	t.Setenv("LETSO_STORE_ROOT_DIR", "/from/env")
	t.Setenv("LETSO_UI_DIR", "/from/env/ui")

	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("config", configFile))
	require.NoError(t, cmd.Flags().Set("ui", "/from/flag/ui"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "from-file:1", cfg.HTTP.Addr)
	assert.Equal(t, "/from/env", cfg.Store.RootDir)
	assert.Equal(t, "/from/flag/ui", cfg.UIDir)
}

func TestLoadConfigEnvFile(t *testing.T) {
	envFile := writeConfig(t, "test.env", "LETSO_STORE_CHUNK_SIZE=9\n")
	t.Cleanup(func() { os.Unsetenv("LETSO_STORE_CHUNK_SIZE") })

	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("env-file", envFile))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Store.ChunkSize)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")))

	_, err := loadConfig(cmd)
	assert.Error(t, err)
}

func TestSetupLoggerWritesFile(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	closeLog, err := setupLogger(logDir)
	require.NoError(t, err)
	t.Cleanup(closeLog)

	assert.DirExists(t, logDir)
}
