package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	config := DefaultConfig()
	config.Store.RootDir = filepath.Join(t.TempDir(), "uploads")
	require.NoError(t, config.Validate())
	assert.True(t, filepath.IsAbs(config.Store.RootDir))
	assert.False(t, config.HTTP.TLS())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no addr", func(c *Config) { c.HTTP.Addr = "" }},
		{"cert without key", func(c *Config) { c.HTTP.CertFile = "cert.pem" }},
		{"key without cert", func(c *Config) { c.HTTP.KeyFile = "key.pem" }},
		{"no root", func(c *Config) { c.Store.RootDir = "" }},
		{"zero cache", func(c *Config) { c.Store.CacheCapacity = 0 }},
		{"zero chunk", func(c *Config) { c.Store.ChunkSize = 0 }},
		{"negative buffer", func(c *Config) { c.Store.BufferItems = -1 }},
		{"bad ignore", func(c *Config) { c.Store.Ignore = []string{"[oops"} }},
		{"missing ui dir", func(c *Config) { c.UIDir = "/definitely/not/here" }},
		{"bad rate", func(c *Config) { c.UploadRateLimit = "fast" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Store.RootDir = t.TempDir()
			tt.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestConfigTLS(t *testing.T) {
	config := DefaultConfig()
	config.Store.RootDir = t.TempDir()
	config.HTTP.CertFile = "cert.pem"
	config.HTTP.KeyFile = "key.pem"
	require.NoError(t, config.Validate())
	assert.True(t, config.HTTP.TLS())
}

func TestRootLockFileOutsideTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	lock := NewRootLock(root)
	assert.Equal(t, filepath.Join(filepath.Dir(root), ".uploads.lock"), lock.Path())

	require.NoError(t, lock.Lock())
	assert.ErrorIs(t, NewRootLock(root).Lock(), ErrRootLocked)
	require.NoError(t, lock.Unlock())
	assert.NoFileExists(t, lock.Path())

	// unlocking twice is harmless
	assert.NoError(t, lock.Unlock())
}
