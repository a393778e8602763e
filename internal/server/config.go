package server

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ulule/limiter/v3"
	"github.com/vauradkar/letso/internal/pfs"
	"github.com/vauradkar/letso/internal/utils"
)

const (
	DefaultAddr            = "localhost:3000"
	DefaultRootDir         = "./uploads"
	DefaultUploadRateLimit = "100-S"
)

type Config struct {
	HTTP            HTTPConfig  `mapstructure:"http"`
	Store           StoreConfig `mapstructure:"store"`
	UIDir           string      `mapstructure:"ui_dir"`
	LogDir          string      `mapstructure:"log_dir"`
	UploadRateLimit string      `mapstructure:"upload_rate_limit"`
}

type HTTPConfig struct {
	Addr     string `mapstructure:"addr"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

// TLS reports whether the server terminates TLS itself.
func (c *HTTPConfig) TLS() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

type StoreConfig struct {
	RootDir       string   `mapstructure:"root_dir"`
	CacheCapacity int      `mapstructure:"cache_capacity"`
	ChunkSize     int      `mapstructure:"chunk_size"`
	BufferItems   int      `mapstructure:"buffer_items"`
	Ignore        []string `mapstructure:"ignore"`
}

// Options converts the store section into store options.
func (c *StoreConfig) Options() []pfs.Option {
	return []pfs.Option{
		pfs.WithCacheCapacity(c.CacheCapacity),
		pfs.WithChunkSize(c.ChunkSize),
		pfs.WithBufferItems(c.BufferItems),
		pfs.WithIgnore(c.Ignore...),
	}
}

// DefaultConfig returns a config that serves ./uploads on localhost.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr: DefaultAddr,
		},
		Store: StoreConfig{
			RootDir:       DefaultRootDir,
			CacheCapacity: pfs.DefaultCacheCapacity,
			ChunkSize:     pfs.DefaultChunkSize,
			BufferItems:   pfs.DefaultBufferItems,
		},
		UploadRateLimit: DefaultUploadRateLimit,
	}
}

// Validate checks the config and resolves its directories to absolute paths.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http addr is required")
	}
	if (c.HTTP.CertFile == "") != (c.HTTP.KeyFile == "") {
		return errors.New("cert file and key file must be set together")
	}

	if c.Store.RootDir == "" {
		return errors.New("store root dir is required")
	}
	rootDir, err := utils.ResolvePath(c.Store.RootDir)
	if err != nil {
		return fmt.Errorf("store root dir: %w", err)
	}
	c.Store.RootDir = rootDir

	if c.Store.CacheCapacity <= 0 {
		return fmt.Errorf("store cache capacity must be positive, got %d", c.Store.CacheCapacity)
	}
	if c.Store.ChunkSize <= 0 {
		return fmt.Errorf("store chunk size must be positive, got %d", c.Store.ChunkSize)
	}
	if c.Store.BufferItems < 0 {
		return fmt.Errorf("store buffer items must not be negative, got %d", c.Store.BufferItems)
	}
	for _, pattern := range c.Store.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	if c.UIDir != "" {
		uiDir, err := utils.ResolvePath(c.UIDir)
		if err != nil {
			return fmt.Errorf("ui dir: %w", err)
		}
		if !utils.DirExists(uiDir) {
			return fmt.Errorf("ui dir %q is not a directory", uiDir)
		}
		c.UIDir = uiDir
	}

	if c.LogDir != "" {
		logDir, err := utils.ResolvePath(c.LogDir)
		if err != nil {
			return fmt.Errorf("log dir: %w", err)
		}
		c.LogDir = logDir
	}

	if c.UploadRateLimit != "" {
		if _, err := limiter.NewRateFromFormatted(c.UploadRateLimit); err != nil {
			return fmt.Errorf("upload rate limit: %w", err)
		}
	}

	return nil
}
