package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vauradkar/letso/internal/server"
	"github.com/vauradkar/letso/internal/version"
)

const envPrefix = "LETSO"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "letso-server",
		Short:   "Letso file server",
		Version: version.Detailed(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			closeLog, err := setupLogger(cfg.LogDir)
			if err != nil {
				return err
			}
			defer closeLog()

			cmd.SilenceUsage = true
			slog.Info("letso server", "version", version.Detailed(), "root", cfg.Store.RootDir, "addr", cfg.HTTP.Addr)

			s, err := server.New(cfg)
			if err != nil {
				return err
			}
			defer slog.Info("Bye!")
			return s.Start(cmd.Context())
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringP("config", "c", "", "Path to a JSON or YAML config file")
	cmd.Flags().String("env-file", ".env", "Path to a dotenv file loaded before reading the environment")
	cmd.Flags().StringP("bind", "b", server.DefaultAddr, "Address to bind the server")
	cmd.Flags().StringP("root", "r", server.DefaultRootDir, "Directory to serve")
	cmd.Flags().String("cert", "", "Path to the certificate file")
	cmd.Flags().String("key", "", "Path to the key file")
	cmd.Flags().String("ui", "", "Directory of a static web UI to serve at /")
	cmd.Flags().String("log-dir", "", "Directory for rotated log files")
	return cmd
}

func main() {
	// Setup root context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges defaults, the config file, LETSO_* environment variables and
// flags, in increasing order of precedence.
func loadConfig(cmd *cobra.Command) (*server.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("env file '%s': %w", envFile, err)
		}
	}

	v := viper.New()
	cfg := server.DefaultConfig()

	// every key needs a default so that env-only values reach Unmarshal
	v.SetDefault("http.addr", cfg.HTTP.Addr)
	v.SetDefault("http.cert_file", cfg.HTTP.CertFile)
	v.SetDefault("http.key_file", cfg.HTTP.KeyFile)
	v.SetDefault("store.root_dir", cfg.Store.RootDir)
	v.SetDefault("store.cache_capacity", cfg.Store.CacheCapacity)
	v.SetDefault("store.chunk_size", cfg.Store.ChunkSize)
	v.SetDefault("store.buffer_items", cfg.Store.BufferItems)
	v.SetDefault("store.ignore", cfg.Store.Ignore)
	v.SetDefault("ui_dir", cfg.UIDir)
	v.SetDefault("log_dir", cfg.LogDir)
	v.SetDefault("upload_rate_limit", cfg.UploadRateLimit)

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config read '%s': %w", configFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	flagKeys := map[string]string{
		"http.addr":      "bind",
		"http.cert_file": "cert",
		"http.key_file":  "key",
		"store.root_dir": "root",
		"ui_dir":         "ui",
		"log_dir":        "log-dir",
	}
	for key, flag := range flagKeys {
		// only explicit flags override the file and environment
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}
	return cfg, nil
}
