package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vauradkar/letso/internal/pfs"
	"github.com/vauradkar/letso/internal/server/accesslog"
)

type Services struct {
	Store     *pfs.Store
	AccessLog *accesslog.AccessLogger // nil without a log dir

	lock *RootLock
}

// NewServices locks the store root and opens the store on it.
func NewServices(config *Config) (*Services, error) {
	lock := NewRootLock(config.Store.RootDir)
	if err := lock.Lock(); err != nil {
		return nil, err
	}

	opts := append(config.Store.Options(), pfs.WithLogger(slog.Default()))
	store, err := pfs.New(config.Store.RootDir, opts...)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("open store: %w", err)
	}

	var accessLog *accesslog.AccessLogger
	if config.LogDir != "" {
		accessLog, err = accesslog.New(config.LogDir, slog.Default())
		if err != nil {
			lock.Unlock()
			return nil, fmt.Errorf("open access log: %w", err)
		}
	}

	slog.Info("store ready",
		"root", store.Root(),
		"lock", lock.Path(),
		"cache_capacity", config.Store.CacheCapacity,
		"chunk_size", store.ChunkSize(),
	)
	return &Services{
		Store:     store,
		AccessLog: accessLog,
		lock:      lock,
	}, nil
}

func (s *Services) Shutdown() error {
	var errs []error
	if s.AccessLog != nil {
		if err := s.AccessLog.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close access log: %w", err))
		}
	}
	if err := s.lock.Unlock(); err != nil {
		errs = append(errs, fmt.Errorf("release store root: %w", err))
	}
	return errors.Join(errs...)
}
