package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	config *Config
	svc    *Services
	server *http.Server
}

// New validates config, takes the store root lock and builds the http handler.
func New(config *Config) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	svc, err := NewServices(config)
	if err != nil {
		return nil, err
	}

	httpHandler, err := SetupRoutes(config, svc)
	if err != nil {
		svc.Shutdown()
		return nil, err
	}

	return &Server{
		config: config,
		svc:    svc,
		server: &http.Server{
			Addr:              config.HTTP.Addr,
			Handler:           httpHandler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Start serves until ctx is cancelled or the listener fails, then shuts down.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("letso server start", "addr", s.config.HTTP.Addr, "root", s.svc.Store.Root())
	defer slog.Info("letso server stop")

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := s.runHttpServer(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server start error", "error", err)
			return err
		}
		slog.Info("http server stopped")
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		slog.Info("letso shutdown signal")
		return s.Stop(context.Background())
	})

	return eg.Wait()
}

func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := s.svc.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) runHttpServer() error {
	if s.config.HTTP.TLS() {
		slog.Info("server start tls", "addr", s.config.HTTP.Addr, "cert", s.config.HTTP.CertFile, "key", s.config.HTTP.KeyFile)
		return s.server.ListenAndServeTLS(s.config.HTTP.CertFile, s.config.HTTP.KeyFile)
	}
	slog.Info("server start http", "addr", s.config.HTTP.Addr)
	return s.server.ListenAndServe()
}
