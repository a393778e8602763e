package pfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultChunkSize   = 100
	DefaultBufferItems = 100
)

type config struct {
	cacheCapacity int
	chunkSize     int
	bufferItems   int
	ignore        []string
	logger        *slog.Logger
}

// Option configures a Store.
type Option func(*config)

// WithCacheCapacity sets the maximum number of cached snapshots.
func WithCacheCapacity(n int) Option {
	return func(c *config) {
		c.cacheCapacity = n
	}
}

// WithChunkSize sets the number of entries per streamed batch.
func WithChunkSize(n int) Option {
	return func(c *config) {
		c.chunkSize = n
	}
}

// WithBufferItems sets how many batches may be queued ahead of a slow consumer.
func WithBufferItems(n int) Option {
	return func(c *config) {
		c.bufferItems = n
	}
}

// WithIgnore sets doublestar patterns of entries hidden from browse and sync.
func WithIgnore(patterns ...string) Option {
	return func(c *config) {
		c.ignore = patterns
	}
}

// WithLogger sets the logger used by the store and its walker.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Store serves one directory tree. All operations are stateless requests
// against the root plus the shared snapshot cache, and are safe for concurrent use.
type Store struct {
	root        string
	cache       *Cache
	walker      *Walker
	chunkSize   int
	bufferItems int
	logger      *slog.Logger
}

// New opens a store rooted at root, creating the directory if needed.
func New(root string, opts ...Option) (*Store, error) {
	cfg := &config{
		cacheCapacity: DefaultCacheCapacity,
		chunkSize:     DefaultChunkSize,
		bufferItems:   DefaultBufferItems,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.chunkSize <= 0 {
		return nil, newError(ErrInvalidArgument, "chunk size", "must be positive")
	}
	if cfg.bufferItems < 0 {
		return nil, newError(ErrInvalidArgument, "buffer items", "must not be negative")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, newError(ErrInvalidPath, root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, newError(ErrCreateFailure, "upload directory", err)
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, newError(ErrInvalidPath, root, err)
	}

	cache, err := NewCache(cfg.cacheCapacity)
	if err != nil {
		return nil, newError(ErrInvalidArgument, "cache capacity", err)
	}
	logger := cfg.logger.With("component", "pfs")
	walker, err := NewWalker(abs, cache, cfg.ignore, logger)
	if err != nil {
		return nil, err
	}

	return &Store{
		root:        abs,
		cache:       cache,
		walker:      walker,
		chunkSize:   cfg.chunkSize,
		bufferItems: cfg.bufferItems,
		logger:      logger,
	}, nil
}

// Root returns the canonical absolute root directory.
func (s *Store) Root() string {
	return s.root
}

// ChunkSize is the configured number of entries per streamed batch.
func (s *Store) ChunkSize() int {
	return s.chunkSize
}

// CacheStats returns the shared cache counters.
func (s *Store) CacheStats() CacheStats {
	return s.cache.Stats()
}

// abs resolves p under the root. Path construction already excluded traversal.
func (s *Store) abs(p Path) string {
	return filepath.Join(s.root, p.NativePath())
}

// Browse lists the immediate children of a directory.
func (s *Store) Browse(ctx context.Context, p Path) (*Directory, error) {
	items, err := s.walker.Shallow(ctx, p)
	if err != nil {
		return nil, err
	}
	return &Directory{CurrentPath: p, Items: items}, nil
}

// Recurse returns every file and directory below p.
func (s *Store) Recurse(ctx context.Context, p Path) ([]SyncItem, error) {
	return s.walker.Collect(ctx, p)
}

// ExchangeDeltas streams every entry below req.Dest into sink in batches of
// chunkSize, then closes sink. There is no error result: a failed walk is logged
// and the stream simply ends early, which consumers must treat as incomplete.
func (s *Store) ExchangeDeltas(ctx context.Context, req *SyncRequest, chunkSize int, sink chan<- []SyncItem) {
	defer close(sink)

	s.logger.Debug("exchange deltas",
		"base_dir", s.root,
		"full_path", s.abs(req.Dest),
		"dest", req.Dest.String(),
		"known", len(req.KnownState),
	)
	if err := s.walker.Deep(ctx, req.Dest, chunkSize, sink); err != nil {
		s.logger.Error("exchange deltas aborted", "dest", req.Dest.String(), "error", err)
	}
}

// Stream starts a background walk of req.Dest bound to ctx and returns its batches.
// The channel holds up to the configured buffer of batches and is closed when the
// walk ends. Cancelling ctx stops the walk at its next blocked send.
func (s *Store) Stream(ctx context.Context, req *SyncRequest) <-chan []SyncItem {
	ch := make(chan []SyncItem, s.bufferItems)
	id := uuid.NewString()
	go func() {
		started := time.Now()
		s.logger.Debug("stream start", "id", id, "dest", req.Dest.String())
		s.ExchangeDeltas(ctx, req, s.chunkSize, ch)
		s.logger.Debug("stream end", "id", id, "took", time.Since(started))
	}()
	return ch
}

// Write stores data at p and stamps it with the declared modification time.
//
// If setting the time fails the bytes stay written without the declared mtime and
// the cache is left untouched. On success stats is written through to the cache.
func (s *Store) Write(ctx context.Context, p Path, data []byte, overwrite bool, stats *FileStat) error {
	if p.IsRoot() {
		return newError(ErrInvalidArgument, "write", "path has no file name")
	}
	if stats == nil {
		return newError(ErrInvalidArgument, "write", "missing file stats")
	}
	full := s.abs(p)

	if _, err := os.Stat(full); err == nil && !overwrite {
		return newError(ErrAlreadyExists, full, nil)
	}

	parent, _ := p.Parent()
	if err := os.MkdirAll(s.abs(parent), 0o755); err != nil {
		s.logger.Error("failed to create directory", "path", s.abs(parent), "error", err)
		return newError(ErrCreateFailure, parent.String(), fmt.Sprintf("Failed to create directories: %s", err))
	}

	if err := os.WriteFile(full, data, 0o644); err != nil {
		return newError(ErrWriteFailure, full, err)
	}

	mtime, err := ParseTime(stats.MTime)
	if err != nil {
		return err
	}
	if err := os.Chtimes(full, time.Time{}, mtime); err != nil {
		return newError(ErrWriteFailure, full, err)
	}

	s.cache.Put(p, *stats)
	return nil
}

// DeleteFile removes a regular file and drops it from the cache.
func (s *Store) DeleteFile(ctx context.Context, p Path) error {
	full := s.abs(p)
	if err := checkFile(full); err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		return newError(ErrDeleteFailure, full, err)
	}
	s.cache.Invalidate(p)
	return nil
}

// ReadFile returns the content of a regular file.
func (s *Store) ReadFile(ctx context.Context, p Path) ([]byte, error) {
	full := s.abs(p)
	if err := checkFile(full); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, newError(ErrReadFailure, full, err)
	}
	return data, nil
}

// Lookup probes a single path. Stats is nil when nothing exists at p.
// Regular files carry a digest, served from the cache when possible.
func (s *Store) Lookup(ctx context.Context, p Path) (*SyncItem, error) {
	full := s.abs(p)
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return &SyncItem{Path: p}, nil
	} else if err != nil {
		return nil, newError(ErrReadFailure, "metadata", err)
	}
	stat := StatInfo(info)
	if info.Mode().IsRegular() {
		if stat, err = s.walker.resolveFile(p, full); err != nil {
			return nil, err
		}
	}
	return &SyncItem{Path: p, Stats: &stat}, nil
}

func checkFile(full string) error {
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return newError(ErrInvalidArgument, "File does not exist", nil)
	} else if err != nil {
		return newError(ErrReadFailure, full, err)
	}
	if info.IsDir() {
		return newError(ErrInvalidArgument, "Path is a directory", nil)
	}
	return nil
}
