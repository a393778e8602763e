package pfs

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

const (
	collectChunkSize   = 20
	collectBufferItems = 100
)

// Walker visits entries below the store root and resolves their snapshots,
// preferring the cache over hashing.
type Walker struct {
	root   string
	cache  *Cache
	ignore []string
	logger *slog.Logger
}

// NewWalker creates a walker over root. ignore holds doublestar patterns matched
// against slash separated paths relative to root; matching entries are skipped.
func NewWalker(root string, cache *Cache, ignore []string, logger *slog.Logger) (*Walker, error) {
	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, newError(ErrInvalidArgument, "ignore pattern", pattern)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{
		root:   root,
		cache:  cache,
		ignore: ignore,
		logger: logger,
	}, nil
}

func (w *Walker) abs(rel Path) string {
	return filepath.Join(w.root, rel.NativePath())
}

func (w *Walker) ignored(rel Path) bool {
	name := rel.String()
	for _, pattern := range w.ignore {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// resolve returns the snapshot of one visited entry. Files go through the cache,
// directories are always stat'ed since they are never hashed.
func (w *Walker) resolve(rel Path, abs string, d fs.DirEntry) (FileStat, error) {
	if d.IsDir() {
		info, err := d.Info()
		if err != nil {
			return FileStat{}, newError(ErrReadFailure, "metadata "+abs, err)
		}
		return StatInfo(info), nil
	}
	return w.resolveFile(rel, abs)
}

// resolveFile returns the cached snapshot of a file, hashing it on a miss.
func (w *Walker) resolveFile(rel Path, abs string) (FileStat, error) {
	if stat, ok := w.cache.Get(rel); ok {
		return stat, nil
	}
	stat, err := StatPath(abs)
	if err != nil {
		return FileStat{}, err
	}
	w.cache.Put(rel, stat)
	return stat, nil
}

// Shallow lists the immediate children of rel, directories first then by name.
func (w *Walker) Shallow(ctx context.Context, rel Path) ([]DirectoryEntry, error) {
	abs := w.abs(rel)
	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, newError(ErrInvalidArgument, "Path does not exist", rel.String())
	} else if err != nil {
		return nil, newError(ErrReadFailure, "directory", err)
	}
	if !info.IsDir() {
		return nil, newError(ErrInvalidArgument, "Path is not a directory", rel.String())
	}

	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		return nil, newError(ErrReadFailure, "directory", err)
	}

	w.logger.Debug("browse", "path", abs, "entries", len(dirEntries))
	entries := make([]DirectoryEntry, 0, len(dirEntries))
	for _, d := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, newError(ErrReadFailure, "directory", err)
		}
		child, err := rel.Join(d.Name())
		if err != nil {
			w.logger.Warn("skipping unaddressable entry", "path", filepath.Join(abs, d.Name()), "error", err)
			continue
		}
		if w.ignored(child) {
			continue
		}
		stat, err := w.resolve(child, filepath.Join(abs, d.Name()), d)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DirectoryEntry{Name: d.Name(), Stats: stat})
	}

	sortEntries(entries)
	return entries, nil
}

// Deep walks every descendant of rel in traversal order and sends them to out in
// batches of chunkSize. The final batch may be shorter; an empty tree sends nothing.
//
// A full out blocks the walk until the consumer drains it. The walk stops at the
// first filesystem error, or when ctx ends while a send is pending. Batches already
// sent stay valid. Deep does not close out.
//
// Entries whose names cannot form a Path are logged and skipped with their subtrees.
func (w *Walker) Deep(ctx context.Context, rel Path, chunkSize int, out chan<- []SyncItem) error {
	if chunkSize <= 0 {
		return newError(ErrInvalidArgument, "chunk size", "must be positive")
	}

	start := w.abs(rel)
	batch := make([]SyncItem, 0, chunkSize)
	send := func() error {
		select {
		case out <- batch:
		case <-ctx.Done():
			return newError(ErrSyncFailure, "failed to tx", ctx.Err())
		}
		batch = make([]SyncItem, 0, chunkSize)
		return nil
	}

	err := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return newError(ErrReadFailure, "walkdir", err)
		}
		if p == start {
			return nil
		}

		relNative, err := filepath.Rel(w.root, p)
		if err != nil {
			return newError(ErrReadFailure, "strip_prefix", err)
		}
		relPath, err := ParsePath(relNative)
		if err != nil {
			w.logger.Warn("skipping unaddressable entry", "path", p, "error", err)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if w.ignored(relPath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		w.logger.Debug("walk entry", "path", p)
		stat, err := w.resolve(relPath, p, d)
		if err != nil {
			return err
		}
		batch = append(batch, SyncItem{Path: relPath, Stats: &stat})
		if len(batch) == chunkSize {
			return send()
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(batch) > 0 {
		return send()
	}
	return nil
}

// Collect runs Deep and materializes every entry below rel.
func (w *Walker) Collect(ctx context.Context, rel Path) ([]SyncItem, error) {
	ch := make(chan []SyncItem, collectBufferItems)

	var eg errgroup.Group
	eg.Go(func() error {
		defer close(ch)
		return w.Deep(ctx, rel, collectChunkSize, ch)
	})

	var items []SyncItem
	for batch := range ch {
		items = append(items, batch...)
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
