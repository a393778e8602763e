package pfs

import (
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

const DefaultCacheCapacity = 1000

// Cache is a bounded LRU of file snapshots keyed by store-relative path.
//
// The mutex is held for a single map operation only. Callers stat and hash
// outside of it, so a slow disk never blocks unrelated lookups.
// Entries are not invalidated by changes made outside of the owning Store.
type Cache struct {
	mu     sync.Mutex
	lru    *simplelru.LRU[string, FileStat]
	hits   uint64
	misses uint64
}

// NewCache creates a cache holding at most capacity snapshots.
func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}
	lru, err := simplelru.NewLRU[string, FileStat](capacity, nil)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &Cache{lru: lru}, nil
}

// Get returns the snapshot for path, refreshing its recency. Every call counts as a hit or a miss.
func (c *Cache) Get(path Path) (FileStat, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stat, ok := c.lru.Get(path.String())
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return stat, ok
}

// Put inserts or overwrites the snapshot for path, evicting the least recently used entry when full.
func (c *Cache) Put(path Path, stat FileStat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(path.String(), stat)
}

// Invalidate drops path from the cache.
func (c *Cache) Invalidate(path Path) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Remove(path.String())
}

// Contains reports whether path is cached without touching recency or counters.
func (c *Cache) Contains(path Path) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Contains(path.String())
}

// Len returns the number of cached snapshots.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}

// Stats returns the hit/miss counters. They are never reset.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{Hits: c.hits, Misses: c.misses}
}
