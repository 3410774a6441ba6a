package loader

import (
	"path/filepath"
	"sync"
)

// Cache provides thread-safe caching of loaded datasets to avoid re-reading
// a directory on every request.
//
// Datasets are keyed by their cleaned directory path. Once loaded, they stay
// in memory until Evict or Clear is called, so a caller watching the
// directory must evict on change.
type Cache struct {
	mu   sync.RWMutex
	opts Options
	sets map[string]*Dataset
}

// NewCache creates an empty cache that loads with opts.
func NewCache(opts Options) *Cache {
	return &Cache{
		opts: opts,
		sets: make(map[string]*Dataset),
	}
}

// Options returns the options datasets are loaded with.
func (c *Cache) Options() Options { return c.opts }

// Load returns the dataset for dir, reading it on first use.
//
// Failed loads are not cached.
func (c *Cache) Load(dir string) (*Dataset, error) {
	key := filepath.Clean(dir)

	c.mu.RLock()
	if ds, ok := c.sets[key]; ok {
		c.mu.RUnlock()
		return ds, nil
	}
	c.mu.RUnlock()

	ds, err := LoadDir(key, c.opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.sets[key] = ds
	c.mu.Unlock()

	return ds, nil
}

// Evict removes dir from the cache. The next Load reads it from disk.
func (c *Cache) Evict(dir string) {
	c.mu.Lock()
	delete(c.sets, filepath.Clean(dir))
	c.mu.Unlock()
}

// Clear removes every dataset from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.sets = make(map[string]*Dataset)
	c.mu.Unlock()
}

// Len reports how many datasets are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sets)
}
