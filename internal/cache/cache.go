// =============================================================================
// dialect - Result Cache
// =============================================================================
//
// Process-lifetime cache of parsed datasets, keyed by source identity. There
// is no eviction: the cache is bounded by the number of distinct sources
// opened, which is acceptable for this domain. A changed modification token
// is simply a new key, so revalidation races cannot occur.
//
// =============================================================================

package cache

import (
	"sync"

	"github.com/jordanmiceli/dialect/internal/dataset"
)

// Cache stores previously computed parse results.
type Cache interface {
	// Get returns the dataset cached under the key, if any.
	Get(key dataset.SourceKey) (*dataset.Dataset, bool)

	// Put stores the dataset under the key.
	Put(key dataset.SourceKey, ds *dataset.Dataset)
}

// Memory is the in-process Cache implementation. It is guarded for
// concurrent access because the load command ingests files in parallel.
type Memory struct {
	mu sync.RWMutex
	m  map[dataset.SourceKey]*dataset.Dataset
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		m: make(map[dataset.SourceKey]*dataset.Dataset),
	}
}

// Get returns the dataset cached under the key, if any.
func (c *Memory) Get(key dataset.SourceKey) (*dataset.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ds, ok := c.m[key]
	return ds, ok
}

// Put stores the dataset under the key.
func (c *Memory) Put(key dataset.SourceKey, ds *dataset.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m[key] = ds
}

// Len returns the number of cached datasets.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.m)
}
