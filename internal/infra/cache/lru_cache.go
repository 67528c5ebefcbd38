// Package cache provides the process-local catalog cache.
package cache

import (
	"sync"

	"parlaseramik/config"
	"parlaseramik/internal/domain/service"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultSize = 512

// lruCache keeps one bounded LRU per namespace so a namespace can be dropped
// without touching the others. generations counts invalidations per namespace
// so a load that raced a write cannot store its result afterwards.
type lruCache struct {
	mu          sync.Mutex
	size        int
	buckets     map[string]*lru.Cache[string, any]
	generations map[string]uint64
}

// NewLRUCache is the constructor for the catalog cache.
func NewLRUCache(cfg *config.Config) service.CatalogCache {
	size := defaultSize
	if cfg != nil && cfg.Cache.Size > 0 {
		size = cfg.Cache.Size
	}

	return &lruCache{
		size:        size,
		buckets:     make(map[string]*lru.Cache[string, any]),
		generations: make(map[string]uint64),
	}
}

func (c *lruCache) Get(namespace, key string) (any, bool) {
	c.mu.Lock()
	bucket, ok := c.buckets[namespace]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	return bucket.Get(key)
}

func (c *lruCache) Generation(namespace string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generations[namespace]
}

func (c *lruCache) Set(namespace, key string, value any, generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[namespace] != generation {
		return
	}

	bucket, ok := c.buckets[namespace]
	if !ok {
		// lru.New only fails for a non-positive size.
		bucket, _ = lru.New[string, any](c.size)
		c.buckets[namespace] = bucket
	}
	bucket.Add(key, value)
}

func (c *lruCache) Invalidate(namespaces ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ns := range namespaces {
		delete(c.buckets, ns)
		c.generations[ns]++
	}
}
