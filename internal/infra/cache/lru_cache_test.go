package cache

import (
	"fmt"
	"sync"
	"testing"

	"parlaseramik/config"

	"github.com/stretchr/testify/assert"
)

func TestLRUCache_SetGet(t *testing.T) {
	c := NewLRUCache(nil)

	_, ok := c.Get("products", "featured")
	assert.False(t, ok)

	c.Set("products", "featured", []string{"kupa"}, c.Generation("products"))
	got, ok := c.Get("products", "featured")
	assert.True(t, ok)
	assert.Equal(t, []string{"kupa"}, got)
}

func TestLRUCache_InvalidateDropsOnlyNamedNamespaces(t *testing.T) {
	c := NewLRUCache(nil)
	c.Set("products", "featured", 1, 0)
	c.Set("categories", "active", 2, 0)

	c.Invalidate("products")

	_, ok := c.Get("products", "featured")
	assert.False(t, ok)
	got, ok := c.Get("categories", "active")
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestLRUCache_SetAfterInvalidateIsDropped(t *testing.T) {
	c := NewLRUCache(nil)

	// A reader misses and starts loading, then a writer invalidates.
	generation := c.Generation("products")
	c.Invalidate("products")
	c.Set("products", "list:0:20", "stale page", generation)

	_, ok := c.Get("products", "list:0:20")
	assert.False(t, ok)

	c.Set("products", "list:0:20", "fresh page", c.Generation("products"))
	got, ok := c.Get("products", "list:0:20")
	assert.True(t, ok)
	assert.Equal(t, "fresh page", got)
}

func TestLRUCache_InvalidateLeavesOtherGenerations(t *testing.T) {
	c := NewLRUCache(nil)
	categories := c.Generation("categories")

	c.Invalidate("products")

	assert.Equal(t, uint64(1), c.Generation("products"))
	c.Set("categories", "active", 2, categories)
	_, ok := c.Get("categories", "active")
	assert.True(t, ok)
}

func TestLRUCache_EvictsBeyondSize(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Size = 2
	c := NewLRUCache(cfg)

	c.Set("products", "a", 1, 0)
	c.Set("products", "b", 2, 0)
	c.Set("products", "c", 3, 0)

	_, ok := c.Get("products", "a")
	assert.False(t, ok)
	_, ok = c.Get("products", "c")
	assert.True(t, ok)
}

func TestLRUCache_ConcurrentAccess(t *testing.T) {
	c := NewLRUCache(nil)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			c.Set("products", key, i, c.Generation("products"))
			c.Get("products", key)
			if i%5 == 0 {
				c.Invalidate("products")
			}
		}()
	}
	wg.Wait()
}
