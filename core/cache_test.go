package core

import (
	"sync"
	"time"

	"github.com/caasmo/tablebook/cache"
)

// mapCache is a deterministic cache.Cache for tests. Ristretto admits
// entries asynchronously, which makes handler tests flaky.
type mapCache[V any] struct {
	mu sync.Mutex
	m  map[string]V
}

func newMapCache[V any]() cache.Cache[string, V] {
	return &mapCache[V]{m: make(map[string]V)}
}

func (c *mapCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *mapCache[V]) Set(key string, value V, cost int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
	return true
}

func (c *mapCache[V]) SetWithTTL(key string, value V, cost int64, ttl time.Duration) bool {
	return c.Set(key, value, cost)
}

func (c *mapCache[V]) Del(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}
