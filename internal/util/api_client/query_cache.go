package api_client

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	body     []byte
	storedAt time.Time
}

// QueryCache keeps GET response bodies keyed by request path. Concurrent
// loads of the same key share one request.
type QueryCache struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group

	// bumped by Invalidate; a load started under an older value is not stored
	generation uint64
}

// NewQueryCache with ttl 0 keeps entries until they are invalidated.
func NewQueryCache(ttl time.Duration) *QueryCache {
	return &QueryCache{
		ttl:     ttl,
		entries: map[string]cacheEntry{},
	}
}

func (c *QueryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && time.Since(entry.storedAt) > c.ttl {
		return nil, false
	}

	return entry.body, true
}

func (c *QueryCache) Set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{body: body, storedAt: time.Now()}
}

// Load returns the cached body of key or runs fetch once for all concurrent
// callers and caches its result. A result that arrives after an Invalidate
// is returned but not cached.
func (c *QueryCache) Load(key string, fetch func() ([]byte, error)) ([]byte, error) {
	if body, ok := c.Get(key); ok {
		return body, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		generation := c.currentGeneration()

		body, err := fetch()
		if err != nil {
			return nil, err
		}

		c.setIfGeneration(key, body, generation)
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// Invalidate drops every entry whose key equals one of keys or extends it
// with a path segment or a query string.
func (c *QueryCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++

	for cached := range c.entries {
		for _, key := range keys {
			if matchesKey(cached, key) {
				delete(c.entries, cached)
				break
			}
		}
	}
}

func (c *QueryCache) currentGeneration() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.generation
}

func (c *QueryCache) setIfGeneration(key string, body []byte, generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != generation {
		return
	}

	c.entries[key] = cacheEntry{body: body, storedAt: time.Now()}
}

func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func matchesKey(cached, key string) bool {
	if cached == key {
		return true
	}

	rest, ok := strings.CutPrefix(cached, key)
	return ok && (strings.HasPrefix(rest, "/") || strings.HasPrefix(rest, "?"))
}
