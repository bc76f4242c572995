package cache_utils

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"creativeflow/internal/cache"

	"github.com/valkey-io/valkey-go"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheTimeout = 10 * time.Second
	DefaultCacheExpiry  = 10 * time.Minute
)

// CacheUtil stores JSON encoded values under a key prefix. A CacheUtil
// built over a nil client is a no-op: Get always misses.
type CacheUtil[T any] struct {
	client  valkey.Client
	prefix  string
	timeout time.Duration
	expiry  time.Duration

	loads singleflight.Group

	// bumped by Invalidate; a load started under an older value is not stored
	generation atomic.Uint64
}

func NewCacheUtil[T any](client valkey.Client, prefix string) *CacheUtil[T] {
	return &CacheUtil[T]{
		client:  client,
		prefix:  prefix,
		timeout: DefaultCacheTimeout,
		expiry:  DefaultCacheExpiry,
	}
}

func (c *CacheUtil[T]) WithExpiry(expiry time.Duration) *CacheUtil[T] {
	c.expiry = expiry
	return c
}

func (c *CacheUtil[T]) IsEnabled() bool {
	return c.client != nil
}

// TestCacheConnection writes, reads and removes a test key. Returns nil when
// the cache is disabled.
func TestCacheConnection() error {
	client := cache.GetCache()
	if client == nil {
		return nil
	}

	cacheUtil := NewCacheUtil[string](client, "cf_test:")

	testKey := "connection_test"
	testValue := "valkey_is_working"

	cacheUtil.Set(testKey, &testValue)

	retrievedValue := cacheUtil.Get(testKey)
	if retrievedValue == nil {
		return errors.New("could not retrieve cached value")
	}

	if *retrievedValue != testValue {
		return errors.New("retrieved value does not match expected")
	}

	cacheUtil.Invalidate(testKey)

	if cacheUtil.Get(testKey) != nil {
		return errors.New("test key was not properly invalidated")
	}

	return nil
}

// GetOrLoad returns the cached value for key or stores the result of load.
// Concurrent misses on the same key share one load. Failed loads and loads
// overtaken by an Invalidate are not cached.
func (c *CacheUtil[T]) GetOrLoad(key string, load func() (*T, error)) (*T, error) {
	if cached := c.Get(key); cached != nil {
		return cached, nil
	}

	result, err, _ := c.loads.Do(key, func() (any, error) {
		generation := c.generation.Load()

		item, err := load()
		if err != nil {
			return nil, err
		}

		if c.isCurrent(generation) {
			c.Set(key, item)

			// an Invalidate between the check and the write must still win
			if !c.isCurrent(generation) {
				c.Invalidate(key)
			}
		}

		return item, nil
	})
	if err != nil {
		return nil, err
	}

	item, ok := result.(*T)
	if !ok {
		return nil, errors.New("unexpected cached value type")
	}

	return item, nil
}

func (c *CacheUtil[T]) Get(key string) *T {
	if c.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	fullKey := c.prefix + key
	result := c.client.Do(ctx, c.client.B().Get().Key(fullKey).Build())

	if result.Error() != nil {
		return nil
	}

	data, err := result.AsBytes()
	if err != nil {
		return nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil
	}

	return &item
}

func (c *CacheUtil[T]) Set(key string, item *T) {
	if c.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	data, err := json.Marshal(item)
	if err != nil {
		return
	}

	fullKey := c.prefix + key
	c.client.Do(ctx, c.client.B().Set().Key(fullKey).Value(string(data)).Ex(c.expiry).Build())
}

func (c *CacheUtil[T]) isCurrent(generation uint64) bool {
	return c.generation.Load() == generation
}

func (c *CacheUtil[T]) Invalidate(keys ...string) {
	c.generation.Add(1)

	if c.client == nil || len(keys) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = c.prefix + key
	}

	c.client.Do(ctx, c.client.B().Del().Key(fullKeys...).Build())
}
