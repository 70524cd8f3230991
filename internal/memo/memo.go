// Package memo provides the process-lifetime result caches used by the guide
// fetcher and the document extractor.
//
// Entries never expire and are never evicted. Keys must come from form input
// (a handful of seed URLs and uploads per process), never from crawled or
// machine-generated values.
package memo

import (
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Cache maps an input key to the value computed for it. A nil *Cache is valid
// and computes on every call.
type Cache[V any] struct {
	store *gocache.Cache
	group singleflight.Group
}

// New returns an empty cache with no expiration and no janitor goroutine.
func New[V any]() *Cache[V] {
	return &Cache[V]{store: gocache.New(gocache.NoExpiration, 0)}
}

// Do returns the stored value for key, or runs fn once, stores a successful
// result and returns it. Concurrent callers for the same key share one run.
// Errors are returned to every waiting caller but never stored.
func (c *Cache[V]) Do(key string, fn func() (V, error)) (V, error) {
	if c == nil {
		return fn()
	}
	if v, ok := c.store.Get(key); ok {
		return v.(V), nil
	}

	r, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.store.Get(key); ok {
			return v, nil
		}
		v, err := fn()
		if err != nil {
			return nil, err
		}
		c.store.Set(key, v, gocache.NoExpiration)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return r.(V), nil
}

// Len reports how many keys are stored.
func (c *Cache[V]) Len() int {
	if c == nil {
		return 0
	}
	return c.store.ItemCount()
}
