package cachemanager

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/okvern/quill/internal/log"
)

const DefaultExpiration = 10 * time.Minute
const DefaultCleanupInterval = 30 * time.Minute

// InMemory is the go-cache backed Manager implementation.
type InMemory[V any] struct {
	useCase string
	cache   *gocache.Cache
}

// NewInMemory creates a cache for the named use case.
func NewInMemory[V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemory[V] {
	return &InMemory[V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves a value by key.
func (c *InMemory[V]) Get(key string) (V, bool) {
	var zero V

	value, found := c.cache.Get(key)
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type stored in cache", "useCase", c.useCase, "key", key)
		return zero, false
	}

	log.Debug(log.CatCache, "cache hit", "useCase", c.useCase, "key", key)
	return v, true
}

// Set stores a value under key with the given TTL.
func (c *InMemory[V]) Set(key string, value V, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

// Delete removes the given keys, ignoring ones that are absent.
func (c *InMemory[V]) Delete(keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

// Flush drops every cached value.
func (c *InMemory[V]) Flush() {
	c.cache.Flush()
}
