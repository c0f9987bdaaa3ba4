// Package cachemanager provides a small typed cache used for expensive
// renders (markdown entry bodies). Keys are strings; values are whatever the
// caller stores.
package cachemanager

import "time"

// Manager is the cache contract the UI depends on.
type Manager[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration)
	Delete(keys ...string)
	Flush()
}
