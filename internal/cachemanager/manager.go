// Package cachemanager provides a small TTL cache abstraction and a
// read-through wrapper used in front of key-value backends.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the cache surface the rest of the code depends on.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
