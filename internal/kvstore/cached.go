package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/maragym/gymlog/internal/cachemanager"
)

// lookup is what the cache holds per key, so absent keys are cached too.
type lookup struct {
	Value string
	Found bool
}

// CachedBackend puts a TTL read-through cache in front of another Backend.
// Writes and removes hit the inner backend first and then update the cache.
type CachedBackend struct {
	inner Backend
	rtc   *cachemanager.ReadThroughCache[string, lookup, string]
	ttl   time.Duration
}

var _ Backend = (*CachedBackend)(nil)

// NewCachedBackend wraps inner. A non-positive ttl uses the cache default.
func NewCachedBackend(inner Backend, ttl time.Duration) *CachedBackend {
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}
	manager := cachemanager.NewInMemoryCacheManager[string, lookup]("kvstore", ttl, cachemanager.DefaultCleanupInterval)
	return newCachedBackend(inner, manager, ttl)
}

func newCachedBackend(inner Backend, manager cachemanager.CacheManager[string, lookup], ttl time.Duration) *CachedBackend {
	fetch := func(_ context.Context, key string) (lookup, error) {
		v, ok, err := inner.Get(key)
		if err != nil {
			return lookup{}, err
		}
		return lookup{Value: v, Found: ok}, nil
	}
	return &CachedBackend{
		inner: inner,
		rtc:   cachemanager.NewReadThroughCache[string, lookup, string](manager, fetch, false),
		ttl:   ttl,
	}
}

func (c *CachedBackend) Get(key string) (string, bool, error) {
	l, err := c.rtc.GetWithRefresh(context.Background(), key, key, c.ttl)
	if err != nil {
		return "", false, err
	}
	return l.Value, l.Found, nil
}

func (c *CachedBackend) Set(key, value string) error {
	if err := c.inner.Set(key, value); err != nil {
		_ = c.rtc.Invalidate(context.Background(), key)
		return err
	}
	c.rtc.Put(context.Background(), key, lookup{Value: value, Found: true}, c.ttl)
	return nil
}

func (c *CachedBackend) Remove(key string) error {
	if err := c.inner.Remove(key); err != nil {
		_ = c.rtc.Invalidate(context.Background(), key)
		return err
	}
	c.rtc.Put(context.Background(), key, lookup{}, c.ttl)
	return nil
}

func (c *CachedBackend) Close() error {
	if err := c.inner.Close(); err != nil {
		return fmt.Errorf("closing cached backend: %w", err)
	}
	return nil
}
