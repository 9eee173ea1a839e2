package tour

import (
	"context"
	"time"

	"github.com/zjrosen/spotlight/internal/cachemanager"
)

// DefaultCacheTTL bounds how long a completion lookup is trusted.
const DefaultCacheTTL = 5 * time.Minute

type cachedValue struct {
	Value string
	OK    bool
}

// CachedStore fronts a Store with a read-through cache. Remember lets the
// service make a completion visible before its write reaches the store.
type CachedStore struct {
	store Store
	ttl   time.Duration
	reads *cachemanager.ReadThroughCache[string, cachedValue, string]
}

var _ Store = (*CachedStore)(nil)

// NewCachedStore wraps store. A ttl of 0 uses DefaultCacheTTL.
func NewCachedStore(store Store, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	cs := &CachedStore{store: store, ttl: ttl}
	cs.reads = cachemanager.NewReadThroughCache[string, cachedValue, string](
		cachemanager.NewInMemoryCacheManager[string, cachedValue]("tour-completion", ttl, cachemanager.DefaultCleanupInterval),
		func(ctx context.Context, key string) (cachedValue, error) {
			v, ok, err := store.Get(ctx, key)
			return cachedValue{Value: v, OK: ok}, err
		},
		false,
	)
	return cs
}

func (c *CachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.reads.Get(ctx, key, key, c.ttl)
	if err != nil {
		return "", false, err
	}
	return v.Value, v.OK, nil
}

func (c *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := c.store.Set(ctx, key, value); err != nil {
		return err
	}
	c.Remember(ctx, key, value)
	return nil
}

func (c *CachedStore) Delete(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil {
		return err
	}
	return c.reads.Cache().Delete(ctx, key)
}

// Remember caches value for key without touching the underlying store.
func (c *CachedStore) Remember(ctx context.Context, key, value string) {
	c.reads.Cache().Set(ctx, key, cachedValue{Value: value, OK: true}, c.ttl)
}
