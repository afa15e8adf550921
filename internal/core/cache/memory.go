package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryBackend struct{ c *gocache.Cache }

// NewMemory returns a process-local cache. Used when no redis address is
// configured and in tests.
func NewMemory(defaultTTL, cleanup time.Duration) *Cache {
	return New(&memoryBackend{c: gocache.New(defaultTTL, cleanup)})
}

func (b *memoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := b.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

func (b *memoryBackend) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	b.c.Set(key, val, ttl)
	return nil
}

func (b *memoryBackend) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		b.c.Delete(k)
	}
	return nil
}

func (b *memoryBackend) Ping(context.Context) error { return nil }

func (b *memoryBackend) Close() error { return nil }
