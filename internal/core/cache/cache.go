// Package cache is a small byte cache with load coalescing, backed by redis
// or by process memory.
package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

type Backend interface {
	// Get reports a miss with ok == false and a nil error.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

type Cache struct {
	b  Backend
	sf singleflight.Group
}

func New(b Backend) *Cache { return &Cache{b: b} }

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.b.Get(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.b.Set(ctx, key, val, ttl)
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	return c.b.Del(ctx, keys...)
}

func (c *Cache) Ping(ctx context.Context) error { return c.b.Ping(ctx) }

func (c *Cache) Close() error { return c.b.Close() }

// GetOrLoad returns the cached value for key or calls load once per key
// across concurrent callers and stores its result for ttl. A backend read
// failure falls through to load.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, ok, err := c.b.Get(ctx, key); err == nil && ok {
		return b, nil
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.b.Set(ctx, key, b, ttl)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
