package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// absent marks a cached miss. Loaders that find nothing return a nil pointer,
// which is stored as absent so the next lookup is a hit.
var absent = []byte("null")

// GetOrLoadJSON caches the JSON form of *T under key. A nil *T from load is
// cached as a miss and returned as nil without error.
func GetOrLoadJSON[T any](c *Cache, ctx context.Context, key string, ttl time.Duration, load func(context.Context) (*T, error)) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil || v == nil {
			return absent, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	return decode[T](key, b)
}

// SetJSON stores v under key for ttl.
func SetJSON[T any](c *Cache, ctx context.Context, key string, v T, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return c.Set(ctx, key, b, ttl)
}

// GetJSON returns nil, nil on a miss.
func GetJSON[T any](c *Cache, ctx context.Context, key string) (*T, error) {
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	return decode[T](key, b)
}

func decode[T any](key string, b []byte) (*T, error) {
	if string(b) == string(absent) {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return &out, nil
}
