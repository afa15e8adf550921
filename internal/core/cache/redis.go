package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisBackend struct{ rdb *redis.Client }

// NewRedis returns a cache backed by a redis server.
func NewRedis(addr, pass string, db int) *Cache {
	return New(&redisBackend{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	})
}

func (b *redisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := b.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (b *redisBackend) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return b.rdb.Set(ctx, key, val, ttl).Err()
}

func (b *redisBackend) Del(ctx context.Context, keys ...string) error {
	return b.rdb.Del(ctx, keys...).Err()
}

func (b *redisBackend) Ping(ctx context.Context) error { return b.rdb.Ping(ctx).Err() }

func (b *redisBackend) Close() error { return b.rdb.Close() }
