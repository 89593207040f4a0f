package utils

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the shared cache client used by the listing controllers.
// It stays nil when Redis is not configured; every method treats a nil
// receiver as a permanent miss so callers never need to branch.
var Cache *CacheClient

// CacheClient is a thin cache port over Redis: get, put with TTL, and
// prefix invalidation. The pricing core never touches it.
type CacheClient struct {
	rdb *redis.Client
}

// InitCache connects to Redis when REDIS_ADDR is set. Caching is
// optional; a missing address simply disables it.
func InitCache() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		LogInfo("REDIS_ADDR not set, response caching disabled")
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		LogError("Redis ping failed, response caching disabled: %v", err)
		return
	}

	Cache = &CacheClient{rdb: rdb}
	LogInfo("Connected to Redis at %s", addr)
}

// Get returns the cached value for key and whether it was present
func (c *CacheClient) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	value, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			LogError("Cache get failed for key %s: %v", key, err)
		}
		return "", false
	}
	return value, true
}

// Put stores value under key for the given TTL
func (c *CacheClient) Put(key, value string, ttl time.Duration) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		LogError("Cache put failed for key %s: %v", key, err)
	}
}

// Invalidate removes every key under the given prefix
func (c *CacheClient) Invalidate(prefix string) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			LogError("Cache invalidate failed for key %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		LogError("Cache scan failed for prefix %s: %v", prefix, err)
	}
}
