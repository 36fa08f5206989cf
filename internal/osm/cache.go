package osm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	errx "github.com/SocialHealthAI/Data-Analytics-Assistant/internal/core/error"
	logx "github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// QueryCache memoizes raw provider responses keyed by (endpoint, query).
// It is a pure memoization layer: entries are only ever the verbatim
// payload the provider returned for that exact query, and callers that
// need freshness call Invalidate. The analyzer works identically whether
// or not the cache is populated.
type QueryCache interface {
	Get(ctx context.Context, endpoint, query string) ([]byte, bool)
	Set(ctx context.Context, endpoint, query string, payload []byte)
	Invalidate(ctx context.Context, endpoint, query string)
}

func cacheKey(endpoint, query string) string {
	sum := sha256.Sum256([]byte(endpoint + "\x00" + query))
	return "osm:query:" + hex.EncodeToString(sum[:])
}

// MemoryCache is the default in-process QueryCache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (c *MemoryCache) Get(_ context.Context, endpoint, query string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	payload, ok := c.entries[cacheKey(endpoint, query)]
	return payload, ok
}

func (c *MemoryCache) Set(_ context.Context, endpoint, query string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(endpoint, query)] = payload
}

func (c *MemoryCache) Invalidate(_ context.Context, endpoint, query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(endpoint, query))
}

// RedisCache is a Redis-backed QueryCache with per-entry TTL. Cache
// failures never surface to callers: a failed Get is a miss and a failed
// Set is dropped, both logged at warn.
type RedisCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisCache(rdb redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, endpoint, query string) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, cacheKey(endpoint, query)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logx.Warn().Err(errx.WrapCache(err)).Str("endpoint", endpoint).Msg("cache read failed")
		}
		return nil, false
	}
	return payload, true
}

func (c *RedisCache) Set(ctx context.Context, endpoint, query string, payload []byte) {
	if err := c.rdb.Set(ctx, cacheKey(endpoint, query), payload, c.ttl).Err(); err != nil {
		logx.Warn().Err(errx.WrapCache(err)).Str("endpoint", endpoint).Msg("cache write failed")
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, endpoint, query string) {
	if err := c.rdb.Del(ctx, cacheKey(endpoint, query)).Err(); err != nil {
		logx.Warn().Err(errx.WrapCache(err)).Str("endpoint", endpoint).Msg("cache invalidate failed")
	}
}
