package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/NforcheDivine/youtube-analytics-etl-api/internal/metrics"
)

// DefaultCacheTTL applies when no TTL is configured.
const DefaultCacheTTL = 5 * time.Minute

// keyPrefix namespaces every key this service writes, so InvalidateAll only
// touches our own entries.
const keyPrefix = "yta:"

// CacheService provides a Redis cache-aside layer for query results. With a
// nil client every operation is a no-op and every lookup a miss.
type CacheService struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewCacheService connects to redisURL. If the URL is empty, invalid or the
// server does not answer, caching is disabled rather than failing startup.
func NewCacheService(ctx context.Context, redisURL string, ttl time.Duration, log zerolog.Logger) *CacheService {
	log = log.With().Str("component", "cache").Logger()
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{log: log}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, caching disabled")
		return &CacheService{log: log}
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		_ = rdb.Close()
		return &CacheService{log: log}
	}

	log.Info().Dur("ttl", ttl).Msg("redis: connected, caching enabled")
	return NewCacheServiceWithClient(rdb, ttl, log)
}

// NewCacheServiceWithClient wraps an existing client.
func NewCacheServiceWithClient(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CacheService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheService{rdb: rdb, ttl: ttl, log: log}
}

// Client returns the underlying Redis client. May be nil.
func (c *CacheService) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

// Enabled reports whether a Redis client is configured.
func (c *CacheService) Enabled() bool {
	return c != nil && c.rdb != nil
}

// get decodes the cached value at key into dst and reports a hit.
func (c *CacheService) get(ctx context.Context, key string, dst any) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.Inc()
		return false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache get")
		metrics.CacheMisses.Inc()
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache decode")
		metrics.CacheMisses.Inc()
		return false
	}
	metrics.CacheHits.Inc()
	return true
}

func (c *CacheService) set(ctx context.Context, key string, v any) {
	if !c.Enabled() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache encode")
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, b, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache set")
	}
}

// InvalidateAll removes every cached query result.
func (c *CacheService) InvalidateAll(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}

// cached returns the value under key, or calls load and stores its result.
// Load errors are never cached.
func cached[T any](ctx context.Context, c *CacheService, key string, load func() (T, error)) (T, error) {
	var v T
	if c.get(ctx, key, &v) {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.set(ctx, key, v)
	return v, nil
}
