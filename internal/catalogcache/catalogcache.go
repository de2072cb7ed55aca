package catalogcache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/pkg/cache"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

const (
	keyPrefix = "catalog:"
	// generationKey lives outside keyPrefix so prefix deletes keep it.
	generationKey = "catalog_generation"
)

// Cache stores rendered dealer catalog pages. Every catalog-affecting
// mutation bumps the generation baked into page keys and drops the old pages,
// so a page computed before an invalidation is never served after it.
type Cache struct {
	redis  *cache.RedisClient
	ttl    time.Duration
	logger logger.ZapLogger
}

func New(redis *cache.RedisClient, ttl time.Duration, log logger.ZapLogger) *Cache {
	return &Cache{redis: redis, ttl: ttl, logger: log}
}

// Key identifies one page of one dealer's catalog within a generation.
func Key(scope, dealerID string, generation int64, params interface{}) string {
	data, _ := json.Marshal(params)
	return fmt.Sprintf("%s%s:%s:%d:%x", keyPrefix, scope, dealerID, generation, md5.Sum(data))
}

// PageKey is Key under the current generation. Take it before reading the
// database so a concurrent invalidation orphans the write.
func (c *Cache) PageKey(ctx context.Context, scope, dealerID string, params interface{}) string {
	return Key(scope, dealerID, c.generation(ctx), params)
}

func (c *Cache) generation(ctx context.Context) int64 {
	if c == nil {
		return 0
	}
	val, ok, err := c.redis.Get(ctx, generationKey)
	if err != nil {
		c.logger.Warn("catalog generation read failed", zap.Error(err))
		return 0
	}
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(string(val), 10, 64)
	return n
}

// Get decodes a cached value into dest and reports whether it was a hit.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	val, ok, err := c.redis.Get(ctx, key)
	if err != nil {
		c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	return json.Unmarshal(val, dest) == nil
}

func (c *Cache) Set(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) InvalidateCatalog(ctx context.Context) {
	if c == nil {
		return
	}
	if _, err := c.redis.Incr(ctx, generationKey); err != nil {
		c.logger.Warn("catalog generation bump failed", zap.Error(err))
	}
	if err := c.redis.DeletePrefix(ctx, keyPrefix); err != nil {
		c.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
