package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "ocr:"

// RedisOCRCache stores shaped OCR output keyed by mode and file path.
// Cache failures are logged and treated as misses; OCR just runs again.
type RedisOCRCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.SugaredLogger
}

func NewRedisOCRCache(rdb *redis.Client, ttl time.Duration, log *zap.SugaredLogger) *RedisOCRCache {
	return &RedisOCRCache{
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

func (c *RedisOCRCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.rdb.Get(ctx, cacheKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.log.Warnw("ocr cache read failed", "key", key, "error", err)
		return "", false
	}
	return value, true
}

func (c *RedisOCRCache) Set(ctx context.Context, key, value string) {
	if err := c.rdb.Set(ctx, cacheKeyPrefix+key, value, c.ttl).Err(); err != nil {
		c.log.Warnw("ocr cache write failed", "key", key, "error", err)
	}
}
