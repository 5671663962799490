package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisOCRCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisOCRCache(rdb, ttl, zap.NewNop().Sugar()), mr
}

func TestOCRCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "fullText:/uploads/a.pdf")
	assert.False(t, ok)

	cache.Set(ctx, "fullText:/uploads/a.pdf", "extracted text")

	got, ok := cache.Get(ctx, "fullText:/uploads/a.pdf")
	require.True(t, ok)
	assert.Equal(t, "extracted text", got)
}

func TestOCRCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "digits:/uploads/a.png", "123456789012")
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "digits:/uploads/a.png")
	assert.False(t, ok)
}

func TestOCRCacheFailureIsAMiss(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)
	ctx := context.Background()

	cache.Set(ctx, "k", "v")
	mr.Close()

	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)
}

func TestOCRCacheKeysAreNamespaced(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)

	cache.Set(context.Background(), "fullText:/uploads/a.pdf", "text")
	assert.True(t, mr.Exists("ocr:fullText:/uploads/a.pdf"))
}
