package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisLimiter(client, 5)
	ctx := context.Background()

	key := "10.0.0.1"

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisLimiter_Allow_DifferentKeys(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisLimiter(client, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed, "first key should be rate limited")

	allowed, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed, "second key should not be affected")
}

func TestRedisLimiter_Allow_SlidingWindow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisLimiter(client, 3)
	ctx := context.Background()

	key := "10.0.0.3"

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, allowed)

	time.Sleep(2 * time.Second)

	allowed, err = limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, allowed, "should still be limited within the sliding window")
}

func TestRedisLimiter_Allow_ZeroLimitDisables(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisLimiter(client, 0)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "10.0.0.4")
	require.NoError(t, err)
	assert.True(t, allowed, "zero limit should allow all requests")
}

func TestRedisLimiter_Remaining(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisLimiter(client, 5)
	ctx := context.Background()

	key := "10.0.0.5"

	remaining, err := limiter.Remaining(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), remaining)

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
	}

	remaining, err = limiter.Remaining(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(3), remaining)
}

func TestRedisLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisLimiter(client, 2)
	ctx := context.Background()

	key := "10.0.0.6"

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, key))

	allowed, err = limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, allowed, "should be allowed after reset")
}

func BenchmarkRedisLimiter_Allow(b *testing.B) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	err := client.Ping(ctx).Err()
	if err != nil {
		b.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	defer client.Close()

	limiter := NewRedisLimiter(client, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = limiter.Allow(ctx, "bench-key")
	}
}
