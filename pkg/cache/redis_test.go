package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), "redis://"+mr.Addr()+"/0", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCache_SetNX(t *testing.T) {
	ctx := context.Background()

	t.Run("First writer wins", func(t *testing.T) {
		c, mr := newTestCache(t)

		ok, err := c.SetNX(ctx, "playpal:transition:m1", "first", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.SetNX(ctx, "playpal:transition:m1", "second", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := mr.Get("playpal:transition:m1")
		require.NoError(t, err)
		assert.Equal(t, "first", got)
		assert.Equal(t, time.Minute, mr.TTL("playpal:transition:m1"))
	})

	t.Run("Key can be claimed again after expiry", func(t *testing.T) {
		c, mr := newTestCache(t)

		ok, err := c.SetNX(ctx, "k", "v", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		mr.FastForward(time.Minute + time.Second)
		assert.False(t, mr.Exists("k"))

		ok, err = c.SetNX(ctx, "k", "v", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Server error is logged and returned", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		mr := miniredis.RunT(t)
		c, err := NewRedisCache(ctx, "redis://"+mr.Addr(), zap.New(core))
		require.NoError(t, err)
		defer c.Close()

		mr.SetError("ERR simulated failure")
		ok, err := c.SetNX(ctx, "k", "v", time.Minute)

		assert.Error(t, err)
		assert.False(t, ok)
		assert.Equal(t, 1, logs.FilterMessage("Error setting key in Redis").Len())
	})
}

func TestRedisCache_Delete(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set("k", "v"))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))

	// Deleting a missing key is not an error.
	assert.NoError(t, c.Delete(ctx, "k"))

	ok, err := c.SetNX(ctx, "k", "v", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedisCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid URL", func(t *testing.T) {
		_, err := NewRedisCache(ctx, "http://localhost:6379", zap.NewNop())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse redis url")
	})

	t.Run("Server unreachable", func(t *testing.T) {
		mr := miniredis.NewMiniRedis()
		require.NoError(t, mr.Start())
		addr := mr.Addr()
		mr.Close()

		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		_, err := NewRedisCache(ctx, "redis://"+addr, zap.NewNop())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ping redis at "+addr)
	})

	t.Run("Password from URL", func(t *testing.T) {
		mr := miniredis.RunT(t)
		mr.RequireAuth("s3cret")

		_, err := NewRedisCache(ctx, "redis://"+mr.Addr(), zap.NewNop())
		assert.Error(t, err)

		c, err := NewRedisCache(ctx, "redis://:s3cret@"+mr.Addr(), zap.NewNop())
		require.NoError(t, err)
		assert.NoError(t, c.Close())
	})
}
