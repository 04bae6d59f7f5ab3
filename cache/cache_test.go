package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client), mr
}

func TestGetOrSetInvokesProducerOnce(t *testing.T) {
	c, _ := redisCache(t)
	ctx := context.Background()

	calls := 0
	produce := func() (interface{}, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	var first, second []string
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, &first, produce))
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, &second, produce))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestGetOrSetExpiresWithTTL(t *testing.T) {
	c, mr := redisCache(t)
	ctx := context.Background()

	calls := 0
	produce := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	var v int
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, &v, produce))
	assert.Equal(t, 1, v)

	mr.FastForward(2 * time.Minute)

	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, &v, produce))
	assert.Equal(t, 2, v)
}

func TestInvalidateRemovesEntry(t *testing.T) {
	c, _ := redisCache(t)
	ctx := context.Background()

	calls := 0
	produce := func() (interface{}, error) {
		calls++
		return "value", nil
	}

	var v string
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, &v, produce))
	c.Invalidate(ctx, "k")
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, &v, produce))

	assert.Equal(t, 2, calls)
}

func TestProducerErrorsAreNotCached(t *testing.T) {
	c, _ := redisCache(t)
	ctx := context.Background()

	boom := errors.New("boom")
	calls := 0

	var v string
	err := c.GetOrSet(ctx, "k", time.Minute, &v, func() (interface{}, error) {
		calls++
		return "", boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, &v, func() (interface{}, error) {
		calls++
		return "ok", nil
	}))
	assert.Equal(t, 2, calls)
	assert.Equal(t, "ok", v)
}

func TestInMemoryFallback(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	calls := 0
	produce := func() (interface{}, error) {
		calls++
		return map[string]int{"n": calls}, nil
	}

	var v map[string]int
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, &v, produce))
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, &v, produce))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, v["n"])

	c.Invalidate(ctx, "k")
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, &v, produce))
	assert.Equal(t, 2, calls)
}

func TestInMemoryFallbackExpiry(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	calls := 0
	produce := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	var v int
	require.NoError(t, c.GetOrSet(ctx, "k", 10*time.Millisecond, &v, produce))
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, c.GetOrSet(ctx, "k", 10*time.Millisecond, &v, produce))

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, v)
}
