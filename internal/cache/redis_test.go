package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client, time.Hour), mr
}

func TestGetMissing(t *testing.T) {
	c, _ := setupCache(t)

	id, ok, err := c.Get(context.Background(), "resolve:1:contacts:abc")
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, id)
}

func TestSetThenGet(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "resolve:1:contacts:abc", 42))

	id, ok, err := c.Get(ctx, "resolve:1:contacts:abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(42), id)
}

func TestEntriesExpire(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "resolve:1:flows:def", 7))
	mr.FastForward(2 * time.Hour)

	_, ok, err := c.Get(ctx, "resolve:1:flows:def")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGetGarbageValue(t *testing.T) {
	c, mr := setupCache(t)

	mr.Set("resolve:1:contacts:bad", "not-a-number")

	_, _, err := c.Get(context.Background(), "resolve:1:contacts:bad")
	require.Error(t, err)
}
