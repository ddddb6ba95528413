package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCacheRoundTrip(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	stored := []string{"Go", "React"}
	require.NoError(t, Set(ctx, rdb, "tags:all", stored, time.Minute))

	var got []string
	hit, err := Get(ctx, rdb, "tags:all", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, stored, got)
}

func TestCacheMiss(t *testing.T) {
	rdb := newTestRedis(t)

	var got []string
	hit, err := Get(context.Background(), rdb, "missing", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestCacheDelete(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, Set(ctx, rdb, "key", "value", time.Minute))
	require.NoError(t, Delete(ctx, rdb, "key"))

	var got string
	hit, err := Get(ctx, rdb, "key", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNilClientIsNoOp(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, Set(ctx, nil, "key", "value", time.Minute))
	require.NoError(t, Delete(ctx, nil, "key"))

	var got string
	hit, err := Get(ctx, nil, "key", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}
