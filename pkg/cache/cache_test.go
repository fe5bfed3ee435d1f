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

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	now := time.Unix(1000, 0)
	mc.now = func() time.Time { return now }

	require.NoError(t, mc.Set(ctx, "a", []byte("1"), time.Minute))
	got, err := mc.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	_, err = mc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	now = now.Add(2 * time.Minute)
	_, err = mc.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	now := time.Unix(1000, 0)
	mc.now = func() time.Time { return now }

	_ = mc.Set(ctx, "a", []byte("1"), time.Hour)
	now = now.Add(time.Second)
	_ = mc.Set(ctx, "b", []byte("2"), time.Hour)
	now = now.Add(time.Second)
	_, _ = mc.Get(ctx, "a")
	now = now.Add(time.Second)
	_ = mc.Set(ctx, "c", []byte("3"), time.Hour)

	assert.Equal(t, 2, mc.Len())
	ok, _ := mc.Exists(ctx, "b")
	assert.False(t, ok)
	ok, _ = mc.Exists(ctx, "a", "c")
	assert.True(t, ok)
}

func TestMemoryCacheCopiesValues(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	v := []byte("abc")
	_ = mc.Set(ctx, "k", v, 0)
	v[0] = 'x'
	got, _ := mc.Get(ctx, "k")
	assert.Equal(t, "abc", string(got))
}

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheFromClient(client, "dashpull"), mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestRedis(t)
	defer rc.Close()

	require.NoError(t, rc.Set(ctx, "doc", []byte(`{"a":1}`), time.Minute))
	assert.True(t, mr.Exists("dashpull:doc"))

	got, err := rc.Get(ctx, "doc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	mr.FastForward(2 * time.Minute)
	_, err = rc.Get(ctx, "doc")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestLayeredCache(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestRedis(t)
	lc := NewLayeredCache(rc)
	defer lc.Close()

	require.NoError(t, lc.Set(ctx, "k", []byte("v"), time.Hour))
	mr.FlushAll()

	got, err := lc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	require.NoError(t, mr.Set("dashpull:other", "w"))
	got, err = lc.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "w", string(got))

	require.NoError(t, lc.Delete(ctx, "k"))
	_, err = lc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
