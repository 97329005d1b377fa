package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-manager/internal/config"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := []testStruct{{Name: "Yoga", Age: 1}, {Name: "Boxing", Age: 2}}
	require.NoError(t, cache.Set(ctx, KeyClasses, expected, time.Minute))

	var actual []testStruct
	found, err := cache.Get(ctx, KeyClasses, &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out testStruct
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExpiration(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, KeyPlans, "value", time.Minute))
	mr.FastForward(2 * time.Minute)

	var out string
	found, err := cache.Get(ctx, KeyPlans, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	plansKey, err := cache.VersionedKey(ctx, KeyPlans)
	require.NoError(t, err)
	classesKey, err := cache.VersionedKey(ctx, KeyClasses)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, plansKey, "plans", time.Minute))
	require.NoError(t, cache.Set(ctx, classesKey, "classes", time.Minute))

	require.NoError(t, cache.Invalidate(ctx, KeyPlans, KeyClasses))
	require.NoError(t, cache.Invalidate(ctx))

	for _, ns := range []string{KeyPlans, KeyClasses} {
		key, err := cache.VersionedKey(ctx, ns)
		require.NoError(t, err)
		var out string
		found, err := cache.Get(ctx, key, &out)
		require.NoError(t, err)
		assert.False(t, found, ns)
	}
}

func TestVersionedKey_LateWriteAfterInvalidateIsNotServed(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	// читатель взял ключ и прочитал хранилище до записи
	readerKey, err := cache.VersionedKey(ctx, KeyClasses)
	require.NoError(t, err)
	stale := []testStruct{{Name: "Yoga", Age: 0}}

	// запись в хранилище завершилась и сбросила кеш
	require.NoError(t, cache.Invalidate(ctx, KeyClasses))

	// запоздавший читатель кладёт снимок до записи
	require.NoError(t, cache.Set(ctx, readerKey, stale, time.Minute))

	freshKey, err := cache.VersionedKey(ctx, KeyClasses)
	require.NoError(t, err)
	assert.NotEqual(t, readerKey, freshKey)

	var out []testStruct
	found, err := cache.Get(ctx, freshKey, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Db.Set(ctx, "bad", []byte("not-json"), time.Minute).Err())

	var out testStruct
	found, err := cache.Get(ctx, "bad", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestInitServerInvalidAddr(t *testing.T) {
	cfg := config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	}

	cache, err := InitServer(context.Background(), cfg)
	assert.Nil(t, cache)
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c Noop
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, KeyPlans, 1, time.Minute))
	var out int
	found, err := c.Get(ctx, KeyPlans, &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Invalidate(ctx, KeyPlans))
	key, err := c.VersionedKey(ctx, KeyPlans)
	require.NoError(t, err)
	assert.Equal(t, KeyPlans, key)
}
