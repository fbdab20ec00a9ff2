package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	rdb, err := cache.NewRedisClient(context.Background(), cache.Options{
		Host:     host,
		Port:     port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       2,
	})
	if err != nil {
		t.Skipf("Skipping Redis tests: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

// uniquePrefix isolates runs sharing one Redis database.
func uniquePrefix(t *testing.T, rdb *redis.Client) string {
	prefix := "activat-test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		keys, err := rdb.Keys(ctx, prefix+"*").Result()
		if err == nil && len(keys) > 0 {
			rdb.Del(ctx, keys...)
		}
	})
	return prefix
}

func TestRedisKV_Integration(t *testing.T) {
	rdb := setupTestRedis(t)

	t.Run("Contract", func(t *testing.T) {
		runKVContract(t, NewRedisKV(rdb, uniquePrefix(t, rdb)))
	})

	t.Run("Session store", func(t *testing.T) {
		runSessionStoreContract(t, NewRedisKV(rdb, uniquePrefix(t, rdb)))
	})

	t.Run("Concurrent appends", func(t *testing.T) {
		runConcurrentAppends(t, NewRedisKV(rdb, uniquePrefix(t, rdb)))
	})
}

func TestCachedSessionStore_Integration(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, rdb.Del(ctx, sessionsCacheKey).Err())
	t.Cleanup(func() { rdb.Del(ctx, sessionsCacheKey) })

	kv := NewInMemoryKV()
	store := NewCachedSessionStore(newTestSessionStore(kv), rdb)

	first := mustNewSession(t, testNow.Add(-time.Hour), 1200, 600)
	require.NoError(t, store.Append(ctx, first))

	t.Run("Miss fills the cache", func(t *testing.T) {
		sessions, err := store.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, sessions, 1)

		exists, err := rdb.Exists(ctx, sessionsCacheKey).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("Hit keeps identity and timestamps", func(t *testing.T) {
		sessions, err := store.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, first.ID, sessions[0].ID)
		assert.True(t, first.Timestamp.Equal(sessions[0].Timestamp))
	})

	t.Run("Append invalidates", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, mustNewSession(t, testNow, 800, 300)))

		exists, err := rdb.Exists(ctx, sessionsCacheKey).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)

		today, err := store.ReadByPeriod(ctx, domain.PeriodDay, testNow)
		require.NoError(t, err)
		assert.Len(t, today, 2)
	})

	t.Run("Corrupted entry falls back to the store", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, sessionsCacheKey, "{not json", time.Minute).Err())

		sessions, err := store.ReadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, sessions, 2)
	})
}
