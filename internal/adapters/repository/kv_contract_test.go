package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is a fixed "today" shared by the store tests.
var testNow = time.Date(2024, 6, 12, 20, 0, 0, 0, time.UTC)

func newTestSessionStore(kv domain.KeyValueStore) *KVSessionStore {
	return NewKVSessionStore(kv,
		WithCodec(domain.NewDelimitedCodec(time.UTC)),
		WithStoreLogger(log.New(io.Discard, "", 0)),
	)
}

func mustNewSession(t *testing.T, at time.Time, steps int, seconds int64) *domain.Session {
	t.Helper()
	s, err := domain.NewSession(at, steps, seconds, 0)
	require.NoError(t, err)
	return s
}

// runKVContract checks the behaviour every key-value substrate must share.
func runKVContract(t *testing.T, kv domain.KeyValueStore) {
	ctx := context.Background()

	t.Run("Missing keys are absent, not errors", func(t *testing.T) {
		values, err := kv.Get(ctx, "never_written")
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("Reachable", func(t *testing.T) {
		assert.NoError(t, kv.Ping(ctx))
	})

	t.Run("Set then Get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, map[string]string{"a": "1", "b": "two"}))
		require.NoError(t, kv.Set(ctx, map[string]string{"a": "3"}))

		values, err := kv.Get(ctx, "a", "b", "c")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "3", "b": "two"}, values)
	})

	t.Run("Update failing in fn writes nothing", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, map[string]string{"counter": "1"}))

		err := kv.Update(ctx, []string{"counter"}, func(current map[string]string) (map[string]string, error) {
			return nil, errors.New("abort")
		})
		assert.EqualError(t, err, "abort")

		values, err := kv.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, "1", values["counter"])
	})

	t.Run("Update sees current values", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, map[string]string{"log": "x"}))

		err := kv.Update(ctx, []string{"log", "fresh"}, func(current map[string]string) (map[string]string, error) {
			assert.Equal(t, map[string]string{"log": "x"}, current)
			return map[string]string{"log": current["log"] + ";y", "fresh": "1"}, nil
		})
		require.NoError(t, err)

		values, err := kv.Get(ctx, "log", "fresh")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"log": "x;y", "fresh": "1"}, values)
	})
}

// runSessionStoreContract drives a KVSessionStore built on kv. kv must be
// empty of session keys.
func runSessionStoreContract(t *testing.T, kv domain.KeyValueStore) {
	ctx := context.Background()

	t.Run("Defaults on a fresh store", func(t *testing.T) {
		store := newTestSessionStore(kv)

		profile, err := store.ReadProfile(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.UserProfile{DailyStepGoal: domain.DefaultStepGoal}, profile)

		settings, err := store.ReadHealthSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultHealthSettings(), settings)

		sessions, err := store.ReadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, sessions)

		daily, err := store.ReadDailySnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DailySnapshot{}, daily)
	})

	t.Run("Period filtering", func(t *testing.T) {
		store := newTestSessionStore(kv)
		yesterday := mustNewSession(t, testNow.AddDate(0, 0, -1), 4000, 2400)
		today := mustNewSession(t, testNow.Add(-time.Hour), 2000, 1200)

		require.NoError(t, store.Append(ctx, yesterday))
		require.NoError(t, store.Append(ctx, today))

		day, err := store.ReadByPeriod(ctx, domain.PeriodDay, testNow)
		require.NoError(t, err)
		require.Len(t, day, 1)
		assert.Equal(t, today.ID, day[0].ID)

		week, err := store.ReadByPeriod(ctx, domain.PeriodWeek, testNow)
		require.NoError(t, err)
		require.Len(t, week, 2)
		assert.Equal(t, yesterday.ID, week[0].ID, "append order is preserved")
		assert.Equal(t, today.ID, week[1].ID)

		daily, err := store.ReadDailySnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DailySnapshot{Date: "2024-06-12", AccumulatedSteps: 2000, SessionsCompleted: 1}, daily,
			"a session on a new day restarts the rollup")
	})

	t.Run("Same day appends accumulate", func(t *testing.T) {
		store := newTestSessionStore(kv)
		before, err := store.ReadDailySnapshot(ctx)
		require.NoError(t, err)

		require.NoError(t, store.Append(ctx, mustNewSession(t, testNow, 500, 60)))

		after, err := store.ReadDailySnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, before.AccumulatedSteps+500, after.AccumulatedSteps)
		assert.Equal(t, before.SessionsCompleted+1, after.SessionsCompleted)
	})

	t.Run("Profile and settings round trip", func(t *testing.T) {
		store := newTestSessionStore(kv)
		profile := domain.UserProfile{Age: 52, HeightCm: 171.5, WeightKg: 80.25, DailyStepGoal: 9000}
		settings := domain.HealthSettings{
			ActivityLevel:   domain.ActivityVeryActive,
			HealthObjective: domain.ObjectiveLoseWeight,
			UpdatedAt:       time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		}

		require.NoError(t, store.WriteProfile(ctx, profile))
		require.NoError(t, store.WriteHealthSettings(ctx, settings))

		gotProfile, err := store.ReadProfile(ctx)
		require.NoError(t, err)
		assert.Equal(t, profile, gotProfile)

		gotSettings, err := store.ReadHealthSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, settings, gotSettings)
	})
}

func runConcurrentAppends(t *testing.T, kv domain.KeyValueStore) {
	ctx := context.Background()
	store := newTestSessionStore(kv)
	const writers = 20

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := domain.NewSession(testNow.Add(time.Duration(i)*time.Second), 100+i, 60, 0)
			if err != nil {
				errs <- err
				return
			}
			if err := store.Append(ctx, s); err != nil {
				errs <- fmt.Errorf("writer %d: %w", i, err)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	sessions, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, writers, "no append may be lost")

	expected := 0
	for i := 0; i < writers; i++ {
		expected += 100 + i
	}
	daily, err := store.ReadDailySnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, daily.AccumulatedSteps)
	assert.Equal(t, writers, daily.SessionsCompleted)
}
