package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/config"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{
		StoreDriver:     config.StoreSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "activat.db"),
		KVTable:         "prefs",
		DefaultStepGoal: 7500,
		Timezone:        "UTC",
	}

	store, err := OpenStore(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, store.Redis)

	profile, err := store.Sessions.ReadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7500, profile.DailyStepGoal)

	s, err := domain.NewSession(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), 1200, 900, 0)
	require.NoError(t, err)
	require.NoError(t, store.Sessions.Append(ctx, s))
	require.NoError(t, store.Close())

	reopened, err := OpenStore(ctx, cfg)
	require.NoError(t, err)
	defer reopened.Close()

	sessions, err := reopened.Sessions.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, s.ID, sessions[0].ID)
}

func TestOpenStore_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := OpenStore(ctx, config.Config{StoreDriver: "mongo"})
	assert.ErrorContains(t, err, "unknown store driver")

	_, err = OpenStore(ctx, config.Config{StoreDriver: config.StoreMemory, Timezone: "Nowhere/Land"})
	assert.ErrorContains(t, err, "invalid TIMEZONE")
}
