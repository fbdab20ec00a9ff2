package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/activat-sync-engine/internal/bootstrap"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
)

// seededOpener returns an opener over an in-memory store holding one
// session from now and one from ten days ago.
func seededOpener(t *testing.T) storeOpener {
	t.Helper()
	ctx := context.Background()

	kv := repository.NewInMemoryKV()
	sessions := repository.NewKVSessionStore(kv, repository.WithStoreLogger(log.New(io.Discard, "", 0)))

	old, err := domain.NewSession(time.Now().AddDate(0, 0, -10), 9000, 3600, 0)
	require.NoError(t, err)
	recent, err := domain.NewSession(time.Now(), 4200, 1830, 170)
	require.NoError(t, err)
	require.NoError(t, sessions.Append(ctx, old))
	require.NoError(t, sessions.Append(ctx, recent))

	return func(ctx context.Context) (*bootstrap.Store, error) {
		return &bootstrap.Store{KV: kv, Sessions: sessions}, nil
	}
}

func run(t *testing.T, open storeOpener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHistoryCommand(t *testing.T) {
	open := seededOpener(t)

	t.Run("Table for the week", func(t *testing.T) {
		out, err := run(t, open, "history", "--period", "week")
		require.NoError(t, err)
		assert.Contains(t, out, "STEPS")
		assert.Contains(t, out, "4200")
		assert.Contains(t, out, "30:30")
		assert.NotContains(t, out, "9000")
	})

	t.Run("JSON for the month", func(t *testing.T) {
		out, err := run(t, open, "history", "-p", "month", "--json")
		require.NoError(t, err)

		var sessions []domain.Session
		require.NoError(t, json.Unmarshal([]byte(out), &sessions))
		assert.Len(t, sessions, 2)
	})

	t.Run("Invalid period", func(t *testing.T) {
		_, err := run(t, open, "history", "--period", "year")
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	})
}

func TestSummaryCommand(t *testing.T) {
	out, err := run(t, seededOpener(t), "summary", "--period", "month", "--json")
	require.NoError(t, err)

	var body struct {
		Summary domain.PeriodSummary `json:"summary"`
		Chart   []domain.ChartPoint  `json:"chart"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 2, body.Summary.Sessions)
	assert.Equal(t, 13200, body.Summary.TotalSteps)
	assert.NotEmpty(t, body.Chart)
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walks.parquet")

	out, err := run(t, seededOpener(t), "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 sessions")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PAR1")))
}

func TestTodayCommand(t *testing.T) {
	out, err := run(t, seededOpener(t), "today")
	require.NoError(t, err)

	assert.Contains(t, out, "Steps:     4200 / 6000 (70%)")
	assert.Contains(t, out, "Remaining: 1800")
	assert.Contains(t, out, "Sessions:  1")
}
