//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("activat"),
		postgrescontainer.WithUsername("activat"),
		postgrescontainer.WithPassword("activat"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, waitForPostgres(ctx, connStr))
	return connStr
}

func waitForPostgres(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		db, err := sqlx.ConnectContext(ctx, DriverPostgres, connStr)
		if err == nil {
			db.Close()
			return nil
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}

func TestPostgresKV_Integration(t *testing.T) {
	connStr := startPostgres(t)
	ctx := context.Background()

	open := func(table string) *SQLKV {
		kv, err := OpenSQLKV(ctx, DriverPostgres, connStr, table)
		require.NoError(t, err)
		t.Cleanup(func() { _ = kv.Close() })
		return kv
	}

	t.Run("Contract", func(t *testing.T) {
		runKVContract(t, open("kv_contract"))
	})

	t.Run("Session store", func(t *testing.T) {
		runSessionStoreContract(t, open("kv_sessions"))
	})

	t.Run("Concurrent appends", func(t *testing.T) {
		runConcurrentAppends(t, open("kv_concurrent"))
	})
}
