package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"

	DefaultKVTable = "activat_preferences"
)

var _ domain.KeyValueStore = (*SQLKV)(nil)

type kvRow struct {
	Name  string `db:"name"`
	Value string `db:"value"`
}

// SQLKV stores the preference map as one row per key. It runs on Postgres
// through pgx and on SQLite through go-sqlite3.
type SQLKV struct {
	db     *sqlx.DB
	driver string
	table  string
}

func NewSQLKV(db *sqlx.DB, table string) *SQLKV {
	if table == "" {
		table = DefaultKVTable
	}
	return &SQLKV{
		db:     db,
		driver: db.DriverName(),
		table:  pq.QuoteIdentifier(table),
	}
}

// SQLiteDSN builds a go-sqlite3 connection string for a database file.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=5000", path)
}

// OpenSQLKV connects, applies the schema and returns the store.
func OpenSQLKV(ctx context.Context, driver, dsn, table string) (*SQLKV, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	kv := NewSQLKV(db, table)
	if err := kv.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return kv, nil
}

// Migrate creates the table if it does not exist yet.
func (r *SQLKV) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            name  TEXT PRIMARY KEY,
            value TEXT NOT NULL
        )`, r.table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

func (r *SQLKV) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	return r.get(ctx, r.db, keys)
}

func (r *SQLKV) Set(ctx context.Context, values map[string]string) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		return r.upsert(ctx, tx, values)
	})
}

// Update serializes writers with a table lock on Postgres. SQLite
// connections are opened with _txlock=immediate, which takes the write
// lock when the transaction begins.
func (r *SQLKV) Update(ctx context.Context, keys []string, fn func(map[string]string) (map[string]string, error)) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if r.driver == DriverPostgres {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE", r.table)); err != nil {
				return fmt.Errorf("failed to lock kv table: %w", err)
			}
		}

		current, err := r.get(ctx, tx, keys)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		return r.upsert(ctx, tx, next)
	})
}

func (r *SQLKV) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLKV) Close() error {
	return r.db.Close()
}

func (r *SQLKV) get(ctx context.Context, q sqlx.QueryerContext, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf("SELECT name, value FROM %s WHERE name IN (?)", r.table), keys)
	if err != nil {
		return nil, fmt.Errorf("failed to build kv query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []kvRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	for _, row := range rows {
		out[row.Name] = row.Value
	}
	return out, nil
}

func (r *SQLKV) upsert(ctx context.Context, tx *sqlx.Tx, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (name, value) VALUES (:name, :value)
        ON CONFLICT (name) DO UPDATE SET value = excluded.value`, r.table)

	// Stable order keeps lock acquisition deterministic across writers.
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := tx.NamedExecContext(ctx, query, kvRow{Name: name, Value: values[name]}); err != nil {
			return fmt.Errorf("failed to upsert %s: %w", name, err)
		}
	}
	return nil
}

func (r *SQLKV) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
