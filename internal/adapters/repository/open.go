package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var ErrRedisRequired = errors.New("redis client required for the redis substrate")

type OpenOptions struct {
	// Driver is one of memory, sqlite, postgres or redis.
	Driver      string
	SQLitePath  string
	PostgresDSN string
	Table       string
	Redis       *redis.Client
	RedisPrefix string
}

// OpenKV returns the key-value substrate selected by opts.Driver, with its
// schema in place.
func OpenKV(ctx context.Context, opts OpenOptions) (domain.KeyValueStore, error) {
	switch opts.Driver {
	case "memory":
		return NewInMemoryKV(), nil
	case "sqlite":
		return OpenSQLKV(ctx, DriverSQLite, SQLiteDSN(opts.SQLitePath), opts.Table)
	case "postgres":
		kv, err := OpenSQLKV(ctx, DriverPostgres, opts.PostgresDSN, opts.Table)
		if err != nil {
			return nil, err
		}
		kv.db.SetMaxOpenConns(10)
		kv.db.SetMaxIdleConns(10)
		return kv, nil
	case "redis":
		if opts.Redis == nil {
			return nil, ErrRedisRequired
		}
		return NewRedisKV(opts.Redis, opts.RedisPrefix), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
}
