// Package bootstrap opens the configured storage for the binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/activat-sync-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/activat-sync-engine/internal/config"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	KV       domain.KeyValueStore
	Sessions domain.SessionStore
	// Redis is nil unless a component asked for it.
	Redis *redis.Client
}

// OpenStore connects Redis when needed, opens the key-value substrate and
// layers the session store (and its cache) on top. Session log timestamps
// are read in the configured zone.
func OpenStore(ctx context.Context, cfg config.Config) (*Store, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.NeedsRedis() {
		rdb, err = cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
	}

	kv, err := repository.OpenKV(ctx, repository.OpenOptions{
		Driver:      cfg.StoreDriver,
		SQLitePath:  cfg.SQLitePath,
		PostgresDSN: cfg.PostgresDSN(),
		Table:       cfg.KVTable,
		Redis:       rdb,
	})
	if err != nil {
		if rdb != nil {
			rdb.Close()
		}
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}

	var sessions domain.SessionStore = repository.NewKVSessionStore(kv,
		repository.WithCodec(domain.NewDelimitedCodec(loc)),
		repository.WithDefaultStepGoal(cfg.DefaultStepGoal),
		repository.WithStoreLogger(log.New(os.Stdout, "[STORE] ", log.LstdFlags)),
	)
	if cfg.RedisCache && rdb != nil && cfg.StoreDriver != config.StoreRedis {
		sessions = repository.NewCachedSessionStore(sessions, rdb)
	}

	return &Store{KV: kv, Sessions: sessions, Redis: rdb}, nil
}

func (s *Store) Close() error {
	var errs []error
	if err := s.KV.Close(); err != nil {
		errs = append(errs, err)
	}
	// The redis substrate owns the client and closed it already.
	if s.Redis != nil {
		if _, ownsClient := s.KV.(*repository.RedisKV); !ownsClient {
			if err := s.Redis.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
