package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisPrefix = "activat:"
	maxUpdateRetries   = 10
)

var _ domain.KeyValueStore = (*RedisKV)(nil)

// multiGetter is satisfied by both *redis.Client and *redis.Tx.
type multiGetter interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

// RedisKV keeps each preference as a plain string key under a prefix.
// Update uses WATCH/MULTI and retries when another writer got in first.
type RedisKV struct {
	client *redis.Client
	prefix string
}

func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisKV{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisKV) key(name string) string {
	return r.prefix + name
}

func (r *RedisKV) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	return r.get(ctx, r.client, keys)
}

func (r *RedisKV) Set(ctx context.Context, values map[string]string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, value := range values {
			pipe.Set(ctx, r.key(name), value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (r *RedisKV) Update(ctx context.Context, keys []string, fn func(map[string]string) (map[string]string, error)) error {
	watched := make([]string, len(keys))
	for i, name := range keys {
		watched[i] = r.key(name)
	}

	txf := func(tx *redis.Tx) error {
		current, err := r.get(ctx, tx, keys)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for name, value := range next {
				pipe.Set(ctx, r.key(name), value, 0)
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, watched...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis update error: %w", err)
		}
		return nil
	}
	return fmt.Errorf("redis update error: gave up after %d conflicting writes", maxUpdateRetries)
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}

func (r *RedisKV) get(ctx context.Context, c multiGetter, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	prefixed := make([]string, len(keys))
	for i, name := range keys {
		prefixed[i] = r.key(name)
	}

	values, err := c.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis read error: %w", err)
	}
	for i, v := range values {
		if s, ok := v.(string); ok {
			out[keys[i]] = s
		}
	}
	return out, nil
}
