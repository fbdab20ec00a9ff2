package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
)

var _ domain.KeyValueStore = (*InMemoryKV)(nil)

// InMemoryKV keeps everything in a map. Data is lost with the process.
type InMemoryKV struct {
	store map[string]string

	mu sync.RWMutex
}

func NewInMemoryKV() *InMemoryKV {
	return &InMemoryKV{
		store: make(map[string]string),
	}
}

func (r *InMemoryKV) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.pick(keys), nil
}

func (r *InMemoryKV) Set(ctx context.Context, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range values {
		r.store[k] = v
	}
	return nil
}

func (r *InMemoryKV) Update(ctx context.Context, keys []string, fn func(map[string]string) (map[string]string, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	next, err := fn(r.pick(keys))
	if err != nil {
		return err
	}
	for k, v := range next {
		r.store[k] = v
	}
	return nil
}

func (r *InMemoryKV) Ping(ctx context.Context) error {
	return nil
}

func (r *InMemoryKV) Close() error {
	return nil
}

func (r *InMemoryKV) pick(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := r.store[k]; ok {
			out[k] = v
		}
	}
	return out
}
