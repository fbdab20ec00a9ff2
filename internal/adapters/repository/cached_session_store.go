package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.SessionStore = (*CachedSessionStore)(nil)

const (
	sessionsCacheKey        = "activat:cache:sessions"
	sessionsCacheVersionKey = "activat:cache:sessions:version"
	sessionsCacheTTL        = 30 * time.Minute
)

var errStaleHistory = errors.New("session history changed during read")

// CachedSessionStore keeps the decoded session log in Redis so history
// reads skip fetching and parsing the whole log. Appends bump a version key
// and drop the entry; a reader only fills the cache if the version it saw
// before reading the store is still current, so a list read before an
// append is never cached after it.
type CachedSessionStore struct {
	next  domain.SessionStore
	cache *redis.Client
}

func NewCachedSessionStore(next domain.SessionStore, cache *redis.Client) *CachedSessionStore {
	return &CachedSessionStore{
		next:  next,
		cache: cache,
	}
}

func (r *CachedSessionStore) invalidate(ctx context.Context) {
	_, err := r.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, sessionsCacheVersionKey)
		pipe.Del(ctx, sessionsCacheKey)
		return nil
	})
	if err != nil {
		log.Printf("[CACHE] Failed to invalidate session history: %v", err)
	}
}

func (r *CachedSessionStore) version(ctx context.Context) (string, error) {
	v, err := r.cache.Get(ctx, sessionsCacheVersionKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}

// fill stores sessions unless an append moved the version past seen.
func (r *CachedSessionStore) fill(ctx context.Context, seen string, sessions []*domain.Session) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return err
	}

	return r.cache.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, sessionsCacheVersionKey).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != seen {
			return errStaleHistory
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionsCacheKey, data, sessionsCacheTTL)
			return nil
		})
		return err
	}, sessionsCacheVersionKey)
}

func (r *CachedSessionStore) ReadAll(ctx context.Context) ([]*domain.Session, error) {
	val, err := r.cache.Get(ctx, sessionsCacheKey).Result()
	if err == nil {
		var sessions []*domain.Session
		if err := json.Unmarshal([]byte(val), &sessions); err == nil {
			return sessions, nil
		}

		log.Printf("[CACHE] Corrupted session history, cleaning up key")
		r.cache.Del(ctx, sessionsCacheKey)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	seen, versionErr := r.version(ctx)

	sessions, err := r.next.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	if versionErr != nil {
		log.Printf("[CACHE] Redis version read error, not caching: %v", versionErr)
		return sessions, nil
	}
	switch err := r.fill(ctx, seen, sessions); {
	case err == nil:
	case errors.Is(err, errStaleHistory), errors.Is(err, redis.TxFailedErr):
		log.Printf("[CACHE] Session history changed while reading, not caching")
	default:
		log.Printf("[CACHE] Redis set error: %v", err)
	}

	return sessions, nil
}

func (r *CachedSessionStore) ReadByPeriod(ctx context.Context, period domain.Period, now time.Time) ([]*domain.Session, error) {
	sessions, err := r.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterByPeriod(sessions, period, now), nil
}

func (r *CachedSessionStore) Append(ctx context.Context, session *domain.Session) error {
	if err := r.next.Append(ctx, session); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedSessionStore) ReadDailySnapshot(ctx context.Context) (domain.DailySnapshot, error) {
	return r.next.ReadDailySnapshot(ctx)
}

func (r *CachedSessionStore) ReadProfile(ctx context.Context) (domain.UserProfile, error) {
	return r.next.ReadProfile(ctx)
}

func (r *CachedSessionStore) WriteProfile(ctx context.Context, profile domain.UserProfile) error {
	return r.next.WriteProfile(ctx, profile)
}

func (r *CachedSessionStore) ReadHealthSettings(ctx context.Context) (domain.HealthSettings, error) {
	return r.next.ReadHealthSettings(ctx)
}

func (r *CachedSessionStore) WriteHealthSettings(ctx context.Context, settings domain.HealthSettings) error {
	return r.next.WriteHealthSettings(ctx, settings)
}
