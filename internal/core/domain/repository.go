package domain

import (
	"context"
	"time"
)

// KeyValueStore is the durable substrate: a flat map of scalar values kept
// as strings, plus the session log stored as one opaque value.
type KeyValueStore interface {
	// Get returns the values of the requested keys. Missing keys are absent
	// from the result map; absence is not an error.
	Get(ctx context.Context, keys ...string) (map[string]string, error)

	// Set writes all values in a single atomic operation.
	Set(ctx context.Context, values map[string]string) error

	// Update reads keys, passes their current values to fn and atomically
	// writes back the map fn returns. If fn fails nothing is written.
	// Implementations must not let a concurrent writer interleave between
	// the read and the write.
	Update(ctx context.Context, keys []string, fn func(current map[string]string) (map[string]string, error)) error

	// Ping reports whether the substrate is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// SessionStore is the durable, append-only log of completed sessions plus
// the profile and settings scalars of the single user.
type SessionStore interface {
	// Append adds the session to the log and folds it into the day rollup
	// in the same transaction. Either both are persisted or neither is.
	Append(ctx context.Context, session *Session) error

	// ReadAll returns every session ever appended, in append order.
	// Malformed records are skipped.
	ReadAll(ctx context.Context) ([]*Session, error)

	// ReadByPeriod filters ReadAll by a rolling period ending at now.
	ReadByPeriod(ctx context.Context, period Period, now time.Time) ([]*Session, error)

	// ReadDailySnapshot returns the rollup exactly as stored, stale or not.
	// Callers must reconcile it with DailySnapshot.For.
	ReadDailySnapshot(ctx context.Context) (DailySnapshot, error)

	ReadProfile(ctx context.Context) (UserProfile, error)
	WriteProfile(ctx context.Context, profile UserProfile) error

	ReadHealthSettings(ctx context.Context) (HealthSettings, error)
	WriteHealthSettings(ctx context.Context, settings HealthSettings) error
}
