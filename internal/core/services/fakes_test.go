package services

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/tracker"
)

type fakeStore struct {
	mu        sync.Mutex
	sessions  []*domain.Session
	daily     domain.DailySnapshot
	profile   domain.UserProfile
	settings  domain.HealthSettings
	appendErr error
	readErr   error
	appends   int

	hooks storeHooks
}

// storeHooks run outside the lock so a test can park a caller or interleave
// another one mid-operation.
type storeHooks struct {
	beforeAppend   func()
	afterAppend    func()
	afterDailyRead func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profile:  domain.DefaultProfile(domain.DefaultStepGoal),
		settings: domain.DefaultHealthSettings(),
	}
}

func (f *fakeStore) Append(ctx context.Context, s *domain.Session) error {
	f.mu.Lock()
	hooks := f.hooks
	f.mu.Unlock()
	if hooks.beforeAppend != nil {
		hooks.beforeAppend()
	}

	f.mu.Lock()
	f.appends++
	if f.appendErr != nil {
		err := f.appendErr
		f.mu.Unlock()
		return err
	}
	f.sessions = append(f.sessions, s)
	f.daily = f.daily.With(s)
	f.mu.Unlock()

	if hooks.afterAppend != nil {
		hooks.afterAppend()
	}
	return nil
}

func (f *fakeStore) ReadAll(ctx context.Context) ([]*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	return append([]*domain.Session(nil), f.sessions...), nil
}

func (f *fakeStore) ReadByPeriod(ctx context.Context, p domain.Period, now time.Time) ([]*domain.Session, error) {
	all, err := f.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterByPeriod(all, p, now), nil
}

func (f *fakeStore) ReadDailySnapshot(ctx context.Context) (domain.DailySnapshot, error) {
	f.mu.Lock()
	daily, err, hook := f.daily, f.readErr, f.hooks.afterDailyRead
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return domain.DailySnapshot{}, err
	}
	return daily, nil
}

func (f *fakeStore) ReadProfile(ctx context.Context) (domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return domain.UserProfile{}, f.readErr
	}
	return f.profile, nil
}

func (f *fakeStore) WriteProfile(ctx context.Context, p domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = p
	return nil
}

func (f *fakeStore) ReadHealthSettings(ctx context.Context) (domain.HealthSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return domain.HealthSettings{}, f.readErr
	}
	return f.settings, nil
}

func (f *fakeStore) WriteHealthSettings(ctx context.Context, s domain.HealthSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = s
	return nil
}

func (f *fakeStore) setHooks(hooks storeHooks) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks = hooks
}

func (f *fakeStore) setAppendErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appendErr = err
}

type fakeSensor struct {
	mu        sync.Mutex
	available bool
	handler   func(tracker.Reading)
	closed    int
}

func (s *fakeSensor) Available(ctx context.Context) bool {
	return s.available
}

func (s *fakeSensor) Subscribe(ctx context.Context, handler func(tracker.Reading)) (tracker.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
	return fakeSubscription{sensor: s}, nil
}

func (s *fakeSensor) emit(cumulative float64) {
	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()
	if h != nil {
		h(tracker.Reading{Cumulative: cumulative, Timestamp: time.Now()})
	}
}

func (s *fakeSensor) subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler != nil
}

type fakeSubscription struct {
	sensor *fakeSensor
}

func (f fakeSubscription) Close() error {
	f.sensor.mu.Lock()
	defer f.sensor.mu.Unlock()
	f.sensor.handler = nil
	f.sensor.closed++
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
