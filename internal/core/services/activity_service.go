package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/workers"
)

const reloadTimeout = 5 * time.Second

// persisted is the stored half of the dashboard. It only changes on
// commands, so it is cached between them while live ticks recompute the rest.
type persisted struct {
	profile  domain.UserProfile
	settings domain.HealthSettings
	today    domain.DailySnapshot
	last     *domain.Session
}

// ActivityService is the command and read facade used by the transports. It
// recomputes the Dashboard after every change and publishes it to observers.
type ActivityService struct {
	controller *SessionController
	daily      *DailyService
	profiles   *ProfileService
	history    *HistoryService
	updates    *workers.Broadcaster[domain.Dashboard]
	now        func() time.Time

	mu     sync.Mutex
	cache  persisted
	loaded bool
	// stored counts sessions persisted since startup. Refresh compares it
	// before and after its reads to detect a Stop that raced with them.
	stored uint64
}

func NewActivityService(controller *SessionController, daily *DailyService, profiles *ProfileService, history *HistoryService) *ActivityService {
	s := &ActivityService{
		controller: controller,
		daily:      daily,
		profiles:   profiles,
		history:    history,
		updates:    workers.NewBroadcaster[domain.Dashboard](),
		now:        time.Now,
	}
	controller.OnChange(s.handleSessionChange)
	return s
}

func (s *ActivityService) StartSession(ctx context.Context) (domain.LiveSession, error) {
	if err := s.controller.Start(ctx); err != nil {
		return domain.LiveSession{}, err
	}
	return s.controller.Snapshot(), nil
}

func (s *ActivityService) PauseSession() (domain.LiveSession, error) {
	if err := s.controller.Pause(); err != nil {
		return domain.LiveSession{}, err
	}
	return s.controller.Snapshot(), nil
}

func (s *ActivityService) ResumeSession() (domain.LiveSession, error) {
	if err := s.controller.Resume(); err != nil {
		return domain.LiveSession{}, err
	}
	return s.controller.Snapshot(), nil
}

func (s *ActivityService) StopSession(ctx context.Context) (*domain.Session, error) {
	return s.controller.Stop(ctx)
}

func (s *ActivityService) LiveSession() domain.LiveSession {
	return s.controller.Snapshot()
}

func (s *ActivityService) UpdateProfile(ctx context.Context, input domain.ProfileInput) (domain.UserProfile, error) {
	profile, err := s.profiles.UpdateProfile(ctx, input)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if _, err := s.Refresh(ctx); err != nil {
		log.Printf("[ACTIVITY] dashboard refresh after profile update failed: %v", err)
	}
	return profile, nil
}

func (s *ActivityService) UpdateHealthSettings(ctx context.Context, input UpdateHealthSettingsInput) (domain.HealthSettings, error) {
	settings, err := s.profiles.UpdateHealthSettings(ctx, input)
	if err != nil {
		return domain.HealthSettings{}, err
	}
	if _, err := s.Refresh(ctx); err != nil {
		log.Printf("[ACTIVITY] dashboard refresh after settings update failed: %v", err)
	}
	return settings, nil
}

// Dashboard returns the current dashboard, loading the stored half on first use.
func (s *ActivityService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()

	if !loaded {
		return s.Refresh(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composeLocked(), nil
}

// Refresh reloads everything stored, then recomputes and publishes. If a
// session is stored while the reads are in flight they are repeated, so an
// older rollup never replaces a newer one.
func (s *ActivityService) Refresh(ctx context.Context) (domain.Dashboard, error) {
	for {
		s.mu.Lock()
		seen := s.stored
		s.mu.Unlock()

		loaded, err := s.load(ctx)
		if err != nil {
			return domain.Dashboard{}, err
		}

		s.mu.Lock()
		if s.stored != seen {
			s.mu.Unlock()
			continue
		}
		s.cache = loaded
		s.loaded = true
		d := s.publishLocked()
		s.mu.Unlock()
		return d, nil
	}
}

func (s *ActivityService) load(ctx context.Context) (persisted, error) {
	profile, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return persisted{}, err
	}
	settings, err := s.profiles.GetHealthSettings(ctx)
	if err != nil {
		return persisted{}, err
	}
	today, err := s.daily.GetSnapshot(ctx, s.now())
	if err != nil {
		return persisted{}, err
	}
	last, err := s.history.Latest(ctx)
	if err != nil {
		return persisted{}, err
	}
	return persisted{profile: profile, settings: settings, today: today, last: last}, nil
}

// Subscribe streams dashboards, starting with the latest one published.
func (s *ActivityService) Subscribe() (<-chan domain.Dashboard, func()) {
	return s.updates.Subscribe()
}

// Close discards any running session and ends every subscription.
func (s *ActivityService) Close() {
	s.controller.Shutdown()
	s.updates.Close()
}

// handleSessionChange republishes after every live change. A stored session
// reloads the day rollup from the store: a concurrent Refresh may already
// have read it, so folding the session in again could count it twice.
func (s *ActivityService) handleSessionChange(completed *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if completed != nil {
		s.stored++
	}
	if !s.loaded {
		return
	}
	if completed != nil {
		s.reloadTodayLocked(completed)
	}
	s.publishLocked()
}

func (s *ActivityService) reloadTodayLocked(completed *domain.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	today, err := s.daily.GetSnapshot(ctx, s.now())
	if err != nil {
		// Serve the folded value now and reload everything on the next read.
		log.Printf("[ACTIVITY] reloading day rollup after stop failed: %v", err)
		today = s.cache.today.With(completed)
		s.loaded = false
	}
	s.cache.today = today
	if s.cache.last == nil || !completed.Timestamp.Before(s.cache.last.Timestamp) {
		s.cache.last = completed
	}
}

func (s *ActivityService) composeLocked() domain.Dashboard {
	return domain.NewDashboard(
		s.now(),
		s.cache.profile,
		s.cache.settings,
		s.cache.today,
		s.controller.Snapshot(),
		s.cache.last,
	)
}

func (s *ActivityService) publishLocked() domain.Dashboard {
	d := s.composeLocked()
	s.updates.Publish(d)
	return d
}
