package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/tracker"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/workers"
)

// SessionRecorder is what the controller needs from the store when a
// session ends.
type SessionRecorder interface {
	Append(ctx context.Context, session *domain.Session) error
	ReadProfile(ctx context.Context) (domain.UserProfile, error)
}

type ControllerOption func(*SessionController)

func WithClock(now func() time.Time) ControllerOption {
	return func(c *SessionController) {
		c.now = now
	}
}

func WithControllerLogger(logger *log.Logger) ControllerOption {
	return func(c *SessionController) {
		c.logger = logger
	}
}

func WithTickIntervals(active, paused time.Duration) ControllerOption {
	return func(c *SessionController) {
		c.ticker = workers.NewElapsedWorker(active, paused)
	}
}

// SessionController owns the lifecycle of the single in-progress session.
// Every mutation, whether it comes from a command, a sensor reading or the
// elapsed loop, is serialized by one mutex.
type SessionController struct {
	mu sync.Mutex

	store   SessionRecorder
	sensor  tracker.Sensor
	tracker *tracker.StepTracker
	ticker  *workers.ElapsedWorker
	now     func() time.Time
	logger  *log.Logger

	state           domain.SessionState
	liveSteps       int
	elapsedSeconds  int64
	sensorAvailable bool

	// generation identifies the running session; its elapsed loop only
	// ticks while it still matches.
	generation uint64
	// stopping is set while Stop waits on the store. Readings and ticks
	// still apply, other transitions are refused.
	stopping bool

	subscription tracker.Subscription
	loopCancel   context.CancelFunc
	loopDone     <-chan struct{}

	onChange func(completed *domain.Session)
}

func NewSessionController(store SessionRecorder, sensor tracker.Sensor, opts ...ControllerOption) *SessionController {
	c := &SessionController{
		store:   store,
		sensor:  sensor,
		tracker: tracker.NewStepTracker(),
		ticker:  workers.NewElapsedWorker(workers.DefaultActiveInterval, workers.DefaultPausedInterval),
		now:     time.Now,
		logger:  log.New(os.Stdout, "[SESSION] ", log.LstdFlags),
		state:   domain.SessionIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers the callback run after every observable change. It is
// called without the controller lock held; completed is the stored session
// when the change is a successful Stop and nil otherwise.
func (c *SessionController) OnChange(fn func(completed *domain.Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

func (c *SessionController) Start(ctx context.Context) error {
	c.mu.Lock()

	if c.state != domain.SessionIdle {
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot start from %s", domain.ErrInvalidTransition, c.state)
	}

	c.tracker.Rearm()
	c.liveSteps = 0
	c.elapsedSeconds = 0
	c.sensorAvailable = false

	if c.sensor != nil && c.sensor.Available(ctx) {
		sub, err := c.sensor.Subscribe(ctx, c.handleReading)
		if err != nil {
			c.logger.Printf("sensor subscription failed, counting disabled: %v", err)
		} else {
			c.subscription = sub
			c.sensorAvailable = true
		}
	}

	c.state = domain.SessionActive
	c.generation++

	loopCtx, cancel := context.WithCancel(context.Background())
	c.loopCancel = cancel
	c.loopDone = c.ticker.Start(loopCtx, loopClock{c: c, generation: c.generation})

	notify := c.onChange
	c.mu.Unlock()

	c.logger.Println("session started")
	if notify != nil {
		notify(nil)
	}
	return nil
}

func (c *SessionController) Pause() error {
	return c.transition(domain.SessionActive, domain.SessionPaused)
}

// Resume continues counting without rearming the tracker: the first reading
// after a resume is measured from the original baseline, so no step the
// counter registered is lost.
func (c *SessionController) Resume() error {
	return c.transition(domain.SessionPaused, domain.SessionActive)
}

func (c *SessionController) transition(from, to domain.SessionState) error {
	c.mu.Lock()
	if c.stopping {
		c.mu.Unlock()
		return fmt.Errorf("%w: session is being stopped", domain.ErrInvalidTransition)
	}
	if c.state != from {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot move from %s to %s", domain.ErrInvalidTransition, state, to)
	}
	c.state = to
	notify := c.onChange
	c.mu.Unlock()

	if notify != nil {
		notify(nil)
	}
	return nil
}

// Stop completes the session and persists it. If the store rejects the
// session the controller keeps it, so the caller can retry. Stopping while
// idle is a no-op reported as ErrNoActiveSession.
//
// The store is called without the lock held: readings and ticks keep
// applying while it works, so a failed append loses none of them.
func (c *SessionController) Stop(ctx context.Context) (*domain.Session, error) {
	if c.State() == domain.SessionIdle {
		return nil, domain.ErrNoActiveSession
	}

	profile, err := c.store.ReadProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading profile: %w", domain.ErrSessionStoreFailed, err)
	}

	c.mu.Lock()
	if c.state == domain.SessionIdle {
		c.mu.Unlock()
		return nil, domain.ErrNoActiveSession
	}
	if c.stopping {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: session is being stopped", domain.ErrInvalidTransition)
	}
	session, err := domain.NewSession(c.now(), c.liveSteps, c.elapsedSeconds, profile.HeightCm)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.stopping = true
	generation := c.generation
	c.mu.Unlock()

	appendErr := c.store.Append(ctx, session)

	c.mu.Lock()
	c.stopping = false
	if appendErr != nil {
		c.mu.Unlock()
		c.logger.Printf("failed to persist session, keeping it in memory: %v", appendErr)
		return nil, fmt.Errorf("%w: %w", domain.ErrSessionStoreFailed, appendErr)
	}

	var (
		cancel context.CancelFunc
		done   <-chan struct{}
		sub    tracker.Subscription
	)
	// Shutdown may have discarded the session while the store was busy.
	if c.generation == generation && c.state != domain.SessionIdle {
		cancel, done, sub = c.resetLocked()
	}
	notify := c.onChange
	c.mu.Unlock()

	c.release(cancel, done, sub)

	c.logger.Printf("session stored: %d steps in %s", session.StepCount, session.FormattedDuration())
	if notify != nil {
		notify(session)
	}
	return session, nil
}

// Shutdown discards a running session without persisting it, as happens
// when the process dies.
func (c *SessionController) Shutdown() {
	c.mu.Lock()
	if c.state == domain.SessionIdle {
		c.mu.Unlock()
		return
	}
	c.logger.Printf("discarding %s session with %d steps", c.state, c.liveSteps)
	cancel, done, sub := c.resetLocked()
	c.mu.Unlock()

	c.release(cancel, done, sub)
}

func (c *SessionController) resetLocked() (context.CancelFunc, <-chan struct{}, tracker.Subscription) {
	cancel, done, sub := c.loopCancel, c.loopDone, c.subscription

	c.state = domain.SessionIdle
	c.liveSteps = 0
	c.elapsedSeconds = 0
	c.sensorAvailable = false
	c.tracker.Rearm()
	c.loopCancel = nil
	c.loopDone = nil
	c.subscription = nil

	return cancel, done, sub
}

// release runs without the lock: the elapsed loop takes it on every wake-up.
func (c *SessionController) release(cancel context.CancelFunc, done <-chan struct{}, sub tracker.Subscription) {
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	if sub != nil {
		if err := sub.Close(); err != nil {
			c.logger.Printf("closing sensor subscription: %v", err)
		}
	}
}

// Tick adds one second of elapsed time if the session is active.
func (c *SessionController) Tick() {
	c.tick(0)
}

// tick advances the session of the given generation; 0 means the current one.
func (c *SessionController) tick(generation uint64) {
	c.mu.Lock()
	if c.state != domain.SessionActive || (generation != 0 && generation != c.generation) {
		c.mu.Unlock()
		return
	}
	c.elapsedSeconds++
	notify := c.onChange
	c.mu.Unlock()

	if notify != nil {
		notify(nil)
	}
}

func (c *SessionController) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *SessionController) Snapshot() domain.LiveSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.LiveSession{
		State:           c.state,
		LiveStepCount:   c.liveSteps,
		ElapsedSeconds:  c.elapsedSeconds,
		SensorAvailable: c.sensorAvailable,
	}
}

func (c *SessionController) handleReading(r tracker.Reading) {
	c.mu.Lock()
	if c.state != domain.SessionActive {
		c.mu.Unlock()
		return
	}
	steps := c.tracker.OnReading(r.Cumulative)
	changed := steps != c.liveSteps
	c.liveSteps = steps
	notify := c.onChange
	c.mu.Unlock()

	if changed && notify != nil {
		notify(nil)
	}
}

// loopClock binds an elapsed loop to the session that started it. A loop
// that outlives its session sees it as idle, exits, and never ticks the next.
type loopClock struct {
	c          *SessionController
	generation uint64
}

func (l loopClock) State() domain.SessionState {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	if l.c.generation != l.generation {
		return domain.SessionIdle
	}
	return l.c.state
}

func (l loopClock) Tick() {
	l.c.tick(l.generation)
}
