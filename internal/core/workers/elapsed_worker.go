package workers

import (
	"context"
	"log"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
)

const (
	DefaultActiveInterval = time.Second
	DefaultPausedInterval = 100 * time.Millisecond
)

// SessionClock is the part of the session controller the elapsed loop drives.
type SessionClock interface {
	State() domain.SessionState
	// Tick adds one second of elapsed time when the session is active.
	Tick()
}

// ElapsedWorker accrues session time. It wakes once per active interval while
// the session runs and polls faster while it is paused so a resume is picked
// up quickly. The loop exits on its own once the session is idle.
type ElapsedWorker struct {
	activeInterval time.Duration
	pausedInterval time.Duration
}

func NewElapsedWorker(activeInterval, pausedInterval time.Duration) *ElapsedWorker {
	if activeInterval <= 0 {
		activeInterval = DefaultActiveInterval
	}
	if pausedInterval <= 0 {
		pausedInterval = DefaultPausedInterval
	}
	return &ElapsedWorker{
		activeInterval: activeInterval,
		pausedInterval: pausedInterval,
	}
}

// Start launches the loop for one session. The returned channel is closed
// once the goroutine has exited, which happens when ctx is cancelled.
func (w *ElapsedWorker) Start(ctx context.Context, clock SessionClock) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		interval := w.activeInterval
		wasActive := true
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			switch clock.State() {
			case domain.SessionActive:
				// The first wake-up after a resume only switches back to the
				// active cadence; a tick needs a full active interval.
				if wasActive {
					clock.Tick()
				}
				wasActive = true
				interval = w.activeInterval
			case domain.SessionPaused:
				wasActive = false
				interval = w.pausedInterval
			default:
				log.Println("[TICKER] session no longer running, loop exiting")
				return
			}
			timer.Reset(interval)
		}
	}()

	return done
}
