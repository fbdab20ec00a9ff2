package tracker

import (
	"context"
	"time"
)

// Reading is one sample of the hardware step counter: a cumulative count
// since an arbitrary epoch (usually the last device boot).
type Reading struct {
	Cumulative float64   `json:"cumulative_steps"`
	Timestamp  time.Time `json:"timestamp"`
}

type Subscription interface {
	Close() error
}

// Sensor delivers readings only while a subscription is open. A sensor that
// reports itself unavailable is never subscribed to.
type Sensor interface {
	Available(ctx context.Context) bool

	// Subscribe registers handler for every future reading. The handler is
	// invoked from the sensor's goroutine and must not block.
	Subscribe(ctx context.Context, handler func(Reading)) (Subscription, error)
}
