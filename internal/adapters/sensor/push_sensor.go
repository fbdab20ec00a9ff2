package sensor

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/tracker"
	"github.com/comitanigiacomo/activat-sync-engine/internal/observability"
)

var ErrInvalidReading = errors.New("reading must be a finite, non-negative step count")

var _ tracker.Sensor = (*PushSensor)(nil)

// PushSensor receives readings from a device bridge over the API and
// forwards them to whoever is subscribed. Readings with no subscriber are
// dropped, like a hardware sensor nobody is listening to.
type PushSensor struct {
	mu       sync.Mutex
	handlers map[int]func(tracker.Reading)
	nextID   int
	last     *tracker.Reading
}

func NewPushSensor() *PushSensor {
	return &PushSensor{
		handlers: make(map[int]func(tracker.Reading)),
	}
}

func (s *PushSensor) Available(ctx context.Context) bool {
	return true
}

func (s *PushSensor) Subscribe(ctx context.Context, handler func(tracker.Reading)) (tracker.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.handlers[id] = handler

	return &pushSubscription{sensor: s, id: id}, nil
}

// Push delivers one reading. Handlers run on the caller's goroutine, after
// the sensor lock is released.
func (s *PushSensor) Push(r tracker.Reading) error {
	if math.IsNaN(r.Cumulative) || math.IsInf(r.Cumulative, 0) || r.Cumulative < 0 {
		return ErrInvalidReading
	}
	observability.RecordSensorReading()

	s.mu.Lock()
	reading := r
	s.last = &reading
	handlers := make([]func(tracker.Reading), 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(r)
	}
	return nil
}

// Subscribers reports how many consumers are currently listening.
func (s *PushSensor) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

// LastReading returns the most recent reading pushed, if any.
func (s *PushSensor) LastReading() (tracker.Reading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return tracker.Reading{}, false
	}
	return *s.last, true
}

type pushSubscription struct {
	sensor *PushSensor
	id     int
	once   sync.Once
}

func (p *pushSubscription) Close() error {
	p.once.Do(func() {
		p.sensor.mu.Lock()
		defer p.sensor.mu.Unlock()
		delete(p.sensor.handlers, p.id)
	})
	return nil
}
