package sensor

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/activat-sync-engine/internal/core/tracker"
)

var _ tracker.Sensor = UnavailableSensor{}

// UnavailableSensor stands in for a device without a step counter or
// without permission to read it. Sessions still run, with zero steps.
type UnavailableSensor struct{}

func (UnavailableSensor) Available(ctx context.Context) bool {
	return false
}

func (UnavailableSensor) Subscribe(ctx context.Context, handler func(tracker.Reading)) (tracker.Subscription, error) {
	return nil, domain.ErrSensorUnavailable
}

// IsUnavailable reports whether err means there is no sensor to read.
func IsUnavailable(err error) bool {
	return errors.Is(err, domain.ErrSensorUnavailable)
}
