package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSession     = errors.New("invalid session data")
	ErrInvalidTransition  = errors.New("invalid session state transition")
	ErrNoActiveSession    = errors.New("no active session")
	ErrSensorUnavailable  = errors.New("step sensor unavailable")
	ErrSessionStoreFailed = errors.New("session could not be persisted")
)

const (
	StrideHeightFactor = 0.415
	FallbackStrideCm   = 70.0
	cmPerKm            = 100000.0
)

// LocalDateTimeLayout is the zone-less timestamp used by the session log.
const LocalDateTimeLayout = "2006-01-02T15:04:05.999999999"

var sessionNamespace = uuid.MustParse("5b0c4f0e-8f7e-4c39-9a57-3f1f6c2d7e11")

type Session struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	StepCount       int       `json:"step_count"`
	DurationSeconds int64     `json:"duration_seconds"`
	DistanceKm      float64   `json:"distance_km"`
}

// EstimateDistanceKm converts steps to kilometres using a height-derived
// stride, or an average stride when height is unknown.
func EstimateDistanceKm(steps int, heightCm float64) float64 {
	stride := FallbackStrideCm
	if heightCm > 0 {
		stride = heightCm * StrideHeightFactor
	}
	return float64(steps) * stride / cmPerKm
}

func NewSession(completedAt time.Time, steps int, durationSeconds int64, heightCm float64) (*Session, error) {
	s := &Session{
		Timestamp:       completedAt.Round(0),
		StepCount:       steps,
		DurationSeconds: durationSeconds,
		DistanceKm:      EstimateDistanceKm(steps, heightCm),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.ID = SessionID(s.Timestamp, s.StepCount, s.DurationSeconds, s.DistanceKm)
	return s, nil
}

// SessionID is derived from the record content so that a session read back
// from the log keeps the identity it was created with.
func SessionID(ts time.Time, steps int, durationSeconds int64, distanceKm float64) string {
	key := ts.UTC().Format(LocalDateTimeLayout) + "|" +
		strconv.Itoa(steps) + "|" +
		strconv.FormatInt(durationSeconds, 10) + "|" +
		strconv.FormatFloat(distanceKm, 'g', -1, 64)
	return uuid.NewSHA1(sessionNamespace, []byte(key)).String()
}

func (s *Session) Validate() error {
	if s.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidSession)
	}
	if s.StepCount < 0 {
		return fmt.Errorf("%w: step count cannot be negative", ErrInvalidSession)
	}
	if s.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrInvalidSession)
	}
	if s.DistanceKm < 0 || math.IsNaN(s.DistanceKm) || math.IsInf(s.DistanceKm, 0) {
		return fmt.Errorf("%w: distance must be a finite non-negative number", ErrInvalidSession)
	}
	return nil
}

// FormattedDuration renders the duration as mm:ss.
func (s *Session) FormattedDuration() string {
	return fmt.Sprintf("%02d:%02d", s.DurationSeconds/60, s.DurationSeconds%60)
}

type SessionState string

const (
	SessionIdle   SessionState = "idle"
	SessionActive SessionState = "active"
	SessionPaused SessionState = "paused"
)

// LiveSession is the in-memory view of the session being recorded.
type LiveSession struct {
	State           SessionState `json:"state"`
	LiveStepCount   int          `json:"live_step_count"`
	ElapsedSeconds  int64        `json:"elapsed_seconds"`
	SensorAvailable bool         `json:"sensor_available"`
}
