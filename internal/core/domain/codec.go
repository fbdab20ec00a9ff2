package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedRecord = errors.New("malformed session record")

const (
	recordSeparator = ";"
	fieldSeparator  = "|"
	recordFields    = 4
)

// SessionCodec converts sessions to and from the opaque log value. Stores
// depend on this interface so the log format can change without touching them.
type SessionCodec interface {
	Encode(s *Session) (string, error)
	Append(log string, s *Session) (string, error)
	Decode(log string) ([]*Session, []RecordError)
}

// RecordError describes one log record that was skipped while decoding.
type RecordError struct {
	Index  int
	Record string
	Err    error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d %q: %v", e.Index, e.Record, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

// DelimitedCodec writes each session as "timestamp|steps|seconds|km" and
// joins records with ";". There is no escaping, so no field may contain
// either separator.
type DelimitedCodec struct {
	Location *time.Location
}

func NewDelimitedCodec(loc *time.Location) *DelimitedCodec {
	if loc == nil {
		loc = time.Local
	}
	return &DelimitedCodec{Location: loc}
}

func (c *DelimitedCodec) Encode(s *Session) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	record := strings.Join([]string{
		s.Timestamp.In(c.Location).Format(LocalDateTimeLayout),
		strconv.Itoa(s.StepCount),
		strconv.FormatInt(s.DurationSeconds, 10),
		strconv.FormatFloat(s.DistanceKm, 'f', -1, 64),
	}, fieldSeparator)
	if strings.Contains(record, recordSeparator) {
		return "", fmt.Errorf("%w: separator in field", ErrMalformedRecord)
	}
	return record, nil
}

func (c *DelimitedCodec) Append(log string, s *Session) (string, error) {
	record, err := c.Encode(s)
	if err != nil {
		return "", err
	}
	if log == "" {
		return record, nil
	}
	return log + recordSeparator + record, nil
}

// Decode returns every parseable session in log order. Records that do not
// parse are reported and skipped; they never abort the read.
func (c *DelimitedCodec) Decode(log string) ([]*Session, []RecordError) {
	if log == "" {
		return []*Session{}, nil
	}

	parts := strings.Split(log, recordSeparator)
	sessions := make([]*Session, 0, len(parts))
	var skipped []RecordError

	for i, record := range parts {
		s, err := c.decodeRecord(record)
		if err != nil {
			skipped = append(skipped, RecordError{Index: i, Record: record, Err: err})
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, skipped
}

func (c *DelimitedCodec) decodeRecord(record string) (*Session, error) {
	fields := strings.Split(record, fieldSeparator)
	if len(fields) != recordFields {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, recordFields, len(fields))
	}

	ts, err := time.ParseInLocation(LocalDateTimeLayout, fields[0], c.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp: %v", ErrMalformedRecord, err)
	}
	steps, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: steps: %v", ErrMalformedRecord, err)
	}
	duration, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: duration: %v", ErrMalformedRecord, err)
	}
	distance, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: distance: %v", ErrMalformedRecord, err)
	}

	s := &Session{
		Timestamp:       ts,
		StepCount:       steps,
		DurationSeconds: duration,
		DistanceKm:      distance,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.ID = SessionID(s.Timestamp, s.StepCount, s.DurationSeconds, s.DistanceKm)
	return s, nil
}
