package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid period (must be day, week or month)")

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

const (
	weekWindowDays  = 7
	monthWindowDays = 30
)

func ParsePeriod(value string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "day", "dia", "día":
		return PeriodDay, nil
	case "week", "semana":
		return PeriodWeek, nil
	case "month", "mes":
		return PeriodMonth, nil
	}
	return "", ErrInvalidPeriod
}

// Contains reports whether ts falls in the period ending at now. Week and
// month are rolling windows of 7 and 30 days, not calendar units.
func (p Period) Contains(ts, now time.Time) bool {
	switch p {
	case PeriodDay:
		return DayKey(ts.In(now.Location())) == DayKey(now)
	case PeriodWeek:
		return inWindow(ts, now, weekWindowDays)
	case PeriodMonth:
		return inWindow(ts, now, monthWindowDays)
	}
	return false
}

func inWindow(ts, now time.Time, days int) bool {
	return ts.After(now.AddDate(0, 0, -days)) && !ts.After(now)
}

func FilterByPeriod(sessions []*Session, p Period, now time.Time) []*Session {
	out := make([]*Session, 0, len(sessions))
	for _, s := range sessions {
		if p.Contains(s.Timestamp, now) {
			out = append(out, s)
		}
	}
	return out
}
