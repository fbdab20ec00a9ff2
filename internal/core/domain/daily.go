package domain

import "time"

const DateLayout = "2006-01-02"

func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// DailySnapshot is the day rollup as persisted. A snapshot whose Date is
// not today's is stale and must be read through For.
type DailySnapshot struct {
	Date              string `json:"date"`
	AccumulatedSteps  int    `json:"accumulated_steps"`
	SessionsCompleted int    `json:"sessions_completed"`
}

// For performs the lazy rollover: a snapshot from another day reads as an
// empty one for the day of now. Storage is left untouched.
func (d DailySnapshot) For(now time.Time) DailySnapshot {
	today := DayKey(now)
	if d.Date != today {
		return DailySnapshot{Date: today}
	}
	return d
}

// With folds a completed session into the rollup of the session's day.
func (d DailySnapshot) With(s *Session) DailySnapshot {
	next := d.For(s.Timestamp)
	next.AccumulatedSteps += s.StepCount
	next.SessionsCompleted++
	return next
}
