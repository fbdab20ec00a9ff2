package domain

import "time"

// TotalStepsToday adds the live count of a running or paused session to the
// persisted total of the day.
func TotalStepsToday(today DailySnapshot, live LiveSession) int {
	if live.State == SessionIdle || live.State == "" {
		return today.AccumulatedSteps
	}
	return today.AccumulatedSteps + live.LiveStepCount
}

// GoalPercentage is the fraction of the goal reached, clamped to [0, 1].
func GoalPercentage(total, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	pct := float64(total) / float64(goal)
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

func RemainingSteps(total, goal int) int {
	return max(goal-total, 0)
}

// Dashboard is everything the presentation layer observes, recomputed as a
// whole whenever one of its inputs changes.
type Dashboard struct {
	Profile         UserProfile    `json:"profile"`
	HealthSettings  HealthSettings `json:"health_settings"`
	Today           DailySnapshot  `json:"today"`
	TotalStepsToday int            `json:"total_steps_today"`
	GoalPercentage  float64        `json:"goal_percentage"`
	RemainingSteps  int            `json:"remaining_steps"`
	Session         LiveSession    `json:"session"`
	LastSession     *Session       `json:"last_session,omitempty"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

func NewDashboard(now time.Time, profile UserProfile, settings HealthSettings, stored DailySnapshot, live LiveSession, last *Session) Dashboard {
	today := stored.For(now)
	total := TotalStepsToday(today, live)
	return Dashboard{
		Profile:         profile,
		HealthSettings:  settings,
		Today:           today,
		TotalStepsToday: total,
		GoalPercentage:  GoalPercentage(total, profile.DailyStepGoal),
		RemainingSteps:  RemainingSteps(total, profile.DailyStepGoal),
		Session:         live,
		LastSession:     last,
		GeneratedAt:     now,
	}
}
