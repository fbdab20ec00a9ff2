package domain

import (
	"fmt"
	"sort"
	"time"
)

type PeriodSummary struct {
	Period               Period  `json:"period"`
	Sessions             int     `json:"sessions"`
	TotalSteps           int     `json:"total_steps"`
	AverageSteps         int     `json:"average_steps"`
	TotalDurationSeconds int64   `json:"total_duration_seconds"`
	TotalDistanceKm      float64 `json:"total_distance_km"`
}

type ChartPoint struct {
	Label string `json:"label"`
	Steps int    `json:"steps"`
	Index int    `json:"-"`
}

const maxWeekChartPoints = 7

func Summarize(period Period, sessions []*Session) PeriodSummary {
	summary := PeriodSummary{Period: period, Sessions: len(sessions)}
	for _, s := range sessions {
		summary.TotalSteps += s.StepCount
		summary.TotalDurationSeconds += s.DurationSeconds
		summary.TotalDistanceKm += s.DistanceKm
	}
	if len(sessions) > 0 {
		summary.AverageSteps = summary.TotalSteps / len(sessions)
	}
	return summary
}

// BuildChart groups sessions into labelled buckets: by hour for a day, by
// date for a week (latest seven) and by week of the month for a month.
func BuildChart(period Period, sessions []*Session) []ChartPoint {
	buckets := make(map[int]*ChartPoint)

	for _, s := range sessions {
		var index int
		var label string

		switch period {
		case PeriodDay:
			index = s.Timestamp.Hour()
			label = fmt.Sprintf("%dh", index)
		case PeriodWeek:
			day := time.Date(s.Timestamp.Year(), s.Timestamp.Month(), s.Timestamp.Day(), 0, 0, 0, 0, time.UTC)
			index = int(day.Unix() / 86400)
			label = s.Timestamp.Format("02/01")
		case PeriodMonth:
			index = s.Timestamp.Day() / 7
			label = fmt.Sprintf("S%d", index+1)
		default:
			return []ChartPoint{}
		}

		point, ok := buckets[index]
		if !ok {
			point = &ChartPoint{Label: label, Index: index}
			buckets[index] = point
		}
		point.Steps += s.StepCount
	}

	points := make([]ChartPoint, 0, len(buckets))
	for _, p := range buckets {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Index < points[j].Index
	})

	if period == PeriodWeek && len(points) > maxWeekChartPoints {
		points = points[len(points)-maxWeekChartPoints:]
	}
	return points
}

// LatestSession returns the session with the greatest timestamp, or nil.
func LatestSession(sessions []*Session) *Session {
	var latest *Session
	for _, s := range sessions {
		if latest == nil || s.Timestamp.After(latest.Timestamp) {
			latest = s
		}
	}
	return latest
}
