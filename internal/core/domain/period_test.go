package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    Period
		wantErr bool
	}{
		{input: "day", want: PeriodDay},
		{input: "Día", want: PeriodDay},
		{input: " WEEK ", want: PeriodWeek},
		{input: "semana", want: PeriodWeek},
		{input: "month", want: PeriodMonth},
		{input: "Mes", want: PeriodMonth},
		{input: "year", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod_Contains(t *testing.T) {
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		period Period
		ts     time.Time
		want   bool
	}{
		{"Day: earlier today", PeriodDay, time.Date(2024, 5, 31, 0, 0, 1, 0, time.UTC), true},
		{"Day: later today still same date", PeriodDay, time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC), true},
		{"Day: yesterday", PeriodDay, time.Date(2024, 5, 30, 23, 59, 0, 0, time.UTC), false},
		{"Week: yesterday", PeriodWeek, now.AddDate(0, 0, -1), true},
		{"Week: now itself", PeriodWeek, now, true},
		{"Week: six days ago", PeriodWeek, now.AddDate(0, 0, -6), true},
		{"Week: exactly seven days ago", PeriodWeek, now.AddDate(0, 0, -7), false},
		{"Week: future", PeriodWeek, now.Add(time.Minute), false},
		{"Month: is rolling, crosses calendar month", PeriodMonth, time.Date(2024, 5, 2, 13, 0, 0, 0, time.UTC), true},
		{"Month: 29 days ago", PeriodMonth, now.AddDate(0, 0, -29), true},
		{"Month: 31 days ago", PeriodMonth, now.AddDate(0, 0, -31), false},
		{"Unknown period matches nothing", Period("year"), now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Contains(tt.ts, now))
		})
	}
}

func TestFilterByPeriod(t *testing.T) {
	today := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	yesterday := &Session{Timestamp: today.AddDate(0, 0, -1), StepCount: 4000}
	current := &Session{Timestamp: today.Add(-time.Hour), StepCount: 2000}
	sessions := []*Session{yesterday, current}

	t.Run("Day keeps only today's session", func(t *testing.T) {
		got := FilterByPeriod(sessions, PeriodDay, today)
		require.Len(t, got, 1)
		assert.Equal(t, 2000, got[0].StepCount)
	})

	t.Run("Week keeps both, in append order", func(t *testing.T) {
		got := FilterByPeriod(sessions, PeriodWeek, today)
		assert.Equal(t, []*Session{yesterday, current}, got)
	})
}
