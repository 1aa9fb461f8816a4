package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tincan-finance/tincan/pkg/domain"
)

func TestNextAfter(t *testing.T) {
	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		freq       domain.Frequency
		customDays int
		want       time.Time
	}{
		{domain.FreqOnce, 0, from}, // no next occurrence
		{domain.FreqDaily, 0, from.AddDate(0, 0, 1)},
		{domain.FreqWeekly, 0, from.AddDate(0, 0, 7)},
		{domain.FreqBiweekly, 0, from.AddDate(0, 0, 14)},
		{domain.FreqMonthly, 0, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		{domain.FreqQuarterly, 0, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)},
		{domain.FreqYearly, 0, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)},
		{domain.FreqCustom, 45, from.AddDate(0, 0, 45)},
		{domain.FreqCustom, 0, from.AddDate(0, 0, 30)}, // zero interval falls back
	}
	for _, tc := range cases {
		s := &domain.Schedule{Frequency: tc.freq, CustomDays: tc.customDays}
		assert.Equal(t, tc.want, s.NextAfter(from), "freq %s", tc.freq)
	}
}

func TestDueAt(t *testing.T) {
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	s := &domain.Schedule{IsActive: true, NextDate: day}
	assert.True(t, s.DueAt(day))
	assert.True(t, s.DueAt(day.AddDate(0, 0, 1)))
	assert.False(t, s.DueAt(day.AddDate(0, 0, -1)))

	s.IsActive = false
	assert.False(t, s.DueAt(day))
}

func TestExpiredAt(t *testing.T) {
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	s := &domain.Schedule{}
	assert.False(t, s.ExpiredAt(day))

	end := day.AddDate(0, 0, -1)
	s.EndDate = &end
	assert.True(t, s.ExpiredAt(day))

	end = day
	assert.False(t, s.ExpiredAt(day), "end date on the day itself is not expired")
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, 100.0, (&domain.Schedule{Type: domain.ScheduleIncome, Amount: 100}).SignedAmount())
	assert.Equal(t, -100.0, (&domain.Schedule{Type: domain.ScheduleExpense, Amount: 100}).SignedAmount())
	assert.Equal(t, -100.0, (&domain.Schedule{Type: domain.ScheduleCredit, Amount: 100}).SignedAmount())
	// Sign of the stored amount is irrelevant.
	assert.Equal(t, 100.0, (&domain.Schedule{Type: domain.ScheduleIncome, Amount: -100}).SignedAmount())
}
