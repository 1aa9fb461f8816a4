package report_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/report"
)

func sched(name string, freq domain.Frequency, customDays int, typ domain.ScheduleType, amount float64, active bool) *domain.Schedule {
	return &domain.Schedule{
		ID:         uuid.New(),
		Name:       name,
		Frequency:  freq,
		CustomDays: customDays,
		Type:       typ,
		Amount:     amount,
		IsActive:   active,
	}
}

func TestFrequencyGroupLabel(t *testing.T) {
	cases := []struct {
		freq       domain.Frequency
		customDays int
		want       string
	}{
		{domain.FreqOnce, 0, "One-time"},
		{domain.FreqDaily, 0, "Daily"},
		{domain.FreqWeekly, 0, "7 days"},
		{domain.FreqBiweekly, 0, "14 days"},
		{domain.FreqMonthly, 0, "30 days"},
		{domain.FreqQuarterly, 0, "90 days"},
		{domain.FreqYearly, 0, "Annual"},
		{domain.FreqCustom, 60, "60 days"},
		{domain.FreqCustom, 180, "Bi-annual"},
		{domain.FreqCustom, 45, "45 days"},
		{domain.Frequency("unknown"), 0, "Other"},
	}
	for _, tc := range cases {
		s := sched("x", tc.freq, tc.customDays, domain.ScheduleExpense, 10, true)
		assert.Equal(t, tc.want, report.FrequencyGroupLabel(s), "freq %s/%d", tc.freq, tc.customDays)
	}
}

func TestGroupSchedules_FixedOrder(t *testing.T) {
	schedules := []*domain.Schedule{
		sched("rent", domain.FreqMonthly, 0, domain.ScheduleExpense, 1200, true),
		sched("insurance", domain.FreqCustom, 180, domain.ScheduleExpense, 300, true),
		sched("coffee", domain.FreqDaily, 0, domain.ScheduleExpense, 4, true),
		sched("salary", domain.FreqMonthly, 0, domain.ScheduleIncome, 4000, true),
	}

	groups := report.GroupSchedules(schedules)
	require.Len(t, groups, 3)
	assert.Equal(t, "Daily", groups[0].Label)
	assert.Equal(t, "30 days", groups[1].Label)
	assert.Equal(t, "Bi-annual", groups[2].Label)

	// Signed sum: salary +4000, rent -1200.
	assert.InDelta(t, 2800, groups[1].Total, 0.001)
}

func TestRecurring_TotalsActiveOnly(t *testing.T) {
	schedules := []*domain.Schedule{
		sched("salary", domain.FreqMonthly, 0, domain.ScheduleIncome, 4000, true),
		sched("rent", domain.FreqMonthly, 0, domain.ScheduleExpense, 1200, true),
		sched("loan", domain.FreqMonthly, 0, domain.ScheduleCredit, 250, true),
		sched("old gym", domain.FreqMonthly, 0, domain.ScheduleExpense, 40, false),
	}

	s := report.Recurring(schedules)
	assert.InDelta(t, 4000, s.Income, 0.001)
	assert.InDelta(t, 1450, s.Expense, 0.001)

	// Groups still include the inactive schedule.
	var count int
	for _, g := range s.Groups {
		count += len(g.Schedules)
	}
	assert.Equal(t, 4, count)
}
