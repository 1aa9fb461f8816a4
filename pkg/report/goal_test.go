package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/report"
)

func TestGoalProgressAt_MonthlyContribution(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	g := &domain.Goal{
		ID:           uuid.New(),
		Name:         "Emergency fund",
		TargetAmount: 5000,
		TargetDate:   now.AddDate(0, 6, 0),
	}

	p := report.GoalProgressAt(g, now)
	assert.InDelta(t, 833.33, p.MonthlyContribution, 0.001)
	assert.InDelta(t, 5000, p.Remaining, 0.001)
	assert.Zero(t, p.Percentage)
	assert.False(t, p.IsCompleted)
}

func TestGoalProgressAt_OverdueNeedsFullRemainder(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	g := &domain.Goal{
		ID:            uuid.New(),
		TargetAmount:  1000,
		CurrentAmount: 400,
		TargetDate:    now.AddDate(0, 0, -10),
	}

	p := report.GoalProgressAt(g, now)
	assert.InDelta(t, 600, p.MonthlyContribution, 0.001)
	assert.Zero(t, p.DaysRemaining)
	assert.InDelta(t, 40, p.Percentage, 0.001)
}

func TestGoalProgressAt_Overfunded(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	g := &domain.Goal{
		ID:            uuid.New(),
		TargetAmount:  1000,
		CurrentAmount: 1200,
		TargetDate:    now.AddDate(0, 2, 0),
	}

	p := report.GoalProgressAt(g, now)
	assert.Zero(t, p.Remaining)
	assert.Zero(t, p.MonthlyContribution)
	assert.InDelta(t, 120, p.Percentage, 0.001)
	assert.True(t, p.IsCompleted)
}

func TestNetWorth_SkipsInactiveAndHidden(t *testing.T) {
	accounts := []*domain.Account{
		{ID: uuid.New(), Balance: 1000, IsActive: true},
		{ID: uuid.New(), Balance: 500, IsActive: true, IsHidden: true},
		{ID: uuid.New(), Balance: 300, IsActive: false},
		{ID: uuid.New(), Balance: -250.50, IsActive: true},
	}
	assert.InDelta(t, 749.50, report.NetWorth(accounts), 0.001)
}
