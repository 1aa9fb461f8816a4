package domain

import (
	"time"

	"github.com/google/uuid"
)

// BudgetPeriod is the budgeting cadence used to derive the active window
// when no explicit start/end dates are set.
type BudgetPeriod string

const (
	PeriodWeekly    BudgetPeriod = "weekly"
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)

// Budget caps spending for a category (and its descendants) over a period.
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       string
	Amount     float64
	Period     BudgetPeriod
	StartDate  *time.Time
	EndDate    *time.Time
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Window returns the [start, end] interval the budget is evaluated against.
// Explicit dates win; otherwise the window is derived from Period around now.
func (b *Budget) Window(now time.Time) (time.Time, time.Time) {
	if b.StartDate != nil && b.EndDate != nil {
		return *b.StartDate, *b.EndDate
	}
	switch b.Period {
	case PeriodWeekly:
		start := now.AddDate(0, 0, -int(now.Weekday()))
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case PeriodQuarterly:
		q := (int(now.Month()) - 1) / 3
		start := time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 3, 0).Add(-time.Nanosecond)
	case PeriodYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	default: // monthly
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
}
