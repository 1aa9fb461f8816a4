package domain

import (
	"time"

	"github.com/google/uuid"
)

// Frequency is the repeat interval of a schedule.
type Frequency string

const (
	FreqOnce      Frequency = "once"
	FreqDaily     Frequency = "daily"
	FreqWeekly    Frequency = "weekly"
	FreqBiweekly  Frequency = "biweekly"
	FreqMonthly   Frequency = "monthly"
	FreqQuarterly Frequency = "quarterly"
	FreqYearly    Frequency = "yearly"
	FreqCustom    Frequency = "custom"
)

// ScheduleType classifies the repeating obligation.
type ScheduleType string

const (
	ScheduleIncome  ScheduleType = "income"
	ScheduleExpense ScheduleType = "expense"
	ScheduleCredit  ScheduleType = "credit"
)

// Schedule is the single recurrence entity: it describes a repeating
// obligation's interval and next-due date. Materialized transaction instances
// reference their generating schedule by id.
type Schedule struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AccountID     uuid.UUID
	CategoryID    uuid.UUID
	Name          string
	Amount        float64
	Type          ScheduleType
	Frequency     Frequency
	CustomDays    int // interval in days when Frequency is FreqCustom
	NextDate      time.Time
	EndDate       *time.Time
	IsActive      bool
	LastProcessed *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Repeats reports whether the schedule has further occurrences after one
// fires. One-time schedules do not.
func (s *Schedule) Repeats() bool {
	return s.Frequency != FreqOnce
}

// NextAfter returns the occurrence that follows from. Month and year steps
// use calendar arithmetic, day-based steps add a fixed number of days.
// A one-time schedule has no next occurrence; from is returned unchanged.
func (s *Schedule) NextAfter(from time.Time) time.Time {
	switch s.Frequency {
	case FreqOnce:
		return from
	case FreqDaily:
		return from.AddDate(0, 0, 1)
	case FreqWeekly:
		return from.AddDate(0, 0, 7)
	case FreqBiweekly:
		return from.AddDate(0, 0, 14)
	case FreqMonthly:
		return from.AddDate(0, 1, 0)
	case FreqQuarterly:
		return from.AddDate(0, 3, 0)
	case FreqYearly:
		return from.AddDate(1, 0, 0)
	case FreqCustom:
		days := s.CustomDays
		if days <= 0 {
			days = 30
		}
		return from.AddDate(0, 0, days)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// DueAt reports whether the schedule should be materialized on the given day.
func (s *Schedule) DueAt(day time.Time) bool {
	if !s.IsActive {
		return false
	}
	return !s.NextDate.After(day)
}

// ExpiredAt reports whether the schedule's end date has passed.
func (s *Schedule) ExpiredAt(day time.Time) bool {
	return s.EndDate != nil && s.EndDate.Before(day)
}

// SignedAmount returns the amount with the sign implied by the schedule type:
// income is positive, expense and credit are negative.
func (s *Schedule) SignedAmount() float64 {
	amt := s.Amount
	if amt < 0 {
		amt = -amt
	}
	if s.Type == ScheduleIncome {
		return amt
	}
	return -amt
}

// DaysUntilNext returns whole days between now and the next occurrence,
// negative when overdue.
func (s *Schedule) DaysUntilNext(now time.Time) int {
	return int(s.NextDate.Sub(now).Hours() / 24)
}
