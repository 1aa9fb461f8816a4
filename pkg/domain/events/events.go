// Package events holds the domain events services publish when a condition
// worth notifying the user about is detected.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type keys.
const (
	EventBudgetExceeded = "budget.exceeded"
	EventBudgetNearLim  = "budget.near_limit"
	EventGoalReached    = "goal.reached"
	EventLowBalance     = "account.low_balance"
	EventScheduleRun    = "schedule.materialized"
)

// BudgetExceeded fires when spending in a budget's window crosses its amount.
type BudgetExceeded struct {
	UserID     uuid.UUID
	BudgetID   uuid.UUID
	BudgetName string
	Amount     float64
	Spent      float64
	Percentage float64
	OccurredAt time.Time
}

func (BudgetExceeded) Type() string { return EventBudgetExceeded }

// BudgetNearLimit fires when spending crosses the warning threshold.
type BudgetNearLimit struct {
	UserID     uuid.UUID
	BudgetID   uuid.UUID
	BudgetName string
	Amount     float64
	Spent      float64
	Percentage float64
	OccurredAt time.Time
}

func (BudgetNearLimit) Type() string { return EventBudgetNearLim }

// GoalReached fires once when a goal's saved amount reaches its target.
type GoalReached struct {
	UserID     uuid.UUID
	GoalID     uuid.UUID
	GoalName   string
	Target     float64
	OccurredAt time.Time
}

func (GoalReached) Type() string { return EventGoalReached }

// LowBalance fires when an active account balance drops under the threshold.
type LowBalance struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	AccountName string
	Balance     float64
	Threshold   float64
	OccurredAt  time.Time
}

func (LowBalance) Type() string { return EventLowBalance }

// ScheduleMaterialized fires when a due schedule produced a transaction.
type ScheduleMaterialized struct {
	UserID        uuid.UUID
	ScheduleID    uuid.UUID
	ScheduleName  string
	TransactionID uuid.UUID
	Amount        float64
	NextDate      time.Time
	OccurredAt    time.Time
}

func (ScheduleMaterialized) Type() string { return EventScheduleRun }
