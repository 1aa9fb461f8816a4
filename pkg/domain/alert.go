package domain

import (
	"time"

	"github.com/google/uuid"
)

// AlertType identifies what raised the alert.
type AlertType string

const (
	AlertBudgetExceeded  AlertType = "budget_exceeded"
	AlertLowBalance      AlertType = "low_balance"
	AlertGoalReached     AlertType = "goal_reached"
	AlertUnusualSpending AlertType = "unusual_spending"
	AlertBillReminder    AlertType = "bill_reminder"
	AlertSystem          AlertType = "system"
)

// AlertSeverity ranks alerts for display.
type AlertSeverity string

const (
	SeverityInfo    AlertSeverity = "info"
	SeverityWarning AlertSeverity = "warning"
	SeverityError   AlertSeverity = "error"
)

// Alert is a user-facing notification. Alerts are raised by the alert sweep
// job, by domain events, or directly by the user; they are never derived on
// read.
type Alert struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	// EntityID is the record the alert is about (budget, goal, account).
	// Rule-raised alerts carry it so repeated sweeps can find the open one.
	EntityID    *uuid.UUID
	Type        AlertType
	Title       string
	Message     string
	Severity    AlertSeverity
	IsRead      bool
	IsDismissed bool
	Metadata    map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
