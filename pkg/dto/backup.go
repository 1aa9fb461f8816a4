package dto

import (
	"time"

	"github.com/google/uuid"
)

// SnapshotVersion stamps every export so future imports can migrate shapes.
const SnapshotVersion = "1.0.0"

// Snapshot is the full-state export/import format for one user's data.
// Import validates every record with the same rules the API applies and
// rejects the whole payload on any violation.
type Snapshot struct {
	Accounts     []SnapshotAccount     `json:"accounts" validate:"dive"`
	Categories   []SnapshotCategory    `json:"categories" validate:"dive"`
	Tags         []SnapshotTag         `json:"tags" validate:"dive"`
	Transactions []SnapshotTransaction `json:"transactions" validate:"dive"`
	Budgets      []SnapshotBudget      `json:"budgets" validate:"dive"`
	Goals        []SnapshotGoal        `json:"goals" validate:"dive"`
	Schedules    []SnapshotSchedule    `json:"schedules" validate:"dive"`
	ExportDate   time.Time             `json:"exportDate"`
	Version      string                `json:"version" validate:"required"`
}

// Snapshot records keep their original ids so cross-references survive the
// round trip.

type SnapshotAccount struct {
	ID          uuid.UUID `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Type        string    `json:"type" validate:"required,oneof=checking savings credit investment loan cash other"`
	Balance     float64   `json:"balance"`
	Color       string    `json:"color" validate:"omitempty,hexcolor"`
	Institution string    `json:"institution" validate:"omitempty,max=100"`
	IsActive    bool      `json:"isActive"`
	IsHidden    bool      `json:"isHidden"`
}

type SnapshotCategory struct {
	ID       uuid.UUID  `json:"id" validate:"required"`
	Name     string     `json:"name" validate:"required,min=1,max=100"`
	Color    string     `json:"color" validate:"omitempty,hexcolor"`
	Type     string     `json:"type" validate:"required,oneof=income expense"`
	ParentID *uuid.UUID `json:"parentId"`
}

type SnapshotTag struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Name  string    `json:"name" validate:"required,min=1,max=50"`
	Color string    `json:"color" validate:"omitempty,hexcolor"`
}

type SnapshotTransaction struct {
	ID          uuid.UUID   `json:"id" validate:"required"`
	AccountID   uuid.UUID   `json:"accountId" validate:"required"`
	CategoryID  uuid.UUID   `json:"categoryId" validate:"required"`
	ScheduleID  *uuid.UUID  `json:"scheduleId"`
	Description string      `json:"description" validate:"required,min=1,max=255"`
	Amount      float64     `json:"amount" validate:"required"`
	Date        time.Time   `json:"date" validate:"required"`
	Notes       string      `json:"notes" validate:"omitempty,max=1000"`
	TagIDs      []uuid.UUID `json:"tags"`
	IsReviewed  bool        `json:"isReviewed"`
}

type SnapshotBudget struct {
	ID         uuid.UUID  `json:"id" validate:"required"`
	Name       string     `json:"name" validate:"required,min=1,max=100"`
	Amount     float64    `json:"amount" validate:"required,gt=0"`
	Period     string     `json:"period" validate:"required,oneof=weekly monthly quarterly yearly"`
	CategoryID uuid.UUID  `json:"categoryId" validate:"required"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	IsActive   bool       `json:"isActive"`
}

type SnapshotGoal struct {
	ID            uuid.UUID `json:"id" validate:"required"`
	Name          string    `json:"name" validate:"required,min=1,max=100"`
	Description   string    `json:"description" validate:"omitempty,max=500"`
	TargetAmount  float64   `json:"targetAmount" validate:"required,gt=0"`
	CurrentAmount float64   `json:"currentAmount" validate:"gte=0"`
	TargetDate    time.Time `json:"targetDate" validate:"required"`
	IsCompleted   bool      `json:"isCompleted"`
}

type SnapshotSchedule struct {
	ID         uuid.UUID  `json:"id" validate:"required"`
	Name       string     `json:"name" validate:"required,min=1,max=100"`
	Amount     float64    `json:"amount" validate:"required,gt=0"`
	Type       string     `json:"type" validate:"required,oneof=income expense credit"`
	AccountID  uuid.UUID  `json:"accountId" validate:"required"`
	CategoryID uuid.UUID  `json:"categoryId" validate:"required"`
	Frequency  string     `json:"frequency" validate:"required,oneof=once daily weekly biweekly monthly quarterly yearly custom"`
	CustomDays int        `json:"customDays" validate:"omitempty,gt=0"`
	NextDate   time.Time  `json:"nextDate" validate:"required"`
	EndDate    *time.Time `json:"endDate"`
	IsActive   bool       `json:"isActive"`
}
