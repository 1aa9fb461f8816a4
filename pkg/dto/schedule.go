package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// ScheduleCreate is the payload for creating a recurring schedule.
type ScheduleCreate struct {
	Name       string     `json:"name" validate:"required,min=1,max=100"`
	Amount     float64    `json:"amount" validate:"required,gt=0"`
	Type       string     `json:"type" validate:"required,oneof=income expense credit"`
	AccountID  uuid.UUID  `json:"accountId" validate:"required"`
	CategoryID uuid.UUID  `json:"categoryId" validate:"required"`
	Frequency  string     `json:"frequency" validate:"required,oneof=once daily weekly biweekly monthly quarterly yearly custom"`
	CustomDays int        `json:"customDays" validate:"omitempty,gt=0"`
	NextDate   time.Time  `json:"nextDate" validate:"required"`
	EndDate    *time.Time `json:"endDate"`
}

// ScheduleUpdate carries optional schedule field updates.
type ScheduleUpdate struct {
	Name       *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Amount     *float64   `json:"amount" validate:"omitempty,gt=0"`
	Type       *string    `json:"type" validate:"omitempty,oneof=income expense credit"`
	AccountID  *uuid.UUID `json:"accountId"`
	CategoryID *uuid.UUID `json:"categoryId"`
	Frequency  *string    `json:"frequency" validate:"omitempty,oneof=once daily weekly biweekly monthly quarterly yearly custom"`
	CustomDays *int       `json:"customDays" validate:"omitempty,gt=0"`
	NextDate   *time.Time `json:"nextDate"`
	EndDate    *time.Time `json:"endDate"`
	IsActive   *bool      `json:"isActive"`
}

// ScheduleRead is the response shape for schedules.
type ScheduleRead struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Amount        float64    `json:"amount"`
	Type          string     `json:"type"`
	AccountID     uuid.UUID  `json:"accountId"`
	CategoryID    uuid.UUID  `json:"categoryId"`
	Frequency     string     `json:"frequency"`
	CustomDays    int        `json:"customDays,omitempty"`
	NextDate      time.Time  `json:"nextDate"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	IsActive      bool       `json:"isActive"`
	LastProcessed *time.Time `json:"lastProcessed,omitempty"`
	DaysUntilNext int        `json:"daysUntilNext"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ScheduleToRead maps a domain schedule to its response shape.
func ScheduleToRead(s *domain.Schedule, now time.Time) *ScheduleRead {
	return &ScheduleRead{
		ID:            s.ID,
		Name:          s.Name,
		Amount:        s.Amount,
		Type:          string(s.Type),
		AccountID:     s.AccountID,
		CategoryID:    s.CategoryID,
		Frequency:     string(s.Frequency),
		CustomDays:    s.CustomDays,
		NextDate:      s.NextDate,
		EndDate:       s.EndDate,
		IsActive:      s.IsActive,
		LastProcessed: s.LastProcessed,
		DaysUntilNext: s.DaysUntilNext(now),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// SchedulesToRead maps a slice of domain schedules.
func SchedulesToRead(schedules []*domain.Schedule, now time.Time) []*ScheduleRead {
	out := make([]*ScheduleRead, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, ScheduleToRead(s, now))
	}
	return out
}
