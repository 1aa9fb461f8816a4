package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// AlertCreate is the payload for raising an alert by hand.
type AlertCreate struct {
	Type     string         `json:"type" validate:"required,oneof=budget_exceeded low_balance goal_reached unusual_spending bill_reminder system"`
	Title    string         `json:"title" validate:"required,min=1,max=100"`
	Message  string         `json:"message" validate:"required,min=1,max=500"`
	Severity string         `json:"severity" validate:"required,oneof=info warning error"`
	Metadata map[string]any `json:"metadata"`
}

// AlertRead is the response shape for alerts.
type AlertRead struct {
	ID          uuid.UUID      `json:"id"`
	EntityID    *uuid.UUID     `json:"entityId,omitempty"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Severity    string         `json:"severity"`
	IsRead      bool           `json:"isRead"`
	IsDismissed bool           `json:"isDismissed"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// AlertToRead maps a domain alert to its response shape.
func AlertToRead(a *domain.Alert) *AlertRead {
	return &AlertRead{
		ID:          a.ID,
		EntityID:    a.EntityID,
		Type:        string(a.Type),
		Title:       a.Title,
		Message:     a.Message,
		Severity:    string(a.Severity),
		IsRead:      a.IsRead,
		IsDismissed: a.IsDismissed,
		Metadata:    a.Metadata,
		CreatedAt:   a.CreatedAt,
	}
}

// AlertsToRead maps a slice of domain alerts.
func AlertsToRead(alerts []*domain.Alert) []*AlertRead {
	out := make([]*AlertRead, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, AlertToRead(a))
	}
	return out
}
