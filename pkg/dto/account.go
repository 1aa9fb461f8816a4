package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// AccountCreate is the payload for creating an account.
type AccountCreate struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Type        string  `json:"type" validate:"required,oneof=checking savings credit investment loan cash other"`
	Balance     float64 `json:"balance"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
	Institution string  `json:"institution" validate:"omitempty,max=100"`
}

// AccountUpdate carries optional field updates; nil fields are untouched.
type AccountUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Type        *string  `json:"type" validate:"omitempty,oneof=checking savings credit investment loan cash other"`
	Balance     *float64 `json:"balance"`
	Color       *string  `json:"color" validate:"omitempty,hexcolor"`
	Institution *string  `json:"institution" validate:"omitempty,max=100"`
	IsActive    *bool    `json:"isActive"`
	IsHidden    *bool    `json:"isHidden"`
}

// AccountRead is the response shape for accounts.
type AccountRead struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Balance     float64   `json:"balance"`
	Color       string    `json:"color"`
	Institution string    `json:"institution,omitempty"`
	IsActive    bool      `json:"isActive"`
	IsHidden    bool      `json:"isHidden"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AccountToRead maps a domain account to its response shape.
func AccountToRead(a *domain.Account) *AccountRead {
	return &AccountRead{
		ID:          a.ID,
		Name:        a.Name,
		Type:        string(a.Type),
		Balance:     a.Balance,
		Color:       a.Color,
		Institution: a.Institution,
		IsActive:    a.IsActive,
		IsHidden:    a.IsHidden,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// AccountsToRead maps a slice of domain accounts.
func AccountsToRead(accounts []*domain.Account) []*AccountRead {
	out := make([]*AccountRead, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountToRead(a))
	}
	return out
}
