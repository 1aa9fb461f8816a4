package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// BudgetCreate is the payload for creating a budget.
type BudgetCreate struct {
	Name       string     `json:"name" validate:"required,min=1,max=100"`
	Amount     float64    `json:"amount" validate:"required,gt=0"`
	Period     string     `json:"period" validate:"required,oneof=weekly monthly quarterly yearly"`
	CategoryID uuid.UUID  `json:"categoryId" validate:"required"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
}

// BudgetUpdate carries optional budget field updates.
type BudgetUpdate struct {
	Name       *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Amount     *float64   `json:"amount" validate:"omitempty,gt=0"`
	Period     *string    `json:"period" validate:"omitempty,oneof=weekly monthly quarterly yearly"`
	CategoryID *uuid.UUID `json:"categoryId"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	IsActive   *bool      `json:"isActive"`
}

// BudgetRead is the response shape for budgets.
type BudgetRead struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Amount     float64    `json:"amount"`
	Period     string     `json:"period"`
	CategoryID uuid.UUID  `json:"categoryId"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// BudgetToRead maps a domain budget to its response shape.
func BudgetToRead(b *domain.Budget) *BudgetRead {
	return &BudgetRead{
		ID:         b.ID,
		Name:       b.Name,
		Amount:     b.Amount,
		Period:     string(b.Period),
		CategoryID: b.CategoryID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// BudgetsToRead maps a slice of domain budgets.
func BudgetsToRead(budgets []*domain.Budget) []*BudgetRead {
	out := make([]*BudgetRead, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, BudgetToRead(b))
	}
	return out
}

// GoalCreate is the payload for creating a goal.
type GoalCreate struct {
	Name         string    `json:"name" validate:"required,min=1,max=100"`
	Description  string    `json:"description" validate:"omitempty,max=500"`
	TargetAmount float64   `json:"targetAmount" validate:"required,gt=0"`
	TargetDate   time.Time `json:"targetDate" validate:"required"`
}

// GoalUpdate carries optional goal field updates.
type GoalUpdate struct {
	Name         *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Description  *string    `json:"description" validate:"omitempty,max=500"`
	TargetAmount *float64   `json:"targetAmount" validate:"omitempty,gt=0"`
	TargetDate   *time.Time `json:"targetDate"`
}

// GoalProgressAdd is the payload for adding saved money to a goal.
type GoalProgressAdd struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Note   string  `json:"note" validate:"omitempty,max=255"`
}

// GoalRead is the response shape for goals.
type GoalRead struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	TargetDate    time.Time `json:"targetDate"`
	IsCompleted   bool      `json:"isCompleted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GoalToRead maps a domain goal to its response shape.
func GoalToRead(g *domain.Goal) *GoalRead {
	return &GoalRead{
		ID:            g.ID,
		Name:          g.Name,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		TargetDate:    g.TargetDate,
		IsCompleted:   g.IsCompleted,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// GoalsToRead maps a slice of domain goals.
func GoalsToRead(goals []*domain.Goal) []*GoalRead {
	out := make([]*GoalRead, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalToRead(g))
	}
	return out
}
