package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// TransactionCreate is the payload for recording a transaction. Amount keeps
// its sign: positive income, negative expense.
type TransactionCreate struct {
	Description string      `json:"description" validate:"required,min=1,max=255"`
	Amount      float64     `json:"amount" validate:"required"`
	Date        time.Time   `json:"date" validate:"required"`
	AccountID   uuid.UUID   `json:"accountId" validate:"required"`
	CategoryID  uuid.UUID   `json:"categoryId" validate:"required"`
	TagIDs      []uuid.UUID `json:"tags" validate:"omitempty,dive,required"`
	Notes       string      `json:"notes" validate:"omitempty,max=1000"`
	IsReviewed  *bool       `json:"isReviewed"`
}

// TransactionUpdate carries optional field updates.
type TransactionUpdate struct {
	Description *string      `json:"description" validate:"omitempty,min=1,max=255"`
	Amount      *float64     `json:"amount"`
	Date        *time.Time   `json:"date"`
	AccountID   *uuid.UUID   `json:"accountId"`
	CategoryID  *uuid.UUID   `json:"categoryId"`
	TagIDs      *[]uuid.UUID `json:"tags"`
	Notes       *string      `json:"notes" validate:"omitempty,max=1000"`
	IsReviewed  *bool        `json:"isReviewed"`
}

// TransactionQuery is the validated query string for transaction lists.
// Filters are conjunctive; zero values mean "no filter".
type TransactionQuery struct {
	Page       int        `query:"page" validate:"omitempty,min=1"`
	Limit      int        `query:"limit" validate:"omitempty,min=1,max=100"`
	Search     string     `query:"search"`
	AccountID  *uuid.UUID `query:"accountId"`
	CategoryID *uuid.UUID `query:"categoryId"`
	TagID      *uuid.UUID `query:"tagId"`
	StartDate  *time.Time `query:"startDate"`
	EndDate    *time.Time `query:"endDate"`
	MinAmount  *float64   `query:"minAmount"`
	MaxAmount  *float64   `query:"maxAmount"`
	IsReviewed *bool      `query:"isReviewed"`
	SortBy     string     `query:"sortBy" validate:"omitempty,oneof=date amount description"`
	SortOrder  string     `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// Normalize fills pagination and sorting defaults: date descending, page 1,
// twenty rows per page.
func (q *TransactionQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.SortBy == "" {
		q.SortBy = "date"
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}
}

// BulkDelete is the payload for deleting several transactions at once.
type BulkDelete struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1,dive,required"`
}

// TransactionRead is the response shape for transactions.
type TransactionRead struct {
	ID          uuid.UUID   `json:"id"`
	AccountID   uuid.UUID   `json:"accountId"`
	CategoryID  uuid.UUID   `json:"categoryId"`
	ScheduleID  *uuid.UUID  `json:"scheduleId,omitempty"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	Date        time.Time   `json:"date"`
	Notes       string      `json:"notes,omitempty"`
	TagIDs      []uuid.UUID `json:"tags,omitempty"`
	IsReviewed  bool        `json:"isReviewed"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TransactionToRead maps a domain transaction to its response shape.
func TransactionToRead(t *domain.Transaction) *TransactionRead {
	return &TransactionRead{
		ID:          t.ID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		ScheduleID:  t.ScheduleID,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date,
		Notes:       t.Notes,
		TagIDs:      t.TagIDs,
		IsReviewed:  t.IsReviewed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TransactionsToRead maps a slice of domain transactions.
func TransactionsToRead(txs []*domain.Transaction) []*TransactionRead {
	out := make([]*TransactionRead, 0, len(txs))
	for _, t := range txs {
		out = append(out, TransactionToRead(t))
	}
	return out
}
