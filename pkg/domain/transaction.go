package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is a single dated money movement. The sign of Amount is the
// sole income/expense discriminator: positive is income, negative is expense.
// A transaction materialized from a recurring schedule references its
// generator through ScheduleID.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	ScheduleID  *uuid.UUID
	Description string
	Amount      float64
	Date        time.Time
	Notes       string
	TagIDs      []uuid.UUID
	IsReviewed  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsIncome reports whether the transaction adds money.
func (t *Transaction) IsIncome() bool { return t.Amount > 0 }

// IsExpense reports whether the transaction removes money.
func (t *Transaction) IsExpense() bool { return t.Amount < 0 }

// Tag labels transactions; many-to-many through Transaction.TagIDs.
type Tag struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
