package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountType classifies an account for display and reporting.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
	AccountLoan       AccountType = "loan"
	AccountCash       AccountType = "cash"
	AccountOther      AccountType = "other"
)

// Account is a money container. Its balance is stored and edited
// independently; it is never recomputed from transactions, and report math
// never trusts it for spend figures.
type Account struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Type        AccountType
	Balance     float64
	Color       string
	Institution string
	IsActive    bool
	IsHidden    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
