// Package repository defines the persistence contracts the services depend
// on. Implementations live in infra/repository; tests use the in-memory
// fakes from internal/fixtures.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// TransactionFilter narrows a transaction list. Nil/zero members are no-ops;
// all present filters apply conjunctively.
type TransactionFilter struct {
	Search     string
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	TagID      *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *float64
	MaxAmount  *float64
	IsReviewed *bool
	SortBy     string // date | amount | description
	SortOrder  string // asc | desc
	Offset     int
	Limit      int
}

// AccountRepository persists accounts, always scoped to a user.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error)
	Update(ctx context.Context, a *domain.Account) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// ListActiveAll returns every active account across users, for the
	// low-balance alert sweep.
	ListActiveAll(ctx context.Context) ([]*domain.Account, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// TransactionRepository persists transactions.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error)
	// List returns one page plus the unpaginated match count.
	List(ctx context.Context, userID uuid.UUID, f TransactionFilter) ([]*domain.Transaction, int64, error)
	Update(ctx context.Context, t *domain.Transaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	CountByAccount(ctx context.Context, userID, accountID uuid.UUID) (int64, error)
	CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)
	// ReassignCategory moves every transaction from one category to another;
	// used by category merge.
	ReassignCategory(ctx context.Context, userID, fromCategory, toCategory uuid.UUID) error
	// ListByUser returns all of a user's transactions, for reports and export.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error)
}

// TagRepository persists tags.
type TagRepository interface {
	Create(ctx context.Context, t *domain.Tag) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Tag, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// BudgetRepository persists budgets.
type BudgetRepository interface {
	Create(ctx context.Context, b *domain.Budget) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Budget, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Budget, error)
	Update(ctx context.Context, b *domain.Budget) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// ListActiveAll returns every active budget across users, for the sweep.
	ListActiveAll(ctx context.Context) ([]*domain.Budget, error)
}

// GoalRepository persists goals.
type GoalRepository interface {
	Create(ctx context.Context, g *domain.Goal) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// AlertRepository persists alerts.
type AlertRepository interface {
	Create(ctx context.Context, a *domain.Alert) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Alert, error)
	ListByUser(ctx context.Context, userID uuid.UUID, includeDismissed bool) ([]*domain.Alert, error)
	// FindOpen returns the undismissed alert with the same type, severity
	// and subject entity, or ErrNotFound.
	FindOpen(ctx context.Context, userID uuid.UUID, typ domain.AlertType, severity domain.AlertSeverity, entityID uuid.UUID) (*domain.Alert, error)
	Update(ctx context.Context, a *domain.Alert) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// DeleteDismissedBefore prunes dismissed alerts older than cutoff,
	// returning how many were removed.
	DeleteDismissedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ScheduleRepository persists recurring schedules.
type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.Schedule) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Schedule, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Schedule, error)
	Update(ctx context.Context, s *domain.Schedule) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// ListDue returns every active schedule across users with a next date on
	// or before day.
	ListDue(ctx context.Context, day time.Time) ([]*domain.Schedule, error)
}

// WalletRepository persists crypto wallets.
type WalletRepository interface {
	Create(ctx context.Context, w *domain.CryptoWallet) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.CryptoWallet, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CryptoWallet, error)
	Update(ctx context.Context, w *domain.CryptoWallet) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// AssetRepository persists crypto assets.
type AssetRepository interface {
	Create(ctx context.Context, a *domain.CryptoAsset) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.CryptoAsset, error)
	ListByWallet(ctx context.Context, userID, walletID uuid.UUID) ([]*domain.CryptoAsset, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CryptoAsset, error)
	Update(ctx context.Context, a *domain.CryptoAsset) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// ListAll returns every asset across users, for the price refresh job.
	ListAll(ctx context.Context) ([]*domain.CryptoAsset, error)
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
