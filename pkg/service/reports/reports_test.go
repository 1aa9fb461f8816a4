package reports_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tincan-finance/tincan/internal/fixtures"
	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/service/reports"
)

func newService(t *testing.T) (*reports.Service, *fixtures.UoW) {
	t.Helper()
	uow := fixtures.NewUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return reports.New(uow, logger), uow
}

func TestDashboard(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	accID := uuid.New()
	uow.Seed().Accounts = append(uow.Seed().Accounts,
		&domain.Account{ID: accID, UserID: userID, Name: "Checking", Type: domain.AccountChecking, Balance: 2000, IsActive: true},
		&domain.Account{ID: uuid.New(), UserID: userID, Name: "Old", Type: domain.AccountSavings, Balance: 999, IsActive: false},
		&domain.Account{ID: uuid.New(), UserID: userID, Name: "Stash", Type: domain.AccountCash, Balance: 100, IsActive: true, IsHidden: true},
	)

	catID := uuid.New()
	uow.Seed().Categories = append(uow.Seed().Categories, &domain.Category{
		ID: catID, UserID: userID, Name: "Food", Type: domain.CategoryExpense,
	})
	uow.Seed().Transactions = append(uow.Seed().Transactions,
		&domain.Transaction{ID: uuid.New(), UserID: userID, AccountID: accID, CategoryID: catID,
			Amount: 4000, Date: now.AddDate(0, 0, -10), IsReviewed: true},
		&domain.Transaction{ID: uuid.New(), UserID: userID, AccountID: accID, CategoryID: catID,
			Amount: -150, Date: now.AddDate(0, 0, -5), IsReviewed: false},
		// Last month stays out of the monthly flow but counts as unreviewed.
		&domain.Transaction{ID: uuid.New(), UserID: userID, AccountID: accID, CategoryID: catID,
			Amount: -75, Date: now.AddDate(0, -1, 0), IsReviewed: false},
	)

	sum, err := svc.Dashboard(context.Background(), userID, now)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, sum.NetWorth, "inactive and hidden accounts stay out")
	assert.Equal(t, 1, sum.AccountCount)
	assert.Equal(t, 4000.0, sum.MonthIncome)
	assert.Equal(t, -150.0, sum.MonthExpense)
	assert.Equal(t, 3850.0, sum.MonthNet)
	assert.Equal(t, 2, sum.UnreviewedTxns)
}

func TestCategoryRollup_RequiresOwnedCategory(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()

	parent := uuid.New()
	child := uuid.New()
	uow.Seed().Categories = append(uow.Seed().Categories,
		&domain.Category{ID: parent, UserID: userID, Name: "Food", Type: domain.CategoryExpense},
		&domain.Category{ID: child, UserID: userID, ParentID: &parent, Name: "Groceries", Type: domain.CategoryExpense},
	)
	accID := uuid.New()
	uow.Seed().Transactions = append(uow.Seed().Transactions,
		&domain.Transaction{ID: uuid.New(), UserID: userID, AccountID: accID, CategoryID: parent, Amount: -40, Date: time.Now()},
		&domain.Transaction{ID: uuid.New(), UserID: userID, AccountID: accID, CategoryID: child, Amount: -25, Date: time.Now()},
	)

	r, err := svc.CategoryRollup(context.Background(), userID, parent)
	require.NoError(t, err)
	assert.Equal(t, -65.0, r.Expense)
	assert.Equal(t, -65.0, r.Net)
	assert.Equal(t, 2, r.TransactionCount)

	_, err = svc.CategoryRollup(context.Background(), uuid.New(), parent)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryRollups_OneEntryPerRoot(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()

	rootA, rootB, child := uuid.New(), uuid.New(), uuid.New()
	uow.Seed().Categories = append(uow.Seed().Categories,
		&domain.Category{ID: rootA, UserID: userID, Name: "Income", Type: domain.CategoryIncome},
		&domain.Category{ID: rootB, UserID: userID, Name: "Expenses", Type: domain.CategoryExpense},
		&domain.Category{ID: child, UserID: userID, ParentID: &rootB, Name: "Food", Type: domain.CategoryExpense},
	)

	out, err := svc.CategoryRollups(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, out, 2, "children fold into their root")
}
