package budget_test

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
	"github.com/tincan-finance/tincan/pkg/domain/events"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/budget"
)

func newService(t *testing.T) (*budget.Service, *fixtures.UoW, *fixtures.RecorderBus) {
	t.Helper()
	uow := fixtures.NewUoW()
	bus := fixtures.NewRecorderBus()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return budget.New(uow, bus, logger), uow, bus
}

func seedCategory(uow *fixtures.UoW, userID uuid.UUID, name string) uuid.UUID {
	id := uuid.New()
	uow.Seed().Categories = append(uow.Seed().Categories, &domain.Category{
		ID: id, UserID: userID, Name: name, Type: domain.CategoryExpense,
	})
	return id
}

func spend(uow *fixtures.UoW, userID, catID uuid.UUID, amount float64, date time.Time) {
	uow.Seed().Transactions = append(uow.Seed().Transactions, &domain.Transaction{
		ID: uuid.New(), UserID: userID, AccountID: uuid.New(), CategoryID: catID,
		Amount: -amount, Date: date,
	})
}

func TestCreate_RequiresOwnedCategory(t *testing.T) {
	svc, uow, _ := newService(t)
	userID := uuid.New()
	catID := seedCategory(uow, userID, "Food")

	b, err := svc.Create(context.Background(), userID, dto.BudgetCreate{
		CategoryID: catID, Name: "Food cap", Amount: 300, Period: string(domain.PeriodMonthly),
	})
	require.NoError(t, err)
	assert.True(t, b.IsActive)

	_, err = svc.Create(context.Background(), userID, dto.BudgetCreate{
		CategoryID: uuid.New(), Name: "Ghost", Amount: 100, Period: string(domain.PeriodMonthly),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckThresholds_EmitsPerStatus(t *testing.T) {
	svc, uow, bus := newService(t)
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	overCat := seedCategory(uow, userID, "Dining")
	nearCat := seedCategory(uow, userID, "Transport")
	okCat := seedCategory(uow, userID, "Books")

	uow.Seed().Budgets = append(uow.Seed().Budgets,
		&domain.Budget{ID: uuid.New(), UserID: userID, CategoryID: overCat, Name: "Dining cap", Amount: 100, Period: domain.PeriodMonthly, IsActive: true},
		&domain.Budget{ID: uuid.New(), UserID: userID, CategoryID: nearCat, Name: "Transport cap", Amount: 100, Period: domain.PeriodMonthly, IsActive: true},
		&domain.Budget{ID: uuid.New(), UserID: userID, CategoryID: okCat, Name: "Books cap", Amount: 100, Period: domain.PeriodMonthly, IsActive: true},
	)

	spend(uow, userID, overCat, 130, now)
	spend(uow, userID, nearCat, 85, now)
	spend(uow, userID, okCat, 20, now)

	require.NoError(t, svc.CheckThresholds(context.Background(), now))

	exceeded := bus.EventsOf(events.EventBudgetExceeded)
	require.Len(t, exceeded, 1)
	e := exceeded[0].(events.BudgetExceeded)
	assert.Equal(t, "Dining cap", e.BudgetName)
	assert.Equal(t, 130.0, e.Spent)
	assert.Equal(t, 130.0, e.Percentage)

	near := bus.EventsOf(events.EventBudgetNearLim)
	require.Len(t, near, 1)
	n := near[0].(events.BudgetNearLimit)
	assert.Equal(t, "Transport cap", n.BudgetName)
	assert.Equal(t, 85.0, n.Spent)

	// Nothing fires for a budget comfortably under its cap.
	assert.Len(t, bus.Events(), 2)
}

func TestCheckThresholds_SkipsInactiveBudgets(t *testing.T) {
	svc, uow, bus := newService(t)
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()
	catID := seedCategory(uow, userID, "Dining")

	uow.Seed().Budgets = append(uow.Seed().Budgets, &domain.Budget{
		ID: uuid.New(), UserID: userID, CategoryID: catID, Name: "Paused cap",
		Amount: 10, Period: domain.PeriodMonthly, IsActive: false,
	})
	spend(uow, userID, catID, 500, now)

	require.NoError(t, svc.CheckThresholds(context.Background(), now))
	assert.Empty(t, bus.Events())
}

func TestProgress_UsesDescendantSpend(t *testing.T) {
	svc, uow, _ := newService(t)
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	parent := seedCategory(uow, userID, "Food")
	child := uuid.New()
	uow.Seed().Categories = append(uow.Seed().Categories, &domain.Category{
		ID: child, UserID: userID, ParentID: &parent, Name: "Groceries", Type: domain.CategoryExpense,
	})

	b := &domain.Budget{
		ID: uuid.New(), UserID: userID, CategoryID: parent, Name: "Food cap",
		Amount: 200, Period: domain.PeriodMonthly, IsActive: true,
	}
	uow.Seed().Budgets = append(uow.Seed().Budgets, b)

	spend(uow, userID, parent, 40, now)
	spend(uow, userID, child, 25, now)

	p, err := svc.Progress(context.Background(), userID, b.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 65.0, p.Spent)
	assert.Equal(t, 135.0, p.Remaining)
	assert.Equal(t, 32.5, p.Percentage)
}
