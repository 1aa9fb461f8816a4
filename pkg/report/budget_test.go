package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/report"
)

func midMonth() time.Time {
	return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
}

func expense(categoryID uuid.UUID, amount float64, date time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Amount:     -amount,
		Date:       date,
	}
}

func TestProgress_Percentage(t *testing.T) {
	catID := uuid.New()
	b := &domain.Budget{
		ID:         uuid.New(),
		Name:       "Groceries",
		Amount:     300,
		Period:     domain.PeriodMonthly,
		CategoryID: catID,
		IsActive:   true,
	}
	categories := []*domain.Category{{ID: catID, Name: "Groceries"}}
	txs := []*domain.Transaction{expense(catID, 45.20, midMonth())}

	p := report.Progress(b, categories, txs, midMonth())

	assert.InDelta(t, 45.20, p.Spent, 0.001)
	assert.InDelta(t, 254.80, p.Remaining, 0.001)
	assert.InDelta(t, 15.07, p.Percentage, 0.001)
	assert.False(t, p.IsOverBudget)
	assert.Equal(t, report.StatusOnTrack, p.Status)
	assert.Equal(t, "Groceries", p.CategoryName)
}

func TestProgress_CountsDescendantSpend(t *testing.T) {
	parent := uuid.New()
	child := uuid.New()
	categories := []*domain.Category{
		{ID: parent, Name: "Food"},
		{ID: child, Name: "Restaurants", ParentID: &parent},
	}
	b := &domain.Budget{ID: uuid.New(), Amount: 100, Period: domain.PeriodMonthly, CategoryID: parent, IsActive: true}
	txs := []*domain.Transaction{
		expense(parent, 30, midMonth()),
		expense(child, 20, midMonth()),
	}

	p := report.Progress(b, categories, txs, midMonth())
	assert.InDelta(t, 50, p.Spent, 0.001)
}

func TestProgress_IgnoresIncomeAndOutOfWindow(t *testing.T) {
	catID := uuid.New()
	categories := []*domain.Category{{ID: catID, Name: "Bills"}}
	b := &domain.Budget{ID: uuid.New(), Amount: 100, Period: domain.PeriodMonthly, CategoryID: catID, IsActive: true}
	txs := []*domain.Transaction{
		{ID: uuid.New(), CategoryID: catID, Amount: 500, Date: midMonth()}, // income
		expense(catID, 40, midMonth().AddDate(0, -1, 0)),                   // prior month
		expense(catID, 25, midMonth()),
	}

	p := report.Progress(b, categories, txs, midMonth())
	assert.InDelta(t, 25, p.Spent, 0.001)
}

func TestProgress_Statuses(t *testing.T) {
	catID := uuid.New()
	categories := []*domain.Category{{ID: catID, Name: "Fun"}}
	b := &domain.Budget{ID: uuid.New(), Amount: 100, Period: domain.PeriodMonthly, CategoryID: catID, IsActive: true}

	near := report.Progress(b, categories, []*domain.Transaction{expense(catID, 85, midMonth())}, midMonth())
	assert.Equal(t, report.StatusNearLimit, near.Status)
	assert.False(t, near.IsOverBudget)

	over := report.Progress(b, categories, []*domain.Transaction{expense(catID, 130, midMonth())}, midMonth())
	assert.Equal(t, report.StatusOver, over.Status)
	assert.True(t, over.IsOverBudget)
	// Unclamped: 130 percent, not 100.
	assert.InDelta(t, 130, over.Percentage, 0.001)
}

func TestProgress_ExplicitWindowWins(t *testing.T) {
	catID := uuid.New()
	categories := []*domain.Category{{ID: catID, Name: "Trip"}}
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)
	b := &domain.Budget{
		ID: uuid.New(), Amount: 1000, Period: domain.PeriodMonthly,
		CategoryID: catID, StartDate: &start, EndDate: &end, IsActive: true,
	}
	txs := []*domain.Transaction{expense(catID, 200, time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC))}

	p := report.Progress(b, categories, txs, midMonth())
	assert.InDelta(t, 200, p.Spent, 0.001)
	assert.Equal(t, start, p.PeriodStart)
	assert.Equal(t, end, p.PeriodEnd)
}

func TestProgressAll_SkipsInactive(t *testing.T) {
	catID := uuid.New()
	categories := []*domain.Category{{ID: catID, Name: "A"}}
	budgets := []*domain.Budget{
		{ID: uuid.New(), Amount: 100, Period: domain.PeriodMonthly, CategoryID: catID, IsActive: true},
		{ID: uuid.New(), Amount: 100, Period: domain.PeriodMonthly, CategoryID: catID, IsActive: false},
	}

	out := report.ProgressAll(budgets, categories, nil, midMonth())
	assert.Len(t, out, 1)
}

func TestProgress_UnknownCategoryName(t *testing.T) {
	b := &domain.Budget{ID: uuid.New(), Amount: 100, Period: domain.PeriodMonthly, CategoryID: uuid.New(), IsActive: true}
	p := report.Progress(b, nil, nil, midMonth())
	assert.Equal(t, "Unknown", p.CategoryName)
	assert.Zero(t, p.Spent)
}
