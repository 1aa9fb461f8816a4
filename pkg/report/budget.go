package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// BudgetStatus buckets budget health for alerting and display.
type BudgetStatus string

const (
	StatusOnTrack   BudgetStatus = "on_track"
	StatusNearLimit BudgetStatus = "near_limit"
	StatusOver      BudgetStatus = "over_budget"
)

// NearLimitThreshold is the spent percentage at which a budget is flagged
// as approaching its cap.
const NearLimitThreshold = 80.0

// BudgetProgress is spend-vs-cap for one budget over its active window.
// Percentage is unclamped; values over 100 mean overspend.
type BudgetProgress struct {
	BudgetID     uuid.UUID    `json:"budgetId"`
	Name         string       `json:"name"`
	CategoryName string       `json:"categoryName"`
	Amount       float64      `json:"amount"`
	Spent        float64      `json:"spent"`
	Remaining    float64      `json:"remaining"`
	Percentage   float64      `json:"percentage"`
	IsOverBudget bool         `json:"isOverBudget"`
	Status       BudgetStatus `json:"status"`
	PeriodStart  time.Time    `json:"periodStart"`
	PeriodEnd    time.Time    `json:"periodEnd"`
}

// Progress evaluates one budget at now. Spend counts only expenses
// (amount < 0) dated inside the inclusive window, in the budget's category or
// any of its descendants.
func Progress(b *domain.Budget, categories []*domain.Category, transactions []*domain.Transaction, now time.Time) BudgetProgress {
	start, end := b.Window(now)
	inScope := domain.DescendantIDs(categories, b.CategoryID)

	var spent decimal.Decimal
	for _, t := range transactions {
		if t.Amount >= 0 || !inScope[t.CategoryID] {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		spent = spent.Add(decimal.NewFromFloat(t.Amount).Neg())
	}

	amount := decimal.NewFromFloat(b.Amount)
	var pct decimal.Decimal
	if amount.IsPositive() {
		pct = spent.Div(amount).Mul(decimal.NewFromInt(100))
	}

	p := BudgetProgress{
		BudgetID:     b.ID,
		Name:         b.Name,
		CategoryName: categoryName(categories, b.CategoryID),
		Amount:       b.Amount,
		Spent:        round2(spent),
		Remaining:    round2(amount.Sub(spent)),
		Percentage:   round2(pct),
		IsOverBudget: spent.GreaterThan(amount),
		PeriodStart:  start,
		PeriodEnd:    end,
	}
	switch {
	case p.Percentage >= 100:
		p.Status = StatusOver
	case p.Percentage >= NearLimitThreshold:
		p.Status = StatusNearLimit
	default:
		p.Status = StatusOnTrack
	}
	return p
}

// ProgressAll evaluates every active budget.
func ProgressAll(budgets []*domain.Budget, categories []*domain.Category, transactions []*domain.Transaction, now time.Time) []BudgetProgress {
	out := make([]BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		if !b.IsActive {
			continue
		}
		out = append(out, Progress(b, categories, transactions, now))
	}
	return out
}

func categoryName(categories []*domain.Category, id uuid.UUID) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "Unknown"
}
