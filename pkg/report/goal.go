package report

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// GoalProgress is the derived state of one savings goal.
type GoalProgress struct {
	GoalID        uuid.UUID `json:"goalId"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	Remaining     float64   `json:"remaining"`
	Percentage    float64   `json:"percentage"`
	// MonthlyContribution is what needs saving each month to land on the
	// target date. An overdue goal is treated as due this month: the full
	// remainder.
	MonthlyContribution float64 `json:"monthlyContribution"`
	DaysRemaining       int     `json:"daysRemaining"`
	IsCompleted         bool    `json:"isCompleted"`
}

// GoalProgressAt evaluates a goal at now.
func GoalProgressAt(g *domain.Goal, now time.Time) GoalProgress {
	target := decimal.NewFromFloat(g.TargetAmount)
	current := decimal.NewFromFloat(g.CurrentAmount)
	remaining := target.Sub(current)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	var pct decimal.Decimal
	if target.IsPositive() {
		pct = current.Div(target).Mul(decimal.NewFromInt(100))
	}

	months := monthsUntil(now, g.TargetDate)
	monthly := remaining
	if months > 0 {
		monthly = remaining.Div(decimal.NewFromInt(int64(months)))
	}

	days := int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}

	return GoalProgress{
		GoalID:              g.ID,
		Name:                g.Name,
		TargetAmount:        g.TargetAmount,
		CurrentAmount:       g.CurrentAmount,
		Remaining:           round2(remaining),
		Percentage:          round2(pct),
		MonthlyContribution: round2(monthly),
		DaysRemaining:       days,
		IsCompleted:         g.IsCompleted || current.GreaterThanOrEqual(target),
	}
}

// monthsUntil counts whole calendar months from now to target; zero when
// target is not at least a month away.
func monthsUntil(now, target time.Time) int {
	if !target.After(now) {
		return 0
	}
	months := 0
	for !now.AddDate(0, months+1, 0).After(target) {
		months++
	}
	return months
}

// NetWorth sums balances of active, visible accounts.
func NetWorth(accounts []*domain.Account) float64 {
	var total decimal.Decimal
	for _, a := range accounts {
		if !a.IsActive || a.IsHidden {
			continue
		}
		total = total.Add(decimal.NewFromFloat(a.Balance))
	}
	return round2(total)
}
