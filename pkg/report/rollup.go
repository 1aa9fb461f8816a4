package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// CategoryRollup is the roll-up total for one category: its own transactions
// plus every descendant's, summed by sign.
type CategoryRollup struct {
	CategoryID       uuid.UUID `json:"categoryId"`
	Name             string    `json:"name"`
	Income           float64   `json:"income"`
	Expense          float64   `json:"expense"` // negative
	Net              float64   `json:"net"`
	TransactionCount int       `json:"transactionCount"`
	Children         []CategoryRollup `json:"children,omitempty"`
}

// RollUp computes the roll-up for root and, recursively, for each direct
// child. The descendant walk is cycle-safe, so the recursive identity
// rollUp(C) = own(C) + Σ rollUp(child) holds on any tree and terminates on
// corrupted parent links.
func RollUp(categories []*domain.Category, transactions []*domain.Transaction, root uuid.UUID) CategoryRollup {
	return rollUp(categories, transactions, root, map[uuid.UUID]bool{})
}

func rollUp(categories []*domain.Category, transactions []*domain.Transaction, root uuid.UUID, visited map[uuid.UUID]bool) CategoryRollup {
	visited[root] = true
	out := CategoryRollup{CategoryID: root, Name: "Unknown"}
	for _, c := range categories {
		if c.ID == root {
			out.Name = c.Name
			break
		}
	}

	var income, expense decimal.Decimal
	for _, t := range transactions {
		if t.CategoryID != root {
			continue
		}
		d := decimal.NewFromFloat(t.Amount)
		if d.IsPositive() {
			income = income.Add(d)
		} else {
			expense = expense.Add(d)
		}
		out.TransactionCount++
	}

	for _, childID := range domain.ChildIDs(categories, root) {
		if visited[childID] {
			continue
		}
		child := rollUp(categories, transactions, childID, visited)
		out.Children = append(out.Children, child)
		income = income.Add(decimal.NewFromFloat(child.Income))
		expense = expense.Add(decimal.NewFromFloat(child.Expense))
		out.TransactionCount += child.TransactionCount
	}

	out.Income = round2(income)
	out.Expense = round2(expense)
	out.Net = round2(income.Add(expense))
	return out
}
