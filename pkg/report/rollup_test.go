package report_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/report"
)

func TestRollUp_SumsDescendants(t *testing.T) {
	root := uuid.New()
	childA := uuid.New()
	childB := uuid.New()
	grandchild := uuid.New()
	categories := []*domain.Category{
		{ID: root, Name: "Food"},
		{ID: childA, Name: "Groceries", ParentID: &root},
		{ID: childB, Name: "Restaurants", ParentID: &root},
		{ID: grandchild, Name: "Coffee", ParentID: &childB},
	}
	txs := []*domain.Transaction{
		{ID: uuid.New(), CategoryID: root, Amount: -10, Date: day(1)},
		{ID: uuid.New(), CategoryID: childA, Amount: -20, Date: day(2)},
		{ID: uuid.New(), CategoryID: childB, Amount: -30, Date: day(3)},
		{ID: uuid.New(), CategoryID: grandchild, Amount: -5, Date: day(4)},
		{ID: uuid.New(), CategoryID: childA, Amount: 100, Date: day(5)},
	}

	r := report.RollUp(categories, txs, root)

	assert.Equal(t, "Food", r.Name)
	assert.InDelta(t, -65, r.Expense, 0.001)
	assert.InDelta(t, 100, r.Income, 0.001)
	assert.InDelta(t, 35, r.Net, 0.001)
	assert.Equal(t, 5, r.TransactionCount)

	// RollUp(root) = own + sum of child roll-ups.
	require.Len(t, r.Children, 2)
	var childTotal float64
	for _, c := range r.Children {
		childTotal += c.Net
	}
	assert.InDelta(t, r.Net-(-10), childTotal, 0.001)
}

func TestRollUp_CycleSafe(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	// Corrupted parent links: a -> b -> a.
	categories := []*domain.Category{
		{ID: a, Name: "A", ParentID: &b},
		{ID: b, Name: "B", ParentID: &a},
	}
	txs := []*domain.Transaction{
		{ID: uuid.New(), CategoryID: a, Amount: -10, Date: day(1)},
		{ID: uuid.New(), CategoryID: b, Amount: -20, Date: day(2)},
	}

	// Must terminate and count each transaction exactly once.
	r := report.RollUp(categories, txs, a)
	assert.InDelta(t, -30, r.Expense, 0.001)
	assert.Equal(t, 2, r.TransactionCount)
}

func TestRollUp_UnknownCategory(t *testing.T) {
	r := report.RollUp(nil, nil, uuid.New())
	assert.Equal(t, "Unknown", r.Name)
	assert.Zero(t, r.Net)
}
