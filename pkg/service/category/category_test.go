package category_test

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
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/category"
)

func newService(t *testing.T) (*category.Service, *fixtures.UoW) {
	t.Helper()
	uow := fixtures.NewUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return category.New(uow, logger), uow
}

func create(t *testing.T, svc *category.Service, userID uuid.UUID, name string, parent *uuid.UUID) *domain.Category {
	t.Helper()
	c, err := svc.Create(context.Background(), userID, dto.CategoryCreate{
		Name: name, Type: "expense", ParentID: parent,
	})
	require.NoError(t, err)
	return c
}

func TestUpdate_RejectsCycle(t *testing.T) {
	svc, _ := newService(t)
	userID := uuid.New()

	root := create(t, svc, userID, "Expenses", nil)
	child := create(t, svc, userID, "Food", &root.ID)
	grandchild := create(t, svc, userID, "Coffee", &child.ID)

	// Reparenting the root under its own grandchild must fail.
	_, err := svc.Update(context.Background(), userID, root.ID, dto.CategoryUpdate{ParentID: &grandchild.ID})
	assert.ErrorIs(t, err, domain.ErrCategoryCycle)

	// Self-parenting must fail too.
	_, err = svc.Update(context.Background(), userID, child.ID, dto.CategoryUpdate{ParentID: &child.ID})
	assert.ErrorIs(t, err, domain.ErrCategoryCycle)

	// A legal sideways move still works.
	sibling := create(t, svc, userID, "Transport", &root.ID)
	got, err := svc.Update(context.Background(), userID, grandchild.ID, dto.CategoryUpdate{ParentID: &sibling.ID})
	require.NoError(t, err)
	assert.Equal(t, sibling.ID, *got.ParentID)
}

func TestDelete_Guards(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()

	root := create(t, svc, userID, "Expenses", nil)
	child := create(t, svc, userID, "Food", &root.ID)

	// Parent with a child is blocked.
	assert.ErrorIs(t, svc.Delete(context.Background(), userID, root.ID), domain.ErrInUse)

	// Category with transactions is blocked.
	uow.Seed().Transactions = append(uow.Seed().Transactions, &domain.Transaction{
		ID: uuid.New(), UserID: userID, CategoryID: child.ID, Amount: -3, Date: time.Now(),
	})
	assert.ErrorIs(t, svc.Delete(context.Background(), userID, child.ID), domain.ErrInUse)
}

func TestMerge(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()

	source := create(t, svc, userID, "Dining", nil)
	target := create(t, svc, userID, "Food", nil)

	for i := 0; i < 3; i++ {
		uow.Seed().Transactions = append(uow.Seed().Transactions, &domain.Transaction{
			ID: uuid.New(), UserID: userID, CategoryID: source.ID, Amount: -10, Date: time.Now(),
		})
	}

	require.NoError(t, svc.Merge(context.Background(), userID, source.ID, target.ID))

	// Source is gone, its transactions now sit on target.
	_, err := svc.Get(context.Background(), userID, source.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	for _, tx := range uow.Seed().Transactions {
		assert.Equal(t, target.ID, tx.CategoryID)
	}
}

func TestMerge_SelfRejected(t *testing.T) {
	svc, _ := newService(t)
	userID := uuid.New()
	c := create(t, svc, userID, "Food", nil)
	assert.ErrorIs(t, svc.Merge(context.Background(), userID, c.ID, c.ID), domain.ErrValidation)
}

func TestSeedDefaults(t *testing.T) {
	svc, _ := newService(t)
	userID := uuid.New()

	require.NoError(t, svc.SeedDefaults(context.Background(), userID))

	all, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, all)

	var roots int
	for _, c := range all {
		if c.IsRoot() {
			roots++
		}
	}
	assert.Equal(t, 2, roots, "one income root, one expenses root")
}
