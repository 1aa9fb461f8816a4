package tag_test

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
	"github.com/tincan-finance/tincan/pkg/service/tag"
)

func newService(t *testing.T) (*tag.Service, *fixtures.UoW) {
	t.Helper()
	uow := fixtures.NewUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return tag.New(uow, logger), uow
}

func TestCreate_DuplicateNameCaseInsensitive(t *testing.T) {
	svc, _ := newService(t)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, dto.TagCreate{Name: "Vacation"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), userID, dto.TagCreate{Name: "vacation"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Another user can reuse the name.
	_, err = svc.Create(context.Background(), uuid.New(), dto.TagCreate{Name: "Vacation"})
	assert.NoError(t, err)
}

func TestUpdate_RenameCollision(t *testing.T) {
	svc, _ := newService(t)
	userID := uuid.New()

	first, err := svc.Create(context.Background(), userID, dto.TagCreate{Name: "work"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), userID, dto.TagCreate{Name: "travel"})
	require.NoError(t, err)

	name := "TRAVEL"
	_, err = svc.Update(context.Background(), userID, first.ID, dto.TagUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Renaming a tag to a different casing of itself is allowed.
	self := "Work"
	got, err := svc.Update(context.Background(), userID, first.ID, dto.TagUpdate{Name: &self})
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)
}

func TestDelete_DetachesFromTransactions(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()

	tg, err := svc.Create(context.Background(), userID, dto.TagCreate{Name: "groceries"})
	require.NoError(t, err)

	other := uuid.New()
	uow.Seed().Transactions = append(uow.Seed().Transactions, &domain.Transaction{
		ID: uuid.New(), UserID: userID, Amount: -5, Date: time.Now(),
		TagIDs: []uuid.UUID{tg.ID, other},
	})

	require.NoError(t, svc.Delete(context.Background(), userID, tg.ID))

	tx := uow.Seed().Transactions[0]
	assert.Equal(t, []uuid.UUID{other}, tx.TagIDs, "deleted tag is detached, others survive")
}
