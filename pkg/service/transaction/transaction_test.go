package transaction_test

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
	"github.com/tincan-finance/tincan/pkg/service/transaction"
)

func newService(t *testing.T) (*transaction.Service, *fixtures.UoW) {
	t.Helper()
	uow := fixtures.NewUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return transaction.New(uow, logger), uow
}

func seedRefs(uow *fixtures.UoW, userID uuid.UUID) (account, category uuid.UUID) {
	account, category = uuid.New(), uuid.New()
	uow.Seed().Accounts = append(uow.Seed().Accounts, &domain.Account{
		ID: account, UserID: userID, Name: "Checking", Type: domain.AccountChecking, IsActive: true,
	})
	uow.Seed().Categories = append(uow.Seed().Categories, &domain.Category{
		ID: category, UserID: userID, Name: "Food", Type: domain.CategoryExpense,
	})
	return account, category
}

func TestCreate_ChecksReferenceOwnership(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()
	accID, catID := seedRefs(uow, userID)

	req := dto.TransactionCreate{
		Description: "lunch",
		Amount:      -12.50,
		Date:        time.Now(),
		AccountID:   accID,
		CategoryID:  catID,
	}
	tx, err := svc.Create(context.Background(), userID, req)
	require.NoError(t, err)
	assert.True(t, tx.IsReviewed, "manual entries default to reviewed")

	// Someone else's account must not be usable.
	req.AccountID = uuid.New()
	_, err = svc.Create(context.Background(), userID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req.AccountID = accID
	req.CategoryID = uuid.New()
	_, err = svc.Create(context.Background(), userID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ChecksTagOwnership(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()
	accID, catID := seedRefs(uow, userID)

	mine := uuid.New()
	theirs := uuid.New()
	uow.Seed().Tags = append(uow.Seed().Tags,
		&domain.Tag{ID: mine, UserID: userID, Name: "work"},
		&domain.Tag{ID: theirs, UserID: uuid.New(), Name: "work"},
	)

	req := dto.TransactionCreate{
		Description: "lunch",
		Amount:      -12.50,
		Date:        time.Now(),
		AccountID:   accID,
		CategoryID:  catID,
		TagIDs:      []uuid.UUID{mine, theirs},
	}
	_, err := svc.Create(context.Background(), userID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "another user's tag must not attach")
	assert.Empty(t, uow.Seed().Transactions, "nothing persisted on a rejected tag")

	req.TagIDs = []uuid.UUID{mine, uuid.New()}
	_, err = svc.Create(context.Background(), userID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "nonexistent tag must not attach")

	req.TagIDs = []uuid.UUID{mine}
	tx, err := svc.Create(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{mine}, tx.TagIDs)
}

func TestUpdate_ChecksTagOwnership(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()
	accID, catID := seedRefs(uow, userID)

	tx := &domain.Transaction{
		ID: uuid.New(), UserID: userID, AccountID: accID, CategoryID: catID,
		Description: "lunch", Amount: -12.50, Date: time.Now(),
	}
	uow.Seed().Transactions = append(uow.Seed().Transactions, tx)

	foreign := []uuid.UUID{uuid.New()}
	_, err := svc.Update(context.Background(), userID, tx.ID, dto.TransactionUpdate{TagIDs: &foreign})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, uow.Seed().Transactions[0].TagIDs, "rejected update must not stick")
}

func TestList_FiltersAndPaginates(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()
	accID, catID := seedRefs(uow, userID)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		uow.Seed().Transactions = append(uow.Seed().Transactions, &domain.Transaction{
			ID: uuid.New(), UserID: userID, AccountID: accID, CategoryID: catID,
			Description: "coffee", Amount: -3, Date: base.AddDate(0, 0, i),
		})
	}
	// Another user's rows never leak into the listing.
	uow.Seed().Transactions = append(uow.Seed().Transactions, &domain.Transaction{
		ID: uuid.New(), UserID: uuid.New(), AccountID: uuid.New(), CategoryID: uuid.New(),
		Description: "coffee", Amount: -3, Date: base,
	})

	out, total, err := svc.List(context.Background(), userID, dto.TransactionQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, out, 2)
	// Default sort is date descending.
	assert.Equal(t, base.AddDate(0, 0, 4), out[0].Date)
	assert.Equal(t, base.AddDate(0, 0, 3), out[1].Date)

	out, total, err = svc.List(context.Background(), userID, dto.TransactionQuery{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, out, 1, "last page holds the remainder")

	min := -3.5
	out, total, err = svc.List(context.Background(), userID, dto.TransactionQuery{MinAmount: &min, Search: "COF"})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, out, 5, "search is case-insensitive")
}

func TestList_StablePagesOnEqualDates(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()
	accID, catID := seedRefs(uow, userID)

	// Same date on every row: without a tie-break rows could shuffle
	// between pages, duplicating some ids and dropping others.
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		uow.Seed().Transactions = append(uow.Seed().Transactions, &domain.Transaction{
			ID: uuid.New(), UserID: userID, AccountID: accID, CategoryID: catID,
			Description: "groceries", Amount: -10, Date: day,
		})
	}

	seen := map[uuid.UUID]bool{}
	for page := 1; page <= 3; page++ {
		out, total, err := svc.List(context.Background(), userID, dto.TransactionQuery{Page: page, Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 6, total)
		require.Len(t, out, 2)
		for _, tx := range out {
			assert.False(t, seen[tx.ID], "id %s appeared on two pages", tx.ID)
			seen[tx.ID] = true
		}
	}
	assert.Len(t, seen, 6, "every row appears exactly once across pages")
}

func TestBulkDelete_SkipsUnowned(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()
	accID, catID := seedRefs(uow, userID)

	mine := uuid.New()
	theirs := uuid.New()
	uow.Seed().Transactions = append(uow.Seed().Transactions,
		&domain.Transaction{ID: mine, UserID: userID, AccountID: accID, CategoryID: catID, Amount: -1, Date: time.Now()},
		&domain.Transaction{ID: theirs, UserID: uuid.New(), AccountID: uuid.New(), CategoryID: uuid.New(), Amount: -1, Date: time.Now()},
	)

	deleted, err := svc.BulkDelete(context.Background(), userID, []uuid.UUID{mine, theirs, uuid.New()})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
	assert.Len(t, uow.Seed().Transactions, 1)
	assert.Equal(t, theirs, uow.Seed().Transactions[0].ID)
}

func TestDuplicate_DropsScheduleLink(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()
	accID, catID := seedRefs(uow, userID)

	schedID := uuid.New()
	orig := &domain.Transaction{
		ID: uuid.New(), UserID: userID, AccountID: accID, CategoryID: catID,
		ScheduleID: &schedID, Description: "rent", Amount: -1200, Date: time.Now(),
	}
	uow.Seed().Transactions = append(uow.Seed().Transactions, orig)

	dup, err := svc.Duplicate(context.Background(), userID, orig.ID)
	require.NoError(t, err)
	assert.NotEqual(t, orig.ID, dup.ID)
	assert.Nil(t, dup.ScheduleID, "copies are not schedule-generated")
	assert.Equal(t, orig.Amount, dup.Amount)
	assert.Equal(t, orig.Description, dup.Description)
}
