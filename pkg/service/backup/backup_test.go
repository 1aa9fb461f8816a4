package backup_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tincan-finance/tincan/internal/fixtures"
	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/backup"
)

func newService(t *testing.T) (*backup.Service, *fixtures.UoW) {
	t.Helper()
	uow := fixtures.NewUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return backup.New(uow, validator.New(), logger), uow
}

func seedUserData(uow *fixtures.UoW, userID uuid.UUID) (accID, catID, tagID, schedID uuid.UUID) {
	accID, catID, tagID, schedID = uuid.New(), uuid.New(), uuid.New(), uuid.New()
	next := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	uow.Seed().Accounts = append(uow.Seed().Accounts, &domain.Account{
		ID: accID, UserID: userID, Name: "Checking", Type: domain.AccountChecking, Balance: 500, IsActive: true,
	})
	uow.Seed().Categories = append(uow.Seed().Categories, &domain.Category{
		ID: catID, UserID: userID, Name: "Food", Type: domain.CategoryExpense,
	})
	uow.Seed().Tags = append(uow.Seed().Tags, &domain.Tag{ID: tagID, UserID: userID, Name: "weekly"})
	uow.Seed().Schedules = append(uow.Seed().Schedules, &domain.Schedule{
		ID: schedID, UserID: userID, AccountID: accID, CategoryID: catID,
		Name: "Groceries", Amount: 80, Type: domain.ScheduleExpense,
		Frequency: domain.FreqWeekly, NextDate: next, IsActive: true,
	})
	uow.Seed().Transactions = append(uow.Seed().Transactions, &domain.Transaction{
		ID: uuid.New(), UserID: userID, AccountID: accID, CategoryID: catID,
		ScheduleID: &schedID, Description: "groceries", Amount: -80,
		Date: next.AddDate(0, 0, -7), TagIDs: []uuid.UUID{tagID}, IsReviewed: true,
	})
	uow.Seed().Budgets = append(uow.Seed().Budgets, &domain.Budget{
		ID: uuid.New(), UserID: userID, CategoryID: catID, Name: "Food cap",
		Amount: 400, Period: domain.PeriodMonthly, IsActive: true,
	})
	uow.Seed().Goals = append(uow.Seed().Goals, &domain.Goal{
		ID: uuid.New(), UserID: userID, Name: "Vacation", TargetAmount: 1000,
		CurrentAmount: 250, TargetDate: next.AddDate(1, 0, 0),
	})
	return accID, catID, tagID, schedID
}

func TestExportImport_RoundTrip(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()
	accID, _, tagID, schedID := seedUserData(uow, userID)

	snap, err := svc.Export(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, dto.SnapshotVersion, snap.Version)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, []uuid.UUID{tagID}, snap.Transactions[0].TagIDs)

	// Import the snapshot into a fresh store for a different user.
	dst, dstStore := newService(t)
	newOwner := uuid.New()
	counts, err := dst.Import(context.Background(), newOwner, snap)
	require.NoError(t, err)
	assert.Equal(t, backup.ImportCounts{
		Accounts: 1, Categories: 1, Tags: 1, Transactions: 1, Budgets: 1, Goals: 1, Schedules: 1,
	}, counts)

	// Exported ids survive, ownership moves to the importer.
	require.Len(t, dstStore.Seed().Accounts, 1)
	assert.Equal(t, accID, dstStore.Seed().Accounts[0].ID)
	assert.Equal(t, newOwner, dstStore.Seed().Accounts[0].UserID)
	require.Len(t, dstStore.Seed().Transactions, 1)
	require.NotNil(t, dstStore.Seed().Transactions[0].ScheduleID)
	assert.Equal(t, schedID, *dstStore.Seed().Transactions[0].ScheduleID)
}

func TestImport_RejectsDanglingReference(t *testing.T) {
	svc, uow := newService(t)

	snap := &dto.Snapshot{
		Version: dto.SnapshotVersion,
		Accounts: []dto.SnapshotAccount{
			{ID: uuid.New(), Name: "Checking", Type: "checking"},
		},
		Transactions: []dto.SnapshotTransaction{
			{ID: uuid.New(), AccountID: uuid.New(), CategoryID: uuid.New(),
				Description: "orphan", Amount: -1, Date: time.Now()},
		},
	}
	snap.Transactions[0].AccountID = snap.Accounts[0].ID // category still dangles

	_, err := svc.Import(context.Background(), uuid.New(), snap)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, uow.Seed().Accounts, "nothing is written on a rejected payload")
	assert.Empty(t, uow.Seed().Transactions)
}

func TestImport_RejectsCategoryCycle(t *testing.T) {
	svc, uow := newService(t)

	a, b := uuid.New(), uuid.New()
	snap := &dto.Snapshot{
		Version: dto.SnapshotVersion,
		Categories: []dto.SnapshotCategory{
			{ID: a, Name: "A", Type: "expense", ParentID: &b},
			{ID: b, Name: "B", Type: "expense", ParentID: &a},
		},
	}

	_, err := svc.Import(context.Background(), uuid.New(), snap)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, uow.Seed().Categories)
}

func TestImport_RejectsInvalidRecord(t *testing.T) {
	svc, _ := newService(t)

	snap := &dto.Snapshot{
		Version: dto.SnapshotVersion,
		Budgets: []dto.SnapshotBudget{
			{ID: uuid.New(), Name: "Bad", Amount: -5, Period: "monthly", CategoryID: uuid.New()},
		},
	}

	_, err := svc.Import(context.Background(), uuid.New(), snap)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
