package account_test

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
	"github.com/tincan-finance/tincan/pkg/service/account"
)

func newService(t *testing.T) (*account.Service, *fixtures.UoW, *fixtures.RecorderBus) {
	t.Helper()
	uow := fixtures.NewUoW()
	bus := fixtures.NewRecorderBus()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.New(uow, bus, logger), uow, bus
}

func TestCreateAndGet(t *testing.T) {
	svc, _, _ := newService(t)
	userID := uuid.New()

	a, err := svc.Create(context.Background(), userID, dto.AccountCreate{
		Name: "Checking", Type: "checking", Balance: 1500,
	})
	require.NoError(t, err)
	assert.True(t, a.IsActive)

	got, err := svc.Get(context.Background(), userID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checking", got.Name)
	assert.InDelta(t, 1500, got.Balance, 0.001)
}

func TestGet_ScopedToOwner(t *testing.T) {
	svc, _, _ := newService(t)
	owner := uuid.New()

	a, err := svc.Create(context.Background(), owner, dto.AccountCreate{Name: "Mine", Type: "cash"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, _, _ := newService(t)
	userID := uuid.New()
	a, err := svc.Create(context.Background(), userID, dto.AccountCreate{Name: "Old", Type: "savings", Balance: 100})
	require.NoError(t, err)

	name := "New"
	hidden := true
	got, err := svc.Update(context.Background(), userID, a.ID, dto.AccountUpdate{Name: &name, IsHidden: &hidden})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.True(t, got.IsHidden)
	assert.InDelta(t, 100, got.Balance, 0.001, "untouched field survives")
}

func TestDelete_RefusedWhileReferenced(t *testing.T) {
	svc, uow, _ := newService(t)
	userID := uuid.New()
	a, err := svc.Create(context.Background(), userID, dto.AccountCreate{Name: "Rich", Type: "checking"})
	require.NoError(t, err)

	uow.Seed().Transactions = append(uow.Seed().Transactions, &domain.Transaction{
		ID: uuid.New(), UserID: userID, AccountID: a.ID, Amount: -5, Date: time.Now(),
	})

	err = svc.Delete(context.Background(), userID, a.ID)
	assert.ErrorIs(t, err, domain.ErrInUse)

	_, err = svc.Get(context.Background(), userID, a.ID)
	assert.NoError(t, err, "account survives the refused delete")
}

func TestDelete_EmptyAccount(t *testing.T) {
	svc, _, _ := newService(t)
	userID := uuid.New()
	a, err := svc.Create(context.Background(), userID, dto.AccountCreate{Name: "Empty", Type: "cash"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, a.ID))
	_, err = svc.Get(context.Background(), userID, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckLowBalances(t *testing.T) {
	svc, uow, bus := newService(t)
	userID := uuid.New()
	now := time.Now()

	uow.Seed().Accounts = []*domain.Account{
		{ID: uuid.New(), UserID: userID, Name: "Broke", Type: domain.AccountChecking, Balance: 12, IsActive: true},
		{ID: uuid.New(), UserID: userID, Name: "Fine", Type: domain.AccountChecking, Balance: 500, IsActive: true},
		{ID: uuid.New(), UserID: userID, Name: "Card", Type: domain.AccountCredit, Balance: -900, IsActive: true},
		{ID: uuid.New(), UserID: userID, Name: "Closed", Type: domain.AccountChecking, Balance: 1, IsActive: false},
	}

	require.NoError(t, svc.CheckLowBalances(context.Background(), 100, now))

	emitted := bus.EventsOf(events.EventLowBalance)
	require.Len(t, emitted, 1, "only the active non-credit account under the floor alerts")
	e := emitted[0].(events.LowBalance)
	assert.Equal(t, "Broke", e.AccountName)
	assert.InDelta(t, 12, e.Balance, 0.001)
	assert.InDelta(t, 100, e.Threshold, 0.001)
}
