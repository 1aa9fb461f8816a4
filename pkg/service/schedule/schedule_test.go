package schedule_test

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
	"github.com/tincan-finance/tincan/pkg/service/schedule"
)

func newService(t *testing.T) (*schedule.Service, *fixtures.UoW, *fixtures.RecorderBus) {
	t.Helper()
	uow := fixtures.NewUoW()
	bus := fixtures.NewRecorderBus()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return schedule.New(uow, bus, logger), uow, bus
}

func seedSchedule(uow *fixtures.UoW, sc *domain.Schedule) *domain.Schedule {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	uow.Seed().Schedules = append(uow.Seed().Schedules, sc)
	return sc
}

func TestProcessDue_MaterializesTransaction(t *testing.T) {
	svc, uow, bus := newService(t)
	userID := uuid.New()
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	sc := seedSchedule(uow, &domain.Schedule{
		UserID: userID, AccountID: uuid.New(), CategoryID: uuid.New(),
		Name: "Rent", Amount: 1200, Type: domain.ScheduleExpense,
		Frequency: domain.FreqMonthly, NextDate: day, IsActive: true,
	})

	created, err := svc.ProcessDue(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	require.Len(t, uow.Seed().Transactions, 1)
	tx := uow.Seed().Transactions[0]
	assert.Equal(t, -1200.0, tx.Amount, "expense schedules produce negative amounts")
	assert.Equal(t, "Rent", tx.Description)
	assert.Equal(t, day, tx.Date)
	assert.False(t, tx.IsReviewed, "generated rows wait for review")
	require.NotNil(t, tx.ScheduleID)
	assert.Equal(t, sc.ID, *tx.ScheduleID)

	got := uow.Seed().Schedules[0]
	assert.Equal(t, day.AddDate(0, 1, 0), got.NextDate)
	require.NotNil(t, got.LastProcessed)
	assert.True(t, got.IsActive)

	evts := bus.EventsOf(events.EventScheduleRun)
	require.Len(t, evts, 1)
	e := evts[0].(events.ScheduleMaterialized)
	assert.Equal(t, sc.ID, e.ScheduleID)
	assert.Equal(t, tx.ID, e.TransactionID)
	assert.Equal(t, -1200.0, e.Amount)
}

func TestProcessDue_SkipsInactiveAndFuture(t *testing.T) {
	svc, uow, _ := newService(t)
	userID := uuid.New()
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	seedSchedule(uow, &domain.Schedule{
		UserID: userID, Name: "Paused", Amount: 10, Type: domain.ScheduleExpense,
		Frequency: domain.FreqMonthly, NextDate: day, IsActive: false,
	})
	seedSchedule(uow, &domain.Schedule{
		UserID: userID, Name: "Later", Amount: 10, Type: domain.ScheduleExpense,
		Frequency: domain.FreqMonthly, NextDate: day.AddDate(0, 0, 1), IsActive: true,
	})

	created, err := svc.ProcessDue(context.Background(), day)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Empty(t, uow.Seed().Transactions)
}

func TestProcessDue_DeactivatesExpiredWithoutCreating(t *testing.T) {
	svc, uow, bus := newService(t)
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	end := day.AddDate(0, 0, -1)

	seedSchedule(uow, &domain.Schedule{
		UserID: uuid.New(), Name: "Old gym", Amount: 40, Type: domain.ScheduleExpense,
		Frequency: domain.FreqMonthly, NextDate: day, EndDate: &end, IsActive: true,
	})

	created, err := svc.ProcessDue(context.Background(), day)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Empty(t, uow.Seed().Transactions)
	assert.False(t, uow.Seed().Schedules[0].IsActive)
	assert.Empty(t, bus.Events())
}

func TestProcessDue_DeactivatesWhenNextOccurrencePastEnd(t *testing.T) {
	svc, uow, _ := newService(t)
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	end := day.AddDate(0, 0, 10) // next monthly occurrence lands past this

	seedSchedule(uow, &domain.Schedule{
		UserID: uuid.New(), Name: "Last payment", Amount: 99, Type: domain.ScheduleIncome,
		Frequency: domain.FreqMonthly, NextDate: day, EndDate: &end, IsActive: true,
	})

	created, err := svc.ProcessDue(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 1, created, "the final occurrence still posts")
	require.Len(t, uow.Seed().Transactions, 1)
	assert.Equal(t, 99.0, uow.Seed().Transactions[0].Amount)
	assert.False(t, uow.Seed().Schedules[0].IsActive, "no further occurrence fits before the end date")
}

func TestProcessDue_OneTimeFiresOnceAndDeactivates(t *testing.T) {
	svc, uow, _ := newService(t)
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	seedSchedule(uow, &domain.Schedule{
		UserID: uuid.New(), Name: "Tax bill", Amount: 450, Type: domain.ScheduleExpense,
		Frequency: domain.FreqOnce, NextDate: day, IsActive: true,
	})

	created, err := svc.ProcessDue(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	require.Len(t, uow.Seed().Transactions, 1)
	assert.Equal(t, -450.0, uow.Seed().Transactions[0].Amount)
	assert.False(t, uow.Seed().Schedules[0].IsActive, "one-time schedules retire after firing")

	// A later run has nothing left to do.
	created, err = svc.ProcessDue(context.Background(), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Len(t, uow.Seed().Transactions, 1)
}

func TestProcessDue_CatchesUpMultipleSchedules(t *testing.T) {
	svc, uow, _ := newService(t)
	userID := uuid.New()
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	seedSchedule(uow, &domain.Schedule{
		UserID: userID, Name: "Salary", Amount: 4000, Type: domain.ScheduleIncome,
		Frequency: domain.FreqMonthly, NextDate: day.AddDate(0, 0, -3), IsActive: true,
	})
	seedSchedule(uow, &domain.Schedule{
		UserID: userID, Name: "Netflix", Amount: 15, Type: domain.ScheduleExpense,
		Frequency: domain.FreqMonthly, NextDate: day, IsActive: true,
	})

	created, err := svc.ProcessDue(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Len(t, uow.Seed().Transactions, 2)
}
