package alert_test

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
	"github.com/tincan-finance/tincan/pkg/service/alert"
)

func newService(t *testing.T) (*alert.Service, *fixtures.UoW) {
	t.Helper()
	uow := fixtures.NewUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return alert.New(uow, logger), uow
}

func TestSubscribe_PersistsAlertsFromEvents(t *testing.T) {
	svc, uow := newService(t)
	bus := fixtures.NewRecorderBus()
	svc.Subscribe(bus)

	userID := uuid.New()
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, bus.Emit(context.Background(), events.BudgetExceeded{
		UserID: userID, BudgetID: uuid.New(), BudgetName: "Dining cap",
		Amount: 100, Spent: 130, Percentage: 130, OccurredAt: now,
	}))
	require.NoError(t, bus.Emit(context.Background(), events.GoalReached{
		UserID: userID, GoalID: uuid.New(), GoalName: "Vacation", Target: 1000, OccurredAt: now,
	}))
	require.NoError(t, bus.Emit(context.Background(), events.LowBalance{
		UserID: userID, AccountID: uuid.New(), AccountName: "Checking",
		Balance: 42.10, Threshold: 100, OccurredAt: now,
	}))

	alerts := uow.Seed().Alerts
	require.Len(t, alerts, 3)

	byType := map[domain.AlertType]*domain.Alert{}
	for _, a := range alerts {
		byType[a.Type] = a
	}
	over := byType[domain.AlertBudgetExceeded]
	require.NotNil(t, over)
	assert.Equal(t, domain.SeverityError, over.Severity)
	assert.Contains(t, over.Message, "Dining cap")
	assert.False(t, over.IsRead)

	goal := byType[domain.AlertGoalReached]
	require.NotNil(t, goal)
	assert.Equal(t, domain.SeverityInfo, goal.Severity)

	low := byType[domain.AlertLowBalance]
	require.NotNil(t, low)
	assert.Equal(t, domain.SeverityWarning, low.Severity)
	assert.Contains(t, low.Message, "42.10")
}

func TestSubscribe_RepeatedConditionStoresOneAlert(t *testing.T) {
	svc, uow := newService(t)
	bus := fixtures.NewRecorderBus()
	svc.Subscribe(bus)

	userID := uuid.New()
	budgetID := uuid.New()
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	exceeded := events.BudgetExceeded{
		UserID: userID, BudgetID: budgetID, BudgetName: "Dining cap",
		Amount: 100, Spent: 130, Percentage: 130, OccurredAt: now,
	}

	// A sweep re-reports a budget that stays over its cap every run; only
	// the first report may land while the alert is still open.
	for i := 0; i < 3; i++ {
		require.NoError(t, bus.Emit(context.Background(), exceeded))
	}
	require.Len(t, uow.Seed().Alerts, 1)
	require.NotNil(t, uow.Seed().Alerts[0].EntityID)
	assert.Equal(t, budgetID, *uow.Seed().Alerts[0].EntityID)

	// Escalation is not a repeat: near-limit and exceeded differ in severity.
	require.NoError(t, bus.Emit(context.Background(), events.BudgetNearLimit{
		UserID: userID, BudgetID: budgetID, BudgetName: "Dining cap",
		Amount: 100, Spent: 85, Percentage: 85, OccurredAt: now,
	}))
	assert.Len(t, uow.Seed().Alerts, 2)

	// Once dismissed, the next breach raises a fresh alert.
	_, err := svc.Dismiss(context.Background(), userID, uow.Seed().Alerts[0].ID)
	require.NoError(t, err)
	require.NoError(t, bus.Emit(context.Background(), exceeded))
	assert.Len(t, uow.Seed().Alerts, 3)

	// A different budget gets its own alert.
	other := exceeded
	other.BudgetID = uuid.New()
	require.NoError(t, bus.Emit(context.Background(), other))
	assert.Len(t, uow.Seed().Alerts, 4)
}

func TestMarkAllRead_CountsOnlyUnread(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()

	uow.Seed().Alerts = append(uow.Seed().Alerts,
		&domain.Alert{ID: uuid.New(), UserID: userID, Type: domain.AlertLowBalance, IsRead: false},
		&domain.Alert{ID: uuid.New(), UserID: userID, Type: domain.AlertLowBalance, IsRead: true},
		&domain.Alert{ID: uuid.New(), UserID: userID, Type: domain.AlertLowBalance, IsRead: false},
		&domain.Alert{ID: uuid.New(), UserID: uuid.New(), Type: domain.AlertLowBalance, IsRead: false},
	)

	n, err := svc.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, a := range uow.Seed().Alerts {
		if a.UserID == userID {
			assert.True(t, a.IsRead)
		} else {
			assert.False(t, a.IsRead, "other users' alerts untouched")
		}
	}
}

func TestDismiss_HidesFromDefaultListing(t *testing.T) {
	svc, uow := newService(t)
	userID := uuid.New()

	a := &domain.Alert{ID: uuid.New(), UserID: userID, Type: domain.AlertBudgetExceeded}
	uow.Seed().Alerts = append(uow.Seed().Alerts, a)

	got, err := svc.Dismiss(context.Background(), userID, a.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDismissed)
	assert.True(t, got.IsRead, "dismissing implies read")

	visible, err := svc.List(context.Background(), userID, false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := svc.List(context.Background(), userID, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCleanup_PrunesOldDismissedOnly(t *testing.T) {
	svc, uow := newService(t)
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	uow.Seed().Alerts = append(uow.Seed().Alerts,
		&domain.Alert{ID: uuid.New(), UserID: userID, IsDismissed: true, CreatedAt: now.AddDate(0, -2, 0)},
		&domain.Alert{ID: uuid.New(), UserID: userID, IsDismissed: true, CreatedAt: now.AddDate(0, 0, -5)},
		&domain.Alert{ID: uuid.New(), UserID: userID, IsDismissed: false, CreatedAt: now.AddDate(0, -2, 0)},
	)

	n, err := svc.Cleanup(context.Background(), 30*24*time.Hour, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "recent dismissed and old undismissed both survive")
	assert.Len(t, uow.Seed().Alerts, 2)
}
