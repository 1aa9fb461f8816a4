package goal_test

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
	"github.com/tincan-finance/tincan/pkg/service/goal"
)

func newService(t *testing.T) (*goal.Service, *fixtures.UoW, *fixtures.RecorderBus) {
	t.Helper()
	uow := fixtures.NewUoW()
	bus := fixtures.NewRecorderBus()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return goal.New(uow, bus, logger), uow, bus
}

func TestAddProgress_EmitsGoalReachedOnce(t *testing.T) {
	svc, _, bus := newService(t)
	userID := uuid.New()

	g, err := svc.Create(context.Background(), userID, dto.GoalCreate{
		Name: "Vacation", TargetAmount: 1000, TargetDate: time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Zero(t, g.CurrentAmount)
	assert.False(t, g.IsCompleted)

	g, err = svc.AddProgress(context.Background(), userID, g.ID, dto.GoalProgressAdd{Amount: 600})
	require.NoError(t, err)
	assert.False(t, g.IsCompleted)
	assert.Empty(t, bus.EventsOf(events.EventGoalReached))

	g, err = svc.AddProgress(context.Background(), userID, g.ID, dto.GoalProgressAdd{Amount: 500})
	require.NoError(t, err)
	assert.True(t, g.IsCompleted)
	assert.Equal(t, 1100.0, g.CurrentAmount)

	evts := bus.EventsOf(events.EventGoalReached)
	require.Len(t, evts, 1)
	e := evts[0].(events.GoalReached)
	assert.Equal(t, "Vacation", e.GoalName)
	assert.Equal(t, 1000.0, e.Target)

	// Adding more to an already-completed goal must not re-fire.
	_, err = svc.AddProgress(context.Background(), userID, g.ID, dto.GoalProgressAdd{Amount: 50})
	require.NoError(t, err)
	assert.Len(t, bus.EventsOf(events.EventGoalReached), 1)
}

func TestUpdate_RaisingTargetReopensGoal(t *testing.T) {
	svc, _, _ := newService(t)
	userID := uuid.New()

	g, err := svc.Create(context.Background(), userID, dto.GoalCreate{
		Name: "Laptop", TargetAmount: 500, TargetDate: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	g, err = svc.AddProgress(context.Background(), userID, g.ID, dto.GoalProgressAdd{Amount: 500})
	require.NoError(t, err)
	require.True(t, g.IsCompleted)

	target := 800.0
	g, err = svc.Update(context.Background(), userID, g.ID, dto.GoalUpdate{TargetAmount: &target})
	require.NoError(t, err)
	assert.False(t, g.IsCompleted, "raising the target reopens the goal")

	lower := 400.0
	g, err = svc.Update(context.Background(), userID, g.ID, dto.GoalUpdate{TargetAmount: &lower})
	require.NoError(t, err)
	assert.True(t, g.IsCompleted)
}

func TestGet_ScopedToOwner(t *testing.T) {
	svc, _, _ := newService(t)
	userID := uuid.New()

	g, err := svc.Create(context.Background(), userID, dto.GoalCreate{
		Name: "Car", TargetAmount: 9000, TargetDate: time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), g.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
