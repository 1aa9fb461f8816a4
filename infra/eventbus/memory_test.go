package eventbus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraeventbus "github.com/tincan-finance/tincan/infra/eventbus"
	"github.com/tincan-finance/tincan/pkg/domain/events"
	"github.com/tincan-finance/tincan/pkg/eventbus"
)

func newBus() *infraeventbus.MemoryEventBus {
	return infraeventbus.NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEmit_DispatchesByType(t *testing.T) {
	bus := newBus()

	var reached, low int
	bus.Register(events.EventGoalReached, func(context.Context, eventbus.Event) error {
		reached++
		return nil
	})
	bus.Register(events.EventLowBalance, func(context.Context, eventbus.Event) error {
		low++
		return nil
	})

	e := events.GoalReached{UserID: uuid.New(), GoalID: uuid.New(), OccurredAt: time.Now()}
	require.NoError(t, bus.Emit(context.Background(), e))
	require.NoError(t, bus.Emit(context.Background(), e))

	assert.Equal(t, 2, reached)
	assert.Zero(t, low, "handlers only see their own event type")
}

func TestEmit_SwallowsHandlerErrors(t *testing.T) {
	bus := newBus()

	var second bool
	bus.Register(events.EventLowBalance, func(context.Context, eventbus.Event) error {
		return errors.New("write failed")
	})
	bus.Register(events.EventLowBalance, func(context.Context, eventbus.Event) error {
		second = true
		return nil
	})

	err := bus.Emit(context.Background(), events.LowBalance{UserID: uuid.New()})
	assert.NoError(t, err, "a failing handler never fails the emitter")
	assert.True(t, second, "later handlers still run")
}

func TestEmit_NoHandlersIsNoop(t *testing.T) {
	bus := newBus()
	assert.NoError(t, bus.Emit(context.Background(), events.LowBalance{}))
}
