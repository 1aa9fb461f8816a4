// Package alert records user-facing notifications. It subscribes to the
// domain events published by the other services and turns each into a stored
// alert.
package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/domain/events"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/eventbus"
	"github.com/tincan-finance/tincan/pkg/repository"
)

// Service manages a user's alerts.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an alert service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "alert")}
}

// Subscribe registers the event handlers that persist alerts.
func (s *Service) Subscribe(bus eventbus.Bus) {
	bus.Register(events.EventBudgetExceeded, s.onBudgetExceeded)
	bus.Register(events.EventBudgetNearLim, s.onBudgetNearLimit)
	bus.Register(events.EventGoalReached, s.onGoalReached)
	bus.Register(events.EventLowBalance, s.onLowBalance)
}

// Create raises an alert directly.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req dto.AlertCreate) (*domain.Alert, error) {
	a := &domain.Alert{
		ID:       uuid.New(),
		UserID:   userID,
		Type:     domain.AlertType(req.Type),
		Title:    req.Title,
		Message:  req.Message,
		Severity: domain.AlertSeverity(req.Severity),
		Metadata: req.Metadata,
	}
	if err := s.store(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns the user's alerts, newest first. Dismissed alerts are hidden
// unless includeDismissed is set.
func (s *Service) List(ctx context.Context, userID uuid.UUID, includeDismissed bool) ([]*domain.Alert, error) {
	var out []*domain.Alert
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		alerts, err := uow.Alerts()
		if err != nil {
			return err
		}
		out, err = alerts.ListByUser(ctx, userID, includeDismissed)
		return err
	})
	return out, err
}

// Get returns one alert owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Alert, error) {
	var a *domain.Alert
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		alerts, err := uow.Alerts()
		if err != nil {
			return err
		}
		a, err = alerts.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// MarkRead marks one alert as read.
func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) (*domain.Alert, error) {
	return s.mutate(ctx, userID, id, func(a *domain.Alert) { a.IsRead = true })
}

// MarkAllRead marks every alert of the user as read and returns the count.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		alerts, err := uow.Alerts()
		if err != nil {
			return err
		}
		all, err := alerts.ListByUser(ctx, userID, false)
		if err != nil {
			return err
		}
		for _, a := range all {
			if a.IsRead {
				continue
			}
			a.IsRead = true
			if err := alerts.Update(ctx, a); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

// Dismiss hides an alert from the default listing.
func (s *Service) Dismiss(ctx context.Context, userID, id uuid.UUID) (*domain.Alert, error) {
	return s.mutate(ctx, userID, id, func(a *domain.Alert) {
		a.IsDismissed = true
		a.IsRead = true
	})
}

// Delete removes one alert.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		alerts, err := uow.Alerts()
		if err != nil {
			return err
		}
		if _, err := alerts.Get(ctx, userID, id); err != nil {
			return err
		}
		return alerts.Delete(ctx, userID, id)
	})
}

// Cleanup prunes dismissed alerts older than retention. Run by the scheduler.
func (s *Service) Cleanup(ctx context.Context, retention time.Duration, now time.Time) (int64, error) {
	var n int64
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		alerts, err := uow.Alerts()
		if err != nil {
			return err
		}
		n, err = alerts.DeleteDismissedBefore(ctx, now.Add(-retention))
		return err
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("dismissed alerts pruned", "count", n)
	}
	return n, nil
}

func (s *Service) mutate(ctx context.Context, userID, id uuid.UUID, fn func(*domain.Alert)) (*domain.Alert, error) {
	var a *domain.Alert
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		alerts, err := uow.Alerts()
		if err != nil {
			return err
		}
		a, err = alerts.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		fn(a)
		return alerts.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// store persists an alert. Rule-raised alerts carry an EntityID; while an
// undismissed alert for the same condition is still open, repeats are dropped
// so a sweep that keeps finding the same breach does not pile up duplicates.
func (s *Service) store(ctx context.Context, a *domain.Alert) error {
	stored := true
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		alerts, err := uow.Alerts()
		if err != nil {
			return err
		}
		if a.EntityID != nil {
			if _, err := alerts.FindOpen(ctx, a.UserID, a.Type, a.Severity, *a.EntityID); err == nil {
				stored = false
				return nil
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
		}
		return alerts.Create(ctx, a)
	})
	if err != nil {
		s.logger.Error("alert store failed", "userID", a.UserID, "type", a.Type, "error", err)
		return err
	}
	if stored {
		s.logger.Info("alert raised", "userID", a.UserID, "type", a.Type, "severity", a.Severity)
	}
	return nil
}

func (s *Service) onBudgetExceeded(ctx context.Context, e eventbus.Event) error {
	ev, ok := e.(events.BudgetExceeded)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", e.Type())
	}
	return s.store(ctx, &domain.Alert{
		ID:       uuid.New(),
		UserID:   ev.UserID,
		EntityID: &ev.BudgetID,
		Type:     domain.AlertBudgetExceeded,
		Title:    "Budget exceeded",
		Message:  fmt.Sprintf("%s is over budget: %.2f spent of %.2f (%.2f%%)", ev.BudgetName, ev.Spent, ev.Amount, ev.Percentage),
		Severity: domain.SeverityError,
		Metadata: map[string]any{
			"budgetId":   ev.BudgetID.String(),
			"spent":      ev.Spent,
			"amount":     ev.Amount,
			"percentage": ev.Percentage,
		},
	})
}

func (s *Service) onBudgetNearLimit(ctx context.Context, e eventbus.Event) error {
	ev, ok := e.(events.BudgetNearLimit)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", e.Type())
	}
	return s.store(ctx, &domain.Alert{
		ID:       uuid.New(),
		UserID:   ev.UserID,
		EntityID: &ev.BudgetID,
		Type:     domain.AlertBudgetExceeded,
		Title:    "Budget near limit",
		Message:  fmt.Sprintf("%s is at %.2f%% of its budget", ev.BudgetName, ev.Percentage),
		Severity: domain.SeverityWarning,
		Metadata: map[string]any{
			"budgetId":   ev.BudgetID.String(),
			"spent":      ev.Spent,
			"amount":     ev.Amount,
			"percentage": ev.Percentage,
		},
	})
}

func (s *Service) onGoalReached(ctx context.Context, e eventbus.Event) error {
	ev, ok := e.(events.GoalReached)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", e.Type())
	}
	return s.store(ctx, &domain.Alert{
		ID:       uuid.New(),
		UserID:   ev.UserID,
		EntityID: &ev.GoalID,
		Type:     domain.AlertGoalReached,
		Title:    "Goal reached",
		Message:  fmt.Sprintf("%s hit its target of %.2f", ev.GoalName, ev.Target),
		Severity: domain.SeverityInfo,
		Metadata: map[string]any{"goalId": ev.GoalID.String(), "target": ev.Target},
	})
}

func (s *Service) onLowBalance(ctx context.Context, e eventbus.Event) error {
	ev, ok := e.(events.LowBalance)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", e.Type())
	}
	return s.store(ctx, &domain.Alert{
		ID:       uuid.New(),
		UserID:   ev.UserID,
		EntityID: &ev.AccountID,
		Type:     domain.AlertLowBalance,
		Title:    "Low balance",
		Message:  fmt.Sprintf("%s balance dropped to %.2f (threshold %.2f)", ev.AccountName, ev.Balance, ev.Threshold),
		Severity: domain.SeverityWarning,
		Metadata: map[string]any{
			"accountId": ev.AccountID.String(),
			"balance":   ev.Balance,
			"threshold": ev.Threshold,
		},
	})
}
