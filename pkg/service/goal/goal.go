// Package goal manages savings targets and their derived progress.
package goal

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/domain/events"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/eventbus"
	"github.com/tincan-finance/tincan/pkg/report"
	"github.com/tincan-finance/tincan/pkg/repository"
)

// Service manages a user's savings goals.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a goal service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger.With("service", "goal")}
}

// Create adds a goal starting at zero saved.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req dto.GoalCreate) (*domain.Goal, error) {
	g := &domain.Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals, err := uow.Goals()
		if err != nil {
			return err
		}
		return goals.Create(ctx, g)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("goal created", "userID", userID, "goalID", g.ID, "target", g.TargetAmount)
	return g, nil
}

// Get returns one goal owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Goal, error) {
	var g *domain.Goal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals, err := uow.Goals()
		if err != nil {
			return err
		}
		g, err = goals.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// List returns all of a user's goals.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	var out []*domain.Goal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals, err := uow.Goals()
		if err != nil {
			return err
		}
		out, err = goals.ListByUser(ctx, userID)
		return err
	})
	return out, err
}

// Update applies the non-nil fields of req. Raising the target can reopen a
// completed goal; completion is re-derived from the new numbers.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req dto.GoalUpdate) (*domain.Goal, error) {
	var g *domain.Goal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals, err := uow.Goals()
		if err != nil {
			return err
		}
		g, err = goals.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			g.Name = *req.Name
		}
		if req.Description != nil {
			g.Description = *req.Description
		}
		if req.TargetAmount != nil {
			g.TargetAmount = *req.TargetAmount
			g.IsCompleted = g.CurrentAmount >= g.TargetAmount
		}
		if req.TargetDate != nil {
			g.TargetDate = *req.TargetDate
		}
		return goals.Update(ctx, g)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("goal updated", "userID", userID, "goalID", id)
	return g, nil
}

// Delete removes one goal.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals, err := uow.Goals()
		if err != nil {
			return err
		}
		if _, err := goals.Get(ctx, userID, id); err != nil {
			return err
		}
		return goals.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("goal deleted", "userID", userID, "goalID", id)
	return nil
}

// AddProgress adds saved money to a goal and emits GoalReached the first time
// the target is crossed.
func (s *Service) AddProgress(ctx context.Context, userID, id uuid.UUID, req dto.GoalProgressAdd) (*domain.Goal, error) {
	var (
		g       *domain.Goal
		reached bool
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals, err := uow.Goals()
		if err != nil {
			return err
		}
		g, err = goals.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		reached = g.AddProgress(req.Amount)
		return goals.Update(ctx, g)
	})
	if err != nil {
		return nil, err
	}
	if reached && s.bus != nil {
		e := events.GoalReached{
			UserID:     userID,
			GoalID:     g.ID,
			GoalName:   g.Name,
			Target:     g.TargetAmount,
			OccurredAt: time.Now(),
		}
		if err := s.bus.Emit(ctx, e); err != nil {
			s.logger.Error("event emit failed", "type", e.Type(), "error", err)
		}
	}
	s.logger.Info("goal progress added", "userID", userID, "goalID", id, "amount", req.Amount, "completed", reached)
	return g, nil
}

// Progress evaluates every goal of the user at now.
func (s *Service) Progress(ctx context.Context, userID uuid.UUID, now time.Time) ([]report.GoalProgress, error) {
	goals, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]report.GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, report.GoalProgressAt(g, now))
	}
	return out, nil
}
