// Package budget manages spending caps and evaluates their progress,
// publishing threshold events the alert service turns into notifications.
package budget

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

// Service manages a user's budgets.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a budget service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger.With("service", "budget")}
}

// Create adds a budget against an existing category of the user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req dto.BudgetCreate) (*domain.Budget, error) {
	b := &domain.Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Amount:     req.Amount,
		Period:     domain.BudgetPeriod(req.Period),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		IsActive:   true,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		budgets, err := uow.Budgets()
		if err != nil {
			return err
		}
		if _, err := categories.Get(ctx, userID, req.CategoryID); err != nil {
			return err
		}
		return budgets.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("budget created", "userID", userID, "budgetID", b.ID, "amount", b.Amount)
	return b, nil
}

// Get returns one budget owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Budget, error) {
	var b *domain.Budget
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.Budgets()
		if err != nil {
			return err
		}
		b, err = budgets.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List returns all of a user's budgets.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Budget, error) {
	var out []*domain.Budget
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.Budgets()
		if err != nil {
			return err
		}
		out, err = budgets.ListByUser(ctx, userID)
		return err
	})
	return out, err
}

// Update applies the non-nil fields of req. A changed category is re-checked
// for ownership.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req dto.BudgetUpdate) (*domain.Budget, error) {
	var b *domain.Budget
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.Budgets()
		if err != nil {
			return err
		}
		b, err = budgets.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if req.CategoryID != nil {
			categories, err := uow.Categories()
			if err != nil {
				return err
			}
			if _, err := categories.Get(ctx, userID, *req.CategoryID); err != nil {
				return err
			}
			b.CategoryID = *req.CategoryID
		}
		if req.Name != nil {
			b.Name = *req.Name
		}
		if req.Amount != nil {
			b.Amount = *req.Amount
		}
		if req.Period != nil {
			b.Period = domain.BudgetPeriod(*req.Period)
		}
		if req.StartDate != nil {
			b.StartDate = req.StartDate
		}
		if req.EndDate != nil {
			b.EndDate = req.EndDate
		}
		if req.IsActive != nil {
			b.IsActive = *req.IsActive
		}
		return budgets.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("budget updated", "userID", userID, "budgetID", id)
	return b, nil
}

// Delete removes one budget.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.Budgets()
		if err != nil {
			return err
		}
		if _, err := budgets.Get(ctx, userID, id); err != nil {
			return err
		}
		return budgets.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("budget deleted", "userID", userID, "budgetID", id)
	return nil
}

// Progress evaluates one budget against the user's transactions at now.
func (s *Service) Progress(ctx context.Context, userID, id uuid.UUID, now time.Time) (report.BudgetProgress, error) {
	var p report.BudgetProgress
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.Budgets()
		if err != nil {
			return err
		}
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		b, err := budgets.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		cats, err := categories.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		txs, err := transactions.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		p = report.Progress(b, cats, txs, now)
		return nil
	})
	return p, err
}

// ProgressAll evaluates every active budget of the user at now.
func (s *Service) ProgressAll(ctx context.Context, userID uuid.UUID, now time.Time) ([]report.BudgetProgress, error) {
	var out []report.BudgetProgress
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.Budgets()
		if err != nil {
			return err
		}
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		bs, err := budgets.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		cats, err := categories.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		txs, err := transactions.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		out = report.ProgressAll(bs, cats, txs, now)
		return nil
	})
	return out, err
}

// CheckThresholds evaluates every active budget across all users and emits
// events for the ones over or near their cap. Run by the scheduler.
func (s *Service) CheckThresholds(ctx context.Context, now time.Time) error {
	var all []*domain.Budget
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.Budgets()
		if err != nil {
			return err
		}
		all, err = budgets.ListActiveAll(ctx)
		return err
	})
	if err != nil {
		return err
	}

	// Evaluate per user so each user's transactions are loaded once.
	users := make(map[uuid.UUID]bool)
	for _, b := range all {
		users[b.UserID] = true
	}

	for userID := range users {
		progress, err := s.ProgressAll(ctx, userID, now)
		if err != nil {
			s.logger.Error("budget check failed", "userID", userID, "error", err)
			continue
		}
		for _, p := range progress {
			switch p.Status {
			case report.StatusOver:
				s.emit(ctx, events.BudgetExceeded{
					UserID:     userID,
					BudgetID:   p.BudgetID,
					BudgetName: p.Name,
					Amount:     p.Amount,
					Spent:      p.Spent,
					Percentage: p.Percentage,
					OccurredAt: now,
				})
			case report.StatusNearLimit:
				s.emit(ctx, events.BudgetNearLimit{
					UserID:     userID,
					BudgetID:   p.BudgetID,
					BudgetName: p.Name,
					Amount:     p.Amount,
					Spent:      p.Spent,
					Percentage: p.Percentage,
					OccurredAt: now,
				})
			}
		}
	}
	return nil
}

func (s *Service) emit(ctx context.Context, e eventbus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Error("event emit failed", "type", e.Type(), "error", err)
	}
}
