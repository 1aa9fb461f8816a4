// Package schedule manages recurring obligations and materializes the
// transactions they are due to produce.
package schedule

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

// Service manages recurring schedules.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a schedule service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger.With("service", "schedule")}
}

// Create adds a schedule. Account and category must belong to the user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req dto.ScheduleCreate) (*domain.Schedule, error) {
	sc := &domain.Schedule{
		ID:         uuid.New(),
		UserID:     userID,
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Amount:     req.Amount,
		Type:       domain.ScheduleType(req.Type),
		Frequency:  domain.Frequency(req.Frequency),
		CustomDays: req.CustomDays,
		NextDate:   req.NextDate,
		EndDate:    req.EndDate,
		IsActive:   true,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		schedules, err := uow.Schedules()
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, userID, req.AccountID); err != nil {
			return err
		}
		if _, err := categories.Get(ctx, userID, req.CategoryID); err != nil {
			return err
		}
		return schedules.Create(ctx, sc)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("schedule created", "userID", userID, "scheduleID", sc.ID, "frequency", sc.Frequency)
	return sc, nil
}

// Get returns one schedule owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Schedule, error) {
	var sc *domain.Schedule
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		schedules, err := uow.Schedules()
		if err != nil {
			return err
		}
		sc, err = schedules.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// List returns all of a user's schedules.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Schedule, error) {
	var out []*domain.Schedule
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		schedules, err := uow.Schedules()
		if err != nil {
			return err
		}
		out, err = schedules.ListByUser(ctx, userID)
		return err
	})
	return out, err
}

// Update applies the non-nil fields of req.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req dto.ScheduleUpdate) (*domain.Schedule, error) {
	var sc *domain.Schedule
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		schedules, err := uow.Schedules()
		if err != nil {
			return err
		}
		sc, err = schedules.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if req.AccountID != nil {
			accounts, err := uow.Accounts()
			if err != nil {
				return err
			}
			if _, err := accounts.Get(ctx, userID, *req.AccountID); err != nil {
				return err
			}
			sc.AccountID = *req.AccountID
		}
		if req.CategoryID != nil {
			categories, err := uow.Categories()
			if err != nil {
				return err
			}
			if _, err := categories.Get(ctx, userID, *req.CategoryID); err != nil {
				return err
			}
			sc.CategoryID = *req.CategoryID
		}
		if req.Name != nil {
			sc.Name = *req.Name
		}
		if req.Amount != nil {
			sc.Amount = *req.Amount
		}
		if req.Type != nil {
			sc.Type = domain.ScheduleType(*req.Type)
		}
		if req.Frequency != nil {
			sc.Frequency = domain.Frequency(*req.Frequency)
		}
		if req.CustomDays != nil {
			sc.CustomDays = *req.CustomDays
		}
		if req.NextDate != nil {
			sc.NextDate = *req.NextDate
		}
		if req.EndDate != nil {
			sc.EndDate = req.EndDate
		}
		if req.IsActive != nil {
			sc.IsActive = *req.IsActive
		}
		return schedules.Update(ctx, sc)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("schedule updated", "userID", userID, "scheduleID", id)
	return sc, nil
}

// Delete removes one schedule. Transactions it already materialized keep
// their ScheduleID reference.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		schedules, err := uow.Schedules()
		if err != nil {
			return err
		}
		if _, err := schedules.Get(ctx, userID, id); err != nil {
			return err
		}
		return schedules.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("schedule deleted", "userID", userID, "scheduleID", id)
	return nil
}

// Toggle flips a schedule's active flag.
func (s *Service) Toggle(ctx context.Context, userID, id uuid.UUID) (*domain.Schedule, error) {
	var sc *domain.Schedule
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		schedules, err := uow.Schedules()
		if err != nil {
			return err
		}
		sc, err = schedules.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		sc.IsActive = !sc.IsActive
		return schedules.Update(ctx, sc)
	})
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// Summary groups a user's schedules by frequency and totals recurring income
// and expenses.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (report.RecurringSummary, error) {
	schedules, err := s.List(ctx, userID)
	if err != nil {
		return report.RecurringSummary{}, err
	}
	return report.Recurring(schedules), nil
}

// ProcessDue materializes every schedule due on day: inserts the transaction,
// advances the next date, and deactivates expired schedules. Each schedule is
// processed in its own transaction boundary so one failure does not hold back
// the rest. Returns how many transactions were created.
func (s *Service) ProcessDue(ctx context.Context, day time.Time) (int, error) {
	var due []*domain.Schedule
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		schedules, err := uow.Schedules()
		if err != nil {
			return err
		}
		due, err = schedules.ListDue(ctx, day)
		return err
	})
	if err != nil {
		return 0, err
	}

	created := 0
	for _, sc := range due {
		made, err := s.materialize(ctx, sc, day)
		if err != nil {
			s.logger.Error("schedule processing failed", "scheduleID", sc.ID, "error", err)
			continue
		}
		if made {
			created++
		}
	}
	if created > 0 {
		s.logger.Info("due schedules processed", "due", len(due), "created", created)
	}
	return created, nil
}

// materialize runs one schedule occurrence atomically: the transaction insert
// and the schedule advance commit or roll back together. Reports whether a
// transaction was created; an expired schedule is only deactivated.
func (s *Service) materialize(ctx context.Context, sc *domain.Schedule, day time.Time) (bool, error) {
	var t *domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		schedules, err := uow.Schedules()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}

		if sc.ExpiredAt(day) {
			sc.IsActive = false
			return schedules.Update(ctx, sc)
		}

		id := sc.ID
		t = &domain.Transaction{
			ID:          uuid.New(),
			UserID:      sc.UserID,
			AccountID:   sc.AccountID,
			CategoryID:  sc.CategoryID,
			ScheduleID:  &id,
			Description: sc.Name,
			Amount:      sc.SignedAmount(),
			Date:        sc.NextDate,
			IsReviewed:  false,
		}
		if err := transactions.Create(ctx, t); err != nil {
			return err
		}

		sc.NextDate = sc.NextAfter(sc.NextDate)
		now := day
		sc.LastProcessed = &now
		if !sc.Repeats() || sc.ExpiredAt(sc.NextDate) {
			sc.IsActive = false
		}
		return schedules.Update(ctx, sc)
	})
	if err != nil {
		return false, err
	}
	if t != nil && s.bus != nil {
		e := events.ScheduleMaterialized{
			UserID:        sc.UserID,
			ScheduleID:    sc.ID,
			ScheduleName:  sc.Name,
			TransactionID: t.ID,
			Amount:        t.Amount,
			NextDate:      sc.NextDate,
			OccurredAt:    day,
		}
		if err := s.bus.Emit(ctx, e); err != nil {
			s.logger.Error("event emit failed", "type", e.Type(), "error", err)
		}
	}
	return t != nil, nil
}
