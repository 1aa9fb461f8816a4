// Package account manages money accounts and their delete guard.
package account

import (
	"context"
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

// Service manages a user's accounts.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates an account service. bus may be nil; the low-balance sweep then
// only logs.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger.With("service", "account")}
}

// Create adds an account for the user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req dto.AccountCreate) (*domain.Account, error) {
	a := &domain.Account{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        req.Name,
		Type:        domain.AccountType(req.Type),
		Balance:     req.Balance,
		Color:       req.Color,
		Institution: req.Institution,
		IsActive:    true,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		return accounts.Create(ctx, a)
	})
	if err != nil {
		s.logger.Error("create account failed", "userID", userID, "error", err)
		return nil, err
	}
	s.logger.Info("account created", "userID", userID, "accountID", a.ID)
	return a, nil
}

// Get returns one account owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error) {
	var a *domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		a, err = accounts.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List returns all accounts owned by the user.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	var out []*domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		out, err = accounts.ListByUser(ctx, userID)
		return err
	})
	return out, err
}

// Update applies the non-nil fields of req.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req dto.AccountUpdate) (*domain.Account, error) {
	var a *domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		a, err = accounts.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			a.Name = *req.Name
		}
		if req.Type != nil {
			a.Type = domain.AccountType(*req.Type)
		}
		if req.Balance != nil {
			a.Balance = *req.Balance
		}
		if req.Color != nil {
			a.Color = *req.Color
		}
		if req.Institution != nil {
			a.Institution = *req.Institution
		}
		if req.IsActive != nil {
			a.IsActive = *req.IsActive
		}
		if req.IsHidden != nil {
			a.IsHidden = *req.IsHidden
		}
		return accounts.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account updated", "userID", userID, "accountID", id)
	return a, nil
}

// Delete removes an account. Deletion is blocked while any transaction still
// references the account.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, userID, id); err != nil {
			return err
		}
		n, err := transactions.CountByAccount(ctx, userID, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: account has %d transactions", domain.ErrInUse, n)
		}
		return accounts.Delete(ctx, userID, id)
	})
	if err != nil {
		s.logger.Warn("delete account refused", "userID", userID, "accountID", id, "error", err)
		return err
	}
	s.logger.Info("account deleted", "userID", userID, "accountID", id)
	return nil
}

// CheckLowBalances emits a LowBalance event for every active account under
// the floor. Run by the scheduler; credit and loan accounts are skipped since
// negative balances are their normal state.
func (s *Service) CheckLowBalances(ctx context.Context, floor float64, now time.Time) error {
	var all []*domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		all, err = accounts.ListActiveAll(ctx)
		return err
	})
	if err != nil {
		return err
	}
	for _, a := range all {
		if a.Type == domain.AccountCredit || a.Type == domain.AccountLoan {
			continue
		}
		if a.Balance >= floor {
			continue
		}
		if s.bus == nil {
			s.logger.Warn("low balance", "accountID", a.ID, "balance", a.Balance)
			continue
		}
		e := events.LowBalance{
			UserID:      a.UserID,
			AccountID:   a.ID,
			AccountName: a.Name,
			Balance:     a.Balance,
			Threshold:   floor,
			OccurredAt:  now,
		}
		if err := s.bus.Emit(ctx, e); err != nil {
			s.logger.Error("event emit failed", "type", e.Type(), "error", err)
		}
	}
	return nil
}
