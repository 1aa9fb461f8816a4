// Package transaction manages money movements: CRUD, filtered listing with
// pagination, and bulk deletion.
package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/repository"
)

// Service manages a user's transactions.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a transaction service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "transaction")}
}

// Create records a transaction. The referenced account, category and tags
// must exist and belong to the user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req dto.TransactionCreate) (*domain.Transaction, error) {
	reviewed := true
	if req.IsReviewed != nil {
		reviewed = *req.IsReviewed
	}
	t := &domain.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Notes:       req.Notes,
		TagIDs:      req.TagIDs,
		IsReviewed:  reviewed,
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
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, userID, req.AccountID); err != nil {
			return fmt.Errorf("account: %w", err)
		}
		if _, err := categories.Get(ctx, userID, req.CategoryID); err != nil {
			return fmt.Errorf("category: %w", err)
		}
		if err := checkTags(ctx, uow, userID, req.TagIDs); err != nil {
			return err
		}
		return transactions.Create(ctx, t)
	})
	if err != nil {
		s.logger.Error("create transaction failed", "userID", userID, "error", err)
		return nil, err
	}
	s.logger.Info("transaction created", "userID", userID, "transactionID", t.ID, "amount", t.Amount)
	return t, nil
}

// checkTags verifies every referenced tag exists and belongs to the user.
func checkTags(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	tags, err := uow.Tags()
	if err != nil {
		return err
	}
	for _, id := range tagIDs {
		if _, err := tags.Get(ctx, userID, id); err != nil {
			return fmt.Errorf("tag %s: %w", id, err)
		}
	}
	return nil
}

// Get returns one transaction owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error) {
	var t *domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		t, err = transactions.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns one page of the user's transactions plus the total match
// count for pagination.
func (s *Service) List(ctx context.Context, userID uuid.UUID, q dto.TransactionQuery) ([]*domain.Transaction, int64, error) {
	q.Normalize()
	filter := repository.TransactionFilter{
		Search:     q.Search,
		AccountID:  q.AccountID,
		CategoryID: q.CategoryID,
		TagID:      q.TagID,
		StartDate:  q.StartDate,
		EndDate:    q.EndDate,
		MinAmount:  q.MinAmount,
		MaxAmount:  q.MaxAmount,
		IsReviewed: q.IsReviewed,
		SortBy:     q.SortBy,
		SortOrder:  q.SortOrder,
		Offset:     (q.Page - 1) * q.Limit,
		Limit:      q.Limit,
	}
	var (
		out   []*domain.Transaction
		total int64
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		out, total, err = transactions.List(ctx, userID, filter)
		return err
	})
	return out, total, err
}

// Update applies the non-nil fields of req. Changed account/category
// references are re-checked for ownership.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req dto.TransactionUpdate) (*domain.Transaction, error) {
	var t *domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		t, err = transactions.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if req.AccountID != nil {
			accounts, err := uow.Accounts()
			if err != nil {
				return err
			}
			if _, err := accounts.Get(ctx, userID, *req.AccountID); err != nil {
				return fmt.Errorf("account: %w", err)
			}
			t.AccountID = *req.AccountID
		}
		if req.CategoryID != nil {
			categories, err := uow.Categories()
			if err != nil {
				return err
			}
			if _, err := categories.Get(ctx, userID, *req.CategoryID); err != nil {
				return fmt.Errorf("category: %w", err)
			}
			t.CategoryID = *req.CategoryID
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Amount != nil {
			t.Amount = *req.Amount
		}
		if req.Date != nil {
			t.Date = *req.Date
		}
		if req.Notes != nil {
			t.Notes = *req.Notes
		}
		if req.TagIDs != nil {
			if err := checkTags(ctx, uow, userID, *req.TagIDs); err != nil {
				return err
			}
			t.TagIDs = *req.TagIDs
		}
		if req.IsReviewed != nil {
			t.IsReviewed = *req.IsReviewed
		}
		return transactions.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("transaction updated", "userID", userID, "transactionID", id)
	return t, nil
}

// Delete removes one transaction.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		if _, err := transactions.Get(ctx, userID, id); err != nil {
			return err
		}
		return transactions.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("transaction deleted", "userID", userID, "transactionID", id)
	return nil
}

// BulkDelete removes several transactions in one transaction boundary and
// returns how many were deleted. IDs not owned by the user are skipped, not
// errors.
func (s *Service) BulkDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	var deleted int64
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		deleted, err = transactions.DeleteMany(ctx, userID, ids)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("transactions bulk-deleted", "userID", userID, "requested", len(ids), "deleted", deleted)
	return deleted, nil
}

// Duplicate copies an existing transaction with a fresh id and today's date
// left as the original's.
func (s *Service) Duplicate(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error) {
	var copyT *domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		orig, err := transactions.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		c := *orig
		c.ID = uuid.New()
		c.ScheduleID = nil
		copyT = &c
		return transactions.Create(ctx, copyT)
	})
	if err != nil {
		return nil, err
	}
	return copyT, nil
}
