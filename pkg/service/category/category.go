// Package category manages the per-user category trees: CRUD with cycle
// rejection, delete guards, and merging.
package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/repository"
)

// Service manages categories.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a category service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "category")}
}

// Create adds a category. A parent, when given, must exist and belong to the
// same user; the new node cannot introduce a cycle because it has no children
// yet.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req dto.CategoryCreate) (*domain.Category, error) {
	c := &domain.Category{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     req.Name,
		Color:    req.Color,
		Type:     domain.CategoryType(req.Type),
		ParentID: req.ParentID,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		if req.ParentID != nil {
			parent, err := categories.Get(ctx, userID, *req.ParentID)
			if err != nil {
				return fmt.Errorf("parent: %w", err)
			}
			// children inherit the tree they are planted in
			c.Type = parent.Type
		}
		return categories.Create(ctx, c)
	})
	if err != nil {
		s.logger.Error("create category failed", "userID", userID, "error", err)
		return nil, err
	}
	return c, nil
}

// Get returns one category owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	var c *domain.Category
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		c, err = categories.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the user's full category set.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	var out []*domain.Category
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		out, err = categories.ListByUser(ctx, userID)
		return err
	})
	return out, err
}

// Update applies the non-nil fields of req. A reparent that would introduce a
// cycle is rejected with ErrCategoryCycle.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req dto.CategoryUpdate) (*domain.Category, error) {
	var c *domain.Category
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		c, err = categories.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Color != nil {
			c.Color = *req.Color
		}
		if req.ParentID != nil {
			all, err := categories.ListByUser(ctx, userID)
			if err != nil {
				return err
			}
			if domain.WouldCycle(all, id, *req.ParentID) {
				return domain.ErrCategoryCycle
			}
			if _, err := categories.Get(ctx, userID, *req.ParentID); err != nil {
				return fmt.Errorf("parent: %w", err)
			}
			c.ParentID = req.ParentID
		}
		return categories.Update(ctx, c)
	})
	if err != nil {
		s.logger.Warn("update category refused", "userID", userID, "categoryID", id, "error", err)
		return nil, err
	}
	return c, nil
}

// Delete removes a category. Blocked while transactions reference it or
// while it still has child categories, which transitively protects descendant
// transactions.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		if _, err := categories.Get(ctx, userID, id); err != nil {
			return err
		}
		n, err := transactions.CountByCategory(ctx, userID, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: category has %d transactions", domain.ErrInUse, n)
		}
		all, err := categories.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if children := domain.ChildIDs(all, id); len(children) > 0 {
			return fmt.Errorf("%w: category has %d subcategories", domain.ErrInUse, len(children))
		}
		return categories.Delete(ctx, userID, id)
	})
	if err != nil {
		s.logger.Warn("delete category refused", "userID", userID, "categoryID", id, "error", err)
		return err
	}
	s.logger.Info("category deleted", "userID", userID, "categoryID", id)
	return nil
}

// Merge moves every transaction of source to target, then deletes source.
// Both steps run in one transaction boundary.
func (s *Service) Merge(ctx context.Context, userID, sourceID, targetID uuid.UUID) error {
	if sourceID == targetID {
		return fmt.Errorf("%w: cannot merge a category into itself", domain.ErrValidation)
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		if _, err := categories.Get(ctx, userID, sourceID); err != nil {
			return fmt.Errorf("source: %w", err)
		}
		if _, err := categories.Get(ctx, userID, targetID); err != nil {
			return fmt.Errorf("target: %w", err)
		}
		all, err := categories.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if children := domain.ChildIDs(all, sourceID); len(children) > 0 {
			return fmt.Errorf("%w: merge source has %d subcategories", domain.ErrInUse, len(children))
		}
		if err := transactions.ReassignCategory(ctx, userID, sourceID, targetID); err != nil {
			return err
		}
		return categories.Delete(ctx, userID, sourceID)
	})
	if err != nil {
		s.logger.Warn("merge categories refused", "userID", userID, "source", sourceID, "target", targetID, "error", err)
		return err
	}
	s.logger.Info("categories merged", "userID", userID, "source", sourceID, "target", targetID)
	return nil
}

// SeedDefaults creates the two root categories every user starts with.
// Idempotent: roots that already exist are left alone.
func (s *Service) SeedDefaults(ctx context.Context, userID uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.Categories()
		if err != nil {
			return err
		}
		all, err := categories.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		hasRoot := map[domain.CategoryType]bool{}
		for _, c := range all {
			if c.IsRoot() {
				hasRoot[c.Type] = true
			}
		}
		defaults := []struct {
			name  string
			ctype domain.CategoryType
			color string
		}{
			{"Income", domain.CategoryIncome, "#4ADE80"},
			{"Expenses", domain.CategoryExpense, "#F87171"},
		}
		for _, d := range defaults {
			if hasRoot[d.ctype] {
				continue
			}
			root := &domain.Category{
				ID:     uuid.New(),
				UserID: userID,
				Name:   d.name,
				Color:  d.color,
				Type:   d.ctype,
			}
			if err := categories.Create(ctx, root); err != nil {
				return err
			}
		}
		return nil
	})
}
