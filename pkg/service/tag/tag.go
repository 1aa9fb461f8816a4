// Package tag manages transaction labels.
package tag

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/repository"
)

// Service manages a user's tags.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a tag service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "tag")}
}

// Create adds a tag. Names are unique per user, case-insensitively.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req dto.TagCreate) (*domain.Tag, error) {
	t := &domain.Tag{
		ID:     uuid.New(),
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tags, err := uow.Tags()
		if err != nil {
			return err
		}
		existing, err := tags.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if strings.EqualFold(e.Name, req.Name) {
				return domain.ErrAlreadyExists
			}
		}
		return tags.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("tag created", "userID", userID, "tagID", t.ID, "name", t.Name)
	return t, nil
}

// Get returns one tag owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Tag, error) {
	var t *domain.Tag
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tags, err := uow.Tags()
		if err != nil {
			return err
		}
		t, err = tags.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all of a user's tags.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	var out []*domain.Tag
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tags, err := uow.Tags()
		if err != nil {
			return err
		}
		out, err = tags.ListByUser(ctx, userID)
		return err
	})
	return out, err
}

// Update applies the non-nil fields of req.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req dto.TagUpdate) (*domain.Tag, error) {
	var t *domain.Tag
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tags, err := uow.Tags()
		if err != nil {
			return err
		}
		t, err = tags.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			existing, err := tags.ListByUser(ctx, userID)
			if err != nil {
				return err
			}
			for _, e := range existing {
				if e.ID != id && strings.EqualFold(e.Name, *req.Name) {
					return domain.ErrAlreadyExists
				}
			}
			t.Name = *req.Name
		}
		if req.Color != nil {
			t.Color = *req.Color
		}
		return tags.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a tag. References from transactions are dropped by the
// repository, not blocked.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tags, err := uow.Tags()
		if err != nil {
			return err
		}
		if _, err := tags.Get(ctx, userID, id); err != nil {
			return err
		}
		return tags.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("tag deleted", "userID", userID, "tagID", id)
	return nil
}
