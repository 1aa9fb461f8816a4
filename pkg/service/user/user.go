// Package user manages user registration and profile updates.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/repository"
)

var validate = validator.New()

// Service manages users.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "user")}
}

// Register creates a user with the default role. The request is validated
// here so every entry point enforces the same rules, not just the HTTP
// handlers. Username and email must be unused.
func (s *Service) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserRead, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	u, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.Users()
		if err != nil {
			return err
		}
		if _, err := users.GetByUsername(ctx, req.Username); err == nil {
			return domain.ErrAlreadyExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if _, err := users.GetByEmail(ctx, req.Email); err == nil {
			return domain.ErrAlreadyExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return users.Create(ctx, u)
	})
	if err != nil {
		s.logger.Error("register failed", "username", req.Username, "error", err)
		return nil, err
	}
	s.logger.Info("user registered", "userID", u.ID)
	return dto.UserToRead(u), nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var u *domain.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.Users()
		if err != nil {
			return err
		}
		u, err = users.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto.UserToRead(u), nil
}
