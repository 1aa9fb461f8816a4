// Package auth issues and resolves JWTs and checks credentials against the
// user store.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/config"
	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/repository"
)

// Service authenticates users and mints tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth service.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger.With("service", "auth")}
}

// Login resolves identity (username or email) and password to a user.
// A bad identity and a bad password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, identity, password string) (*dto.UserRead, error) {
	log := s.logger.With("context", "Login")
	var u *domain.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.Users()
		if err != nil {
			return err
		}
		if domain.IsEmail(identity) {
			u, err = users.GetByEmail(ctx, identity)
		} else {
			u, err = users.GetByUsername(ctx, identity)
		}
		return err
	})
	if err != nil {
		log.Warn("login failed: unknown identity", "identity", identity)
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.CheckPasswordHash(password, u.Password) {
		log.Warn("login failed: bad password", "userID", u.ID)
		return nil, domain.ErrInvalidCredentials
	}
	log.Info("login successful", "userID", u.ID)
	return dto.UserToRead(u), nil
}

// GenerateToken mints a signed JWT for the user.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID.String(),
		"email": u.Email,
		"role":  u.Role,
		"exp":   time.Now().Add(s.cfg.Expiry).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("token signing failed", "error", err)
		return "", err
	}
	return signed, nil
}

// CurrentUserID extracts the authenticated user's id from a verified token.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: unexpected claims type", domain.ErrUnauthorized)
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing subject", domain.ErrUnauthorized)
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed subject", domain.ErrUnauthorized)
	}
	return id, nil
}

// CurrentRole extracts the role claim; missing role defaults to user.
func (s *Service) CurrentRole(token *jwt.Token) domain.Role {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.RoleUser
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		return domain.Role(role)
	}
	return domain.RoleUser
}
