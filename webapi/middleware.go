package webapi

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/config"
	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/service/auth"
)

// JwtProtected verifies the bearer token and stores it in c.Locals("user").
// Missing or malformed tokens get the 401 envelope.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return ErrorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
}

// currentUser resolves the authenticated user's id from the verified token.
func currentUser(c *fiber.Ctx, authSvc *auth.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, DomainErrorJSON(c, domain.ErrUnauthorized)
	}
	id, err := authSvc.CurrentUserID(token)
	if err != nil {
		return uuid.Nil, DomainErrorJSON(c, err)
	}
	return id, nil
}

// RequireRole rejects callers whose token carries a different role.
func RequireRole(authSvc *auth.Service, role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return DomainErrorJSON(c, domain.ErrUnauthorized)
		}
		if authSvc.CurrentRole(token) != role {
			return DomainErrorJSON(c, domain.ErrForbidden)
		}
		return c.Next()
	}
}
