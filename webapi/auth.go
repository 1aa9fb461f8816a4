package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tincan-finance/tincan/pkg/config"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/user"
)

func authRoutes(api fiber.Router, cfg *config.Jwt, authSvc *auth.Service, userSvc *user.Service) {
	api.Post("/auth/register", Register(userSvc, authSvc))
	api.Post("/auth/login", Login(authSvc))
	api.Get("/auth/me", JwtProtected(cfg), Me(userSvc, authSvc))
}

// Register creates a user and returns it with a fresh token.
func Register(userSvc *user.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[dto.RegisterRequest](c)
		if err != nil {
			return err
		}
		u, err := userSvc.Register(c.UserContext(), *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.TokenResponse{Token: token, User: u}, "registered")
	}
}

// Login exchanges credentials for a JWT.
func Login(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[dto.LoginRequest](c)
		if err != nil {
			return err
		}
		u, err := authSvc.Login(c.UserContext(), req.Identity, req.Password)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.TokenResponse{Token: token, User: u}, "logged in")
	}
}

// Me returns the authenticated user's profile.
func Me(userSvc *user.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		u, err := userSvc.Get(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, u, "")
	}
}
