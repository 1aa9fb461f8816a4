package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/account"
	"github.com/tincan-finance/tincan/pkg/service/auth"
)

func accountRoutes(api fiber.Router, svc *account.Service, authSvc *auth.Service) {
	api.Get("/accounts", ListAccounts(svc, authSvc))
	api.Post("/accounts", CreateAccount(svc, authSvc))
	api.Get("/accounts/:id", GetAccount(svc, authSvc))
	api.Put("/accounts/:id", UpdateAccount(svc, authSvc))
	api.Delete("/accounts/:id", DeleteAccount(svc, authSvc))
}

// ListAccounts returns every account of the caller.
func ListAccounts(svc *account.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		accounts, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.AccountsToRead(accounts), "")
	}
}

// CreateAccount adds an account for the caller.
func CreateAccount(svc *account.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.AccountCreate](c)
		if err != nil {
			return err
		}
		a, err := svc.Create(c.UserContext(), userID, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.AccountToRead(a), "account created")
	}
}

// GetAccount returns one account by id.
func GetAccount(svc *account.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		a, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.AccountToRead(a), "")
	}
}

// UpdateAccount applies a partial update.
func UpdateAccount(svc *account.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.AccountUpdate](c)
		if err != nil {
			return err
		}
		a, err := svc.Update(c.UserContext(), userID, id, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.AccountToRead(a), "account updated")
	}
}

// DeleteAccount removes an account. Accounts with transactions are refused.
func DeleteAccount(svc *account.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), userID, id); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, nil, "account deleted")
	}
}
