package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/budget"
)

func budgetRoutes(api fiber.Router, svc *budget.Service, authSvc *auth.Service) {
	api.Get("/budgets", ListBudgets(svc, authSvc))
	api.Post("/budgets", CreateBudget(svc, authSvc))
	api.Get("/budgets/:id", GetBudget(svc, authSvc))
	api.Put("/budgets/:id", UpdateBudget(svc, authSvc))
	api.Delete("/budgets/:id", DeleteBudget(svc, authSvc))
	api.Get("/budgets/:id/progress", BudgetProgress(svc, authSvc))
}

// ListBudgets returns every budget of the caller.
func ListBudgets(svc *budget.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		budgets, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.BudgetsToRead(budgets), "")
	}
}

// CreateBudget adds a budget bound to a category the caller owns.
func CreateBudget(svc *budget.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.BudgetCreate](c)
		if err != nil {
			return err
		}
		b, err := svc.Create(c.UserContext(), userID, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.BudgetToRead(b), "budget created")
	}
}

// GetBudget returns one budget by id.
func GetBudget(svc *budget.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		b, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.BudgetToRead(b), "")
	}
}

// UpdateBudget applies a partial update.
func UpdateBudget(svc *budget.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.BudgetUpdate](c)
		if err != nil {
			return err
		}
		b, err := svc.Update(c.UserContext(), userID, id, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.BudgetToRead(b), "budget updated")
	}
}

// DeleteBudget removes a budget.
func DeleteBudget(svc *budget.Service, authSvc *auth.Service) fiber.Handler {
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
		return SuccessJSON(c, fiber.StatusOK, nil, "budget deleted")
	}
}

// BudgetProgress returns the spend progress for one budget's current window.
func BudgetProgress(svc *budget.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		p, err := svc.Progress(c.UserContext(), userID, id, time.Now())
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, p, "")
	}
}
