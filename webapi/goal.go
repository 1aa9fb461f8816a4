package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/goal"
)

func goalRoutes(api fiber.Router, svc *goal.Service, authSvc *auth.Service) {
	api.Get("/goals", ListGoals(svc, authSvc))
	api.Post("/goals", CreateGoal(svc, authSvc))
	api.Get("/goals/:id", GetGoal(svc, authSvc))
	api.Put("/goals/:id", UpdateGoal(svc, authSvc))
	api.Delete("/goals/:id", DeleteGoal(svc, authSvc))
	api.Post("/goals/:id/progress", AddGoalProgress(svc, authSvc))
}

// ListGoals returns every goal of the caller.
func ListGoals(svc *goal.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		goals, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.GoalsToRead(goals), "")
	}
}

// CreateGoal adds a savings goal.
func CreateGoal(svc *goal.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.GoalCreate](c)
		if err != nil {
			return err
		}
		g, err := svc.Create(c.UserContext(), userID, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.GoalToRead(g), "goal created")
	}
}

// GetGoal returns one goal by id.
func GetGoal(svc *goal.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		g, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.GoalToRead(g), "")
	}
}

// UpdateGoal applies a partial update; completion is re-derived when the
// target amount moves.
func UpdateGoal(svc *goal.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.GoalUpdate](c)
		if err != nil {
			return err
		}
		g, err := svc.Update(c.UserContext(), userID, id, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.GoalToRead(g), "goal updated")
	}
}

// DeleteGoal removes a goal.
func DeleteGoal(svc *goal.Service, authSvc *auth.Service) fiber.Handler {
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
		return SuccessJSON(c, fiber.StatusOK, nil, "goal deleted")
	}
}

// AddGoalProgress adds saved money to a goal and reports the new state.
func AddGoalProgress(svc *goal.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.GoalProgressAdd](c)
		if err != nil {
			return err
		}
		g, err := svc.AddProgress(c.UserContext(), userID, id, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.GoalToRead(g), "progress added")
	}
}
