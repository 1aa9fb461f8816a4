package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/schedule"
)

func scheduleRoutes(api fiber.Router, svc *schedule.Service, authSvc *auth.Service) {
	api.Get("/schedules", ListSchedules(svc, authSvc))
	api.Post("/schedules", CreateSchedule(svc, authSvc))
	api.Get("/schedules/:id", GetSchedule(svc, authSvc))
	api.Put("/schedules/:id", UpdateSchedule(svc, authSvc))
	api.Delete("/schedules/:id", DeleteSchedule(svc, authSvc))
	api.Put("/schedules/:id/toggle", ToggleSchedule(svc, authSvc))
}

// ListSchedules returns every recurring schedule of the caller.
func ListSchedules(svc *schedule.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		schedules, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.SchedulesToRead(schedules, time.Now()), "")
	}
}

// CreateSchedule adds a recurring schedule.
func CreateSchedule(svc *schedule.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.ScheduleCreate](c)
		if err != nil {
			return err
		}
		s, err := svc.Create(c.UserContext(), userID, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.ScheduleToRead(s, time.Now()), "schedule created")
	}
}

// GetSchedule returns one schedule by id.
func GetSchedule(svc *schedule.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		s, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.ScheduleToRead(s, time.Now()), "")
	}
}

// UpdateSchedule applies a partial update.
func UpdateSchedule(svc *schedule.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.ScheduleUpdate](c)
		if err != nil {
			return err
		}
		s, err := svc.Update(c.UserContext(), userID, id, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.ScheduleToRead(s, time.Now()), "schedule updated")
	}
}

// DeleteSchedule removes a schedule. Materialized transactions keep their
// dangling schedule reference.
func DeleteSchedule(svc *schedule.Service, authSvc *auth.Service) fiber.Handler {
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
		return SuccessJSON(c, fiber.StatusOK, nil, "schedule deleted")
	}
}

// ToggleSchedule flips a schedule between active and paused.
func ToggleSchedule(svc *schedule.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		s, err := svc.Toggle(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.ScheduleToRead(s, time.Now()), "schedule toggled")
	}
}
