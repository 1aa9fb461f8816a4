package webapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/alert"
	"github.com/tincan-finance/tincan/pkg/service/auth"
)

func alertRoutes(api fiber.Router, svc *alert.Service, authSvc *auth.Service) {
	api.Get("/alerts", ListAlerts(svc, authSvc))
	api.Post("/alerts", CreateAlert(svc, authSvc))
	api.Put("/alerts/read-all", MarkAllAlertsRead(svc, authSvc))
	api.Get("/alerts/:id", GetAlert(svc, authSvc))
	api.Put("/alerts/:id/read", MarkAlertRead(svc, authSvc))
	api.Put("/alerts/:id/dismiss", DismissAlert(svc, authSvc))
	api.Delete("/alerts/:id", DeleteAlert(svc, authSvc))
}

// ListAlerts returns the caller's alerts, dismissed ones only on request
// (?includeDismissed=true).
func ListAlerts(svc *alert.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		includeDismissed, _ := strconv.ParseBool(c.Query("includeDismissed"))
		alerts, err := svc.List(c.UserContext(), userID, includeDismissed)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.AlertsToRead(alerts), "")
	}
}

// CreateAlert raises an alert by hand.
func CreateAlert(svc *alert.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.AlertCreate](c)
		if err != nil {
			return err
		}
		a, err := svc.Create(c.UserContext(), userID, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.AlertToRead(a), "alert created")
	}
}

// GetAlert returns one alert by id.
func GetAlert(svc *alert.Service, authSvc *auth.Service) fiber.Handler {
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
		return SuccessJSON(c, fiber.StatusOK, dto.AlertToRead(a), "")
	}
}

// MarkAlertRead flags one alert as read.
func MarkAlertRead(svc *alert.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		a, err := svc.MarkRead(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.AlertToRead(a), "alert read")
	}
}

// MarkAllAlertsRead flags every unread alert of the caller.
func MarkAllAlertsRead(svc *alert.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		n, err := svc.MarkAllRead(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, fiber.Map{"updated": n}, "alerts read")
	}
}

// DismissAlert hides an alert from the default listing.
func DismissAlert(svc *alert.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		a, err := svc.Dismiss(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.AlertToRead(a), "alert dismissed")
	}
}

// DeleteAlert removes an alert outright.
func DeleteAlert(svc *alert.Service, authSvc *auth.Service) fiber.Handler {
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
		return SuccessJSON(c, fiber.StatusOK, nil, "alert deleted")
	}
}
