package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/budget"
	"github.com/tincan-finance/tincan/pkg/service/reports"
	"github.com/tincan-finance/tincan/pkg/service/schedule"
)

func reportRoutes(api fiber.Router, svc *reports.Service, budgets *budget.Service, schedules *schedule.Service, authSvc *auth.Service) {
	api.Get("/reports/dashboard", DashboardReport(svc, authSvc))
	api.Get("/reports/budgets", BudgetsReport(budgets, authSvc))
	api.Get("/reports/cashflow", CashFlowReport(svc, authSvc))
	api.Get("/reports/categories", CategoriesReport(svc, authSvc))
	api.Get("/reports/categories/:id", CategoryReport(svc, authSvc))
	api.Get("/reports/schedules", SchedulesReport(schedules, authSvc))
}

// DashboardReport returns the current-month overview.
func DashboardReport(svc *reports.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		summary, err := svc.Dashboard(c.UserContext(), userID, time.Now())
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, summary, "")
	}
}

// BudgetsReport returns progress for every budget in its current window.
func BudgetsReport(budgets *budget.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		progress, err := budgets.ProgressAll(c.UserContext(), userID, time.Now())
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, progress, "")
	}
}

// CashFlowReport buckets income and expense over the requested range. The
// bucket size grows with the span: daily up to a month, weekly up to a
// quarter, monthly beyond.
func CashFlowReport(svc *reports.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		start, end, bad := parseDateRange(c)
		if bad != nil {
			return ErrorJSON(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid date range", bad)
		}
		buckets, err := svc.CashFlow(c.UserContext(), userID, start, end)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, buckets, "")
	}
}

// parseDateRange reads startDate/endDate, defaulting to the last 30 days.
func parseDateRange(c *fiber.Ctx) (start, end time.Time, bad []fiber.Map) {
	parse := func(name string, fallback time.Time) time.Time {
		s := c.Query(name)
		if s == "" {
			return fallback
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			if t, err = time.Parse("2006-01-02", s); err != nil {
				bad = append(bad, fiber.Map{"field": name, "constraint": "RFC3339 or YYYY-MM-DD date"})
				return fallback
			}
		}
		return t
	}
	now := time.Now()
	start = parse("startDate", now.AddDate(0, 0, -30))
	end = parse("endDate", now)
	if bad == nil && end.Before(start) {
		bad = append(bad, fiber.Map{"field": "endDate", "constraint": "gtefield=startDate"})
	}
	return start, end, bad
}

// CategoriesReport returns roll-up totals for every root category.
func CategoriesReport(svc *reports.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		rollups, err := svc.CategoryRollups(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, rollups, "")
	}
}

// CategoryReport returns the roll-up for one category subtree.
func CategoryReport(svc *reports.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		rollup, err := svc.CategoryRollup(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, rollup, "")
	}
}

// SchedulesReport groups schedules by frequency and totals the recurring
// monthly income and expense.
func SchedulesReport(schedules *schedule.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		summary, err := schedules.Summary(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, summary, "")
	}
}
