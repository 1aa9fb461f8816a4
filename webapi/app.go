// Package webapi wires the HTTP surface: one Fiber app, JWT-protected
// /api routes, and the success/error envelope every handler speaks.
package webapi

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/tincan-finance/tincan/pkg/config"
	"github.com/tincan-finance/tincan/pkg/service/account"
	"github.com/tincan-finance/tincan/pkg/service/alert"
	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/backup"
	"github.com/tincan-finance/tincan/pkg/service/budget"
	"github.com/tincan-finance/tincan/pkg/service/category"
	"github.com/tincan-finance/tincan/pkg/service/crypto"
	"github.com/tincan-finance/tincan/pkg/service/goal"
	"github.com/tincan-finance/tincan/pkg/service/reports"
	"github.com/tincan-finance/tincan/pkg/service/schedule"
	"github.com/tincan-finance/tincan/pkg/service/tag"
	"github.com/tincan-finance/tincan/pkg/service/transaction"
	"github.com/tincan-finance/tincan/pkg/service/user"
)

// Deps collects everything the HTTP layer needs. CheckDB and CheckRedis are
// optional; when nil the health endpoint reports "disabled".
type Deps struct {
	Config *config.App
	Logger *slog.Logger

	Auth         *auth.Service
	Users        *user.Service
	Accounts     *account.Service
	Categories   *category.Service
	Tags         *tag.Service
	Transactions *transaction.Service
	Budgets      *budget.Service
	Goals        *goal.Service
	Alerts       *alert.Service
	Schedules    *schedule.Service
	Crypto       *crypto.Service
	Reports      *reports.Service
	Backup       *backup.Service

	CheckDB    func(context.Context) error
	CheckRedis func(context.Context) error
}

// NewApp builds the Fiber application with rate limiting, panic recovery,
// the health endpoint and all /api routes registered.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "tincan",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok && fe.Code == fiber.StatusNotFound {
				return ErrorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "route not found", nil)
			}
			d.Logger.Error("unhandled error", "path", c.Path(), "error", err)
			return ErrorJSON(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
		},
	})

	// Uses X-Forwarded-For when behind a proxy, falling back to the
	// direct peer address.
	app.Use(limiter.New(limiter.Config{
		Max:        d.Config.RateLimit.MaxRequests,
		Expiration: d.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if i := strings.Index(forwardedFor, ","); i != -1 {
					return strings.TrimSpace(forwardedFor[:i])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorJSON(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded", nil)
		},
	}))
	app.Use(recover.New())

	app.Get("/health", healthHandler(d))

	api := app.Group("/api")
	api.Get("/docs", docsHandler())

	authRoutes(api, d.Config.Jwt, d.Auth, d.Users)

	protected := api.Group("", JwtProtected(d.Config.Jwt))
	accountRoutes(protected, d.Accounts, d.Auth)
	categoryRoutes(protected, d.Categories, d.Auth)
	tagRoutes(protected, d.Tags, d.Auth)
	transactionRoutes(protected, d.Transactions, d.Auth)
	budgetRoutes(protected, d.Budgets, d.Auth)
	goalRoutes(protected, d.Goals, d.Auth)
	alertRoutes(protected, d.Alerts, d.Auth)
	scheduleRoutes(protected, d.Schedules, d.Auth)
	cryptoRoutes(protected, d.Crypto, d.Auth)
	reportRoutes(protected, d.Reports, d.Budgets, d.Schedules, d.Auth)
	backupRoutes(protected, d.Backup, d.Auth)

	return app
}

func healthHandler(d Deps) fiber.Handler {
	check := func(ctx context.Context, fn func(context.Context) error) string {
		if fn == nil {
			return "disabled"
		}
		if err := fn(ctx); err != nil {
			return "down"
		}
		return "up"
	}
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		db := check(ctx, d.CheckDB)
		cache := check(ctx, d.CheckRedis)
		status := "ok"
		if db == "down" {
			status = "degraded"
		}
		return SuccessJSON(c, fiber.StatusOK, fiber.Map{
			"status":      status,
			"timestamp":   time.Now().UTC(),
			"environment": d.Config.Env,
			"version":     d.Config.Version,
			"database":    db,
			"redis":       cache,
		}, "")
	}
}

// docsHandler lists every endpoint group so clients can discover the API
// without external documentation.
func docsHandler() fiber.Handler {
	routes := fiber.Map{
		"auth":         []string{"POST /api/auth/register", "POST /api/auth/login", "GET /api/auth/me"},
		"accounts":     []string{"GET|POST /api/accounts", "GET|PUT|DELETE /api/accounts/:id"},
		"categories":   []string{"GET|POST /api/categories", "GET|PUT|DELETE /api/categories/:id", "POST /api/categories/:id/merge", "POST /api/categories/seed"},
		"tags":         []string{"GET|POST /api/tags", "GET|PUT|DELETE /api/tags/:id"},
		"transactions": []string{"GET|POST /api/transactions", "GET|PUT|DELETE /api/transactions/:id", "POST /api/transactions/bulk-delete", "POST /api/transactions/:id/duplicate"},
		"budgets":      []string{"GET|POST /api/budgets", "GET|PUT|DELETE /api/budgets/:id", "GET /api/budgets/:id/progress"},
		"goals":        []string{"GET|POST /api/goals", "GET|PUT|DELETE /api/goals/:id", "POST /api/goals/:id/progress"},
		"alerts":       []string{"GET|POST /api/alerts", "GET|DELETE /api/alerts/:id", "PUT /api/alerts/:id/read", "PUT /api/alerts/read-all", "PUT /api/alerts/:id/dismiss"},
		"schedules":    []string{"GET|POST /api/schedules", "GET|PUT|DELETE /api/schedules/:id", "PUT /api/schedules/:id/toggle"},
		"crypto":       []string{"GET|POST /api/crypto/wallets", "GET|PUT|DELETE /api/crypto/wallets/:id", "GET|POST /api/crypto/assets", "GET|PUT|DELETE /api/crypto/assets/:id", "GET /api/crypto/portfolio", "POST /api/crypto/refresh-prices"},
		"reports":      []string{"GET /api/reports/dashboard", "GET /api/reports/budgets", "GET /api/reports/cashflow", "GET /api/reports/categories", "GET /api/reports/categories/:id", "GET /api/reports/schedules"},
		"backup":       []string{"GET /api/backup/export", "POST /api/backup/import"},
	}
	return func(c *fiber.Ctx) error {
		return SuccessJSON(c, fiber.StatusOK, routes, "")
	}
}
