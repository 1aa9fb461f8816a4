package webapi

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/transaction"
)

func transactionRoutes(api fiber.Router, svc *transaction.Service, authSvc *auth.Service) {
	api.Get("/transactions", ListTransactions(svc, authSvc))
	api.Post("/transactions", CreateTransaction(svc, authSvc))
	api.Post("/transactions/bulk-delete", BulkDeleteTransactions(svc, authSvc))
	api.Get("/transactions/:id", GetTransaction(svc, authSvc))
	api.Put("/transactions/:id", UpdateTransaction(svc, authSvc))
	api.Delete("/transactions/:id", DeleteTransaction(svc, authSvc))
	api.Post("/transactions/:id/duplicate", DuplicateTransaction(svc, authSvc))
}

// parseTransactionQuery reads the list filters from the query string. Every
// malformed value is collected so the caller sees all problems at once.
func parseTransactionQuery(c *fiber.Ctx) (dto.TransactionQuery, []fiber.Map) {
	var q dto.TransactionQuery
	var bad []fiber.Map
	invalid := func(field, constraint string) {
		bad = append(bad, fiber.Map{"field": field, "constraint": constraint})
	}

	intParam := func(name string) int {
		s := c.Query(name)
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			invalid(name, "positive integer")
			return 0
		}
		return n
	}
	uuidParam := func(name string) *uuid.UUID {
		s := c.Query(name)
		if s == "" {
			return nil
		}
		id, err := uuid.Parse(s)
		if err != nil {
			invalid(name, "uuid")
			return nil
		}
		return &id
	}
	dateParam := func(name string) *time.Time {
		s := c.Query(name)
		if s == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			if t, err = time.Parse("2006-01-02", s); err != nil {
				invalid(name, "RFC3339 or YYYY-MM-DD date")
				return nil
			}
		}
		return &t
	}
	floatParam := func(name string) *float64 {
		s := c.Query(name)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			invalid(name, "number")
			return nil
		}
		return &f
	}

	q.Page = intParam("page")
	q.Limit = intParam("limit")
	if q.Limit > 100 {
		invalid("limit", "max=100")
	}
	q.Search = c.Query("search")
	q.AccountID = uuidParam("accountId")
	q.CategoryID = uuidParam("categoryId")
	q.TagID = uuidParam("tagId")
	q.StartDate = dateParam("startDate")
	q.EndDate = dateParam("endDate")
	q.MinAmount = floatParam("minAmount")
	q.MaxAmount = floatParam("maxAmount")
	if s := c.Query("isReviewed"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			invalid("isReviewed", "boolean")
		} else {
			q.IsReviewed = &b
		}
	}
	if s := c.Query("sortBy"); s != "" {
		switch s {
		case "date", "amount", "description":
			q.SortBy = s
		default:
			invalid("sortBy", "oneof=date amount description")
		}
	}
	if s := c.Query("sortOrder"); s != "" {
		switch s {
		case "asc", "desc":
			q.SortOrder = s
		default:
			invalid("sortOrder", "oneof=asc desc")
		}
	}
	return q, bad
}

// ListTransactions returns a filtered, paginated page of transactions.
func ListTransactions(svc *transaction.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		q, bad := parseTransactionQuery(c)
		if len(bad) > 0 {
			return ErrorJSON(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid query parameters", bad)
		}
		q.Normalize()
		rows, total, err := svc.List(c.UserContext(), userID, q)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return PaginatedJSON(c, dto.TransactionsToRead(rows), q.Page, q.Limit, total)
	}
}

// CreateTransaction records a transaction. Amount keeps its sign.
func CreateTransaction(svc *transaction.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.TransactionCreate](c)
		if err != nil {
			return err
		}
		t, err := svc.Create(c.UserContext(), userID, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.TransactionToRead(t), "transaction created")
	}
}

// GetTransaction returns one transaction by id.
func GetTransaction(svc *transaction.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		t, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.TransactionToRead(t), "")
	}
}

// UpdateTransaction applies a partial update, including tag replacement.
func UpdateTransaction(svc *transaction.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.TransactionUpdate](c)
		if err != nil {
			return err
		}
		t, err := svc.Update(c.UserContext(), userID, id, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.TransactionToRead(t), "transaction updated")
	}
}

// DeleteTransaction removes one transaction.
func DeleteTransaction(svc *transaction.Service, authSvc *auth.Service) fiber.Handler {
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
		return SuccessJSON(c, fiber.StatusOK, nil, "transaction deleted")
	}
}

// BulkDeleteTransactions removes a batch of transactions. Ids the caller does
// not own are skipped.
func BulkDeleteTransactions(svc *transaction.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.BulkDelete](c)
		if err != nil {
			return err
		}
		n, err := svc.BulkDelete(c.UserContext(), userID, req.IDs)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, fiber.Map{"deleted": n}, "transactions deleted")
	}
}

// DuplicateTransaction copies an existing transaction as a fresh row.
func DuplicateTransaction(svc *transaction.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		t, err := svc.Duplicate(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.TransactionToRead(t), "transaction duplicated")
	}
}
