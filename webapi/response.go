package webapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// Response is the envelope every successful endpoint returns.
type Response struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ErrorBody is the error half of the envelope.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// SuccessJSON writes a success envelope with the given payload.
func SuccessJSON(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(Response{Success: true, Data: data, Message: message})
}

// PaginatedJSON writes a success envelope with a pagination block.
func PaginatedJSON(c *fiber.Ctx, data any, page, limit int, total int64) error {
	totalPages := int(total / int64(limit))
	if total%int64(limit) != 0 {
		totalPages++
	}
	return c.JSON(Response{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// ErrorJSON writes an error envelope.
func ErrorJSON(c *fiber.Ctx, status int, code, message string, details any) error {
	return c.Status(status).JSON(errorResponse{
		Error: ErrorBody{Message: message, Code: code, Details: details},
	})
}

// DomainErrorJSON maps a domain error to its status and code and writes the
// envelope. Unknown errors become an opaque 500.
func DomainErrorJSON(c *fiber.Ctx, err error) error {
	status, code := ErrorToStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "internal server error"
	}
	return ErrorJSON(c, status, code, message, nil)
}

// ErrorToStatus maps domain errors to HTTP status codes and envelope codes.
func ErrorToStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrCategoryCycle):
		return fiber.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrInUse):
		return fiber.StatusConflict, "CONFLICT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

var validate = validator.New()

// BindAndValidate parses the request body into T and validates it. On failure
// it writes the error envelope (every violated field listed) and returns a
// non-nil error so the handler can bail out.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorJSON(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err.Error())
	}
	if err := validate.Struct(input); err != nil {
		return nil, ErrorJSON(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "validation failed", validationDetails(err))
	}
	return &input, nil
}

// validationDetails flattens validator errors into field -> constraint pairs.
func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	out := make([]fiber.Map, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fiber.Map{
			"field":      fe.Field(),
			"constraint": fe.Tag(),
			"param":      fe.Param(),
		})
	}
	return out
}

// parseID reads a UUID path parameter. A malformed id yields a 400.
func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, ErrorJSON(c, fiber.StatusBadRequest, "VALIDATION_ERROR",
			"invalid id", fiber.Map{"field": name, "constraint": "uuid"})
	}
	return id, nil
}
