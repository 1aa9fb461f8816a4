package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource does not exist
	// or is owned by another user.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a caller has no valid identity
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a caller lacks the required role
	ErrForbidden = errors.New("forbidden")
	// ErrInUse is returned when deleting a resource still referenced elsewhere
	ErrInUse = errors.New("resource is referenced by other records")
	// ErrCategoryCycle is returned when a category update would make the
	// parent chain loop back on itself.
	ErrCategoryCycle = errors.New("category parent chain would form a cycle")
	// ErrInvalidCredentials is returned on a failed login attempt
	ErrInvalidCredentials = errors.New("invalid credentials")
)
