package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps the handler layer free of
// per-error-type switch statements.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a row does not exist, or a parent
	// pointer no longer resolves to one.
	NotFoundError struct {
		Message string
	}

	// InvalidArgumentError indicates invalid input (schema or bound violations).
	InvalidArgumentError struct {
		Message string
	}

	// UnauthenticatedError indicates no caller identity could be resolved.
	UnauthenticatedError struct {
		Message string
	}

	// UnauthorizedError indicates the caller is not the owner of the
	// entity being read or mutated.
	UnauthorizedError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string        { return e.Message }
func (e *InvalidArgumentError) Error() string { return e.Message }
func (e *UnauthenticatedError) Error() string { return e.Message }
func (e *UnauthorizedError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int        { return http.StatusNotFound }
func (e *InvalidArgumentError) StatusCode() int { return http.StatusBadRequest }
func (e *UnauthenticatedError) StatusCode() int { return http.StatusUnauthorized }
func (e *UnauthorizedError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrUnauthorized    = errors.New("unauthorized")
)

// ConflictError represents a resource conflict with details about the existing
// resource, so handlers can return the existing row alongside a 409.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (workspace, folder, document, file, profile)
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
