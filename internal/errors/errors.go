package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAccountNotFound is returned when an account does not exist or is owned by another user.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEntryNotFound is returned when an entry does not exist or is owned by another user.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrAuthentication is returned when no identity can be resolved for the request.
	ErrAuthentication = errors.New("authentication required")
	// ErrConflict is returned when a mutation is blocked by the current state of the resource.
	ErrConflict = errors.New("conflict")
	// ErrInvariant marks a broken internal invariant. It should be unreachable and is
	// surfaced generically, never with internals attached.
	ErrInvariant = errors.New("invariant violation")
)

// ValidationError reports malformed client input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Ownership misses are already
// folded into the not-found sentinels by the stores, so nothing here can leak
// whether a resource exists under a different owner.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return NewHTTPError(http.StatusBadRequest, ve.Error(), "VALIDATION_ERROR")
	}
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return NewHTTPError(http.StatusNotFound, ErrAccountNotFound.Error(), "ACCOUNT_NOT_FOUND")
	case errors.Is(err, ErrEntryNotFound):
		return NewHTTPError(http.StatusNotFound, ErrEntryNotFound.Error(), "ENTRY_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrAuthentication):
		return NewHTTPError(http.StatusUnauthorized, ErrAuthentication.Error(), "AUTHENTICATION_REQUIRED")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, ErrConflict.Error(), "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
