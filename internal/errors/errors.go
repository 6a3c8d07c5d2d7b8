package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrUserAlreadyExists is returned when a user with the same name is registered.
	ErrUserAlreadyExists = errors.New("User already exists")
	// ErrSessionAlreadyExists is returned when the caller's session token already identifies a user.
	ErrSessionAlreadyExists = errors.New("Session ID already exists")
	// ErrUserNotFound is returned when no user matches the given credentials.
	ErrUserNotFound = errors.New("User not found")
	// ErrMealNotFound is returned when a meal is missing or belongs to another session.
	ErrMealNotFound = errors.New("Meal not found")
	// ErrUnauthorized is returned when a session-scoped route is called without a session cookie.
	ErrUnauthorized = errors.New("Unauthorized")
)

const (
	invalidInputMessage  = "Invalid input"
	internalErrorMessage = "Internal server error"
)

// FieldError describes one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when request input does not match its schema.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return invalidInputMessage + ": " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from field errors.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     []FieldError
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
		Message: e.Message,
		Errors:  e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so that internal details never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		httpErr := NewHTTPError(http.StatusBadRequest, invalidInputMessage, "VALIDATION_ERROR")
		httpErr.Fields = validationErr.Fields
		return httpErr
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, ErrUserAlreadyExists.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrSessionAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, ErrSessionAlreadyExists.Error(), "SESSION_ALREADY_EXISTS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrMealNotFound):
		return NewHTTPError(http.StatusNotFound, ErrMealNotFound.Error(), "MEAL_NOT_FOUND")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	default:
		return NewHTTPError(http.StatusInternalServerError, internalErrorMessage, "INTERNAL_ERROR")
	}
}
