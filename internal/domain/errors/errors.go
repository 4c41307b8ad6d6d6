package errors

import (
	"net/http"

	"waypoint/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Stop-related errors
	ErrStopNotFound = NewBaseError(
		http.StatusNotFound,
		"STOP_NOT_FOUND",
		"No stop exists with that id",
		"",
	)

	ErrStopPositionInvalid = NewBaseError(
		http.StatusBadRequest,
		"STOP_POSITION_INVALID",
		"Stop coordinates must be finite latitude/longitude values",
		"",
	)

	// Routing-related errors
	ErrNoRouteFound = NewBaseError(
		http.StatusBadGateway,
		"NO_ROUTE_FOUND",
		"No suitable route was found between the selected stops",
		"",
	)

	ErrRoutingUnavailable = NewBaseError(
		http.StatusBadGateway,
		"ROUTING_UNAVAILABLE",
		"Could not reach the routing service",
		"",
	)

	// Manual session errors
	ErrUnknownManualMode = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_MANUAL_MODE",
		"Manual routing mode must be nearest or custom",
		"",
	)

	ErrNoNearbyStop = NewBaseError(
		http.StatusNotFound,
		"NO_NEARBY_STOP",
		"No nearby stop was found for that location",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal system error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)
