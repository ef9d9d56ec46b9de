package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Kinds classify errors raised by the service layer. Every service
// error wraps exactly one kind, and each kind maps to exactly one HTTP
// status (see FromError).
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrStorage         = errors.New("storage failure")
)

// kindError carries a client-safe message, the kind it belongs to and
// an optional cause. Unwrap exposes both so errors.Is matches the kind
// and errors.Is/As still reach the underlying failure.
type kindError struct {
	kind    error
	message string
	cause   error
}

func (e *kindError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *kindError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// NotFoundError creates an error of the ErrNotFound kind.
func NotFoundError(message string) error {
	return &kindError{kind: ErrNotFound, message: message}
}

// ForbiddenError creates an error of the ErrForbidden kind.
func ForbiddenError(message string) error {
	return &kindError{kind: ErrForbidden, message: message}
}

// ValidationError creates an error of the ErrValidation kind.
func ValidationError(message string) error {
	return &kindError{kind: ErrValidation, message: message}
}

// UnauthenticatedError creates an error of the ErrUnauthenticated kind.
func UnauthenticatedError(message string) error {
	return &kindError{kind: ErrUnauthenticated, message: message}
}

// StorageError creates an error of the ErrStorage kind wrapping the
// underlying persistence failure.
func StorageError(message string, cause error) error {
	return &kindError{kind: ErrStorage, message: message, cause: cause}
}

// Message returns the client-safe message of a kind error, falling
// back to Error() for plain errors. Causes never reach the client.
func Message(err error) string {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.message
	}
	return err.Error()
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// FromError maps a service error onto the HTTP response for its kind.
// Storage failures deliberately surface as 400, not 500: the request
// reached the store and was rejected there.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		NotFound(c, Message(err))
	case errors.Is(err, ErrForbidden):
		Forbidden(c, Message(err))
	case errors.Is(err, ErrValidation):
		BadRequest(c, Message(err))
	case errors.Is(err, ErrUnauthenticated):
		Unauthorized(c, Message(err))
	case errors.Is(err, ErrStorage):
		BadRequest(c, Message(err))
	default:
		InternalError(c, "")
	}
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}
