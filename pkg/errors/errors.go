// Package errors defines structured error types for the Pulse customer health
// service. Every error carries a machine-readable code, an HTTP status for the
// interface layer, and optional metadata identifying the offending customer or
// field.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/turtacn/pulse/pkg/constants"
)

const (
	CodeValidation    constants.ErrorCode = "validation_error"
	CodeConfiguration constants.ErrorCode = "configuration_error"
	CodeMissingData   constants.ErrorCode = "missing_data"
	CodeComputation   constants.ErrorCode = "computation_error"
	CodeNotFound      constants.ErrorCode = "not_found"
	CodeCache         constants.ErrorCode = "cache_error"
	CodeInternal      constants.ErrorCode = "internal_error"
)

// AppError is the structured error used throughout the service.
type AppError struct {
	code       constants.ErrorCode
	httpStatus int
	message    string
	cause      error
	metadata   map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *AppError) Code() constants.ErrorCode {
	return e.code
}

// HTTPStatus returns the HTTP status code the interface layer should map this
// error to.
func (e *AppError) HTTPStatus() int {
	return e.httpStatus
}

// Unwrap returns the underlying cause for errors.Is / errors.As chains.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches an underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.cause = cause
	return e
}

// WithMetadata attaches a key-value pair of context.
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.metadata == nil {
		e.metadata = make(map[string]interface{})
	}
	e.metadata[key] = value
	return e
}

// Metadata returns all attached metadata.
func (e *AppError) Metadata() map[string]interface{} {
	return e.metadata
}

// NewError creates a new AppError.
func NewError(code constants.ErrorCode, httpStatus int, message string) *AppError {
	return &AppError{
		code:       code,
		httpStatus: httpStatus,
		message:    message,
	}
}

// ================================================================================
// Domain-Specific Error Constructors
// ================================================================================

// ErrValidation reports an external input outside its declared range.
func ErrValidation(field string, reason string) *AppError {
	return NewError(CodeValidation, http.StatusBadRequest,
		fmt.Sprintf("invalid value for %s: %s", field, reason)).
		WithMetadata("field", field)
}

// ErrConfiguration reports an invalid service configuration. Configuration
// errors are fatal at startup, never per-request.
func ErrConfiguration(reason string) *AppError {
	return NewError(CodeConfiguration, http.StatusInternalServerError,
		fmt.Sprintf("invalid configuration: %s", reason))
}

// ErrMissingData reports a required metric category absent from input.
func ErrMissingData(category constants.MetricCategory) *AppError {
	return NewError(CodeMissingData, http.StatusUnprocessableEntity,
		fmt.Sprintf("required metric category missing: %s", category)).
		WithMetadata("category", string(category))
}

// ErrComputation reports a failed in-flight assessment computation. The cause
// is propagated verbatim to every waiter of the shared computation.
func ErrComputation(customerID string, cause error) *AppError {
	return NewError(CodeComputation, http.StatusBadGateway,
		fmt.Sprintf("assessment computation failed for customer %s", customerID)).
		WithMetadata("customer_id", customerID).
		WithCause(cause)
}

// ErrCustomerNotFound reports an unknown customer identifier.
func ErrCustomerNotFound(customerID string) *AppError {
	return NewError(CodeNotFound, http.StatusNotFound,
		fmt.Sprintf("customer not found: %s", customerID)).
		WithMetadata("customer_id", customerID)
}

// ErrCacheMiss reports an absent cache entry.
func ErrCacheMiss(customerID string) *AppError {
	return NewError(CodeNotFound, http.StatusNotFound,
		fmt.Sprintf("no cached profile for customer %s", customerID)).
		WithMetadata("customer_id", customerID)
}

// ErrCache reports a cache backend failure.
func ErrCache(reason string) *AppError {
	return NewError(CodeCache, http.StatusInternalServerError,
		fmt.Sprintf("cache operation failed: %s", reason))
}

// ErrInternal reports an unexpected internal failure.
func ErrInternal(reason string) *AppError {
	return NewError(CodeInternal, http.StatusInternalServerError, reason)
}

// ================================================================================
// Error Predicates
// ================================================================================

// AsAppError attempts to extract an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func hasCode(err error, code constants.ErrorCode) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.code == code
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return hasCode(err, CodeConfiguration) }

// IsMissingData reports whether err is a missing metric category error.
func IsMissingData(err error) bool { return hasCode(err, CodeMissingData) }

// IsComputation reports whether err originated from a failed shared computation.
func IsComputation(err error) bool { return hasCode(err, CodeComputation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// ================================================================================
// Error Response Builder
// ================================================================================

// ErrorResponse is the JSON body returned by the HTTP layer for failed requests.
type ErrorResponse struct {
	Error            string                 `json:"error"`
	ErrorDescription string                 `json:"error_description"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

// ToErrorResponse converts any error to the wire representation. Unrecognized
// errors are masked as generic internal errors.
func ToErrorResponse(err error) *ErrorResponse {
	if appErr, ok := AsAppError(err); ok {
		return &ErrorResponse{
			Error:            string(appErr.code),
			ErrorDescription: appErr.message,
			Metadata:         appErr.metadata,
		}
	}
	return &ErrorResponse{
		Error:            string(CodeInternal),
		ErrorDescription: "an unexpected error occurred",
	}
}

// HTTPStatusOf returns the HTTP status for err, defaulting to 500.
func HTTPStatusOf(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.httpStatus
	}
	return http.StatusInternalServerError
}
