// Package errors provides standardized error handling for the booking tool server.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"

	ErrCodeLocationNotFound ErrorCode = "LOCATION_NOT_FOUND"
	ErrCodeBookingNotFound  ErrorCode = "BOOKING_NOT_FOUND"

	ErrCodeMatrixTimeout       ErrorCode = "MATRIX_API_TIMEOUT"
	ErrCodeMatrixTransport     ErrorCode = "MATRIX_API_ERROR"
	ErrCodeMatrixAuthFailed    ErrorCode = "MATRIX_AUTH_FAILED"
	ErrCodeBookingRejected     ErrorCode = "BOOKING_REJECTED"
	ErrCodeAvailabilityFailed  ErrorCode = "AVAILABILITY_CHECK_FAILED"
	ErrCodeEnrichmentFailed    ErrorCode = "RESULT_ENRICHMENT_FAILED"
	ErrCodeToolNotFound        ErrorCode = "TOOL_NOT_FOUND"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(message, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingParameterError creates a non-retryable error for an absent required field.
func NewMissingParameterError(param string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingParameter,
		Message:   fmt.Sprintf("%s parameter is required", capitalize(param)),
		Details:   fmt.Sprintf("parameter: %s", param),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLocationNotFoundError creates a non-retryable resolution failure naming the term.
func NewLocationNotFoundError(term string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocationNotFound,
		Message:   fmt.Sprintf("Location not found: %s", term),
		Details:   fmt.Sprintf("searchTerm: %s", term),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Metadata:  map[string]interface{}{"searchTerm": term},
	}
}

// NewBookingNotFoundError creates a non-retryable booking lookup failure.
func NewBookingNotFoundError(bookingID int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeBookingNotFound,
		Message:   "Booking not found",
		Details:   fmt.Sprintf("bookingId: %d", bookingID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMatrixTimeoutError creates a retryable timeout error for a Matrix API call.
func NewMatrixTimeoutError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatrixTimeout,
		Message:   fmt.Sprintf("Matrix Booking API timeout during %s", operation),
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewMatrixTransportError creates a retryable transport error for a Matrix API call.
func NewMatrixTransportError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatrixTransport,
		Message:   fmt.Sprintf("Matrix Booking API error during %s", operation),
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewMatrixAuthError creates a non-retryable authentication error.
func NewMatrixAuthError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatrixAuthFailed,
		Message:   "Matrix Booking authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBookingRejectedError creates a non-retryable booking rejection error.
func NewBookingRejectedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBookingRejected,
		Message:   "Booking request rejected by Matrix Booking",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAvailabilityCheckFailedError creates a retryable availability failure.
func NewAvailabilityCheckFailedError(locationID int64, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAvailabilityFailed,
		Message:   "Availability check failed",
		Details:   fmt.Sprintf("locationId: %d, error: %s", locationID, errDetails(err)),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewEnrichmentFailedError marks a per-result detail lookup failure. It is
// recovered locally during result assembly and never surfaced to callers.
func NewEnrichmentFailedError(locationID int64, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnrichmentFailed,
		Message:   "Result enrichment failed",
		Details:   fmt.Sprintf("locationId: %d, error: %s", locationID, errDetails(err)),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewToolNotFoundError creates a non-retryable unknown-tool error.
func NewToolNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeToolNotFound,
		Message:   fmt.Sprintf("Unknown tool: %s", name),
		Details:   fmt.Sprintf("toolName: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   errDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandard extracts a *StandardError from an error chain, or wraps the
// error as an internal error when no StandardError is present.
func AsStandard(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsNotFound reports whether the error chain carries a not-found code.
func IsNotFound(err error) bool {
	stdErr := AsStandard(err)
	return stdErr.Code == ErrCodeLocationNotFound || stdErr.Code == ErrCodeBookingNotFound
}

// IsValidation reports whether the error chain carries a validation code.
func IsValidation(err error) bool {
	stdErr := AsStandard(err)
	return stdErr.Code == ErrCodeValidationFailed || stdErr.Code == ErrCodeMissingParameter
}

// WithContext attaches a search term or tool name to an error so callers can
// produce actionable guidance. Not-found errors pass through unchanged.
func WithContext(err error, key, value string) error {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		if stdErr.Code == ErrCodeLocationNotFound || stdErr.Code == ErrCodeBookingNotFound {
			return err
		}
		if stdErr.Metadata == nil {
			stdErr.Metadata = map[string]interface{}{}
		}
		stdErr.Metadata[key] = value
		return stdErr
	}
	return fmt.Errorf("%s %q: %w", key, value, err)
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "MISSING"):
		return "VALIDATION"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "NOT_FOUND"
	case strings.Contains(codeStr, "TIMEOUT"):
		return "TIMEOUT"
	case strings.Contains(codeStr, "AUTH"):
		return "AUTH"
	case strings.Contains(codeStr, "BOOKING") || strings.Contains(codeStr, "AVAILABILITY"):
		return "BOOKING"
	case strings.Contains(codeStr, "MATRIX"):
		return "TRANSPORT"
	default:
		return "OTHER"
	}
}
