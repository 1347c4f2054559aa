// internal/common/errors/handler.go
package errors

import (
	"net/http"
	"time"
)

// ToolErrorResponse is the error payload returned by the tool surface.
type ToolErrorResponse struct {
	Error     string                 `json:"error"`
	Code      string                 `json:"code"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// Responder converts errors into tool error responses with consistent logging.
type Responder struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewResponder(logger Logger) *Responder {
	return &Responder{logger: logger}
}

// Respond normalizes err to a StandardError, logs it, and returns the tool
// error payload plus the HTTP status the transport should use.
func (r *Responder) Respond(toolName string, err error) (*ToolErrorResponse, int) {
	stdErr := AsStandard(err)

	fields := map[string]interface{}{
		"tool":          toolName,
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
	}
	if IsValidation(err) || IsNotFound(err) {
		r.logger.Warn("tool call rejected", fields)
	} else {
		r.logger.Error("tool call failed", fields)
	}

	return &ToolErrorResponse{
		Error:     stdErr.Message,
		Code:      string(stdErr.Code),
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Metadata:  stdErr.Metadata,
		Timestamp: stdErr.Timestamp.Format(time.RFC3339),
	}, HTTPStatus(stdErr.Code)
}

// HTTPStatus maps an error code onto the transport status line.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeMissingParameter:
		return http.StatusBadRequest
	case ErrCodeLocationNotFound, ErrCodeBookingNotFound, ErrCodeToolNotFound:
		return http.StatusNotFound
	case ErrCodeMatrixAuthFailed:
		return http.StatusUnauthorized
	case ErrCodeMatrixTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeMatrixTransport, ErrCodeAvailabilityFailed:
		return http.StatusBadGateway
	case ErrCodeBookingRejected:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
