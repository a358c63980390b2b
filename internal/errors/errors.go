package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Error codes of the upload pipeline
const (
	CodeMissingFile    = "MISSING_FILE"
	CodeUnreadableFile = "UNREADABLE_FILE"
	CodeMissingColumns = "MISSING_COLUMNS"
	CodeNoValidRows    = "NO_VALID_ROWS"
)

// ErrRateLimitExceeded is returned by the rate limiting middleware
var ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

// MissingFile is returned when the multipart body has no file part
func MissingFile(message string) *APIError {
	return New(http.StatusBadRequest, CodeMissingFile, message)
}

// UnreadableFile is returned when the upload cannot be parsed as a table
func UnreadableFile(message string) *APIError {
	return New(http.StatusBadRequest, CodeUnreadableFile, message)
}

// MissingColumns is returned when required columns are absent after renaming
func MissingColumns(message string, columns []string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeMissingColumns, message, columns)
}

// NoValidRows is returned when every data row was skipped
func NoValidRows(message string) *APIError {
	return New(http.StatusBadRequest, CodeNoValidRows, message)
}

// NewValidationError creates a simple validation error
func NewValidationError(message string) *APIError {
	return New(http.StatusBadRequest, "VALIDATION_FAILED", message)
}
