package services

import (
	"context"
	"errors"
	"fmt"

	"loancalc/internal/dataprocessing"
	apperrors "loancalc/internal/errors"
)

// Pipeline failure kinds. Every PipelineError matches exactly one of them
// with errors.Is.
var (
	ErrMissingFile    = errors.New("missing file")
	ErrUnreadableFile = errors.New("unreadable file")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoValidRows    = errors.New("no valid rows")
	ErrTooManyRows    = errors.New("too many rows")
)

// PipelineError is a client-facing processing failure. Detail is the message
// returned to the caller.
type PipelineError struct {
	Kind    error
	Detail  string
	Columns []string
	Cause   error
}

func (e *PipelineError) Error() string {
	return e.Detail
}

// Is matches the failure kind
func (e *PipelineError) Is(target error) bool {
	return target == e.Kind
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// NewPipelineError creates a PipelineError of the given kind
func NewPipelineError(kind error, detail string, cause error) *PipelineError {
	return &PipelineError{Kind: kind, Detail: detail, Cause: cause}
}

// MissingFileError is returned when a request carries no upload
func MissingFileError(cause error) *PipelineError {
	return NewPipelineError(ErrMissingFile, "no file uploaded", cause)
}

// UnreadableFileError wraps a read or decode failure
func UnreadableFileError(cause error) *PipelineError {
	return NewPipelineError(ErrUnreadableFile, "error reading file: "+describe(cause), cause)
}

// classifyParseError maps parser failures onto pipeline failure kinds
func classifyParseError(err error) *PipelineError {
	var missing *dataprocessing.MissingColumnsError
	if errors.As(err, &missing) {
		pe := NewPipelineError(ErrMissingColumns, missing.Error(), err)
		pe.Columns = missing.Columns
		return pe
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrTypeValidation {
		return NewPipelineError(ErrTooManyRows, appErr.Message, err)
	}

	return UnreadableFileError(err)
}

// ErrorKind names the failure for metrics and logs
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingFile):
		return "missing_file"
	case errors.Is(err, ErrUnreadableFile):
		return "unreadable_file"
	case errors.Is(err, ErrMissingColumns):
		return "missing_columns"
	case errors.Is(err, ErrNoValidRows):
		return "no_valid_rows"
	case errors.Is(err, ErrTooManyRows):
		return "too_many_rows"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return string(appErr.Type)
	}
	return "internal"
}

// describe strips the error type tag from AppErrors
func describe(err error) string {
	if err == nil {
		return "unknown error"
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
		}
		return appErr.Message
	}
	return err.Error()
}
