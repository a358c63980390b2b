package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"loancalc/internal/dataprocessing"
	apperrors "loancalc/internal/errors"
)

func TestClassifyParseError(t *testing.T) {
	missing := classifyParseError(&dataprocessing.MissingColumnsError{Columns: []string{"debt_ratio"}})
	assert.ErrorIs(t, missing, ErrMissingColumns)
	assert.Equal(t, "missing required columns: [debt_ratio]", missing.Error())
	assert.Equal(t, []string{"debt_ratio"}, missing.Columns)

	tooMany := classifyParseError(apperrors.NewAppValidationError("file has 3 data rows, the limit is 2"))
	assert.ErrorIs(t, tooMany, ErrTooManyRows)

	unreadable := classifyParseError(apperrors.NewParsingError("cannot decode xlsx file", errors.New("zip: not a valid zip file")))
	assert.ErrorIs(t, unreadable, ErrUnreadableFile)
	assert.Equal(t, "error reading file: cannot decode xlsx file: zip: not a valid zip file", unreadable.Error())

	var appErr *apperrors.AppError
	assert.ErrorAs(t, unreadable, &appErr)
}

func TestPipelineError_IsOnlyItsKind(t *testing.T) {
	err := MissingFileError(nil)
	assert.ErrorIs(t, err, ErrMissingFile)
	assert.NotErrorIs(t, err, ErrUnreadableFile)
	assert.Equal(t, "no file uploaded", err.Error())

	wrapped := fmt.Errorf("handler: %w", err)
	assert.ErrorIs(t, wrapped, ErrMissingFile)
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{MissingFileError(nil), "missing_file"},
		{UnreadableFileError(errors.New("eof")), "unreadable_file"},
		{NewPipelineError(ErrMissingColumns, "missing", nil), "missing_columns"},
		{NewPipelineError(ErrNoValidRows, "none", nil), "no_valid_rows"},
		{NewPipelineError(ErrTooManyRows, "many", nil), "too_many_rows"},
		{context.DeadlineExceeded, "canceled"},
		{apperrors.NewRenderError("pdf output failed", errors.New("font")), "RENDER"},
		{errors.New("boom"), "internal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err))
	}
}
