package errors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		wantCode string
	}{
		{"missing file", MissingFile("no file uploaded"), CodeMissingFile},
		{"unreadable file", UnreadableFile("error reading file: bad zip"), CodeUnreadableFile},
		{"missing columns", MissingColumns("missing required columns: [debt_ratio]", []string{"debt_ratio"}), CodeMissingColumns},
		{"no valid rows", NoValidRows("no valid rows found in file"), CodeNoValidRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, tt.err.StatusCode)
			assert.Equal(t, tt.wantCode, tt.err.ErrorCode)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}

	assert.Equal(t, []string{"debt_ratio"}, MissingColumns("x", []string{"debt_ratio"}).Details)
}

func TestAPIError_Render(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	require.NoError(t, render.Render(w, r, ErrRateLimitExceeded))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestAPIError_ErrorsAs(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NoValidRows("no valid rows found in file"))

	var apiErr *APIError
	require.True(t, errors.As(wrapped, &apiErr))
	assert.Equal(t, CodeNoValidRows, apiErr.ErrorCode)
}
