package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loancalc/internal/shared/testutil"
)

func TestErrorHandler_HandleError_PlainText(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing file",
			err:        MissingFile("no file uploaded"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "no file uploaded",
		},
		{
			name:       "wrapped missing columns",
			err:        fmt.Errorf("process upload: %w", MissingColumns("missing required columns: [debt_ratio]", []string{"debt_ratio"})),
			wantStatus: http.StatusBadRequest,
			wantBody:   "missing required columns: [debt_ratio]",
		},
		{
			name:       "parsing app error",
			err:        NewParsingError("error reading file: not a spreadsheet", nil),
			wantStatus: http.StatusBadRequest,
			wantBody:   "error reading file: not a spreadsheet",
		},
		{
			name:       "render app error hides cause",
			err:        NewRenderError("pdf output failed", fmt.Errorf("secret detail")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "The output document could not be generated",
		},
		{
			name:       "deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantBody:   "The request took too long to process and was cancelled",
		},
		{
			name:       "body too large",
			err:        &http.MaxBytesError{Limit: 1024},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   "The request body exceeds the maximum allowed size of 1024 bytes",
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("database exploded"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "An unexpected error occurred while processing your request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			h := NewErrorHandler(logger, false)

			r := httptest.NewRequest(http.MethodPost, "/process/", nil)
			w := httptest.NewRecorder()
			h.HandleError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestErrorHandler_HandleError_ProblemJSON(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, true)

	r := httptest.NewRequest(http.MethodPost, "/process/", nil)
	r.Header.Set("Accept", ProblemContentType)
	r = r.WithContext(context.WithValue(r.Context(), middleware.RequestIDKey, "req-42"))
	w := httptest.NewRecorder()

	h.HandleError(w, r, MissingColumns("missing required columns: [debt_ratio]", []string{"debt_ratio"}))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ProblemContentType, w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TypeMissingColumns, body["type"])
	assert.Equal(t, "Bad Request", body["title"])
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
	assert.Equal(t, "/process/", body["instance"])
	assert.Equal(t, CodeMissingColumns, body["error_code"])
	assert.Equal(t, []interface{}{"debt_ratio"}, body["details"])
	assert.Equal(t, "req-42", body["trace_id"])
	assert.NotContains(t, body, "stack", "stack is only attached to server errors")
}

func TestErrorHandler_HandleError_Nil(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, 0, w.Body.Len())
	assert.Empty(t, handler.Records())
}

func TestErrorHandler_LogLevels(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	r := httptest.NewRequest(http.MethodPost, "/process/", nil)
	h.HandleError(httptest.NewRecorder(), r, NoValidRows("no valid rows found in file"))
	h.HandleError(httptest.NewRecorder(), r, NewRenderError("xlsx output failed", nil))

	assert.Len(t, handler.RecordsByLevel(slog.LevelWarn), 1)
	assert.Len(t, handler.RecordsByLevel(slog.LevelError), 1)
	assert.True(t, handler.ContainsAttr("component", "error_handler"))
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "The requested resource was not found", w.Body.String())

	r := httptest.NewRequest(http.MethodGet, "/process/", nil)
	r.Header.Set("Accept", ProblemContentType)
	w = httptest.NewRecorder()
	h.MethodNotAllowed(w, r)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TypeMethodNotAllowed, body["type"])
	assert.Equal(t, "Method GET is not allowed for this endpoint", body["detail"])
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"*/*", false},
		{"text/plain", false},
		{"application/json", false},
		{"application/json, text/plain, */*", false},
		{"application/problem+json", true},
		{"application/problem+json, text/plain;q=0.5", true},
		{"text/plain;q=0.2, application/problem+json", true},
		{"text/html, application/problem+json;q=0.9", true},
		{"application/problem+json;q=0", false},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Accept", tt.accept)
			assert.Equal(t, tt.want, WantsJSON(r))
		})
	}
}
