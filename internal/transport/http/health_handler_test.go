package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loancalc/internal/services"
	"loancalc/internal/shared/testutil"
	"loancalc/pkg/contracts"
)

func newHealthRouter(t *testing.T, checkErr error) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	svc := services.NewHealthService(logger)
	svc.Register("renderer", services.HealthCheckFunc(func(context.Context) error { return checkErr }))

	r := chi.NewRouter()
	r.Mount("/api", NewHealthHandler(svc, logger).Routes())
	return r
}

func TestHealthHandler_Endpoints(t *testing.T) {
	router := newHealthRouter(t, nil)

	tests := []struct {
		path       string
		wantStatus string
	}{
		{"/api/health", "ok"},
		{"/api/health/live", "alive"},
		{"/api/health/ready", "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			var body services.HealthStatus
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, contracts.Version, body.Version)
		})
	}
}

func TestHealthHandler_NotReady(t *testing.T) {
	router := newHealthRouter(t, errors.New("renderer unavailable"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "renderer unavailable")
}

func TestHealthHandler_Version(t *testing.T) {
	router := newHealthRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, contracts.Version, body["version"])
	assert.Equal(t, contracts.APIVersion, body["api_version"])
}

func TestMetricsHandler(t *testing.T) {
	exporter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("loan_files_processed_total 1\n"))
	})

	w := httptest.NewRecorder()
	NewMetricsHandler(exporter).GetMetrics(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "loan_files_processed_total")

	w = httptest.NewRecorder()
	NewMetricsHandler(nil).GetMetrics(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
