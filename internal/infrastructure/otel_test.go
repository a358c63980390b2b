package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"loancalc/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOTelInitialization(t *testing.T) {
	tests := []struct {
		name        string
		trace       string
		metrics     string
		wantTracer  bool
		wantMetrics bool
		wantErr     bool
	}{
		{name: "all enabled", trace: "stdout", metrics: "prometheus", wantTracer: true, wantMetrics: true},
		{name: "metrics only", trace: "none", metrics: "prometheus", wantMetrics: true},
		{name: "all disabled", trace: "none", metrics: "none"},
		{name: "unknown trace exporter", trace: "otlp", metrics: "none", wantErr: true},
		{name: "unknown metric exporter", trace: "none", metrics: "statsd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Telemetry
			cfg.TraceExporter = tt.trace
			cfg.MetricExporter = tt.metrics

			providers, err := InitializeOTel(cfg, discardLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.NotNil(t, providers.Tracer)
			assert.NotNil(t, providers.Meter)
			assert.Equal(t, tt.wantTracer, providers.TracerProvider != nil)
			assert.Equal(t, tt.wantMetrics, providers.MeterProvider != nil)
			assert.Equal(t, tt.wantMetrics, providers.PrometheusHTTP != nil)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			assert.NoError(t, providers.Shutdown(ctx))
		})
	}
}

func TestBusinessMetrics_ExposedOnPrometheus(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.MetricExporter = "prometheus"

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	RecordProcessingMetrics(ctx, metrics, ProcessingOutcome{
		OutputType:     "excel",
		RowsAccepted:   3,
		RowsSkipped:    1,
		LoanAmountSum:  1_000_000,
		Duration:       20 * time.Millisecond,
		RenderDuration: 5 * time.Millisecond,
	})
	RecordProcessingMetrics(ctx, metrics, ProcessingOutcome{
		OutputType: "pdf",
		Duration:   time.Millisecond,
		ErrorKind:  "no_valid_rows",
	})

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "loan_files_processed_total")
	assert.Contains(t, body, "loan_rows_accepted_total")
	assert.Contains(t, body, "loan_rows_skipped_total")
	assert.Contains(t, body, "loan_processing_errors_total")
	assert.Contains(t, body, `error_kind="no_valid_rows"`)
}

func TestRecordProcessingMetrics_NilMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordProcessingMetrics(context.Background(), nil, ProcessingOutcome{OutputType: "excel"})
	})
}

func TestSpanHelpers(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "process")
	traceID := TraceIDFromContext(ctx)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)

	SetSpanAttributes(ctx, map[string]interface{}{
		"file.name":   "loans.xlsx",
		"rows":        2,
		"rows.total":  int64(3),
		"ratio":       0.3,
		"pdf":         false,
		"output_type": struct{ Name string }{"excel"},
	})
	RecordError(ctx, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Len(t, ended[0].Attributes(), 6)
	assert.Len(t, ended[0].Events(), 1)

	assert.Empty(t, TraceIDFromContext(context.Background()))
}
