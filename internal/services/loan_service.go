package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"loancalc/internal/dataprocessing"
	"loancalc/internal/exporter"
	"loancalc/internal/infrastructure"
	"loancalc/internal/loan"
	"loancalc/pkg/contracts/domain"
)

// ProcessResult is the outcome of one successful upload
type ProcessResult struct {
	Artifact    *domain.Artifact
	OutputType  domain.OutputType
	Summary     loan.Summary
	RowsSkipped int
	Format      dataprocessing.Format
}

// LoanService runs the upload pipeline: parse, validate, compute, render
type LoanService struct {
	parser   *dataprocessing.Parser
	renderer *exporter.Renderer
	tracer   trace.Tracer
	metrics  *infrastructure.BusinessMetrics
	logger   *slog.Logger
}

// LoanServiceOption configures a LoanService
type LoanServiceOption func(*LoanService)

// WithTracer sets the tracer used for pipeline spans
func WithTracer(tracer trace.Tracer) LoanServiceOption {
	return func(s *LoanService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithMetrics enables pipeline metric recording
func WithMetrics(metrics *infrastructure.BusinessMetrics) LoanServiceOption {
	return func(s *LoanService) {
		s.metrics = metrics
	}
}

// NewLoanService creates a loan service. Without options it neither traces
// nor records metrics.
func NewLoanService(logger *slog.Logger, parseOpts dataprocessing.Options, opts ...LoanServiceOption) *LoanService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &LoanService{
		parser:   dataprocessing.NewParser(logger, parseOpts),
		renderer: exporter.NewRenderer(logger),
		tracer:   noop.NewTracerProvider().Tracer(infrastructure.MeterName),
		logger:   infrastructure.WithComponent(logger, "loan_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process converts one uploaded sheet into the requested document
func (s *LoanService) Process(ctx context.Context, filename string, r io.Reader, outputType domain.OutputType) (*ProcessResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "loan.process", trace.WithAttributes(
		attribute.String("file.name", filename),
		attribute.String("output_type", string(outputType)),
	))
	defer span.End()

	outcome := infrastructure.ProcessingOutcome{OutputType: string(outputType)}
	result, err := s.run(ctx, filename, r, outputType, &outcome)
	outcome.Duration = time.Since(start)

	if err != nil {
		outcome.ErrorKind = ErrorKind(err)
		infrastructure.RecordError(ctx, err, trace.WithAttributes(attribute.String("error.kind", outcome.ErrorKind)))
		infrastructure.RecordProcessingMetrics(ctx, s.metrics, outcome)
		logPipelineError(ctx, s.logger, "process", err,
			slog.String("filename", filename),
			slog.String("output_type", string(outputType)))
		return nil, err
	}

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"rows.accepted":   outcome.RowsAccepted,
		"rows.skipped":    outcome.RowsSkipped,
		"artifact.bytes":  len(result.Artifact.Data),
		"loan.amount_sum": outcome.LoanAmountSum,
	})
	infrastructure.RecordProcessingMetrics(ctx, s.metrics, outcome)

	s.logger.InfoContext(ctx, "loan file processed",
		slog.String("filename", filename),
		slog.String("format", string(result.Format)),
		slog.String("output_type", string(outputType)),
		slog.Int("rows", result.Summary.Rows),
		slog.Int("skipped", result.RowsSkipped),
		slog.Float64("total_principal", result.Summary.TotalPrincipal),
		slog.Float64("average_payment", result.Summary.AveragePayment),
		slog.Duration("duration", outcome.Duration))

	return result, nil
}

func (s *LoanService) run(ctx context.Context, filename string, r io.Reader, outputType domain.OutputType, outcome *infrastructure.ProcessingOutcome) (*ProcessResult, error) {
	parsed, err := s.parse(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	if len(parsed.Rows) == 0 {
		return nil, NewPipelineError(ErrNoValidRows, "no valid rows found in file", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	computed, summary := loan.CalculateAll(parsed.Rows)
	skipped := parsed.Skipped + summary.Skipped
	outcome.RowsAccepted = summary.Rows
	outcome.RowsSkipped = skipped
	outcome.LoanAmountSum = summary.TotalPrincipal
	if summary.Rows == 0 {
		return nil, NewPipelineError(ErrNoValidRows, "no valid rows found in file", nil)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	renderCtx, renderSpan := s.tracer.Start(ctx, "loan.render",
		trace.WithAttributes(attribute.Int("rows", len(computed))))
	artifact, err := s.renderer.Render(computed, outputType)
	outcome.RenderDuration = time.Since(renderStart)
	if err != nil {
		infrastructure.RecordError(renderCtx, err)
		renderSpan.End()
		return nil, err
	}
	renderSpan.End()

	return &ProcessResult{
		Artifact:    artifact,
		OutputType:  outputType,
		Summary:     summary,
		RowsSkipped: skipped,
		Format:      parsed.Format,
	}, nil
}

func (s *LoanService) parse(ctx context.Context, filename string, r io.Reader) (*dataprocessing.Result, error) {
	ctx, span := s.tracer.Start(ctx, "loan.parse")
	defer span.End()

	parsed, err := s.parser.Parse(filename, r)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, classifyParseError(err)
	}

	span.SetAttributes(
		attribute.String("file.format", string(parsed.Format)),
		attribute.Int("rows.valid", len(parsed.Rows)),
		attribute.Int("rows.skipped", parsed.Skipped),
	)
	return parsed, nil
}

// Check reports whether the renderer can produce both document types
func (s *LoanService) Check(ctx context.Context) error {
	probe := []domain.ComputedRow{loan.Calculate(domain.InputRow{
		MonthlyIncome: 1000, DebtRatio: 30, DurationMonths: 12, AnnualInterestRate: 5,
	})}
	for _, outputType := range []domain.OutputType{domain.OutputExcel, domain.OutputPDF} {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.renderer.Render(probe, outputType); err != nil {
			return err
		}
	}
	return nil
}
