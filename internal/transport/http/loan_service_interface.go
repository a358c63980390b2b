package http

import (
	"context"
	"io"

	"loancalc/internal/services"
	"loancalc/pkg/contracts/domain"
)

// LoanServiceInterface defines the upload pipeline used by ProcessHandler
type LoanServiceInterface interface {
	Process(ctx context.Context, filename string, r io.Reader, outputType domain.OutputType) (*services.ProcessResult, error)
}
