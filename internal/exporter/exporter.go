package exporter

import (
	"fmt"
	"log/slog"

	apperrors "loancalc/internal/errors"
	"loancalc/pkg/contracts/domain"
)

// Attachment names and media types per output type
const (
	ExcelFilename    = "loan_results.xlsx"
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	PDFFilename      = "loan_report.pdf"
	PDFContentType   = "application/pdf"
)

// Renderer turns computed rows into an Artifact
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a renderer
func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger.With(slog.String("component", "renderer"))}
}

// Render produces the document selected by outputType. Anything other than
// pdf renders a workbook.
func (r *Renderer) Render(rows []domain.ComputedRow, outputType domain.OutputType) (*domain.Artifact, error) {
	var (
		artifact domain.Artifact
		err      error
	)

	switch outputType {
	case domain.OutputPDF:
		artifact.Filename, artifact.ContentType = PDFFilename, PDFContentType
		artifact.Data, err = RenderPDF(rows)
	default:
		artifact.Filename, artifact.ContentType = ExcelFilename, ExcelContentType
		artifact.Data, err = RenderXLSX(rows)
	}
	if err != nil {
		return nil, apperrors.NewRenderError(fmt.Sprintf("%s output failed", outputType), err).
			WithContext("rows", len(rows))
	}

	r.logger.Debug("document rendered",
		slog.String("output_type", string(outputType)),
		slog.Int("rows", len(rows)),
		slog.Int("bytes", len(artifact.Data)))

	return &artifact, nil
}
