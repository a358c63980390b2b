package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "loancalc/internal/errors"
	"loancalc/internal/services"
	"loancalc/pkg/contracts/domain"
)

// Multipart field names of the process endpoint
const (
	FileField       = "file"
	OutputTypeField = "output_type"
)

// defaultMultipartMemory is kept in memory before parts spill to temp files
const defaultMultipartMemory = 8 << 20

// ProcessHandler serves the loan upload endpoint
type ProcessHandler struct {
	service      LoanServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	maxMemory    int64
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(service LoanServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ProcessHandler {
	return &ProcessHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "process")),
		errorHandler: errorHandler,
		maxMemory:    defaultMultipartMemory,
	}
}

// RegisterRoutes mounts POST /process/ and POST /process
func (h *ProcessHandler) RegisterRoutes(r chi.Router) {
	r.Post("/process/", h.Process)
	r.Post("/process", h.Process)
}

// Process handles POST /process/. The response is the rendered document as
// an attachment.
func (h *ProcessHandler) Process(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		h.errorHandler.HandleError(w, r, toAPIError(formError(err)))
		return
	}
	defer r.MultipartForm.RemoveAll()

	outputType, known := domain.ParseOutputType(r.FormValue(OutputTypeField))
	if !known {
		h.logger.DebugContext(ctx, "unknown output type, rendering excel",
			slog.String("output_type", r.FormValue(OutputTypeField)))
	}

	file, header, err := r.FormFile(FileField)
	if err != nil {
		h.errorHandler.HandleError(w, r, toAPIError(formError(err)))
		return
	}
	defer file.Close()

	result, err := h.service.Process(ctx, header.Filename, file, outputType)
	if err != nil {
		h.errorHandler.HandleError(w, r, toAPIError(err))
		return
	}

	artifact := result.Artifact
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		h.logger.WarnContext(ctx, "failed to write response",
			slog.String("error", err.Error()))
	}
}

// formError classifies a multipart parsing failure
func formError(err error) error {
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return services.MissingFileError(err)
	default:
		return services.UnreadableFileError(err)
	}
}

// toAPIError maps pipeline failures to their HTTP form. Other errors pass
// through to the error handler unchanged.
func toAPIError(err error) error {
	var pe *services.PipelineError
	if !errors.As(err, &pe) {
		return err
	}

	switch pe.Kind {
	case services.ErrMissingFile:
		return apierrors.MissingFile(pe.Detail)
	case services.ErrMissingColumns:
		return apierrors.MissingColumns(pe.Detail, pe.Columns)
	case services.ErrNoValidRows:
		return apierrors.NoValidRows(pe.Detail)
	case services.ErrTooManyRows:
		return apierrors.NewValidationError(pe.Detail)
	default:
		return apierrors.UnreadableFile(pe.Detail)
	}
}
