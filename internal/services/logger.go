package services

import (
	"context"
	"log/slog"

	apperrors "loancalc/internal/errors"
)

// logPipelineError logs a failed pipeline stage. Client mistakes log at warn,
// server faults at error.
func logPipelineError(ctx context.Context, logger *slog.Logger, stage string, err error, attrs ...slog.Attr) {
	kind := ErrorKind(err)
	all := []slog.Attr{
		slog.String("stage", stage),
		slog.String("error.kind", kind),
		slog.String("error", err.Error()),
	}
	all = append(all, attrs...)

	level := slog.LevelWarn
	if kind == "internal" || kind == string(apperrors.ErrTypeRender) {
		level = slog.LevelError
	}
	logger.LogAttrs(ctx, level, "loan processing failed", all...)
}
