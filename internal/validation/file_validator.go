// Package validation checks local files before the CLI hands them to the
// loan pipeline.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"loancalc/pkg/contracts/domain"
)

// InputExtensions are the sheet formats the parser reads
var InputExtensions = []string{".xlsx", ".xlsm", ".csv"}

// outputExtensions maps each output type to its file extension
var outputExtensions = map[domain.OutputType]string{
	domain.OutputExcel: ".xlsx",
	domain.OutputPDF:   ".pdf",
}

// FileValidator validates CLI input and output paths
type FileValidator struct {
	logger   *slog.Logger
	maxBytes int64
}

// NewFileValidator creates a file validator. maxBytes caps input size; 0
// disables the check.
func NewFileValidator(logger *slog.Logger, maxBytes int64) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger:   logger,
		maxBytes: maxBytes,
	}
}

// ValidateInputFile checks that path is a readable loan sheet
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("file", path))
		return fmt.Errorf("input file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") {
		v.logger.Warn("Rejecting temporary Excel file",
			slog.String("file", path))
		return fmt.Errorf("file %s is a temporary Excel file", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supported(ext) {
		return fmt.Errorf("file %s has unsupported extension %q (want one of %s)",
			path, ext, strings.Join(InputExtensions, ", "))
	}

	if info.Size() == 0 {
		return fmt.Errorf("file %s is empty", path)
	}
	if v.maxBytes > 0 && info.Size() > v.maxBytes {
		return fmt.Errorf("file %s is %d bytes, the limit is %d", path, info.Size(), v.maxBytes)
	}

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputPath checks that path can receive a document of outputType.
// Missing parent directories are created.
func (v *FileValidator) ValidateOutputPath(path string, outputType domain.OutputType) error {
	if want, ok := outputExtensions[outputType]; ok {
		if ext := strings.ToLower(filepath.Ext(path)); ext != "" && ext != want {
			return fmt.Errorf("output %s does not match format %s (want %s)", path, outputType, want)
		}
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("output %s is a directory", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".loancalc-*")
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	return nil
}

func supported(ext string) bool {
	for _, e := range InputExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
