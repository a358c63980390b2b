package errors

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantMsg    string
		wantStatus int
	}{
		{
			name:       "parsing with cause",
			err:        NewParsingError("cannot open workbook", io.ErrUnexpectedEOF),
			wantMsg:    "[PARSING] cannot open workbook: unexpected EOF",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation without cause",
			err:        NewAppValidationError("row limit exceeded"),
			wantMsg:    "[VALIDATION] row limit exceeded",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "render",
			err:        NewRenderError("pdf output failed", errors.New("font missing")),
			wantMsg:    "[RENDER] pdf output failed: font missing",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "config",
			err:        NewConfigError("invalid configuration", nil),
			wantMsg:    "[CONFIG] invalid configuration",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode())
		})
	}
}

func TestAppError_UnwrapAndContext(t *testing.T) {
	err := NewParsingError("cannot read csv", io.ErrUnexpectedEOF).
		WithContext("file", "loans.csv").
		WithContext("line", 4)

	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, "loans.csv", err.Context["file"])
	assert.Equal(t, 4, err.Context["line"])

	bare := &AppError{Type: ErrTypeRender, Message: "x"}
	bare.WithContext("format", "pdf")
	assert.Equal(t, "pdf", bare.Context["format"])
}
