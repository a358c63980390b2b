package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	apperrors "loancalc/internal/errors"
	"loancalc/pkg/contracts/domain"
)

// MissingColumnsError reports required columns absent after renaming
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: [%s]", strings.Join(e.Columns, " "))
}

// Options bounds the work done for a single upload
type Options struct {
	// MaxRows rejects uploads with more data rows; 0 disables the limit
	MaxRows int
}

// Result is the outcome of parsing one upload
type Result struct {
	Rows    []domain.InputRow
	Skipped int
	Format  Format
}

// Parser reads uploads into validated input rows
type Parser struct {
	logger *slog.Logger
	opts   Options
}

// NewParser creates a parser
func NewParser(logger *slog.Logger, opts Options) *Parser {
	return &Parser{
		logger: logger.With(slog.String("component", "parser")),
		opts:   opts,
	}
}

// Parse reads the upload, validates the columns and extracts numeric rows
func (p *Parser) Parse(filename string, r io.Reader) (*Result, error) {
	table, err := ReadTable(filename, r)
	if err != nil {
		return nil, err
	}

	table.RenameColumns(domain.SourceColumns)
	if missing := table.MissingColumns(domain.RequiredFields); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	if p.opts.MaxRows > 0 && len(table.Rows) > p.opts.MaxRows {
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("file has %d data rows, the limit is %d", len(table.Rows), p.opts.MaxRows))
	}

	rows, skipped := p.ExtractRows(table)

	p.logger.Debug("upload parsed",
		slog.String("filename", filename),
		slog.String("format", string(table.Format)),
		slog.Int("rows", len(rows)),
		slog.Int("skipped", skipped))

	return &Result{Rows: rows, Skipped: skipped, Format: table.Format}, nil
}

// ExtractRows converts data rows to InputRows. The table must already carry
// the internal column names.
func (p *Parser) ExtractRows(table *Table) ([]domain.InputRow, int) {
	index := table.ColumnIndex()
	rows := make([]domain.InputRow, 0, len(table.Rows))
	skipped := 0

	for i, record := range table.Rows {
		if isBlank(record) {
			continue
		}

		// header is line 1
		line := i + 2
		values := make([]float64, len(domain.RequiredFields))
		valid := true
		for j, field := range domain.RequiredFields {
			v, ok := ParseNumber(cell(record, index[field]))
			if !ok {
				p.logger.Debug("skipping non-numeric row",
					slog.Int("line", line),
					slog.String("column", field))
				valid = false
				break
			}
			values[j] = v
		}
		if !valid {
			skipped++
			continue
		}

		rows = append(rows, domain.InputRow{
			Line:               line,
			MonthlyIncome:      values[0],
			DebtRatio:          values[1],
			DurationMonths:     values[2],
			AnnualInterestRate: values[3],
		})
	}

	return rows, skipped
}

// ParseNumber parses a spreadsheet cell. Empty cells are 0. Thousands
// separators and a trailing percent sign are accepted; NaN and infinities
// are not numbers.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}

	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func cell(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

func isBlank(record []string) bool {
	return lo.EveryBy(record, func(c string) bool { return strings.TrimSpace(c) == "" })
}
