package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	apperrors "loancalc/internal/errors"
)

// Format identifies the encoding of an uploaded table
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
)

// ErrUnsupportedFormat is returned for content that is neither xlsx nor text
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Table is the raw header and data rows of the first sheet
type Table struct {
	Headers []string
	Rows    [][]string
	Format  Format
}

// DetectFormat picks the table format from the file name, sniffing the
// leading bytes when the extension is unknown.
func DetectFormat(filename string, head []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	}

	switch {
	case bytes.HasPrefix(head, zipMagic):
		return FormatXLSX, nil
	case bytes.HasPrefix(head, oleMagic):
		return "", fmt.Errorf("%w: legacy .xls workbooks must be saved as .xlsx", ErrUnsupportedFormat)
	case len(head) > 0 && utf8.Valid(head) && !bytes.ContainsRune(head, 0):
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// ReadTable reads the whole upload and decodes it as a table
func ReadTable(filename string, r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewParsingError("cannot read upload", err)
	}
	if len(data) == 0 {
		return nil, apperrors.NewParsingError("file is empty", nil)
	}

	format, err := DetectFormat(filename, data)
	if err != nil {
		return nil, apperrors.NewParsingError("cannot detect file format", err)
	}

	var records [][]string
	switch format {
	case FormatXLSX:
		records, err = readXLSX(data)
	case FormatCSV:
		records, err = readCSV(data)
	}
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("cannot decode %s file", format), err).
			WithContext("filename", filename)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("file has no header row", nil)
	}

	return &Table{
		Headers: lo.Map(records[0], func(h string, _ int) string { return strings.TrimSpace(h) }),
		Rows:    records[1:],
		Format:  format,
	}, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	return r.ReadAll()
}

// detectDelimiter prefers ';' when the header line has semicolons and no commas
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.IndexByte(line, ';') >= 0 && bytes.IndexByte(line, ',') < 0 {
		return ';'
	}
	return ','
}

// RenameColumns replaces known source headers with their internal names.
// Headers are compared after trimming surrounding whitespace.
func (t *Table) RenameColumns(mapping map[string]string) {
	for i, h := range t.Headers {
		if internal, ok := mapping[strings.TrimSpace(h)]; ok {
			t.Headers[i] = internal
		}
	}
}

// ColumnIndex maps each header to its first position
func (t *Table) ColumnIndex() map[string]int {
	index := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}
	return index
}

// MissingColumns returns the required names absent from the headers, in required order
func (t *Table) MissingColumns(required []string) []string {
	index := t.ColumnIndex()
	return lo.Filter(required, func(name string, _ int) bool {
		_, ok := index[name]
		return !ok
	})
}
