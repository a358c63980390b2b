package testutil

import (
	"bytes"
	"encoding/csv"
	"mime/multipart"
	"testing"

	"github.com/xuri/excelize/v2"
)

// LoanHeaders are the source headers of a well-formed upload
var LoanHeaders = []string{
	"Monthly Income (DZD)",
	"Debt Ratio (%)",
	"Loan Duration (months)",
	"Annual Interest Rate (%)",
}

// BuildXLSX writes headers and rows to the first sheet of a new workbook.
// A nil cell is left empty.
func BuildXLSX(t *testing.T, headers []string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headerRow := make([]any, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		t.Fatalf("write header row: %v", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("write row %d: %v", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// BuildCSV encodes headers and rows as comma separated text
func BuildCSV(t *testing.T, headers []string, rows [][]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		t.Fatalf("write csv header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write csv rows: %v", err)
	}
	return buf.Bytes()
}

// MultipartUpload builds a multipart body with an optional file part and
// plain form fields. An empty filename omits the file part.
func MultipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}
