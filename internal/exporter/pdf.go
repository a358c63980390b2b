package exporter

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"loancalc/pkg/contracts/domain"
)

// PDFTitle heads every page of the report
const PDFTitle = "Détails du crédit"

const (
	pdfMarginTop    = 40.0
	pdfMarginSide   = 40.0
	pdfMarginBottom = 30.0
	pdfColumnWidth  = 180.0
	pdfRowHeight    = 18.0
	pdfFontSize     = 10.0
	pdfTitleSize    = 18.0
)

// RenderPDF writes one A4 page per record with a label/value table.
// Core fonts are cp1252, so text goes through a translator.
func RenderPDF(rows []domain.ComputedRow) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pdfMarginSide, pdfMarginTop, pdfMarginSide)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.SetTitle(PDFTitle, true)
	pdf.SetCreator("loancalc", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	left := (pageWidth - 2*pdfColumnWidth) / 2

	for _, row := range rows {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", pdfTitleSize)
		pdf.CellFormat(0, pdfTitleSize+4, tr(PDFTitle), "", 1, "C", false, 0, "")
		pdf.Ln(12)

		pdf.SetDrawColor(128, 128, 128)
		pdf.SetLineWidth(0.5)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(0, 0, 0)

		values := displayValues(row)
		for i, label := range Headers {
			style := ""
			if i == 0 {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, pdfFontSize)
			pdf.SetX(left)
			pdf.CellFormat(pdfColumnWidth, pdfRowHeight, tr(label), "1", 0, "CM", true, 0, "")
			pdf.CellFormat(pdfColumnWidth, pdfRowHeight, tr(values[i]), "1", 1, "CM", true, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
