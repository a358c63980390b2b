// Package exporter renders computed loan rows as downloadable documents.
//
// Two formats are supported:
//
//   - excel: an xlsx workbook with one sheet, a French header row and one
//     row per computed record (excelize)
//   - pdf: an A4 document with one page per record, each holding a
//     two-column label/value table (fpdf)
//
// Renderer.Render picks the format from a domain.OutputType and returns a
// domain.Artifact carrying the bytes, the attachment filename and the media
// type. Both formats share the column labels and value formatting defined in
// format.go.
package exporter
