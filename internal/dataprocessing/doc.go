// Package dataprocessing turns an uploaded loan sheet into validated input rows.
//
// # Pipeline
//
//	upload bytes → ReadTable → Table.RenameColumns → MissingColumns → ExtractRows → []domain.InputRow
//
// ReadTable accepts xlsx workbooks (first sheet, first row as headers) and
// comma or semicolon separated text. The format is chosen from the file
// extension and falls back to sniffing the content.
//
// # Row rules
//
//   - an empty cell counts as 0
//   - a row with any non-numeric required cell is skipped
//   - a row whose cells are all blank is ignored and not counted as skipped
//   - numbers may carry thousands separators and a trailing percent sign
//
// Parser.Parse runs the whole pipeline and reports how many rows were
// accepted and skipped. It fails when a required column is missing; it does
// not fail when every row is skipped, which is left to the caller.
package dataprocessing
