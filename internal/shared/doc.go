// Package shared holds helpers used by more than one package of the loan
// calculator that do not belong to any single layer.
//
// The testutil subpackage provides:
//
//   - a capturing slog handler for asserting on log output
//   - in-memory spreadsheet fixtures (xlsx via excelize, csv)
//   - multipart request builders for upload tests
//
// Nothing here may import application packages under internal/, so every
// package can use it from its tests without creating import cycles.
package shared
