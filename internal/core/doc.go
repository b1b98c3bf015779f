// Package core extracts the Total Catch Use Value (TCUV) per country from the
// Lynch et al. (2024) recreational and subsistence fisheries dataset.
//
// It has no UI or database dependencies and can be driven by the CLI, tests,
// or any other frontend.
//
// # Stages
//
// A [Pipeline] runs three stages in order and stops at the first failure:
//
//  1. [Load] reads the first (or a named) worksheet of an .xlsx workbook, or a
//     .csv export, into a [Table] of text cells.
//  2. [Clean] projects the "admin" and "TCUV" columns and keeps the first row
//     for each admin value, in source order.
//  3. [WriteCSV] writes the rows with an "admin,TCUV" header and no index column.
//
// An optional [Publisher] receives the cleaned rows after the file is written.
//
// # Error Handling
//
// Stage failures wrap the sentinel errors [ErrFileNotFound], [ErrEmptyFile],
// [ErrSheetNotFound] and [ErrMissingColumn]. [MapError] turns any of them into a
// coded, human-readable message:
//
//   - FILE001-FILE005: input file errors (missing, empty, unreadable)
//   - VAL004: a projected column is missing from the header
//   - OUT001: the output file could not be written
//   - DB004-DB006: publishing failed
package core
