package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ColumnSpec names the key and value columns projected by Clean.
type ColumnSpec struct {
	Key   string // Country identifier column: "admin"
	Value string // Statistic column: "TCUV"
}

// DefaultColumns are the column names used by the source dataset.
var DefaultColumns = ColumnSpec{Key: "admin", Value: "TCUV"}

// Header returns the output header row.
func (c ColumnSpec) Header() []string {
	return []string{c.Key, c.Value}
}

// Table is a loaded worksheet: a header row and data rows of raw cell text.
// Every data row is at least as wide as the header.
type Table struct {
	Source string // File the table was read from
	Sheet  string // Worksheet name; empty for CSV input
	Header []string
	Rows   [][]string
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// Row is one country's statistic.
type Row struct {
	Admin string
	TCUV  decimal.NullDecimal // Valid=false for empty or non-numeric cells
	Text  string              // Cell as loaded; written verbatim when TCUV is not numeric
}

// FormatTCUV returns the value as written to the output file.
func (r Row) FormatTCUV() string {
	if r.TCUV.Valid {
		return r.TCUV.Decimal.String()
	}
	return r.Text
}

// Publisher receives the cleaned rows after the output file is written.
type Publisher interface {
	Publish(ctx context.Context, rows []Row) (int64, error)
}

// Result summarizes a completed run.
type Result struct {
	RunID      string
	Source     string
	Sheet      string
	Output     string
	RowsRead   int
	RowsKept   int
	Duplicates int
	Published  int64
	Duration   time.Duration
}
