package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/gep-fisheries/internal/logging"
)

// Pipeline loads, cleans and saves the TCUV table.
type Pipeline struct {
	Source    string // Input workbook or CSV
	Sheet     string // Worksheet name; empty for the first sheet
	Output    string // Destination file
	Columns   ColumnSpec
	Delimiter rune

	// Publisher is optional; when set it runs after the output file is saved.
	Publisher Publisher
}

// Run executes every stage in order. A failing stage is logged and ends the
// run; later stages don't execute, so no output file is created when loading
// or cleaning fails.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx, runID := logging.NewRun(ctx)
	logger := logging.FromContext(ctx)
	start := time.Now()

	cols := p.Columns
	if cols == (ColumnSpec{}) {
		cols = DefaultColumns
	}

	// 1. Load
	table, err := Load(p.Source, p.Sheet)
	if err != nil {
		return nil, stageFailed(logger, "load", "an error occurred while loading the file", err,
			slog.String("path", p.Source))
	}
	logger.Info("data loaded",
		"path", table.Source,
		"sheet", table.Sheet,
		"columns", len(table.Header),
		"rows", len(table.Rows),
	)

	// 2. Clean
	rows, err := Clean(table, cols)
	if err != nil {
		return nil, stageFailed(logger, "clean", "an error occurred while cleaning the data", err,
			slog.String("key", cols.Key), slog.String("value", cols.Value))
	}
	duplicates := len(table.Rows) - len(rows)
	logger.Debug("data cleaned", "kept", len(rows), "duplicates", duplicates)

	// 3. Save
	if err := WriteCSV(p.Output, rows, WriteOptions{Columns: cols, Delimiter: p.Delimiter}); err != nil {
		return nil, stageFailed(logger, "save", "an error occurred while saving the file", err,
			slog.String("path", p.Output))
	}
	logger.Info("data saved successfully", "path", p.Output, "rows", len(rows))

	result := &Result{
		RunID:      runID,
		Source:     table.Source,
		Sheet:      table.Sheet,
		Output:     p.Output,
		RowsRead:   len(table.Rows),
		RowsKept:   len(rows),
		Duplicates: duplicates,
	}

	// 4. Publish
	if p.Publisher != nil {
		n, err := p.Publisher.Publish(ctx, rows)
		if err != nil {
			return nil, stageFailed(logger, "publish", "an error occurred while publishing the data", err)
		}
		result.Published = n
		logger.Info("data published", "rows", n)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// stageFailed logs a stage failure with its user-facing explanation and
// returns the error tagged with the stage name.
func stageFailed(logger *slog.Logger, stage, message string, err error, attrs ...slog.Attr) error {
	err = fmt.Errorf("%s: %w", stage, err)
	attrs = append(attrs,
		slog.String("stage", stage),
		slog.String("hint", FormatUserError(err)),
	)
	logging.LogError(logger, message, err, attrs...)
	return err
}
