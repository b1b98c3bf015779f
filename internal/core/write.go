package core

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteOptions controls the output file layout.
type WriteOptions struct {
	Columns   ColumnSpec
	Delimiter rune // Defaults to ','
}

// WriteCSV writes rows to path with a header row and no index column.
//
// The file is written to a temporary sibling and renamed into place, so a
// failed write never leaves a partial file at path.
func WriteCSV(path string, rows []Row, opts WriteOptions) (err error) {
	if opts.Columns == (ColumnSpec{}) {
		opts.Columns = DefaultColumns
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tcuv-*.tmp")
	if err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	w.Comma = opts.Delimiter

	if err = w.Write(opts.Columns.Header()); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	for _, r := range rows {
		if err = w.Write([]string{r.Admin, r.FormatTCUV()}); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	return nil
}
