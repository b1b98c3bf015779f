package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/gep-fisheries/internal/logging"
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrEmptyFile     = errors.New("empty file")
	ErrSheetNotFound = errors.New("sheet not found")
)

// Load reads a worksheet into a Table.
//
// Files ending in .csv are parsed as comma-separated text (a UTF-8 BOM is
// dropped and invalid UTF-8 replaced); anything else is opened as an Excel
// workbook. sheet selects a worksheet by name; empty means the first sheet.
// Fully empty rows are skipped.
func Load(path, sheet string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a spreadsheet", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	var (
		records [][]string
		name    string
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		records, err = readCSV(path)
	} else {
		records, name, err = readWorkbook(path, sheet)
	}
	if err != nil {
		return nil, err
	}

	return newTable(path, name, records)
}

// readWorkbook returns the raw cell values of one worksheet.
func readWorkbook(path, sheet string) ([][]string, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("invalid workbook %s: %w", path, err)
	}
	defer logging.SafeCloseWithLogging(f, slog.Default(), "close_workbook")

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, "", fmt.Errorf("%w: %s has no worksheets", ErrEmptyFile, path)
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, "", fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, path)
	}

	// Raw values keep numbers as stored rather than as displayed by the cell format
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, "", fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}

	return rows, sheet, nil
}

// readCSV returns every record of a CSV file.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer logging.SafeCloseWithLogging(f, slog.Default(), "close_csv")

	return parseCSV(f)
}

// parseCSV reads all records from r, tolerating ragged rows.
func parseCSV(r io.Reader) ([][]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	return records, nil
}

// newTable splits records into header and data rows.
func newTable(source, sheet string, records [][]string) (*Table, error) {
	records = dropEmptyRows(records)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no rows", ErrEmptyFile, source)
	}

	header := records[0]
	rows := records[1:]
	for i, row := range rows {
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			rows[i] = padded
		}
	}

	return &Table{
		Source: source,
		Sheet:  sheet,
		Header: header,
		Rows:   rows,
	}, nil
}

func dropEmptyRows(records [][]string) [][]string {
	out := records[:0]
	for _, row := range records {
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// ColumnIndex returns the position of a header column.
// An exact match wins; otherwise names are compared cleaned and case-insensitively.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	i, ok := MakeHeaderIndex(t.Header)[strings.ToLower(CleanCell(name))]
	return i, ok
}
