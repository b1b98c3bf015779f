package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows to sheet "Sheet1" of a new workbook in a temp dir
// and returns its path. Cell values keep their Go types, so numbers are stored
// as numeric cells.
func writeWorkbook(t *testing.T, name string, rows ...[]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", addr, &row))
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// writeFile creates a file with the given content in a temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// table builds an in-memory Table from string rows; the first row is the header.
func table(rows ...[]string) *Table {
	return &Table{Source: "test", Header: rows[0], Rows: rows[1:]}
}
