package core

import (
	"errors"
	"fmt"
)

var ErrMissingColumn = errors.New("missing required column")

// Clean projects the key and value columns and keeps the first row for each
// distinct key, preserving source order. Values are not otherwise transformed.
func Clean(t *Table, cols ColumnSpec) ([]Row, error) {
	keyIdx, ok := t.ColumnIndex(cols.Key)
	if !ok {
		return nil, fmt.Errorf("%w %q in %s", ErrMissingColumn, cols.Key, t.Source)
	}
	valIdx, ok := t.ColumnIndex(cols.Value)
	if !ok {
		return nil, fmt.Errorf("%w %q in %s", ErrMissingColumn, cols.Value, t.Source)
	}

	seen := make(map[string]struct{}, len(t.Rows))
	out := make([]Row, 0, len(t.Rows))

	for _, row := range t.Rows {
		admin := cell(row, keyIdx)
		if _, dup := seen[admin]; dup {
			continue
		}
		seen[admin] = struct{}{}

		raw := cell(row, valIdx)
		out = append(out, Row{
			Admin: admin,
			TCUV:  ToNullDecimal(raw),
			Text:  raw,
		})
	}

	return out, nil
}
