package core

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/gep-fisheries/internal/logging"
)

type fakePublisher struct {
	rows []Row
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, rows []Row) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.rows = rows
	return int64(len(rows)), nil
}

// captureLogs routes the default logger to a buffer for the test's duration.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, "debug", "text"))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestPipeline_Run(t *testing.T) {
	logs := captureLogs(t)
	src := writeWorkbook(t, "catch.xlsx",
		[]any{"admin", "species", "TCUV"},
		[]any{"A", "x", 1},
		[]any{"B", "y", 2},
		[]any{"A", "z", 3},
	)
	out := filepath.Join(t.TempDir(), "gep-subsistence-fisheries.csv")

	p := &Pipeline{Source: src, Output: out}
	res, err := p.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "admin,TCUV\nA,1\nB,2\n", string(data))

	assert.Equal(t, 3, res.RowsRead)
	assert.Equal(t, 2, res.RowsKept)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, "Sheet1", res.Sheet)
	assert.Equal(t, out, res.Output)
	assert.NotEmpty(t, res.RunID)
	assert.Zero(t, res.Published)

	assert.Contains(t, logs.String(), "data saved successfully")
	assert.Contains(t, logs.String(), "run_id="+res.RunID)
}

func TestPipeline_MissingInputWritesNothing(t *testing.T) {
	logs := captureLogs(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "gep-subsistence-fisheries.csv")

	p := &Pipeline{Source: filepath.Join(dir, "Rec fish food.xlsx"), Output: out}
	res, err := p.Run(context.Background())

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.NoFileExists(t, out)
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "FILE001")
}

func TestPipeline_MissingColumnWritesNothing(t *testing.T) {
	captureLogs(t)
	src := writeWorkbook(t, "catch.xlsx",
		[]any{"country", "TCUV"},
		[]any{"A", 1},
	)
	out := filepath.Join(t.TempDir(), "out.csv")

	_, err := (&Pipeline{Source: src, Output: out}).Run(context.Background())

	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.NoFileExists(t, out)
}

func TestPipeline_CSVInputAndDelimiter(t *testing.T) {
	captureLogs(t)
	src := writeFile(t, "catch.csv", "admin,TCUV\nA,1\nA,2\nB,\n")
	out := filepath.Join(t.TempDir(), "out.tsv")

	_, err := (&Pipeline{Source: src, Output: out, Delimiter: '\t'}).Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "admin\tTCUV\nA\t1\nB\t\n", string(data))
}

func TestPipeline_Publishes(t *testing.T) {
	captureLogs(t)
	src := writeFile(t, "catch.csv", "admin,TCUV\nA,1\nB,2\nA,3\n")
	pub := &fakePublisher{}

	res, err := (&Pipeline{
		Source:    src,
		Output:    filepath.Join(t.TempDir(), "out.csv"),
		Publisher: pub,
	}).Run(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, res.Published)
	assert.Equal(t, [][2]string{{"A", "1"}, {"B", "2"}}, pairs(pub.rows))
}

func TestPipeline_PublishFailureKeepsOutput(t *testing.T) {
	logs := captureLogs(t)
	src := writeFile(t, "catch.csv", "admin,TCUV\nA,1\n")
	out := filepath.Join(t.TempDir(), "out.csv")
	boom := errors.New("dial tcp 127.0.0.1:5432: connection refused")

	_, err := (&Pipeline{Source: src, Output: out, Publisher: &fakePublisher{err: boom}}).Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.FileExists(t, out)
	assert.Contains(t, logs.String(), "DB004")
}
