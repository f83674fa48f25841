package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salescleanup/internal/errors"
	"salescleanup/internal/shared/testutil"
	"salescleanup/pkg/contracts/domain"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriterWriteTransactions(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "cleaned", "sales.csv")

	err := NewCSVWriter(logger).WriteTransactions(path, cleanedRows())
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, domain.Columns, records[0])
	assert.Equal(t, "C100", records[1][0])
	assert.Equal(t, "2023-02-10", records[1][1])
	assert.Equal(t, "7.00", records[1][8])
	assert.Equal(t, "Snacks, Sweet", records[2][3], "quoted field survives")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, byte(0xEF), raw[0], "no byte order mark by default")

	assert.True(t, handler.ContainsAttr("record_count", int64(2)))
}

func TestCSVWriterReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,content\n1,2\n3,4\n5,6\n"), 0644))

	require.NoError(t, NewCSVWriter(nil).WriteTransactions(path, cleanedRows()[:1]))

	assert.Len(t, readCSV(t, path), 2)
}

func TestCSVWriterBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	err := NewCSVWriter(nil).WriteCSV(path, WriteOptions{
		Headers:   []string{"a"},
		Records:   [][]string{{"1"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF, 'a', '\n', '1', '\n'}, raw)
}

func TestCSVWriterStorageError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := NewCSVWriter(nil).WriteTransactions(filepath.Join(blocker, "sales.csv"), cleanedRows())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
