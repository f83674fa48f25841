package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "salescleanup/internal/errors"
	"salescleanup/internal/shared/testutil"
	"salescleanup/pkg/contracts/domain"
)

func TestExcelWriterWriteTransactions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned", "sales.xlsx")

	err := NewExcelWriter("Cleaned Data", nil).WriteTransactions(path, cleanedRows())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Cleaned Data"}, f.GetSheetList())

	rows := testutil.ReadSheet(t, path, "Cleaned Data")
	require.Len(t, rows, 3)
	assert.Equal(t, domain.Columns, rows[0])
	assert.Equal(t, []string{"C100", "2023-02-10", "Physical", "Dairy", "Whole_Milk", "CreditCard", "2", "3.50", "7.00"}, rows[1])
	assert.Equal(t, "Snacks, Sweet", rows[2][3])
}

func TestExcelWriterMatchesCSV(t *testing.T) {
	dir := t.TempDir()
	rows := cleanedRows()

	csvPath := filepath.Join(dir, "sales.csv")
	xlsxPath := filepath.Join(dir, "sales.xlsx")
	require.NoError(t, NewCSVWriter(nil).WriteTransactions(csvPath, rows))
	require.NoError(t, NewExcelWriter("Cleaned Data", nil).WriteTransactions(xlsxPath, rows))

	assert.Equal(t, readCSV(t, csvPath), testutil.ReadSheet(t, xlsxPath, "Cleaned Data"))
}

func TestExcelWriterEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, NewExcelWriter("Cleaned Data", nil).WriteTransactions(path, nil))

	rows := testutil.ReadSheet(t, path, "Cleaned Data")
	require.Len(t, rows, 1)
	assert.Equal(t, domain.Columns, rows[0])
}

func TestExcelWriterStorageError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := NewExcelWriter("Cleaned Data", nil).WriteTransactions(filepath.Join(blocker, "sales.xlsx"), cleanedRows())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
