package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salescleanup/pkg/contracts/domain"
)

// WorkbookBuilder assembles a single-sheet workbook for tests
type WorkbookBuilder struct {
	sheet string
	rows  [][]any
}

// NewWorkbook starts a workbook whose only sheet is named sheet
func NewWorkbook(sheet string) *WorkbookBuilder {
	return &WorkbookBuilder{sheet: sheet}
}

// NewSalesWorkbook starts a workbook with the sales column header
func NewSalesWorkbook() *WorkbookBuilder {
	return NewWorkbook("Sheet1").Header(domain.Columns...)
}

// Header appends a header row
func (b *WorkbookBuilder) Header(columns ...string) *WorkbookBuilder {
	row := make([]any, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	b.rows = append(b.rows, row)
	return b
}

// Row appends a data row. nil values leave the cell empty.
func (b *WorkbookBuilder) Row(values ...any) *WorkbookBuilder {
	b.rows = append(b.rows, values)
	return b
}

// Save writes the workbook under t.TempDir() and returns its path
func (b *WorkbookBuilder) Save(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	b.SaveTo(t, path)
	return path
}

// SaveTo writes the workbook to path
func (b *WorkbookBuilder) SaveTo(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), b.sheet))
	for r, row := range b.rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(b.sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

// ReadSheet returns the formatted cell values of a sheet
func ReadSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}
