package exporter

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "salescleanup/internal/errors"
	"salescleanup/pkg/contracts/domain"
)

// ExcelWriter writes the cleaned table to a single-sheet workbook
type ExcelWriter struct {
	sheetName string
	logger    *slog.Logger
}

// NewExcelWriter creates a writer for a sheet named sheetName
func NewExcelWriter(sheetName string, logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{sheetName: sheetName, logger: logger}
}

// columnWidths are in Excel character units, one per domain.Columns entry
var columnWidths = []float64{12, 20, 15, 16, 24, 16, 10, 11, 12}

// WriteTransactions writes rows to filePath, replacing any existing file.
// Dates are stored as Excel dates and money cells carry a 0.00 format.
func (w *ExcelWriter) WriteTransactions(filePath string, rows []domain.Transaction) error {
	w.logger.Info("Writing Excel file",
		slog.String("file_path", filePath),
		slog.String("sheet_name", w.sheetName),
		slog.Int("record_count", len(rows)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("path", filePath)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.fill(f, rows); err != nil {
		return apperrors.NewStorageError("failed to build workbook", err).WithContext("path", filePath)
	}
	if err := f.SaveAs(filePath); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).WithContext("path", filePath)
	}
	return nil
}

func (w *ExcelWriter) fill(f *excelize.File, rows []domain.Transaction) error {
	if err := f.SetSheetName(f.GetSheetName(0), w.sheetName); err != nil {
		return err
	}

	dateFormat := "yyyy-mm-dd"
	if DateLayout(rows) == dateTimeLayout {
		dateFormat = "yyyy-mm-dd hh:mm:ss"
	}
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(w.sheetName)
	if err != nil {
		return err
	}
	for i, width := range columnWidths {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(domain.Columns))
	for i, col := range domain.Columns {
		header[i] = col
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i := range rows {
		tx := &rows[i]
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			tx.CustomerID,
			excelize.Cell{StyleID: dateStyle, Value: tx.Date},
			tx.StoreLocation,
			tx.Category,
			tx.Product,
			tx.PaymentMethod,
			tx.Quantity.InexactFloat64(),
			excelize.Cell{StyleID: moneyStyle, Value: tx.UnitPrice.InexactFloat64()},
			excelize.Cell{StyleID: moneyStyle, Value: tx.TotalSales.InexactFloat64()},
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}
	return sw.Flush()
}
