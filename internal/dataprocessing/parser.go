package dataprocessing

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	apperrors "salescleanup/internal/errors"
	"salescleanup/pkg/contracts/domain"
)

// dateTimeLayout is how Excel serial dates are handed to date coercion
const dateTimeLayout = "2006-01-02 15:04:05"

// maxExcelSerial is the serial of 9999-12-31, the last date Excel can represent
const maxExcelSerial = 2958466

// missingMarkers are the cell values read as "no value", matching the pandas defaults
var missingMarkers = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// IsMissingValue reports whether a raw cell value counts as missing
func IsMissingValue(raw string) bool {
	return missingMarkers[raw]
}

// LoadResult is the table read from the source workbook
type LoadResult struct {
	SheetName    string
	Header       []string
	Transactions []domain.Transaction
	// NumericErrors counts Quantity/Unit_Price cells that could not be parsed
	NumericErrors int
}

// ParseFile reads the first sheet of a sales workbook into transactions.
// The first row must be a header naming every required column; column order is free.
func ParseFile(filePath string, logger *slog.Logger) (*LoadResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("source workbook", err).WithContext("path", filePath)
		}
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("path", filePath)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil).WithContext("path", filePath)
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).WithContext("sheet", sheetName)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("sheet is empty", nil).WithContext("sheet", sheetName)
	}

	columnMap, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	logger.Info("Found sales data in sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	result := &LoadResult{
		SheetName: sheetName,
		Header:    rows[0],
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			logger.Debug("Skipped blank row", slog.Int("row_number", i+1))
			continue
		}

		tx, numericErrors := parseRow(row, columnMap)
		if numericErrors > 0 {
			logger.Debug("Unparsable numeric value",
				slog.Int("row_number", i+1),
				slog.Int("fields", numericErrors))
		}
		result.NumericErrors += numericErrors
		tx.RowID = len(result.Transactions)
		result.Transactions = append(result.Transactions, tx)
	}

	logger.Info("Processing complete",
		slog.Int("total_records", len(result.Transactions)),
		slog.Int("numeric_errors", result.NumericErrors))

	return result, nil
}

// mapColumns maps each known field to its column index in the header row
func mapColumns(header []string) (map[domain.Field]int, error) {
	columnMap := make(map[domain.Field]int)
	for j, name := range header {
		field, ok := domain.FieldByColumn(name)
		if !ok {
			continue
		}
		if _, seen := columnMap[field]; !seen {
			columnMap[field] = j
		}
	}

	var missing []string
	for _, field := range domain.RequiredFields {
		if _, ok := columnMap[field]; !ok {
			missing = append(missing, field.String())
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("could not find required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("header", header)
	}
	return columnMap, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRow converts one sheet row. Unparsable numbers become missing values.
func parseRow(row []string, columnMap map[domain.Field]int) (domain.Transaction, int) {
	var tx domain.Transaction
	numericErrors := 0

	cell := func(f domain.Field) (string, bool) {
		idx, ok := columnMap[f]
		if !ok || idx >= len(row) {
			return "", false
		}
		raw := row[idx]
		if IsMissingValue(raw) {
			return "", false
		}
		return raw, true
	}

	text := func(f domain.Field, dst *string) {
		if v, ok := cell(f); ok {
			*dst = v
		} else {
			tx.SetMissing(f)
		}
	}

	number := func(f domain.Field, dst *decimal.Decimal) {
		v, ok := cell(f)
		if !ok {
			tx.SetMissing(f)
			return
		}
		d, err := parseDecimal(v)
		if err != nil {
			numericErrors++
			tx.SetMissing(f)
			return
		}
		*dst = d
	}

	text(domain.FieldCustomerID, &tx.CustomerID)
	text(domain.FieldStoreLocation, &tx.StoreLocation)
	text(domain.FieldCategory, &tx.Category)
	text(domain.FieldProduct, &tx.Product)
	text(domain.FieldPaymentMethod, &tx.PaymentMethod)
	number(domain.FieldQuantity, &tx.Quantity)
	number(domain.FieldUnitPrice, &tx.UnitPrice)

	if v, ok := cell(domain.FieldDate); ok {
		tx.RawDate = excelSerialToText(v)
	} else {
		tx.SetMissing(domain.FieldDate)
	}

	// Total_Sales is derived; the source value is never trusted
	tx.SetMissing(domain.FieldTotalSales)

	return tx, numericErrors
}

// parseDecimal parses a numeric cell through float64 so that the 17-digit
// representations Excel stores (3.4950000000000001) collapse to their shortest form (3.495)
func parseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return decimal.Zero, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, fmt.Errorf("value out of range: %s", raw)
	}
	return decimal.NewFromFloat(v), nil
}

// excelSerialToText turns a numeric Date cell into a timestamp understood by ParseDate.
// Text cells are returned unchanged.
func excelSerialToText(raw string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || serial <= 0 || serial >= maxExcelSerial {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	// Excel serials carry float noise; round to the nearest second
	return t.Round(time.Second).Format(dateTimeLayout)
}
