// Package exporter writes the cleaned transaction table.
//
// CSVWriter produces a comma-separated file and ExcelWriter a single-sheet
// workbook. Both take the same header (domain.Columns) and the same rendered
// values, so the two files carry identical content. No row-index column is
// written.
//
// Example usage:
//
//	csvWriter := exporter.NewCSVWriter(logger)
//	if err := csvWriter.WriteTransactions("cleaned.csv", rows); err != nil {
//	    return err
//	}
//
//	xlsxWriter := exporter.NewExcelWriter("Cleaned Data", logger)
//	err := xlsxWriter.WriteTransactions("cleaned.xlsx", rows)
//
// Write failures are returned as STORAGE errors.
package exporter
