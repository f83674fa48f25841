// Package dataprocessing reads supermarket sales workbooks and implements the
// cleaning stages applied to the transaction table.
//
// ParseFile loads the first sheet of a workbook into domain.Transaction rows,
// tracking missing cells per field. The stage functions then work on the
// whole table in place:
//
//	RemapLocations   fold Store_Location into Online / Physical
//	DropMissing      remove rows lacking a field (or any required field)
//	CoerceDates      parse the Date column; failures become missing
//	RecomputeTotals  round Unit_Price and derive Total_Sales
//	NormalizeText    title-case and whitespace rules per column
//	Deduplicate      keep the first of identical rows
//	SortByDate       stable sort and row renumbering
//
// Money values use shopspring/decimal and are rounded half away from zero.
// Profile and Sample produce the column statistics and row samples reported
// before and after cleaning.
package dataprocessing
