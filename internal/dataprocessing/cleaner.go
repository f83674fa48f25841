package dataprocessing

import (
	"sort"

	"salescleanup/pkg/contracts/domain"
)

// LocationMapping folds store locations into the two sales channels
var LocationMapping = map[string]string{
	"Online":   "Online",
	"Suburb":   "Physical",
	"Downtown": "Physical",
	"Mall":     "Physical",
}

// RemapLocations rewrites Store_Location through LocationMapping.
// Values not in the mapping are left unchanged and returned in first-seen order.
func RemapLocations(rows []domain.Transaction) (unmapped []string) {
	seen := make(map[string]bool)
	for i := range rows {
		tx := &rows[i]
		if tx.IsMissing(domain.FieldStoreLocation) {
			continue
		}
		if mapped, ok := LocationMapping[tx.StoreLocation]; ok {
			tx.StoreLocation = mapped
			continue
		}
		if !seen[tx.StoreLocation] {
			seen[tx.StoreLocation] = true
			unmapped = append(unmapped, tx.StoreLocation)
		}
	}
	return unmapped
}

// UniqueLocations returns the distinct Store_Location values in first-seen order
func UniqueLocations(rows []domain.Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range rows {
		if rows[i].IsMissing(domain.FieldStoreLocation) {
			continue
		}
		loc := rows[i].StoreLocation
		if !seen[loc] {
			seen[loc] = true
			out = append(out, loc)
		}
	}
	return out
}

// DropMissing keeps rows that have every one of fields. With no fields given
// the required set is used. Order is preserved.
func DropMissing(rows []domain.Transaction, fields ...domain.Field) (kept []domain.Transaction, removed int) {
	if len(fields) == 0 {
		fields = domain.RequiredFields
	}
	kept = rows[:0]
	for _, tx := range rows {
		if hasAll(&tx, fields) {
			kept = append(kept, tx)
		}
	}
	return kept, len(rows) - len(kept)
}

func hasAll(tx *domain.Transaction, fields []domain.Field) bool {
	for _, f := range fields {
		if tx.IsMissing(f) {
			return false
		}
	}
	return true
}

// CoerceDates parses RawDate into Date. Rows whose date cannot be parsed
// get a missing Date and are counted in invalid.
func CoerceDates(rows []domain.Transaction) (invalid int) {
	for i := range rows {
		tx := &rows[i]
		if tx.IsMissing(domain.FieldDate) {
			continue
		}
		t, err := ParseDate(tx.RawDate)
		if err != nil {
			tx.SetMissing(domain.FieldDate)
			invalid++
			continue
		}
		tx.Date = t
	}
	return invalid
}

// RecomputeTotals rounds Unit_Price and derives Total_Sales from the rounded price.
// Rows lacking Quantity or Unit_Price keep a missing Total_Sales.
func RecomputeTotals(rows []domain.Transaction) {
	for i := range rows {
		tx := &rows[i]
		if tx.IsMissing(domain.FieldUnitPrice) || tx.IsMissing(domain.FieldQuantity) {
			tx.SetMissing(domain.FieldTotalSales)
			continue
		}
		tx.UnitPrice = RoundMoney(tx.UnitPrice)
		tx.TotalSales = LineTotal(tx.Quantity, tx.UnitPrice)
		tx.ClearMissing(domain.FieldTotalSales)
	}
}

// NormalizeText applies the per-column formatting rules in place
func NormalizeText(rows []domain.Transaction, n *TextNormalizer) {
	if n == nil {
		n = NewTextNormalizer()
	}
	for i := range rows {
		tx := &rows[i]
		if !tx.IsMissing(domain.FieldCategory) {
			tx.Category = n.Category(tx.Category)
		}
		if !tx.IsMissing(domain.FieldPaymentMethod) {
			tx.PaymentMethod = n.PaymentMethod(tx.PaymentMethod)
		}
		if !tx.IsMissing(domain.FieldStoreLocation) {
			tx.StoreLocation = n.StoreLocation(tx.StoreLocation)
		}
		if !tx.IsMissing(domain.FieldProduct) {
			tx.Product = n.Product(tx.Product)
		}
	}
}

// Deduplicate removes rows whose every field equals an earlier row's.
// The first occurrence is kept and order is preserved.
func Deduplicate(rows []domain.Transaction) (kept []domain.Transaction, removed int) {
	seen := make(map[string]struct{}, len(rows))
	kept = rows[:0]
	for _, tx := range rows {
		key := tx.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, tx)
	}
	return kept, len(rows) - len(kept)
}

// SortByDate orders rows by Date ascending, keeping the relative order of equal
// dates, then renumbers RowID from zero.
func SortByDate(rows []domain.Transaction) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	ReindexRows(rows)
}

// ReindexRows assigns RowID 0..n-1 in slice order
func ReindexRows(rows []domain.Transaction) {
	for i := range rows {
		rows[i].RowID = i
	}
}
