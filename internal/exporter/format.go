package exporter

import (
	"time"

	"github.com/shopspring/decimal"

	"salescleanup/pkg/contracts/domain"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// formatMoney formats a currency value with exactly 2 decimal places
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// formatQuantity formats a quantity without trailing zeros
func formatQuantity(d decimal.Decimal) string {
	return d.String()
}

// DateLayout picks the date rendering for a table: date only when every
// timestamp falls on midnight, date and time otherwise.
func DateLayout(rows []domain.Transaction) string {
	for i := range rows {
		t := rows[i].Date
		if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
			return dateTimeLayout
		}
	}
	return dateLayout
}

func formatDate(t time.Time, layout string) string {
	return t.Format(layout)
}

// FormatRecord renders one transaction in header order
func FormatRecord(tx *domain.Transaction, layout string) []string {
	return []string{
		tx.CustomerID,
		formatDate(tx.Date, layout),
		tx.StoreLocation,
		tx.Category,
		tx.Product,
		tx.PaymentMethod,
		formatQuantity(tx.Quantity),
		formatMoney(tx.UnitPrice),
		formatMoney(tx.TotalSales),
	}
}

// FormatRecords renders every transaction with a shared date layout
func FormatRecords(rows []domain.Transaction) [][]string {
	layout := DateLayout(rows)
	records := make([][]string, len(rows))
	for i := range rows {
		records[i] = FormatRecord(&rows[i], layout)
	}
	return records
}
