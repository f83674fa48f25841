package dataprocessing

import (
	"math/rand/v2"
	"sort"

	"github.com/shopspring/decimal"

	"salescleanup/pkg/contracts/domain"
)

// ColumnProfile summarizes one column of the table
type ColumnProfile struct {
	Column   string `json:"column"`
	Count    int    `json:"count"`
	Missing  int    `json:"missing"`
	Unique   int    `json:"unique"`
	Top      string `json:"top,omitempty"`
	TopCount int    `json:"top_count,omitempty"`

	// Set for Quantity, Unit_Price and Total_Sales
	Numeric bool            `json:"numeric"`
	Min     decimal.Decimal `json:"min"`
	Mean    decimal.Decimal `json:"mean"`
	Max     decimal.Decimal `json:"max"`
}

// Profile computes a ColumnProfile for every column, in header order
func Profile(rows []domain.Transaction) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(domain.Columns))
	for i := range domain.Columns {
		profiles = append(profiles, profileColumn(rows, domain.Field(i)))
	}
	return profiles
}

func profileColumn(rows []domain.Transaction, f domain.Field) ColumnProfile {
	p := ColumnProfile{Column: f.String(), Numeric: isNumeric(f)}

	counts := make(map[string]int)
	var order []string
	sum := decimal.Zero

	for i := range rows {
		tx := &rows[i]
		if tx.IsMissing(f) {
			p.Missing++
			continue
		}
		p.Count++

		v := CellText(tx, f)
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++

		if p.Numeric {
			d := numericValue(tx, f)
			if p.Count == 1 || d.LessThan(p.Min) {
				p.Min = d
			}
			if p.Count == 1 || d.GreaterThan(p.Max) {
				p.Max = d
			}
			sum = sum.Add(d)
		}
	}

	p.Unique = len(order)
	// ties go to the value seen first
	for _, v := range order {
		if counts[v] > p.TopCount {
			p.Top, p.TopCount = v, counts[v]
		}
	}
	if p.Numeric && p.Count > 0 {
		p.Mean = sum.Div(decimal.NewFromInt(int64(p.Count)))
	}
	return p
}

func isNumeric(f domain.Field) bool {
	return f == domain.FieldQuantity || f == domain.FieldUnitPrice || f == domain.FieldTotalSales
}

func numericValue(tx *domain.Transaction, f domain.Field) decimal.Decimal {
	switch f {
	case domain.FieldQuantity:
		return tx.Quantity
	case domain.FieldUnitPrice:
		return tx.UnitPrice
	default:
		return tx.TotalSales
	}
}

// CellText renders a field for reports. Dates that have not been coerced yet
// are shown as read.
func CellText(tx *domain.Transaction, f domain.Field) string {
	if tx.IsMissing(f) {
		return ""
	}
	switch f {
	case domain.FieldCustomerID:
		return tx.CustomerID
	case domain.FieldDate:
		if tx.Date.IsZero() {
			return tx.RawDate
		}
		return tx.Date.Format(dateTimeLayout)
	case domain.FieldStoreLocation:
		return tx.StoreLocation
	case domain.FieldCategory:
		return tx.Category
	case domain.FieldProduct:
		return tx.Product
	case domain.FieldPaymentMethod:
		return tx.PaymentMethod
	case domain.FieldQuantity:
		return tx.Quantity.String()
	case domain.FieldUnitPrice:
		return tx.UnitPrice.String()
	case domain.FieldTotalSales:
		return tx.TotalSales.String()
	}
	return ""
}

// Sample returns up to n rows picked at random without replacement.
// The same seed and input always give the same rows, in table order.
func Sample(rows []domain.Transaction, n int, seed uint64) []domain.Transaction {
	if n <= 0 || len(rows) == 0 {
		return nil
	}
	if n >= len(rows) {
		out := make([]domain.Transaction, len(rows))
		copy(out, rows)
		return out
	}

	r := rand.New(rand.NewPCG(seed, seed))
	picked := r.Perm(len(rows))[:n]
	sort.Ints(picked)

	out := make([]domain.Transaction, 0, n)
	for _, idx := range picked {
		out = append(out, rows[idx])
	}
	return out
}
