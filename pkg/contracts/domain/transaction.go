package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field identifies one column of the transaction table
type Field int

const (
	FieldCustomerID Field = iota
	FieldDate
	FieldStoreLocation
	FieldCategory
	FieldProduct
	FieldPaymentMethod
	FieldQuantity
	FieldUnitPrice
	FieldTotalSales
)

// Columns is the header order used on read and write
var Columns = []string{
	"Customer_ID",
	"Date",
	"Store_Location",
	"Category",
	"Product",
	"Payment_Method",
	"Quantity",
	"Unit_Price",
	"Total_Sales",
}

// RequiredFields are the columns that must be present for a row to survive cleaning.
// Total_Sales is derived and never read from source, so it is not listed.
var RequiredFields = []Field{
	FieldCustomerID,
	FieldDate,
	FieldStoreLocation,
	FieldCategory,
	FieldProduct,
	FieldPaymentMethod,
	FieldQuantity,
	FieldUnitPrice,
}

// String returns the column header of the field
func (f Field) String() string {
	if f < 0 || int(f) >= len(Columns) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return Columns[f]
}

// FieldByColumn looks up a field by header name, ignoring case and surrounding space
func FieldByColumn(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for i, col := range Columns {
		if strings.EqualFold(col, name) {
			return Field(i), true
		}
	}
	return 0, false
}

// FieldSet is a bit set of fields
type FieldSet uint16

// Has reports whether f is in the set
func (s FieldSet) Has(f Field) bool {
	return s&(1<<uint(f)) != 0
}

// With returns the set with f added
func (s FieldSet) With(f Field) FieldSet {
	return s | 1<<uint(f)
}

// Without returns the set with f removed
func (s FieldSet) Without(f Field) FieldSet {
	return s &^ (1 << uint(f))
}

// Transaction represents one retail transaction row
type Transaction struct {
	RowID         int             `json:"-"`
	CustomerID    string          `json:"customer_id" validate:"required"`
	RawDate       string          `json:"-"`
	Date          time.Time       `json:"date" validate:"required"`
	StoreLocation string          `json:"store_location" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	Product       string          `json:"product" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalSales    decimal.Decimal `json:"total_sales"`

	missing FieldSet
}

// IsMissing reports whether the field has no value
func (t *Transaction) IsMissing(f Field) bool {
	return t.missing.Has(f)
}

// SetMissing marks the field as having no value
func (t *Transaction) SetMissing(f Field) {
	t.missing = t.missing.With(f)
}

// ClearMissing marks the field as present
func (t *Transaction) ClearMissing(f Field) {
	t.missing = t.missing.Without(f)
}

// Missing returns the set of missing fields
func (t *Transaction) Missing() FieldSet {
	return t.missing
}

// Complete reports whether every required field is present
func (t *Transaction) Complete() bool {
	for _, f := range RequiredFields {
		if t.missing.Has(f) {
			return false
		}
	}
	return true
}

// Key returns a canonical representation of every field except the row id.
// Two rows with equal keys are exact duplicates.
func (t *Transaction) Key() string {
	var b strings.Builder
	write := func(f Field, v string) {
		if t.missing.Has(f) {
			b.WriteString("\x00")
		} else {
			b.WriteString(v)
		}
		b.WriteByte(0x1f)
	}
	write(FieldCustomerID, t.CustomerID)
	write(FieldDate, t.Date.UTC().Format(time.RFC3339Nano))
	write(FieldStoreLocation, t.StoreLocation)
	write(FieldCategory, t.Category)
	write(FieldProduct, t.Product)
	write(FieldPaymentMethod, t.PaymentMethod)
	write(FieldQuantity, t.Quantity.String())
	write(FieldUnitPrice, t.UnitPrice.String())
	write(FieldTotalSales, t.TotalSales.String())
	return b.String()
}
