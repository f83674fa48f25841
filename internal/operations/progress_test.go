package operations

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescleanup/internal/dataprocessing"
	"salescleanup/pkg/contracts/domain"
)

func TestReporterLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Banner("LOCAL SUPERMARKET SALES DATA CLEANUP")
	r.Section(SectionMissing)
	r.Linef("Removing %s...", "walk-ins")
	r.Checkf("Removed %d walk-in customer records", 2)
	r.Values([]string{"Online", "Physical"})

	want := strings.Repeat("=", 60) + "\n" +
		"LOCAL SUPERMARKET SALES DATA CLEANUP\n" +
		strings.Repeat("=", 60) + "\n" +
		"\n" + strings.Repeat("-", 40) + "\n" +
		"MISSING DATA CLEANUP\n" +
		strings.Repeat("-", 40) + "\n" +
		"Removing walk-ins...\n" +
		"✓ Removed 2 walk-in customer records\n" +
		"[\"Online\" \"Physical\"]\n"
	assert.Equal(t, want, buf.String())
}

func TestReporterNilIsSilent(t *testing.T) {
	var r *Reporter
	assert.NotPanics(t, func() {
		r.Banner("x")
		r.Section("x")
		r.Linef("x")
		r.Checkf("x")
		r.Values([]string{"x"})
		r.Table([]string{"a"}, [][]string{{"b"}})
		r.Summary(domain.CleanupSummary{})
	})
}

func TestReporterTable(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Table(
		[]string{"column", "top"},
		[][]string{
			{"Category", "Épicerie"},
			{"Product", strings.Repeat("x", 40)},
			{"Short"},
		},
	)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "column    top", lines[0][:13])
	assert.Equal(t, "Category  Épicerie", lines[1])
	assert.Contains(t, lines[2], "…")
	assert.NotContains(t, lines[2], strings.Repeat("x", 30))
	assert.Equal(t, "Short", lines[3])
}

func TestReporterTransactions(t *testing.T) {
	tx := domain.Transaction{
		RowID:         3,
		CustomerID:    "C1",
		Date:          time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
		StoreLocation: "Physical",
		Category:      "Dairy",
		Product:       "Whole_Milk",
		PaymentMethod: "CreditCard",
		Quantity:      decimal.NewFromInt(2),
		UnitPrice:     decimal.RequireFromString("3.5"),
	}
	tx.SetMissing(domain.FieldTotalSales)

	var buf bytes.Buffer
	NewReporter(&buf).Transactions([]domain.Transaction{tx})

	out := buf.String()
	assert.Contains(t, out, "Customer_ID")
	assert.Contains(t, out, "Whole_Milk")
	assert.Contains(t, out, "2023-02-10 00:00:00")
	assert.Contains(t, out, "NaN")
}

func TestReporterProfile(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Profile([]dataprocessing.ColumnProfile{
		{Column: "Customer_ID", Count: 3, Unique: 3, Top: "C1", TopCount: 1},
		{Column: "Quantity", Count: 3, Unique: 2, Numeric: true,
			Min: decimal.NewFromInt(1), Mean: decimal.RequireFromString("1.6666"), Max: decimal.NewFromInt(3)},
	})

	out := buf.String()
	assert.Contains(t, out, "mean")
	assert.Contains(t, out, "1.67")
}

func TestReporterSummary(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Summary(domain.CleanupSummary{OriginalCount: 8, FinalCount: 5})

	out := buf.String()
	assert.Contains(t, out, "CLEANUP COMPLETED SUCCESSFULLY")
	assert.Contains(t, out, "Original records: 8\n")
	assert.Contains(t, out, "Final clean records: 5\n")
	assert.Contains(t, out, "Data quality improvement: 62.5% retention\n")
	assert.Contains(t, out, "✓ All data standardized and ready for analysis")
}
