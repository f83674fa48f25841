package dataprocessing

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescleanup/pkg/contracts/domain"
)

func TestProfile(t *testing.T) {
	rows := []domain.Transaction{
		rawTx("C1", "2023-01-01", "Mall", "snacks", "chips", "Cash", 2, 1.5),
		rawTx("C2", "2023-01-02", "Online", "snacks", "cola", "Cash", 4, 3),
		rawTx("", "2023-01-03", "Mall", "dairy", "milk", "Credit Card", 6, 4.5),
	}

	profiles := Profile(rows)
	require.Len(t, profiles, len(domain.Columns))

	byName := make(map[string]ColumnProfile)
	for _, p := range profiles {
		byName[p.Column] = p
	}

	customer := byName["Customer_ID"]
	assert.Equal(t, 2, customer.Count)
	assert.Equal(t, 1, customer.Missing)
	assert.Equal(t, 2, customer.Unique)
	assert.False(t, customer.Numeric)

	location := byName["Store_Location"]
	assert.Equal(t, "Mall", location.Top)
	assert.Equal(t, 2, location.TopCount)
	assert.Equal(t, 2, location.Unique)

	qty := byName["Quantity"]
	assert.True(t, qty.Numeric)
	assert.True(t, decimal.NewFromInt(2).Equal(qty.Min))
	assert.True(t, decimal.NewFromInt(4).Equal(qty.Mean))
	assert.True(t, decimal.NewFromInt(6).Equal(qty.Max))

	total := byName["Total_Sales"]
	assert.Equal(t, 3, total.Missing)
	assert.Zero(t, total.Count)
	assert.True(t, total.Mean.IsZero())
}

func TestSample(t *testing.T) {
	rows := make([]domain.Transaction, 50)
	for i := range rows {
		rows[i] = domain.Transaction{RowID: i, CustomerID: fmt.Sprintf("C%02d", i)}
	}

	a := Sample(rows, 10, 42)
	b := Sample(rows, 10, 42)
	require.Len(t, a, 10)
	assert.Equal(t, a, b, "same seed must give same sample")

	seen := make(map[int]bool)
	for i, tx := range a {
		assert.False(t, seen[tx.RowID], "sampled twice")
		seen[tx.RowID] = true
		if i > 0 {
			assert.Greater(t, tx.RowID, a[i-1].RowID, "sample keeps table order")
		}
	}

	assert.Len(t, Sample(rows[:3], 10, 42), 3)
	assert.Nil(t, Sample(rows, 0, 42))
	assert.Nil(t, Sample(nil, 10, 42))
}

func TestCellText(t *testing.T) {
	tx := rawTx("C1", "02/10/2023", "Mall", "snacks", "chips", "Cash", 2, 1.5)
	assert.Equal(t, "02/10/2023", CellText(&tx, domain.FieldDate))
	assert.Equal(t, "", CellText(&tx, domain.FieldTotalSales))

	rows := []domain.Transaction{tx}
	CoerceDates(rows)
	assert.Equal(t, "2023-02-10 00:00:00", CellText(&rows[0], domain.FieldDate))
	assert.Equal(t, "1.5", CellText(&rows[0], domain.FieldUnitPrice))
}
