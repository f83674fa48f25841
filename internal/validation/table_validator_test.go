package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salescleanup/internal/errors"
	"salescleanup/internal/shared/testutil"
	"salescleanup/pkg/contracts/domain"
)

func validRows() []domain.Transaction {
	day := func(d int) time.Time { return time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC) }
	row := func(id int, customer string, date time.Time, location string, qty int64, price string) domain.Transaction {
		p := decimal.RequireFromString(price)
		q := decimal.NewFromInt(qty)
		return domain.Transaction{
			RowID:         id,
			CustomerID:    customer,
			Date:          date,
			StoreLocation: location,
			Category:      "Dairy",
			Product:       "Whole_Milk",
			PaymentMethod: "CreditCard",
			Quantity:      q,
			UnitPrice:     p,
			TotalSales:    q.Mul(p).Round(2),
		}
	}
	return []domain.Transaction{
		row(0, "C1", day(1), "Online", 2, "3.50"),
		row(1, "C2", day(1), "Physical", 1, "1.25"),
		row(2, "C3", day(4), "Physical", 3, "0.33"),
	}
}

func TestTableValidatorValid(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	report := NewTableValidator(logger).Validate(validRows())

	assert.True(t, report.Valid())
	assert.NoError(t, report.Err())
	assert.Equal(t, 3, report.Rows)
	assert.Empty(t, report.OtherLocations)
	assert.False(t, handler.ContainsMessage("outside the channel mapping"))
}

func TestTableValidatorViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(rows []domain.Transaction) []domain.Transaction
		rule   string
	}{
		{
			name: "empty customer",
			mutate: func(rows []domain.Transaction) []domain.Transaction {
				rows[1].CustomerID = ""
				return rows
			},
			rule: RuleFieldMissing,
		},
		{
			name: "missing flag",
			mutate: func(rows []domain.Transaction) []domain.Transaction {
				rows[0].SetMissing(domain.FieldProduct)
				return rows
			},
			rule: RuleFieldMissing,
		},
		{
			name: "zero date",
			mutate: func(rows []domain.Transaction) []domain.Transaction {
				rows[0].Date = time.Time{}
				return rows
			},
			rule: RuleFieldMissing,
		},
		{
			name: "stale total",
			mutate: func(rows []domain.Transaction) []domain.Transaction {
				rows[2].TotalSales = decimal.RequireFromString("1.00")
				return rows
			},
			rule: RuleTotalMismatch,
		},
		{
			name: "unrounded price",
			mutate: func(rows []domain.Transaction) []domain.Transaction {
				rows[2].UnitPrice = decimal.RequireFromString("0.333")
				rows[2].TotalSales = decimal.RequireFromString("1.00")
				return rows
			},
			rule: RuleTotalMismatch,
		},
		{
			name: "duplicate",
			mutate: func(rows []domain.Transaction) []domain.Transaction {
				dup := rows[2]
				dup.RowID = 3
				return append(rows, dup)
			},
			rule: RuleDuplicate,
		},
		{
			name: "unsorted",
			mutate: func(rows []domain.Transaction) []domain.Transaction {
				rows[0], rows[2] = rows[2], rows[0]
				rows[0].RowID, rows[2].RowID = 0, 2
				return rows
			},
			rule: RuleUnsorted,
		},
		{
			name: "sparse ids",
			mutate: func(rows []domain.Transaction) []domain.Transaction {
				rows[2].RowID = 7
				return rows
			},
			rule: RuleRowID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewTableValidator(nil).Validate(tt.mutate(validRows()))

			require.False(t, report.Valid())
			rules := make(map[string]bool)
			for _, v := range report.Violations {
				rules[v.Rule] = true
			}
			assert.True(t, rules[tt.rule], "violations: %+v", report.Violations)

			err := report.Err()
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
			assert.Contains(t, err.Error(), tt.rule)
		})
	}
}

func TestTableValidatorOtherLocations(t *testing.T) {
	rows := validRows()
	rows[1].StoreLocation = "Airport"

	logger, handler := testutil.NewTestLogger(t)
	report := NewTableValidator(logger).Validate(rows)

	assert.True(t, report.Valid(), "unmapped locations pass through")
	assert.Equal(t, []string{"Airport"}, report.OtherLocations)
	assert.True(t, handler.ContainsMessage("outside the channel mapping"))
}

func TestLineTotalMatches(t *testing.T) {
	d := decimal.RequireFromString
	assert.True(t, LineTotalMatches(d("2"), d("3.50"), d("7")))
	assert.True(t, LineTotalMatches(d("1.5"), d("2.25"), d("3.38")))
	assert.False(t, LineTotalMatches(d("1.5"), d("2.25"), d("3.37")))
}
