package exporter

import (
	"time"

	"github.com/shopspring/decimal"

	"salescleanup/pkg/contracts/domain"
)

func cleanedRows() []domain.Transaction {
	return []domain.Transaction{
		{
			RowID:         0,
			CustomerID:    "C100",
			Date:          time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
			StoreLocation: "Physical",
			Category:      "Dairy",
			Product:       "Whole_Milk",
			PaymentMethod: "CreditCard",
			Quantity:      decimal.NewFromInt(2),
			UnitPrice:     decimal.RequireFromString("3.50"),
			TotalSales:    decimal.RequireFromString("7.00"),
		},
		{
			RowID:         1,
			CustomerID:    "C200",
			Date:          time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
			StoreLocation: "Online",
			Category:      "Snacks, Sweet",
			Product:       "Dark_Chocolate",
			PaymentMethod: "Cash",
			Quantity:      decimal.NewFromInt(3),
			UnitPrice:     decimal.RequireFromString("1.2"),
			TotalSales:    decimal.RequireFromString("3.6"),
		},
	}
}
