package dataprocessing

import (
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places kept for currency values
const MoneyPlaces = 2

// RoundMoney rounds to MoneyPlaces, half away from zero (3.495 -> 3.50, -3.495 -> -3.50)
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// LineTotal returns round(quantity * unitPrice, 2)
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return RoundMoney(quantity.Mul(unitPrice))
}
