package models

import (
	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every amount shown to the user or written to the log.
const CurrencySymbol = "₹"

// FormatAmount renders amount with the currency symbol and without trailing
// zeros, the way log messages spell it: 500 -> "₹500", 12.5 -> "₹12.5".
func FormatAmount(amount float64) string {
	return CurrencySymbol + decimal.NewFromFloat(amount).String()
}

// FormatBalance renders a balance with exactly two decimals: "₹315.00".
func FormatBalance(balance float64) string {
	return CurrencySymbol + decimal.NewFromFloat(balance).StringFixed(2)
}

// RoundCurrency rounds half away from zero to two decimal places.
func RoundCurrency(amount decimal.Decimal) float64 {
	return amount.Round(2).InexactFloat64()
}

// PercentOf returns round(balance * rate, 2) computed in decimal arithmetic.
func PercentOf(balance float64, rate decimal.Decimal) float64 {
	return RoundCurrency(decimal.NewFromFloat(balance).Mul(rate))
}
