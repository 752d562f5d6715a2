// Package money formatea importes para textos legibles (correo, PDF).
package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Format importe con signo de pesos, separador de miles y dos decimales: $1,234.56.
func Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", amount.Round(2).InexactFloat64())
}

// FormatWithCurrency igual que Format, con el código de moneda al final: $1,234.56 MXN.
func FormatWithCurrency(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return Format(amount)
	}
	return Format(amount) + " " + currency
}
