package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineItem renglón del pedido. Se crea al agregar al pedido y no se edita después.
type CartLineItem struct {
	ID          string
	Model       string
	Description string
	Quantity    int
	UnitSale    decimal.Decimal
	UnitCost    decimal.Decimal
	TotalSale   decimal.Decimal
	TotalCost   decimal.Decimal
	TotalMargin decimal.Decimal
	Currency    string
	AddedAt     time.Time
}

// CurrencyTotals sumas del carrito agrupadas por moneda.
type CurrencyTotals struct {
	Currency    string
	TotalSale   decimal.Decimal
	TotalCost   decimal.Decimal
	TotalMargin decimal.Decimal
	Items       int
}
