package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemResponse renglón del pedido.
type CartItemResponse struct {
	ID          string          `json:"id"`
	Model       string          `json:"model"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Currency    string          `json:"currency"`
	UnitSale    decimal.Decimal `json:"unit_sale"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalSale   decimal.Decimal `json:"total_sale"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	TotalMargin decimal.Decimal `json:"total_margin"`
	AddedAt     time.Time       `json:"added_at"`
}

// CurrencyTotalsResponse totales del pedido en una moneda.
type CurrencyTotalsResponse struct {
	Currency    string          `json:"currency"`
	Items       int             `json:"items"`
	TotalSale   decimal.Decimal `json:"total_sale"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	TotalMargin decimal.Decimal `json:"total_margin"`
}

// CartResponse pedido completo de la sesión.
type CartResponse struct {
	Items  []CartItemResponse       `json:"items"`
	Totals []CurrencyTotalsResponse `json:"totals"`
}

// CustomerInfo datos del cliente para el correo y el PDF.
type CustomerInfo struct {
	Project string `json:"project" validate:"required"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Tier    string `json:"tier" validate:"omitempty,oneof=publico contratista costo"`
}

// MailtoResponse mensaje armado para el cliente de correo del usuario.
type MailtoResponse struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	URL     string `json:"url"`
}
