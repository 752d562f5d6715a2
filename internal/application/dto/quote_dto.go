package dto

import "github.com/shopspring/decimal"

// QuoteRequest selección a cotizar. HP, Phase y RPM solo aplican a MULTICURVA.
type QuoteRequest struct {
	Category string  `json:"category" validate:"required"`
	Model    string  `json:"model" validate:"required"`
	Tier     string  `json:"tier" validate:"required,oneof=publico contratista costo"`
	Quantity int     `json:"quantity" validate:"min=1,max=100"`
	HP       float64 `json:"hp,omitempty"`
	Phase    string  `json:"phase,omitempty" validate:"omitempty,oneof=MONOFASICO TRIFASICO"`
	RPM      int     `json:"rpm,omitempty"`
}

// ComponentResponse pieza de un producto compuesto.
type ComponentResponse struct {
	Model       string          `json:"model,omitempty"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Found       bool            `json:"found"`
	Sale        decimal.Decimal `json:"sale"`
	Cost        decimal.Decimal `json:"cost"`
}

// QuoteResponse precio resuelto, unitario y por la cantidad pedida.
type QuoteResponse struct {
	Category      string             `json:"category"`
	Model         string             `json:"model"`
	Kind          string             `json:"kind"`
	Tier          string             `json:"tier"`
	TierLabel     string             `json:"tier_label"`
	Description   string             `json:"description"`
	Currency      string             `json:"currency"`
	Quantity      int                `json:"quantity"`
	UnitSale      decimal.Decimal    `json:"unit_sale"`
	UnitCost      decimal.Decimal    `json:"unit_cost"`
	UnitMargin    decimal.Decimal    `json:"unit_margin"`
	MarginPercent decimal.Decimal    `json:"margin_percent"`
	TotalSale     decimal.Decimal    `json:"total_sale"`
	TotalCost     decimal.Decimal    `json:"total_cost"`
	TotalMargin   decimal.Decimal    `json:"total_margin"`
	Base          *ComponentResponse `json:"base,omitempty"`
	Motor         *ComponentResponse `json:"motor,omitempty"`
	Transmission  *ComponentResponse `json:"transmission,omitempty"`
	Bracket       string             `json:"bracket,omitempty"`
	Errors        []string           `json:"errors"`
	Warnings      []string           `json:"warnings"`
	Addable       bool               `json:"addable"`
}
