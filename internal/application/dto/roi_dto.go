package dto

import "github.com/shopspring/decimal"

// ROIOptionRequest equipo a comparar. Efficiency: estandar | alta | premium | manual.
type ROIOptionRequest struct {
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	BHP               decimal.Decimal `json:"bhp"`
	Efficiency        string          `json:"efficiency" validate:"oneof=estandar alta premium manual"`
	EfficiencyPercent decimal.Decimal `json:"efficiency_percent,omitempty"`
}

// ROIRequest datos de operación y los dos equipos.
type ROIRequest struct {
	CostPerKWh  decimal.Decimal  `json:"cost_per_kwh"`
	HoursPerDay int              `json:"hours_per_day" validate:"min=1,max=24"`
	DaysPerYear int              `json:"days_per_year" validate:"min=1,max=365"`
	OptionA     ROIOptionRequest `json:"option_a"`
	OptionB     ROIOptionRequest `json:"option_b"`
}

// ROIOptionResponse consumo y gasto de un equipo.
type ROIOptionResponse struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Efficiency decimal.Decimal `json:"efficiency"`
	KW         decimal.Decimal `json:"kw"`
	AnnualCost decimal.Decimal `json:"annual_cost"`
}

// PaybackResponse recuperación de la inversión; Months y Years se omiten si no hay recuperación.
type PaybackResponse struct {
	Recoverable bool             `json:"recoverable"`
	Months      *decimal.Decimal `json:"months,omitempty"`
	Years       *decimal.Decimal `json:"years,omitempty"`
	Message     string           `json:"message"`
}

// ProjectionPointResponse gasto acumulado al cierre de un año.
type ProjectionPointResponse struct {
	Year        int             `json:"year"`
	CumulativeA decimal.Decimal `json:"cumulative_a"`
	CumulativeB decimal.Decimal `json:"cumulative_b"`
}

// ROIResponse resultado de la comparación.
type ROIResponse struct {
	AnnualHours     int                       `json:"annual_hours"`
	OptionA         ROIOptionResponse         `json:"option_a"`
	OptionB         ROIOptionResponse         `json:"option_b"`
	ExtraInvestment decimal.Decimal           `json:"extra_investment"`
	AnnualSavings   decimal.Decimal           `json:"annual_savings"`
	Payback         PaybackResponse           `json:"payback"`
	Projection      []ProjectionPointResponse `json:"projection"`
}
