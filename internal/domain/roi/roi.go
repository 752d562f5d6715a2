// Package roi compara el consumo eléctrico de dos equipos y calcula en cuánto tiempo
// el ahorro de energía paga la diferencia de precio.
package roi

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/csventilacion/cotizador-api/internal/domain"
)

// Presets de eficiencia de motor.
const (
	PresetStandard = "estandar"
	PresetHigh     = "alta"
	PresetPremium  = "premium"
	PresetManual   = "manual"
)

// ProjectionYears horizonte de la proyección de gasto acumulado.
const ProjectionYears = 5

// Mensajes de recuperación.
const (
	MsgNoRecovery = "La Opción B consume más energía que la A. No hay retorno de inversión por ahorro energético."
	MsgImmediate  = "La Opción B cuesta lo mismo o menos y consume menos energía: la recuperación es inmediata."
)

var (
	kwPerHP      = decimal.RequireFromString("0.746")
	hundred      = decimal.NewFromInt(100)
	twelve       = decimal.NewFromInt(12)
	minManualPct = decimal.NewFromInt(50)
	presets      = map[string]decimal.Decimal{
		PresetStandard: decimal.RequireFromString("0.85"),
		PresetHigh:     decimal.RequireFromString("0.89"),
		PresetPremium:  decimal.RequireFromString("0.93"),
	}
)

// Efficiency eficiencia del motor: un preset o un porcentaje manual (50 a 100).
type Efficiency struct {
	Preset        string
	ManualPercent decimal.Decimal
}

// Fraction eficiencia como fracción en (0, 1].
func (e Efficiency) Fraction() (decimal.Decimal, error) {
	if e.Preset == PresetManual {
		if e.ManualPercent.LessThan(minManualPct) || e.ManualPercent.GreaterThan(hundred) {
			return decimal.Zero, fmt.Errorf("%w: eficiencia manual debe estar entre 50 y 100", domain.ErrInvalidInput)
		}
		return e.ManualPercent.Div(hundred), nil
	}
	f, ok := presets[e.Preset]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: eficiencia desconocida %q", domain.ErrInvalidInput, e.Preset)
	}
	return f, nil
}

// Option equipo a comparar.
type Option struct {
	Name       string
	Price      decimal.Decimal
	BHP        decimal.Decimal
	Efficiency Efficiency
}

// Input datos de operación y los dos equipos. A es el económico, B el eficiente.
type Input struct {
	CostPerKWh  decimal.Decimal
	HoursPerDay int
	DaysPerYear int
	A           Option
	B           Option
}

// OptionResult consumo y gasto anual de un equipo.
type OptionResult struct {
	Name       string
	Price      decimal.Decimal
	Efficiency decimal.Decimal
	KW         decimal.Decimal
	AnnualCost decimal.Decimal
}

// Payback tiempo de recuperación. Years y Months solo tienen sentido con Recoverable=true.
type Payback struct {
	Recoverable bool
	Years       decimal.Decimal
	Months      decimal.Decimal
	Message     string
}

// ProjectionPoint gasto acumulado (precio + energía) al cierre de un año.
type ProjectionPoint struct {
	Year        int
	CumulativeA decimal.Decimal
	CumulativeB decimal.Decimal
}

// Result comparación completa.
type Result struct {
	AnnualHours     int
	A               OptionResult
	B               OptionResult
	ExtraInvestment decimal.Decimal
	AnnualSavings   decimal.Decimal
	Payback         Payback
	Projection      []ProjectionPoint
}

// Compare calcula consumo, ahorro, recuperación y proyección a cinco años.
// kW = BHP * 0.746 / eficiencia; gasto anual = kW * horas/día * días/año * costo kWh.
func Compare(in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}
	hours := in.HoursPerDay * in.DaysPerYear
	a, err := evaluate(in.A, hours, in.CostPerKWh)
	if err != nil {
		return Result{}, fmt.Errorf("opción A: %w", err)
	}
	b, err := evaluate(in.B, hours, in.CostPerKWh)
	if err != nil {
		return Result{}, fmt.Errorf("opción B: %w", err)
	}

	res := Result{
		AnnualHours:     hours,
		A:               a,
		B:               b,
		ExtraInvestment: b.Price.Sub(a.Price),
		AnnualSavings:   a.AnnualCost.Sub(b.AnnualCost),
	}
	res.Payback = payback(res.ExtraInvestment, res.AnnualSavings)

	for year := 1; year <= ProjectionYears; year++ {
		y := decimal.NewFromInt(int64(year))
		res.Projection = append(res.Projection, ProjectionPoint{
			Year:        year,
			CumulativeA: a.Price.Add(a.AnnualCost.Mul(y)),
			CumulativeB: b.Price.Add(b.AnnualCost.Mul(y)),
		})
	}
	return res, nil
}

func payback(extra, savings decimal.Decimal) Payback {
	if !savings.IsPositive() {
		return Payback{Message: MsgNoRecovery}
	}
	if !extra.IsPositive() {
		return Payback{Recoverable: true, Years: decimal.Zero, Months: decimal.Zero, Message: MsgImmediate}
	}
	years := extra.Div(savings)
	months := years.Mul(twelve)
	return Payback{
		Recoverable: true,
		Years:       years,
		Months:      months,
		Message:     fmt.Sprintf("Tiempo de recuperación: %s meses (%s años)", months.StringFixed(1), years.StringFixed(2)),
	}
}

func evaluate(o Option, hours int, costPerKWh decimal.Decimal) (OptionResult, error) {
	eff, err := o.Efficiency.Fraction()
	if err != nil {
		return OptionResult{}, err
	}
	if !o.BHP.IsPositive() {
		return OptionResult{}, fmt.Errorf("%w: BHP debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if o.Price.IsNegative() {
		return OptionResult{}, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	kw := o.BHP.Mul(kwPerHP).Div(eff)
	return OptionResult{
		Name:       o.Name,
		Price:      o.Price,
		Efficiency: eff,
		KW:         kw,
		AnnualCost: kw.Mul(decimal.NewFromInt(int64(hours))).Mul(costPerKWh),
	}, nil
}

func validate(in Input) error {
	if !in.CostPerKWh.IsPositive() {
		return fmt.Errorf("%w: costo por kWh debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.HoursPerDay < 1 || in.HoursPerDay > 24 {
		return fmt.Errorf("%w: horas por día entre 1 y 24", domain.ErrInvalidInput)
	}
	if in.DaysPerYear < 1 || in.DaysPerYear > 365 {
		return fmt.Errorf("%w: días por año entre 1 y 365", domain.ErrInvalidInput)
	}
	return nil
}
