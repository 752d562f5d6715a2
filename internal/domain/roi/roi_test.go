package roi_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/roi"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func baseInput() roi.Input {
	return roi.Input{
		CostPerKWh:  d("4.0"),
		HoursPerDay: 8,
		DaysPerYear: 300,
		A: roi.Option{
			Name: "Axial Estándar", Price: d("15000"), BHP: d("5"),
			Efficiency: roi.Efficiency{Preset: roi.PresetStandard},
		},
		B: roi.Option{
			Name: "Centrífugo Premium", Price: d("25000"), BHP: d("3.5"),
			Efficiency: roi.Efficiency{Preset: roi.PresetPremium},
		},
	}
}

func TestCompare_ConsumoYGastoAnual(t *testing.T) {
	res, err := roi.Compare(baseInput())
	require.NoError(t, err)

	assert.Equal(t, 2400, res.AnnualHours)
	assert.InDelta(t, 4.388, res.A.KW.InexactFloat64(), 0.001)
	assert.Equal(t, "42127.06", res.A.AnnualCost.StringFixed(2))
	assert.Equal(t, "10000", res.ExtraInvestment.String())
}

func TestCompare_Recuperacion(t *testing.T) {
	res, err := roi.Compare(baseInput())
	require.NoError(t, err)

	require.True(t, res.Payback.Recoverable)
	assert.True(t, res.AnnualSavings.IsPositive())
	years := res.ExtraInvestment.Div(res.AnnualSavings)
	assert.True(t, years.Equal(res.Payback.Years))
	assert.True(t, years.Mul(decimal.NewFromInt(12)).Equal(res.Payback.Months))
	assert.Contains(t, res.Payback.Message, "meses")
}

func TestCompare_SinAhorroNoHayRecuperacion(t *testing.T) {
	in := baseInput()
	in.B.BHP = d("8")

	res, err := roi.Compare(in)
	require.NoError(t, err)

	assert.False(t, res.Payback.Recoverable)
	assert.True(t, res.Payback.Months.IsZero())
	assert.Equal(t, roi.MsgNoRecovery, res.Payback.Message)
}

func TestCompare_BMasBarataYEficienteRecuperaDeInmediato(t *testing.T) {
	in := baseInput()
	in.B.Price = d("10000")

	res, err := roi.Compare(in)
	require.NoError(t, err)

	assert.True(t, res.Payback.Recoverable)
	assert.True(t, res.Payback.Months.IsZero())
	assert.Equal(t, roi.MsgImmediate, res.Payback.Message)
}

func TestCompare_ProyeccionCincoAnios(t *testing.T) {
	res, err := roi.Compare(baseInput())
	require.NoError(t, err)

	require.Len(t, res.Projection, roi.ProjectionYears)
	for i, p := range res.Projection {
		y := decimal.NewFromInt(int64(i + 1))
		assert.Equal(t, i+1, p.Year)
		assert.True(t, p.CumulativeA.Equal(res.A.Price.Add(res.A.AnnualCost.Mul(y))))
		assert.True(t, p.CumulativeB.Equal(res.B.Price.Add(res.B.AnnualCost.Mul(y))))
	}
}

func TestEfficiency_Fraction(t *testing.T) {
	tests := []struct {
		name    string
		eff     roi.Efficiency
		want    string
		wantErr bool
	}{
		{"estandar", roi.Efficiency{Preset: roi.PresetStandard}, "0.85", false},
		{"alta", roi.Efficiency{Preset: roi.PresetHigh}, "0.89", false},
		{"premium", roi.Efficiency{Preset: roi.PresetPremium}, "0.93", false},
		{"manual", roi.Efficiency{Preset: roi.PresetManual, ManualPercent: d("90")}, "0.9", false},
		{"manual bajo", roi.Efficiency{Preset: roi.PresetManual, ManualPercent: d("40")}, "", true},
		{"manual alto", roi.Efficiency{Preset: roi.PresetManual, ManualPercent: d("101")}, "", true},
		{"desconocido", roi.Efficiency{Preset: "turbo"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.eff.Fraction()
			if tt.wantErr {
				assert.True(t, errors.Is(err, domain.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCompare_Validacion(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*roi.Input)
	}{
		{"costo kwh cero", func(in *roi.Input) { in.CostPerKWh = decimal.Zero }},
		{"horas fuera de rango", func(in *roi.Input) { in.HoursPerDay = 25 }},
		{"días fuera de rango", func(in *roi.Input) { in.DaysPerYear = 0 }},
		{"bhp cero", func(in *roi.Input) { in.A.BHP = decimal.Zero }},
		{"precio negativo", func(in *roi.Input) { in.B.Price = d("-1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mod(&in)
			_, err := roi.Compare(in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}
