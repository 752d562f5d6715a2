package usecase

import (
	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/domain/roi"
)

// Nombres por defecto de los equipos comparados.
const (
	DefaultOptionAName = "Opción A (Económica)"
	DefaultOptionBName = "Opción B (Eficiente)"
)

// ROIUseCase comparador de consumo energético y retorno de inversión.
type ROIUseCase struct{}

// NewROIUseCase construye el caso de uso.
func NewROIUseCase() *ROIUseCase {
	return &ROIUseCase{}
}

// Compare valida y compara los dos equipos. Los importes salen redondeados a centavos.
func (uc *ROIUseCase) Compare(in dto.ROIRequest) (*dto.ROIResponse, error) {
	res, err := roi.Compare(roi.Input{
		CostPerKWh:  in.CostPerKWh,
		HoursPerDay: in.HoursPerDay,
		DaysPerYear: in.DaysPerYear,
		A:           toOption(in.OptionA, DefaultOptionAName),
		B:           toOption(in.OptionB, DefaultOptionBName),
	})
	if err != nil {
		return nil, err
	}
	return toROIResponse(res), nil
}

func toOption(in dto.ROIOptionRequest, defaultName string) roi.Option {
	name := in.Name
	if name == "" {
		name = defaultName
	}
	preset := in.Efficiency
	if preset == "" {
		preset = roi.PresetStandard
	}
	return roi.Option{
		Name:       name,
		Price:      in.Price,
		BHP:        in.BHP,
		Efficiency: roi.Efficiency{Preset: preset, ManualPercent: in.EfficiencyPercent},
	}
}

func toROIResponse(res roi.Result) *dto.ROIResponse {
	out := &dto.ROIResponse{
		AnnualHours:     res.AnnualHours,
		OptionA:         toOptionResponse(res.A),
		OptionB:         toOptionResponse(res.B),
		ExtraInvestment: res.ExtraInvestment.Round(2),
		AnnualSavings:   res.AnnualSavings.Round(2),
		Payback: dto.PaybackResponse{
			Recoverable: res.Payback.Recoverable,
			Message:     res.Payback.Message,
		},
		Projection: make([]dto.ProjectionPointResponse, 0, len(res.Projection)),
	}
	if res.Payback.Recoverable {
		months := res.Payback.Months.Round(1)
		years := res.Payback.Years.Round(2)
		out.Payback.Months = &months
		out.Payback.Years = &years
	}
	for _, p := range res.Projection {
		out.Projection = append(out.Projection, dto.ProjectionPointResponse{
			Year:        p.Year,
			CumulativeA: p.CumulativeA.Round(2),
			CumulativeB: p.CumulativeB.Round(2),
		})
	}
	return out
}

func toOptionResponse(o roi.OptionResult) dto.ROIOptionResponse {
	return dto.ROIOptionResponse{
		Name:       o.Name,
		Price:      o.Price,
		Efficiency: o.Efficiency,
		KW:         o.KW.Round(3),
		AnnualCost: o.AnnualCost.Round(2),
	}
}

