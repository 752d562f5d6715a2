package quote

import (
	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/internal/domain/pricing"
)

func toQuoteResponse(res pricing.Resolution, qty int) *dto.QuoteResponse {
	totals := pricing.LineTotals(res, qty)
	out := &dto.QuoteResponse{
		Category:      res.Category,
		Model:         res.Model,
		Kind:          res.Kind.String(),
		Tier:          res.Tier.ID,
		TierLabel:     res.Tier.Label,
		Description:   res.Description,
		Currency:      res.Currency,
		Quantity:      qty,
		UnitSale:      res.UnitSale,
		UnitCost:      res.UnitCost,
		UnitMargin:    res.UnitMargin,
		MarginPercent: res.MarginPercent.Round(2),
		TotalSale:     totals.Sale,
		TotalCost:     totals.Cost,
		TotalMargin:   totals.Margin,
		Bracket:       res.Bracket,
		Errors:        nonNil(res.Errors),
		Warnings:      nonNil(res.Warnings),
		Addable:       res.Addable(),
	}
	if res.Kind == entity.KindComposite {
		base := toComponent(res.Base)
		out.Base = &base
		if res.Motor != nil {
			m := toComponent(*res.Motor)
			out.Motor = &m
		}
		if res.Transmission != nil {
			t := toComponent(*res.Transmission)
			out.Transmission = &t
		}
	}
	return out
}

func toComponent(c pricing.Component) dto.ComponentResponse {
	return dto.ComponentResponse{
		Model:       c.Model,
		Category:    c.Category,
		Description: c.Description,
		Found:       c.Found,
		Sale:        c.Sale,
		Cost:        c.Cost,
	}
}

func toCartItemResponse(it entity.CartLineItem) dto.CartItemResponse {
	return dto.CartItemResponse{
		ID:          it.ID,
		Model:       it.Model,
		Description: it.Description,
		Quantity:    it.Quantity,
		Currency:    it.Currency,
		UnitSale:    it.UnitSale,
		UnitCost:    it.UnitCost,
		TotalSale:   it.TotalSale,
		TotalCost:   it.TotalCost,
		TotalMargin: it.TotalMargin,
		AddedAt:     it.AddedAt,
	}
}

func toCartResponse(items []entity.CartLineItem, totals []entity.CurrencyTotals) dto.CartResponse {
	out := dto.CartResponse{
		Items:  make([]dto.CartItemResponse, 0, len(items)),
		Totals: make([]dto.CurrencyTotalsResponse, 0, len(totals)),
	}
	for _, it := range items {
		out.Items = append(out.Items, toCartItemResponse(it))
	}
	for _, t := range totals {
		out.Totals = append(out.Totals, dto.CurrencyTotalsResponse{
			Currency:    t.Currency,
			Items:       t.Items,
			TotalSale:   t.TotalSale,
			TotalCost:   t.TotalCost,
			TotalMargin: t.TotalMargin,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
