// Package quote casos de uso del cotizador: catálogo, resolución de precio y pedido de la sesión.
package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/cart"
	"github.com/csventilacion/cotizador-api/internal/domain/catalog"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/internal/domain/pricing"
)

// Límites de captura.
const (
	MinQuantity = 1
	MaxQuantity = 100
	MinRPM      = 301
	MaxRPM      = 2600
)

// UseCase cotizador sobre un catálogo de solo lectura.
type UseCase struct {
	catalog    *catalog.Catalog
	engine     *pricing.Engine
	pdf        PDFGenerator
	export     SpreadsheetExporter
	salesEmail string
	now        func() time.Time
}

// NewUseCase construye el cotizador.
func NewUseCase(c *catalog.Catalog, pdf PDFGenerator, export SpreadsheetExporter, salesEmail string) *UseCase {
	return &UseCase{
		catalog:    c,
		engine:     pricing.NewEngine(c),
		pdf:        pdf,
		export:     export,
		salesEmail: salesEmail,
		now:        time.Now,
	}
}

// Tiers listas de precios disponibles.
func (uc *UseCase) Tiers() []dto.TierResponse {
	out := make([]dto.TierResponse, 0, len(pricing.Tiers))
	for _, t := range pricing.Tiers {
		out = append(out, dto.TierResponse{ID: t.ID, Label: t.Label})
	}
	return out
}

// Health estado del catálogo.
func (uc *UseCase) Health() dto.HealthResponse {
	s := uc.catalog.Stats()
	out := dto.HealthResponse{
		Status:        "ok",
		Catalog:       "ok",
		Rows:          s.Rows,
		Categories:    s.Categories,
		Motors:        s.Motors,
		Transmissions: s.Transmissions,
	}
	if err := uc.catalog.Err(); err != nil {
		out.Status = "degraded"
		out.Catalog = "unavailable"
		out.CatalogError = err.Error()
	}
	return out
}

// Categories categorías cotizables.
func (uc *UseCase) Categories() (*dto.CategoriesResponse, error) {
	if err := uc.catalog.Err(); err != nil {
		return nil, err
	}
	return &dto.CategoriesResponse{Categories: uc.catalog.Categories()}, nil
}

// Models modelos de una categoría. Categoría sin modelos = ErrNotFound.
func (uc *UseCase) Models(category string) (*dto.ModelsResponse, error) {
	if err := uc.catalog.Err(); err != nil {
		return nil, err
	}
	models := uc.catalog.Models(category)
	if len(models) == 0 {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, category)
	}
	return &dto.ModelsResponse{
		Category:  category,
		Composite: category == entity.CategoryComposite,
		Models:    models,
	}, nil
}

// MotorHP potencias y fases seleccionables para productos compuestos.
func (uc *UseCase) MotorHP() (*dto.MotorHPResponse, error) {
	if err := uc.catalog.Err(); err != nil {
		return nil, err
	}
	return &dto.MotorHPResponse{
		HP:     uc.catalog.MotorHPOptions(),
		Phases: []string{string(entity.PhaseSingle), string(entity.PhaseThree)},
	}, nil
}

// Resolve calcula precio, costo y utilidad sin tocar el pedido.
func (uc *UseCase) Resolve(in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	res, qty, err := uc.resolve(in)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(res, qty), nil
}

// AddToCart vuelve a resolver el precio en el servidor y agrega un renglón nuevo al pedido.
// Si falta el motor retorna ErrMotorNotFound y el pedido no cambia.
func (uc *UseCase) AddToCart(c *cart.Cart, in dto.QuoteRequest) (*dto.CartItemResponse, error) {
	res, qty, err := uc.resolve(in)
	if err != nil {
		return nil, err
	}
	if !res.Addable() {
		return nil, fmt.Errorf("%w: %s / %s", domain.ErrMotorNotFound, res.Category, res.Model)
	}
	totals := pricing.LineTotals(res, qty)
	item := entity.CartLineItem{
		ID:          uuid.New().String(),
		Model:       res.Model,
		Description: res.Description,
		Quantity:    qty,
		UnitSale:    res.UnitSale,
		UnitCost:    res.UnitCost,
		TotalSale:   totals.Sale,
		TotalCost:   totals.Cost,
		TotalMargin: totals.Margin,
		Currency:    res.Currency,
		AddedAt:     uc.now().UTC(),
	}
	c.Add(item)
	out := toCartItemResponse(item)
	return &out, nil
}

// Cart renglones y totales por moneda.
func (uc *UseCase) Cart(c *cart.Cart) dto.CartResponse {
	return toCartResponse(c.Items(), c.TotalsByCurrency())
}

// ClearCart vacía el pedido.
func (uc *UseCase) ClearCart(c *cart.Cart) {
	c.Clear()
}

// Mailto arma asunto, cuerpo y liga mailto: para ventas. Pedido vacío = ErrEmptyCart.
func (uc *UseCase) Mailto(c *cart.Cart, info dto.CustomerInfo) (*dto.MailtoResponse, error) {
	tier, err := tierFor(info.Tier)
	if err != nil {
		return nil, err
	}
	items := c.Items()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	msg := buildMail(info, tier.Label, items, cart.Totals(items))
	return &dto.MailtoResponse{
		To:      uc.salesEmail,
		Subject: msg.subject,
		Body:    msg.body,
		URL:     mailtoURL(uc.salesEmail, msg.subject, msg.body),
	}, nil
}

// QuotePDF genera la cotización imprimible del pedido.
func (uc *UseCase) QuotePDF(ctx context.Context, c *cart.Cart, info dto.CustomerInfo) ([]byte, error) {
	tier, err := tierFor(info.Tier)
	if err != nil {
		return nil, err
	}
	items := c.Items()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	return uc.pdf.GenerateQuotePDF(ctx, Document{
		Project:   info.Project,
		City:      info.City,
		Phone:     info.Phone,
		TierLabel: tier.Label,
		Date:      uc.now(),
		Items:     items,
		Totals:    cart.Totals(items),
	})
}

// ExportCart libro de Excel del pedido con costos y utilidad.
func (uc *UseCase) ExportCart(c *cart.Cart) ([]byte, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	return uc.export(items, cart.Totals(items))
}

func (uc *UseCase) resolve(in dto.QuoteRequest) (pricing.Resolution, int, error) {
	if err := uc.catalog.Err(); err != nil {
		return pricing.Resolution{}, 0, err
	}
	if in.Category == "" || in.Model == "" {
		return pricing.Resolution{}, 0, fmt.Errorf("%w: category y model son requeridos", domain.ErrInvalidInput)
	}
	tier, err := tierFor(in.Tier)
	if err != nil {
		return pricing.Resolution{}, 0, err
	}
	qty := in.Quantity
	if qty == 0 {
		qty = MinQuantity
	}
	if qty < MinQuantity || qty > MaxQuantity {
		return pricing.Resolution{}, 0, fmt.Errorf("%w: cantidad entre %d y %d", domain.ErrInvalidInput, MinQuantity, MaxQuantity)
	}
	if in.Category == entity.CategoryComposite && (in.RPM < MinRPM || in.RPM > MaxRPM) {
		return pricing.Resolution{}, 0, fmt.Errorf("%w: rpm entre %d y %d", domain.ErrInvalidInput, MinRPM, MaxRPM)
	}
	res, err := uc.engine.Resolve(pricing.Request{
		Category: in.Category,
		Model:    in.Model,
		Tier:     tier,
		HP:       in.HP,
		Phase:    entity.Phase(in.Phase),
		RPM:      in.RPM,
	})
	if err != nil {
		return pricing.Resolution{}, 0, err
	}
	return res, qty, nil
}

// tierFor lista por id; vacío = pública.
func tierFor(id string) (pricing.PriceTier, error) {
	if id == "" {
		return pricing.Tiers[0], nil
	}
	t, ok := pricing.TierByID(id)
	if !ok {
		return pricing.PriceTier{}, fmt.Errorf("%w: lista de precios %q", domain.ErrInvalidInput, id)
	}
	return t, nil
}
