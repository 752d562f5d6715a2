// Package pricing resuelve precio de venta y costo unitarios de un producto del catálogo.
// Los productos compuestos (MULTICURVA) suman base + motor + transmisión.
package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/catalog"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// excludedMarker leyenda del catálogo que deja de ser cierta al armar el compuesto.
const excludedMarker = "NO INCLUYE MOTOR NI TRANSMISION"

// Mensajes de resolución.
const (
	MsgMotorNotFound = "Motor no encontrado"
)

// Catalog lo que el motor de precios necesita del catálogo.
type Catalog interface {
	Find(category, model string) (entity.CatalogRow, bool)
	Motors(hp float64, phase entity.Phase) []entity.MotorRow
	Transmissions(b catalog.Bracket) []entity.TransmissionRow
}

// Request selección del usuario. HP, Phase y RPM solo aplican a productos compuestos.
type Request struct {
	Category string
	Model    string
	Tier     PriceTier
	HP       float64
	Phase    entity.Phase
	RPM      int
}

// Component precio aportado por una pieza de la cotización.
type Component struct {
	Model       string
	Category    string
	Description string
	Found       bool
	Sale        decimal.Decimal
	Cost        decimal.Decimal
}

// Resolution resultado de resolver una selección.
// Errors bloquea agregar al pedido; Warnings solo informa.
type Resolution struct {
	Category      string
	Model         string
	Kind          entity.ProductKind
	Tier          PriceTier
	Description   string
	Currency      string
	UnitSale      decimal.Decimal
	UnitCost      decimal.Decimal
	UnitMargin    decimal.Decimal
	MarginPercent decimal.Decimal
	Base          Component
	Motor         *Component
	Transmission  *Component
	Bracket       string
	Errors        []string
	Warnings      []string
}

// Addable indica si la resolución puede entrar al carrito.
func (r Resolution) Addable() bool {
	return len(r.Errors) == 0
}

// Engine motor de resolución de precios sobre un catálogo de solo lectura.
type Engine struct {
	catalog Catalog
}

// NewEngine construye el motor.
func NewEngine(c Catalog) *Engine {
	return &Engine{catalog: c}
}

// Resolve calcula venta y costo unitarios.
// Retorna ErrNotFound si (categoría, modelo) no existe y ErrInvalidInput si a un compuesto
// le falta fase, potencia o RPM. La falta de motor no es error: queda en Resolution.Errors.
func (e *Engine) Resolve(req Request) (Resolution, error) {
	base, ok := e.catalog.Find(req.Category, req.Model)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %s / %s", domain.ErrNotFound, req.Category, req.Model)
	}

	res := Resolution{
		Category:    base.Category,
		Model:       base.Model,
		Kind:        base.Kind,
		Tier:        req.Tier,
		Description: base.Description,
		Currency:    base.Currency,
		Base:        component(base, req.Tier),
	}
	res.UnitSale = res.Base.Sale
	res.UnitCost = res.Base.Cost

	if base.Kind == entity.KindComposite {
		if err := validateComposite(req); err != nil {
			return Resolution{}, err
		}
		e.addMotor(&res, req)
		e.addTransmission(&res, req)
		res.Description = compositeDescription(base.Description, req)
	}

	res.UnitMargin, res.MarginPercent = Margin(res.UnitSale, res.UnitCost)
	return res, nil
}

func (e *Engine) addMotor(res *Resolution, req Request) {
	motors := e.catalog.Motors(req.HP, req.Phase)
	if len(motors) == 0 {
		res.Motor = &Component{Category: string(req.Phase)}
		res.Errors = append(res.Errors, MsgMotorNotFound)
		return
	}
	m := component(motors[0].CatalogRow, req.Tier)
	res.Motor = &m
	res.UnitSale = res.UnitSale.Add(m.Sale)
	res.UnitCost = res.UnitCost.Add(m.Cost)
}

// addTransmission toma la primera transmisión del grupo (orden de tabla) cuyo rango contenga
// las RPM pedidas. Potencias fuera de los cuatro grupos no llevan transmisión.
func (e *Engine) addTransmission(res *Resolution, req Request) {
	bracket, ok := catalog.BracketFor(req.HP)
	if !ok {
		return
	}
	res.Bracket = bracket.Category
	for _, t := range e.catalog.Transmissions(bracket) {
		if !t.RangeOK || !t.Range.Contains(req.RPM) {
			continue
		}
		c := component(t.CatalogRow, req.Tier)
		res.Transmission = &c
		res.UnitSale = res.UnitSale.Add(c.Sale)
		res.UnitCost = res.UnitCost.Add(c.Cost)
		return
	}
	res.Transmission = &Component{Category: bracket.Category}
	res.Warnings = append(res.Warnings, fmt.Sprintf("Sin transmisión para %d RPM", req.RPM))
}

func validateComposite(req Request) error {
	if !req.Phase.Valid() {
		return fmt.Errorf("%w: fase debe ser %s o %s", domain.ErrInvalidInput, entity.PhaseSingle, entity.PhaseThree)
	}
	if req.HP <= 0 {
		return fmt.Errorf("%w: potencia requerida", domain.ErrInvalidInput)
	}
	if req.RPM <= 0 {
		return fmt.Errorf("%w: rpm debe ser mayor a cero", domain.ErrInvalidInput)
	}
	return nil
}

func component(r entity.CatalogRow, tier PriceTier) Component {
	return Component{
		Model:       r.Model,
		Category:    r.Category,
		Description: r.Description,
		Found:       true,
		Sale:        r.Price(tier.Column).OrZero(),
		Cost:        r.Price(CostColumn).OrZero(),
	}
}

func compositeDescription(base string, req Request) string {
	clean := strings.ReplaceAll(base, excludedMarker, "")
	clean = strings.TrimSpace(strings.ReplaceAll(clean, ".", ""))
	hp := strconv.FormatFloat(req.HP, 'f', -1, 64)
	return fmt.Sprintf("%s. INCLUYE MOTOR %s HP %s Y TRANSMISIÓN PARA %d RPM.", clean, hp, req.Phase, req.RPM)
}

var hundred = decimal.NewFromInt(100)

// Margin utilidad unitaria y porcentaje sobre la venta. Con venta <= 0 el porcentaje es 0.
func Margin(unitSale, unitCost decimal.Decimal) (margin, percent decimal.Decimal) {
	margin = unitSale.Sub(unitCost)
	if !unitSale.IsPositive() {
		return margin, decimal.Zero
	}
	return margin, margin.Div(unitSale).Mul(hundred)
}

// Totals importes de un renglón por cantidad.
type Totals struct {
	Sale   decimal.Decimal
	Cost   decimal.Decimal
	Margin decimal.Decimal
}

// LineTotals multiplica la resolución por la cantidad pedida.
func LineTotals(res Resolution, qty int) Totals {
	q := decimal.NewFromInt(int64(qty))
	return Totals{
		Sale:   res.UnitSale.Mul(q),
		Cost:   res.UnitCost.Mul(q),
		Margin: res.UnitMargin.Mul(q),
	}
}
