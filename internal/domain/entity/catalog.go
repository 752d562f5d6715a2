package entity

import "github.com/shopspring/decimal"

// Categorías con significado propio dentro del catálogo.
const (
	CategoryComposite   = "MULTICURVA"
	CategorySinglePhase = "MONOFASICO"
	CategoryThreePhase  = "TRIFASICO"
	CategoryMotor       = "MOTOR"
)

// Columnas de precio reconocidas en el catálogo.
const (
	ColumnListPrice       = "precios de lista"
	ColumnContractorPrice = "precio contratista sin flete"
	ColumnFactoryPrice    = "precio fabrica"
	ColumnPublicPrice     = "Precio Publico"
)

// PriceColumns columnas que se convierten a número al cargar el catálogo.
var PriceColumns = []string{ColumnListPrice, ColumnContractorPrice, ColumnFactoryPrice, ColumnPublicPrice}

// ProductKind distingue productos de precio directo de los que requieren motor y transmisión.
type ProductKind int

const (
	KindSimple ProductKind = iota
	KindComposite
)

func (k ProductKind) String() string {
	if k == KindComposite {
		return "compuesto"
	}
	return "simple"
}

// Amount es un importe que puede no existir o no ser legible en la fuente.
// Valid=false significa "desconocido"; se lee como cero con OrZero.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// KnownAmount construye un importe presente.
func KnownAmount(d decimal.Decimal) Amount {
	return Amount{Value: d, Valid: true}
}

// OrZero devuelve el valor o cero si el importe es desconocido.
func (a Amount) OrZero() decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Value
}

// CatalogRow fila del catálogo de productos. Identidad = (Category, Model).
type CatalogRow struct {
	Category    string
	Model       string
	Description string
	Currency    string
	Prices      map[string]Amount // columna de precio -> importe
	Kind        ProductKind
}

// Price devuelve el importe de la columna; columnas ausentes se leen como desconocidas.
func (r CatalogRow) Price(column string) Amount {
	if r.Prices == nil {
		return Amount{}
	}
	return r.Prices[column]
}

// Phase fase eléctrica del motor.
type Phase string

const (
	PhaseSingle Phase = CategorySinglePhase
	PhaseThree  Phase = CategoryThreePhase
)

// Valid indica si la fase es una de las dos admitidas.
func (p Phase) Valid() bool {
	return p == PhaseSingle || p == PhaseThree
}

// MotorRow fila de motor con la potencia extraída de la descripción.
// HPKnown=false cuando la descripción no trae una potencia legible.
type MotorRow struct {
	CatalogRow
	HP      float64
	HPKnown bool
}

// RPMRange rango de revoluciones de una transmisión (inclusivo en ambos extremos).
type RPMRange struct {
	Min int
	Max int
}

// Contains indica si rpm cae dentro del rango.
func (r RPMRange) Contains(rpm int) bool {
	return rpm >= r.Min && rpm <= r.Max
}

// TransmissionRow fila de transmisión; RangeOK=false cuando la descripción no trae un rango legible.
type TransmissionRow struct {
	CatalogRow
	Range   RPMRange
	RangeOK bool
}
