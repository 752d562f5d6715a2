package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Origen del total de IVA de una factura.
const (
	TaxSourceItemized  = "desglosado"    // leído de los nodos Traslados/Retenciones
	TaxSourceEstimated = "estimado"      // Total - SubTotal, sin nodos de impuestos
	TaxSourceNone      = "sin_impuestos" // sin nodos y Total <= SubTotal
)

// CodeVAT clave de impuesto del IVA en el CFDI.
const CodeVAT = "002"

// InvoiceRecord datos extraídos de una factura (CFDI) para el reporte de gastos.
// OtherTaxes incluye las retenciones; Withheld las repite por separado solo como referencia.
type InvoiceRecord struct {
	ID            string
	Date          string // YYYY-MM-DD
	PaymentMethod string
	IssuerName    string
	IssuerTaxID   string
	Currency      string
	Subtotal      decimal.Decimal
	VAT           decimal.Decimal
	OtherTaxes    decimal.Decimal
	Withheld      decimal.Decimal
	Total         decimal.Decimal
	TaxSource     string
	UUID          string
	Fingerprint   string // SHA-256 de la forma canónica del XML
	SourceFile    string
	ProcessedAt   time.Time
}

// VATEstimated indica si el IVA proviene de la estimación Total - SubTotal.
func (r *InvoiceRecord) VATEstimated() bool {
	return r.TaxSource == TaxSourceEstimated
}

// DedupKey clave para detectar la misma factura subida dos veces.
// El folio fiscal se compara sin importar mayúsculas ni espacios.
func (r *InvoiceRecord) DedupKey() string {
	if id := strings.ToUpper(strings.TrimSpace(r.UUID)); id != "" {
		return "uuid:" + id
	}
	return "sha256:" + r.Fingerprint
}
