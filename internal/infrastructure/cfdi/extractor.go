// Package cfdi extrae de las facturas XML (CFDI) los datos del reporte de gastos:
// fecha, forma de pago, emisor, importes e impuestos.
package cfdi

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// Valores por defecto de campos opcionales.
const (
	DefaultPaymentMethod = "N/A"
	DefaultIssuerName    = "Sin Nombre"
	DefaultCurrency      = "MXN"
)

// Extractor lee una factura a la vez; no guarda estado entre llamadas.
type Extractor struct {
	now func() time.Time
}

// NewExtractor construye el extractor con el reloj del sistema.
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// Extract interpreta un CFDI. SubTotal y Total son obligatorios; el resto cae a valores por defecto.
// Solo se revisan los hijos directos del comprobante, así los impuestos por concepto no se cuentan dos veces.
func (e *Extractor) Extract(filename string, data []byte) (*entity.InvoiceRecord, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: XML ilegible: %v", domain.ErrInvalidInvoice, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: documento sin raíz", domain.ErrInvalidInvoice)
	}

	subtotal, err := requiredAmount(root, "SubTotal")
	if err != nil {
		return nil, err
	}
	total, err := requiredAmount(root, "Total")
	if err != nil {
		return nil, err
	}

	rec := &entity.InvoiceRecord{
		ID:            uuid.New().String(),
		Date:          datePart(root.SelectAttrValue("Fecha", "")),
		PaymentMethod: attrOr(root, "FormaPago", DefaultPaymentMethod),
		IssuerName:    DefaultIssuerName,
		Currency:      attrOr(root, "Moneda", DefaultCurrency),
		Subtotal:      subtotal,
		Total:         total,
		VAT:           decimal.Zero,
		OtherTaxes:    decimal.Zero,
		Withheld:      decimal.Zero,
		SourceFile:    filename,
		ProcessedAt:   e.now().UTC(),
	}

	var taxNodes int
	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "Emisor":
			rec.IssuerName = attrOr(child, "Nombre", DefaultIssuerName)
			rec.IssuerTaxID = strings.TrimSpace(child.SelectAttrValue("Rfc", ""))
		case "Complemento":
			for _, sub := range child.ChildElements() {
				if sub.Tag == "TimbreFiscalDigital" {
					rec.UUID = sub.SelectAttrValue("UUID", "")
				}
			}
		case "Impuestos":
			n, err := accumulateTaxes(child, rec)
			if err != nil {
				return nil, err
			}
			taxNodes += n
		}
	}

	switch {
	case rec.VAT.IsZero() && rec.OtherTaxes.IsZero() && total.GreaterThan(subtotal):
		// Sin desglose: la diferencia se asume IVA.
		rec.VAT = total.Sub(subtotal)
		rec.TaxSource = entity.TaxSourceEstimated
	case taxNodes > 0:
		rec.TaxSource = entity.TaxSourceItemized
	default:
		rec.TaxSource = entity.TaxSourceNone
	}

	rec.Fingerprint = fingerprint(data)
	return rec, nil
}

// accumulateTaxes suma Traslados (IVA por clave 002, el resto a otros) y Retenciones
// (siempre a otros, y también a Withheld). Devuelve cuántos nodos de impuesto leyó.
func accumulateTaxes(impuestos *etree.Element, rec *entity.InvoiceRecord) (int, error) {
	var n int
	for _, group := range impuestos.ChildElements() {
		switch group.Tag {
		case "Traslados":
			for _, t := range group.ChildElements() {
				amt, err := taxAmount(t)
				if err != nil {
					return 0, err
				}
				n++
				if strings.TrimSpace(t.SelectAttrValue("Impuesto", "")) == entity.CodeVAT {
					rec.VAT = rec.VAT.Add(amt)
				} else {
					rec.OtherTaxes = rec.OtherTaxes.Add(amt)
				}
			}
		case "Retenciones":
			for _, r := range group.ChildElements() {
				amt, err := taxAmount(r)
				if err != nil {
					return 0, err
				}
				n++
				rec.OtherTaxes = rec.OtherTaxes.Add(amt)
				rec.Withheld = rec.Withheld.Add(amt)
			}
		}
	}
	return n, nil
}

// taxAmount Importe ausente o vacío vale 0 (traslados exentos); texto no numérico invalida la factura.
func taxAmount(el *etree.Element) (decimal.Decimal, error) {
	raw := strings.TrimSpace(el.SelectAttrValue("Importe", ""))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: Importe %q no numérico en %s", domain.ErrInvalidInvoice, raw, el.Tag)
	}
	return d, nil
}

func requiredAmount(el *etree.Element, attr string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(el.SelectAttrValue(attr, ""))
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: falta %s", domain.ErrInvalidInvoice, attr)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q no numérico", domain.ErrInvalidInvoice, attr, raw)
	}
	return d, nil
}

func attrOr(el *etree.Element, attr, def string) string {
	v := strings.TrimSpace(el.SelectAttrValue(attr, ""))
	if v == "" {
		return def
	}
	return v
}

func datePart(fecha string) string {
	d, _, _ := strings.Cut(strings.TrimSpace(fecha), "T")
	return d
}

// fingerprint SHA-256 de la forma canónica; si no se puede canonicalizar, de los bytes tal cual.
func fingerprint(data []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	dec.CharsetReader = charsetReader
	canon, err := c14n.Canonicalize(dec)
	if err != nil {
		canon = data
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:])
}
