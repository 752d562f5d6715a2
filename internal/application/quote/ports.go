package quote

import (
	"context"
	"time"

	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// Document datos de la cotización imprimible.
type Document struct {
	Project   string
	City      string
	Phone     string
	TierLabel string
	Date      time.Time
	Items     []entity.CartLineItem
	Totals    []entity.CurrencyTotals
}

// PDFGenerator genera el PDF de la cotización para el cliente (sin costos ni utilidad).
type PDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, doc Document) ([]byte, error)
}

// SpreadsheetExporter genera el libro interno del pedido (con costos y utilidad).
type SpreadsheetExporter func(items []entity.CartLineItem, totals []entity.CurrencyTotals) ([]byte, error)
