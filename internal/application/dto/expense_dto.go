package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceRecordResponse factura leída.
type InvoiceRecordResponse struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	IssuerName    string          `json:"issuer_name"`
	IssuerTaxID   string          `json:"issuer_tax_id"`
	Currency      string          `json:"currency"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VAT           decimal.Decimal `json:"vat"`
	OtherTaxes    decimal.Decimal `json:"other_taxes"`
	Withheld      decimal.Decimal `json:"withheld"`
	Total         decimal.Decimal `json:"total"`
	TaxSource     string          `json:"tax_source"`
	VATEstimated  bool            `json:"vat_estimated"`
	UUID          string          `json:"uuid,omitempty"`
	SourceFile    string          `json:"source_file"`
	ProcessedAt   time.Time       `json:"processed_at"`
}

// FileErrorResponse archivo rechazado.
type FileErrorResponse struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// ExpenseSummaryResponse totales del lote.
type ExpenseSummaryResponse struct {
	Count      int             `json:"count"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	VAT        decimal.Decimal `json:"vat"`
	OtherTaxes decimal.Decimal `json:"other_taxes"`
	Total      decimal.Decimal `json:"total"`
}

// ExpenseBatchResponse resultado de procesar un lote de facturas.
type ExpenseBatchResponse struct {
	Records    []InvoiceRecordResponse `json:"records"`
	Errors     []FileErrorResponse     `json:"errors"`
	Duplicates []string                `json:"duplicates"`
	Summary    ExpenseSummaryResponse  `json:"summary"`
}

// ExpenseHistoryResponse página del historial guardado.
type ExpenseHistoryResponse struct {
	Records []InvoiceRecordResponse `json:"records"`
	Page    PageResponse            `json:"page"`
}
