// Package expenses procesa lotes de facturas CFDI: extracción, historial y reporte de Excel.
package expenses

import (
	"context"
	"errors"
	"fmt"

	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/internal/domain/repository"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/cfdi"
	"github.com/csventilacion/cotizador-api/pkg/logger"
)

// ReportWriter genera el libro de gastos.
type ReportWriter func(records []*entity.InvoiceRecord) ([]byte, error)

// UseCase casos de uso del lector de facturas.
type UseCase struct {
	extractor *cfdi.Extractor
	repo      repository.ExpenseRepository
	report    ReportWriter
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(extractor *cfdi.Extractor, repo repository.ExpenseRepository, report ReportWriter, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &UseCase{extractor: extractor, repo: repo, report: report, log: log}
}

// Process extrae cada factura y guarda las nuevas en el historial.
// Las repetidas (mismo UUID o huella) se reportan en Duplicates sin abortar el lote.
func (uc *UseCase) Process(ctx context.Context, files []cfdi.File) (*dto.ExpenseBatchResponse, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no se recibieron archivos", domain.ErrInvalidInput)
	}
	batch := uc.extractor.ExtractBatch(files)
	for _, fe := range batch.Errors {
		uc.log.Warn().Str("archivo", fe.Filename).Err(fe.Err).Msg("factura descartada")
	}

	out := toBatchResponse(batch)
	for _, rec := range batch.Records {
		err := uc.repo.Save(ctx, rec)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrDuplicate):
			out.Duplicates = append(out.Duplicates, rec.SourceFile)
		default:
			uc.log.Error().Str("archivo", rec.SourceFile).Err(err).Msg("no se pudo guardar la factura en el historial")
		}
	}
	return out, nil
}

// Export extrae el lote y devuelve el reporte de Excel con las facturas válidas.
// Sin ninguna factura válida retorna ErrInvalidInput.
func (uc *UseCase) Export(files []cfdi.File) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no se recibieron archivos", domain.ErrInvalidInput)
	}
	batch := uc.extractor.ExtractBatch(files)
	for _, fe := range batch.Errors {
		uc.log.Warn().Str("archivo", fe.Filename).Err(fe.Err).Msg("factura descartada")
	}
	if len(batch.Records) == 0 {
		return nil, fmt.Errorf("%w: ninguna factura válida", domain.ErrInvalidInput)
	}
	return uc.report(batch.Records)
}

// History página del historial, más recientes primero.
func (uc *UseCase) History(ctx context.Context, page dto.PageRequest) (*dto.ExpenseHistoryResponse, error) {
	page.DefaultPage()
	records, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ExpenseHistoryResponse{
		Records: make([]dto.InvoiceRecordResponse, 0, len(records)),
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, r := range records {
		out.Records = append(out.Records, toRecordResponse(r))
	}
	return out, nil
}

func toBatchResponse(b cfdi.BatchResult) *dto.ExpenseBatchResponse {
	out := &dto.ExpenseBatchResponse{
		Records:    make([]dto.InvoiceRecordResponse, 0, len(b.Records)),
		Errors:     make([]dto.FileErrorResponse, 0, len(b.Errors)),
		Duplicates: []string{},
		Summary: dto.ExpenseSummaryResponse{
			Count:      b.Summary.Count,
			Subtotal:   b.Summary.Subtotal,
			VAT:        b.Summary.VAT,
			OtherTaxes: b.Summary.OtherTaxes,
			Total:      b.Summary.Total,
		},
	}
	for _, r := range b.Records {
		out.Records = append(out.Records, toRecordResponse(r))
	}
	for _, e := range b.Errors {
		out.Errors = append(out.Errors, dto.FileErrorResponse{Filename: e.Filename, Reason: e.Reason})
	}
	return out
}

func toRecordResponse(r *entity.InvoiceRecord) dto.InvoiceRecordResponse {
	return dto.InvoiceRecordResponse{
		ID:            r.ID,
		Date:          r.Date,
		PaymentMethod: r.PaymentMethod,
		IssuerName:    r.IssuerName,
		IssuerTaxID:   r.IssuerTaxID,
		Currency:      r.Currency,
		Subtotal:      r.Subtotal,
		VAT:           r.VAT,
		OtherTaxes:    r.OtherTaxes,
		Withheld:      r.Withheld,
		Total:         r.Total,
		TaxSource:     r.TaxSource,
		VATEstimated:  r.VATEstimated(),
		UUID:          r.UUID,
		SourceFile:    r.SourceFile,
		ProcessedAt:   r.ProcessedAt,
	}
}
