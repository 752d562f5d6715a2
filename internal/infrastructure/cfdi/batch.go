package cfdi

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// File archivo subido por el usuario.
type File struct {
	Name string
	Data []byte
}

// FileError factura descartada y el motivo.
type FileError struct {
	Filename string
	Reason   string
	Err      error
}

// Summary totales de las facturas leídas.
type Summary struct {
	Count      int
	Subtotal   decimal.Decimal
	VAT        decimal.Decimal
	OtherTaxes decimal.Decimal
	Total      decimal.Decimal
}

// BatchResult registros en el orden de entrada más los archivos rechazados.
type BatchResult struct {
	Records []*entity.InvoiceRecord
	Errors  []FileError
	Summary Summary
}

// ExtractBatch procesa cada archivo por separado; un archivo malo no detiene al resto.
func (e *Extractor) ExtractBatch(files []File) BatchResult {
	res := BatchResult{Summary: Summary{
		Subtotal:   decimal.Zero,
		VAT:        decimal.Zero,
		OtherTaxes: decimal.Zero,
		Total:      decimal.Zero,
	}}
	for _, f := range files {
		if !strings.EqualFold(filepath.Ext(f.Name), ".xml") {
			err := fmt.Errorf("%w: %s (solo .xml)", domain.ErrUnsupportedFile, f.Name)
			res.Errors = append(res.Errors, FileError{Filename: f.Name, Reason: err.Error(), Err: err})
			continue
		}
		rec, err := e.Extract(f.Name, f.Data)
		if err != nil {
			res.Errors = append(res.Errors, FileError{Filename: f.Name, Reason: err.Error(), Err: err})
			continue
		}
		res.Records = append(res.Records, rec)
		res.Summary.add(rec)
	}
	return res
}

func (s *Summary) add(r *entity.InvoiceRecord) {
	s.Count++
	s.Subtotal = s.Subtotal.Add(r.Subtotal)
	s.VAT = s.VAT.Add(r.VAT)
	s.OtherTaxes = s.OtherTaxes.Add(r.OtherTaxes)
	s.Total = s.Total.Add(r.Total)
}
