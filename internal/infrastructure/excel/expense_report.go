package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// Reporte de gastos.
const (
	ExpenseReportFilename = "Reporte_Gastos_CS.xlsx"
	ExpenseSheet          = "Gastos"
)

// ExpenseHeaders columnas del reporte, en orden.
var ExpenseHeaders = []string{"Fecha", "Forma Pago", "Emisor", "RFC", "Subtotal", "IVA", "Otros Imp", "Total", "Archivo"}

// ExpenseReport genera el libro "Gastos" con una fila por factura.
// Las columnas E:H (importes) llevan formato de moneda y ancho 15.
func ExpenseReport(records []*entity.InvoiceRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := renameFirstSheet(f, ExpenseSheet); err != nil {
		return nil, err
	}
	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeHeader(f, ExpenseSheet, ExpenseHeaders, styles.header); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(ExpenseSheet, "A", "D", 14); err != nil {
		return nil, fmt.Errorf("ancho columnas: %w", err)
	}
	if err := f.SetColWidth(ExpenseSheet, "C", "C", 40); err != nil {
		return nil, fmt.Errorf("ancho columnas: %w", err)
	}
	if err := f.SetColWidth(ExpenseSheet, "E", "H", 15); err != nil {
		return nil, fmt.Errorf("ancho columnas: %w", err)
	}
	if err := f.SetColWidth(ExpenseSheet, "I", "I", 30); err != nil {
		return nil, fmt.Errorf("ancho columnas: %w", err)
	}

	for i, r := range records {
		row := i + 2
		values := []any{
			r.Date,
			r.PaymentMethod,
			r.IssuerName,
			r.IssuerTaxID,
			r.Subtotal.InexactFloat64(),
			r.VAT.InexactFloat64(),
			r.OtherTaxes.InexactFloat64(),
			r.Total.InexactFloat64(),
			r.SourceFile,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(ExpenseSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("fila %d: %w", row, err)
		}
	}
	if len(records) > 0 {
		last := len(records) + 1
		if err := f.SetCellStyle(ExpenseSheet, "E2", fmt.Sprintf("H%d", last), styles.money); err != nil {
			return nil, fmt.Errorf("formato moneda: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
