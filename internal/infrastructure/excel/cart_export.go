package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// Resumen del pedido.
const (
	CartExportFilename = "Pedido_CS.xlsx"
	CartSheet          = "Pedido"
)

// CartHeaders columnas del resumen interno del pedido (incluye costo y utilidad).
var CartHeaders = []string{"Modelo", "Descripción", "Cantidad", "Moneda", "Precio Unitario", "Costo Unitario", "Venta Total", "Costo Total", "Utilidad"}

// CartExport genera el libro del pedido: una fila por renglón y, debajo, los totales por moneda.
func CartExport(items []entity.CartLineItem, totals []entity.CurrencyTotals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := renameFirstSheet(f, CartSheet); err != nil {
		return nil, err
	}
	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeHeader(f, CartSheet, CartHeaders, styles.header); err != nil {
		return nil, err
	}
	widths := map[string]float64{"A": 16, "B": 60, "C": 10, "D": 10}
	for col, w := range widths {
		if err := f.SetColWidth(CartSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("ancho columna %s: %w", col, err)
		}
	}
	if err := f.SetColWidth(CartSheet, "E", "I", 15); err != nil {
		return nil, fmt.Errorf("ancho columnas: %w", err)
	}

	row := 2
	for _, it := range items {
		values := []any{
			it.Model,
			it.Description,
			it.Quantity,
			it.Currency,
			it.UnitSale.InexactFloat64(),
			it.UnitCost.InexactFloat64(),
			it.TotalSale.InexactFloat64(),
			it.TotalCost.InexactFloat64(),
			it.TotalMargin.InexactFloat64(),
		}
		if err := f.SetSheetRow(CartSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, fmt.Errorf("fila %d: %w", row, err)
		}
		if err := f.SetCellStyle(CartSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("I%d", row), styles.money); err != nil {
			return nil, fmt.Errorf("formato fila %d: %w", row, err)
		}
		row++
	}

	row++
	for _, t := range totals {
		values := []any{
			"TOTAL " + t.Currency, nil, nil, t.Currency, nil, nil,
			t.TotalSale.InexactFloat64(),
			t.TotalCost.InexactFloat64(),
			t.TotalMargin.InexactFloat64(),
		}
		if err := f.SetSheetRow(CartSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, fmt.Errorf("totales %s: %w", t.Currency, err)
		}
		if err := f.SetCellStyle(CartSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("I%d", row), styles.bold); err != nil {
			return nil, fmt.Errorf("formato totales: %w", err)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
