package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// MoneyFormat formato de moneda de las columnas de importe.
const MoneyFormat = "$#,##0.00"

type sheetStyles struct {
	header int
	money  int
	bold   int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return s, fmt.Errorf("estilo encabezado: %w", err)
	}
	numFmt := MoneyFormat
	s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return s, fmt.Errorf("estilo moneda: %w", err)
	}
	s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &numFmt})
	if err != nil {
		return s, fmt.Errorf("estilo totales: %w", err)
	}
	return s, nil
}

// writeHeader escribe la fila 1 con estilo de encabezado.
func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("encabezado %s: %w", cell, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func renameFirstSheet(f *excelize.File, name string) error {
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("renombrar hoja: %w", err)
	}
	return nil
}
