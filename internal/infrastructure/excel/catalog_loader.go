// Package excel lee el catálogo de productos y genera los libros de Excel de salida
// (reporte de gastos y resumen del pedido).
package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// Encabezados obligatorios del catálogo.
const (
	HeaderCategory    = "CATEGORIA"
	HeaderModel       = "Modelo"
	HeaderDescription = "PRODUCTO"
	HeaderCurrency    = "Moneda"
)

// CatalogLoader lee el catálogo desde un xlsx (primera hoja) o, si el archivo no es un libro
// de Excel, como CSV.
type CatalogLoader struct {
	defaultCurrency string
}

// NewCatalogLoader construye el lector. defaultCurrency se usa cuando la celda Moneda viene vacía.
func NewCatalogLoader(defaultCurrency string) *CatalogLoader {
	return &CatalogLoader{defaultCurrency: strings.ToUpper(strings.TrimSpace(defaultCurrency))}
}

// Load lee el archivo completo. Solo falla si el archivo no se puede leer o le faltan
// encabezados obligatorios; una celda de precio ilegible queda como importe desconocido.
func (l *CatalogLoader) Load(path string) ([]entity.CatalogRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	return l.Parse(bytes.NewReader(data))
}

// Parse interpreta el contenido; intenta xlsx y cae a CSV.
func (l *CatalogLoader) Parse(r io.ReadSeeker) ([]entity.CatalogRow, error) {
	table, xlsxErr := readWorkbook(r)
	if xlsxErr != nil {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("leer catálogo: %w", err)
		}
		var csvErr error
		table, csvErr = readCSV(r)
		if csvErr != nil {
			return nil, fmt.Errorf("catálogo no es xlsx (%v) ni csv: %w", xlsxErr, csvErr)
		}
	}
	return l.rows(table)
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func (l *CatalogLoader) rows(table [][]string) ([]entity.CatalogRow, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("catálogo sin encabezados")
	}
	cols := indexHeaders(table[0])
	for _, h := range []string{HeaderCategory, HeaderModel, HeaderDescription, HeaderCurrency} {
		if _, ok := cols[normalizeHeader(h)]; !ok {
			return nil, fmt.Errorf("catálogo sin columna %s", h)
		}
	}

	out := make([]entity.CatalogRow, 0, len(table)-1)
	for _, rec := range table[1:] {
		if blank(rec) {
			continue
		}
		get := func(header string) string {
			i, ok := cols[normalizeHeader(header)]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		row := entity.CatalogRow{
			Category:    get(HeaderCategory),
			Model:       get(HeaderModel),
			Description: get(HeaderDescription),
			Currency:    strings.ToUpper(get(HeaderCurrency)),
			Prices:      make(map[string]entity.Amount, len(entity.PriceColumns)),
		}
		if row.Currency == "" {
			row.Currency = l.defaultCurrency
		}
		for _, col := range entity.PriceColumns {
			if _, ok := cols[normalizeHeader(col)]; ok {
				row.Prices[col] = ParseAmount(get(col))
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// ParseAmount convierte una celda de precio. Quita "$", espacios y separadores de miles;
// vacío, texto o negativo quedan como importe desconocido.
func ParseAmount(cell string) entity.Amount {
	s := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(cell))
	if s == "" {
		return entity.Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return entity.Amount{}
	}
	return entity.KnownAmount(d)
}

func indexHeaders(headers []string) map[string]int {
	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		k := normalizeHeader(h)
		if _, dup := cols[k]; !dup && k != "" {
			cols[k] = i
		}
	}
	return cols
}

// normalizeHeader compara encabezados sin mayúsculas, acentos ni espacios sobrantes.
func normalizeHeader(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, h)
	if err != nil {
		s = h
	}
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
