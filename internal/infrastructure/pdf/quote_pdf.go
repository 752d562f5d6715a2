// Package pdf genera la cotización imprimible para el cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: CS Ventilación       │  COTIZACIÓN + Fecha          │
//	│  CLIENTE: Proyecto / Ciudad / Celular / Lista de precios     │
//	│  TABLA: Cant | Modelo | Descripción | P.Unit | Importe       │
//	│  TOTALES: uno por moneda                                     │
//	│  FOOTER: QR de contacto + leyenda                            │
//	└─────────────────────────────────────────────────────────────┘
//
// El documento es para el cliente: nunca muestra costo ni utilidad.
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/csventilacion/cotizador-api/internal/application/quote"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const companyName = "CS Ventilación"

// ── Generator ─────────────────────────────────────────────────────────────────

// QuoteGenerator implementa quote.PDFGenerator usando Maroto v2.
type QuoteGenerator struct {
	salesEmail string
}

var _ quote.PDFGenerator = (*QuoteGenerator)(nil)

// NewQuoteGenerator construye el generador; salesEmail va en el QR de contacto.
func NewQuoteGenerator(salesEmail string) *QuoteGenerator {
	return &QuoteGenerator{salesEmail: salesEmail}
}

// GenerateQuotePDF genera el PDF y devuelve sus bytes.
func (g *QuoteGenerator) GenerateQuotePDF(_ context.Context, doc quote.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+companyName, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(doc.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(doc.Totals)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRow())

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cotización: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc quote.Document) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Ventilación industrial y comercial", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+doc.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func customerRow(doc quote.Document) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("DATOS DEL CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(doc.Project, "-"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Ciudad: %s   |   Celular: %s   |   Lista de precios: %s",
				nonEmpty(doc.City, "-"),
				nonEmpty(doc.Phone, "-"),
				doc.TierLabel,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Modelo", 2, align.Left),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Importe", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableItemRows una fila por renglón; la altura crece con descripciones largas.
func tableItemRows(items []entity.CartLineItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		lines := splitEvery(it.Description, 60)
		height := float64(4*len(lines) + 3)
		desc := col.New(5)
		for i, l := range lines {
			desc.Add(text.New(l, props.Text{Size: 7.5, Top: 1 + float64(4*i), Left: 1}))
		}
		out = append(out, row.New(height).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(it.Model,
				props.Text{Size: 8, Style: fontstyle.Bold, Top: 1, Left: 1})),
			desc,
			col.New(2).Add(text.New(money.Format(it.UnitSale),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.FormatWithCurrency(it.TotalSale, it.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

// totalsRows un total por moneda; nunca se suman monedas distintas.
func totalsRows(totals []entity.CurrencyTotals) []core.Row {
	out := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		out = append(out, row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New(fmt.Sprintf("TOTAL (%s):", t.Currency), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 1,
			})),
			col.New(3).Add(text.New(money.Format(t.TotalSale), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 1,
			})),
		))
	}
	return out
}

func (g *QuoteGenerator) footerRow() core.Row {
	legend := text.New("Precios sujetos a cambio sin previo aviso. Cotización informativa, no es un comprobante fiscal.",
		props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray})
	if g.salesEmail == "" {
		return row.New(10).Add(col.New(12).Add(legend))
	}
	return row.New(30).Add(
		col.New(3).Add(code.NewQr("mailto:"+g.salesEmail, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			legend,
			text.New("Contacto: "+g.salesEmail, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 14, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// splitEvery divide s en trozos de max n runas; siempre devuelve al menos uno.
func splitEvery(s string, n int) []string {
	r := []rune(s)
	var parts []string
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 || len(parts) == 0 {
		parts = append(parts, string(r))
	}
	return parts
}
