package quote_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/application/quote"
	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/cart"
	"github.com/csventilacion/cotizador-api/internal/domain/catalog"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/excel"
)

type fakePDF struct {
	got quote.Document
}

func (f *fakePDF) GenerateQuotePDF(_ context.Context, doc quote.Document) ([]byte, error) {
	f.got = doc
	return []byte("%PDF-fake"), nil
}

func row(category, model, desc, currency string, list, factory int64) entity.CatalogRow {
	return entity.CatalogRow{
		Category:    category,
		Model:       model,
		Description: desc,
		Currency:    currency,
		Prices: map[string]entity.Amount{
			entity.ColumnListPrice:    entity.KnownAmount(decimal.NewFromInt(list)),
			entity.ColumnFactoryPrice: entity.KnownAmount(decimal.NewFromInt(factory)),
		},
	}
}

func newUseCase(t *testing.T) (*quote.UseCase, *fakePDF) {
	t.Helper()
	c := catalog.New([]entity.CatalogRow{
		row("MULTICURVA", "MC-20", "VENTILADOR MC-20", "MXN", 1000, 600),
		row("AXIAL", "AX-10", "EXTRACTOR AXIAL", "USD", 100, 60),
		row("MONOFASICO", "M-5", "MOTOR 5 HP", "MXN", 300, 200),
		row("3-5HP", "TR-A", "800-1200", "MXN", 150, 100),
	})
	pdf := &fakePDF{}
	return quote.NewUseCase(c, pdf, excel.CartExport, "ventas@csventilacion.mx"), pdf
}

func composite(rpm int) dto.QuoteRequest {
	return dto.QuoteRequest{
		Category: "MULTICURVA", Model: "MC-20", Tier: "publico", Quantity: 2,
		HP: 5, Phase: "MONOFASICO", RPM: rpm,
	}
}

func TestCatalogo_NoDisponible(t *testing.T) {
	uc := quote.NewUseCase(catalog.Unavailable(errors.New("archivo no encontrado")), &fakePDF{}, excel.CartExport, "")

	_, err := uc.Categories()
	assert.True(t, errors.Is(err, domain.ErrCatalogUnavailable))
	_, err = uc.Resolve(dto.QuoteRequest{Category: "AXIAL", Model: "AX-10"})
	assert.True(t, errors.Is(err, domain.ErrCatalogUnavailable))

	h := uc.Health()
	assert.Equal(t, "degraded", h.Status)
	assert.Contains(t, h.CatalogError, "archivo no encontrado")
}

func TestModels(t *testing.T) {
	uc, _ := newUseCase(t)

	res, err := uc.Models("MULTICURVA")
	require.NoError(t, err)
	assert.True(t, res.Composite)
	assert.Equal(t, []string{"MC-20"}, res.Models)

	_, err = uc.Models("NO-EXISTE")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestResolve_CantidadPorDefectoYLimites(t *testing.T) {
	uc, _ := newUseCase(t)

	res, err := uc.Resolve(dto.QuoteRequest{Category: "AXIAL", Model: "AX-10"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Quantity)
	assert.Equal(t, "publico", res.Tier)
	assert.Equal(t, "100", res.TotalSale.String())

	_, err = uc.Resolve(dto.QuoteRequest{Category: "AXIAL", Model: "AX-10", Quantity: 101})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Resolve(dto.QuoteRequest{Category: "AXIAL", Model: "AX-10", Tier: "mayoreo"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Resolve(composite(200))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestResolve_Compuesto(t *testing.T) {
	uc, _ := newUseCase(t)

	res, err := uc.Resolve(composite(1000))
	require.NoError(t, err)
	assert.Equal(t, "1450", res.UnitSale.String())
	assert.Equal(t, "2900", res.TotalSale.String())
	assert.Equal(t, "1100", res.TotalMargin.String())
	require.NotNil(t, res.Motor)
	assert.Equal(t, "M-5", res.Motor.Model)
	require.NotNil(t, res.Transmission)
	assert.Equal(t, "TR-A", res.Transmission.Model)
	assert.True(t, res.Addable)
}

func TestAddToCart_SinMotorNoAgrega(t *testing.T) {
	uc, _ := newUseCase(t)
	c := cart.New()

	req := composite(1000)
	req.Phase = "TRIFASICO"
	_, err := uc.AddToCart(c, req)
	assert.True(t, errors.Is(err, domain.ErrMotorNotFound))
	assert.Equal(t, 0, c.Len())
}

func TestAddToCart_YTotalesPorMoneda(t *testing.T) {
	uc, _ := newUseCase(t)
	c := cart.New()

	first, err := uc.AddToCart(c, composite(1000))
	require.NoError(t, err)
	second, err := uc.AddToCart(c, dto.QuoteRequest{Category: "AXIAL", Model: "AX-10", Quantity: 3})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	res := uc.Cart(c)
	require.Len(t, res.Items, 2)
	require.Len(t, res.Totals, 2)
	assert.Equal(t, "MXN", res.Totals[0].Currency)
	assert.Equal(t, "2900", res.Totals[0].TotalSale.String())
	assert.Equal(t, "USD", res.Totals[1].Currency)
	assert.Equal(t, "300", res.Totals[1].TotalSale.String())

	uc.ClearCart(c)
	assert.Empty(t, uc.Cart(c).Items)
}

func TestMailto(t *testing.T) {
	uc, _ := newUseCase(t)
	c := cart.New()
	info := dto.CustomerInfo{Project: "Nave 3", City: "Puebla", Phone: "2221234567", Tier: "publico"}

	_, err := uc.Mailto(c, info)
	assert.True(t, errors.Is(err, domain.ErrEmptyCart))

	_, err = uc.AddToCart(c, composite(1000))
	require.NoError(t, err)

	res, err := uc.Mailto(c, info)
	require.NoError(t, err)
	assert.Equal(t, "ventas@csventilacion.mx", res.To)
	assert.Equal(t, "Pedido: Nave 3 (Puebla)", res.Subject)
	assert.True(t, strings.HasPrefix(res.Body, "SOLICITUD DE COMPRA / COTIZACIÓN\n\nDATOS DEL CLIENTE:\nProyecto: Nave 3\n"))
	assert.Contains(t, res.Body, "Lista de Precios Usada: Publico en general\n")
	assert.Contains(t, res.Body, "\n- (2) MC-20\n")
	assert.Contains(t, res.Body, "Precio Venta: $2,900.00 MXN\n")
	assert.Contains(t, res.Body, "RESUMEN VENTA:\nTotal (MXN): $2,900.00\n")

	assert.True(t, strings.HasPrefix(res.URL, "mailto:ventas@csventilacion.mx?subject=Pedido%3A%20Nave%203"))
	assert.NotContains(t, res.URL, "+")

	u, err := url.Parse(res.URL)
	require.NoError(t, err)
	q, err := url.ParseQuery(u.RawQuery)
	require.NoError(t, err)
	assert.Equal(t, res.Body, q.Get("body"))
}

func TestQuotePDF(t *testing.T) {
	uc, pdf := newUseCase(t)
	c := cart.New()
	_, err := uc.AddToCart(c, dto.QuoteRequest{Category: "AXIAL", Model: "AX-10"})
	require.NoError(t, err)

	out, err := uc.QuotePDF(context.Background(), c, dto.CustomerInfo{Project: "Nave 3", Tier: "contratista"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Equal(t, "Nave 3", pdf.got.Project)
	assert.Equal(t, "cliente top LABPUE/CUL", pdf.got.TierLabel)
	assert.Len(t, pdf.got.Items, 1)
	assert.WithinDuration(t, time.Now(), pdf.got.Date, time.Minute)
}

func TestExportCart(t *testing.T) {
	uc, _ := newUseCase(t)
	c := cart.New()

	_, err := uc.ExportCart(c)
	assert.True(t, errors.Is(err, domain.ErrEmptyCart))

	_, err = uc.AddToCart(c, dto.QuoteRequest{Category: "AXIAL", Model: "AX-10"})
	require.NoError(t, err)
	out, err := uc.ExportCart(c)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "PK"))
}
