package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/csventilacion/cotizador-api/internal/application/auth"
	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/application/expenses"
	"github.com/csventilacion/cotizador-api/internal/application/quote"
	"github.com/csventilacion/cotizador-api/internal/application/usecase"
	"github.com/csventilacion/cotizador-api/internal/domain/catalog"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/cfdi"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/excel"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/memory"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/pdf"
	apphttp "github.com/csventilacion/cotizador-api/internal/interfaces/http"
	"github.com/csventilacion/cotizador-api/pkg/logger"
)

const testPassphrase = "CS2026"

func row(category, model, desc string, list, factory int64) entity.CatalogRow {
	return entity.CatalogRow{
		Category:    category,
		Model:       model,
		Description: desc,
		Currency:    "MXN",
		Prices: map[string]entity.Amount{
			entity.ColumnListPrice:    entity.KnownAmount(decimal.NewFromInt(list)),
			entity.ColumnFactoryPrice: entity.KnownAmount(decimal.NewFromInt(factory)),
		},
	}
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]entity.CatalogRow{
		row("MULTICURVA", "MC-20", "VENTILADOR MC-20", 1000, 600),
		row("AXIAL", "AX-10", "EXTRACTOR AXIAL", 100, 60),
		row("MONOFASICO", "M-5", "MOTOR 5 HP", 300, 200),
		row("3-5HP", "TR-A", "800-1200", 150, 100),
	})
}

// buildTestApp arma la API completa sobre almacenamiento en memoria.
func buildTestApp(t *testing.T, cat *catalog.Catalog) *fiber.App {
	t.Helper()
	hash, err := auth.HashPassphrase(testPassphrase, bcrypt.MinCost)
	require.NoError(t, err)

	authUC := auth.NewAuthUseCase(memory.NewSessionStore(), hash, auth.SessionConfig{
		Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "cotizador-cs-test",
	})
	quoteUC := quote.NewUseCase(cat, pdf.NewQuoteGenerator("ventas@csventilacion.mx"), excel.CartExport, "ventas@csventilacion.mx")
	expensesUC := expenses.NewUseCase(cfdi.NewExtractor(), memory.NewExpenseRepository(), excel.ExpenseReport, logger.NewNop())

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.NewNop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		QuoteUC:    quoteUC,
		ROIUC:      usecase.NewROIUseCase(),
		ExpensesUC: expensesUC,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App) dto.LoginResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Passphrase: testPassphrase})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp)
}
