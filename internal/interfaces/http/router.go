package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/csventilacion/cotizador-api/internal/application/auth"
	"github.com/csventilacion/cotizador-api/internal/application/expenses"
	"github.com/csventilacion/cotizador-api/internal/application/quote"
	"github.com/csventilacion/cotizador-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	QuoteUC    *quote.UseCase
	ROIUC      *usecase.ROIUseCase
	ExpensesUC *expenses.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	catalogHandler := NewCatalogHandler(deps.QuoteUC)
	app.Get("/health", catalogHandler.Health)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Lector de facturas (público)
	expenseHandler := NewExpenseHandler(deps.ExpensesUC)
	expensesGroup := api.Group("/expenses")
	expensesGroup.Post("/process", expenseHandler.Process)
	expensesGroup.Post("/export", expenseHandler.Export)
	expensesGroup.Get("/history", expenseHandler.History)

	// Rutas protegidas (requieren sesión)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)

	catalogGroup := protected.Group("/catalog")
	catalogGroup.Get("/tiers", catalogHandler.Tiers)
	catalogGroup.Get("/categories", catalogHandler.Categories)
	catalogGroup.Get("/categories/:category/models", catalogHandler.Models)
	catalogGroup.Get("/motors/hp", catalogHandler.MotorHP)

	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	protected.Post("/quotes/resolve", quoteHandler.Resolve)

	cartGroup := protected.Group("/cart")
	cartGroup.Get("/", quoteHandler.GetCart)
	cartGroup.Delete("/", quoteHandler.ClearCart)
	cartGroup.Post("/items", quoteHandler.AddItem)
	cartGroup.Post("/mailto", quoteHandler.Mailto)
	cartGroup.Post("/pdf", quoteHandler.PDF)
	cartGroup.Get("/export", quoteHandler.Export)

	roiHandler := NewROIHandler(deps.ROIUC)
	protected.Post("/roi/compare", roiHandler.Compare)
}
