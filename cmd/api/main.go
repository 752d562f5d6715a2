package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/crypto/bcrypt"

	"github.com/csventilacion/cotizador-api/docs"
	"github.com/csventilacion/cotizador-api/internal/application/auth"
	"github.com/csventilacion/cotizador-api/internal/application/expenses"
	"github.com/csventilacion/cotizador-api/internal/application/quote"
	"github.com/csventilacion/cotizador-api/internal/application/usecase"
	"github.com/csventilacion/cotizador-api/internal/domain/catalog"
	"github.com/csventilacion/cotizador-api/internal/domain/repository"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/cfdi"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/excel"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/memory"
	infrapdf "github.com/csventilacion/cotizador-api/internal/infrastructure/pdf"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/postgres"
	httpRouter "github.com/csventilacion/cotizador-api/internal/interfaces/http"
	"github.com/csventilacion/cotizador-api/pkg/config"
	"github.com/csventilacion/cotizador-api/pkg/logger"
)

const (
	bodyLimit     = 32 * 1024 * 1024
	purgeInterval = 5 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Catálogo: si no se puede leer el servicio sigue arriba y las cotizaciones responden 503.
	cat := loadCatalog(cfg.Catalog, log)

	var expenseRepo repository.ExpenseRepository = memory.NewExpenseRepository()
	if cfg.Storage.Driver == config.StoragePostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones de PostgreSQL")
		}
		expenseRepo = postgres.NewExpenseRepository(pool)
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("historial de gastos")

	passphraseHash := cfg.Access.PassphraseHash
	if passphraseHash == "" {
		passphraseHash, err = auth.HashPassphrase(cfg.Access.Passphrase, bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de la clave de acceso")
		}
	}
	secret := cfg.Access.SessionSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("SESSION_SECRET vacío: se usa un secreto aleatorio, las sesiones no sobreviven un reinicio")
	}

	sessions := memory.NewSessionStore()
	authUC := auth.NewAuthUseCase(sessions, passphraseHash, auth.SessionConfig{
		Secret:     secret,
		ExpMinutes: cfg.Access.SessionExpiration,
		Issuer:     cfg.Access.SessionIssuer,
	})
	go purgeSessions(ctx, authUC, log)

	quoteUC := quote.NewUseCase(cat, infrapdf.NewQuoteGenerator(cfg.Sales.Email), excel.CartExport, cfg.Sales.Email)
	roiUC := usecase.NewROIUseCase()
	expensesUC := expenses.NewUseCase(cfdi.NewExtractor(), expenseRepo, excel.ExpenseReport, log.Component("gastos"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    bodyLimit,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		QuoteUC:    quoteUC,
		ROIUC:      roiUC,
		ExpensesUC: expensesUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func loadCatalog(cfg config.CatalogConfig, log *logger.Logger) *catalog.Catalog {
	rows, err := excel.NewCatalogLoader(cfg.DefaultCurrency).Load(cfg.Path)
	if err != nil {
		log.Error().Err(err).Str("archivo", cfg.Path).Msg("no se pudo cargar el catálogo")
		return catalog.Unavailable(err)
	}
	cat := catalog.New(rows)
	s := cat.Stats()
	log.Info().
		Str("archivo", cfg.Path).
		Int("filas", s.Rows).
		Int("categorias", s.Categories).
		Int("motores", s.Motors).
		Int("transmisiones", s.Transmissions).
		Msg("catálogo cargado")
	return cat
}

func purgeSessions(ctx context.Context, uc *auth.AuthUseCase, log *logger.Logger) {
	t := time.NewTicker(purgeInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := uc.PurgeExpired(); n > 0 {
				log.Debug().Int("sesiones", n).Msg("sesiones vencidas eliminadas")
			}
		}
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generar secreto de sesión: " + err.Error())
	}
	return hex.EncodeToString(b)
}
