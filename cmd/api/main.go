package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/libreta-api/internal/application/auth"
	"github.com/jhoicas/libreta-api/internal/application/forecast"
	"github.com/jhoicas/libreta-api/internal/application/inventory"
	"github.com/jhoicas/libreta-api/internal/application/ledger"
	"github.com/jhoicas/libreta-api/internal/application/reporting"
	"github.com/jhoicas/libreta-api/internal/application/scoring"
	"github.com/jhoicas/libreta-api/internal/application/statement"
	"github.com/jhoicas/libreta-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/libreta-api/internal/infrastructure/pdf"
	"github.com/jhoicas/libreta-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/libreta-api/internal/interfaces/http"
	"github.com/jhoicas/libreta-api/pkg/config"
	"github.com/jhoicas/libreta-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	shopRepo := postgres.NewShopRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	borrowingRepo := postgres.NewBorrowingRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	txRepo := postgres.NewInventoryTransactionRepository(pool)

	ledgerTx := postgres.NewLedgerTxRunner(pool)
	inventoryTx := postgres.NewInventoryTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, shopRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	ledgerUC := ledger.NewUseCase(ledgerTx, customerRepo, borrowingRepo, expenseRepo, log)
	inventoryUC := inventory.NewUseCase(inventoryTx, itemRepo)
	scoringUC := scoring.NewUseCase(customerRepo, borrowingRepo, saleRepo, log)
	forecastUC := forecast.NewUseCase(itemRepo, txRepo, log)
	reportingUC := reporting.NewUseCase(saleRepo, expenseRepo, borrowingRepo)

	// PDF: estado de cuenta de fiado del cliente
	pdfGenerator := infrapdf.NewMarotoStatementGenerator()
	statementUC := statement.NewUseCase(shopRepo, customerRepo, borrowingRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Libreta API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		LedgerUC:    ledgerUC,
		InventoryUC: inventoryUC,
		ScoringUC:   scoringUC,
		ForecastUC:  forecastUC,
		ReportingUC: reportingUC,
		StatementUC: statementUC,
		JWTSecret:   cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
