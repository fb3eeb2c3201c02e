package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/libreta-api/internal/application/auth"
	"github.com/jhoicas/libreta-api/internal/application/forecast"
	"github.com/jhoicas/libreta-api/internal/application/inventory"
	"github.com/jhoicas/libreta-api/internal/application/ledger"
	"github.com/jhoicas/libreta-api/internal/application/reporting"
	"github.com/jhoicas/libreta-api/internal/application/scoring"
	"github.com/jhoicas/libreta-api/internal/application/statement"
	"github.com/jhoicas/libreta-api/internal/application/usecase"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CustomerUC  *usecase.CustomerUseCase
	LedgerUC    *ledger.UseCase
	InventoryUC *inventory.UseCase
	ScoringUC   *scoring.UseCase
	ForecastUC  *forecast.UseCase
	ReportingUC *reporting.UseCase
	StatementUC *statement.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.RegisterShop)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Empleados: solo el dueño puede crearlos
	protected.Post("/auth/staff", RequireRole(entity.RoleOwner), authHandler.RegisterStaff)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", RequireRole(entity.RoleOwner), customerHandler.Delete)

	// Analytics: scoring de clientes (protegido)
	analyticsHandler := NewAnalyticsHandler(deps.ScoringUC, deps.ForecastUC)
	customers.Get("/:id/trust-score", analyticsHandler.TrustScore)
	customers.Post("/:id/trust-score/refresh", analyticsHandler.RefreshTrustScore)
	customers.Post("/trust-scores/refresh", analyticsHandler.RefreshAllTrustScores)

	// Estado de cuenta PDF (protegido)
	statementHandler := NewStatementHandler(deps.StatementUC)
	customers.Get("/:id/statement.pdf", statementHandler.Download)

	// Libro diario: ventas, fiados, pagos y gastos (protegido)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	protected.Post("/sales", ledgerHandler.RecordSale)
	borrowings := protected.Group("/borrowings")
	borrowings.Post("/", ledgerHandler.RecordBorrowing)
	borrowings.Post("/mark-overdue", ledgerHandler.MarkOverdue)
	borrowings.Post("/:id/pay", ledgerHandler.RecordPayment)
	protected.Post("/expenses", ledgerHandler.RecordExpense)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/items", inventoryHandler.CreateItem)
	invGroup.Get("/items", inventoryHandler.ListItems)
	invGroup.Get("/items/:id", inventoryHandler.GetItem)
	invGroup.Put("/items/:id", inventoryHandler.UpdateItem)
	invGroup.Delete("/items/:id", RequireRole(entity.RoleOwner), inventoryHandler.DeleteItem)
	invGroup.Post("/items/:id/transactions", inventoryHandler.RegisterTransaction)

	// Analytics: forecast de inventario (protegido)
	invGroup.Get("/items/:id/forecast", analyticsHandler.ItemForecast)
	invGroup.Get("/forecast", analyticsHandler.ForecastAll)
	invGroup.Get("/forecast/critical", analyticsHandler.CriticalItems)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportingUC)
	reports.Get("/daily", reportHandler.Daily)
	reports.Get("/weekly", reportHandler.Weekly)
}
