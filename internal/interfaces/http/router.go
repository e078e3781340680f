package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-core/internal/application/auth"
	"github.com/jhoicas/pos-core/internal/application/catalog"
	"github.com/jhoicas/pos-core/internal/application/settlement"
	"github.com/jhoicas/pos-core/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC      *stock.LedgerUseCase
	SettlementUC *settlement.SettlePaymentUseCase
	CatalogUC    *catalog.UnitCatalogUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/check", stockHandler.Check)
	stockGroup.Post("/adjust", stockHandler.Adjust)
	stockGroup.Post("/transfer", stockHandler.Transfer)
	stockGroup.Get("/movements", stockHandler.Movements)
	stockGroup.Get("/:variant_id/:location_id", stockHandler.GetAvailable)

	// Settlements (protegido)
	settlements := protected.Group("/settlements")
	settlementHandler := NewSettlementHandler(deps.SettlementUC)
	settlements.Post("/", settlementHandler.Settle)

	// Units (protegido, solo lectura)
	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.CatalogUC)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
}
