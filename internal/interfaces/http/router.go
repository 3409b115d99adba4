package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-tracker/internal/application/analytics"
	"github.com/jhoicas/stock-tracker/internal/application/auth"
	"github.com/jhoicas/stock-tracker/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *inventory.ItemUseCase
	MovementUC  *inventory.MovementUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	AuthUC      *auth.AuthUseCase
}

// Router registra las rutas de la API. Las lecturas son públicas; las escrituras exigen
// Bearer Token solo si AuthUC está habilitado (JWT_SECRET configurado).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	writeGuard := func(c *fiber.Ctx) error { return c.Next() }
	if deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		api.Post("/auth/token", authHandler.Token)
		if deps.AuthUC.Enabled() {
			writeGuard = AuthMiddleware(deps.AuthUC.Secret())
		}
	}

	// Items
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", writeGuard, itemHandler.Create)
	items.Put("/:id", writeGuard, itemHandler.Update)
	items.Delete("/:id", writeGuard, itemHandler.Delete)

	// Historial de movimientos (solo lectura)
	movementHandler := NewMovementHandler(deps.MovementUC)
	api.Get("/movements/:item_id", movementHandler.ListByItem)

	if deps.DashboardUC != nil {
		dashboardHandler := NewDashboardHandler(deps.DashboardUC)
		api.Get("/dashboard/summary", dashboardHandler.GetSummary)
	}
	if deps.ReportUC != nil {
		reportHandler := NewReportHandler(deps.ReportUC)
		api.Get("/reports/inventory.pdf", reportHandler.InventoryPDF)
	}
}
