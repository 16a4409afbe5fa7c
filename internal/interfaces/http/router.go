package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger        *inventory.LedgerUseCase
	Reports       *inventory.StockReportUseCase
	Replenishment *inventory.ReplenishmentUseCase
	JWTSecret     string
	Logger        *logger.Logger
	Gatherer      prometheus.Gatherer // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	inv := protected.Group("/inventory")
	h := NewInventoryHandler(deps.Ledger, deps.Reports, deps.Replenishment, deps.Logger)

	adminOnly := RequireRole(jwt.RoleAdmin)
	operators := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)

	// Rutas fijas antes de /:sku.
	inv.Get("/", h.List)
	inv.Post("/", adminOnly, h.Seed)
	inv.Get("/alerts", h.Alerts)
	inv.Get("/logs", h.Logs)
	inv.Get("/reorder-report", h.ReorderReport)
	inv.Get("/reorder-report.pdf", h.ReorderReportPDF)

	inv.Get("/:sku", h.Get)
	inv.Get("/:sku/status", h.Status)
	inv.Put("/:sku/stock", operators, h.ApplyTransition)
	inv.Put("/:sku/reorder-levels", adminOnly, h.SetThresholds)
}
