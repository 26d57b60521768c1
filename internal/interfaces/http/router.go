package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/inventario-ai/internal/application/assistant"
	"github.com/jhoicas/inventario-ai/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Orchestrator *assistant.Orchestrator
	ItemUC       *usecase.ItemUseCase
	ReportUC     *usecase.ReportUseCase
	Metrics      nethttp.Handler // nil = sin /metrics
	StoreDriver  string
	StartedAt    time.Time
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Asistente conversacional
	aiGroup := api.Group("/ai")
	assistantHandler := NewAssistantHandler(deps.Orchestrator, deps.StoreDriver, deps.StartedAt)
	aiGroup.Post("/process", assistantHandler.Process)
	aiGroup.Get("/health", assistantHandler.Health)

	// Inventario (CRUD de la pantalla de existencias)
	inventoryHandler := NewInventoryHandler(deps.ItemUC, deps.ReportUC)
	api.Get("/items", inventoryHandler.List)
	inv := api.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/report", inventoryHandler.Report)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Put("/:id", inventoryHandler.Update)
	inv.Delete("/:id", inventoryHandler.Delete)
}
