package http

import (
	"github.com/gofiber/fiber/v2"

	appcustomer "github.com/jhoicas/customer-registry/internal/application/customer"
	"github.com/jhoicas/customer-registry/internal/application/dto"
	"github.com/jhoicas/customer-registry/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	State         *appcustomer.State
	PDF           *appcustomer.PDFUseCase
	Metrics       *Metrics
	Log           *logger.Logger
	AppName       string
	StorageDriver string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", App: deps.AppName, Storage: deps.StorageDriver})
	})

	api := app.Group("/api")

	customerHandler := NewCustomerHandler(deps.State, deps.PDF, deps.Log)
	api.Get("/state", customerHandler.State)

	customers := api.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	// Antes de /:id para que "export" no se tome como ID.
	customers.Get("/export/pdf", customerHandler.ExportPDF)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
}
