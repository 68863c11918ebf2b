package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Importer  InvoiceImporter
	Entries   EntryQueries
	Products  ProductService
	Exits     ExitService
	History   HistoryService
	Dashboard DashboardService
	UploadDir string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	entries := api.Group("/entries")
	entryHandler := NewEntryHandler(deps.Importer, deps.Entries, deps.UploadDir)
	entries.Post("/import-xml", entryHandler.ImportXML)
	entries.Get("/", entryHandler.List)
	entries.Get("/:id", entryHandler.GetByID)
	entries.Get("/:id/products", entryHandler.Lines)
	entries.Get("/:id/pdf", entryHandler.DownloadPDF)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Products)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	exits := api.Group("/exits")
	exitHandler := NewExitHandler(deps.Exits)
	exits.Post("/", exitHandler.Register)
	exits.Get("/", exitHandler.List)

	historyHandler := NewHistoryHandler(deps.History)
	api.Get("/history", historyHandler.List)

	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	dashboard.Get("/", dashboardHandler.GetOverview)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/activities", dashboardHandler.GetActivities)
	dashboard.Get("/low-stock", dashboardHandler.GetLowStock)
}

// ErrorHandler respuesta JSON uniforme para errores no manejados por los handlers (404 de ruta, body demasiado grande, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "INTERNAL"
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		status = ferr.Code
		switch status {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusRequestEntityTooLarge:
			code = "FILE_TOO_LARGE"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: clientMessage(status, code, err)})
}
