package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/billing"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/reports"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC          *usecase.ProductUseCase
	RegisterAdjustment *inventory.RegisterAdjustmentUseCase
	CreateInvoice      *billing.CreateInvoiceUseCase
	InvoicePDF         *billing.PDFUseCase
	ReportsUC          *reports.UseCase
	AuthUC             *auth.AuthUseCase
	JWTSecret          string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/token-auth-email", authHandler.TokenAuthEmail)

	// Products: lecturas públicas, escrituras solo staff.
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	staffOnly := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireStaff()}
	products.Post("/", append(staffOnly, productHandler.Create)...)
	products.Put("/:id", append(staffOnly, productHandler.Update)...)
	products.Delete("/:id", append(staffOnly, productHandler.Delete)...)

	// Invoices: la creación usa auth opcional (el caso de uso decide si el
	// anónimo puede facturar según config); el resto exige token.
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoicePDF)
	api.Post("/invoices", OptionalAuthMiddleware(deps.JWTSecret), invoiceHandler.Create)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/invoices", invoiceHandler.List)
	protected.Get("/invoices/:id", invoiceHandler.GetByID)
	protected.Get("/invoices/:id/pdf", invoiceHandler.DownloadPDF)

	// Stock adjustments: el registro de ajustes es solo staff, la lectura
	// del log exige token.
	stockHandler := NewStockHandler(deps.RegisterAdjustment)
	protected.Post("/stock-adjustments", RequireStaff(), stockHandler.Create)
	protected.Get("/stock-adjustments", stockHandler.List)

	// Reports + introspección (protegido; el scoping fino lo hacen los casos de uso)
	reportHandler := NewReportHandler(deps.ReportsUC)
	protected.Get("/reports/sales", reportHandler.Sales)
	protected.Get("/reports/invoices", reportHandler.Invoices)
	protected.Get("/reports/sales/csv", reportHandler.ExportSalesCSV)
	protected.Get("/me", reportHandler.Me)
}
