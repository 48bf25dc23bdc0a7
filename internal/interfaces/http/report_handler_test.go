package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/reports"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para armar el caso de uso de reportes
// ──────────────────────────────────────────────────────────────────────────────

type stubReportRepo struct {
	byProduct []repository.ProductSalesRow
}

func (r *stubReportRepo) SalesSummary(context.Context, repository.ReportFilter) (decimal.Decimal, int64, error) {
	return decimal.Zero, 0, nil
}
func (r *stubReportRepo) SalesByProduct(context.Context, repository.ReportFilter) ([]repository.ProductSalesRow, error) {
	return r.byProduct, nil
}
func (r *stubReportRepo) SalesByUser(context.Context, repository.ReportFilter) ([]repository.UserSalesRow, error) {
	return nil, nil
}
func (r *stubReportRepo) SalesByMonth(context.Context, repository.ReportFilter, time.Time, time.Time) ([]repository.MonthSalesRow, error) {
	return nil, nil
}
func (r *stubReportRepo) SalesByDay(context.Context, repository.ReportFilter, time.Time, time.Time) ([]repository.DaySalesRow, error) {
	return nil, nil
}
func (r *stubReportRepo) ListInvoices(context.Context, repository.ReportFilter, int) ([]repository.InvoiceReportRow, error) {
	return nil, nil
}

type stubUserRepo struct{}

func (r *stubUserRepo) Create(*entity.User) error                     { return nil }
func (r *stubUserRepo) GetByID(int64) (*entity.User, error)           { return nil, nil }
func (r *stubUserRepo) GetByEmail(string) (*entity.User, error)       { return nil, nil }
func (r *stubUserRepo) CreateProfile(*entity.UserProfile) error       { return nil }
func (r *stubUserRepo) UpdateProfile(*entity.UserProfile) error       { return nil }
func (r *stubUserRepo) GetProfile(int64) (*entity.UserProfile, error) { return nil, nil }

// buildReportApp arma la app con el handler de reportes y un middleware que
// inyecta el caller indicado (nil = anónimo).
func buildReportApp(reportRepo repository.ReportRepository, caller *entity.Caller) *fiber.App {
	uc := reports.NewUseCase(reportRepo, &stubUserRepo{})
	handler := apphttp.NewReportHandler(uc)

	app := fiber.New()
	inject := func(c *fiber.Ctx) error {
		if caller != nil {
			c.Locals(apphttp.LocalCaller, caller)
		}
		return c.Next()
	}
	app.Get("/api/reports/sales", inject, handler.Sales)
	app.Get("/api/reports/invoices", inject, handler.Invoices)
	app.Get("/api/reports/sales/csv", inject, handler.ExportSalesCSV)
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de fechas
// ──────────────────────────────────────────────────────────────────────────────

func TestReportes_FechaInvalida_Retorna400ConMensajeFijo(t *testing.T) {
	app := buildReportApp(&stubReportRepo{}, &entity.Caller{ID: 1, IsStaff: true})

	for _, path := range []string{
		"/api/reports/sales?start_date=31-08-2026",
		"/api/reports/sales?end_date=no-es-fecha",
		"/api/reports/invoices?start_date=2026/08/31",
		"/api/reports/sales/csv?end_date=20260831",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path %s", path)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Contains(t, string(body), "Invalid date format, use YYYY-MM-DD.",
			"el mensaje de fecha inválida es fijo")
	}
}

func TestReportes_FechasValidasPasan(t *testing.T) {
	app := buildReportApp(&stubReportRepo{}, &entity.Caller{ID: 1, IsStaff: true})

	req := httptest.NewRequest(http.MethodGet, "/api/reports/sales?start_date=2026-01-01&end_date=2026-08-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Export CSV
// ──────────────────────────────────────────────────────────────────────────────

func TestExportCSV_DescargaConCabecerasYFilas(t *testing.T) {
	reportRepo := &stubReportRepo{byProduct: []repository.ProductSalesRow{
		{ProductID: 1, ProductName: "Laptop", TotalQuantity: 3, TotalSales: decimal.RequireFromString("4500.00")},
		{ProductID: 2, ProductName: "Mouse", TotalQuantity: 10, TotalSales: decimal.RequireFromString("250.50")},
	}}
	app := buildReportApp(reportRepo, &entity.Caller{ID: 1, Username: "admin", IsStaff: true})

	req := httptest.NewRequest(http.MethodGet, "/api/reports/sales/csv", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "sales_by_product.csv")

	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 3, "cabecera + dos filas")
	assert.Equal(t, "product_id,product_name,total_quantity,total_sales", lines[0])
	assert.Equal(t, "1,Laptop,3,4500.00", lines[1])
	assert.Equal(t, "2,Mouse,10,250.50", lines[2])
}

func TestExportCSV_SinPermiso_Retorna403(t *testing.T) {
	// Caller sin staff y sin perfil (stubUserRepo devuelve perfil nil).
	app := buildReportApp(&stubReportRepo{}, &entity.Caller{ID: 9, Username: "vendedor"})

	req := httptest.NewRequest(http.MethodGet, "/api/reports/sales/csv", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestExportCSV_Anonimo_Retorna401(t *testing.T) {
	app := buildReportApp(&stubReportRepo{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/sales/csv", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
