package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeReportRepo struct {
	lastFilter repository.ReportFilter

	summaryTotal decimal.Decimal
	summaryCount int64
	byProduct    []repository.ProductSalesRow
	byUser       []repository.UserSalesRow
	byMonth      []repository.MonthSalesRow
	byDay        []repository.DaySalesRow
	invoices     []repository.InvoiceReportRow

	monthFrom, monthTo time.Time
	dayFrom, dayTo     time.Time
}

func (r *fakeReportRepo) SalesSummary(_ context.Context, f repository.ReportFilter) (decimal.Decimal, int64, error) {
	r.lastFilter = f
	return r.summaryTotal, r.summaryCount, nil
}

func (r *fakeReportRepo) SalesByProduct(_ context.Context, f repository.ReportFilter) ([]repository.ProductSalesRow, error) {
	r.lastFilter = f
	return r.byProduct, nil
}

func (r *fakeReportRepo) SalesByUser(_ context.Context, f repository.ReportFilter) ([]repository.UserSalesRow, error) {
	r.lastFilter = f
	return r.byUser, nil
}

func (r *fakeReportRepo) SalesByMonth(_ context.Context, f repository.ReportFilter, from, to time.Time) ([]repository.MonthSalesRow, error) {
	r.lastFilter = f
	r.monthFrom, r.monthTo = from, to
	return r.byMonth, nil
}

func (r *fakeReportRepo) SalesByDay(_ context.Context, f repository.ReportFilter, from, to time.Time) ([]repository.DaySalesRow, error) {
	r.lastFilter = f
	r.dayFrom, r.dayTo = from, to
	return r.byDay, nil
}

func (r *fakeReportRepo) ListInvoices(_ context.Context, f repository.ReportFilter, limit int) ([]repository.InvoiceReportRow, error) {
	r.lastFilter = f
	if len(r.invoices) > limit {
		return r.invoices[:limit], nil
	}
	return r.invoices, nil
}

type fakeUserRepo struct {
	profiles map[int64]*entity.UserProfile
}

func (r *fakeUserRepo) Create(*entity.User) error               { return nil }
func (r *fakeUserRepo) GetByID(int64) (*entity.User, error)     { return nil, nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) CreateProfile(*entity.UserProfile) error { return nil }
func (r *fakeUserRepo) UpdateProfile(*entity.UserProfile) error { return nil }
func (r *fakeUserRepo) GetProfile(userID int64) (*entity.UserProfile, error) {
	return r.profiles[userID], nil
}

func newFixture() (*UseCase, *fakeReportRepo, *fakeUserRepo) {
	reportRepo := &fakeReportRepo{summaryTotal: decimal.Zero}
	userRepo := &fakeUserRepo{profiles: map[int64]*entity.UserProfile{}}
	return NewUseCase(reportRepo, userRepo), reportRepo, userRepo
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// ──────────────────────────────────────────────────────────────────────────────
// Series temporales
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesReport_SerieMensualCompleta(t *testing.T) {
	uc, reportRepo, _ := newFixture()
	// Solo dos meses con ventas; el resto debe rellenarse con cero.
	reportRepo.byMonth = []repository.MonthSalesRow{
		{Year: 2025, Month: 12, Sales: decimal.RequireFromString("100.00")},
		{Year: 2026, Month: 3, Sales: decimal.RequireFromString("50.00")},
	}

	end := datePtr(2026, time.March, 15)
	out, err := uc.SalesReport(context.Background(), &entity.Caller{ID: 1, IsStaff: true}, nil, end)
	require.NoError(t, err)

	require.Len(t, out.MonthlySalesLast12, 12, "siempre 12 buckets")
	first := out.MonthlySalesLast12[0]
	last := out.MonthlySalesLast12[11]
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, 4, first.Month, "la serie arranca 11 meses antes del mes de referencia")
	assert.Equal(t, 2026, last.Year)
	assert.Equal(t, 3, last.Month, "la serie termina en el mes de referencia")

	// Buckets con ventas en su posición, el resto en cero.
	assert.True(t, out.MonthlySalesLast12[8].Sales.Equal(decimal.RequireFromString("100.00")), "2025-12 es el bucket 8")
	assert.True(t, out.MonthlySalesLast12[11].Sales.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, out.MonthlySalesLast12[0].Sales.IsZero())
	assert.True(t, out.MonthlySalesLast12[5].Sales.IsZero())
}

func TestSalesReport_SerieDiariaCompleta(t *testing.T) {
	uc, reportRepo, _ := newFixture()
	reportRepo.byDay = []repository.DaySalesRow{
		{Day: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), Sales: decimal.RequireFromString("77.00")},
	}

	end := datePtr(2026, time.March, 15)
	out, err := uc.SalesReport(context.Background(), &entity.Caller{ID: 1, IsStaff: true}, nil, end)
	require.NoError(t, err)

	require.Len(t, out.DailySalesLast30, 30, "siempre 30 buckets")
	assert.Equal(t, "2026-02-14", out.DailySalesLast30[0].Date, "arranca 29 días antes del día de referencia")
	assert.Equal(t, "2026-03-15", out.DailySalesLast30[29].Date)

	var found bool
	for _, bucket := range out.DailySalesLast30 {
		if bucket.Date == "2026-03-01" {
			found = true
			assert.True(t, bucket.Sales.Equal(decimal.RequireFromString("77.00")))
		} else {
			assert.True(t, bucket.Sales.IsZero(), "bucket %s sin ventas debe ser cero", bucket.Date)
		}
	}
	assert.True(t, found)
}

func TestSalesReport_VentanasDeSeriesAncladasEnEndDate(t *testing.T) {
	uc, reportRepo, _ := newFixture()

	end := datePtr(2026, time.March, 15)
	_, err := uc.SalesReport(context.Background(), &entity.Caller{ID: 1, IsStaff: true}, nil, end)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), reportRepo.monthFrom)
	assert.Equal(t, time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), reportRepo.monthTo)
	assert.Equal(t, time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC), reportRepo.dayFrom)
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), reportRepo.dayTo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Scoping por permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesReport_SinPermisoVeSoloLoPropio(t *testing.T) {
	uc, reportRepo, userRepo := newFixture()
	userRepo.profiles[9] = &entity.UserProfile{UserID: 9, CanViewReports: false}

	_, err := uc.SalesReport(context.Background(), &entity.Caller{ID: 9, Username: "vendedor"}, nil, nil)
	require.NoError(t, err)

	require.NotNil(t, reportRepo.lastFilter.CreatedBy, "debe filtrarse por el propio usuario")
	assert.Equal(t, int64(9), *reportRepo.lastFilter.CreatedBy)
}

func TestSalesReport_CanViewReportsVeTodo(t *testing.T) {
	uc, reportRepo, userRepo := newFixture()
	userRepo.profiles[9] = &entity.UserProfile{UserID: 9, CanViewReports: true}

	_, err := uc.SalesReport(context.Background(), &entity.Caller{ID: 9, Username: "analista"}, nil, nil)
	require.NoError(t, err)

	assert.Nil(t, reportRepo.lastFilter.CreatedBy, "con can_view_reports no hay scoping")
}

func TestSalesReport_AnonimoRetorna401(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.SalesReport(context.Background(), nil, nil, nil)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Export CSV y listado de facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesByProductExport_SinPermisoRetorna403(t *testing.T) {
	uc, _, userRepo := newFixture()
	userRepo.profiles[9] = &entity.UserProfile{UserID: 9}

	_, err := uc.SalesByProductExport(context.Background(), &entity.Caller{ID: 9}, nil, nil)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSalesByProductExport_StaffObtieneFilas(t *testing.T) {
	uc, reportRepo, _ := newFixture()
	reportRepo.byProduct = []repository.ProductSalesRow{
		{ProductID: 1, ProductName: "Laptop", TotalQuantity: 3, TotalSales: decimal.RequireFromString("4500.00")},
	}

	rows, err := uc.SalesByProductExport(context.Background(), &entity.Caller{ID: 1, IsStaff: true}, nil, nil)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Laptop", rows[0].ProductName)
	assert.Nil(t, reportRepo.lastFilter.CreatedBy, "el export es de organización completa")
}

func TestInvoicesReport_FormateaFechasRFC3339(t *testing.T) {
	uc, reportRepo, _ := newFixture()
	username := "admin"
	reportRepo.invoices = []repository.InvoiceReportRow{
		{
			ID:        1,
			InvoiceNo: "INV-20260831120000000001",
			Date:      time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC),
			CreatedBy: &username,
			Total:     decimal.RequireFromString("99.90"),
			ItemCount: 2,
		},
	}

	out, err := uc.InvoicesReport(context.Background(), &entity.Caller{ID: 1, IsStaff: true}, nil, nil)
	require.NoError(t, err)

	require.Equal(t, 1, out.Count)
	assert.Equal(t, "2026-08-31T12:00:00Z", out.Invoices[0].Date)
	assert.Equal(t, "admin", *out.Invoices[0].CreatedBy)
}

// ──────────────────────────────────────────────────────────────────────────────
// /api/me
// ──────────────────────────────────────────────────────────────────────────────

func TestMe_IncluyeFlagsDelPerfil(t *testing.T) {
	uc, _, userRepo := newFixture()
	userRepo.profiles[5] = &entity.UserProfile{UserID: 5, CanGenerateInvoice: true, CanViewReports: false}

	out, err := uc.Me(&entity.Caller{ID: 5, Username: "cajero", IsStaff: false})
	require.NoError(t, err)

	assert.Equal(t, "cajero", out.Username)
	assert.False(t, out.IsStaff)
	assert.True(t, out.CanGenerateInvoice)
	assert.False(t, out.CanViewReports)
}

func TestMe_SinPerfilTodoApagado(t *testing.T) {
	uc, _, _ := newFixture()

	out, err := uc.Me(&entity.Caller{ID: 6, Username: "nuevo"})
	require.NoError(t, err)

	assert.False(t, out.CanGenerateInvoice)
	assert.False(t, out.CanViewReports)
}
