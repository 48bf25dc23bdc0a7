package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Tamaños fijos de las series temporales del reporte de ventas.
const (
	monthlyBuckets = 12
	dailyBuckets   = 30
	topProductsN   = 10

	// maxInvoiceRows tope del listado de facturas del reporte.
	maxInvoiceRows = 200
)

// UseCase motor de reportes: agregaciones de solo lectura sobre facturas y líneas.
// La visibilidad de organización completa requiere staff o can_view_reports;
// el resto de callers solo ve sus propias facturas en las cuatro vistas.
type UseCase struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

// NewUseCase construye el motor de reportes.
func NewUseCase(reportRepo repository.ReportRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo, userRepo: userRepo}
}

// canViewAll indica si el caller puede ver reportes de toda la organización.
func (uc *UseCase) canViewAll(caller *entity.Caller) (bool, error) {
	if caller == nil {
		return false, domain.ErrUnauthorized
	}
	if caller.IsStaff {
		return true, nil
	}
	profile, err := uc.userRepo.GetProfile(caller.ID)
	if err != nil {
		return false, err
	}
	return profile != nil && profile.CanViewReports, nil
}

// scopedFilter arma el filtro del repositorio aplicando el scoping por permisos.
func (uc *UseCase) scopedFilter(caller *entity.Caller, start, end *time.Time) (repository.ReportFilter, error) {
	allowed, err := uc.canViewAll(caller)
	if err != nil {
		return repository.ReportFilter{}, err
	}
	f := repository.ReportFilter{Start: start, End: end}
	if !allowed {
		id := caller.ID
		f.CreatedBy = &id
	}
	return f, nil
}

// SalesReport produce el reporte completo: totales, ventas por producto y por usuario,
// top 10 de productos y las series de 12 meses y 30 días.
//
// El día de referencia de las series es end_date si se indicó, o el día actual.
// Cada bucket se intersecta además con el filtro start/end (doble filtro heredado
// del comportamiento original; los buckets de borde pueden subcontar).
func (uc *UseCase) SalesReport(ctx context.Context, caller *entity.Caller, start, end *time.Time) (*dto.SalesReportResponse, error) {
	f, err := uc.scopedFilter(caller, start, end)
	if err != nil {
		return nil, err
	}

	total, count, err := uc.reportRepo.SalesSummary(ctx, f)
	if err != nil {
		return nil, err
	}

	byProduct, err := uc.reportRepo.SalesByProduct(ctx, f)
	if err != nil {
		return nil, err
	}
	productSales := make([]dto.ProductSales, 0, len(byProduct))
	for _, row := range byProduct {
		productSales = append(productSales, dto.ProductSales{
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			TotalQuantity: row.TotalQuantity,
			TotalSales:    row.TotalSales,
		})
	}
	top := productSales
	if len(top) > topProductsN {
		top = top[:topProductsN]
	}

	byUser, err := uc.reportRepo.SalesByUser(ctx, f)
	if err != nil {
		return nil, err
	}
	userSales := make([]dto.UserSales, 0, len(byUser))
	for _, row := range byUser {
		userSales = append(userSales, dto.UserSales{
			UserID:       row.UserID,
			Username:     row.Username,
			TotalSales:   row.TotalSales,
			InvoiceCount: row.InvoiceCount,
		})
	}

	ref := referenceDay(end)
	monthly, err := uc.monthlySeries(ctx, f, ref)
	if err != nil {
		return nil, err
	}
	daily, err := uc.dailySeries(ctx, f, ref)
	if err != nil {
		return nil, err
	}

	return &dto.SalesReportResponse{
		TotalSales:         total,
		InvoiceCount:       count,
		SalesByProduct:     productSales,
		SalesByUser:        userSales,
		TopProducts:        top,
		MonthlySalesLast12: monthly,
		DailySalesLast30:   daily,
	}, nil
}

// referenceDay devuelve el día ancla de las series: end_date si se indicó, si no hoy.
func referenceDay(end *time.Time) time.Time {
	if end != nil {
		return truncateDay(*end)
	}
	return truncateDay(time.Now())
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// monthlySeries devuelve exactamente 12 buckets (año, mes) en orden cronológico
// terminando en el mes del día de referencia, con cero en los meses sin ventas.
func (uc *UseCase) monthlySeries(ctx context.Context, f repository.ReportFilter, ref time.Time) ([]dto.MonthSales, error) {
	// Ventana: del primer día del mes más antiguo al último día del mes de referencia.
	firstMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, -(monthlyBuckets - 1), 0)
	lastDay := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, 1, -1)

	rows, err := uc.reportRepo.SalesByMonth(ctx, f, firstMonth, lastDay)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[[2]int]decimal.Decimal, len(rows))
	for _, row := range rows {
		byMonth[[2]int{row.Year, row.Month}] = row.Sales
	}

	series := make([]dto.MonthSales, 0, monthlyBuckets)
	for i := 0; i < monthlyBuckets; i++ {
		m := firstMonth.AddDate(0, i, 0)
		key := [2]int{m.Year(), int(m.Month())}
		sales, ok := byMonth[key]
		if !ok {
			sales = decimal.Zero
		}
		series = append(series, dto.MonthSales{Year: key[0], Month: key[1], Sales: sales})
	}
	return series, nil
}

// dailySeries devuelve exactamente 30 buckets diarios en orden cronológico
// terminando en el día de referencia, con cero en los días sin ventas.
func (uc *UseCase) dailySeries(ctx context.Context, f repository.ReportFilter, ref time.Time) ([]dto.DaySales, error) {
	from := ref.AddDate(0, 0, -(dailyBuckets - 1))

	rows, err := uc.reportRepo.SalesByDay(ctx, f, from, ref)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		byDay[row.Day.Format("2006-01-02")] = row.Sales
	}

	series := make([]dto.DaySales, 0, dailyBuckets)
	for i := 0; i < dailyBuckets; i++ {
		day := from.AddDate(0, 0, i).Format("2006-01-02")
		sales, ok := byDay[day]
		if !ok {
			sales = decimal.Zero
		}
		series = append(series, dto.DaySales{Date: day, Sales: sales})
	}
	return series, nil
}

// InvoicesReport lista facturas (máximo 200) con los mismos filtros de fecha.
// Staff y can_view_reports ven todas; el resto solo las propias.
func (uc *UseCase) InvoicesReport(ctx context.Context, caller *entity.Caller, start, end *time.Time) (*dto.InvoicesReportResponse, error) {
	f, err := uc.scopedFilter(caller, start, end)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.ListInvoices(ctx, f, maxInvoiceRows)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceReportEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.InvoiceReportEntry{
			ID:        row.ID,
			InvoiceNo: row.InvoiceNo,
			Date:      row.Date.Format(time.RFC3339),
			CreatedBy: row.CreatedBy,
			Total:     row.Total,
			ItemCount: row.ItemCount,
		})
	}
	return &dto.InvoicesReportResponse{Invoices: out, Count: len(out)}, nil
}

// SalesByProductExport devuelve las filas de ventas por producto para el CSV.
// A diferencia del reporte JSON, exige el permiso de reportes (staff o
// can_view_reports) y no tiene versión con scoping propio.
func (uc *UseCase) SalesByProductExport(ctx context.Context, caller *entity.Caller, start, end *time.Time) ([]dto.ProductSales, error) {
	allowed, err := uc.canViewAll(caller)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.reportRepo.SalesByProduct(ctx, repository.ReportFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductSales, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ProductSales{
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			TotalQuantity: row.TotalQuantity,
			TotalSales:    row.TotalSales,
		})
	}
	return out, nil
}

// Me devuelve las capacidades del caller para introspección del frontend.
func (uc *UseCase) Me(caller *entity.Caller) (*dto.MeResponse, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	profile, err := uc.userRepo.GetProfile(caller.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.MeResponse{
		Username: caller.Username,
		IsStaff:  caller.IsStaff,
	}
	if profile != nil {
		resp.CanGenerateInvoice = profile.CanGenerateInvoice
		resp.CanViewReports = profile.CanViewReports
	}
	return resp, nil
}
