package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilter parámetros comunes de los reportes de ventas.
// Start/End son inclusivos con granularidad de día calendario.
// CreatedBy != nil restringe a las facturas creadas por ese usuario
// (callers sin staff ni can_view_reports solo ven lo propio).
type ReportFilter struct {
	Start     *time.Time
	End       *time.Time
	CreatedBy *int64
}

// ProductSalesRow agregado de ventas por producto.
type ProductSalesRow struct {
	ProductID     int64
	ProductName   string
	TotalQuantity int64
	TotalSales    decimal.Decimal
}

// UserSalesRow agregado de ventas por usuario creador.
// UserID/Username son nil para facturas cuyo creador fue eliminado.
type UserSalesRow struct {
	UserID       *int64
	Username     *string
	TotalSales   decimal.Decimal
	InvoiceCount int64
}

// MonthSalesRow ventas agregadas de un mes calendario.
type MonthSalesRow struct {
	Year  int
	Month int
	Sales decimal.Decimal
}

// DaySalesRow ventas agregadas de un día calendario.
type DaySalesRow struct {
	Day   time.Time
	Sales decimal.Decimal
}

// InvoiceReportRow fila del listado de facturas para reportes.
type InvoiceReportRow struct {
	ID        int64
	InvoiceNo string
	Date      time.Time
	CreatedBy *string // username, nil si el creador fue eliminado
	Total     decimal.Decimal
	ItemCount int64
}

// ReportRepository consultas de agregación de solo lectura para el motor de reportes.
type ReportRepository interface {
	// SalesSummary devuelve ingresos totales y cantidad de facturas del filtro.
	// Sin filas devuelve cero, nunca error por conjunto vacío.
	SalesSummary(ctx context.Context, f ReportFilter) (total decimal.Decimal, count int64, err error)
	// SalesByProduct agrupa líneas de factura por producto, descendente por total_sales.
	SalesByProduct(ctx context.Context, f ReportFilter) ([]ProductSalesRow, error)
	// SalesByUser agrupa facturas por creador, descendente por total_sales.
	SalesByUser(ctx context.Context, f ReportFilter) ([]UserSalesRow, error)
	// SalesByMonth agrupa por (año, mes) dentro de la ventana [from, to] además del
	// filtro start/end (doble filtro documentado); solo meses con ventas.
	SalesByMonth(ctx context.Context, f ReportFilter, from, to time.Time) ([]MonthSalesRow, error)
	// SalesByDay agrupa por día calendario dentro de [from, to] además del filtro.
	SalesByDay(ctx context.Context, f ReportFilter, from, to time.Time) ([]DaySalesRow, error)
	// ListInvoices devuelve hasta limit filas (id, número, fecha, creador, total, ítems).
	ListInvoices(ctx context.Context, f ReportFilter, limit int) ([]InvoiceReportRow, error)
}
