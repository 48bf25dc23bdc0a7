package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación de solo lectura sobre facturas y líneas.
// Los filtros de fecha comparan sobre día calendario (date::date), inclusivos.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// invoiceConditions arma las condiciones WHERE del filtro sobre el alias de invoices.
func invoiceConditions(f repository.ReportFilter, alias string, args []any) ([]string, []any) {
	var conds []string
	if f.Start != nil {
		args = append(args, *f.Start)
		conds = append(conds, fmt.Sprintf("%s.date::date >= $%d", alias, len(args)))
	}
	if f.End != nil {
		args = append(args, *f.End)
		conds = append(conds, fmt.Sprintf("%s.date::date <= $%d", alias, len(args)))
	}
	if f.CreatedBy != nil {
		args = append(args, *f.CreatedBy)
		conds = append(conds, fmt.Sprintf("%s.created_by = $%d", alias, len(args)))
	}
	return conds, args
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// SalesSummary devuelve ingresos totales y cantidad de facturas del filtro.
func (r *ReportRepo) SalesSummary(ctx context.Context, f repository.ReportFilter) (decimal.Decimal, int64, error) {
	conds, args := invoiceConditions(f, "i", nil)
	query := `SELECT COALESCE(SUM(i.total), 0), COUNT(*) FROM invoices i` + whereClause(conds)

	var total decimal.Decimal
	var count int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales summary: %w", err)
	}
	return total, count, nil
}

// SalesByProduct agrupa líneas de factura por producto, descendente por ventas.
func (r *ReportRepo) SalesByProduct(ctx context.Context, f repository.ReportFilter) ([]repository.ProductSalesRow, error) {
	conds, args := invoiceConditions(f, "i", nil)
	query := `
		SELECT p.id, p.name, COALESCE(SUM(ii.quantity), 0), COALESCE(SUM(ii.line_total), 0)
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		JOIN products p ON p.id = ii.product_id` + whereClause(conds) + `
		GROUP BY p.id, p.name
		ORDER BY SUM(ii.line_total) DESC, p.id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by product: %w", err)
	}
	defer rows.Close()
	var out []repository.ProductSalesRow
	for rows.Next() {
		var row repository.ProductSalesRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.TotalQuantity, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("scan sales by product: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SalesByUser agrupa facturas por creador, descendente por ventas.
// Las facturas cuyo creador fue eliminado quedan agrupadas con user nulo.
func (r *ReportRepo) SalesByUser(ctx context.Context, f repository.ReportFilter) ([]repository.UserSalesRow, error) {
	conds, args := invoiceConditions(f, "i", nil)
	query := `
		SELECT u.id, u.username, COALESCE(SUM(i.total), 0), COUNT(i.id)
		FROM invoices i
		LEFT JOIN users u ON u.id = i.created_by` + whereClause(conds) + `
		GROUP BY u.id, u.username
		ORDER BY SUM(i.total) DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by user: %w", err)
	}
	defer rows.Close()
	var out []repository.UserSalesRow
	for rows.Next() {
		var row repository.UserSalesRow
		if err := rows.Scan(&row.UserID, &row.Username, &row.TotalSales, &row.InvoiceCount); err != nil {
			return nil, fmt.Errorf("scan sales by user: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SalesByMonth agrupa por (año, mes) dentro de la ventana [from, to], además del
// filtro start/end. Solo devuelve los meses con ventas; el caso de uso rellena con cero.
func (r *ReportRepo) SalesByMonth(ctx context.Context, f repository.ReportFilter, from, to time.Time) ([]repository.MonthSalesRow, error) {
	args := []any{from, to}
	conds := []string{"i.date::date >= $1", "i.date::date <= $2"}
	extra, args := invoiceConditions(f, "i", args)
	conds = append(conds, extra...)

	query := `
		SELECT EXTRACT(YEAR FROM i.date)::int, EXTRACT(MONTH FROM i.date)::int, COALESCE(SUM(i.total), 0)
		FROM invoices i` + whereClause(conds) + `
		GROUP BY 1, 2
		ORDER BY 1, 2`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by month: %w", err)
	}
	defer rows.Close()
	var out []repository.MonthSalesRow
	for rows.Next() {
		var row repository.MonthSalesRow
		if err := rows.Scan(&row.Year, &row.Month, &row.Sales); err != nil {
			return nil, fmt.Errorf("scan sales by month: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SalesByDay agrupa por día calendario dentro de [from, to], además del filtro.
func (r *ReportRepo) SalesByDay(ctx context.Context, f repository.ReportFilter, from, to time.Time) ([]repository.DaySalesRow, error) {
	args := []any{from, to}
	conds := []string{"i.date::date >= $1", "i.date::date <= $2"}
	extra, args := invoiceConditions(f, "i", args)
	conds = append(conds, extra...)

	query := `
		SELECT i.date::date, COALESCE(SUM(i.total), 0)
		FROM invoices i` + whereClause(conds) + `
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	defer rows.Close()
	var out []repository.DaySalesRow
	for rows.Next() {
		var row repository.DaySalesRow
		if err := rows.Scan(&row.Day, &row.Sales); err != nil {
			return nil, fmt.Errorf("scan sales by day: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListInvoices devuelve hasta limit filas para el reporte de facturas,
// más recientes primero, con username del creador y cantidad de líneas.
func (r *ReportRepo) ListInvoices(ctx context.Context, f repository.ReportFilter, limit int) ([]repository.InvoiceReportRow, error) {
	conds, args := invoiceConditions(f, "i", nil)
	args = append(args, limit)
	query := `
		SELECT i.id, i.invoice_no, i.date, u.username, i.total,
			(SELECT COUNT(*) FROM invoice_items ii WHERE ii.invoice_id = i.id)
		FROM invoices i
		LEFT JOIN users u ON u.id = i.created_by` + whereClause(conds) +
		fmt.Sprintf(` ORDER BY i.date DESC, i.id DESC LIMIT $%d`, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices report: %w", err)
	}
	defer rows.Close()
	var out []repository.InvoiceReportRow
	for rows.Next() {
		var row repository.InvoiceReportRow
		if err := rows.Scan(&row.ID, &row.InvoiceNo, &row.Date, &row.CreatedBy, &row.Total, &row.ItemCount); err != nil {
			return nil, fmt.Errorf("scan invoice report row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
