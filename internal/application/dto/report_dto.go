package dto

import "github.com/shopspring/decimal"

// ProductSales agregado de ventas por producto (también usado en top_products).
type ProductSales struct {
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalSales    decimal.Decimal `json:"total_sales"`
}

// UserSales agregado de ventas por usuario creador.
type UserSales struct {
	UserID       *int64          `json:"user_id"`
	Username     *string         `json:"username"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	InvoiceCount int64           `json:"invoice_count"`
}

// MonthSales bucket mensual de la serie de 12 meses.
type MonthSales struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Sales decimal.Decimal `json:"sales"`
}

// DaySales bucket diario de la serie de 30 días. Date en formato YYYY-MM-DD.
type DaySales struct {
	Date  string          `json:"date"`
	Sales decimal.Decimal `json:"sales"`
}

// SalesReportResponse reporte completo de ventas.
// Las series tienen siempre exactamente 12 y 30 buckets en orden cronológico,
// con ceros en los períodos sin ventas.
type SalesReportResponse struct {
	TotalSales         decimal.Decimal `json:"total_sales"`
	InvoiceCount       int64           `json:"invoice_count"`
	SalesByProduct     []ProductSales  `json:"sales_by_product"`
	SalesByUser        []UserSales     `json:"sales_by_user"`
	TopProducts        []ProductSales  `json:"top_products"`
	MonthlySalesLast12 []MonthSales    `json:"monthly_sales_last_12"`
	DailySalesLast30   []DaySales      `json:"daily_sales_last_30"`
}

// InvoiceReportEntry fila del listado de facturas para reportes.
type InvoiceReportEntry struct {
	ID        int64           `json:"id"`
	InvoiceNo string          `json:"invoice_no"`
	Date      string          `json:"date"` // RFC 3339
	CreatedBy *string         `json:"created_by"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int64           `json:"item_count"`
}

// InvoicesReportResponse listado de facturas (máximo 200 filas).
type InvoicesReportResponse struct {
	Invoices []InvoiceReportEntry `json:"invoices"`
	Count    int                  `json:"count"`
}
