package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/reports"
)

// invalidDateMessage mensaje fijo para fechas mal formadas en query params.
const invalidDateMessage = "Invalid date format, use YYYY-MM-DD."

// ReportHandler maneja el motor de reportes y la introspección /api/me.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// parseDateRange lee start_date/end_date (YYYY-MM-DD, inclusivos) del query string.
// Una fecha mal formada responde 400 con mensaje fijo y retorna ok=false.
func parseDateRange(c *fiber.Ctx) (start, end *time.Time, ok bool, err error) {
	parse := func(param string) (*time.Time, bool) {
		raw := c.Query(param)
		if raw == "" {
			return nil, true
		}
		t, pErr := time.Parse("2006-01-02", raw)
		if pErr != nil {
			return nil, false
		}
		return &t, true
	}
	var good bool
	if start, good = parse("start_date"); !good {
		return nil, nil, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: invalidDateMessage})
	}
	if end, good = parse("end_date"); !good {
		return nil, nil, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: invalidDateMessage})
	}
	return start, end, true, nil
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  Totales, ventas por producto y por usuario, top 10 y series de
// @Description  12 meses y 30 días (siempre completas, con ceros). Staff y
// @Description  can_view_reports ven toda la organización; el resto solo lo propio.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD inclusivo"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusivo"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	start, end, ok, err := parseDateRange(c)
	if !ok {
		return err
	}
	out, err := h.uc.SalesReport(c.UserContext(), GetCaller(c), start, end)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Invoices godoc
// @Summary      Listado de facturas para reportes
// @Description  Hasta 200 facturas con creador y cantidad de líneas, mismo scoping
// @Description  que el reporte de ventas.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD inclusivo"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusivo"
// @Success      200  {object}  dto.InvoicesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/invoices [get]
func (h *ReportHandler) Invoices(c *fiber.Ctx) error {
	start, end, ok, err := parseDateRange(c)
	if !ok {
		return err
	}
	out, err := h.uc.InvoicesReport(c.UserContext(), GetCaller(c), start, end)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ExportSalesCSV godoc
// @Summary      Exportar ventas por producto en CSV
// @Description  Requiere staff o can_view_reports. Descarga sales_by_product.csv.
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        start_date  query  string  false  "YYYY-MM-DD inclusivo"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusivo"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/csv [get]
func (h *ReportHandler) ExportSalesCSV(c *fiber.Ctx) error {
	start, end, ok, err := parseDateRange(c)
	if !ok {
		return err
	}
	rows, err := h.uc.SalesByProductExport(c.UserContext(), GetCaller(c), start, end)
	if err != nil {
		return domainError(c, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"product_id", "product_name", "total_quantity", "total_sales"})
	for _, row := range rows {
		_ = w.Write([]string{
			fmt.Sprintf("%d", row.ProductID),
			row.ProductName,
			fmt.Sprintf("%d", row.TotalQuantity),
			row.TotalSales.StringFixed(2),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return domainError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales_by_product.csv"`)
	return c.Send(buf.Bytes())
}

// Me godoc
// @Summary      Capacidades del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *ReportHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(GetCaller(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
