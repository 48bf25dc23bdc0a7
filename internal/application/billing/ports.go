package billing

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye los
// repos de productos y facturas. Garantiza atomicidad al crear facturas:
// cabecera, líneas, productos auto-creados y total, todo o nada por intento.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación gráfica (PDF) de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, items []InvoiceItemForPDF) ([]byte, error)
}

// InvoiceItemForPDF línea enriquecida con el nombre del producto para el PDF.
type InvoiceItemForPDF struct {
	entity.InvoiceItem
	ProductName string
}
