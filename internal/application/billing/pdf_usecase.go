package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		generator:   generator,
	}
}

// DownloadInvoicePDF carga la factura con el mismo scoping que GetInvoice
// (staff ve cualquiera, el resto solo lo propio) y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la factura no existe o no es visible para el caller.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, caller *entity.Caller, invoiceID int64) (pdfBytes []byte, filename string, err error) {
	if caller == nil {
		return nil, "", domain.ErrUnauthorized
	}
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if !caller.IsStaff {
		if inv.CreatedBy == nil || *inv.CreatedBy != caller.ID {
			return nil, "", domain.ErrNotFound
		}
	}

	rawItems, err := uc.invoiceRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}

	// Enriquecer cada línea con el nombre del producto
	enriched := make([]InvoiceItemForPDF, 0, len(rawItems))
	for _, item := range rawItems {
		name := fmt.Sprintf("Producto %d", item.ProductID) // fallback
		if product, pErr := uc.productRepo.GetByID(item.ProductID); pErr == nil && product != nil {
			name = product.Name
		}
		enriched = append(enriched, InvoiceItemForPDF{
			InvoiceItem: *item,
			ProductName: name,
		})
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_%s.pdf", inv.InvoiceNo)
	return pdfBytes, filename, nil
}
