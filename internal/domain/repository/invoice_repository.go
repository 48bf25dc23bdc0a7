package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	// Create persiste la cabecera y asigna invoice.ID.
	// Retorna domain.ErrDuplicate si invoice_no ya existe (índice único).
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	// UpdateTotal fija el total calculado al cierre de la transacción de creación.
	UpdateTotal(invoiceID int64, total decimal.Decimal) error
	GetByID(id int64) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID int64) ([]*entity.InvoiceItem, error)
	// List devuelve facturas ordenadas por fecha descendente.
	// Con createdBy != nil solo las del usuario indicado (scoping por rol).
	List(createdBy *int64, limit, offset int) ([]*entity.Invoice, error)
	Delete(id int64) error // cascada a invoice_items vía FK
}
