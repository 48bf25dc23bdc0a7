package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusPaid estado por defecto de una factura al crearse.
const StatusPaid = "PAID"

// Invoice representa la cabecera de una factura.
// InvoiceNo se deriva del timestamp de creación con resolución de microsegundos
// y lleva índice único; las colisiones se resuelven reintentando la transacción.
type Invoice struct {
	ID        int64
	InvoiceNo string
	CreatedBy *int64 // nil si el creador fue eliminado o la factura es anónima
	Date      time.Time
	Total     decimal.Decimal // suma de line_total de los ítems + aduana + envío
	Status    string
}

// InvoiceItem es una línea de factura. Price es un snapshot del precio al momento
// de la venta y LineTotal se calcula una sola vez al crear; no se recalcula después.
type InvoiceItem struct {
	ID        int64
	InvoiceID int64
	ProductID int64
	Quantity  int64
	Price     decimal.Decimal
	LineTotal decimal.Decimal // Quantity × Price
}
