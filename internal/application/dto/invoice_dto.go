package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceItemRequest línea de la petición de creación.
// Product acepta un ID numérico o un nombre de producto; la resolución la hace
// el caso de uso (ID → nombre exacto → auto-creación si el flag lo permite).
type CreateInvoiceItemRequest struct {
	Product  string          `json:"product"`
	Quantity int64           `json:"quantity" validate:"required,gt=0"`
	Price    decimal.Decimal `json:"price"`
}

// CreateInvoiceRequest entrada para crear una factura.
type CreateInvoiceRequest struct {
	Items           []CreateInvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomsDuty     decimal.Decimal            `json:"customs_duty"`
	ShippingCharges decimal.Decimal            `json:"shipping_charges"`
}

// InvoiceItemResponse línea de factura en respuestas.
type InvoiceItemResponse struct {
	ID        int64           `json:"id"`
	Product   int64           `json:"product"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// InvoiceResponse salida de una factura con sus líneas.
type InvoiceResponse struct {
	ID        int64                 `json:"id"`
	InvoiceNo string                `json:"invoice_no"`
	CreatedBy *int64                `json:"created_by"`
	Date      time.Time             `json:"date"`
	Total     decimal.Decimal       `json:"total"`
	Status    string                `json:"status"`
	Items     []InvoiceItemResponse `json:"items"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
