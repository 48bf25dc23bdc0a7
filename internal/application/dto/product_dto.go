package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name                string          `json:"name" validate:"required,min=1,max=100"`
	SKU                 string          `json:"sku" validate:"required,min=1,max=50"`
	Barcode             string          `json:"barcode" validate:"max=100"`
	HSCode              string          `json:"hs_code" validate:"max=20"`
	Price               decimal.Decimal `json:"price"`
	Stock               int64           `json:"stock" validate:"min=0"`
	AvailableForInvoice *bool           `json:"available_for_invoice"` // default true
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
// El stock no se edita por aquí: se maneja vía ajustes de inventario.
type UpdateProductRequest struct {
	Name                *string          `json:"name" validate:"omitempty,min=1,max=100"`
	SKU                 *string          `json:"sku" validate:"omitempty,min=1,max=50"`
	Barcode             *string          `json:"barcode" validate:"omitempty,max=100"`
	HSCode              *string          `json:"hs_code" validate:"omitempty,max=20"`
	Price               *decimal.Decimal `json:"price"`
	AvailableForInvoice *bool            `json:"available_for_invoice"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	SKU                 string          `json:"sku"`
	Barcode             string          `json:"barcode,omitempty"`
	HSCode              string          `json:"hs_code,omitempty"`
	Price               decimal.Decimal `json:"price"`
	Stock               int64           `json:"stock"`
	AvailableForInvoice bool            `json:"available_for_invoice"`
	CreatedAt           time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
