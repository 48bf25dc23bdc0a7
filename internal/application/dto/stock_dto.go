package dto

import "time"

// CreateStockAdjustmentRequest entrada para registrar un ajuste de inventario.
// Change es un delta con signo; cero no tiene sentido y se rechaza.
type CreateStockAdjustmentRequest struct {
	Product int64  `json:"product" validate:"required,gt=0"`
	Change  int64  `json:"change" validate:"required"`
	Reason  string `json:"reason" validate:"max=200"`
}

// StockAdjustmentResponse salida de un ajuste.
type StockAdjustmentResponse struct {
	ID            int64            `json:"id"`
	Product       int64            `json:"product"`
	ProductDetail *ProductResponse `json:"product_detail,omitempty"`
	Change        int64            `json:"change"`
	Reason        string           `json:"reason,omitempty"`
	CreatedBy     *int64           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
}

// StockAdjustmentListResponse lista paginada de ajustes.
type StockAdjustmentListResponse struct {
	Items []StockAdjustmentResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
