package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// StockAdjustmentRepository puerto de persistencia para ajustes de inventario.
type StockAdjustmentRepository interface {
	// Create persiste el ajuste y asigna adjustment.ID.
	Create(adjustment *entity.StockAdjustment) error
	// List devuelve ajustes ordenados por created_at descendente.
	List(limit, offset int) ([]*entity.StockAdjustment, error)
}
