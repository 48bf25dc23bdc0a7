package inventory

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el registro del ajuste y la actualización del stock
// del producto sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		adjustmentRepo repository.StockAdjustmentRepository,
		productRepo repository.ProductRepository,
	) error) error
}
