package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	// Create persiste el producto y asigna product.ID.
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetByName busca por nombre exacto (segundo paso de resolución al facturar).
	GetByName(name string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id int64) error
	// List devuelve productos ordenados por created_at descendente.
	// Con onlyForInvoice solo incluye los marcados available_for_invoice.
	List(onlyForInvoice bool, limit, offset int) ([]*entity.Product, error)
	// AdjustStock aplica un delta con signo al stock del producto de forma atómica.
	// Retorna domain.ErrInsufficientStock si el resultado quedaría negativo y
	// domain.ErrNotFound si el producto no existe.
	AdjustStock(productID, delta int64) error
}
