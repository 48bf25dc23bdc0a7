package usecase

import (
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
// El stock no se edita por aquí: se maneja vía ajustes de inventario.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. AvailableForInvoice por defecto true.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	available := true
	if in.AvailableForInvoice != nil {
		available = *in.AvailableForInvoice
	}
	product := &entity.Product{
		Name:                in.Name,
		SKU:                 in.SKU,
		Barcode:             in.Barcode,
		HSCode:              in.HSCode,
		Price:               in.Price,
		Stock:               in.Stock,
		AvailableForInvoice: available,
		CreatedAt:           time.Now(),
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID, o nil si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. El stock no se toca aquí.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		existing, _ := uc.repo.GetBySKU(*in.SKU)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.HSCode != nil {
		product.HSCode = *in.HSCode
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.AvailableForInvoice != nil {
		product.AvailableForInvoice = *in.AvailableForInvoice
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos, más recientes primero. Con onlyForInvoice filtra los
// marcados available_for_invoice (selector de productos al facturar).
func (uc *ProductUseCase) List(onlyForInvoice bool, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(onlyForInvoice, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID (cascada a sus líneas de factura vía FK).
func (uc *ProductUseCase) Delete(id int64) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		SKU:                 p.SKU,
		Barcode:             p.Barcode,
		HSCode:              p.HSCode,
		Price:               p.Price,
		Stock:               p.Stock,
		AvailableForInvoice: p.AvailableForInvoice,
		CreatedAt:           p.CreatedAt,
	}
}
