package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// RegisterAdjustmentUseCase registra ajustes manuales de inventario.
// El delta se aplica a Product.Stock en la misma transacción que inserta el
// registro; un ajuste que dejaría el stock negativo se rechaza completo.
type RegisterAdjustmentUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.StockAdjustmentRepository
	productRepo    repository.ProductRepository
}

// NewRegisterAdjustmentUseCase construye el caso de uso.
func NewRegisterAdjustmentUseCase(
	txRunner TxRunner,
	adjustmentRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
) *RegisterAdjustmentUseCase {
	return &RegisterAdjustmentUseCase{
		txRunner:       txRunner,
		adjustmentRepo: adjustmentRepo,
		productRepo:    productRepo,
	}
}

// RegisterAdjustment valida e inserta el ajuste aplicando el delta al producto.
// Retorna domain.ErrNotFound si el producto no existe y domain.ErrInsufficientStock
// si el delta dejaría el stock negativo (rollback completo en ambos casos).
func (uc *RegisterAdjustmentUseCase) RegisterAdjustment(ctx context.Context, caller *entity.Caller, in dto.CreateStockAdjustmentRequest) (*dto.StockAdjustmentResponse, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if in.Change == 0 || in.Product <= 0 {
		return nil, domain.ErrInvalidInput
	}

	createdBy := caller.ID
	adjustment := &entity.StockAdjustment{
		ProductID: in.Product,
		Change:    in.Change,
		Reason:    in.Reason,
		CreatedBy: &createdBy,
		CreatedAt: time.Now(),
	}

	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(
		adjustmentRepo repository.StockAdjustmentRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		product, err = productRepo.GetByID(in.Product)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := productRepo.AdjustStock(in.Product, in.Change); err != nil {
			return err
		}
		product.Stock += in.Change
		return adjustmentRepo.Create(adjustment)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(adjustment, product), nil
}

// List lista ajustes, más recientes primero, con el detalle del producto.
func (uc *RegisterAdjustmentUseCase) List(ctx context.Context, limit, offset int) (*dto.StockAdjustmentListResponse, error) {
	list, err := uc.adjustmentRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockAdjustmentResponse, 0, len(list))
	for _, a := range list {
		product, err := uc.productRepo.GetByID(a.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, *uc.toResponse(a, product))
	}
	return &dto.StockAdjustmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *RegisterAdjustmentUseCase) toResponse(a *entity.StockAdjustment, product *entity.Product) *dto.StockAdjustmentResponse {
	resp := &dto.StockAdjustmentResponse{
		ID:        a.ID,
		Product:   a.ProductID,
		Change:    a.Change,
		Reason:    a.Reason,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
	}
	if product != nil {
		resp.ProductDetail = &dto.ProductResponse{
			ID:                  product.ID,
			Name:                product.Name,
			SKU:                 product.SKU,
			Barcode:             product.Barcode,
			HSCode:              product.HSCode,
			Price:               product.Price,
			Stock:               product.Stock,
			AvailableForInvoice: product.AvailableForInvoice,
			CreatedAt:           product.CreatedAt,
		}
	}
	return resp
}
