package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/config"
)

// maxCreateAttempts reintentos de la transacción completa ante colisión de invoice_no.
const maxCreateAttempts = 5

// errInvoiceNoCollision marca una violación del índice único de invoice_no.
// Es la única condición que dispara el reintento; cualquier otro duplicado
// (por ejemplo el SKU de un producto auto-creado) sale como domain.ErrDuplicate
// sin reintentar. No envuelve ningún sentinela del dominio: si los reintentos
// se agotan, la capa HTTP lo trata como error interno (500), no como conflicto.
var errInvoiceNoCollision = errors.New("colisión de numeración de factura")

// CreateInvoiceUseCase crea facturas: resuelve productos, calcula totales y asigna
// un número único con reintento ante colisión. Toda la creación es una transacción.
type CreateInvoiceUseCase struct {
	txRunner    BillingTxRunner
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
	userRepo    repository.UserRepository
	cfg         config.BillingConfig
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	cfg config.BillingConfig,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

// canGenerate decide si el caller puede crear facturas: staff siempre; el resto
// según profile.can_generate_invoice; anónimo solo con el flag explícito.
func (uc *CreateInvoiceUseCase) canGenerate(caller *entity.Caller) (bool, error) {
	if caller == nil {
		return uc.cfg.AllowAnonymousInvoice, nil
	}
	if caller.IsStaff {
		return true, nil
	}
	profile, err := uc.userRepo.GetProfile(caller.ID)
	if err != nil {
		return false, err
	}
	return profile != nil && profile.CanGenerateInvoice, nil
}

// CreateInvoice crea la factura con sus líneas en una sola transacción por intento.
// Ante violación del índice único de invoice_no se regenera el número y se reintenta
// la transacción completa, hasta maxCreateAttempts veces.
//
// El stock de los productos NO se descuenta aquí: los cambios de inventario fluyen
// únicamente por el log de ajustes (ver DESIGN.md).
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, caller *entity.Caller, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	ok, err := uc.canGenerate(caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		if caller == nil {
			return nil, domain.ErrUnauthorized
		}
		return nil, domain.ErrForbidden
	}

	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 || item.Product == "" {
			return nil, domain.ErrInvalidInput
		}
		if item.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	var createdBy *int64
	if caller != nil {
		id := caller.ID
		createdBy = &id
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		inv, items, err := uc.createOnce(ctx, createdBy, in)
		if err == nil {
			return toInvoiceResponse(inv, items), nil
		}
		if errors.Is(err, errInvoiceNoCollision) {
			// Colisión de invoice_no: regenerar número y reintentar todo.
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("la numeración de facturas agotó %d intentos: %w", maxCreateAttempts, errInvoiceNoCollision)
}

// createOnce ejecuta un intento completo: cabecera, resolución de productos,
// líneas y total, dentro de una transacción.
func (uc *CreateInvoiceUseCase) createOnce(ctx context.Context, createdBy *int64, in dto.CreateInvoiceRequest) (*entity.Invoice, []*entity.InvoiceItem, error) {
	now := time.Now()
	inv := &entity.Invoice{
		InvoiceNo: newInvoiceNo(now),
		CreatedBy: createdBy,
		Date:      now,
		Total:     decimal.Zero,
		Status:    entity.StatusPaid,
	}
	var items []*entity.InvoiceItem

	err := uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := invoiceRepo.Create(inv); err != nil {
			// El único índice único de invoices es invoice_no, así que un
			// duplicado en la cabecera es siempre una colisión de numeración.
			if errors.Is(err, domain.ErrDuplicate) {
				return errInvoiceNoCollision
			}
			return err
		}

		total := decimal.Zero
		for _, line := range in.Items {
			product, err := uc.resolveProduct(productRepo, line, now)
			if err != nil {
				return err
			}
			lineTotal := line.Price.Mul(decimal.NewFromInt(line.Quantity))
			item := &entity.InvoiceItem{
				InvoiceID: inv.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     line.Price,
				LineTotal: lineTotal,
			}
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)
			total = total.Add(lineTotal)
		}

		total = total.Add(in.CustomsDuty).Add(in.ShippingCharges)
		if err := invoiceRepo.UpdateTotal(inv.ID, total); err != nil {
			return err
		}
		inv.Total = total
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

// resolveProduct resuelve el identificador de una línea: primero como ID numérico,
// luego por nombre exacto y por último auto-creación si el flag lo permite.
// La auto-creación deriva el SKU de los primeros 10 caracteres del nombre.
func (uc *CreateInvoiceUseCase) resolveProduct(productRepo repository.ProductRepository, line dto.CreateInvoiceItemRequest, now time.Time) (*entity.Product, error) {
	if id, err := strconv.ParseInt(line.Product, 10, 64); err == nil {
		product, err := productRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if product != nil {
			return product, nil
		}
	}

	product, err := productRepo.GetByName(line.Product)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return product, nil
	}

	if !uc.cfg.AllowProductAutoCreate {
		return nil, domain.ErrNotFound
	}
	product = &entity.Product{
		Name:                line.Product,
		SKU:                 derivedSKU(line.Product),
		Price:               line.Price,
		AvailableForInvoice: true,
		CreatedAt:           now,
	}
	if err := productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// derivedSKU genera el SKU de un producto auto-creado: "SKU-" + primeros 10 caracteres del nombre.
func derivedSKU(name string) string {
	runes := []rune(name)
	if len(runes) > 10 {
		runes = runes[:10]
	}
	return "SKU-" + string(runes)
}

// GetInvoice obtiene una factura con sus líneas. Staff ve cualquiera; el resto
// solo las propias (el scoping hace que lo ajeno responda como no encontrado).
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, caller *entity.Caller, id int64) (*dto.InvoiceResponse, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !caller.IsStaff {
		if inv.CreatedBy == nil || *inv.CreatedBy != caller.ID {
			return nil, domain.ErrNotFound
		}
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// ListInvoices lista facturas por fecha descendente, con el scoping por rol.
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, caller *entity.Caller, limit, offset int) (*dto.InvoiceListResponse, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	var createdBy *int64
	if !caller.IsStaff {
		id := caller.ID
		createdBy = &id
	}
	list, err := uc.invoiceRepo.List(createdBy, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		lines, err := uc.invoiceRepo.GetItemsByInvoiceID(inv.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toInvoiceResponse(inv, lines))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:        inv.ID,
		InvoiceNo: inv.InvoiceNo,
		CreatedBy: inv.CreatedBy,
		Date:      inv.Date,
		Total:     inv.Total,
		Status:    inv.Status,
		Items:     make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:        item.ID,
			Product:   item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.LineTotal,
		})
	}
	return resp
}
