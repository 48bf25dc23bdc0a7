package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

type fakeProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[int64]*entity.Product{}, nextID: 1}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id int64) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(onlyForInvoice bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if onlyForInvoice && !p.AvailableForInvoice {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) AdjustStock(productID, delta int64) error { return nil }

func strPtr(s string) *string { return &s }

func TestCreate_AvailableForInvoicePorDefectoTrue(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	out, err := uc.Create(dto.CreateProductRequest{
		Name:  "Laptop",
		SKU:   "SKU-LAP",
		Price: decimal.RequireFromString("1500.00"),
		Stock: 5,
	})

	require.NoError(t, err)
	assert.True(t, out.AvailableForInvoice)
	assert.Equal(t, int64(5), out.Stock)
	assert.WithinDuration(t, time.Now(), out.CreatedAt, 2*time.Second)
}

func TestCreate_SKUDuplicado_Retorna409(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo)
	_, err := uc.Create(dto.CreateProductRequest{Name: "A", SKU: "SKU-X", Price: decimal.Zero})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{Name: "B", SKU: "SKU-X", Price: decimal.Zero})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdate_NoTocaStockYValidaSKU(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo)
	created, err := uc.Create(dto.CreateProductRequest{Name: "A", SKU: "SKU-A", Price: decimal.Zero, Stock: 9})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateProductRequest{Name: "B", SKU: "SKU-B", Price: decimal.Zero})
	require.NoError(t, err)

	// Cambiar el SKU a uno ya tomado por otro producto debe fallar.
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{SKU: strPtr("SKU-B")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Una actualización normal conserva el stock.
	newName := "A renombrado"
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "A renombrado", out.Name)
	assert.Equal(t, int64(9), out.Stock)
}

func TestUpdate_Inexistente_RetornaNil(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	out, err := uc.Update(99, dto.UpdateProductRequest{})

	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestList_FiltraPorDisponiblesParaFactura(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo)
	no := false
	_, err := uc.Create(dto.CreateProductRequest{Name: "Visible", SKU: "SKU-V", Price: decimal.Zero})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateProductRequest{Name: "Oculto", SKU: "SKU-O", Price: decimal.Zero, AvailableForInvoice: &no})
	require.NoError(t, err)

	all, err := uc.List(false, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	facturables, err := uc.List(true, 20, 0)
	require.NoError(t, err)
	require.Len(t, facturables.Items, 1)
	assert.Equal(t, "Visible", facturables.Items[0].Name)
}

func TestDelete_Inexistente_Retorna404(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	err := uc.Delete(123)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
