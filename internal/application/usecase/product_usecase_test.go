package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-erp/internal/application/dto"
	"github.com/jhoicas/almacen-erp/internal/application/usecase"
	"github.com/jhoicas/almacen-erp/internal/domain"
	"github.com/jhoicas/almacen-erp/internal/domain/entity"
	"github.com/jhoicas/almacen-erp/internal/domain/repository"
)

// fakeProductRepo catálogo en memoria.
type fakeProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
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
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func ptr[T any](v T) *T { return &v }

func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(dto.CreateProductRequest{SKU: "SKU-1", Name: "Tornillo", Unit: "UND"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{SKU: "SKU-1", Name: "Otro", Unit: "UND"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CamposObligatorios(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	casos := []dto.CreateProductRequest{
		{Name: "Sin SKU", Unit: "UND"},
		{SKU: "SKU-1", Unit: "UND"},
		{SKU: "SKU-1", Name: "Sin unidad"},
		{SKU: "SKU-1", Name: "Umbral negativo", Unit: "UND", ReorderPoint: -1},
	}
	for _, in := range casos {
		_, err := uc.Create(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// La actualización es campo a campo: solo cambian los campos enviados y el SKU
// es identidad inmutable.
func TestProductUpdate_CampoACampo(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	created, err := uc.Create(dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Tornillo", Unit: "UND", ReorderPoint: 5,
	})
	require.NoError(t, err)

	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{
		Name: ptr("Tornillo hexagonal"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Tornillo hexagonal", updated.Name)
	assert.Equal(t, "UND", updated.Unit, "los campos no enviados no deben cambiar")
	assert.Equal(t, int64(5), updated.ReorderPoint)
	assert.Equal(t, "SKU-1", updated.SKU)

	// Un campo enviado con valor inválido rechaza toda la actualización.
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{
		Name:         ptr("Nuevo nombre"),
		ReorderPoint: ptr(int64(-2)),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	persisted, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tornillo hexagonal", persisted.Name, "nada debe persistirse si la validación falla")
}

func TestProductUpdate_Desactivar(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	created, err := uc.Create(dto.CreateProductRequest{SKU: "SKU-1", Name: "Tornillo", Unit: "UND"})
	require.NoError(t, err)

	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{Active: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Active)
}

func TestProductGetByID_NoExiste(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.GetByID("fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
