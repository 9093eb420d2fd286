package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/almacen-erp/internal/application/inventory"
	"github.com/jhoicas/almacen-erp/internal/domain/entity"
	"github.com/jhoicas/almacen-erp/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: libro, saldos y catálogo, con un runner transaccional que
// emula commit/rollback clonando el estado y reemplazándolo solo en commit.
// ──────────────────────────────────────────────────────────────────────────────

// memStore estado compartido de los fakes.
type memStore struct {
	movements []*entity.StockMovement
	balances  map[string]*entity.InventoryBalance
}

func newMemStore() *memStore {
	return &memStore{balances: make(map[string]*entity.InventoryBalance)}
}

func balanceKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.movements = append(c.movements, s.movements...)
	for k, b := range s.balances {
		cp := *b
		c.balances[k] = &cp
	}
	return c
}

func (s *memStore) replaceWith(o *memStore) {
	s.movements = o.movements
	s.balances = o.balances
}

// fakeTxRunner serializa las transacciones con un mutex, igual que el lock de
// fila serializa las escrituras del mismo par en PostgreSQL. Si fn falla, el
// clon se descarta y el estado confirmado queda intacto.
type fakeTxRunner struct {
	mu sync.Mutex
	s  *memStore
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.BalanceRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx := r.s.clone()
	if err := fn(&fakeMovementRepo{s: tx}, &fakeBalanceRepo{s: tx}); err != nil {
		return err
	}
	r.s.replaceWith(tx)
	return nil
}

// fakeMovementRepo libro append-only en memoria.
type fakeMovementRepo struct {
	s *memStore
}

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProductAndWarehouse(productID, warehouseID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.WarehouseID != "" && m.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeMovementRepo) SumByDirection(productID, warehouseID string) (repository.LedgerTotals, error) {
	var totals repository.LedgerTotals
	for _, m := range r.s.movements {
		if m.ProductID != productID || m.WarehouseID != warehouseID {
			continue
		}
		if m.Direction == entity.DirectionIN {
			totals.TotalIn += m.Quantity
		} else {
			totals.TotalOut += m.Quantity
		}
	}
	return totals, nil
}

// fakeBalanceRepo saldos materializados en memoria. Devuelve copias para que
// las mutaciones del caso de uso solo persistan vía Upsert.
type fakeBalanceRepo struct {
	s *memStore
}

var _ repository.BalanceRepository = (*fakeBalanceRepo)(nil)

func (r *fakeBalanceRepo) Get(productID, warehouseID string) (*entity.InventoryBalance, error) {
	if b, ok := r.s.balances[balanceKey(productID, warehouseID)]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.InventoryBalance{ProductID: productID, WarehouseID: warehouseID}, nil
}

func (r *fakeBalanceRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryBalance, error) {
	return r.Get(productID, warehouseID)
}

func (r *fakeBalanceRepo) Upsert(balance *entity.InventoryBalance) error {
	cp := *balance
	r.s.balances[balanceKey(balance.ProductID, balance.WarehouseID)] = &cp
	return nil
}

func (r *fakeBalanceRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryBalance, error) {
	var out []*entity.InventoryBalance
	for _, b := range r.s.balances {
		if b.WarehouseID == warehouseID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBalanceRepo) ListLowStock(warehouseID string) ([]*repository.LowStockItem, error) {
	// El reporte cruza con el catálogo; no se ejercita sobre el fake.
	return nil, nil
}

// fakeProductRepo catálogo mínimo de productos.
type fakeProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

// fakeWarehouseRepo catálogo mínimo de bodegas.
type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}

func (r *fakeWarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		out = append(out, w)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type engineFixture struct {
	store      *memStore
	txRunner   *fakeTxRunner
	products   *fakeProductRepo
	warehouses *fakeWarehouseRepo
	movements  *inventory.MovementUseCase
	balances   *inventory.BalanceUseCase
}

func newEngineFixture() *engineFixture {
	store := newMemStore()
	runner := &fakeTxRunner{s: store}
	products := newFakeProductRepo()
	warehouses := newFakeWarehouseRepo()
	return &engineFixture{
		store:      store,
		txRunner:   runner,
		products:   products,
		warehouses: warehouses,
		movements:  inventory.NewMovementUseCase(runner, &fakeMovementRepo{s: store}, products, warehouses),
		balances:   inventory.NewBalanceUseCase(runner, &fakeBalanceRepo{s: store}),
	}
}

func (f *engineFixture) addProduct(id string, active bool) {
	f.products.products[id] = &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: "Producto " + id, Unit: "UND", Active: active,
	}
}

func (f *engineFixture) addWarehouse(id string, active bool) {
	f.warehouses.warehouses[id] = &entity.Warehouse{
		ID: id, Code: "BOD-" + id, Name: "Bodega " + id, Active: active,
	}
}

func (f *engineFixture) seedBalance(productID, warehouseID string, onHand, reserved int64) {
	b := &entity.InventoryBalance{
		ProductID:   productID,
		WarehouseID: warehouseID,
		OnHandQty:   onHand,
		ReservedQty: reserved,
		UpdatedAt:   time.Now(),
	}
	b.RecomputeAvailable()
	f.store.balances[balanceKey(productID, warehouseID)] = b
}
