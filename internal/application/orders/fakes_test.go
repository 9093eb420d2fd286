package orders_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/almacen-erp/internal/application/inventory"
	"github.com/jhoicas/almacen-erp/internal/application/orders"
	"github.com/jhoicas/almacen-erp/internal/domain"
	"github.com/jhoicas/almacen-erp/internal/domain/entity"
	"github.com/jhoicas/almacen-erp/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el flujo de órdenes: libro, saldos, órdenes y catálogo,
// con un runner que emula commit/rollback clonando el estado.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	movements []*entity.StockMovement
	balances  map[string]*entity.InventoryBalance
	purchase  map[string]*entity.PurchaseOrder
	sales     map[string]*entity.SalesOrder
}

func newMemStore() *memStore {
	return &memStore{
		balances: make(map[string]*entity.InventoryBalance),
		purchase: make(map[string]*entity.PurchaseOrder),
		sales:    make(map[string]*entity.SalesOrder),
	}
}

func balanceKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

func clonePurchaseOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *o
	cp.Lines = make([]*entity.PurchaseOrderLine, len(o.Lines))
	for i, l := range o.Lines {
		lc := *l
		cp.Lines[i] = &lc
	}
	return &cp
}

func cloneSalesOrder(o *entity.SalesOrder) *entity.SalesOrder {
	cp := *o
	cp.Lines = make([]*entity.SalesOrderLine, len(o.Lines))
	for i, l := range o.Lines {
		lc := *l
		cp.Lines[i] = &lc
	}
	return &cp
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.movements = append(c.movements, s.movements...)
	for k, b := range s.balances {
		cp := *b
		c.balances[k] = &cp
	}
	for k, o := range s.purchase {
		c.purchase[k] = clonePurchaseOrder(o)
	}
	for k, o := range s.sales {
		c.sales[k] = cloneSalesOrder(o)
	}
	return c
}

func (s *memStore) replaceWith(o *memStore) {
	s.movements = o.movements
	s.balances = o.balances
	s.purchase = o.purchase
	s.sales = o.sales
}

// fakeTxRunner implementa los tres puertos transaccionales sobre el mismo
// estado, igual que el TxRunner real sobre el pool.
type fakeTxRunner struct {
	mu sync.Mutex
	s  *memStore
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)
var _ orders.PurchaseTxRunner = (*fakeTxRunner)(nil)
var _ orders.SalesTxRunner = (*fakeTxRunner)(nil)

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

func (r *fakeTxRunner) RunPurchase(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.BalanceRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx := r.s.clone()
	if err := fn(&fakeMovementRepo{s: tx}, &fakeBalanceRepo{s: tx}, &fakePurchaseOrderRepo{s: tx}); err != nil {
		return err
	}
	r.s.replaceWith(tx)
	return nil
}

func (r *fakeTxRunner) RunSales(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.BalanceRepository,
	orderRepo repository.SalesOrderRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx := r.s.clone()
	if err := fn(&fakeMovementRepo{s: tx}, &fakeBalanceRepo{s: tx}, &fakeSalesOrderRepo{s: tx}); err != nil {
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
		cp := *r.s.movements[i]
		out = append(out, &cp)
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

// fakeBalanceRepo saldos materializados en memoria.
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
	return nil, nil
}

// fakePurchaseOrderRepo órdenes de compra en memoria.
type fakePurchaseOrderRepo struct {
	s *memStore
}

var _ repository.PurchaseOrderRepository = (*fakePurchaseOrderRepo)(nil)

func (r *fakePurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	for _, existing := range r.s.purchase {
		if existing.OrderNo == order.OrderNo {
			return domain.ErrDuplicateOrderNumber
		}
	}
	r.s.purchase[order.ID] = clonePurchaseOrder(order)
	return nil
}

func (r *fakePurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if o, ok := r.s.purchase[id]; ok {
		return clonePurchaseOrder(o), nil
	}
	return nil, nil
}

func (r *fakePurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *fakePurchaseOrderRepo) UpdateStatus(orderID, status string) error {
	o, ok := r.s.purchase[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (r *fakePurchaseOrderRepo) UpdateLine(line *entity.PurchaseOrderLine) error {
	for _, o := range r.s.purchase {
		for _, l := range o.Lines {
			if l.ID == line.ID {
				l.ReceivedQty = line.ReceivedQty
				l.Status = line.Status
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *fakePurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.s.purchase {
		if status == "" || o.Status == status {
			out = append(out, clonePurchaseOrder(o))
		}
	}
	return out, nil
}

// fakeSalesOrderRepo órdenes de venta en memoria.
type fakeSalesOrderRepo struct {
	s *memStore
}

var _ repository.SalesOrderRepository = (*fakeSalesOrderRepo)(nil)

func (r *fakeSalesOrderRepo) Create(order *entity.SalesOrder) error {
	for _, existing := range r.s.sales {
		if existing.OrderNo == order.OrderNo {
			return domain.ErrDuplicateOrderNumber
		}
	}
	r.s.sales[order.ID] = cloneSalesOrder(order)
	return nil
}

func (r *fakeSalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	if o, ok := r.s.sales[id]; ok {
		return cloneSalesOrder(o), nil
	}
	return nil, nil
}

func (r *fakeSalesOrderRepo) GetByIDForUpdate(id string) (*entity.SalesOrder, error) {
	return r.GetByID(id)
}

func (r *fakeSalesOrderRepo) UpdateStatus(orderID, status string) error {
	o, ok := r.s.sales[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (r *fakeSalesOrderRepo) UpdateLine(line *entity.SalesOrderLine) error {
	for _, o := range r.s.sales {
		for _, l := range o.Lines {
			if l.ID == line.ID {
				l.ShippedQty = line.ShippedQty
				l.Status = line.Status
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *fakeSalesOrderRepo) List(status string, limit, offset int) ([]*entity.SalesOrder, error) {
	var out []*entity.SalesOrder
	for _, o := range r.s.sales {
		if status == "" || o.Status == status {
			out = append(out, cloneSalesOrder(o))
		}
	}
	return out, nil
}

// fakeProductRepo catálogo mínimo de productos.
type fakeProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
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
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
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

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
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
func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		out = append(out, w)
	}
	return out, nil
}

// fakeSupplierRepo proveedores en memoria.
type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

var _ repository.SupplierRepository = (*fakeSupplierRepo)(nil)

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}
func (r *fakeSupplierRepo) GetByTaxNumber(taxNumber string) (*entity.Supplier, error) {
	for _, s := range r.suppliers {
		if s.TaxNumber == taxNumber {
			return s, nil
		}
	}
	return nil, nil
}
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	return out, nil
}

// fakeCustomerRepo clientes en memoria.
type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByTaxNumber(taxNumber string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.TaxNumber == taxNumber {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type ordersFixture struct {
	store     *memStore
	purchases *orders.PurchaseUseCase
	sales     *orders.SalesUseCase
}

func newOrdersFixture() *ordersFixture {
	store := newMemStore()
	runner := &fakeTxRunner{s: store}
	products := &fakeProductRepo{products: make(map[string]*entity.Product)}
	warehouses := &fakeWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
	suppliers := &fakeSupplierRepo{suppliers: make(map[string]*entity.Supplier)}
	customers := &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}

	products.products["prod-a"] = &entity.Product{ID: "prod-a", SKU: "SKU-A", Name: "Producto A", Unit: "UND", Active: true}
	products.products["prod-b"] = &entity.Product{ID: "prod-b", SKU: "SKU-B", Name: "Producto B", Unit: "UND", Active: true}
	warehouses.warehouses["bod-a"] = &entity.Warehouse{ID: "bod-a", Code: "BOD-A", Name: "Bodega A", Active: true}
	suppliers.suppliers["prov-1"] = &entity.Supplier{ID: "prov-1", Name: "Proveedor Uno", TaxNumber: "900111222", Active: true}
	customers.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Cliente Uno", TaxNumber: "800333444", Active: true}

	movements := inventory.NewMovementUseCase(runner, &fakeMovementRepo{s: store}, products, warehouses)
	return &ordersFixture{
		store:     store,
		purchases: orders.NewPurchaseUseCase(runner, &fakePurchaseOrderRepo{s: store}, suppliers, products, warehouses, movements),
		sales:     orders.NewSalesUseCase(runner, &fakeSalesOrderRepo{s: store}, customers, products, warehouses, movements),
	}
}

func (f *ordersFixture) seedBalance(productID, warehouseID string, onHand, reserved int64) {
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

func (f *ordersFixture) balance(productID, warehouseID string) *entity.InventoryBalance {
	if b, ok := f.store.balances[balanceKey(productID, warehouseID)]; ok {
		return b
	}
	return &entity.InventoryBalance{ProductID: productID, WarehouseID: warehouseID}
}
