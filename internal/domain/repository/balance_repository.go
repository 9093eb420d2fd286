package repository

import "github.com/jhoicas/almacen-erp/internal/domain/entity"

// LowStockItem fila del reporte de bajo stock: saldo junto con los umbrales
// del producto.
type LowStockItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	WarehouseID  string
	AvailableQty int64
	OnHandQty    int64
	ReorderPoint int64
	SafetyStock  int64
}

// BalanceRepository define el puerto para el saldo materializado por
// (producto, bodega). Se usa dentro de transacciones para garantizar
// consistencia con el libro de movimientos.
type BalanceRepository interface {
	// Get devuelve el saldo; si no existe la fila devuelve un saldo en cero
	// (materialización perezosa: la fila se crea con el primer Upsert).
	Get(productID, warehouseID string) (*entity.InventoryBalance, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar las
	// mutaciones concurrentes sobre el mismo par.
	GetForUpdate(productID, warehouseID string) (*entity.InventoryBalance, error)
	Upsert(balance *entity.InventoryBalance) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryBalance, error)
	// ListLowStock devuelve los saldos con disponible <= punto de reorden del producto.
	ListLowStock(warehouseID string) ([]*LowStockItem, error)
}
