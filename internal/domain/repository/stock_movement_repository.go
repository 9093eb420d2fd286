package repository

import (
	"github.com/jhoicas/almacen-erp/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	Type        string
	Limit       int
	Offset      int
}

// LedgerTotals acumulados del fold de movimientos de un par (producto, bodega).
type LedgerTotals struct {
	TotalIn  int64
	TotalOut int64
}

// OnHand devuelve el on-hand derivado del libro: Σ IN − Σ OUT.
func (t LedgerTotals) OnHand() int64 {
	return t.TotalIn - t.TotalOut
}

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos. El libro es append-only: no existen métodos de actualización
// ni de borrado.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByProductAndWarehouse devuelve los movimientos de un par
	// (producto, bodega) en orden de inserción (created_at, id).
	ListByProductAndWarehouse(productID, warehouseID string) ([]*entity.StockMovement, error)
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	// SumByDirection calcula el fold del libro para un par (producto, bodega).
	SumByDirection(productID, warehouseID string) (LedgerTotals, error)
}
