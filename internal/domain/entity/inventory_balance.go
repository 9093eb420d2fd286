package entity

import "time"

// InventoryBalance es la vista materializada del stock de un producto en una
// bodega: exactamente una fila por par (producto, bodega), creada de forma
// perezosa con el primer movimiento. Es una caché del fold del libro de
// movimientos; cualquier divergencia con ese fold es un bug de consistencia.
type InventoryBalance struct {
	ProductID    string
	WarehouseID  string
	OnHandQty    int64
	ReservedQty  int64 // reservado para una futura funcionalidad de asignación; ninguna operación lo incrementa hoy
	AvailableQty int64
	UpdatedAt    time.Time
}

// RecomputeAvailable recalcula la cantidad disponible tras cada mutación:
// available = max(0, on_hand - reserved).
func (b *InventoryBalance) RecomputeAvailable() {
	avail := b.OnHandQty - b.ReservedQty
	if avail < 0 {
		avail = 0
	}
	b.AvailableQty = avail
}
